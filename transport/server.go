package transport

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/marianogappa/carioca-backend/auth"
	"github.com/marianogappa/carioca-backend/carioca"
	"github.com/marianogappa/carioca-backend/lobby"
	"github.com/marianogappa/carioca-backend/room"
)

var errUnknownMessageType = errors.New("unknown message type")

// Server owns the HTTP surface: the websocket upgrade endpoint clients
// connect through, and a liveness route. Each accepted connection runs two
// goroutines: an inbound decode loop feeding the seat's room inbox, and an
// outbound encode loop draining the seat's bounded channel.
type Server struct {
	addr     string
	botDelay time.Duration
	logger   *zap.Logger
	lobby    *lobby.Lobby
	upgrader websocket.Upgrader

	mu        sync.Mutex
	rooms     map[string]*room.Room
	seatRooms map[string]*room.Room
	// pending maps a waiting user to their outbound channel so a match
	// formed by someone else's join can seat them.
	pending map[string]chan room.ServerMessage
}

// New builds a server listening on addr once Start is called.
func New(addr string, botDelay time.Duration, matchSize int, logger *zap.Logger) *Server {
	return &Server{
		addr:     addr,
		botDelay: botDelay,
		logger:   logger,
		lobby:    lobby.New(lobby.WithMatchSize(matchSize)),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		rooms:     map[string]*room.Room{},
		seatRooms: map[string]*room.Room{},
		pending:   map[string]chan room.ServerMessage{},
	}
}

// Router exposes the HTTP routes: GET /ws (upgrade, bearer token as query
// parameter) and GET /healthz.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/ws", s.handleWS).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	return r
}

// Start blocks serving HTTP on the configured address.
func (s *Server) Start() error {
	s.logger.Info("server listening", zap.String("addr", s.addr))
	return http.ListenAndServe(s.addr, s.Router())
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.Validate(r.URL.Query().Get("token"))
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", zap.String("user_id", userID), zap.Error(err))
		return
	}

	s.logger.Info("client connected", zap.String("user_id", userID))
	out := room.NewOutboundChannel()
	done := make(chan struct{})
	go s.writeLoop(conn, out, done)
	s.seatConnection(userID, out)
	s.readLoop(conn, userID, out, done)
}

// seatConnection routes a fresh connection into a room: back into the seat
// it held before a disconnect, straight into a new room if the lobby formed
// a match, or into the pending set to be seated by a later join.
func (s *Server) seatConnection(userID string, out chan room.ServerMessage) {
	s.mu.Lock()
	if rm, ok := s.seatRooms[userID]; ok {
		s.mu.Unlock()
		rm.Enqueue(room.PlayerJoined{PlayerID: userID, Out: out})
		return
	}
	s.pending[userID] = out
	s.mu.Unlock()

	match, ok := s.lobby.Join(userID)
	if !ok {
		return
	}
	s.spawnRoom(match)
}

// spawnRoom creates and starts the room for a formed match, then seats
// every matched human whose connection is waiting.
func (s *Server) spawnRoom(match lobby.Match) {
	rm := room.New(match.RoomID, match.Players, s.botDelay, s.logger)

	s.mu.Lock()
	s.rooms[match.RoomID] = rm
	seated := make(map[string]chan room.ServerMessage)
	for _, id := range match.Players {
		if carioca.IsBotID(id) {
			continue
		}
		s.seatRooms[id] = rm
		if out, ok := s.pending[id]; ok {
			seated[id] = out
			delete(s.pending, id)
		}
	}
	s.mu.Unlock()

	go rm.Run()
	for id, out := range seated {
		rm.Enqueue(room.PlayerJoined{PlayerID: id, Out: out})
	}
}

// readLoop decodes inbound frames into actions for userID's room. Malformed
// frames are dropped without a reply.
func (s *Server) readLoop(conn *websocket.Conn, userID string, out chan room.ServerMessage, done chan struct{}) {
	defer s.disconnect(conn, userID, out, done)

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		action, err := decodeClientMessage(userID, data)
		if err != nil {
			s.logger.Debug("dropping malformed frame", zap.String("user_id", userID), zap.Error(err))
			continue
		}

		s.mu.Lock()
		rm := s.seatRooms[userID]
		s.mu.Unlock()
		if rm == nil {
			continue
		}
		rm.Enqueue(room.PlayerAction{PlayerID: userID, Action: action})
	}
}

func (s *Server) writeLoop(conn *websocket.Conn, out <-chan room.ServerMessage, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case message := <-out:
			if err := conn.WriteJSON(message); err != nil {
				return
			}
		}
	}
}

func (s *Server) disconnect(conn *websocket.Conn, userID string, out chan room.ServerMessage, done chan struct{}) {
	_ = conn.Close()
	close(done)
	s.logger.Info("client disconnected", zap.String("user_id", userID))

	s.lobby.Leave(userID)
	s.mu.Lock()
	if s.pending[userID] == out {
		delete(s.pending, userID)
	}
	rm := s.seatRooms[userID]
	s.mu.Unlock()

	// The seat is not forfeited: the room keeps it and the round stalls on
	// its turn until the same user id reconnects.
	if rm != nil {
		rm.Enqueue(room.PlayerLeft{PlayerID: userID})
	}
}
