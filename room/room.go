package room

import (
	"time"

	"go.uber.org/zap"

	"github.com/marianogappa/carioca-backend/bot"
	"github.com/marianogappa/carioca-backend/carioca"
)

// Event is one item in a room's inbox. Everything that can mutate a room
// (seats joining and leaving, human actions, deferred bot actions) arrives
// as an Event, so the room goroutine is the only writer to its GameState.
type Event interface{ roomEvent() }

// PlayerJoined registers a seat's outbound channel with the room. The room
// never reaches back into transport code; this channel handle is all it
// knows about the client.
type PlayerJoined struct {
	PlayerID string
	Out      chan<- ServerMessage
}

// PlayerLeft drops a seat's outbound channel. The seat itself is not
// forfeited: the round stalls on that seat's turn until the same id joins
// again.
type PlayerLeft struct {
	PlayerID string
}

// PlayerAction carries one game action from a seat, human or bot.
type PlayerAction struct {
	PlayerID string
	Action   carioca.Action
}

func (PlayerJoined) roomEvent() {}
func (PlayerLeft) roomEvent()   {}
func (PlayerAction) roomEvent() {}

const (
	inboxSize = 64
	// outboundSize bounds each seat's outbound channel. A full channel
	// never blocks the room: the stale snapshot for that seat is dropped
	// and a later broadcast re-establishes consistency.
	outboundSize = 32

	// DefaultBotDelay spaces out bot actions so humans can follow the
	// game. Purely UX; the engine imposes no timeouts.
	DefaultBotDelay = 1500 * time.Millisecond
)

// Room is the single-owner event loop around one GameState. All mutations
// funnel through its inbox; Run is the only goroutine that touches the
// game.
type Room struct {
	ID string

	game       *carioca.GameState
	players    []string
	inbox      chan Event
	channels   map[string]chan<- ServerMessage
	botPending map[string]bool
	botDelay   time.Duration
	done       chan struct{}
	logger     *zap.Logger
}

// New builds a room for a fixed seat list, dealing the first round
// immediately. Callers must run Run in its own goroutine.
func New(id string, playerIDs []string, botDelay time.Duration, logger *zap.Logger) *Room {
	return &Room{
		ID:         id,
		game:       carioca.New(playerIDs),
		players:    playerIDs,
		inbox:      make(chan Event, inboxSize),
		channels:   map[string]chan<- ServerMessage{},
		botPending: map[string]bool{},
		botDelay:   botDelay,
		done:       make(chan struct{}),
		logger:     logger.With(zap.String("room_id", id)),
	}
}

// Enqueue delivers an event into the room's inbox, blocking if the inbox is
// full. It returns false once the room has stopped.
func (r *Room) Enqueue(event Event) bool {
	select {
	case r.inbox <- event:
		return true
	case <-r.done:
		return false
	}
}

// Stop terminates the room loop. Pending events are discarded.
func (r *Room) Stop() {
	close(r.done)
}

// Run processes the inbox until Stop is called. It must be the only
// goroutine ever calling into r.game.
func (r *Room) Run() {
	r.logger.Info("room started", zap.Strings("players", r.players))
	for {
		select {
		case <-r.done:
			r.logger.Info("room stopped")
			return
		case event := <-r.inbox:
			r.handleEvent(event)
		}
	}
}

func (r *Room) handleEvent(event Event) {
	switch ev := event.(type) {
	case PlayerJoined:
		r.logger.Info("player joined", zap.String("player_id", ev.PlayerID))
		r.channels[ev.PlayerID] = ev.Out
		r.send(ev.PlayerID, NewMatchFoundMessage(r.ID, r.players))
		r.broadcastState()
		r.maybeScheduleBot()
	case PlayerLeft:
		r.logger.Info("player left", zap.String("player_id", ev.PlayerID))
		delete(r.channels, ev.PlayerID)
	case PlayerAction:
		r.handleAction(ev)
	}
}

func (r *Room) handleAction(ev PlayerAction) {
	if r.botPending[ev.PlayerID] {
		r.botPending[ev.PlayerID] = false
	}
	if ev.Action == nil {
		// A bot decided against acting on a stale snapshot; a later
		// broadcast or schedule pass picks the turn back up.
		r.maybeScheduleBot()
		return
	}

	wasFinished := r.game.IsRoundFinished

	if err := r.game.RunAction(ev.Action); err != nil {
		r.logger.Debug("action rejected",
			zap.String("player_id", ev.PlayerID),
			zap.String("action", ev.Action.GetName()),
			zap.Error(err))
		r.send(ev.PlayerID, newErrorMessage(err.Error()))
		r.send(ev.PlayerID, newGameStateUpdateMessage(r.game.ToClientGameState(ev.PlayerID)))
		// A rejected stale bot action must not strand the bot's turn.
		r.maybeScheduleBot()
		return
	}

	if !wasFinished && r.game.IsRoundFinished {
		if result, ok := r.game.RoundEndResult(); ok {
			r.logger.Info("round ended",
				zap.Int("round_index", result.RoundIndex),
				zap.String("winner_id", result.WinnerID),
				zap.Bool("is_game_over", result.IsGameEnded))
			r.broadcast(newRoundEndedMessage(result))
		}
	}

	r.broadcastState()
	r.maybeScheduleBot()
}

// maybeScheduleBot defers a bot decision for the seat that must act next,
// if it is a bot and no decision is already pending for it. The decision
// runs against a snapshot outside the room loop (so the delay never blocks
// the room) and re-enters through the inbox, where RunAction re-validates
// turn ownership against live state.
func (r *Room) maybeScheduleBot() {
	if r.game.IsGameEnded || r.game.IsRoundFinished {
		return
	}
	seatID := r.game.Players[r.game.TurnIndex].ID
	difficulty, ok := bot.DifficultyFromID(seatID)
	if !ok || r.botPending[seatID] {
		return
	}
	r.botPending[seatID] = true

	snapshot := r.game.ToClientGameState(seatID)
	time.AfterFunc(r.botDelay, func() {
		action := bot.PlayBotTurn(snapshot, seatID, difficulty)
		select {
		case r.inbox <- PlayerAction{PlayerID: seatID, Action: action}:
		case <-r.done:
		}
	})
}

func (r *Room) broadcastState() {
	for id := range r.channels {
		r.send(id, newGameStateUpdateMessage(r.game.ToClientGameState(id)))
	}
}

func (r *Room) broadcast(message ServerMessage) {
	for id := range r.channels {
		r.send(id, message)
	}
}

// send delivers a message to one seat without ever blocking the room. If
// the seat's channel is full the message is dropped; the client catches up
// on the next broadcast.
func (r *Room) send(playerID string, message ServerMessage) {
	ch, ok := r.channels[playerID]
	if !ok {
		if !carioca.IsBotID(playerID) {
			r.logger.Warn("no channel for seat", zap.String("player_id", playerID))
		}
		return
	}
	select {
	case ch <- message:
	default:
		r.logger.Warn("outbound channel full, dropping message",
			zap.String("player_id", playerID),
			zap.String("type", message.Type))
	}
}

// NewOutboundChannel builds a bounded per-seat channel for PlayerJoined.
func NewOutboundChannel() chan ServerMessage {
	return make(chan ServerMessage, outboundSize)
}
