package lobby

import (
	"container/list"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Match is what the lobby hands to the room-spawning layer: a fresh room id
// and the fixed, ordered seat list the room is created with.
type Match struct {
	RoomID  string
	Players []string
}

// Lobby is a FIFO queue of users waiting for a match. With MatchSize 1 (the
// default) a joining human is immediately matched against three bot seats,
// one per difficulty, so a single connection can play a full game; larger
// MatchSize values queue humans until enough have joined.
type Lobby struct {
	mu      sync.Mutex
	waiting *list.List

	matchSize int
}

// Option configures a Lobby.
type Option func(*Lobby)

// WithMatchSize sets how many humans form a match. Values are clamped to
// the 1..4 seats a room supports.
func WithMatchSize(n int) Option {
	return func(l *Lobby) {
		if n < 1 {
			n = 1
		}
		if n > 4 {
			n = 4
		}
		l.matchSize = n
	}
}

// New builds an empty lobby.
func New(opts ...Option) *Lobby {
	l := &Lobby{waiting: list.New(), matchSize: 1}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Join enqueues userID and, if enough players are now waiting, pops them
// into a Match. ok is false while the user must keep waiting (or when they
// are already queued).
func (l *Lobby) Join(userID string) (Match, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for e := l.waiting.Front(); e != nil; e = e.Next() {
		if e.Value.(string) == userID {
			return Match{}, false
		}
	}

	l.waiting.PushBack(userID)
	if l.waiting.Len() < l.matchSize {
		return Match{}, false
	}

	players := make([]string, 0, 4)
	for i := 0; i < l.matchSize; i++ {
		front := l.waiting.Front()
		players = append(players, front.Value.(string))
		l.waiting.Remove(front)
	}

	// A lone human plays against one bot of each difficulty; the bot ids
	// carry the human's id so log lines stay traceable to a session.
	if l.matchSize == 1 {
		players = append(players,
			fmt.Sprintf("bot_easy_%s", userID),
			fmt.Sprintf("bot_medium_%s", userID),
			fmt.Sprintf("bot_hard_%s", userID),
		)
	}

	return Match{RoomID: uuid.NewString(), Players: players}, true
}

// Leave removes userID from the queue, if present.
func (l *Lobby) Leave(userID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for e := l.waiting.Front(); e != nil; e = e.Next() {
		if e.Value.(string) == userID {
			l.waiting.Remove(e)
			return
		}
	}
}

// Waiting reports how many users are queued.
func (l *Lobby) Waiting() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.waiting.Len()
}
