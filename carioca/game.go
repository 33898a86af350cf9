package carioca

import (
	"encoding/json"
	"fmt"
	"strings"
)

// InitialHandSize is how many cards each player is dealt at the start of
// every round, the Escala Real round included.
const InitialHandSize = 12

// TurnPhase is the derived state of whoever's turn it currently is, used by
// both the room actor (to know which actions to accept) and the bot policy
// (to know which decision to make next) instead of branching on raw flags.
type TurnPhase int

const (
	// PhaseNeedDraw: the turn player hasn't drawn yet; only the two draw
	// actions are legal.
	PhaseNeedDraw TurnPhase = iota
	// PhaseAfterDraw: the turn player has drawn and may still attempt a
	// bajada, shed onto existing melds, or discard to end the turn.
	PhaseAfterDraw
	// PhaseAfterBajada: the turn player dropped their hand this turn.
	// Shedding is forbidden on the same turn as a fresh bajada; only
	// discard remains.
	PhaseAfterBajada
)

// Action names.
const (
	ActionNameDrawFromDeck    = "draw_from_deck"
	ActionNameDrawFromDiscard = "draw_from_discard"
	ActionNameDiscard         = "discard"
	ActionNameDropHand        = "drop_hand"
	ActionNameShedCard        = "shed_card"
	ActionNameReorderHand     = "reorder_hand"
	ActionNameMarkReady       = "mark_ready"
)

// botIDPrefixes are the seat-id prefixes that mark a seat as bot-driven.
// The lobby mints bot seats with these prefixes; the engine uses them to
// auto-ready bot seats between rounds.
var botIDPrefixes = []string{"bot_easy", "bot_medium", "bot_hard"}

// IsBotID reports whether a seat id identifies a bot seat.
func IsBotID(id string) bool {
	for _, prefix := range botIDPrefixes {
		if strings.HasPrefix(id, prefix) {
			return true
		}
	}
	return false
}

// RoundLog records one round's dealt hands, table melds, and the ordered
// actions run during it, for replay and for the post-round summary.
type RoundLog struct {
	RoundIndex    int                 `json:"roundIndex"`
	HandsDealt    map[string][]Card   `json:"handsDealt"`
	FinalMelds    map[string][][]Card `json:"finalMelds"`
	PointsAwarded map[string]int      `json:"pointsAwarded"`
	WentOutID     string              `json:"wentOutID"`
	ActionsLog    []ActionLog         `json:"actionsLog"`
}

// ActionLog is a serialized record of one action that was run, keyed by
// which player ran it. Clients reconstruct it with DeserializeAction.
type ActionLog struct {
	PlayerID string          `json:"playerID"`
	Action   json.RawMessage `json:"action"`
}

// GameState is the authoritative state of one Carioca game. It is the only
// place game rules are enforced; the room actor and the bot policy only
// ever mutate the game through RunAction.
type GameState struct {
	Players []*PlayerState `json:"players"`

	// TurnIndex indexes into Players for whoever must act next.
	TurnIndex int `json:"turnIndex"`

	// RoundIndex is the 0-based index into the nine-round schedule.
	RoundIndex int `json:"roundIndex"`

	IsRoundFinished bool `json:"isRoundFinished"`
	IsGameEnded     bool `json:"isGameEnded"`

	// WinnerID is set once IsGameEnded is true: the player with the
	// lowest cumulative score across all nine rounds.
	WinnerID string `json:"winnerID"`

	RoundsLog []*RoundLog `json:"roundsLog"`

	deck    *deck `json:"-"`
	discard *pile `json:"-"`
}

// New deals the first round of a fresh game for the given seats, in the
// order given.
func New(playerIDs []string) *GameState {
	g := &GameState{
		Players:    make([]*PlayerState, len(playerIDs)),
		RoundIndex: 0,
		RoundsLog:  []*RoundLog{},
	}
	for i, id := range playerIDs {
		g.Players[i] = newPlayerState(id)
	}
	g.startRound()
	return g
}

// CurrentRound returns the round type currently being played.
func (g *GameState) CurrentRound() RoundType {
	return roundTypeForIndex(g.RoundIndex)
}

// CurrentPhase derives the acting player's phase from their turn flags.
func (g *GameState) CurrentPhase() TurnPhase {
	p := g.Players[g.TurnIndex]
	switch {
	case !p.HasDrawnThisTurn:
		return PhaseNeedDraw
	case p.DroppedHandThisTurn:
		return PhaseAfterBajada
	default:
		return PhaseAfterDraw
	}
}

func (g *GameState) playerIndex(id string) (int, bool) {
	for i, p := range g.Players {
		if p.ID == id {
			return i, true
		}
	}
	return 0, false
}

// player looks up a seat by id. ok is false if no such seat exists.
func (g *GameState) player(id string) (*PlayerState, bool) {
	idx, ok := g.playerIndex(id)
	if !ok {
		return nil, false
	}
	return g.Players[idx], true
}

// startRound resets every seat, builds and shuffles a fresh deck, deals
// InitialHandSize cards to each player, and flips the first discard.
func (g *GameState) startRound() {
	g.deck = newDeck()
	g.deck.shuffle()
	g.discard = &pile{}

	for _, p := range g.Players {
		p.Hand = make([]Card, 0, InitialHandSize)
		p.resetRoundFlags()
	}

	for i := 0; i < InitialHandSize; i++ {
		for _, p := range g.Players {
			if card, ok := g.deck.draw(); ok {
				p.Hand = append(p.Hand, card)
			}
		}
	}

	if card, ok := g.deck.draw(); ok {
		g.discard.add(card)
	}

	g.IsRoundFinished = false

	handsDealt := make(map[string][]Card, len(g.Players))
	for _, p := range g.Players {
		dealt := make([]Card, len(p.Hand))
		copy(dealt, p.Hand)
		handsDealt[p.ID] = dealt
	}
	g.RoundsLog = append(g.RoundsLog, &RoundLog{
		RoundIndex:    g.RoundIndex,
		HandsDealt:    handsDealt,
		FinalMelds:    map[string][][]Card{},
		PointsAwarded: map[string]int{},
		ActionsLog:    []ActionLog{},
	})
}

// reshuffleDiscardIfDeckEmpty rebuilds the stock from the discard pile
// (keeping its top card in play) the way physical Carioca decks are
// recycled mid-round. If the discard pile holds only its top card the stock
// stays empty, and drawing from it is rejected.
func (g *GameState) reshuffleDiscardIfDeckEmpty() {
	if g.deck.remaining() > 0 {
		return
	}
	top, ok := g.discard.top()
	if !ok {
		return
	}
	rest := g.discard.cards[:len(g.discard.cards)-1]
	g.deck.cards = append(g.deck.cards, rest...)
	g.deck.shuffle()
	g.discard.cards = []Card{top}
}

func (g *GameState) currentLog() *RoundLog {
	return g.RoundsLog[len(g.RoundsLog)-1]
}

// RunAction is the single entry point for every game mutation: it checks
// turn ownership and legality, runs the action, appends it to the round
// log, advances the turn if the action yields it, and closes out the round
// or the game if the action triggered either.
func (g *GameState) RunAction(action Action) error {
	if action == nil {
		return nil
	}
	if g.IsGameEnded {
		return fmt.Errorf("%w trying to run [%v]", errGameIsEnded, action)
	}

	action.Enrich(*g)

	if action.requiresTurn() {
		idx, ok := g.playerIndex(action.GetPlayerID())
		if !ok {
			return errUnknownPlayer
		}
		if idx != g.TurnIndex {
			return fmt.Errorf("%w trying to run [%v]", errNotYourTurn, action)
		}
	}

	if !action.IsPossible(*g) {
		return fmt.Errorf("%w trying to run [%v]", errActionNotPossible, action)
	}

	if err := action.Run(g); err != nil {
		return fmt.Errorf("%w trying to run [%v]", err, action)
	}

	if action.GetName() != ActionNameMarkReady {
		g.currentLog().ActionsLog = append(g.currentLog().ActionsLog, ActionLog{
			PlayerID: action.GetPlayerID(),
			Action:   SerializeAction(action),
		})
	}

	if g.IsRoundFinished {
		g.maybeAdvanceRound()
		return nil
	}

	if action.YieldsTurn(*g) {
		g.advanceTurn()
	}

	return nil
}

func (g *GameState) advanceTurn() {
	p := g.Players[g.TurnIndex]
	p.TurnsPlayed++
	p.resetTurnFlags()
	g.TurnIndex = (g.TurnIndex + 1) % len(g.Players)
	g.reshuffleDiscardIfDeckEmpty()
}

// maybeAdvanceRound redeals the next round once every player has marked
// ready. RoundIndex and TurnIndex already point at the next round:
// settleRound advanced them when the previous round ended; only the deal
// itself waits on readiness.
func (g *GameState) maybeAdvanceRound() {
	if g.IsGameEnded {
		return
	}
	for _, p := range g.Players {
		if !p.IsReadyForNextRound {
			return
		}
	}

	g.startRound()
}

func (g *GameState) endGame() {
	g.IsGameEnded = true
	best := g.Players[0]
	for _, p := range g.Players[1:] {
		if p.Points < best.Points {
			best = p
		}
	}
	g.WinnerID = best.ID
}

// settleRound runs when an action empties the turn player's hand: every
// other seat's remaining hand points are added to their cumulative score,
// the player who went out scores nothing this round, and the round and
// turn indices advance to the next round immediately (the deal rotates:
// round N opens with seat N mod |players|). Only the redeal itself is
// deferred until every seat marks ready; after the ninth round the game
// ends instead.
func (g *GameState) settleRound(wentOutID string) {
	log := g.currentLog()
	log.WentOutID = wentOutID
	for _, p := range g.Players {
		pts := 0
		if p.ID != wentOutID {
			pts = p.handPoints()
			p.Points += pts
		}
		log.PointsAwarded[p.ID] = pts
		melds := make([][]Card, len(p.DroppedCombinations))
		copy(melds, p.DroppedCombinations)
		log.FinalMelds[p.ID] = melds

		// Bot seats have no client to click "ready"; the next round waits
		// only on humans.
		if IsBotID(p.ID) {
			p.IsReadyForNextRound = true
		}
	}
	g.IsRoundFinished = true

	g.RoundIndex++
	if g.RoundIndex >= 9 {
		g.endGame()
		return
	}
	g.TurnIndex = g.RoundIndex % len(g.Players)
}

// PlayerRoundScore is one seat's line in a RoundEndResult.
type PlayerRoundScore struct {
	ID          string `json:"id"`
	RoundPoints int    `json:"roundPoints"`
	TotalPoints int    `json:"totalPoints"`
}

// RoundEndResult summarises a just-finished round for broadcast.
type RoundEndResult struct {
	RoundIndex     int                `json:"roundIndex"`
	RoundName      string             `json:"roundName"`
	WinnerID       string             `json:"winnerID"`
	PlayerScores   []PlayerRoundScore `json:"playerScores"`
	NextRoundIndex int                `json:"nextRoundIndex"`
	NextRoundName  string             `json:"nextRoundName"`
	IsGameEnded    bool               `json:"isGameEnded"`
}

// RoundEndResult builds the summary of the most recently finished round.
// ok is false if no round has finished yet.
func (g *GameState) RoundEndResult() (RoundEndResult, bool) {
	if !g.IsRoundFinished || len(g.RoundsLog) == 0 {
		return RoundEndResult{}, false
	}
	log := g.currentLog()

	result := RoundEndResult{
		RoundIndex:     log.RoundIndex,
		RoundName:      roundTypeForIndex(log.RoundIndex).Name(),
		WinnerID:       log.WentOutID,
		NextRoundIndex: log.RoundIndex + 1,
		IsGameEnded:    g.IsGameEnded,
	}
	if !g.IsGameEnded {
		result.NextRoundName = roundTypeForIndex(log.RoundIndex + 1).Name()
	}
	for _, p := range g.Players {
		result.PlayerScores = append(result.PlayerScores, PlayerRoundScore{
			ID:          p.ID,
			RoundPoints: log.PointsAwarded[p.ID],
			TotalPoints: p.Points,
		})
	}
	return result, true
}
