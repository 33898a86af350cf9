package room

import (
	"github.com/marianogappa/carioca-backend/carioca"
)

// Server→client message type tags.
const (
	MessageTypeError           = "Error"
	MessageTypeMatchFound      = "MatchFound"
	MessageTypeGameStateUpdate = "GameStateUpdate"
	MessageTypeRoundEnded      = "RoundEnded"
)

// ServerMessage is the tagged envelope every server→client frame carries:
// a type tag plus a type-specific payload.
type ServerMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// ErrorPayload reports a rejected action back to the offending seat. It is
// always followed by a fresh GameStateUpdate so the client can't drift.
type ErrorPayload struct {
	Message string `json:"message"`
}

// MatchFoundPayload tells a client which room it landed in and who it is
// playing against.
type MatchFoundPayload struct {
	RoomID  string   `json:"room_id"`
	Players []string `json:"players"`
}

// SanitizedPlayerState is the reduced view of one seat, the receiver's own
// included: everything except the cards in hand (the receiver's own cards
// travel separately in MyHand).
type SanitizedPlayerState struct {
	ID                  string           `json:"id"`
	HandCount           int              `json:"hand_count"`
	HasDroppedHand      bool             `json:"has_dropped_hand"`
	Points              int              `json:"points"`
	DroppedCombinations [][]carioca.Card `json:"dropped_combinations"`
	TurnsPlayed         int              `json:"turns_played"`
	HasDrawnThisTurn    bool             `json:"has_drawn_this_turn"`
	DroppedHandThisTurn bool             `json:"dropped_hand_this_turn"`
}

// GameStateUpdatePayload is the per-viewer sanitized snapshot: the
// receiver's own hand fully revealed, every other seat reduced.
type GameStateUpdatePayload struct {
	MyHand            []carioca.Card         `json:"my_hand"`
	Players           []SanitizedPlayerState `json:"players"`
	CurrentRoundIndex int                    `json:"current_round_index"`
	CurrentRoundRules string                 `json:"current_round_rules"`
	CurrentTurnIndex  int                    `json:"current_turn_index"`
	DiscardPileTop    *carioca.Card          `json:"discard_pile_top,omitempty"`
	IsGameOver        bool                   `json:"is_game_over"`
	RequiredTrios     int                    `json:"required_trios"`
	RequiredEscalas   int                    `json:"required_escalas"`
}

// PlayerScore is one seat's line in a RoundEndedPayload.
type PlayerScore struct {
	ID          string `json:"id"`
	RoundPoints int    `json:"round_points"`
	TotalPoints int    `json:"total_points"`
}

// RoundEndedPayload announces a finished round. It is broadcast strictly
// before the first GameStateUpdate reflecting the next round.
type RoundEndedPayload struct {
	RoundIndex     int           `json:"round_index"`
	RoundName      string        `json:"round_name"`
	WinnerID       string        `json:"winner_id"`
	PlayerScores   []PlayerScore `json:"player_scores"`
	NextRoundIndex int           `json:"next_round_index"`
	NextRoundName  string        `json:"next_round_name"`
	IsGameOver     bool          `json:"is_game_over"`
}

func newErrorMessage(message string) ServerMessage {
	return ServerMessage{Type: MessageTypeError, Payload: ErrorPayload{Message: message}}
}

// NewMatchFoundMessage builds the message each client receives when its
// room is assembled.
func NewMatchFoundMessage(roomID string, players []string) ServerMessage {
	return ServerMessage{Type: MessageTypeMatchFound, Payload: MatchFoundPayload{RoomID: roomID, Players: players}}
}

func newGameStateUpdateMessage(view carioca.ClientGameState) ServerMessage {
	players := make([]SanitizedPlayerState, len(view.Players))
	for i, p := range view.Players {
		players[i] = SanitizedPlayerState{
			ID:                  p.ID,
			HandCount:           p.HandSize,
			HasDroppedHand:      p.HasDroppedHand,
			Points:              p.Points,
			DroppedCombinations: p.DroppedCombinations,
			TurnsPlayed:         p.TurnsPlayed,
			HasDrawnThisTurn:    p.HasDrawnThisTurn,
			DroppedHandThisTurn: p.DroppedHandThisTurn,
		}
	}

	payload := GameStateUpdatePayload{
		Players:           players,
		CurrentRoundIndex: view.RoundIndex,
		CurrentRoundRules: view.RoundName,
		CurrentTurnIndex:  view.TurnIndex,
		IsGameOver:        view.IsGameEnded,
		RequiredTrios:     view.RequiredTrios,
		RequiredEscalas:   view.RequiredEscalas,
	}
	if you, ok := view.You(); ok {
		payload.MyHand = you.Hand
	}
	if view.HasDiscardTop {
		top := view.DiscardTopCard
		payload.DiscardPileTop = &top
	}

	return ServerMessage{Type: MessageTypeGameStateUpdate, Payload: payload}
}

func newRoundEndedMessage(result carioca.RoundEndResult) ServerMessage {
	scores := make([]PlayerScore, len(result.PlayerScores))
	for i, s := range result.PlayerScores {
		scores[i] = PlayerScore{ID: s.ID, RoundPoints: s.RoundPoints, TotalPoints: s.TotalPoints}
	}
	return ServerMessage{Type: MessageTypeRoundEnded, Payload: RoundEndedPayload{
		RoundIndex:     result.RoundIndex,
		RoundName:      result.RoundName,
		WinnerID:       result.WinnerID,
		PlayerScores:   scores,
		NextRoundIndex: result.NextRoundIndex,
		NextRoundName:  result.NextRoundName,
		IsGameOver:     result.IsGameEnded,
	}}
}
