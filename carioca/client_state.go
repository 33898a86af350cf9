package carioca

// ClientPlayerState is what every seat sees of one player: full details for
// themselves, hand-size-only for everyone else.
type ClientPlayerState struct {
	ID                  string   `json:"id"`
	HandSize            int      `json:"handSize"`
	Hand                []Card   `json:"hand,omitempty"`
	Points              int      `json:"points"`
	HasDroppedHand      bool     `json:"hasDroppedHand"`
	DroppedCombinations [][]Card `json:"droppedCombinations"`
	TurnsPlayed         int      `json:"turnsPlayed"`
	HasDrawnThisTurn    bool     `json:"hasDrawnThisTurn"`
	DroppedHandThisTurn bool     `json:"droppedHandThisTurn"`
	IsReadyForNextRound bool     `json:"isReadyForNextRound"`
}

// ClientGameState is the sanitized snapshot broadcast to one viewer: their
// own hand is revealed, everyone else's is reduced to a card count. All
// card slices are copies, so a snapshot stays internally consistent even if
// the room mutates the game after building it (the bot scheduler reads
// snapshots outside the room goroutine).
type ClientGameState struct {
	YouPlayerID string `json:"you"`

	RoundIndex      int       `json:"roundIndex"`
	RoundName       string    `json:"roundName"`
	RequiredTrios   int       `json:"requiredTrios"`
	RequiredEscalas int       `json:"requiredEscalas"`
	MinEscalaLength int       `json:"minEscalaLength"`
	TurnIndex       int       `json:"turnIndex"`
	TurnPlayerID    string    `json:"turnPlayerID"`
	Phase           TurnPhase `json:"phase"`

	Players []ClientPlayerState `json:"players"`

	DiscardTopCard Card `json:"discardTopCard"`
	HasDiscardTop  bool `json:"hasDiscardTop"`
	DeckRemaining  int  `json:"deckRemaining"`

	IsRoundFinished bool   `json:"isRoundFinished"`
	IsGameEnded     bool   `json:"isGameEnded"`
	WinnerID        string `json:"winnerID"`

	LastActionLog *ActionLog `json:"lastActionLog"`
}

// You returns the viewer's own ClientPlayerState. ok is false if the viewer
// holds no seat in this game.
func (c ClientGameState) You() (ClientPlayerState, bool) {
	for _, p := range c.Players {
		if p.ID == c.YouPlayerID {
			return p, true
		}
	}
	return ClientPlayerState{}, false
}

func copyCards(cards []Card) []Card {
	cp := make([]Card, len(cards))
	copy(cp, cards)
	return cp
}

func copyMelds(melds [][]Card) [][]Card {
	cp := make([][]Card, len(melds))
	for i, m := range melds {
		cp[i] = copyCards(m)
	}
	return cp
}

// ToClientGameState builds the sanitized view of g for the seat held by
// youPlayerID.
func (g *GameState) ToClientGameState(youPlayerID string) ClientGameState {
	players := make([]ClientPlayerState, len(g.Players))
	for i, p := range g.Players {
		cps := ClientPlayerState{
			ID:                  p.ID,
			HandSize:            len(p.Hand),
			Points:              p.Points,
			HasDroppedHand:      p.HasDroppedHand,
			DroppedCombinations: copyMelds(p.DroppedCombinations),
			TurnsPlayed:         p.TurnsPlayed,
			HasDrawnThisTurn:    p.HasDrawnThisTurn,
			DroppedHandThisTurn: p.DroppedHandThisTurn,
			IsReadyForNextRound: p.IsReadyForNextRound,
		}
		if p.ID == youPlayerID {
			cps.Hand = copyCards(p.Hand)
		}
		players[i] = cps
	}

	reqTrios, reqEscalas := g.CurrentRound().Requirements()

	cgs := ClientGameState{
		YouPlayerID:     youPlayerID,
		RoundIndex:      g.RoundIndex,
		RoundName:       g.CurrentRound().Name(),
		RequiredTrios:   reqTrios,
		RequiredEscalas: reqEscalas,
		MinEscalaLength: g.CurrentRound().MinEscalaLength(),
		TurnIndex:       g.TurnIndex,
		TurnPlayerID:    g.Players[g.TurnIndex].ID,
		Phase:           g.CurrentPhase(),
		Players:         players,
		DeckRemaining:   g.deck.remaining(),
		IsRoundFinished: g.IsRoundFinished,
		IsGameEnded:     g.IsGameEnded,
		WinnerID:        g.WinnerID,
	}

	if top, ok := g.discard.top(); ok {
		cgs.DiscardTopCard = top
		cgs.HasDiscardTop = true
	}

	log := g.currentLog()
	if len(log.ActionsLog) > 0 {
		last := log.ActionsLog[len(log.ActionsLog)-1]
		cgs.LastActionLog = &last
	}

	return cgs
}
