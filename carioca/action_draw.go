package carioca

// ActionDrawFromDeck draws the top card of the stock into the acting
// player's hand.
type ActionDrawFromDeck struct {
	act
}

func (a *ActionDrawFromDeck) IsPossible(g GameState) bool {
	idx, ok := g.playerIndex(a.PlayerID)
	if !ok || idx != g.TurnIndex {
		return false
	}
	return !g.IsRoundFinished &&
		g.CurrentPhase() == PhaseNeedDraw &&
		g.deck.remaining() > 0
}

func (a *ActionDrawFromDeck) Run(g *GameState) error {
	if !a.IsPossible(*g) {
		return errActionNotPossible
	}
	p, _ := g.player(a.PlayerID)
	card, ok := g.deck.draw()
	if !ok {
		return errActionNotPossible
	}
	p.Hand = append(p.Hand, card)
	p.HasDrawnThisTurn = true
	return nil
}

func (a *ActionDrawFromDeck) YieldsTurn(g GameState) bool { return false }

// ActionDrawFromDiscard draws the top card of the discard pile into the
// acting player's hand.
type ActionDrawFromDiscard struct {
	act
}

func (a *ActionDrawFromDiscard) IsPossible(g GameState) bool {
	idx, ok := g.playerIndex(a.PlayerID)
	if !ok || idx != g.TurnIndex {
		return false
	}
	// Once a player is bajado the pozo is forbidden to them.
	if g.Players[idx].HasDroppedHand {
		return false
	}
	return !g.IsRoundFinished &&
		g.CurrentPhase() == PhaseNeedDraw &&
		!g.discard.isEmpty()
}

func (a *ActionDrawFromDiscard) Run(g *GameState) error {
	if !a.IsPossible(*g) {
		return errActionNotPossible
	}
	p, _ := g.player(a.PlayerID)
	card, ok := g.discard.draw()
	if !ok {
		return errActionNotPossible
	}
	p.Hand = append(p.Hand, card)
	p.HasDrawnThisTurn = true
	return nil
}

func (a *ActionDrawFromDiscard) YieldsTurn(g GameState) bool { return false }
