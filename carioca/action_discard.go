package carioca

// ActionDiscard discards the card at HandIndex, ending the acting player's
// turn. If it empties their hand, the round settles immediately.
type ActionDiscard struct {
	act
	HandIndex int `json:"handIndex"`
}

func (a *ActionDiscard) IsPossible(g GameState) bool {
	idx, ok := g.playerIndex(a.PlayerID)
	if !ok || idx != g.TurnIndex {
		return false
	}
	if g.IsRoundFinished || g.CurrentPhase() == PhaseNeedDraw {
		return false
	}
	p := g.Players[idx]
	return a.HandIndex >= 0 && a.HandIndex < len(p.Hand)
}

func (a *ActionDiscard) Run(g *GameState) error {
	if !a.IsPossible(*g) {
		return errActionNotPossible
	}
	p, _ := g.player(a.PlayerID)
	card := p.Hand[a.HandIndex]
	p.Hand = append(p.Hand[:a.HandIndex], p.Hand[a.HandIndex+1:]...)
	g.discard.add(card)

	if len(p.Hand) == 0 && p.HasDroppedHand {
		g.settleRound(p.ID)
	}
	return nil
}

func (a *ActionDiscard) YieldsTurn(g GameState) bool { return true }
