package carioca

// ActionShedCard ("cortar") extends a meld already on the table, the
// acting player's own or an opponent's, with a single card from the
// acting player's hand.
type ActionShedCard struct {
	act
	HandIndex    int    `json:"handIndex"`
	OntoPlayerID string `json:"ontoPlayerID"`
	MeldIndex    int    `json:"meldIndex"`
}

func (a *ActionShedCard) IsPossible(g GameState) bool {
	idx, ok := g.playerIndex(a.PlayerID)
	if !ok || idx != g.TurnIndex {
		return false
	}
	if g.IsRoundFinished || g.CurrentPhase() != PhaseAfterDraw {
		return false
	}
	p := g.Players[idx]
	if !p.HasDroppedHand || a.HandIndex < 0 || a.HandIndex >= len(p.Hand) {
		return false
	}

	onto, ok := g.player(a.OntoPlayerID)
	if !ok || a.MeldIndex < 0 || a.MeldIndex >= len(onto.DroppedCombinations) {
		return false
	}

	position, can := CanShed(onto.DroppedCombinations[a.MeldIndex], p.Hand[a.HandIndex])
	return can && position != ShedNone
}

func (a *ActionShedCard) Run(g *GameState) error {
	if !a.IsPossible(*g) {
		return errActionNotPossible
	}
	p, _ := g.player(a.PlayerID)
	onto, _ := g.player(a.OntoPlayerID)

	card := p.Hand[a.HandIndex]
	meld := onto.DroppedCombinations[a.MeldIndex]

	position, can := CanShed(meld, card)
	if !can {
		return errCardDoesNotFit
	}

	switch position {
	case ShedExtendLeft:
		onto.DroppedCombinations[a.MeldIndex] = append([]Card{card}, meld...)
	default: // ShedExtendRight, ShedTrioExtension
		onto.DroppedCombinations[a.MeldIndex] = append(meld, card)
	}

	p.Hand = append(p.Hand[:a.HandIndex], p.Hand[a.HandIndex+1:]...)

	if len(p.Hand) == 0 {
		g.settleRound(p.ID)
	}
	return nil
}

func (a *ActionShedCard) YieldsTurn(g GameState) bool { return false }
