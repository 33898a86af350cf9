package carioca

// ActionMarkReady is run between rounds: once every seat has marked ready,
// RunAction starts the next round. After round nine the game has already
// ended when the round settled, and MarkReady is no longer accepted.
type ActionMarkReady struct {
	act
}

func (a *ActionMarkReady) requiresTurn() bool { return false }

func (a *ActionMarkReady) IsPossible(g GameState) bool {
	p, ok := g.player(a.PlayerID)
	if !ok {
		return false
	}
	return g.IsRoundFinished && !g.IsGameEnded && !p.IsReadyForNextRound
}

func (a *ActionMarkReady) Run(g *GameState) error {
	if !a.IsPossible(*g) {
		return errActionNotPossible
	}
	p, _ := g.player(a.PlayerID)
	p.IsReadyForNextRound = true
	return nil
}

func (a *ActionMarkReady) YieldsTurn(g GameState) bool { return false }
