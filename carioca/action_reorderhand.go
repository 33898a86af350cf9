package carioca

// ActionReorderHand replaces the acting player's hand order with NewOrder,
// a permutation of their current hand indices. Reordering is a client-side
// convenience (grouping cards for a future bajada) and never touches whose
// turn it is, so it's legal even when it isn't the acting player's turn.
type ActionReorderHand struct {
	act
	NewOrder []int  `json:"newOrder"`
	NewHand  []Card `json:"newHand,omitempty"`
}

func (a *ActionReorderHand) requiresTurn() bool { return false }

// Enrich resolves a card-level NewHand payload into a NewOrder permutation.
// A NewHand that isn't an exact multiset match of the current hand leaves
// NewOrder empty, which IsPossible rejects (unless the hand itself is empty).
func (a *ActionReorderHand) Enrich(g GameState) {
	if len(a.NewOrder) > 0 || len(a.NewHand) == 0 {
		return
	}
	p, ok := g.player(a.PlayerID)
	if !ok {
		return
	}
	order, ok := resolveCardOrder(p.Hand, a.NewHand)
	if !ok {
		return
	}
	a.NewOrder = order
}

func (a *ActionReorderHand) IsPossible(g GameState) bool {
	p, ok := g.player(a.PlayerID)
	if !ok || g.IsGameEnded || g.IsRoundFinished {
		return false
	}
	return isPermutation(a.NewOrder, len(p.Hand))
}

func (a *ActionReorderHand) Run(g *GameState) error {
	if !a.IsPossible(*g) {
		return errActionNotPossible
	}
	p, _ := g.player(a.PlayerID)
	reordered := make([]Card, len(p.Hand))
	for newPos, oldIdx := range a.NewOrder {
		reordered[newPos] = p.Hand[oldIdx]
	}
	p.Hand = reordered
	return nil
}

func (a *ActionReorderHand) YieldsTurn(g GameState) bool { return false }

func isPermutation(order []int, n int) bool {
	if len(order) != n {
		return false
	}
	seen := make([]bool, n)
	for _, idx := range order {
		if idx < 0 || idx >= n || seen[idx] {
			return false
		}
		seen[idx] = true
	}
	return true
}
