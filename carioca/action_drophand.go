package carioca

import "sort"

// ActionDropHand is the bajada: the acting player declares a set of hand-
// index groups, each meant to be a complete trio or escala, together
// satisfying the current round's requirement exactly. Clients submit the
// groups as cards (Combinations); Enrich resolves them against the hand
// into Groups before validation.
type ActionDropHand struct {
	act
	Groups       [][]int  `json:"groups"`
	Combinations [][]Card `json:"combinations,omitempty"`
}

// Enrich resolves a card-level Combinations payload into hand-index Groups,
// consuming one distinct index per referenced card so duplicates are
// accounted for. Unresolvable cards leave Groups empty, which IsPossible
// rejects.
func (a *ActionDropHand) Enrich(g GameState) {
	if len(a.Groups) > 0 || len(a.Combinations) == 0 {
		return
	}
	p, ok := g.player(a.PlayerID)
	if !ok {
		return
	}
	groups, ok := resolveCardGroups(p.Hand, a.Combinations)
	if !ok {
		return
	}
	a.Groups = groups
}

func (a *ActionDropHand) IsPossible(g GameState) bool {
	idx, ok := g.playerIndex(a.PlayerID)
	if !ok || idx != g.TurnIndex {
		return false
	}
	if g.IsRoundFinished || g.CurrentPhase() != PhaseAfterDraw {
		return false
	}
	p := g.Players[idx]
	return !p.HasDroppedHand && len(a.Groups) > 0
}

func (a *ActionDropHand) Run(g *GameState) error {
	if !a.IsPossible(*g) {
		return errActionNotPossible
	}
	p, _ := g.player(a.PlayerID)
	hand := p.Hand

	used := make(map[int]bool)
	melds := make([][]Card, 0, len(a.Groups))
	trios, escalas := 0, 0
	minEscala := g.CurrentRound().MinEscalaLength()

	for _, group := range a.Groups {
		cards := make([]Card, 0, len(group))
		for _, idx := range group {
			if idx < 0 || idx >= len(hand) || used[idx] {
				return errInvalidCardIndex
			}
			used[idx] = true
			cards = append(cards, hand[idx])
		}

		switch {
		case IsValidTrio(cards):
			trios++
		case IsValidEscala(cards) && len(cards) >= minEscala:
			escalas++
		default:
			return errInvalidMeld
		}
		melds = append(melds, cards)
	}

	reqTrios, reqEscalas := g.CurrentRound().Requirements()
	if trios != reqTrios || escalas != reqEscalas {
		return errRequirementNotMet
	}

	usedIndices := make([]int, 0, len(used))
	for idx := range used {
		usedIndices = append(usedIndices, idx)
	}
	sort.Ints(usedIndices)
	remaining, _ := removeHandIndices(hand, usedIndices)

	p.Hand = remaining
	p.DroppedCombinations = append(p.DroppedCombinations, melds...)
	p.HasDroppedHand = true
	p.DroppedHandThisTurn = true

	if len(p.Hand) == 0 {
		g.settleRound(p.ID)
	}

	return nil
}

func (a *ActionDropHand) YieldsTurn(g GameState) bool { return false }
