package carioca

// PlayerState is one seat's state within a GameState. Hand order is
// client-visible and authoritative: discard/shed/bajada all address cards by
// index into Hand, so ReorderHand is the only operation allowed to change
// that order wholesale.
type PlayerState struct {
	ID string `json:"id"`

	Hand []Card `json:"hand"`

	// Points is this player's cumulative score across rounds, monotone
	// non-decreasing.
	Points int `json:"points"`

	// HasDroppedHand is true once this player has completed their bajada
	// for the current round ("se bajó").
	HasDroppedHand bool `json:"hasDroppedHand"`

	// DroppedCombinations holds this player's melds currently on the
	// table, extensions included, in the order they were declared.
	DroppedCombinations [][]Card `json:"droppedCombinations"`

	// TurnsPlayed counts full turns completed this round. The bot policy
	// never attempts a bajada while it is 0; the engine does not check it.
	TurnsPlayed int `json:"turnsPlayed"`

	// HasDrawnThisTurn is true once exactly one draw has been applied
	// since the last discard (or round start) for this seat.
	HasDrawnThisTurn bool `json:"hasDrawnThisTurn"`

	// DroppedHandThisTurn is true if this player's bajada happened on the
	// turn currently in progress; shedding is forbidden on that same turn.
	DroppedHandThisTurn bool `json:"droppedHandThisTurn"`

	// IsReadyForNextRound is set by ActionMarkReady while the game is
	// waiting between rounds (and for bot seats when the round settles).
	IsReadyForNextRound bool `json:"isReadyForNextRound"`
}

// newPlayerState builds a fresh seat with the given id.
func newPlayerState(id string) *PlayerState {
	return &PlayerState{ID: id, Hand: []Card{}, DroppedCombinations: [][]Card{}}
}

// resetRoundFlags clears everything that start_round resets for a seat.
func (p *PlayerState) resetRoundFlags() {
	p.HasDroppedHand = false
	p.DroppedCombinations = [][]Card{}
	p.TurnsPlayed = 0
	p.HasDrawnThisTurn = false
	p.DroppedHandThisTurn = false
	p.IsReadyForNextRound = false
}

// resetTurnFlags clears the per-turn flags when the turn changes seats.
func (p *PlayerState) resetTurnFlags() {
	p.HasDrawnThisTurn = false
	p.DroppedHandThisTurn = false
}

// handPoints sums the point value of every card currently in hand.
func (p *PlayerState) handPoints() int {
	total := 0
	for _, c := range p.Hand {
		total += c.Points()
	}
	return total
}

// resolveCardGroups maps card-level groups onto hand indices, consuming one
// distinct index per referenced card so a double-deck duplicate in the hand
// can appear in two different groups but a single copy cannot. ok is false
// if any card has no unconsumed match.
func resolveCardGroups(hand []Card, groups [][]Card) ([][]int, bool) {
	used := make([]bool, len(hand))
	out := make([][]int, 0, len(groups))
	for _, group := range groups {
		indices := make([]int, 0, len(group))
		for _, card := range group {
			found := -1
			for i, h := range hand {
				if !used[i] && h == card {
					found = i
					break
				}
			}
			if found < 0 {
				return nil, false
			}
			used[found] = true
			indices = append(indices, found)
		}
		out = append(out, indices)
	}
	return out, true
}

// resolveCardOrder maps a full-hand reordering expressed as cards onto a
// permutation of the current hand's indices. ok is false unless newHand is
// exactly a permutation of hand as a multiset.
func resolveCardOrder(hand []Card, newHand []Card) ([]int, bool) {
	if len(newHand) != len(hand) {
		return nil, false
	}
	groups, ok := resolveCardGroups(hand, [][]Card{newHand})
	if !ok {
		return nil, false
	}
	return groups[0], true
}

// removeHandIndices removes the given hand indices (assumed sorted
// ascending, no duplicates) and returns the removed cards in their original
// order.
func removeHandIndices(hand []Card, indices []int) (remaining []Card, removed []Card) {
	toRemove := make(map[int]bool, len(indices))
	for _, i := range indices {
		toRemove[i] = true
	}
	remaining = make([]Card, 0, len(hand)-len(indices))
	removed = make([]Card, 0, len(indices))
	for i, c := range hand {
		if toRemove[i] {
			removed = append(removed, c)
		} else {
			remaining = append(remaining, c)
		}
	}
	return remaining, removed
}
