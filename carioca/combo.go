package carioca

import "sort"

// HandMask is a bitmask over hand positions. Hands never exceed 13 cards in
// play (12 dealt + 1 drawn) but candidates are built with headroom for a
// reordered/extended hand, so a 16-bit mask is used throughout.
type HandMask uint16

// MeldType distinguishes the two meld shapes a MeldCandidate can represent.
type MeldType int

const (
	MeldTrio MeldType = iota
	MeldEscala
)

// MeldCandidate is a candidate meld drawn from a specific hand: which
// indices it uses and the precomputed bitmask of those indices, for O(1)
// disjointness testing during the bajada search.
type MeldCandidate struct {
	Type        MeldType
	CardIndices []int
	Mask        HandMask
}

func newCandidate(meldType MeldType, indices []int) MeldCandidate {
	mask := HandMask(0)
	for _, i := range indices {
		mask |= 1 << uint(i)
	}
	cp := make([]int, len(indices))
	copy(cp, indices)
	return MeldCandidate{Type: meldType, CardIndices: cp, Mask: mask}
}

// Overlaps reports whether two candidates share any hand index.
func (m MeldCandidate) Overlaps(other MeldCandidate) bool {
	return m.Mask&other.Mask != 0
}

// Cards resolves a candidate's indices against a hand, in candidate order.
func (m MeldCandidate) Cards(hand []Card) []Card {
	cards := make([]Card, len(m.CardIndices))
	for i, idx := range m.CardIndices {
		cards[i] = hand[idx]
	}
	return cards
}

// FindAllTrioCandidates enumerates every trio candidate in hand: for each
// rank with k >= 3 identical-rank indices, every contiguous window of size
// 3..k ((k-1)*(k-2)/2 windows, not all 2^k subsets), plus, for every joker, every
// pair of same-rank indices combined with that joker into a 3-card trio.
func FindAllTrioCandidates(hand []Card) []MeldCandidate {
	var candidates []MeldCandidate

	var jokerIndices []int
	byValue := make(map[Value][]int)
	for i, c := range hand {
		if c.IsJoker {
			jokerIndices = append(jokerIndices, i)
			continue
		}
		byValue[c.Value] = append(byValue[c.Value], i)
	}

	for _, indices := range byValue {
		n := len(indices)
		for start := 0; start < n; start++ {
			for end := start + 3; end <= n; end++ {
				candidates = append(candidates, newCandidate(MeldTrio, indices[start:end]))
			}
		}

		if n >= 2 && len(jokerIndices) > 0 {
			for _, jokerIdx := range jokerIndices {
				for i := 0; i < n; i++ {
					for j := i + 1; j < n; j++ {
						candidates = append(candidates, newCandidate(MeldTrio, []int{indices[i], indices[j], jokerIdx}))
					}
				}
			}
		}
	}

	return candidates
}

// FindAllEscalaCandidates enumerates every escala candidate in hand: for
// each suit, standard indices sorted by rank, growing a run while the next
// rank delta is 1 (consecutive) or 2 with an unused joker inserted between;
// every prefix-of-the-tail of length >= 4 within a grown run is emitted, and
// the run stops on a larger gap or a second joker requirement. Candidates
// are deduplicated by bitmask.
func FindAllEscalaCandidates(hand []Card) []MeldCandidate {
	var candidates []MeldCandidate

	var jokerIndices []int
	for i, c := range hand {
		if c.IsJoker {
			jokerIndices = append(jokerIndices, i)
		}
	}

	for _, suit := range AllSuits {
		type rankedIdx struct {
			rank int
			idx  int
		}
		var suitCards []rankedIdx
		for i, c := range hand {
			if !c.IsJoker && c.Suit == suit {
				suitCards = append(suitCards, rankedIdx{c.Value.Rank(), i})
			}
		}
		sort.Slice(suitCards, func(i, j int) bool { return suitCards[i].rank < suitCards[j].rank })

		n := len(suitCards)
		if n < 3 || (n < 4 && len(jokerIndices) == 0) {
			continue
		}

		for start := 0; start < n; start++ {
			selected := []int{suitCards[start].idx}
			prevRank := suitCards[start].rank
			jokerUsed := false
			var jokerSlot *int

		grow:
			for k := start + 1; k < n; k++ {
				curRank := suitCards[k].rank
				curIdx := suitCards[k].idx
				gap := curRank - prevRank

				switch {
				case gap == 0:
					continue // double-deck duplicate rank: skip, never reused in this run
				case gap == 1:
					selected = append(selected, curIdx)
					prevRank = curRank
				case gap == 2 && !jokerUsed && len(jokerIndices) > 0:
					jokerUsed = true
					slot := jokerIndices[0]
					jokerSlot = &slot
					selected = append(selected, slot, curIdx)
					prevRank = curRank
				default:
					break grow // larger gap, or a second joker would be needed
				}

				if len(selected) >= 4 {
					emitSubruns(selected, jokerSlot, jokerIndices, &candidates)
				}
				if len(selected) == 13 {
					break grow
				}
			}
		}
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Mask < candidates[j].Mask })
	candidates = dedupByMask(candidates)

	return candidates
}

// emitSubruns emits every suffix window of length >= 4 of a grown run. A
// run that embeds a joker is emitted once per joker in the hand (the slot
// is interchangeable), so the bajada search can pick whichever joker copy
// is still free.
func emitSubruns(indices []int, jokerSlot *int, jokerIndices []int, out *[]MeldCandidate) {
	length := len(indices)
	for start := 0; start <= length-4; start++ {
		sub := indices[start:]

		if jokerSlot == nil {
			*out = append(*out, newCandidate(MeldEscala, sub))
			continue
		}

		slotAt := -1
		for i, x := range sub {
			if x == *jokerSlot {
				slotAt = i
			}
		}
		if slotAt < 0 {
			*out = append(*out, newCandidate(MeldEscala, sub))
			continue
		}
		for _, jokerIdx := range jokerIndices {
			variant := make([]int, len(sub))
			copy(variant, sub)
			variant[slotAt] = jokerIdx
			*out = append(*out, newCandidate(MeldEscala, variant))
		}
	}
}

func dedupByMask(candidates []MeldCandidate) []MeldCandidate {
	out := make([]MeldCandidate, 0, len(candidates))
	var lastMask HandMask
	first := true
	for _, c := range candidates {
		if first || c.Mask != lastMask {
			out = append(out, c)
			lastMask = c.Mask
			first = false
		}
	}
	return out
}
