package carioca

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindBestBajadaTwoTrios(t *testing.T) {
	hand := []Card{
		StandardCard(Hearts, Five), StandardCard(Clubs, Five), StandardCard(Spades, Five),
		StandardCard(Hearts, Nine), StandardCard(Clubs, Nine), StandardCard(Diamonds, Nine),
		StandardCard(Hearts, Two), StandardCard(Clubs, King),
	}
	solution, ok := FindBestBajada(hand, 2, 0, 4, false)
	require.True(t, ok)
	require.Len(t, solution.Melds, 2)
	for _, meld := range solution.Melds {
		require.Equal(t, MeldTrio, meld.Type)
		require.True(t, IsValidTrio(meld.Cards(hand)))
	}
	require.Len(t, solution.Remainder, 2)
}

func TestFindBestBajadaNoSolution(t *testing.T) {
	hand := []Card{
		StandardCard(Hearts, Two), StandardCard(Clubs, Five), StandardCard(Spades, Nine),
		StandardCard(Diamonds, Jack), StandardCard(Hearts, King),
	}
	_, ok := FindBestBajada(hand, 1, 0, 4, false)
	require.False(t, ok)
}

func TestFindBestBajadaMinimisesRemainingPoints(t *testing.T) {
	// Three aces plus three twos: the round needs one trio. Exhaustive
	// search must keep the ace trio down (shedding 20-point aces) rather
	// than the cheap twos.
	hand := []Card{
		StandardCard(Hearts, Ace), StandardCard(Clubs, Ace), StandardCard(Spades, Ace),
		StandardCard(Hearts, Two), StandardCard(Clubs, Two), StandardCard(Spades, Two),
	}
	solution, ok := FindBestBajada(hand, 1, 0, 4, true)
	require.True(t, ok)
	require.Len(t, solution.Melds, 1)

	melded := solution.Melds[0].Cards(hand)
	require.Equal(t, Ace, melded[0].Value)
	require.Equal(t, 6, pointsOf(solution.Remainder))
}

func TestFindBestBajadaTrioAndEscala(t *testing.T) {
	hand := []Card{
		StandardCard(Hearts, Seven), StandardCard(Clubs, Seven), StandardCard(Spades, Seven),
		StandardCard(Diamonds, Three), StandardCard(Diamonds, Four),
		StandardCard(Diamonds, Five), StandardCard(Diamonds, Six),
		StandardCard(Hearts, King),
	}
	solution, ok := FindBestBajada(hand, 1, 1, 4, true)
	require.True(t, ok)
	require.Len(t, solution.Melds, 2)

	var trios, escalas int
	for _, meld := range solution.Melds {
		if meld.Type == MeldTrio {
			trios++
		} else {
			escalas++
		}
	}
	require.Equal(t, 1, trios)
	require.Equal(t, 1, escalas)

	// Disjointness: the used masks may not overlap.
	require.Zero(t, solution.Melds[0].Mask&solution.Melds[1].Mask)
}

func TestFindBestBajadaEscalaRealNeedsThirteen(t *testing.T) {
	hand := make([]Card, 0, 13)
	for _, v := range AllValues {
		hand = append(hand, StandardCard(Spades, v))
	}

	solution, ok := FindBestBajada(hand, 0, 1, 13, false)
	require.True(t, ok)
	require.Len(t, solution.Melds, 1)
	require.Len(t, solution.Melds[0].CardIndices, 13)
	require.Empty(t, solution.Remainder)

	// A 12-card run must not satisfy the length-13 requirement.
	_, ok = FindBestBajada(hand[:12], 0, 1, 13, false)
	require.False(t, ok)
}

func TestCountPartialMelds(t *testing.T) {
	// Three of a kind is three unordered pairs.
	require.Equal(t, 3, countPartialMelds([]Card{
		StandardCard(Hearts, Nine), StandardCard(Clubs, Nine), StandardCard(Spades, Nine),
	}))

	// 5♥ 6♥ 7♥: distances 1, 1, 2 all count.
	require.Equal(t, 3, countPartialMelds([]Card{
		StandardCard(Hearts, Five), StandardCard(Hearts, Six), StandardCard(Hearts, Seven),
	}))

	// Only the rank pair counts; the 8♥ is three ranks from either five.
	require.Equal(t, 1, countPartialMelds([]Card{
		StandardCard(Hearts, Five), StandardCard(Clubs, Five), StandardCard(Hearts, Eight),
	}))

	// Jokers never pair.
	require.Equal(t, 0, countPartialMelds([]Card{
		StandardCard(Hearts, Five), JokerCard(), JokerCard(),
	}))
}

func TestFindBestBajadaBreaksPointTiesOnPartialMelds(t *testing.T) {
	// Tens and jacks are worth ten points each, so either trio leaves 38
	// points behind. Keeping the tens alongside the 8♥ leaves one more
	// partial pair (10♥-8♥ at distance two), so the jacks must be melded.
	hand := []Card{
		StandardCard(Hearts, Ten), StandardCard(Clubs, Ten), StandardCard(Spades, Ten),
		StandardCard(Hearts, Jack), StandardCard(Clubs, Jack), StandardCard(Spades, Jack),
		StandardCard(Hearts, Eight),
	}
	solution, ok := FindBestBajada(hand, 1, 0, 4, true)
	require.True(t, ok)
	require.Len(t, solution.Melds, 1)
	require.Equal(t, Jack, solution.Melds[0].Cards(hand)[0].Value)
	require.Equal(t, 4, countPartialMelds(solution.Remainder))
}

func TestFindBestBajadaNeverExceedsRequirement(t *testing.T) {
	// Two complete trios available but the round asks for one: the
	// solution must contain exactly one, never both.
	hand := []Card{
		StandardCard(Hearts, Five), StandardCard(Clubs, Five), StandardCard(Spades, Five),
		StandardCard(Hearts, Nine), StandardCard(Clubs, Nine), StandardCard(Diamonds, Nine),
	}
	solution, ok := FindBestBajada(hand, 1, 0, 4, true)
	require.True(t, ok)
	require.Len(t, solution.Melds, 1)
}

func TestHandScoreOrdering(t *testing.T) {
	require.True(t, HandScore{RemainingPoints: 5, PartialMelds: 0}.Less(HandScore{RemainingPoints: 9, PartialMelds: 3}))
	require.True(t, HandScore{RemainingPoints: 5, PartialMelds: 2}.Less(HandScore{RemainingPoints: 5, PartialMelds: 1}))
	require.False(t, HandScore{RemainingPoints: 5, PartialMelds: 1}.Less(HandScore{RemainingPoints: 5, PartialMelds: 1}))
}
