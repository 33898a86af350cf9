package carioca

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// countCards tallies every card in the system: deck, discard, hands, and
// table melds. It must always equal 108.
func countCards(g *GameState) int {
	total := g.deck.remaining() + g.discard.len()
	for _, p := range g.Players {
		total += len(p.Hand)
		for _, meld := range p.DroppedCombinations {
			total += len(meld)
		}
	}
	return total
}

func TestNewGameDealsFreshRound(t *testing.T) {
	g := New([]string{"alice", "bob"})

	require.Len(t, g.Players[0].Hand, 12)
	require.Len(t, g.Players[1].Hand, 12)
	require.Equal(t, 1, g.discard.len())
	require.Equal(t, 83, g.deck.remaining())
	require.Equal(t, 0, g.TurnIndex)
	require.Equal(t, 0, g.RoundIndex)
	require.Equal(t, TwoTrios, g.CurrentRound())
	require.Equal(t, 108, countCards(g))
}

func TestSimpleTurn(t *testing.T) {
	g := New([]string{"alice", "bob"})

	require.NoError(t, g.RunAction(NewActionDrawFromDeck("alice")))
	require.Len(t, g.Players[0].Hand, 13)
	require.Equal(t, 0, g.TurnIndex, "drawing does not yield the turn")

	require.NoError(t, g.RunAction(NewActionDiscard("alice", 0)))
	require.Len(t, g.Players[0].Hand, 12)
	require.Equal(t, 2, g.discard.len())
	require.Equal(t, 1, g.TurnIndex)
	require.Equal(t, 1, g.Players[0].TurnsPlayed)
	require.Equal(t, 108, countCards(g))
}

func TestTurnOrderEnforced(t *testing.T) {
	g := New([]string{"alice", "bob"})

	err := g.RunAction(NewActionDrawFromDeck("bob"))
	require.ErrorIs(t, err, errNotYourTurn)

	err = g.RunAction(NewActionDiscard("alice", 0))
	require.ErrorIs(t, err, errActionNotPossible, "must draw before discarding")
}

func TestDrawFromDiscardForbiddenAfterBajada(t *testing.T) {
	g := New([]string{"alice", "bob"})
	g.Players[0].HasDroppedHand = true

	err := g.RunAction(NewActionDrawFromDiscard("alice"))
	require.ErrorIs(t, err, errActionNotPossible)

	require.NoError(t, g.RunAction(NewActionDrawFromDeck("alice")))
}

func TestConservationAcrossTurns(t *testing.T) {
	g := New([]string{"alice", "bob", "carol"})

	players := []string{"alice", "bob", "carol"}
	for i := 0; i < 12; i++ {
		id := players[i%3]
		require.NoError(t, g.RunAction(NewActionDrawFromDeck(id)))
		require.NoError(t, g.RunAction(NewActionDiscard(id, 0)))
		require.Equal(t, 108, countCards(g))
	}
}

func TestRoundScheduleRequirements(t *testing.T) {
	expected := [][2]int{{2, 0}, {1, 1}, {0, 2}, {3, 0}, {2, 1}, {1, 2}, {0, 3}, {4, 0}, {0, 1}}
	for i, exp := range expected {
		trios, escalas := roundTypeForIndex(i).Requirements()
		require.Equal(t, exp[0], trios, "round %d", i)
		require.Equal(t, exp[1], escalas, "round %d", i)
	}
	require.Equal(t, 13, EscalaReal.MinEscalaLength())
	require.Equal(t, 4, TwoTrios.MinEscalaLength())
}

func TestDropHandHappyPath(t *testing.T) {
	g := New([]string{"alice", "bob"})
	alice := g.Players[0]

	g.TurnIndex = 0
	alice.Hand = []Card{
		StandardCard(Hearts, Five), StandardCard(Clubs, Five), StandardCard(Spades, Five),
		StandardCard(Hearts, Nine), StandardCard(Clubs, Nine), StandardCard(Diamonds, Nine),
		StandardCard(Hearts, Two), StandardCard(Clubs, King),
	}
	alice.HasDrawnThisTurn = true
	alice.TurnsPlayed = 1

	require.NoError(t, g.RunAction(NewActionDropHand("alice", [][]int{{0, 1, 2}, {3, 4, 5}})))

	require.True(t, alice.HasDroppedHand)
	require.True(t, alice.DroppedHandThisTurn)
	require.Len(t, alice.DroppedCombinations, 2)
	require.Equal(t, []Card{StandardCard(Hearts, Two), StandardCard(Clubs, King)}, alice.Hand)
	require.Equal(t, 0, g.TurnIndex, "bajada does not yield the turn")
}

func TestDropHandRejectsWrongRequirementCount(t *testing.T) {
	g := New([]string{"alice", "bob"})
	alice := g.Players[0]

	g.TurnIndex = 0
	alice.Hand = []Card{
		StandardCard(Hearts, Five), StandardCard(Clubs, Five), StandardCard(Spades, Five),
		StandardCard(Hearts, Nine), StandardCard(Clubs, Nine), StandardCard(Diamonds, Nine),
		StandardCard(Hearts, Queen), StandardCard(Clubs, Queen), StandardCard(Spades, Queen),
		StandardCard(Hearts, Two),
	}
	alice.HasDrawnThisTurn = true
	alice.TurnsPlayed = 1

	// Round one requires exactly two trios; one is too few, three too many.
	err := g.RunAction(NewActionDropHand("alice", [][]int{{0, 1, 2}}))
	require.ErrorIs(t, err, errRequirementNotMet)

	err = g.RunAction(NewActionDropHand("alice", [][]int{{0, 1, 2}, {3, 4, 5}, {6, 7, 8}}))
	require.ErrorIs(t, err, errRequirementNotMet)

	require.False(t, alice.HasDroppedHand)
	require.Len(t, alice.Hand, 10)
}

func TestDropHandRejectsInvalidMeldAndReusedIndex(t *testing.T) {
	g := New([]string{"alice", "bob"})
	alice := g.Players[0]

	g.TurnIndex = 0
	alice.Hand = []Card{
		StandardCard(Hearts, Five), StandardCard(Clubs, Five), StandardCard(Spades, Six),
		StandardCard(Hearts, Nine), StandardCard(Clubs, Nine), StandardCard(Diamonds, Nine),
	}
	alice.HasDrawnThisTurn = true
	alice.TurnsPlayed = 1

	err := g.RunAction(NewActionDropHand("alice", [][]int{{0, 1, 2}, {3, 4, 5}}))
	require.ErrorIs(t, err, errInvalidMeld)

	err = g.RunAction(NewActionDropHand("alice", [][]int{{3, 4, 5}, {3, 4, 5}}))
	require.ErrorIs(t, err, errInvalidCardIndex)
}

func TestDropHandRejectsSecondBajada(t *testing.T) {
	g := New([]string{"alice", "bob"})
	alice := g.Players[0]

	g.TurnIndex = 0
	alice.HasDroppedHand = true
	alice.HasDrawnThisTurn = true

	err := g.RunAction(NewActionDropHand("alice", [][]int{{0, 1, 2}}))
	require.ErrorIs(t, err, errActionNotPossible)
}

func TestDropHandFromCardCombinations(t *testing.T) {
	g := New([]string{"alice", "bob"})
	alice := g.Players[0]

	g.TurnIndex = 0
	alice.Hand = []Card{
		StandardCard(Hearts, Five), StandardCard(Clubs, Five), StandardCard(Spades, Five),
		StandardCard(Hearts, Nine), StandardCard(Clubs, Nine), StandardCard(Diamonds, Nine),
		StandardCard(Hearts, Two),
	}
	alice.HasDrawnThisTurn = true
	alice.TurnsPlayed = 1

	action := NewActionDropHandCards("alice", [][]Card{
		{StandardCard(Hearts, Five), StandardCard(Clubs, Five), StandardCard(Spades, Five)},
		{StandardCard(Hearts, Nine), StandardCard(Clubs, Nine), StandardCard(Diamonds, Nine)},
	})
	require.NoError(t, g.RunAction(action))
	require.True(t, alice.HasDroppedHand)
	require.Equal(t, []Card{StandardCard(Hearts, Two)}, alice.Hand)
}

func TestDropHandFromCardCombinationsRejectsAbsentCard(t *testing.T) {
	g := New([]string{"alice", "bob"})
	alice := g.Players[0]

	g.TurnIndex = 0
	alice.Hand = []Card{
		StandardCard(Hearts, Five), StandardCard(Clubs, Five),
		StandardCard(Hearts, Nine), StandardCard(Clubs, Nine), StandardCard(Diamonds, Nine),
	}
	alice.HasDrawnThisTurn = true
	alice.TurnsPlayed = 1

	// The spade five is referenced but not held; a single hand copy may
	// not satisfy two references either.
	action := NewActionDropHandCards("alice", [][]Card{
		{StandardCard(Hearts, Five), StandardCard(Clubs, Five), StandardCard(Spades, Five)},
		{StandardCard(Hearts, Nine), StandardCard(Clubs, Nine), StandardCard(Diamonds, Nine)},
	})
	require.ErrorIs(t, g.RunAction(action), errActionNotPossible)
}

func TestReorderHand(t *testing.T) {
	g := New([]string{"alice", "bob"})
	alice := g.Players[0]

	original := copyCards(alice.Hand)

	order := make([]int, len(original))
	for i := range order {
		order[i] = len(original) - 1 - i
	}
	require.NoError(t, g.RunAction(NewActionReorderHand("alice", order)))
	for i, c := range alice.Hand {
		require.Equal(t, original[len(original)-1-i], c)
	}

	// Identity reorder is a no-op.
	identity := make([]int, len(alice.Hand))
	for i := range identity {
		identity[i] = i
	}
	before := copyCards(alice.Hand)
	require.NoError(t, g.RunAction(NewActionReorderHand("alice", identity)))
	require.Equal(t, before, alice.Hand)

	// Non-permutations fail.
	err := g.RunAction(NewActionReorderHand("alice", []int{0, 0, 1}))
	require.ErrorIs(t, err, errActionNotPossible)
	err = g.RunAction(NewActionReorderHand("alice", []int{0}))
	require.ErrorIs(t, err, errActionNotPossible)

	// Reordering is legal off-turn.
	require.NoError(t, g.RunAction(NewActionReorderHand("bob", identity)))
}

func TestEndRoundScoresAndWaits(t *testing.T) {
	g := New([]string{"alice", "bob"})
	alice, bob := g.Players[0], g.Players[1]

	g.TurnIndex = 0
	alice.Hand = []Card{StandardCard(Hearts, Two)}
	alice.HasDroppedHand = true
	alice.HasDrawnThisTurn = true
	bob.Hand = []Card{StandardCard(Clubs, Ace), StandardCard(Clubs, King)} // 30 points

	require.NoError(t, g.RunAction(NewActionDiscard("alice", 0)))

	require.True(t, g.IsRoundFinished)
	require.Equal(t, 0, alice.Points)
	require.Equal(t, 30, bob.Points)

	result, ok := g.RoundEndResult()
	require.True(t, ok)
	require.Equal(t, 0, result.RoundIndex)
	require.Equal(t, "Two Trios", result.RoundName)
	require.Equal(t, "alice", result.WinnerID)
	require.Equal(t, 1, result.NextRoundIndex)
	require.Equal(t, "One Trio, One Escala", result.NextRoundName)
	require.False(t, result.IsGameEnded)
	require.Equal(t, []PlayerRoundScore{
		{ID: "alice", RoundPoints: 0, TotalPoints: 0},
		{ID: "bob", RoundPoints: 30, TotalPoints: 30},
	}, result.PlayerScores)

	// Round and turn advance the moment the round settles; only the
	// redeal waits on readiness.
	require.Equal(t, 1, g.RoundIndex)
	require.Equal(t, OneTrioOneEscala, g.CurrentRound())
	require.Equal(t, 1, g.TurnIndex, "deal rotates with the round index")
	require.Empty(t, alice.Hand, "no redeal before every seat is ready")

	// No gameplay action is accepted while waiting.
	err := g.RunAction(NewActionDrawFromDeck("bob"))
	require.ErrorIs(t, err, errActionNotPossible)

	// Readiness gating: the redeal happens only when every seat is ready.
	require.NoError(t, g.RunAction(NewActionMarkReady("alice")))
	require.True(t, g.IsRoundFinished)
	require.NoError(t, g.RunAction(NewActionMarkReady("bob")))
	require.False(t, g.IsRoundFinished)

	require.Equal(t, 1, g.RoundIndex)
	require.Len(t, alice.Hand, 12)
	require.Len(t, bob.Hand, 12)
	require.Equal(t, 108, countCards(g))
}

func TestBotSeatsAutoReady(t *testing.T) {
	g := New([]string{"alice", "bot_easy_alice"})
	alice := g.Players[0]

	g.TurnIndex = 0
	alice.Hand = []Card{StandardCard(Hearts, Two)}
	alice.HasDroppedHand = true
	alice.HasDrawnThisTurn = true

	require.NoError(t, g.RunAction(NewActionDiscard("alice", 0)))
	require.True(t, g.IsRoundFinished)
	require.True(t, g.Players[1].IsReadyForNextRound)

	require.NoError(t, g.RunAction(NewActionMarkReady("alice")))
	require.False(t, g.IsRoundFinished)
	require.Equal(t, 1, g.RoundIndex)
}

func TestGameEndsAfterNinthRound(t *testing.T) {
	g := New([]string{"alice", "bob"})
	alice, bob := g.Players[0], g.Players[1]

	g.RoundIndex = 8
	g.TurnIndex = 0
	alice.Hand = []Card{StandardCard(Hearts, Two)}
	alice.HasDroppedHand = true
	alice.HasDrawnThisTurn = true
	alice.Points = 40
	bob.Hand = []Card{StandardCard(Clubs, Five)}
	bob.Points = 10

	require.NoError(t, g.RunAction(NewActionDiscard("alice", 0)))

	require.True(t, g.IsGameEnded)
	require.Equal(t, "bob", g.WinnerID, "lowest cumulative score wins the game")

	result, ok := g.RoundEndResult()
	require.True(t, ok)
	require.True(t, result.IsGameEnded)
	require.Equal(t, "alice", result.WinnerID, "the round winner is whoever went out")

	err := g.RunAction(NewActionDrawFromDeck("bob"))
	require.ErrorIs(t, err, errGameIsEnded)
}

func TestIsBotID(t *testing.T) {
	require.True(t, IsBotID("bot_easy_alice"))
	require.True(t, IsBotID("bot_medium_x"))
	require.True(t, IsBotID("bot_hard_7"))
	require.False(t, IsBotID("alice"))
	require.False(t, IsBotID("bot"))
}
