package lobby

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSoloJoinFillsWithBots(t *testing.T) {
	l := New()

	match, ok := l.Join("alice")
	require.True(t, ok)
	require.NotEmpty(t, match.RoomID)
	require.Len(t, match.Players, 4)
	require.Equal(t, "alice", match.Players[0])
	require.True(t, strings.HasPrefix(match.Players[1], "bot_easy_"))
	require.True(t, strings.HasPrefix(match.Players[2], "bot_medium_"))
	require.True(t, strings.HasPrefix(match.Players[3], "bot_hard_"))
	require.Zero(t, l.Waiting())
}

func TestTwoHumanMatch(t *testing.T) {
	l := New(WithMatchSize(2))

	_, ok := l.Join("alice")
	require.False(t, ok)
	require.Equal(t, 1, l.Waiting())

	// Joining twice keeps a single queue slot.
	_, ok = l.Join("alice")
	require.False(t, ok)
	require.Equal(t, 1, l.Waiting())

	match, ok := l.Join("bob")
	require.True(t, ok)
	require.Equal(t, []string{"alice", "bob"}, match.Players)
	require.Zero(t, l.Waiting())
}

func TestLeaveRemovesFromQueue(t *testing.T) {
	l := New(WithMatchSize(2))

	_, ok := l.Join("alice")
	require.False(t, ok)
	l.Leave("alice")
	require.Zero(t, l.Waiting())

	// alice is gone, so bob starts a fresh queue instead of matching.
	_, ok = l.Join("bob")
	require.False(t, ok)
	require.Equal(t, 1, l.Waiting())
}

func TestMatchSizeClamped(t *testing.T) {
	l := New(WithMatchSize(99))
	for _, id := range []string{"a", "b", "c"} {
		_, ok := l.Join(id)
		require.False(t, ok)
	}
	match, ok := l.Join("d")
	require.True(t, ok)
	require.Len(t, match.Players, 4)
}
