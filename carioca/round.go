package carioca

// RoundType identifies one of the nine rounds of a Carioca game, each with a
// fixed meld requirement.
type RoundType int

const (
	TwoTrios RoundType = iota
	OneTrioOneEscala
	TwoEscalas
	ThreeTrios
	TwoTriosOneEscala
	OneTrioTwoEscalas
	ThreeEscalas
	FourTrios
	EscalaReal
)

// roundSpec describes one round's bajada requirement: how many trios and
// escalas must be submitted, and (for EscalaReal) the minimum length the
// escala must reach.
type roundSpec struct {
	name            string
	reqTrios        int
	reqEscalas      int
	minEscalaLength int // 0 means "use the default 4-card floor"
}

// roundTable is the fixed nine-round schedule of a Carioca game.
var roundTable = [9]roundSpec{
	TwoTrios:          {"Two Trios", 2, 0, 0},
	OneTrioOneEscala:  {"One Trio, One Escala", 1, 1, 0},
	TwoEscalas:        {"Two Escalas", 0, 2, 0},
	ThreeTrios:        {"Three Trios", 3, 0, 0},
	TwoTriosOneEscala: {"Two Trios, One Escala", 2, 1, 0},
	OneTrioTwoEscalas: {"One Trio, Two Escalas", 1, 2, 0},
	ThreeEscalas:      {"Three Escalas", 0, 3, 0},
	FourTrios:         {"Four Trios", 4, 0, 0},
	EscalaReal:        {"Escala Real", 0, 1, 13},
}

// Requirements returns the (reqTrios, reqEscalas) pair for this round type.
func (r RoundType) Requirements() (trios int, escalas int) {
	spec := roundTable[r]
	return spec.reqTrios, spec.reqEscalas
}

// Name returns a human-readable description of the round, used for broadcast
// messages.
func (r RoundType) Name() string {
	return roundTable[r].name
}

// MinEscalaLength returns the minimum length an escala must have to count
// toward this round's requirement. Every round except EscalaReal uses the
// generic 4-card floor enforced by IsValidEscala itself.
func (r RoundType) MinEscalaLength() int {
	if l := roundTable[r].minEscalaLength; l > 0 {
		return l
	}
	return 4
}

// roundTypeForIndex maps a 0-based round index to its RoundType. Indices
// past the schedule (the index advances to 9 when the game ends) pin to the
// final round so terminal snapshots stay renderable.
func roundTypeForIndex(index int) RoundType {
	if index > int(EscalaReal) {
		return EscalaReal
	}
	return RoundType(index)
}
