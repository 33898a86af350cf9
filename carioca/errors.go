package carioca

import "errors"

// Sentinel errors returned by GameState operations. RunAction wraps them with
// the rejected action's description; they are unexported, so only this
// package's tests match on them with errors.Is, and other packages see the
// error text.
var (
	errActionNotPossible = errors.New("action not possible")
	errNotYourTurn       = errors.New("not your turn")
	errGameIsEnded       = errors.New("game is ended")
	errUnknownPlayer     = errors.New("unknown player id")
	errInvalidCardIndex  = errors.New("invalid card index")
	errInvalidMeld       = errors.New("cards do not form a valid trio or escala")
	errRequirementNotMet = errors.New("melds do not satisfy this round's requirement")
	errCardDoesNotFit    = errors.New("card does not extend this meld")
)
