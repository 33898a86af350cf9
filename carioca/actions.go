package carioca

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Action is a single game mutation, dispatched through GameState.RunAction.
// Every concrete action embeds act for its common fields and default
// method bodies, and overrides IsPossible/Run/YieldsTurn as needed.
type Action interface {
	IsPossible(g GameState) bool
	Run(g *GameState) error
	GetName() string
	GetPlayerID() string
	YieldsTurn(g GameState) bool
	// Enrich lets an action fill in fields it couldn't have been
	// constructed with, before IsPossible/Run see it. Most actions don't
	// need this.
	Enrich(g GameState)
	// requiresTurn reports whether RunAction should reject this action
	// when it isn't the acting player's turn. ReorderHand and MarkReady
	// are the exceptions: both only touch the acting player's own seat
	// and are safe off-turn.
	requiresTurn() bool
	fmt.Stringer
}

type act struct {
	Name     string `json:"name"`
	PlayerID string `json:"playerID"`

	fmt.Stringer `json:"-"`
}

func (a act) GetName() string             { return a.Name }
func (a act) GetPlayerID() string         { return a.PlayerID }
func (a act) Enrich(g GameState)          {}
func (a act) YieldsTurn(g GameState) bool { return true }
func (a act) requiresTurn() bool          { return true }

func (a act) String() string {
	return fmt.Sprintf("Player %v %v", a.PlayerID, strings.ReplaceAll(a.Name, "_", " "))
}

// NewActionDrawFromDeck builds a draw-from-stock action.
func NewActionDrawFromDeck(playerID string) Action {
	return &ActionDrawFromDeck{act: act{Name: ActionNameDrawFromDeck, PlayerID: playerID}}
}

// NewActionDrawFromDiscard builds a draw-from-discard-pile action.
func NewActionDrawFromDiscard(playerID string) Action {
	return &ActionDrawFromDiscard{act: act{Name: ActionNameDrawFromDiscard, PlayerID: playerID}}
}

// NewActionDiscard builds an action discarding the hand card at handIndex.
func NewActionDiscard(playerID string, handIndex int) Action {
	return &ActionDiscard{act: act{Name: ActionNameDiscard, PlayerID: playerID}, HandIndex: handIndex}
}

// NewActionDropHand builds a bajada action: groups is a set of hand-index
// groups, each meant to be a complete trio or escala.
func NewActionDropHand(playerID string, groups [][]int) Action {
	return &ActionDropHand{act: act{Name: ActionNameDropHand, PlayerID: playerID}, Groups: groups}
}

// NewActionDropHandCards builds a bajada action from card-level groups, the
// shape clients submit over the wire; Enrich resolves the cards against the
// player's hand.
func NewActionDropHandCards(playerID string, combinations [][]Card) Action {
	return &ActionDropHand{act: act{Name: ActionNameDropHand, PlayerID: playerID}, Combinations: combinations}
}

// NewActionShedCard builds a cortar action: extend ontoPlayerID's meld at
// meldIndex with the card at handIndex. Which end the card lands on is
// inferred from the meld itself; a joker goes to the right end unless the
// escala already ends at the ace, in which case it goes to the left end.
func NewActionShedCard(playerID string, handIndex int, ontoPlayerID string, meldIndex int) Action {
	return &ActionShedCard{
		act:          act{Name: ActionNameShedCard, PlayerID: playerID},
		HandIndex:    handIndex,
		OntoPlayerID: ontoPlayerID,
		MeldIndex:    meldIndex,
	}
}

// NewActionReorderHand builds an action replacing the acting player's hand
// order. newOrder must be a permutation of their current hand indices.
func NewActionReorderHand(playerID string, newOrder []int) Action {
	return &ActionReorderHand{act: act{Name: ActionNameReorderHand, PlayerID: playerID}, NewOrder: newOrder}
}

// NewActionReorderHandCards builds a reorder action from the full new hand
// as cards, the shape clients submit over the wire.
func NewActionReorderHandCards(playerID string, newHand []Card) Action {
	return &ActionReorderHand{act: act{Name: ActionNameReorderHand, PlayerID: playerID}, NewHand: newHand}
}

// NewActionMarkReady builds the between-rounds readiness action.
func NewActionMarkReady(playerID string) Action {
	return &ActionMarkReady{act: act{Name: ActionNameMarkReady, PlayerID: playerID}}
}

// SerializeAction encodes an action to the JSON shape DeserializeAction
// expects back.
func SerializeAction(action Action) []byte {
	bs, _ := json.Marshal(action)
	return bs
}

// DeserializeAction decodes an action previously produced by
// SerializeAction, dispatching on its "name" field.
func DeserializeAction(bs []byte) (Action, error) {
	var named struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(bs, &named); err != nil {
		return nil, err
	}

	var action Action
	switch named.Name {
	case ActionNameDrawFromDeck:
		action = &ActionDrawFromDeck{}
	case ActionNameDrawFromDiscard:
		action = &ActionDrawFromDiscard{}
	case ActionNameDiscard:
		action = &ActionDiscard{}
	case ActionNameDropHand:
		action = &ActionDropHand{}
	case ActionNameShedCard:
		action = &ActionShedCard{}
	case ActionNameReorderHand:
		action = &ActionReorderHand{}
	case ActionNameMarkReady:
		action = &ActionMarkReady{}
	default:
		return nil, fmt.Errorf("unknown action: [%v]", string(bs))
	}

	if err := json.Unmarshal(bs, action); err != nil {
		return nil, err
	}
	return action, nil
}
