package bot

import (
	"math/rand"
	"strings"

	"github.com/marianogappa/carioca-backend/carioca"
)

// Difficulty selects how much effort a bot seat spends on its decisions.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return "unknown"
}

// DifficultyFromID maps a bot seat id to its difficulty by prefix. ok is
// false if the id doesn't carry a recognised bot prefix.
func DifficultyFromID(id string) (Difficulty, bool) {
	switch {
	case strings.HasPrefix(id, "bot_easy"):
		return Easy, true
	case strings.HasPrefix(id, "bot_medium"):
		return Medium, true
	case strings.HasPrefix(id, "bot_hard"):
		return Hard, true
	}
	return Easy, false
}

// Keeping a joker is always worth more than any combination of pair and
// adjacency bonuses.
const jokerSynergy = 100

// PlayBotTurn decides the bot's next action from its own sanitized snapshot.
// It is stateless: the room calls it once per pending decision and feeds the
// returned action back through the normal inbox, re-validating against live
// state on receipt. Returns nil when it isn't the bot's turn or there is
// nothing to do (e.g. between rounds, where bot seats are readied by the
// engine itself).
func PlayBotTurn(view carioca.ClientGameState, playerID string, difficulty Difficulty) carioca.Action {
	if view.IsGameEnded || view.IsRoundFinished || view.TurnPlayerID != playerID {
		return nil
	}
	me, ok := view.You()
	if !ok || me.ID != playerID {
		return nil
	}

	switch view.Phase {
	case carioca.PhaseNeedDraw:
		return decideDraw(view, me, difficulty)
	case carioca.PhaseAfterDraw:
		// Try bajarse first; never on this seat's first turn of the round.
		if !me.HasDroppedHand && me.TurnsPlayed > 0 {
			if action := tryBajarse(view, me, difficulty); action != nil {
				return action
			}
		}
		return decideDiscard(view, me, difficulty)
	default: // PhaseAfterBajada: only a discard can end the turn.
		return decideDiscard(view, me, difficulty)
	}
}

func decideDraw(view carioca.ClientGameState, me carioca.ClientPlayerState, difficulty Difficulty) carioca.Action {
	// The pozo is forbidden once bajado, and useless when empty.
	if !view.HasDiscardTop || me.HasDroppedHand {
		return carioca.NewActionDrawFromDeck(me.ID)
	}

	var fromDiscard bool
	switch difficulty {
	case Easy:
		fromDiscard = rand.Float64() < 0.3
	default: // Medium, Hard
		fromDiscard = cardSynergyScore(me.Hand, view.DiscardTopCard) >= 15
	}

	if fromDiscard {
		return carioca.NewActionDrawFromDiscard(me.ID)
	}
	return carioca.NewActionDrawFromDeck(me.ID)
}

func tryBajarse(view carioca.ClientGameState, me carioca.ClientPlayerState, difficulty Difficulty) carioca.Action {
	minimisePoints := difficulty != Easy
	solution, ok := carioca.FindBestBajada(me.Hand, view.RequiredTrios, view.RequiredEscalas, view.MinEscalaLength, minimisePoints)
	if !ok {
		return nil
	}

	groups := make([][]int, len(solution.Melds))
	for i, meld := range solution.Melds {
		groups[i] = meld.CardIndices
	}
	return carioca.NewActionDropHand(me.ID, groups)
}

func decideDiscard(view carioca.ClientGameState, me carioca.ClientPlayerState, difficulty Difficulty) carioca.Action {
	if len(me.Hand) == 0 {
		return nil
	}

	var index int
	switch difficulty {
	case Easy:
		index = rand.Intn(len(me.Hand))
	case Medium:
		index = lowestSynergyIndex(me.Hand)
	case Hard:
		index = bestDiscardIndexHard(view, me)
	}

	return carioca.NewActionDiscard(me.ID, index)
}

// lowestSynergyIndex finds the card whose removal costs the hand the least,
// scoring each card against the rest of the hand.
func lowestSynergyIndex(hand []carioca.Card) int {
	bestIndex := 0
	minScore := int(^uint(0) >> 1)
	for i, card := range hand {
		score := cardSynergyScore(handWithout(hand, i), card)
		if score < minScore {
			minScore = score
			bestIndex = i
		}
	}
	return bestIndex
}

// bestDiscardIndexHard scores each candidate discard by a weighted
// composite: low synergy and high point value make a card cheap to give up,
// while a card an opponent's table meld could absorb gets a defensive
// penalty per extendable meld.
func bestDiscardIndexHard(view carioca.ClientGameState, me carioca.ClientPlayerState) int {
	hand := me.Hand
	bestIndex := 0
	lowestScore := 0.0
	first := true

	for i, card := range hand {
		synergy := float64(cardSynergyScore(handWithout(hand, i), card))
		points := float64(card.Points())
		defense := defensivePenalty(view, me.ID, card)

		total := synergy - points*0.1 + defense
		if first || total < lowestScore {
			lowestScore = total
			bestIndex = i
			first = false
		}
	}
	return bestIndex
}

// cardSynergyScore scores how useful target is alongside hand: +15 per
// same-rank card, +10 per same-suit card one rank away, +5 per same-suit
// card two ranks away. Jokers score a flat 100.
func cardSynergyScore(hand []carioca.Card, target carioca.Card) int {
	if target.IsJoker {
		return jokerSynergy
	}

	score := 0
	for _, c := range hand {
		if c.IsJoker {
			continue
		}
		if c.Value == target.Value {
			score += 15
		}
		if c.Suit == target.Suit {
			diff := c.Value.Rank() - target.Value.Rank()
			if diff < 0 {
				diff = -diff
			}
			switch diff {
			case 1:
				score += 10
			case 2:
				score += 5
			}
		}
	}
	return score
}

// defensivePenalty adds +10 for every opponent table meld the card could
// legally extend, so a Hard bot avoids feeding opponents' bajadas.
func defensivePenalty(view carioca.ClientGameState, myID string, card carioca.Card) float64 {
	penalty := 0.0
	for _, p := range view.Players {
		if p.ID == myID || !p.HasDroppedHand {
			continue
		}
		for _, meld := range p.DroppedCombinations {
			if _, can := carioca.CanShed(meld, card); can {
				penalty += 10
			}
		}
	}
	return penalty
}

func handWithout(hand []carioca.Card, index int) []carioca.Card {
	out := make([]carioca.Card, 0, len(hand)-1)
	out = append(out, hand[:index]...)
	out = append(out, hand[index+1:]...)
	return out
}
