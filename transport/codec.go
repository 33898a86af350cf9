package transport

import (
	"encoding/json"

	"github.com/marianogappa/carioca-backend/carioca"
)

// Client→server message type tags.
const (
	messageTypeDrawFromDeck    = "DrawFromDeck"
	messageTypeDrawFromDiscard = "DrawFromDiscard"
	messageTypeDiscard         = "Discard"
	messageTypeDropHand        = "DropHand"
	messageTypeShedCard        = "ShedCard"
	messageTypeReorderHand     = "ReorderHand"
	messageTypeMarkReady       = "MarkReady"
)

type clientEnvelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type discardPayload struct {
	CardIndex int `json:"card_index"`
}

type dropHandPayload struct {
	Combinations [][]carioca.Card `json:"combinations"`
}

type shedCardPayload struct {
	HandCardIndex  int    `json:"hand_card_index"`
	TargetPlayerID string `json:"target_player_id"`
	TargetComboIdx int    `json:"target_combo_idx"`
}

type reorderHandPayload struct {
	Hand []carioca.Card `json:"hand"`
}

// decodeClientMessage turns one inbound text frame into a game action for
// userID's seat. Any malformed frame returns an error; the caller drops it
// silently per the protocol.
func decodeClientMessage(userID string, data []byte) (carioca.Action, error) {
	var envelope clientEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, err
	}

	switch envelope.Type {
	case messageTypeDrawFromDeck:
		return carioca.NewActionDrawFromDeck(userID), nil
	case messageTypeDrawFromDiscard:
		return carioca.NewActionDrawFromDiscard(userID), nil
	case messageTypeDiscard:
		var payload discardPayload
		if err := json.Unmarshal(envelope.Payload, &payload); err != nil {
			return nil, err
		}
		return carioca.NewActionDiscard(userID, payload.CardIndex), nil
	case messageTypeDropHand:
		var payload dropHandPayload
		if err := json.Unmarshal(envelope.Payload, &payload); err != nil {
			return nil, err
		}
		return carioca.NewActionDropHandCards(userID, payload.Combinations), nil
	case messageTypeShedCard:
		var payload shedCardPayload
		if err := json.Unmarshal(envelope.Payload, &payload); err != nil {
			return nil, err
		}
		return carioca.NewActionShedCard(userID, payload.HandCardIndex, payload.TargetPlayerID, payload.TargetComboIdx), nil
	case messageTypeReorderHand:
		var payload reorderHandPayload
		if err := json.Unmarshal(envelope.Payload, &payload); err != nil {
			return nil, err
		}
		return carioca.NewActionReorderHandCards(userID, payload.Hand), nil
	case messageTypeMarkReady:
		return carioca.NewActionMarkReady(userID), nil
	}

	return nil, errUnknownMessageType
}
