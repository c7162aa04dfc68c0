package quoteform

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownAction is returned by DecodeAction for an unrecognised type.
var ErrUnknownAction = errors.New("quoteform: unknown action")

// Envelope is the wire form of an action: {"type": "...", "payload": {...}}.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

var decoders = map[string]func(json.RawMessage) (Action, error){
	InitFromSource{}.actionName():           decodeAs[InitFromSource],
	AddItem{}.actionName():                  decodeAs[AddItem],
	RemoveItem{}.actionName():               decodeAs[RemoveItem],
	SetItemField{}.actionName():             decodeAs[SetItemField],
	AddSizeRow{}.actionName():               decodeAs[AddSizeRow],
	RemoveSizeRow{}.actionName():            decodeAs[RemoveSizeRow],
	SetSizeRowField{}.actionName():          decodeAs[SetSizeRowField],
	SetPricingMode{}.actionName():           decodeAs[SetPricingMode],
	SetVAT{}.actionName():                   decodeAs[SetVAT],
	SetVATPercentage{}.actionName():         decodeAs[SetVATPercentage],
	SetDiscountType{}.actionName():          decodeAs[SetDiscountType],
	SetDiscountValue{}.actionName():         decodeAs[SetDiscountValue],
	SetWithholding{}.actionName():           decodeAs[SetWithholding],
	SetWithholdingPercentage{}.actionName(): decodeAs[SetWithholdingPercentage],
	SetDepositMode{}.actionName():           decodeAs[SetDepositMode],
	SetDepositPercentage{}.actionName():     decodeAs[SetDepositPercentage],
	SetDepositAmount{}.actionName():         decodeAs[SetDepositAmount],
}

func decodeAs[T Action](payload json.RawMessage) (Action, error) {
	var a T
	if len(payload) == 0 || string(payload) == "null" {
		return a, nil
	}
	if err := json.Unmarshal(payload, &a); err != nil {
		return nil, err
	}
	return a, nil
}

// Decode returns the action held by e.
func (e Envelope) Decode() (Action, error) {
	decode, ok := decoders[e.Type]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownAction, e.Type)
	}
	a, err := decode(e.Payload)
	if err != nil {
		return nil, fmt.Errorf("quoteform: decode %s: %w", e.Type, err)
	}
	return a, nil
}

// DecodeAction decodes a single JSON envelope.
func DecodeAction(data []byte) (Action, error) {
	var e Envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("quoteform: decode envelope: %w", err)
	}
	return e.Decode()
}
