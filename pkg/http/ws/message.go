package ws

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// MessageType constants for WebSocket protocol.
const (
	// Client -> Server
	TypeAnswer        = "answer"
	TypeRestart       = "restart"
	TypeRequestPrompt = "request_prompt"

	// Server -> Client
	TypePrompt  = "prompt"
	TypeResults = "results"
	TypeError   = "error"
)

// Message wraps all WebSocket payloads with type and optional request ID.
type Message struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	RequestID string          `json:"request_id,omitempty"`
}

// NewMessage marshals payload into a typed message.
func NewMessage(msgType string, payload interface{}) (Message, error) {
	msg := Message{Type: msgType}
	if payload == nil {
		return msg, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("marshal %s payload: %w", msgType, err)
	}
	msg.Payload = data
	return msg, nil
}

// AnswerValue is either a JSON string ("Female", "yes") or a JSON bool.
type AnswerValue string

// UnmarshalJSON accepts strings and booleans.
func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = AnswerValue(s)
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("answer value must be a string or boolean")
	}
	*v = AnswerValue(strconv.FormatBool(b))
	return nil
}

// Client Messages (incoming)

type AnswerPayload struct {
	Value AnswerValue `json:"value"`
}

// Server Messages (outgoing)

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
