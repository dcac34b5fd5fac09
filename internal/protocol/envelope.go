package protocol

import (
	"encoding/json"
	"errors"
)

// MessageType is the outer discriminator of a wire message
type MessageType string

const (
	MessageCommand MessageType = "COMMAND"
	MessageEvent   MessageType = "EVENT"
	MessagePing    MessageType = "PING"
	MessagePong    MessageType = "PONG"
)

// Envelope is the top-level frame exchanged on a connection.
// Exactly one of Command or Event is set depending on Type.
type Envelope struct {
	Type    MessageType     `json:"type"`
	Command json.RawMessage `json:"command,omitempty"`
	Event   json.RawMessage `json:"event,omitempty"`
}

// Protocol-level errors
var (
	ErrMalformedMessage = errors.New("malformed message")
	ErrUnknownCommand   = errors.New("unknown command type")
	ErrMissingCommand   = errors.New("envelope has no command payload")
	ErrUnknownEvent     = errors.New("unknown event type")
)

// DecodeEnvelope parses a raw wire frame
func DecodeEnvelope(data []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, ErrMalformedMessage
	}
	return &env, nil
}

// EncodeEvent wraps an event in an envelope and marshals it
func EncodeEvent(ev Event) ([]byte, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Type: MessageEvent, Event: payload})
}

// EncodeCommand wraps a command in an envelope and marshals it, injecting
// the command's type discriminator
func EncodeCommand(cmd Command) ([]byte, error) {
	payload, err := json.Marshal(cmd)
	if err != nil {
		return nil, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, err
	}
	fields["type"], err = json.Marshal(cmd.CommandType())
	if err != nil {
		return nil, err
	}
	payload, err = json.Marshal(fields)
	if err != nil {
		return nil, err
	}

	return json.Marshal(Envelope{Type: MessageCommand, Command: payload})
}

// EncodePing returns a marshaled PING frame
func EncodePing() ([]byte, error) {
	return json.Marshal(Envelope{Type: MessagePing})
}

// EncodePong returns a marshaled PONG frame
func EncodePong() ([]byte, error) {
	return json.Marshal(Envelope{Type: MessagePong})
}
