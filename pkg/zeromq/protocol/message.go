// Package protocol defines the JSON envelope exchanged over the ZeroMQ
// request socket and routes requests to their handlers.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Common errors
var (
	ErrInvalidMessage     = errors.New("invalid message format")
	ErrUnknownMessageType = errors.New("unknown message type")
)

// Message types
const (
	MsgTypeScriptRequest           = "SCRIPT_REQUEST"
	MsgTypeScriptResponse          = "SCRIPT_RESPONSE"
	MsgTypeGeneratorConfigRequest  = "GENERATOR_CONFIG_REQUEST"
	MsgTypeGeneratorConfigResponse = "GENERATOR_CONFIG_RESPONSE"
	MsgTypeConfigUpdated           = "CONFIG_UPDATED"
	MsgTypeError                   = "ERROR"
)

// Error codes carried in ErrorResponse
const (
	CodeBadRequest = 400
	CodeInternal   = 500
)

// ZeroMQMessage represents a generic message structure for ZeroMQ communication
type ZeroMQMessage struct {
	Type      string      `json:"type"`
	Timestamp float64     `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// inbound is ZeroMQMessage with the payload left undecoded for the handler.
type inbound struct {
	Type      string          `json:"type"`
	Timestamp float64         `json:"timestamp"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// ErrorResponse represents an error response message
type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// NewMessage stamps data with the current time.
func NewMessage(messageType string, data interface{}) ZeroMQMessage {
	return ZeroMQMessage{
		Type:      messageType,
		Timestamp: float64(time.Now().UnixNano()) / 1e9,
		Data:      data,
	}
}

// Marshal serializes a stamped message.
func Marshal(messageType string, data interface{}) ([]byte, error) {
	out, err := json.Marshal(NewMessage(messageType, data))
	if err != nil {
		return nil, fmt.Errorf("failed to serialize %s: %w", messageType, err)
	}
	return out, nil
}

// ErrorReply builds the ERROR message sent back for a failed request.
// Request problems are reported with CodeBadRequest.
func ErrorReply(err error) []byte {
	code := CodeInternal
	if isClientError(err) {
		code = CodeBadRequest
	}

	out, mErr := Marshal(MsgTypeError, ErrorResponse{Message: err.Error(), Code: code})
	if mErr != nil {
		return []byte(`{"type":"ERROR","data":{"message":"internal error","code":500}}`)
	}
	return out
}

func isClientError(err error) bool {
	if errors.Is(err, ErrInvalidMessage) || errors.Is(err, ErrUnknownMessageType) {
		return true
	}
	var v interface{ IsValidationError() bool }
	if errors.As(err, &v) && v.IsValidationError() {
		return true
	}
	var c interface{ IsConfigurationError() bool }
	return errors.As(err, &c) && c.IsConfigurationError()
}
