package protocol

import (
	"encoding/json"
	"fmt"
	"sync"

	customlog "github.com/open-teleop/pathscript/pkg/log"
)

// MessageHandler defines the interface for handlers that process specific message types
type MessageHandler interface {
	HandleMessage(data json.RawMessage) ([]byte, error)
}

// HandlerFunc is a function type that implements MessageHandler
type HandlerFunc func(data json.RawMessage) ([]byte, error)

// HandleMessage calls the function
func (f HandlerFunc) HandleMessage(data json.RawMessage) ([]byte, error) {
	return f(data)
}

// MessageDispatcher routes messages to the appropriate handlers
type MessageDispatcher struct {
	handlers map[string]MessageHandler
	logger   customlog.Logger
	mu       sync.RWMutex
}

// NewMessageDispatcher creates a new message dispatcher
func NewMessageDispatcher(logger customlog.Logger) *MessageDispatcher {
	if logger == nil {
		logger = customlog.Nop()
	}
	return &MessageDispatcher{
		handlers: make(map[string]MessageHandler),
		logger:   logger,
	}
}

// RegisterHandler adds a handler for a specific message type
func (d *MessageDispatcher) RegisterHandler(messageType string, handler MessageHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.handlers[messageType] = handler
	d.logger.Debugf("Registered handler for message type: %s", messageType)
}

// Dispatch decodes the envelope and hands its data to the registered handler.
func (d *MessageDispatcher) Dispatch(data []byte) ([]byte, error) {
	var msg inbound
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	if msg.Type == "" {
		return nil, fmt.Errorf("%w: missing type", ErrInvalidMessage)
	}

	d.logger.Debugf("Dispatching message of type: %s", msg.Type)
	d.mu.RLock()
	handler, exists := d.handlers[msg.Type]
	d.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMessageType, msg.Type)
	}
	return handler.HandleMessage(msg.Data)
}

// Handle dispatches data and always produces a reply, turning failures into
// an ERROR message.
func (d *MessageDispatcher) Handle(data []byte) []byte {
	response, err := d.Dispatch(data)
	if err != nil {
		d.logger.Warnf("Error dispatching message: %v", err)
		return ErrorReply(err)
	}
	return response
}
