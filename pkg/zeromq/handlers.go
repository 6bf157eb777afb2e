package zeromq

import (
	"encoding/json"
	"fmt"

	customlog "github.com/vilo159/amiga-joystick-tutorial/pkg/log"
)

// StatusFunc produces the body of a STATUS_RESPONSE
type StatusFunc func() interface{}

// StatusHandler handles STATUS_REQUEST messages
type StatusHandler struct {
	status StatusFunc
	logger customlog.Logger
}

// NewStatusHandler creates a new handler for status requests
func NewStatusHandler(status StatusFunc, logger customlog.Logger) *StatusHandler {
	return &StatusHandler{
		status: status,
		logger: logger,
	}
}

// HandleMessage processes a STATUS_REQUEST message and returns a STATUS_RESPONSE
func (h *StatusHandler) HandleMessage(data []byte) ([]byte, error) {
	var msg ZeroMQMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}
	if msg.Type != MsgTypeStatusRequest {
		return nil, fmt.Errorf("unexpected message type: %s", msg.Type)
	}

	responseData, err := json.Marshal(ZeroMQMessage{
		Type:      MsgTypeStatusResponse,
		Timestamp: now(),
		Data:      h.status(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to serialize response: %w", err)
	}

	h.logger.Debugf("Sending status response (%d bytes)", len(responseData))
	return responseData, nil
}

// RegisterStatusHandler wires STATUS_REQUEST to status
func RegisterStatusHandler(service *ZeroMQService, status StatusFunc) {
	service.RegisterHandler(MsgTypeStatusRequest, NewStatusHandler(status, service.logger))
}
