package zeromq

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pebbe/zmq4"

	"github.com/vilo159/amiga-joystick-tutorial/pkg/config"
	customlog "github.com/vilo159/amiga-joystick-tutorial/pkg/log"
)

// Common errors
var (
	ErrServiceClosed      = errors.New("zeromq service is closed")
	ErrInvalidMessage     = errors.New("invalid message format")
	ErrUnknownMessageType = errors.New("unknown message type")
)

// Message types
const (
	MsgTypeStatusRequest  = "STATUS_REQUEST"
	MsgTypeStatusResponse = "STATUS_RESPONSE"
	MsgTypeTelemetry      = "TELEMETRY"
	MsgTypeError          = "ERROR"
)

const (
	socketTimeout = 1 * time.Second
	pollInterval  = 200 * time.Millisecond
)

// ZeroMQMessage represents a generic message structure for ZeroMQ communication
type ZeroMQMessage struct {
	Type      string      `json:"type"`
	Timestamp float64     `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// ErrorResponse represents an error response message
type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// MessageHandler defines the interface for handlers that process specific message types
type MessageHandler interface {
	HandleMessage(data []byte) ([]byte, error)
}

// HandlerFunc is a function type that implements MessageHandler
type HandlerFunc func(data []byte) ([]byte, error)

// HandleMessage calls the function
func (f HandlerFunc) HandleMessage(data []byte) ([]byte, error) {
	return f(data)
}

// MessageReceiver answers requests on a REP socket
type MessageReceiver struct {
	socket     *zmq4.Socket
	dispatcher *MessageDispatcher
	poller     *zmq4.Poller
	endpoint   string
	logger     customlog.Logger
	stop       chan struct{}
	wg         *sync.WaitGroup
}

func newMessageReceiver(ctx *zmq4.Context, address string, dispatcher *MessageDispatcher, logger customlog.Logger, wg *sync.WaitGroup) (*MessageReceiver, error) {
	socket, err := ctx.NewSocket(zmq4.REP)
	if err != nil {
		return nil, fmt.Errorf("failed to create REP socket: %w", err)
	}
	if err := socket.SetLinger(0); err != nil {
		socket.Close()
		return nil, fmt.Errorf("failed to set linger option: %w", err)
	}
	if err := socket.SetSndtimeo(socketTimeout); err != nil {
		socket.Close()
		return nil, fmt.Errorf("failed to set send timeout: %w", err)
	}
	if err := socket.Bind(address); err != nil {
		socket.Close()
		return nil, fmt.Errorf("failed to bind to %s: %w", address, err)
	}

	endpoint, err := socket.GetLastEndpoint()
	if err != nil {
		socket.Close()
		return nil, fmt.Errorf("failed to read bound endpoint: %w", err)
	}

	poller := zmq4.NewPoller()
	poller.Add(socket, zmq4.POLLIN)

	logger.Infof("MessageReceiver initialized on %s", endpoint)

	return &MessageReceiver{
		socket:     socket,
		dispatcher: dispatcher,
		poller:     poller,
		endpoint:   endpoint,
		logger:     logger,
		stop:       make(chan struct{}),
		wg:         wg,
	}, nil
}

// Start begins the message receiving loop. The socket is owned by the loop
// goroutine and closed when it exits.
func (r *MessageReceiver) Start() {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer r.socket.Close()

		for {
			select {
			case <-r.stop:
				return
			default:
			}

			polled, err := r.poller.Poll(pollInterval)
			if err != nil {
				r.logger.Warnf("Error polling socket: %v", err)
				continue
			}
			if len(polled) == 0 {
				continue
			}

			msg, err := r.socket.RecvBytes(0)
			if err != nil {
				r.logger.Warnf("Error receiving message: %v", err)
				continue
			}
			r.logger.Debugf("Received message (%d bytes)", len(msg))

			response, err := r.dispatcher.Dispatch(msg)
			if err != nil {
				r.logger.Warnf("Error dispatching message: %v", err)
				response, _ = json.Marshal(ZeroMQMessage{
					Type:      MsgTypeError,
					Timestamp: now(),
					Data:      ErrorResponse{Message: err.Error(), Code: 500},
				})
			}

			// REP must answer every request before it can receive again.
			if _, err := r.socket.SendBytes(response, 0); err != nil {
				r.logger.Warnf("Error sending response: %v", err)
			}
		}
	}()
}

// Stop asks the loop to exit
func (r *MessageReceiver) Stop() {
	close(r.stop)
}

// MessageSender handles sending messages to ZeroMQ sockets
type MessageSender struct {
	socket  *zmq4.Socket
	logger  customlog.Logger
	running bool
	mu      sync.Mutex
}

func newMessageSender(ctx *zmq4.Context, address string, logger customlog.Logger) (*MessageSender, error) {
	socket, err := ctx.NewSocket(zmq4.PUB)
	if err != nil {
		return nil, fmt.Errorf("failed to create PUB socket: %w", err)
	}
	if err := socket.SetLinger(0); err != nil {
		socket.Close()
		return nil, fmt.Errorf("failed to set linger option: %w", err)
	}
	if err := socket.Bind(address); err != nil {
		socket.Close()
		return nil, fmt.Errorf("failed to bind to %s: %w", address, err)
	}

	logger.Infof("MessageSender initialized on %s", address)

	return &MessageSender{
		socket:  socket,
		logger:  logger,
		running: true,
	}, nil
}

// PublishMessage sends a message with the given topic
func (s *MessageSender) PublishMessage(topic string, message []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return ErrServiceClosed
	}

	// Topic frame first, then the payload
	if _, err := s.socket.Send(topic, zmq4.SNDMORE); err != nil {
		return fmt.Errorf("failed to send topic: %w", err)
	}
	if _, err := s.socket.SendBytes(message, 0); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// Endpoint returns the address the socket is bound to, with any wildcard
// port resolved.
func (s *MessageSender) Endpoint() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return "", ErrServiceClosed
	}
	return s.socket.GetLastEndpoint()
}

// Close cleans up resources
func (s *MessageSender) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.running = false
	if s.socket != nil {
		s.socket.Close()
		s.socket = nil
	}
}

// MessageDispatcher routes messages to the appropriate handlers
type MessageDispatcher struct {
	handlers map[string]MessageHandler
	logger   customlog.Logger
	mu       sync.RWMutex
}

// NewMessageDispatcher creates a new message dispatcher
func NewMessageDispatcher(logger customlog.Logger) *MessageDispatcher {
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

// Dispatch parses a JSON request and routes it by type
func (d *MessageDispatcher) Dispatch(data []byte) ([]byte, error) {
	var msg ZeroMQMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}

	d.mu.RLock()
	handler, exists := d.handlers[msg.Type]
	d.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMessageType, msg.Type)
	}
	return handler.HandleMessage(data)
}

// ZeroMQService republishes client state over ZeroMQ and optionally answers
// status requests.
type ZeroMQService struct {
	ctx        *zmq4.Context
	receiver   *MessageReceiver
	sender     *MessageSender
	dispatcher *MessageDispatcher
	logger     customlog.Logger
	wg         sync.WaitGroup
	stopOnce   sync.Once
}

// NewZeroMQService binds the PUB socket and, when RequestBindAddress is set,
// the REP socket.
func NewZeroMQService(cfg config.ZeroMQConfig, logger customlog.Logger) (*ZeroMQService, error) {
	ctx, err := zmq4.NewContext()
	if err != nil {
		return nil, fmt.Errorf("failed to create ZMQ context: %w", err)
	}

	logger = logger.WithField("component", "zeromq")
	s := &ZeroMQService{
		ctx:        ctx,
		dispatcher: NewMessageDispatcher(logger),
		logger:     logger,
	}

	s.sender, err = newMessageSender(ctx, cfg.PublishBindAddress, logger)
	if err != nil {
		ctx.Term()
		return nil, err
	}

	if cfg.RequestBindAddress != "" {
		s.receiver, err = newMessageReceiver(ctx, cfg.RequestBindAddress, s.dispatcher, logger, &s.wg)
		if err != nil {
			s.sender.Close()
			ctx.Term()
			return nil, err
		}
	}

	return s, nil
}

// RegisterHandler adds a handler for a specific message type
func (s *ZeroMQService) RegisterHandler(messageType string, handler MessageHandler) {
	s.dispatcher.RegisterHandler(messageType, handler)
}

// RegisterHandlerFunc adds a handler function for a specific message type
func (s *ZeroMQService) RegisterHandlerFunc(messageType string, handler func([]byte) ([]byte, error)) {
	s.dispatcher.RegisterHandler(messageType, HandlerFunc(handler))
}

// Start begins answering requests
func (s *ZeroMQService) Start() {
	if s.receiver != nil {
		s.receiver.Start()
	}
	s.logger.Infof("ZeroMQ service started")
}

// Stop closes the sockets and terminates the context. Safe to call more
// than once.
func (s *ZeroMQService) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Infof("Stopping ZeroMQ service")
		if s.receiver != nil {
			s.receiver.Stop()
		}
		s.sender.Close()
		s.wg.Wait()
		if err := s.ctx.Term(); err != nil {
			s.logger.Warnf("Error terminating ZMQ context: %v", err)
		}
		s.logger.Infof("ZeroMQ service stopped")
	})
}

// Endpoint returns the resolved PUB address
func (s *ZeroMQService) Endpoint() (string, error) {
	return s.sender.Endpoint()
}

// RequestEndpoint returns the resolved REP address, or "" when requests are
// disabled.
func (s *ZeroMQService) RequestEndpoint() string {
	if s.receiver == nil {
		return ""
	}
	return s.receiver.endpoint
}

// PublishMessage sends a message with the given topic
func (s *ZeroMQService) PublishMessage(topic string, message []byte) error {
	return s.sender.PublishMessage(topic, message)
}

// PublishJSON publishes a JSON-serializable message with the given topic
func (s *ZeroMQService) PublishJSON(topic string, messageType string, data interface{}) error {
	msgData, err := json.Marshal(ZeroMQMessage{
		Type:      messageType,
		Timestamp: now(),
		Data:      data,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	return s.PublishMessage(topic, msgData)
}

func now() float64 {
	return float64(time.Now().UnixNano()) / 1e9
}
