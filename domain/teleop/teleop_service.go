package teleop

import (
	"context"
	"sync"

	"github.com/gofiber/fiber/v2"

	customlog "github.com/vilo159/amiga-joystick-tutorial/pkg/log"
)

// TeleopService tracks the command stream for the web surface.
type TeleopService struct {
	generator *Generator
	logger    customlog.Logger

	mu      sync.RWMutex
	lastAck AckReport
}

// NewTeleopService creates a new teleop service instance
func NewTeleopService(generator *Generator, logger customlog.Logger) *TeleopService {
	return &TeleopService{
		generator: generator,
		logger:    logger,
	}
}

// Handle records an ack report. It is the outbound supervisor's item handler.
func (s *TeleopService) Handle(_ context.Context, report AckReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if report.Acked < s.lastAck.Acked || report.Sent < s.lastAck.Sent {
		s.logger.Debugf("Command stream restarted")
	}
	s.lastAck = report
	return nil
}

// LastAck returns the most recent ack report.
func (s *TeleopService) LastAck() AckReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastAck
}

// CommandHandler returns the last generated command and stream counters
func (s *TeleopService) CommandHandler(c *fiber.Ctx) error {
	cmd, ok := s.generator.Last()
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no command generated yet",
		})
	}

	return c.JSON(fiber.Map{
		"status":    "success",
		"command":   cmd,
		"generator": s.generator.Stats(),
		"stream":    s.LastAck(),
	})
}
