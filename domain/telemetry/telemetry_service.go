package telemetry

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v2"
	"google.golang.org/grpc"

	"github.com/vilo159/amiga-joystick-tutorial/pkg/flatbuffers/farm_ng/canbus"
	customlog "github.com/vilo159/amiga-joystick-tutorial/pkg/log"
	"github.com/vilo159/amiga-joystick-tutorial/pkg/packet"
	"github.com/vilo159/amiga-joystick-tutorial/pkg/rpc"
	"github.com/vilo159/amiga-joystick-tutorial/pkg/supervisor"
)

// Snapshot is the latest dashboard status.
type Snapshot struct {
	State       packet.ControlState `json:"state"`
	Speed       float64             `json:"speed"`        // measured, m/s
	AngularRate float64             `json:"angular_rate"` // measured, rad/s
	Stamp       float64             `json:"stamp"`
	ReceivedAt  time.Time           `json:"received_at"`
}

// Sink receives every decoded snapshot.
type Sink interface {
	PresentTelemetry(Snapshot)
}

// TelemetryService parses the CAN stream for dashboard status and keeps the
// last one.
type TelemetryService struct {
	snapshot atomic.Pointer[Snapshot]
	sink     Sink
	logger   customlog.Logger

	parsed  atomic.Uint64
	skipped atomic.Uint64
}

// NewTelemetryService creates a new telemetry service instance. sink may be
// nil.
func NewTelemetryService(sink Sink, logger customlog.Logger) *TelemetryService {
	return &TelemetryService{
		sink:   sink,
		logger: logger,
	}
}

// Handle implements supervisor.Handler. Messages that are not dashboard
// status frames are skipped without error.
func (s *TelemetryService) Handle(_ context.Context, reply *canbus.StreamCanbusReply) error {
	raw := new(canbus.RawCanbusMessage)
	for j := 0; j < reply.MessagesLength(); j++ {
		if !reply.Messages(raw, j) {
			s.skipped.Add(1)
			continue
		}
		frame, err := packet.FromRaw(raw)
		if err != nil {
			s.skipped.Add(1)
			continue
		}
		tpdo1, ok := packet.ParseTpdo1(frame)
		if !ok {
			s.skipped.Add(1)
			continue
		}
		s.UpdateSnapshot(Snapshot{
			State:       tpdo1.State,
			Speed:       tpdo1.MeasSpeed,
			AngularRate: tpdo1.MeasAngularRate,
			Stamp:       raw.Stamp(),
		})
		s.parsed.Add(1)
	}
	return nil
}

// UpdateSnapshot stores snap and forwards it to the sink.
func (s *TelemetryService) UpdateSnapshot(snap Snapshot) {
	if snap.ReceivedAt.IsZero() {
		snap.ReceivedAt = time.Now()
	}
	prev := s.snapshot.Swap(&snap)
	if prev == nil || prev.State != snap.State {
		s.logger.Infof("Amiga state: %s", snap.State)
	}
	if s.sink != nil {
		s.sink.PresentTelemetry(snap)
	}
}

// GetSnapshot returns the last snapshot, if any arrived.
func (s *TelemetryService) GetSnapshot() (Snapshot, bool) {
	snap := s.snapshot.Load()
	if snap == nil {
		return Snapshot{}, false
	}
	return *snap, true
}

// Counts returns how many messages were parsed and skipped.
func (s *TelemetryService) Counts() (parsed, skipped uint64) {
	return s.parsed.Load(), s.skipped.Load()
}

// GetTelemetryHandler handles API requests for the latest dashboard status
func (s *TelemetryService) GetTelemetryHandler(c *fiber.Ctx) error {
	snap, ok := s.GetSnapshot()
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no telemetry received yet",
		})
	}
	parsed, skipped := s.Counts()
	return c.JSON(fiber.Map{
		"status":    "success",
		"telemetry": snap,
		"parsed":    parsed,
		"skipped":   skipped,
	})
}

// CanbusStreamer starts the CAN bus stream.
type CanbusStreamer interface {
	StreamCanbusMessages(ctx context.Context, opts ...grpc.CallOption) (rpc.CanbusStream, error)
}

// StreamOpener opens CAN bus streams for a supervisor.
type StreamOpener struct {
	client CanbusStreamer
}

// NewStreamOpener wraps client.
func NewStreamOpener(client CanbusStreamer) *StreamOpener {
	return &StreamOpener{client: client}
}

// Open implements supervisor.Opener.
func (o *StreamOpener) Open(ctx context.Context) (supervisor.Stream[*canbus.StreamCanbusReply], error) {
	sctx, cancel := context.WithCancel(ctx)
	stream, err := o.client.StreamCanbusMessages(sctx)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("streamCanbusMessages: %w", err)
	}
	return supervisor.NewAsyncStream(stream.Recv, func() error {
		cancel()
		return nil
	}), nil
}
