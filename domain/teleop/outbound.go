package teleop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"google.golang.org/grpc"

	customlog "github.com/vilo159/amiga-joystick-tutorial/pkg/log"
	"github.com/vilo159/amiga-joystick-tutorial/pkg/packet"
	"github.com/vilo159/amiga-joystick-tutorial/pkg/rpc"
	"github.com/vilo159/amiga-joystick-tutorial/pkg/supervisor"
)

// DefaultAckInterval is how long a handle waits for a failed ack before
// reporting progress.
const DefaultAckInterval = 100 * time.Millisecond

// ErrAckRejected is returned when the canbus service reports a failed send.
var ErrAckRejected = errors.New("command rejected by canbus service")

// AckReport summarises an open command stream.
type AckReport struct {
	Sent  uint64 `json:"sent"`
	Acked uint64 `json:"acked"`
}

// CommandSender opens the bidirectional sendCanbusMessage stream.
type CommandSender interface {
	SendCanbusMessage(ctx context.Context, opts ...grpc.CallOption) (rpc.SendStream, error)
}

// CommandOpener opens command streams fed by a Generator.
type CommandOpener struct {
	sender      CommandSender
	commands    <-chan Command
	ackInterval time.Duration
	logger      customlog.Logger
}

// NewCommandOpener binds the sender to the generator's mailbox.
func NewCommandOpener(sender CommandSender, gen *Generator, ackInterval time.Duration, logger customlog.Logger) *CommandOpener {
	if ackInterval <= 0 {
		ackInterval = DefaultAckInterval
	}
	return &CommandOpener{
		sender:      sender,
		commands:    gen.Commands(),
		ackInterval: ackInterval,
		logger:      logger,
	}
}

// Open implements supervisor.Opener.
func (o *CommandOpener) Open(ctx context.Context) (supervisor.Stream[AckReport], error) {
	sctx, cancel := context.WithCancel(ctx)
	stream, err := o.sender.SendCanbusMessage(sctx)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("sendCanbusMessage: %w", err)
	}

	h := &commandStream{
		cancel:      cancel,
		stream:      stream,
		errc:        make(chan error, 1),
		ackInterval: o.ackInterval,
	}
	h.wg.Add(2)
	go h.sendLoop(sctx, o.commands)
	go h.ackLoop()
	return h, nil
}

// commandStream forwards generated commands and watches the acks.
type commandStream struct {
	cancel      context.CancelFunc
	stream      rpc.SendStream
	errc        chan error
	ackInterval time.Duration

	sent  atomic.Uint64
	acked atomic.Uint64
	wg    sync.WaitGroup
}

func (h *commandStream) sendLoop(ctx context.Context, commands <-chan Command) {
	defer h.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-commands:
			stamp := float64(time.Now().UnixNano()) / float64(time.Second)
			if err := h.stream.Send(packet.BuildSendRequest(cmd.Frame(), stamp)); err != nil {
				h.fail(fmt.Errorf("send: %w", err))
				return
			}
			h.sent.Add(1)
		}
	}
}

func (h *commandStream) ackLoop() {
	defer h.wg.Done()
	for {
		reply, err := h.stream.Recv()
		if errors.Is(err, io.EOF) {
			h.fail(supervisor.ErrEndOfStream)
			return
		}
		if err != nil {
			h.fail(fmt.Errorf("ack: %w", err))
			return
		}
		if !reply.Success() {
			h.fail(ErrAckRejected)
			return
		}
		h.acked.Add(1)
	}
}

// fail records the first error of the stream.
func (h *commandStream) fail(err error) {
	select {
	case h.errc <- err:
	default:
	}
}

// Recv waits one ack interval. It returns early with the stream's error if
// an ack failed or the transport broke.
func (h *commandStream) Recv(ctx context.Context) (AckReport, error) {
	t := time.NewTimer(h.ackInterval)
	defer t.Stop()

	select {
	case err := <-h.errc:
		return AckReport{}, err
	case <-ctx.Done():
		return AckReport{}, ctx.Err()
	case <-t.C:
		return AckReport{Sent: h.sent.Load(), Acked: h.acked.Load()}, nil
	}
}

func (h *commandStream) Close() error {
	h.cancel()
	h.wg.Wait()
	return nil
}
