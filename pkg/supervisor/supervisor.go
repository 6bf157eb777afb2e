package supervisor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	customlog "github.com/vilo159/amiga-joystick-tutorial/pkg/log"
)

const (
	DefaultBackoff     = 100 * time.Millisecond
	DefaultReadTimeout = 5 * time.Second
	DefaultPollTimeout = 1 * time.Second
)

// Options configures a Supervisor. Zero durations fall back to the defaults.
type Options struct {
	Name        string
	Accept      Accept
	Backoff     time.Duration
	ReadTimeout time.Duration
	PollTimeout time.Duration
	// Ready, when set, gates the first poll.
	Ready <-chan struct{}
}

// Supervisor keeps at most one stream open against a remote service while
// that service reports an accepted health, reading one item per iteration
// and handing it to a Handler.
//
//	NoStream  --accepted, open ok-->  Streaming
//	Streaming --not accepted------->  NoStream (close, backoff)
//	Streaming --read failure------->  NoStream (close, no backoff)
type Supervisor[T any] struct {
	name        string
	poller      Poller
	opener      Opener[T]
	handler     Handler[T]
	accept      Accept
	backoff     time.Duration
	readTimeout time.Duration
	pollTimeout time.Duration
	ready       <-chan struct{}
	logger      customlog.Logger

	// sleep is swapped in tests.
	sleep func(ctx context.Context, d time.Duration)

	// Owned by the Run goroutine.
	stream   Stream[T]
	handleID string

	metrics *metrics
}

// New creates a supervisor. It does nothing until Run is called.
func New[T any](poller Poller, opener Opener[T], handler Handler[T], opts Options, logger customlog.Logger) *Supervisor[T] {
	if opts.Accept == nil {
		opts.Accept = AcceptIdleOrRunning
	}
	if opts.Backoff <= 0 {
		opts.Backoff = DefaultBackoff
	}
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = DefaultReadTimeout
	}
	if opts.PollTimeout <= 0 {
		opts.PollTimeout = DefaultPollTimeout
	}

	return &Supervisor[T]{
		name:        opts.Name,
		poller:      poller,
		opener:      opener,
		handler:     handler,
		accept:      opts.Accept,
		backoff:     opts.Backoff,
		readTimeout: opts.ReadTimeout,
		pollTimeout: opts.PollTimeout,
		ready:       opts.Ready,
		logger:      logger.WithField("stream", opts.Name),
		sleep:       sleepCtx,
		metrics:     newMetrics(opts.Name),
	}
}

// Name returns the supervisor's name.
func (s *Supervisor[T]) Name() string {
	return s.name
}

// Run loops until ctx is cancelled. Cancellation is not an error: Run
// returns nil after closing any open stream.
func (s *Supervisor[T]) Run(ctx context.Context) error {
	if s.ready != nil {
		select {
		case <-s.ready:
		case <-ctx.Done():
			return nil
		}
	}

	s.logger.Infof("Supervisor started")
	defer func() {
		s.teardown("shutdown")
		s.logger.Infof("Supervisor stopped")
	}()

	for ctx.Err() == nil {
		s.step(ctx)
	}
	return nil
}

// step runs one iteration of the state machine.
func (s *Supervisor[T]) step(ctx context.Context) {
	health := s.poll(ctx)
	if ctx.Err() != nil {
		return
	}

	if !s.accept(health) {
		s.teardown("service " + health.String())
		s.metrics.backoffs.Add(1)
		s.sleep(ctx, s.backoff)
		return
	}

	if s.stream == nil {
		stream, err := s.opener.Open(ctx)
		if err != nil {
			if ctx.Err() == nil {
				s.metrics.openFailures.Add(1)
				s.logger.Warnf("Failed to open stream: %s", describe(err))
			}
			return
		}
		s.stream = stream
		s.handleID = uuid.NewString()
		s.metrics.opens.Add(1)
		s.metrics.streaming.Store(true)
		s.logger.WithField("handle", s.handleID).Infof("Stream opened (service %s)", health)
	}

	item, err := s.read(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.metrics.readFailures.Add(1)
		s.teardown(describe(err))
		return
	}

	s.metrics.items.Add(1)
	start := time.Now()
	if err := s.handle(ctx, item); err != nil {
		s.metrics.handlerErrors.Add(1)
		s.logger.WithField("handle", s.handleID).Warnf("Item handler failed: %v", err)
	}
	s.metrics.observe(time.Since(start))
}

func (s *Supervisor[T]) poll(ctx context.Context) Health {
	pctx, cancel := context.WithTimeout(ctx, s.pollTimeout)
	defer cancel()

	s.metrics.polls.Add(1)
	health, err := s.poller.Poll(pctx)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Debugf("Health poll failed: %v", err)
		}
		health = HealthError
	}
	s.metrics.health.Store(int32(health))
	return health
}

func (s *Supervisor[T]) read(ctx context.Context) (T, error) {
	rctx, cancel := context.WithTimeout(ctx, s.readTimeout)
	defer cancel()

	item, err := s.stream.Recv(rctx)
	if err != nil && errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		return item, fmt.Errorf("%w after %s", ErrReadTimeout, s.readTimeout)
	}
	return item, err
}

func (s *Supervisor[T]) handle(ctx context.Context, item T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return s.handler.Handle(ctx, item)
}

// describe prefixes err with its gRPC code when it carries one.
func describe(err error) string {
	if c := status.Code(err); c != codes.OK && c != codes.Unknown {
		return c.String() + ": " + err.Error()
	}
	return err.Error()
}

// teardown closes the current stream, if any, and returns to NoStream.
func (s *Supervisor[T]) teardown(reason string) {
	if s.stream == nil {
		return
	}
	logger := s.logger.WithField("handle", s.handleID)
	if err := s.stream.Close(); err != nil {
		logger.Debugf("Error closing stream: %v", err)
	}
	s.stream = nil
	s.handleID = ""
	s.metrics.closes.Add(1)
	s.metrics.streaming.Store(false)
	logger.Infof("Stream closed: %s", reason)
}

// Stats returns a snapshot of the supervisor's counters. Safe to call from
// any goroutine.
func (s *Supervisor[T]) Stats() Stats {
	return s.metrics.snapshot()
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

var _ Reporter = (*Supervisor[int])(nil)
