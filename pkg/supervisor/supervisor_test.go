package supervisor

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	customlog "github.com/vilo159/amiga-joystick-tutorial/pkg/log"
)

// scriptedPoller returns the scripted health values in order, then repeats
// the last one.
type scriptedPoller struct {
	mu     sync.Mutex
	script []Health
	errs   []error
	calls  int
}

func (p *scriptedPoller) Poll(ctx context.Context) (Health, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := p.calls
	if i >= len(p.script) {
		i = len(p.script) - 1
	}
	p.calls++
	var err error
	if i < len(p.errs) {
		err = p.errs[i]
	}
	return p.script[i], err
}

type fakeStream struct {
	recv   func(ctx context.Context) (int, error)
	closed atomic.Bool
}

func (s *fakeStream) Recv(ctx context.Context) (int, error) { return s.recv(ctx) }
func (s *fakeStream) Close() error {
	s.closed.Store(true)
	return nil
}

// recorder counts every externally visible action of a supervisor.
type recorder struct {
	mu      sync.Mutex
	events  []string
	streams []*fakeStream
	sleeps  int
	handled []int
}

func (r *recorder) add(ev string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func newTestSupervisor(t *testing.T, poller Poller, accept Accept, recv func(ctx context.Context) (int, error), handle func(int) error) (*Supervisor[int], *recorder) {
	t.Helper()
	rec := &recorder{}
	next := 0
	opener := OpenerFunc[int](func(ctx context.Context) (Stream[int], error) {
		rec.add("open")
		s := &fakeStream{recv: func(ctx context.Context) (int, error) {
			rec.add("read")
			if recv != nil {
				return recv(ctx)
			}
			next++
			return next, nil
		}}
		rec.streams = append(rec.streams, s)
		return s, nil
	})
	handler := HandlerFunc[int](func(ctx context.Context, item int) error {
		rec.handled = append(rec.handled, item)
		if handle != nil {
			return handle(item)
		}
		return nil
	})

	sup := New[int](poller, opener, handler, Options{Name: "test", Accept: accept}, customlog.NewDiscardLogger())
	sup.sleep = func(ctx context.Context, d time.Duration) {
		assert.Equal(t, DefaultBackoff, d)
		rec.sleeps++
		rec.add("sleep")
	}
	return sup, rec
}

func TestHealthSequenceOpensAndClosesOncePerRunningSpan(t *testing.T) {
	poller := &scriptedPoller{script: []Health{HealthUnavailable, HealthRunning, HealthError, HealthRunning}}
	sup, rec := newTestSupervisor(t, poller, AcceptIdleOrRunning, nil, nil)

	ctx := context.Background()
	for i := 0; i < 4; i++ {
		sup.step(ctx)
	}
	sup.teardown("shutdown")

	want := []string{"sleep", "open", "read", "sleep", "open", "read"}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("event sequence mismatch (-want +got):\n%s", diff)
	}

	st := sup.Stats()
	assert.Equal(t, uint64(2), st.Opens)
	assert.Equal(t, uint64(2), st.Closes)
	assert.Equal(t, uint64(2), st.Backoffs)
	assert.False(t, st.Streaming)
	require.Len(t, rec.streams, 2)
	for _, s := range rec.streams {
		assert.True(t, s.closed.Load())
	}
}

func TestStrictRunningNeverOpensOnIdle(t *testing.T) {
	poller := &scriptedPoller{script: []Health{HealthIdle}}
	sup, rec := newTestSupervisor(t, poller, AcceptRunning, nil, nil)

	for i := 0; i < 5; i++ {
		sup.step(context.Background())
	}

	assert.Equal(t, 5, rec.sleeps)
	assert.Empty(t, rec.streams)
	assert.Equal(t, "IDLE", sup.Stats().Health)
}

func TestInboundAcceptsIdle(t *testing.T) {
	poller := &scriptedPoller{script: []Health{HealthIdle}}
	sup, rec := newTestSupervisor(t, poller, AcceptIdleOrRunning, nil, nil)

	sup.step(context.Background())
	sup.step(context.Background())

	assert.Equal(t, 0, rec.sleeps)
	assert.Len(t, rec.streams, 1)
	assert.Equal(t, []int{1, 2}, rec.handled)
}

func TestReadFailureReopensWithoutBackoff(t *testing.T) {
	poller := &scriptedPoller{script: []Health{HealthRunning}}
	reads := 0
	recv := func(ctx context.Context) (int, error) {
		reads++
		if reads == 1 {
			return 0, ErrEndOfStream
		}
		return reads, nil
	}
	sup, rec := newTestSupervisor(t, poller, AcceptRunning, recv, nil)

	sup.step(context.Background())
	sup.step(context.Background())

	want := []string{"open", "read", "open", "read"}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("event sequence mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 0, rec.sleeps)
	assert.True(t, rec.streams[0].closed.Load())
	assert.False(t, rec.streams[1].closed.Load())

	st := sup.Stats()
	assert.Equal(t, uint64(1), st.ReadFailures)
	assert.Equal(t, uint64(1), st.Closes)
	assert.True(t, st.Streaming)
}

func TestHandlerFaultKeepsStream(t *testing.T) {
	poller := &scriptedPoller{script: []Health{HealthRunning}}
	handle := func(item int) error {
		switch item {
		case 1:
			return errors.New("bad item")
		case 2:
			panic("boom")
		}
		return nil
	}
	sup, rec := newTestSupervisor(t, poller, AcceptRunning, nil, handle)

	for i := 0; i < 3; i++ {
		sup.step(context.Background())
	}

	assert.Len(t, rec.streams, 1)
	assert.Equal(t, []int{1, 2, 3}, rec.handled)
	st := sup.Stats()
	assert.Equal(t, uint64(2), st.HandlerErrors)
	assert.Equal(t, uint64(3), st.Items)
	assert.Equal(t, uint64(0), st.Closes)
}

func TestPollErrorIsTreatedAsError(t *testing.T) {
	poller := &scriptedPoller{
		script: []Health{HealthRunning, HealthRunning},
		errs:   []error{nil, errors.New("unreachable")},
	}
	sup, rec := newTestSupervisor(t, poller, AcceptIdleOrRunning, nil, nil)

	sup.step(context.Background())
	sup.step(context.Background())

	assert.Equal(t, 1, rec.sleeps)
	assert.True(t, rec.streams[0].closed.Load())
	assert.Equal(t, "ERROR", sup.Stats().Health)
}

func TestReadTimeoutTearsDown(t *testing.T) {
	poller := &scriptedPoller{script: []Health{HealthRunning}}
	recv := func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	}
	sup, rec := newTestSupervisor(t, poller, AcceptRunning, recv, nil)
	sup.readTimeout = 10 * time.Millisecond

	item, err := func() (int, error) {
		sup.stream = &fakeStream{recv: recv}
		defer func() { sup.stream = nil }()
		return sup.read(context.Background())
	}()
	assert.Zero(t, item)
	assert.ErrorIs(t, err, ErrReadTimeout)

	sup.step(context.Background())
	assert.Equal(t, 0, rec.sleeps)
	assert.True(t, rec.streams[0].closed.Load())
	assert.Equal(t, uint64(1), sup.Stats().ReadFailures)
}

func TestRunWaitsForReadyAndStopsOnCancel(t *testing.T) {
	poller := &scriptedPoller{script: []Health{HealthRunning}}
	ready := make(chan struct{})

	items := make(chan int)
	recv := func(ctx context.Context) (int, error) {
		select {
		case v := <-items:
			return v, nil
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	sup, rec := newTestSupervisor(t, poller, AcceptRunning, recv, nil)
	sup.ready = ready

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sup.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	poller.mu.Lock()
	assert.Zero(t, poller.calls, "no poll before the surface is ready")
	poller.mu.Unlock()

	close(ready)
	items <- 7
	items <- 8

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.Len(t, rec.streams, 1)
	assert.True(t, rec.streams[0].closed.Load())
	assert.Equal(t, uint64(1), sup.Stats().Closes)
}

func TestRunReturnsWhenCancelledBeforeReady(t *testing.T) {
	poller := &scriptedPoller{script: []Health{HealthRunning}}
	sup, _ := newTestSupervisor(t, poller, AcceptRunning, nil, nil)
	sup.ready = make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, sup.Run(ctx))
	assert.Zero(t, poller.calls)
}

func TestOpenFailureRetriesImmediately(t *testing.T) {
	poller := &scriptedPoller{script: []Health{HealthRunning}}
	attempts := 0
	opener := OpenerFunc[int](func(ctx context.Context) (Stream[int], error) {
		attempts++
		return nil, errors.New("connection refused")
	})
	sup := New[int](poller, opener, HandlerFunc[int](func(context.Context, int) error { return nil }),
		Options{Name: "failing"}, customlog.NewDiscardLogger())
	sleeps := 0
	sup.sleep = func(context.Context, time.Duration) { sleeps++ }

	sup.step(context.Background())
	sup.step(context.Background())

	assert.Equal(t, 2, attempts)
	assert.Zero(t, sleeps)
	assert.Equal(t, uint64(2), sup.Stats().OpenFailures)
}

func TestDescribeAddsGRPCCode(t *testing.T) {
	assert.Equal(t, "Unavailable: rpc error: code = Unavailable desc = down",
		describe(status.Error(codes.Unavailable, "down")))
	assert.Equal(t, "end of stream", describe(ErrEndOfStream))
}
