package supervisor

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsyncStreamDeliversInOrderThenEOF(t *testing.T) {
	values := []int{1, 2, 3}
	i := 0
	s := NewAsyncStream[int](func() (int, error) {
		if i == len(values) {
			return 0, io.EOF
		}
		v := values[i]
		i++
		return v, nil
	}, nil)
	defer s.Close()

	for _, want := range values {
		got, err := s.Recv(context.Background())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := s.Recv(context.Background())
	assert.ErrorIs(t, err, ErrEndOfStream)

	// A drained stream keeps reporting the end.
	_, err = s.Recv(context.Background())
	assert.ErrorIs(t, err, ErrEndOfStream)
}

func TestAsyncStreamRecvHonoursContext(t *testing.T) {
	unblock := make(chan struct{})
	s := NewAsyncStream[int](func() (int, error) {
		<-unblock
		return 0, errors.New("cancelled")
	}, func() error {
		close(unblock)
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := s.Recv(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	closed := make(chan struct{})
	go func() {
		assert.NoError(t, s.Close())
		close(closed)
	}()
	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("Close did not wait for the reader to exit")
	}

	_, err = s.Recv(context.Background())
	assert.Error(t, err)
}

func TestAcceptPredicates(t *testing.T) {
	all := []Health{HealthUnknown, HealthStopped, HealthRunning, HealthIdle, HealthUnavailable, HealthError}
	for _, h := range all {
		assert.Equal(t, h == HealthRunning || h == HealthIdle, AcceptIdleOrRunning(h), h.String())
		assert.Equal(t, h == HealthRunning, AcceptRunning(h), h.String())
	}
	assert.Equal(t, "Health(9)", Health(9).String())
}

func TestParseHealth(t *testing.T) {
	h, err := ParseHealth(" idle ")
	require.NoError(t, err)
	assert.Equal(t, HealthIdle, h)

	_, err = ParseHealth("sleepy")
	assert.Error(t, err)
}
