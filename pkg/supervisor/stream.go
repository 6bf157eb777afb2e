package supervisor

import (
	"context"
	"errors"
	"io"
	"sync"
)

var (
	// ErrEndOfStream is returned when the remote side finished the stream.
	ErrEndOfStream = errors.New("end of stream")
	// ErrReadTimeout is returned when no item arrived within the read timeout.
	ErrReadTimeout = errors.New("read timeout")
	// ErrStreamClosed is returned by Recv on a handle that was closed locally.
	ErrStreamClosed = errors.New("stream closed")
)

// Stream is one open streaming call. It is owned by a single supervisor
// goroutine; Close may be called once the owner is done with it.
type Stream[T any] interface {
	Recv(ctx context.Context) (T, error)
	Close() error
}

// Opener starts a new stream against the remote service.
type Opener[T any] interface {
	Open(ctx context.Context) (Stream[T], error)
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc[T any] func(ctx context.Context) (Stream[T], error)

func (f OpenerFunc[T]) Open(ctx context.Context) (Stream[T], error) { return f(ctx) }

// Handler consumes one item read from a stream.
type Handler[T any] interface {
	Handle(ctx context.Context, item T) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc[T any] func(ctx context.Context, item T) error

func (f HandlerFunc[T]) Handle(ctx context.Context, item T) error { return f(ctx, item) }

type recvResult[T any] struct {
	item T
	err  error
}

// asyncStream turns a blocking receive into a context-aware one. A single
// reader goroutine hands items over an unbuffered channel.
type asyncStream[T any] struct {
	items     chan recvResult[T]
	done      chan struct{}
	closeFn   func() error
	closeOnce sync.Once
	closeErr  error
	wg        sync.WaitGroup
}

// NewAsyncStream wraps recv, which blocks until the next item. closeFn must
// make a pending recv return (typically by cancelling the call's context).
// io.EOF from recv is reported as ErrEndOfStream.
func NewAsyncStream[T any](recv func() (T, error), closeFn func() error) Stream[T] {
	s := &asyncStream[T]{
		items:   make(chan recvResult[T]),
		done:    make(chan struct{}),
		closeFn: closeFn,
	}
	s.wg.Add(1)
	go s.pump(recv)
	return s
}

func (s *asyncStream[T]) pump(recv func() (T, error)) {
	defer s.wg.Done()
	defer close(s.items)

	for {
		item, err := recv()
		if errors.Is(err, io.EOF) {
			err = ErrEndOfStream
		}
		select {
		case s.items <- recvResult[T]{item: item, err: err}:
		case <-s.done:
			return
		}
		if err != nil {
			return
		}
	}
}

func (s *asyncStream[T]) Recv(ctx context.Context) (T, error) {
	var zero T
	select {
	case r, ok := <-s.items:
		if !ok {
			return zero, ErrEndOfStream
		}
		return r.item, r.err
	case <-s.done:
		return zero, ErrStreamClosed
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

func (s *asyncStream[T]) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		if s.closeFn != nil {
			s.closeErr = s.closeFn()
		}
		s.wg.Wait()
	})
	return s.closeErr
}
