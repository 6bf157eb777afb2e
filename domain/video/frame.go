package video

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"sync/atomic"
	"time"

	"google.golang.org/grpc"

	"github.com/vilo159/amiga-joystick-tutorial/pkg/flatbuffers/farm_ng/oak"
	customlog "github.com/vilo159/amiga-joystick-tutorial/pkg/log"
	"github.com/vilo159/amiga-joystick-tutorial/pkg/rpc"
	"github.com/vilo159/amiga-joystick-tutorial/pkg/supervisor"
)

// DefaultViews are the OAK camera outputs, in display order.
var DefaultViews = []string{"rgb", "disparity", "left", "right"}

// Frame is one decoded camera view.
type Frame struct {
	View       string      `json:"view"`
	Sequence   uint32      `json:"sequence"`
	Stamp      float64     `json:"stamp"`
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	Image      image.Image `json:"-"`
	Data       []byte      `json:"-"` // compressed bytes as received
	ReceivedAt time.Time   `json:"received_at"`
}

// Decoder turns a compressed payload into an image.
type Decoder interface {
	Decode(data []byte) (image.Image, error)
}

// JPEGDecoder decodes baseline and progressive JPEG.
type JPEGDecoder struct{}

func (JPEGDecoder) Decode(data []byte) (image.Image, error) {
	return jpeg.Decode(bytes.NewReader(data))
}

// Sink receives decoded frames for display.
type Sink interface {
	PresentFrame(Frame)
}

// Sinks fans a frame out to several sinks in order.
type Sinks []Sink

func (s Sinks) PresentFrame(f Frame) {
	for _, sink := range s {
		sink.PresentFrame(f)
	}
}

// SyncFrameHandler decodes each configured view of a synchronized frame and
// presents it. A view that is missing or fails to decode, panics included,
// is skipped on its own; the other views of the frame are still presented.
type SyncFrameHandler struct {
	views   []string
	decoder Decoder
	sink    Sink
	logger  customlog.Logger

	presented    atomic.Uint64
	missing      atomic.Uint64
	decodeErrors atomic.Uint64
}

// NewSyncFrameHandler creates a handler. A nil decoder means JPEG; empty
// views means DefaultViews.
func NewSyncFrameHandler(views []string, decoder Decoder, sink Sink, logger customlog.Logger) *SyncFrameHandler {
	if len(views) == 0 {
		views = DefaultViews
	}
	if decoder == nil {
		decoder = JPEGDecoder{}
	}
	return &SyncFrameHandler{
		views:   views,
		decoder: decoder,
		sink:    sink,
		logger:  logger,
	}
}

// Handle implements supervisor.Handler.
func (h *SyncFrameHandler) Handle(_ context.Context, reply *oak.StreamFramesReply) error {
	frame := reply.Frame(nil)
	if frame == nil {
		return fmt.Errorf("%w: frames reply without frame", rpc.ErrUnexpectedMessage)
	}

	images := make(map[string]*oak.OakImage, frame.ImagesLength())
	for j := 0; j < frame.ImagesLength(); j++ {
		img := new(oak.OakImage)
		if frame.Images(img, j) {
			images[string(img.View())] = img
		}
	}

	now := time.Now()
	for _, view := range h.views {
		img, ok := images[view]
		if !ok {
			h.missing.Add(1)
			continue
		}
		data := append([]byte(nil), img.ImageDataBytes()...)
		decoded, err := h.decode(data)
		if err != nil {
			h.decodeErrors.Add(1)
			h.logger.Warnf("Failed to decode %s view of frame %d: %v", view, frame.Sequence(), err)
			continue
		}
		b := decoded.Bounds()
		h.sink.PresentFrame(Frame{
			View:       view,
			Sequence:   frame.Sequence(),
			Stamp:      img.Stamp(),
			Width:      b.Dx(),
			Height:     b.Dy(),
			Image:      decoded,
			Data:       data,
			ReceivedAt: now,
		})
		h.presented.Add(1)
	}
	return nil
}

// decode runs the decoder and reports a panic or a nil image as an error.
func (h *SyncFrameHandler) decode(data []byte) (img image.Image, err error) {
	defer func() {
		if r := recover(); r != nil {
			img, err = nil, fmt.Errorf("decoder panic: %v", r)
		}
	}()
	img, err = h.decoder.Decode(data)
	if err == nil && img == nil {
		err = errors.New("decoder returned no image")
	}
	return img, err
}

// HandlerStats counts per-view outcomes.
type HandlerStats struct {
	Presented    uint64 `json:"presented"`
	Missing      uint64 `json:"missing"`
	DecodeErrors uint64 `json:"decode_errors"`
}

// Stats returns the handler's counters.
func (h *SyncFrameHandler) Stats() HandlerStats {
	return HandlerStats{
		Presented:    h.presented.Load(),
		Missing:      h.missing.Load(),
		DecodeErrors: h.decodeErrors.Load(),
	}
}

// FrameStreamer starts the camera's frame stream.
type FrameStreamer interface {
	StreamFrames(ctx context.Context, everyN uint32, opts ...grpc.CallOption) (rpc.FramesStream, error)
}

// FrameOpener opens frame streams for a supervisor.
type FrameOpener struct {
	client FrameStreamer
	everyN uint32
}

// NewFrameOpener asks the camera for every everyN-th frame.
func NewFrameOpener(client FrameStreamer, everyN uint32) *FrameOpener {
	return &FrameOpener{client: client, everyN: everyN}
}

// Open implements supervisor.Opener.
func (o *FrameOpener) Open(ctx context.Context) (supervisor.Stream[*oak.StreamFramesReply], error) {
	sctx, cancel := context.WithCancel(ctx)
	stream, err := o.client.StreamFrames(sctx, o.everyN)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("streamFrames: %w", err)
	}
	return supervisor.NewAsyncStream(stream.Recv, func() error {
		cancel()
		return nil
	}), nil
}
