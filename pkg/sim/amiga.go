// Package sim serves fake camera and canbus services that behave like an
// Amiga brain closely enough to drive the joystick client without a robot.
package sim

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"net"
	"sync"
	"time"

	flatbuffers "github.com/google/flatbuffers/go"
	"go.einride.tech/can"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/vilo159/amiga-joystick-tutorial/domain/video"
	"github.com/vilo159/amiga-joystick-tutorial/pkg/flatbuffers/farm_ng/canbus"
	"github.com/vilo159/amiga-joystick-tutorial/pkg/flatbuffers/farm_ng/oak"
	"github.com/vilo159/amiga-joystick-tutorial/pkg/flatbuffers/farm_ng/service"
	customlog "github.com/vilo159/amiga-joystick-tutorial/pkg/log"
	"github.com/vilo159/amiga-joystick-tutorial/pkg/packet"
	"github.com/vilo159/amiga-joystick-tutorial/pkg/rpc"
	"github.com/vilo159/amiga-joystick-tutorial/pkg/supervisor"
)

const (
	DefaultFrameRate      = 10.0
	DefaultTelemetryRate  = 20.0
	DefaultImageWidth     = 64
	DefaultImageHeight    = 48
	DefaultCommandTimeout = 500 * time.Millisecond

	// noiseID is another node's traffic mixed into the telemetry stream.
	noiseID = 0x301
)

// Options configures the simulator. Zero values take the defaults.
type Options struct {
	CameraScript   Script
	CanbusScript   Script
	Views          []string
	FrameRate      float64 // Hz
	TelemetryRate  float64 // Hz
	Width          int
	Height         int
	CommandTimeout time.Duration
}

// Amiga is the simulated robot. Commands received on the canbus service
// are echoed back as measured values in the dashboard status.
type Amiga struct {
	opts   Options
	logger customlog.Logger
	start  time.Time

	mu        sync.Mutex
	overrides map[string]supervisor.Health
	lastCmd   packet.Rpdo1
	lastCmdAt time.Time
	commands  uint64
}

// New creates a simulator. Health scripts start counting now.
func New(opts Options, logger customlog.Logger) *Amiga {
	if len(opts.Views) == 0 {
		opts.Views = video.DefaultViews
	}
	if opts.FrameRate <= 0 {
		opts.FrameRate = DefaultFrameRate
	}
	if opts.TelemetryRate <= 0 {
		opts.TelemetryRate = DefaultTelemetryRate
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = DefaultImageWidth, DefaultImageHeight
	}
	if opts.CommandTimeout <= 0 {
		opts.CommandTimeout = DefaultCommandTimeout
	}
	return &Amiga{
		opts:      opts,
		logger:    logger.WithField("component", "sim"),
		start:     time.Now(),
		overrides: make(map[string]supervisor.Health),
	}
}

// SetHealth pins a service's health, ignoring its script.
func (a *Amiga) SetHealth(serviceName string, h supervisor.Health) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.overrides[serviceName] = h
	a.logger.Infof("%s health set to %s", serviceName, h)
}

func (a *Amiga) health(serviceName string, script Script) supervisor.Health {
	a.mu.Lock()
	h, ok := a.overrides[serviceName]
	a.mu.Unlock()
	if ok {
		return h
	}
	return script.At(time.Since(a.start))
}

// LastCommand returns the last accepted command and how many were accepted.
func (a *Amiga) LastCommand() (packet.Rpdo1, uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastCmd, a.commands
}

func (a *Amiga) recordCommand(cmd packet.Rpdo1) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastCmd = cmd
	a.lastCmdAt = time.Now()
	a.commands++
}

// status is the dashboard state reported in TPDO1. A fresh AUTO_ACTIVE
// command is echoed; otherwise the dashboard sits in AUTO_READY.
func (a *Amiga) status() packet.Tpdo1 {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.commands > 0 && a.lastCmd.State == packet.StateAutoActive &&
		time.Since(a.lastCmdAt) < a.opts.CommandTimeout {
		return packet.Tpdo1{
			State:           packet.StateAutoActive,
			MeasSpeed:       a.lastCmd.Speed,
			MeasAngularRate: a.lastCmd.AngularRate,
		}
	}
	return packet.Tpdo1{State: packet.StateAutoReady}
}

// RegisterCamera attaches the camera service to s.
func (a *Amiga) RegisterCamera(s grpc.ServiceRegistrar) {
	rpc.RegisterOakServiceServer(s, &cameraService{amiga: a})
}

// RegisterCanbus attaches the canbus service to s.
func (a *Amiga) RegisterCanbus(s grpc.ServiceRegistrar) {
	rpc.RegisterCanbusServiceServer(s, &canbusService{amiga: a})
}

// Serve runs both services until ctx is done.
func (a *Amiga) Serve(ctx context.Context, cameraLis, canbusLis net.Listener) error {
	camera := grpc.NewServer(rpc.ServerOptions()...)
	a.RegisterCamera(camera)
	bus := grpc.NewServer(rpc.ServerOptions()...)
	a.RegisterCanbus(bus)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Infof("Camera service listening on %s", cameraLis.Addr())
		return camera.Serve(cameraLis)
	})
	g.Go(func() error {
		a.logger.Infof("Canbus service listening on %s", canbusLis.Addr())
		return bus.Serve(canbusLis)
	})
	g.Go(func() error {
		<-ctx.Done()
		camera.GracefulStop()
		bus.GracefulStop()
		return nil
	})
	return g.Wait()
}

func unavailable(serviceName string, h supervisor.Health) error {
	return status.Errorf(codes.Unavailable, "%s is %s", serviceName, h)
}

func period(hz float64) time.Duration {
	return time.Duration(float64(time.Second) / hz)
}

func stamp(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}

type cameraService struct {
	amiga *Amiga
}

func (s *cameraService) GetServiceState(context.Context, *service.GetServiceStateRequest) (*flatbuffers.Builder, error) {
	return rpc.BuildServiceStateReply(s.amiga.health(rpc.OakServiceName, s.amiga.opts.CameraScript)), nil
}

// StreamFrames sends every n-th synthetic frame while the camera is idle or
// running.
func (s *cameraService) StreamFrames(req *oak.StreamFramesRequest, stream grpc.ServerStreamingServer[flatbuffers.Builder]) error {
	a := s.amiga
	everyN := req.EveryN()
	if everyN == 0 {
		everyN = 1
	}

	ticker := time.NewTicker(period(a.opts.FrameRate))
	defer ticker.Stop()

	var seq uint32
	for {
		select {
		case <-stream.Context().Done():
			return nil
		case now := <-ticker.C:
			if h := a.health(rpc.OakServiceName, a.opts.CameraScript); !supervisor.AcceptIdleOrRunning(h) {
				return unavailable("camera", h)
			}
			seq++
			if seq%everyN != 0 {
				continue
			}
			images, err := SyntheticImages(a.opts.Views, seq, a.opts.Width, a.opts.Height)
			if err != nil {
				return status.Error(codes.Internal, err.Error())
			}
			if err := stream.Send(video.BuildFramesReply(seq, stamp(now), images)); err != nil {
				return err
			}
		}
	}
}

type canbusService struct {
	amiga *Amiga
}

func (s *canbusService) GetServiceState(context.Context, *service.GetServiceStateRequest) (*flatbuffers.Builder, error) {
	return rpc.BuildServiceStateReply(s.amiga.health(rpc.CanbusServiceName, s.amiga.opts.CanbusScript)), nil
}

// StreamCanbusMessages sends the dashboard status plus unrelated traffic.
func (s *canbusService) StreamCanbusMessages(_ *canbus.StreamCanbusRequest, stream grpc.ServerStreamingServer[flatbuffers.Builder]) error {
	a := s.amiga
	ticker := time.NewTicker(period(a.opts.TelemetryRate))
	defer ticker.Stop()

	for {
		select {
		case <-stream.Context().Done():
			return nil
		case now := <-ticker.C:
			if h := a.health(rpc.CanbusServiceName, a.opts.CanbusScript); !supervisor.AcceptIdleOrRunning(h) {
				return unavailable("canbus", h)
			}
			frames := []can.Frame{
				a.status().Frame(),
				{ID: noiseID, Length: 2, Data: can.Data{0xAA, 0x55}},
			}
			if err := stream.Send(packet.BuildStreamReply(frames, stamp(now))); err != nil {
				return err
			}
		}
	}
}

// SendCanbusMessage acks each request. Only RPDO1 frames sent while the
// service is running are accepted.
func (s *canbusService) SendCanbusMessage(stream grpc.BidiStreamingServer[canbus.SendCanbusMessageRequest, flatbuffers.Builder]) error {
	a := s.amiga
	raw := new(canbus.RawCanbusMessage)
	for {
		req, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if req.Message(raw) == nil {
			return status.Error(codes.InvalidArgument, "request carries no message")
		}

		ok := false
		if f, err := packet.FromRaw(raw); err == nil {
			if cmd, isCmd := packet.ParseRpdo1(f); isCmd &&
				a.health(rpc.CanbusServiceName, a.opts.CanbusScript) == supervisor.HealthRunning {
				a.recordCommand(cmd)
				ok = true
			}
		}

		b := flatbuffers.NewBuilder(16)
		canbus.SendCanbusMessageReplyStart(b)
		canbus.SendCanbusMessageReplyAddSuccess(b, ok)
		b.Finish(canbus.SendCanbusMessageReplyEnd(b))
		if err := stream.Send(b); err != nil {
			return err
		}
	}
}

var viewTints = []color.RGBA{
	{R: 200, G: 60, B: 60, A: 255},
	{R: 60, G: 200, B: 60, A: 255},
	{R: 60, G: 60, B: 200, A: 255},
	{R: 200, G: 200, B: 60, A: 255},
}

// SyntheticImages renders one JPEG per view: a tinted field with a bar that
// moves with the sequence number.
func SyntheticImages(views []string, seq uint32, width, height int) ([]video.RawImage, error) {
	out := make([]video.RawImage, 0, len(views))
	bar := int(seq) % width
	for i, view := range views {
		tint := viewTints[i%len(viewTints)]
		img := image.NewRGBA(image.Rect(0, 0, width, height))
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				c := tint
				if x == bar {
					c = color.RGBA{R: 255, G: 255, B: 255, A: 255}
				}
				img.SetRGBA(x, y, c)
			}
		}
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 75}); err != nil {
			return nil, err
		}
		out = append(out, video.RawImage{View: view, Data: buf.Bytes()})
	}
	return out, nil
}
