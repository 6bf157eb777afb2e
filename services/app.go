// Package services wires the joystick client together and owns its
// lifecycle.
package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/vilo159/amiga-joystick-tutorial/domain/telemetry"
	"github.com/vilo159/amiga-joystick-tutorial/domain/teleop"
	"github.com/vilo159/amiga-joystick-tutorial/domain/video"
	"github.com/vilo159/amiga-joystick-tutorial/pkg/config"
	"github.com/vilo159/amiga-joystick-tutorial/pkg/flatbuffers/farm_ng/canbus"
	"github.com/vilo159/amiga-joystick-tutorial/pkg/flatbuffers/farm_ng/oak"
	"github.com/vilo159/amiga-joystick-tutorial/pkg/joystick"
	customlog "github.com/vilo159/amiga-joystick-tutorial/pkg/log"
	"github.com/vilo159/amiga-joystick-tutorial/pkg/rpc"
	"github.com/vilo159/amiga-joystick-tutorial/pkg/supervisor"
	"github.com/vilo159/amiga-joystick-tutorial/pkg/zeromq"
)

// Supervisor names, as shown by /api/v1/streams.
const (
	CameraStream    = "camera"
	TelemetryStream = "telemetry"
	CommandStream   = "command"
)

// App holds every long-running task of the client. Nothing runs until Run.
type App struct {
	Widget    *joystick.Widget
	Generator *teleop.Generator
	Video     *video.VideoService
	Telemetry *telemetry.TelemetryService
	Teleop    *teleop.TeleopService
	Frames    *video.SyncFrameHandler
	Registry  *supervisor.Registry

	camera  *supervisor.Supervisor[*oak.StreamFramesReply]
	canbus  *supervisor.Supervisor[*canbus.StreamCanbusReply]
	command *supervisor.Supervisor[teleop.AckReport]
	zmq     *zeromq.ZeroMQService
	logger  customlog.Logger
}

// Dial opens client connections to the camera and canbus services.
// Connections are lazy: no service needs to be up yet.
func Dial(cfg config.AmigaConfig, opts ...grpc.DialOption) (camera, bus *grpc.ClientConn, err error) {
	camera, err = rpc.NewConn(rpc.Target(cfg.Address, cfg.CameraPort), opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("camera connection: %w", err)
	}
	bus, err = rpc.NewConn(rpc.Target(cfg.Address, cfg.CanbusPort), opts...)
	if err != nil {
		camera.Close()
		return nil, nil, fmt.Errorf("canbus connection: %w", err)
	}
	return camera, bus, nil
}

// NewApp builds the widget, the command generator and the three stream
// supervisors on top of the given connections.
func NewApp(cfg *config.Config, cameraConn, canbusConn grpc.ClientConnInterface, logger customlog.Logger) (*App, error) {
	a := &App{
		Video:    video.NewVideoService(),
		Registry: supervisor.NewRegistry(logger),
		logger:   logger,
	}

	a.Widget = joystick.NewWidget(joystick.NewMapper(), joystick.WidgetOptions{
		RedrawRate:   cfg.Joystick.RedrawHz,
		KnobDiameter: cfg.Joystick.KnobDiameter,
	}, logger.WithField("component", "joystick"))
	ready := a.Widget.Ready()

	frameSinks := video.Sinks{a.Video}
	var telemetrySink telemetry.Sink
	if cfg.ZeroMQ.Enabled {
		zmq, err := zeromq.NewZeroMQService(cfg.ZeroMQ, logger)
		if err != nil {
			return nil, fmt.Errorf("zeromq: %w", err)
		}
		a.zmq = zmq
		pub := zeromq.NewPublisher(zmq, logger)
		frameSinks = append(frameSinks, pub)
		telemetrySink = pub
		zeromq.RegisterStatusHandler(zmq, a.Status)
	}
	a.Telemetry = telemetry.NewTelemetryService(telemetrySink, logger.WithField("component", "telemetry"))

	a.Generator = teleop.NewGenerator(a.Widget.Mapper(), teleop.GeneratorOptions{
		Period:         cfg.Control.Period(),
		MaxSpeed:       cfg.Control.MaxSpeed,
		MaxAngularRate: cfg.Control.MaxAngularRate,
		Ready:          ready,
	}, logger.WithField("component", "generator"))
	a.Teleop = teleop.NewTeleopService(a.Generator, logger.WithField("component", "teleop"))

	base := supervisor.Options{
		Backoff:     cfg.Supervisor.Backoff(),
		ReadTimeout: cfg.Supervisor.ReadTimeout(),
		PollTimeout: cfg.Supervisor.PollTimeout(),
		Ready:       ready,
	}

	cameraClient := rpc.NewCameraClient(cameraConn)
	canbusClient := rpc.NewCanbusClient(canbusConn)

	a.Frames = video.NewSyncFrameHandler(cfg.Video.Views, video.JPEGDecoder{}, frameSinks, logger.WithField("component", "video"))

	opts := base
	opts.Name = CameraStream
	opts.Accept = supervisor.AcceptIdleOrRunning
	a.camera = supervisor.New[*oak.StreamFramesReply](
		cameraClient,
		video.NewFrameOpener(cameraClient, uint32(cfg.Amiga.StreamEveryN)),
		a.Frames,
		opts, logger)

	opts = base
	opts.Name = TelemetryStream
	opts.Accept = supervisor.AcceptIdleOrRunning
	a.canbus = supervisor.New[*canbus.StreamCanbusReply](
		canbusClient,
		telemetry.NewStreamOpener(canbusClient),
		a.Telemetry,
		opts, logger)

	// Motion commands only go to a fully running service.
	opts = base
	opts.Name = CommandStream
	opts.Accept = supervisor.AcceptRunning
	a.command = supervisor.New[teleop.AckReport](
		canbusClient,
		teleop.NewCommandOpener(canbusClient, a.Generator, cfg.Control.AckInterval(), logger.WithField("stream", CommandStream)),
		a.Teleop,
		opts, logger)

	a.Registry.Register(a.camera)
	a.Registry.Register(a.canbus)
	a.Registry.Register(a.command)

	return a, nil
}

// Run starts every task and blocks until ctx is cancelled. Supervisors wait
// for the widget's layout before their first poll. Cancellation is not an
// error.
func (a *App) Run(ctx context.Context) error {
	if a.zmq != nil {
		a.zmq.Start()
		defer a.zmq.Stop()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.Widget.Run(ctx) })
	g.Go(func() error { return a.Generator.Run(ctx) })
	g.Go(func() error { return a.camera.Run(ctx) })
	g.Go(func() error { return a.canbus.Run(ctx) })
	g.Go(func() error { return a.command.Run(ctx) })

	a.logger.Infof("Joystick client running, waiting for layout")
	err := g.Wait()
	a.logger.Infof("Joystick client stopped")
	return err
}

// Status summarizes the client for the ZeroMQ status request.
func (a *App) Status() interface{} {
	cmd, _ := a.Generator.Last()
	snap, _ := a.Telemetry.GetSnapshot()
	parsed, skipped := a.Telemetry.Counts()
	return map[string]interface{}{
		"streams":   a.Registry.Snapshot(),
		"pose":      a.Widget.Mapper().Pose(),
		"command":   cmd,
		"telemetry": snap,
		"views":     a.Video.GetActiveStreams(),
		"frames":    a.Frames.Stats(),
		"can": map[string]uint64{
			"parsed":  parsed,
			"skipped": skipped,
		},
	}
}
