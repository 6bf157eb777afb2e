package teleop

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"github.com/vilo159/amiga-joystick-tutorial/pkg/joystick"
	customlog "github.com/vilo159/amiga-joystick-tutorial/pkg/log"
)

const (
	DefaultPeriod         = 20 * time.Millisecond
	DefaultMaxSpeed       = 1.0
	DefaultMaxAngularRate = 1.0
)

// PoseSource provides the current joystick deflection.
type PoseSource interface {
	Pose() joystick.ControlVector
}

// GeneratorOptions configures a Generator. A zero Period takes
// DefaultPeriod. The speed limits are used as given, so a zero MaxSpeed
// yields a rotate-only generator; negative limits count as zero.
type GeneratorOptions struct {
	Period         time.Duration
	MaxSpeed       float64
	MaxAngularRate float64
	// Ready, when set, gates the first command.
	Ready <-chan struct{}
}

// GeneratorStats counts generated commands.
type GeneratorStats struct {
	Emitted uint64 `json:"emitted"`
	Dropped uint64 `json:"dropped"`
}

// Generator samples the joystick at a fixed period and publishes one
// command per tick into a single-slot mailbox. An unconsumed command is
// replaced by the next one, so a reader always gets the freshest value.
type Generator struct {
	source         PoseSource
	period         time.Duration
	maxSpeed       float64
	maxAngularRate float64
	ready          <-chan struct{}
	logger         customlog.Logger

	mailbox chan Command
	last    atomic.Pointer[Command]
	emitted atomic.Uint64
	dropped atomic.Uint64
}

// DefaultGeneratorOptions returns the default period and speed limits.
func DefaultGeneratorOptions() GeneratorOptions {
	return GeneratorOptions{
		Period:         DefaultPeriod,
		MaxSpeed:       DefaultMaxSpeed,
		MaxAngularRate: DefaultMaxAngularRate,
	}
}

// NewGenerator creates a generator reading from source.
func NewGenerator(source PoseSource, opts GeneratorOptions, logger customlog.Logger) *Generator {
	if opts.Period <= 0 {
		opts.Period = DefaultPeriod
	}
	opts.MaxSpeed = math.Max(0, opts.MaxSpeed)
	opts.MaxAngularRate = math.Max(0, opts.MaxAngularRate)
	return &Generator{
		source:         source,
		period:         opts.Period,
		maxSpeed:       opts.MaxSpeed,
		maxAngularRate: opts.MaxAngularRate,
		ready:          opts.Ready,
		logger:         logger,
		mailbox:        make(chan Command, 1),
	}
}

// Commands is the mailbox. Only one consumer should read it at a time.
func (g *Generator) Commands() <-chan Command {
	return g.mailbox
}

// Run emits commands until ctx is done. It does not depend on anyone
// consuming them.
func (g *Generator) Run(ctx context.Context) error {
	if g.ready != nil {
		select {
		case <-g.ready:
		case <-ctx.Done():
			return nil
		}
	}

	g.logger.Infof("Command generator started (period %s, max speed %.2f, max rate %.2f)",
		g.period, g.maxSpeed, g.maxAngularRate)

	ticker := time.NewTicker(g.period)
	defer ticker.Stop()

	g.Emit()
	for {
		select {
		case <-ctx.Done():
			g.logger.Infof("Command generator stopped (%d emitted, %d dropped)", g.emitted.Load(), g.dropped.Load())
			return nil
		case <-ticker.C:
			g.Emit()
		}
	}
}

// Emit samples the pose once and publishes the resulting command.
func (g *Generator) Emit() Command {
	cmd := CommandFromPose(g.source.Pose(), g.maxSpeed, g.maxAngularRate)
	g.last.Store(&cmd)
	g.emitted.Add(1)

	for {
		select {
		case g.mailbox <- cmd:
			return cmd
		default:
		}
		// Mailbox full: discard the stale command and retry.
		select {
		case <-g.mailbox:
			g.dropped.Add(1)
		default:
		}
	}
}

// Last returns the most recently generated command.
func (g *Generator) Last() (Command, bool) {
	cmd := g.last.Load()
	if cmd == nil {
		return Command{}, false
	}
	return *cmd, true
}

// Stats returns the generator's counters.
func (g *Generator) Stats() GeneratorStats {
	return GeneratorStats{
		Emitted: g.emitted.Load(),
		Dropped: g.dropped.Load(),
	}
}
