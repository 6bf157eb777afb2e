package joystick

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	customlog "github.com/vilo159/amiga-joystick-tutorial/pkg/log"
)

const (
	DefaultRedrawRate   = 30.0
	DefaultKnobDiameter = 100.0
)

var (
	ErrInvalidRegion  = errors.New("joystick: region must have positive width and height")
	ErrAlreadyLaidOut = errors.New("joystick: region already set")
)

// Knob is the lower left corner of the drawn knob, in the same coordinates as
// the region.
type Knob struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Diameter float64 `json:"diameter"`
}

// WidgetOptions configures a Widget. Zero values take the defaults.
type WidgetOptions struct {
	RedrawRate   float64 // Hz
	KnobDiameter float64
}

// Widget is the input surface. It owns the region, gates touches on it and
// keeps the knob position for display.
type Widget struct {
	mapper   *Mapper
	logger   customlog.Logger
	diameter float64
	period   time.Duration

	region    atomic.Pointer[Region]
	knob      atomic.Pointer[Knob]
	ready     chan struct{}
	readyOnce sync.Once
	layoutMu  sync.Mutex
}

// NewWidget creates a widget around mapper. It is not ready until Layout.
func NewWidget(mapper *Mapper, opts WidgetOptions, logger customlog.Logger) *Widget {
	if opts.RedrawRate <= 0 {
		opts.RedrawRate = DefaultRedrawRate
	}
	if opts.KnobDiameter <= 0 {
		opts.KnobDiameter = DefaultKnobDiameter
	}
	w := &Widget{
		mapper:   mapper,
		logger:   logger,
		diameter: opts.KnobDiameter,
		period:   time.Duration(float64(time.Second) / opts.RedrawRate),
		ready:    make(chan struct{}),
	}
	w.knob.Store(&Knob{Diameter: opts.KnobDiameter})
	return w
}

// Mapper returns the widget's mapper.
func (w *Widget) Mapper() *Mapper {
	return w.mapper
}

// Layout sets the region once. The first successful call makes the widget
// ready; later calls return ErrAlreadyLaidOut.
func (w *Widget) Layout(r Region) error {
	if !r.Valid() {
		return fmt.Errorf("%w: %+v", ErrInvalidRegion, r)
	}

	w.layoutMu.Lock()
	defer w.layoutMu.Unlock()

	if w.region.Load() != nil {
		return ErrAlreadyLaidOut
	}
	w.region.Store(&r)
	w.Draw()
	w.readyOnce.Do(func() { close(w.ready) })
	w.logger.Infof("Joystick laid out at (%.0f, %.0f) size %.0fx%.0f", r.X, r.Y, r.Width, r.Height)
	return nil
}

// Ready is closed once the widget has a region.
func (w *Widget) Ready() <-chan struct{} {
	return w.ready
}

// Region returns the current region, if any.
func (w *Widget) Region() (Region, bool) {
	r := w.region.Load()
	if r == nil {
		return Region{}, false
	}
	return *r, true
}

// TouchDown starts a gesture. Touches outside the region are ignored.
func (w *Widget) TouchDown(p r2.Vec) bool {
	r, ok := w.hit(p)
	if !ok {
		return false
	}
	return w.mapper.Begin(r, p)
}

// TouchMove continues a gesture. Touches outside the region are ignored.
func (w *Widget) TouchMove(p r2.Vec) bool {
	r, ok := w.hit(p)
	if !ok {
		return false
	}
	return w.mapper.Update(r, p)
}

// TouchUp releases the stick wherever the touch ended.
func (w *Widget) TouchUp() {
	w.mapper.End()
}

func (w *Widget) hit(p r2.Vec) (Region, bool) {
	r, ok := w.Region()
	if !ok || !r.Contains(p) {
		return Region{}, false
	}
	return r, true
}

// Knob returns the last drawn knob position.
func (w *Widget) Knob() Knob {
	return *w.knob.Load()
}

// Draw recomputes the knob position from the current pose.
func (w *Widget) Draw() {
	r, ok := w.Region()
	if !ok {
		return
	}
	pose := w.mapper.Pose()
	c := r.Center()
	half := math.Floor(w.diameter / 2)
	w.knob.Store(&Knob{
		X:        c.X + 0.5*pose.X*(r.Width-w.diameter) - half,
		Y:        c.Y + 0.5*pose.Y*(r.Height-w.diameter) - half,
		Diameter: w.diameter,
	})
}

// Run redraws the knob at the configured rate until ctx is done.
func (w *Widget) Run(ctx context.Context) error {
	select {
	case <-w.ready:
	case <-ctx.Done():
		return nil
	}

	ticker := time.NewTicker(w.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.Draw()
		}
	}
}
