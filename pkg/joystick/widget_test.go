package joystick

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	customlog "github.com/vilo159/amiga-joystick-tutorial/pkg/log"
)

func newTestWidget() *Widget {
	return NewWidget(NewMapper(), WidgetOptions{KnobDiameter: 20}, customlog.NewDiscardLogger())
}

func TestWidgetReadyOnFirstLayout(t *testing.T) {
	w := newTestWidget()

	select {
	case <-w.Ready():
		t.Fatal("ready before layout")
	default:
	}

	assert.ErrorIs(t, w.Layout(Region{Width: 0, Height: 10}), ErrInvalidRegion)
	require.NoError(t, w.Layout(testRegion))

	select {
	case <-w.Ready():
	default:
		t.Fatal("not ready after layout")
	}

	assert.ErrorIs(t, w.Layout(Region{Width: 5, Height: 5}), ErrAlreadyLaidOut)
	r, ok := w.Region()
	require.True(t, ok)
	assert.Equal(t, testRegion, r)
}

func TestWidgetIgnoresTouchesBeforeLayout(t *testing.T) {
	w := newTestWidget()
	assert.False(t, w.TouchDown(r2.Vec{X: 1, Y: 1}))
	assert.Equal(t, ControlVector{}, w.Mapper().Pose())
}

func TestWidgetHitTestGate(t *testing.T) {
	w := newTestWidget()
	require.NoError(t, w.Layout(testRegion))

	inside := r2.Vec{X: testRegion.X + 100, Y: testRegion.Y + 50}
	outside := r2.Vec{X: testRegion.X + 150, Y: testRegion.Y + 50}

	assert.False(t, w.TouchDown(outside))
	assert.Equal(t, ControlVector{}, w.Mapper().Pose())

	assert.True(t, w.TouchDown(inside))
	assert.Equal(t, ControlVector{X: 1, Y: 0}, w.Mapper().Pose())

	// Dragging out of the region keeps the last in-region value.
	assert.False(t, w.TouchMove(outside))
	assert.Equal(t, ControlVector{X: 1, Y: 0}, w.Mapper().Pose())

	// Releasing outside still resets.
	w.TouchUp()
	assert.Equal(t, ControlVector{}, w.Mapper().Pose())
}

func TestWidgetKnobPosition(t *testing.T) {
	w := newTestWidget()
	require.NoError(t, w.Layout(testRegion))

	// At rest the knob is centered.
	k := w.Knob()
	c := testRegion.Center()
	assert.InDelta(t, c.X-10, k.X, eps)
	assert.InDelta(t, c.Y-10, k.Y, eps)
	assert.Equal(t, 20.0, k.Diameter)

	// Full right deflection puts the knob against the right edge.
	w.TouchDown(r2.Vec{X: testRegion.X + 100, Y: testRegion.Y + 50})
	w.Draw()
	k = w.Knob()
	assert.InDelta(t, testRegion.X+testRegion.Width-20, k.X, eps)
	assert.InDelta(t, c.Y-10, k.Y, eps)
}

func TestWidgetRunRedrawsUntilCancelled(t *testing.T) {
	w := NewWidget(NewMapper(), WidgetOptions{RedrawRate: 200, KnobDiameter: 20}, customlog.NewDiscardLogger())
	require.NoError(t, w.Layout(testRegion))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	w.TouchDown(r2.Vec{X: testRegion.X, Y: testRegion.Y + 50})
	assert.Eventually(t, func() bool {
		return w.Knob().X < testRegion.Center().X-10
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not stop")
	}
}
