package api

import (
	"github.com/vilo159/amiga-joystick-tutorial/pkg/joystick"
)

// --- Data Structures for WebSocket Messages ---

// Joystick event types sent by the browser.
const (
	EventLayout = "layout"
	EventDown   = "down"
	EventMove   = "move"
	EventUp     = "up"
)

// JoystickEvent is one message on the joystick socket. Coordinates share the
// region's frame: origin at the lower left, Y growing upwards.
type JoystickEvent struct {
	Type   string  `json:"type"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// JoystickState is sent back after every event and served by
// GET /api/v1/joystick.
type JoystickState struct {
	Client   string                 `json:"client,omitempty"`
	Accepted bool                   `json:"accepted"`
	Error    string                 `json:"error,omitempty"`
	Pose     joystick.ControlVector `json:"pose"`
	Knob     joystick.Knob          `json:"knob"`
	Region   *joystick.Region       `json:"region,omitempty"`
}

func stateOf(w *joystick.Widget) JoystickState {
	st := JoystickState{
		Pose: w.Mapper().Pose(),
		Knob: w.Knob(),
	}
	if r, ok := w.Region(); ok {
		st.Region = &r
	}
	return st
}
