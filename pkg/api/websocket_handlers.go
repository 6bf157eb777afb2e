package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"syscall"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vilo159/amiga-joystick-tutorial/pkg/joystick"
	customlog "github.com/vilo159/amiga-joystick-tutorial/pkg/log"
)

// JoystickWebSocketHandler feeds pointer events from one browser into the
// widget. A client that disconnects mid-gesture releases the stick.
func JoystickWebSocketHandler(conn *websocket.Conn, widget *joystick.Widget, logger customlog.Logger) {
	clientID := uuid.NewString()
	logger = logger.WithField("client", clientID)
	logger.Infof("Joystick WebSocket connected: %s", conn.RemoteAddr())

	pressed := false
	defer func() {
		if pressed {
			widget.TouchUp()
			logger.Infof("Released stick held by disconnected client")
		}
		logger.Infof("Joystick WebSocket disconnected: %s", conn.RemoteAddr())
	}()

	for {
		mt, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) &&
				!errors.Is(err, syscall.EPIPE) && !errors.Is(err, syscall.ECONNRESET) {
				logger.Warnf("Joystick WS read error: %v", err)
			}
			return
		}
		if mt != websocket.TextMessage {
			logger.Debugf("Ignoring non-text Joystick WS message type: %d", mt)
			continue
		}

		var ev JoystickEvent
		var reply JoystickState
		if err := json.Unmarshal(msg, &ev); err != nil {
			logger.Warnf("Failed to unmarshal joystick event: %v", err)
			reply = stateOf(widget)
			reply.Error = fmt.Sprintf("invalid event: %v", err)
		} else {
			reply = applyEvent(widget, ev, &pressed)
		}
		reply.Client = clientID

		if err := conn.WriteJSON(reply); err != nil {
			logger.Debugf("Joystick WS write error: %v", err)
			return
		}
	}
}

// errNoGesture rejects a move that no down event started.
var errNoGesture = errors.New("move without an active gesture")

// applyEvent applies ev to the widget and reports the resulting state.
// pressed tracks whether this client has a gesture in progress. Any down
// starts one, even outside the region, since a later move may drag the
// stick into it.
func applyEvent(widget *joystick.Widget, ev JoystickEvent, pressed *bool) JoystickState {
	var (
		accepted bool
		err      error
	)
	p := r2.Vec{X: ev.X, Y: ev.Y}

	switch ev.Type {
	case EventLayout:
		err = widget.Layout(joystick.Region{X: ev.X, Y: ev.Y, Width: ev.Width, Height: ev.Height})
		accepted = err == nil
	case EventDown:
		*pressed = true
		accepted = widget.TouchDown(p)
	case EventMove:
		if !*pressed {
			err = errNoGesture
			break
		}
		accepted = widget.TouchMove(p)
	case EventUp:
		widget.TouchUp()
		*pressed = false
		accepted = true
	default:
		err = fmt.Errorf("unknown event type %q", ev.Type)
	}

	// Show the new pose right away instead of on the next redraw tick.
	if accepted {
		widget.Draw()
	}

	st := stateOf(widget)
	st.Accepted = accepted
	if err != nil {
		st.Error = err.Error()
	}
	return st
}
