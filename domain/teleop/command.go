package teleop

import (
	"go.einride.tech/can"

	"github.com/vilo159/amiga-joystick-tutorial/pkg/joystick"
	"github.com/vilo159/amiga-joystick-tutorial/pkg/packet"
)

// Command is one auto-control request for the dashboard.
type Command struct {
	State       packet.ControlState `json:"state"`
	Speed       float64             `json:"speed"`        // m/s
	AngularRate float64             `json:"angular_rate"` // rad/s
}

// CommandFromPose scales a joystick deflection into a command. Pushing up
// drives forward; pushing right gives a negative angular rate.
func CommandFromPose(pose joystick.ControlVector, maxSpeed, maxAngularRate float64) Command {
	return Command{
		State:       packet.StateAutoActive,
		Speed:       maxSpeed * pose.Y,
		AngularRate: maxAngularRate * -pose.X,
	}
}

// Frame encodes the command as an RPDO1 CAN frame.
func (c Command) Frame() can.Frame {
	return packet.Rpdo1{
		State:       c.State,
		Speed:       c.Speed,
		AngularRate: c.AngularRate,
	}.Frame()
}
