// Package packet encodes and decodes the Amiga dashboard's CANopen PDOs.
package packet

import (
	"fmt"
	"math"
	"strconv"

	"go.einride.tech/can"
)

const (
	// DashboardNodeID is the CANopen node id of the Amiga dashboard.
	DashboardNodeID uint32 = 0x0E

	cobTPDO1 uint32 = 0x180
	cobRPDO1 uint32 = 0x200

	pdo1Length = 5
	scale      = 1000.0
)

// ControlState is the dashboard's control state machine.
type ControlState uint8

const (
	StateBoot ControlState = iota
	StateManualReady
	StateManualActive
	StateCCActive
	StateAutoReady
	StateAutoActive
	StateEstopped
)

var controlStateNames = map[ControlState]string{
	StateBoot:         "BOOT",
	StateManualReady:  "MANUAL_READY",
	StateManualActive: "MANUAL_ACTIVE",
	StateCCActive:     "CC_ACTIVE",
	StateAutoReady:    "AUTO_READY",
	StateAutoActive:   "AUTO_ACTIVE",
	StateEstopped:     "ESTOPPED",
}

// String returns the state name as shown to an operator, e.g. "AUTO_ACTIVE".
func (s ControlState) String() string {
	if name, ok := controlStateNames[s]; ok {
		return name
	}
	return "STATE(" + strconv.Itoa(int(s)) + ")"
}

// MarshalText encodes the state by name.
func (s ControlState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Rpdo1 is an auto-control request sent to the dashboard.
type Rpdo1 struct {
	State       ControlState
	Speed       float64 // m/s
	AngularRate float64 // rad/s
}

// Tpdo1 is the dashboard's periodic status.
type Tpdo1 struct {
	State           ControlState
	MeasSpeed       float64 // m/s
	MeasAngularRate float64 // rad/s
}

// RPDO1ID is the COB-ID of auto-control requests.
func RPDO1ID() uint32 { return cobRPDO1 + DashboardNodeID }

// TPDO1ID is the COB-ID of dashboard status messages.
func TPDO1ID() uint32 { return cobTPDO1 + DashboardNodeID }

// Frame encodes the request as an RPDO1 frame.
func (r Rpdo1) Frame() can.Frame {
	return encodePDO1(RPDO1ID(), r.State, r.Speed, r.AngularRate)
}

// Frame encodes the status as a TPDO1 frame.
func (t Tpdo1) Frame() can.Frame {
	return encodePDO1(TPDO1ID(), t.State, t.MeasSpeed, t.MeasAngularRate)
}

// ParseTpdo1 decodes a dashboard status frame. ok is false for any other id
// or a short payload.
func ParseTpdo1(f can.Frame) (Tpdo1, bool) {
	if f.ID != TPDO1ID() || f.IsRemote || f.Length < pdo1Length {
		return Tpdo1{}, false
	}
	state, speed, rate := decodePDO1(f)
	return Tpdo1{State: state, MeasSpeed: speed, MeasAngularRate: rate}, true
}

// ParseRpdo1 decodes an auto-control request frame.
func ParseRpdo1(f can.Frame) (Rpdo1, bool) {
	if f.ID != RPDO1ID() || f.IsRemote || f.Length < pdo1Length {
		return Rpdo1{}, false
	}
	state, speed, rate := decodePDO1(f)
	return Rpdo1{State: state, Speed: speed, AngularRate: rate}, true
}

// FrameFromBytes builds a frame from a raw id and payload.
func FrameFromBytes(id uint32, remote bool, data []byte) (can.Frame, error) {
	if len(data) > 8 {
		return can.Frame{}, fmt.Errorf("payload of %d bytes does not fit a CAN frame", len(data))
	}
	f := can.Frame{
		ID:       id,
		Length:   uint8(len(data)),
		IsRemote: remote,
	}
	copy(f.Data[:], data)
	return f, nil
}

// Payload returns the frame's data bytes.
func Payload(f can.Frame) []byte {
	out := make([]byte, f.Length)
	copy(out, f.Data[:f.Length])
	return out
}

func encodePDO1(id uint32, state ControlState, speed, rate float64) can.Frame {
	f := can.Frame{ID: id, Length: pdo1Length}
	f.Data.SetUnsignedBitsLittleEndian(0, 8, uint64(state))
	f.Data.SetSignedBitsLittleEndian(8, 16, toFixed(speed))
	f.Data.SetSignedBitsLittleEndian(24, 16, toFixed(rate))
	return f
}

func decodePDO1(f can.Frame) (ControlState, float64, float64) {
	state := ControlState(f.Data.UnsignedBitsLittleEndian(0, 8))
	speed := float64(f.Data.SignedBitsLittleEndian(8, 16)) / scale
	rate := float64(f.Data.SignedBitsLittleEndian(24, 16)) / scale
	return state, speed, rate
}

// toFixed converts to thousandths, saturating at the int16 range.
func toFixed(v float64) int64 {
	x := math.Round(v * scale)
	if x > math.MaxInt16 {
		x = math.MaxInt16
	}
	if x < math.MinInt16 {
		x = math.MinInt16
	}
	return int64(x)
}
