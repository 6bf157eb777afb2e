package packet

import (
	"testing"

	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.einride.tech/can"

	"github.com/vilo159/amiga-joystick-tutorial/pkg/flatbuffers/farm_ng/canbus"
)

func TestRpdo1WireLayout(t *testing.T) {
	f := Rpdo1{State: StateAutoActive, Speed: 0.5, AngularRate: -0.25}.Frame()

	assert.Equal(t, uint32(0x20E), f.ID)
	assert.Equal(t, uint8(5), f.Length)
	// state, int16 LE 500, int16 LE -250
	assert.Equal(t, []byte{0x05, 0xF4, 0x01, 0x06, 0xFF}, Payload(f))
}

func TestTpdo1Parse(t *testing.T) {
	f := can.Frame{ID: 0x18E, Length: 5}
	copy(f.Data[:], []byte{0x06, 0xE8, 0x03, 0x18, 0xFC})

	tp, ok := ParseTpdo1(f)
	require.True(t, ok)
	assert.Equal(t, StateEstopped, tp.State)
	assert.InDelta(t, 1.0, tp.MeasSpeed, 1e-9)
	assert.InDelta(t, -1.0, tp.MeasAngularRate, 1e-9)
}

func TestParseTpdo1RejectsOtherFrames(t *testing.T) {
	tests := []struct {
		name  string
		frame can.Frame
	}{
		{"other id", can.Frame{ID: 0x18F, Length: 5}},
		{"rpdo1", Rpdo1{State: StateAutoActive}.Frame()},
		{"short", can.Frame{ID: TPDO1ID(), Length: 3}},
		{"remote", can.Frame{ID: TPDO1ID(), Length: 5, IsRemote: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ParseTpdo1(tt.frame)
			assert.False(t, ok)
		})
	}
}

func TestEncodeSaturates(t *testing.T) {
	r, ok := ParseRpdo1(Rpdo1{State: StateAutoActive, Speed: 100, AngularRate: -100}.Frame())
	require.True(t, ok)
	assert.InDelta(t, 32.767, r.Speed, 1e-9)
	assert.InDelta(t, -32.768, r.AngularRate, 1e-9)
}

func TestControlStateString(t *testing.T) {
	assert.Equal(t, "AUTO_ACTIVE", StateAutoActive.String())
	assert.Equal(t, "MANUAL_READY", StateManualReady.String())
	assert.Equal(t, "STATE(42)", ControlState(42).String())
}

func TestFrameFromBytesRejectsLongPayload(t *testing.T) {
	_, err := FrameFromBytes(1, false, make([]byte, 9))
	assert.Error(t, err)
}

func TestSendRequestCarriesFrame(t *testing.T) {
	want := Rpdo1{State: StateAutoActive, Speed: 0.3, AngularRate: 0.1}.Frame()
	b := BuildSendRequest(want, 12.5)

	req := canbus.GetRootAsSendCanbusMessageRequest(b.FinishedBytes(), 0)
	raw := req.Message(nil)
	require.NotNil(t, raw)
	assert.Equal(t, 12.5, raw.Stamp())

	got, err := FromRaw(raw)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStreamReplyKeepsOrder(t *testing.T) {
	frames := []can.Frame{
		Tpdo1{State: StateAutoReady}.Frame(),
		{ID: 0x123, Length: 2, Data: can.Data{0xAA, 0xBB}},
		Tpdo1{State: StateAutoActive, MeasSpeed: 0.2}.Frame(),
	}
	b := BuildStreamReply(frames, 1)

	reply := canbus.GetRootAsStreamCanbusReply(b.FinishedBytes(), 0)
	require.Equal(t, 3, reply.MessagesLength())
	for i, want := range frames {
		raw := new(canbus.RawCanbusMessage)
		require.True(t, reply.Messages(raw, i))
		got, err := FromRaw(raw)
		require.NoError(t, err)
		assert.Equal(t, want, got, "message %d", i)
	}
}

func TestBuildRawEmptyPayload(t *testing.T) {
	b := flatbuffers.NewBuilder(0)
	b.Finish(BuildRaw(b, can.Frame{ID: 7}, 0))

	raw := canbus.GetRootAsRawCanbusMessage(b.FinishedBytes(), 0)
	assert.Equal(t, uint32(7), raw.Id())
	assert.Zero(t, raw.DataLength())
}

func TestControlStateMarshalText(t *testing.T) {
	b, err := StateAutoReady.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "AUTO_READY", string(b))
}
