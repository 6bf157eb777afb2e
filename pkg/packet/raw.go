package packet

import (
	flatbuffers "github.com/google/flatbuffers/go"
	"go.einride.tech/can"

	"github.com/vilo159/amiga-joystick-tutorial/pkg/flatbuffers/farm_ng/canbus"
)

// FromRaw converts a received RawCanbusMessage to a frame.
func FromRaw(m *canbus.RawCanbusMessage) (can.Frame, error) {
	return FrameFromBytes(m.Id(), m.RemoteTransmission(), m.DataBytes())
}

// BuildRaw writes f as a RawCanbusMessage table into b and returns its
// offset. Must be called before any enclosing table is started.
func BuildRaw(b *flatbuffers.Builder, f can.Frame, stamp float64) flatbuffers.UOffsetT {
	data := b.CreateByteVector(Payload(f))
	canbus.RawCanbusMessageStart(b)
	canbus.RawCanbusMessageAddStamp(b, stamp)
	canbus.RawCanbusMessageAddId(b, f.ID)
	canbus.RawCanbusMessageAddRemoteTransmission(b, f.IsRemote)
	canbus.RawCanbusMessageAddData(b, data)
	return canbus.RawCanbusMessageEnd(b)
}

// BuildSendRequest encodes f as a finished SendCanbusMessageRequest.
func BuildSendRequest(f can.Frame, stamp float64) *flatbuffers.Builder {
	b := flatbuffers.NewBuilder(64)
	msg := BuildRaw(b, f, stamp)
	canbus.SendCanbusMessageRequestStart(b)
	canbus.SendCanbusMessageRequestAddMessage(b, msg)
	b.Finish(canbus.SendCanbusMessageRequestEnd(b))
	return b
}

// BuildStreamReply encodes frames as a finished StreamCanbusReply.
func BuildStreamReply(frames []can.Frame, stamp float64) *flatbuffers.Builder {
	b := flatbuffers.NewBuilder(64 * (len(frames) + 1))
	offsets := make([]flatbuffers.UOffsetT, len(frames))
	for i, f := range frames {
		offsets[i] = BuildRaw(b, f, stamp)
	}
	canbus.StreamCanbusReplyStartMessagesVector(b, len(offsets))
	for i := len(offsets) - 1; i >= 0; i-- {
		b.PrependUOffsetT(offsets[i])
	}
	vec := b.EndVector(len(offsets))
	canbus.StreamCanbusReplyStart(b)
	canbus.StreamCanbusReplyAddMessages(b, vec)
	b.Finish(canbus.StreamCanbusReplyEnd(b))
	return b
}
