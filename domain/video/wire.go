package video

import (
	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/vilo159/amiga-joystick-tutorial/pkg/flatbuffers/farm_ng/oak"
)

// RawImage is one compressed view as sent by the camera.
type RawImage struct {
	View string
	Data []byte
}

// BuildFramesReply encodes a synchronized frame as a finished
// StreamFramesReply.
func BuildFramesReply(sequence uint32, stamp float64, images []RawImage) *flatbuffers.Builder {
	size := 256
	for _, img := range images {
		size += len(img.Data) + len(img.View) + 64
	}
	b := flatbuffers.NewBuilder(size)

	offsets := make([]flatbuffers.UOffsetT, len(images))
	for i, img := range images {
		view := b.CreateString(img.View)
		data := b.CreateByteVector(img.Data)
		oak.OakImageStart(b)
		oak.OakImageAddView(b, view)
		oak.OakImageAddStamp(b, stamp)
		oak.OakImageAddSequence(b, sequence)
		oak.OakImageAddImageData(b, data)
		offsets[i] = oak.OakImageEnd(b)
	}

	oak.OakSyncFrameStartImagesVector(b, len(offsets))
	for i := len(offsets) - 1; i >= 0; i-- {
		b.PrependUOffsetT(offsets[i])
	}
	vec := b.EndVector(len(offsets))

	oak.OakSyncFrameStart(b)
	oak.OakSyncFrameAddSequence(b, sequence)
	oak.OakSyncFrameAddImages(b, vec)
	frame := oak.OakSyncFrameEnd(b)

	oak.StreamFramesReplyStart(b)
	oak.StreamFramesReplyAddFrame(b, frame)
	b.Finish(oak.StreamFramesReplyEnd(b))
	return b
}
