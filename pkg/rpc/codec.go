package rpc

import (
	"fmt"

	flatbuffers "github.com/google/flatbuffers/go"
)

// Codec carries flatbuffers tables over gRPC. Outgoing messages are finished
// *flatbuffers.Builder values; incoming messages are generated table types.
//
// gRPC recycles the receive buffer once Unmarshal returns, and a flatbuffers
// table reads straight out of the bytes it was given, so Unmarshal keeps its
// own copy.
type Codec struct{}

type tableInit interface {
	Init(buf []byte, i flatbuffers.UOffsetT)
}

func (Codec) Marshal(v any) ([]byte, error) {
	b, ok := v.(*flatbuffers.Builder)
	if !ok {
		return nil, fmt.Errorf("flatbuffers codec: cannot marshal %T", v)
	}
	return flatbuffers.FlatbuffersCodec{}.Marshal(b)
}

func (Codec) Unmarshal(data []byte, v any) error {
	if _, ok := v.(tableInit); !ok {
		return fmt.Errorf("flatbuffers codec: cannot unmarshal into %T", v)
	}
	if len(data) < flatbuffers.SizeUOffsetT {
		return fmt.Errorf("flatbuffers codec: short message (%d bytes)", len(data))
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	return flatbuffers.FlatbuffersCodec{}.Unmarshal(buf, v)
}

func (Codec) Name() string {
	return flatbuffers.Codec
}
