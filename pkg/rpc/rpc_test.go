package rpc

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"testing"
	"time"

	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/vilo159/amiga-joystick-tutorial/pkg/flatbuffers/farm_ng/canbus"
	"github.com/vilo159/amiga-joystick-tutorial/pkg/flatbuffers/farm_ng/oak"
	"github.com/vilo159/amiga-joystick-tutorial/pkg/flatbuffers/farm_ng/service"
	"github.com/vilo159/amiga-joystick-tutorial/pkg/supervisor"
)

type fakeServer struct {
	mu      sync.Mutex
	health  supervisor.Health
	fail    bool
	everyN  uint32
	frames  int
	sent    []uint32
	rejects map[uint32]bool
}

func (s *fakeServer) GetServiceState(ctx context.Context, _ *service.GetServiceStateRequest) (*flatbuffers.Builder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return nil, status.Error(codes.Unavailable, "down")
	}
	return BuildServiceStateReply(s.health), nil
}

func (s *fakeServer) StreamFrames(req *oak.StreamFramesRequest, stream grpc.ServerStreamingServer[flatbuffers.Builder]) error {
	s.mu.Lock()
	s.everyN = req.EveryN()
	n := s.frames
	s.mu.Unlock()

	for i := 0; i < n; i++ {
		b := flatbuffers.NewBuilder(64)
		view := b.CreateString("rgb")
		data := b.CreateByteVector([]byte{0xFF, 0xD8, byte(i)})
		oak.OakImageStart(b)
		oak.OakImageAddView(b, view)
		oak.OakImageAddSequence(b, uint32(i))
		oak.OakImageAddImageData(b, data)
		img := oak.OakImageEnd(b)
		oak.OakSyncFrameStartImagesVector(b, 1)
		b.PrependUOffsetT(img)
		images := b.EndVector(1)
		oak.OakSyncFrameStart(b)
		oak.OakSyncFrameAddSequence(b, uint32(i))
		oak.OakSyncFrameAddImages(b, images)
		frame := oak.OakSyncFrameEnd(b)
		oak.StreamFramesReplyStart(b)
		oak.StreamFramesReplyAddFrame(b, frame)
		b.Finish(oak.StreamFramesReplyEnd(b))
		if err := stream.Send(b); err != nil {
			return err
		}
	}
	return nil
}

func (s *fakeServer) StreamCanbusMessages(_ *canbus.StreamCanbusRequest, stream grpc.ServerStreamingServer[flatbuffers.Builder]) error {
	b := flatbuffers.NewBuilder(64)
	var offs []flatbuffers.UOffsetT
	for _, id := range []uint32{0x18E, 0x301} {
		data := b.CreateByteVector([]byte{1, 2, 3, 4, 5})
		canbus.RawCanbusMessageStart(b)
		canbus.RawCanbusMessageAddId(b, id)
		canbus.RawCanbusMessageAddData(b, data)
		offs = append(offs, canbus.RawCanbusMessageEnd(b))
	}
	canbus.StreamCanbusReplyStartMessagesVector(b, len(offs))
	for i := len(offs) - 1; i >= 0; i-- {
		b.PrependUOffsetT(offs[i])
	}
	vec := b.EndVector(len(offs))
	canbus.StreamCanbusReplyStart(b)
	canbus.StreamCanbusReplyAddMessages(b, vec)
	b.Finish(canbus.StreamCanbusReplyEnd(b))
	return stream.Send(b)
}

func (s *fakeServer) SendCanbusMessage(stream grpc.BidiStreamingServer[canbus.SendCanbusMessageRequest, flatbuffers.Builder]) error {
	for {
		req, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		msg := req.Message(nil)
		if msg == nil {
			return status.Error(codes.InvalidArgument, "no message")
		}
		s.mu.Lock()
		s.sent = append(s.sent, msg.Id())
		ok := !s.rejects[msg.Id()]
		s.mu.Unlock()

		b := flatbuffers.NewBuilder(16)
		canbus.SendCanbusMessageReplyStart(b)
		canbus.SendCanbusMessageReplyAddSuccess(b, ok)
		b.Finish(canbus.SendCanbusMessageReplyEnd(b))
		if err := stream.Send(b); err != nil {
			return err
		}
	}
}

func startServer(t *testing.T, srv *fakeServer) *grpc.ClientConn {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer(ServerOptions()...)
	RegisterOakServiceServer(s, srv)
	RegisterCanbusServiceServer(s, srv)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	conn, err := NewConn("passthrough:///bufnet", grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestCodecCopiesReceivedBuffer(t *testing.T) {
	wire := BuildServiceStateReply(supervisor.HealthRunning).FinishedBytes()
	data := append([]byte(nil), wire...)

	reply := new(service.GetServiceStateReply)
	require.NoError(t, Codec{}.Unmarshal(data, reply))

	// gRPC reuses the buffer after Unmarshal returns.
	for i := range data {
		data[i] = 0
	}
	assert.Equal(t, service.ServiceStateRUNNING, reply.State())
}

func TestCodecRejectsForeignTypes(t *testing.T) {
	_, err := Codec{}.Marshal("not a builder")
	assert.Error(t, err)

	assert.Error(t, Codec{}.Unmarshal([]byte{1, 2, 3, 4}, new(int)))
	assert.Error(t, Codec{}.Unmarshal([]byte{1}, new(service.GetServiceStateReply)))
	assert.Equal(t, "flatbuffers", Codec{}.Name())
}

func TestHealthMapping(t *testing.T) {
	for state := range service.EnumNamesServiceState {
		h := HealthFromState(state)
		assert.Equal(t, state.String(), h.String())
		assert.Equal(t, state, StateFromHealth(h))
	}
}

func TestStateClientPoll(t *testing.T) {
	srv := &fakeServer{health: supervisor.HealthIdle}
	conn := startServer(t, srv)
	ctx := testContext(t)

	cam := NewCameraClient(conn)
	h, err := cam.Poll(ctx)
	require.NoError(t, err)
	assert.Equal(t, supervisor.HealthIdle, h)

	bus := NewCanbusClient(conn)
	srv.mu.Lock()
	srv.health = supervisor.HealthRunning
	srv.mu.Unlock()
	h, err = bus.Poll(ctx)
	require.NoError(t, err)
	assert.Equal(t, supervisor.HealthRunning, h)
}

func TestStateClientPollErrorIsError(t *testing.T) {
	conn := startServer(t, &fakeServer{fail: true})

	h, err := NewCameraClient(conn).Poll(testContext(t))
	require.Error(t, err)
	assert.Equal(t, codes.Unavailable, status.Code(errors.Unwrap(err)))
	assert.Equal(t, supervisor.HealthError, h)
}

func TestStreamFramesSendsEveryN(t *testing.T) {
	srv := &fakeServer{frames: 2}
	conn := startServer(t, srv)

	stream, err := NewCameraClient(conn).StreamFrames(testContext(t), 3)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		reply, err := stream.Recv()
		require.NoError(t, err)
		frame := reply.Frame(nil)
		require.NotNil(t, frame)
		assert.Equal(t, uint32(i), frame.Sequence())
		img := new(oak.OakImage)
		require.True(t, frame.Images(img, 0))
		assert.Equal(t, "rgb", string(img.View()))
		assert.Equal(t, []byte{0xFF, 0xD8, byte(i)}, img.ImageDataBytes())
	}
	_, err = stream.Recv()
	assert.ErrorIs(t, err, io.EOF)

	srv.mu.Lock()
	defer srv.mu.Unlock()
	assert.Equal(t, uint32(3), srv.everyN)
}

func TestStreamCanbusMessages(t *testing.T) {
	conn := startServer(t, &fakeServer{})

	stream, err := NewCanbusClient(conn).StreamCanbusMessages(testContext(t))
	require.NoError(t, err)

	reply, err := stream.Recv()
	require.NoError(t, err)
	require.Equal(t, 2, reply.MessagesLength())
	msg := new(canbus.RawCanbusMessage)
	require.True(t, reply.Messages(msg, 1))
	assert.Equal(t, uint32(0x301), msg.Id())
	assert.Equal(t, []byte{1, 2, 3, 4, 5}, msg.DataBytes())
}

func TestSendCanbusMessageAcks(t *testing.T) {
	srv := &fakeServer{rejects: map[uint32]bool{0x999: true}}
	conn := startServer(t, srv)

	stream, err := NewCanbusClient(conn).SendCanbusMessage(testContext(t))
	require.NoError(t, err)

	for _, tc := range []struct {
		id uint32
		ok bool
	}{{0x20E, true}, {0x999, false}, {0x20E, true}} {
		b := flatbuffers.NewBuilder(64)
		data := b.CreateByteVector([]byte{5, 0, 0, 0, 0})
		canbus.RawCanbusMessageStart(b)
		canbus.RawCanbusMessageAddId(b, tc.id)
		canbus.RawCanbusMessageAddData(b, data)
		msg := canbus.RawCanbusMessageEnd(b)
		canbus.SendCanbusMessageRequestStart(b)
		canbus.SendCanbusMessageRequestAddMessage(b, msg)
		b.Finish(canbus.SendCanbusMessageRequestEnd(b))
		require.NoError(t, stream.Send(b))

		reply, err := stream.Recv()
		require.NoError(t, err)
		assert.Equal(t, tc.ok, reply.Success(), "id 0x%X", tc.id)
	}
	require.NoError(t, stream.CloseSend())
	_, err = stream.Recv()
	assert.ErrorIs(t, err, io.EOF)

	srv.mu.Lock()
	defer srv.mu.Unlock()
	assert.Equal(t, []uint32{0x20E, 0x999, 0x20E}, srv.sent)
}

func TestTarget(t *testing.T) {
	assert.Equal(t, "localhost:50051", Target("localhost", 50051))
	assert.Equal(t, "[::1]:50010", Target("::1", 50010))
}
