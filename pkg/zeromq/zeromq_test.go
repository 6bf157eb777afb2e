package zeromq

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/pebbe/zmq4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vilo159/amiga-joystick-tutorial/domain/telemetry"
	"github.com/vilo159/amiga-joystick-tutorial/domain/video"
	"github.com/vilo159/amiga-joystick-tutorial/pkg/config"
	customlog "github.com/vilo159/amiga-joystick-tutorial/pkg/log"
	"github.com/vilo159/amiga-joystick-tutorial/pkg/packet"
)

func newTestService(t *testing.T, withRequests bool) *ZeroMQService {
	t.Helper()
	cfg := config.ZeroMQConfig{
		Enabled:            true,
		PublishBindAddress: "tcp://127.0.0.1:*",
	}
	if withRequests {
		cfg.RequestBindAddress = "tcp://127.0.0.1:*"
	}
	s, err := NewZeroMQService(cfg, customlog.NewDiscardLogger())
	require.NoError(t, err)
	t.Cleanup(s.Stop)
	return s
}

func newSubscriber(t *testing.T, endpoint, topic string) *zmq4.Socket {
	t.Helper()
	ctx, err := zmq4.NewContext()
	require.NoError(t, err)
	sub, err := ctx.NewSocket(zmq4.SUB)
	require.NoError(t, err)
	t.Cleanup(func() {
		sub.Close()
		ctx.Term()
	})
	require.NoError(t, sub.SetLinger(0))
	require.NoError(t, sub.SetRcvtimeo(50*time.Millisecond))
	require.NoError(t, sub.SetSubscribe(topic))
	require.NoError(t, sub.Connect(endpoint))
	return sub
}

// receiveWhilePublishing republishes until the subscriber has joined.
func receiveWhilePublishing(t *testing.T, sub *zmq4.Socket, publish func()) [][]byte {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		publish()
		parts, err := sub.RecvMessageBytes(0)
		if err == nil {
			return parts
		}
	}
	t.Fatal("no message received")
	return nil
}

func TestPublisherFrames(t *testing.T) {
	s := newTestService(t, false)
	endpoint, err := s.Endpoint()
	require.NoError(t, err)

	sub := newSubscriber(t, endpoint, TopicFramePrefix+"rgb")
	pub := NewPublisher(s, customlog.NewDiscardLogger())

	jpeg := []byte{0xFF, 0xD8, 0xFF, 0xD9}
	parts := receiveWhilePublishing(t, sub, func() {
		pub.PresentFrame(video.Frame{View: "left", Data: []byte{1}})
		pub.PresentFrame(video.Frame{View: "rgb", Sequence: 7, Data: jpeg})
	})

	require.Len(t, parts, 2)
	assert.Equal(t, "frame.rgb", string(parts[0]))
	assert.Equal(t, jpeg, parts[1])
}

func TestPublisherTelemetry(t *testing.T) {
	s := newTestService(t, false)
	endpoint, err := s.Endpoint()
	require.NoError(t, err)

	sub := newSubscriber(t, endpoint, TopicTelemetry)
	pub := NewPublisher(s, customlog.NewDiscardLogger())

	parts := receiveWhilePublishing(t, sub, func() {
		pub.PresentTelemetry(telemetry.Snapshot{State: packet.StateAutoActive, Speed: 0.5})
	})

	require.Len(t, parts, 2)
	var msg struct {
		Type string `json:"type"`
		Data struct {
			State string  `json:"state"`
			Speed float64 `json:"speed"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(parts[1], &msg))
	assert.Equal(t, MsgTypeTelemetry, msg.Type)
	assert.Equal(t, "AUTO_ACTIVE", msg.Data.State)
	assert.Equal(t, 0.5, msg.Data.Speed)
}

func TestPublishAfterStop(t *testing.T) {
	s := newTestService(t, false)
	s.Stop()
	assert.ErrorIs(t, s.PublishMessage("x", nil), ErrServiceClosed)
	s.Stop()
}

func request(t *testing.T, endpoint string, body []byte) ZeroMQMessage {
	t.Helper()
	ctx, err := zmq4.NewContext()
	require.NoError(t, err)
	defer ctx.Term()
	req, err := ctx.NewSocket(zmq4.REQ)
	require.NoError(t, err)
	defer req.Close()
	require.NoError(t, req.SetLinger(0))
	require.NoError(t, req.SetRcvtimeo(5*time.Second))
	require.NoError(t, req.Connect(endpoint))

	_, err = req.SendBytes(body, 0)
	require.NoError(t, err)
	resp, err := req.RecvBytes(0)
	require.NoError(t, err)

	var msg ZeroMQMessage
	require.NoError(t, json.Unmarshal(resp, &msg))
	return msg
}

func TestStatusRequest(t *testing.T) {
	s := newTestService(t, true)
	RegisterStatusHandler(s, func() interface{} {
		return map[string]int{"streams": 3}
	})
	s.Start()

	body, _ := json.Marshal(ZeroMQMessage{Type: MsgTypeStatusRequest})
	resp := request(t, s.RequestEndpoint(), body)
	assert.Equal(t, MsgTypeStatusResponse, resp.Type)
	assert.Equal(t, map[string]interface{}{"streams": float64(3)}, resp.Data)

	body, _ = json.Marshal(ZeroMQMessage{Type: "NOPE"})
	resp = request(t, s.RequestEndpoint(), body)
	assert.Equal(t, MsgTypeError, resp.Type)
}

func TestDispatcher(t *testing.T) {
	d := NewMessageDispatcher(customlog.NewDiscardLogger())
	d.RegisterHandler("PING", HandlerFunc(func(data []byte) ([]byte, error) {
		return []byte("pong"), nil
	}))

	out, err := d.Dispatch([]byte(`{"type":"PING"}`))
	require.NoError(t, err)
	assert.Equal(t, "pong", string(out))

	_, err = d.Dispatch([]byte(`{"type":"PONG"}`))
	assert.ErrorIs(t, err, ErrUnknownMessageType)

	_, err = d.Dispatch([]byte("not json"))
	assert.ErrorIs(t, err, ErrInvalidMessage)
}

func TestRequestEndpointDisabled(t *testing.T) {
	s := newTestService(t, false)
	assert.Empty(t, s.RequestEndpoint())
}
