package rpc

import (
	"context"
	"errors"

	flatbuffers "github.com/google/flatbuffers/go"
	"google.golang.org/grpc"

	"github.com/vilo159/amiga-joystick-tutorial/pkg/flatbuffers/farm_ng/canbus"
	"github.com/vilo159/amiga-joystick-tutorial/pkg/flatbuffers/farm_ng/service"
)

const (
	CanbusServiceName = "farm_ng.canbus.CanbusService"

	CanbusService_GetServiceState_FullMethodName      = "/farm_ng.canbus.CanbusService/getServiceState"
	CanbusService_StreamCanbusMessages_FullMethodName = "/farm_ng.canbus.CanbusService/streamCanbusMessages"
	CanbusService_SendCanbusMessage_FullMethodName    = "/farm_ng.canbus.CanbusService/sendCanbusMessage"
)

// ErrUnexpectedMessage is returned when a reply is missing a required table.
var ErrUnexpectedMessage = errors.New("unexpected message")

// CanbusStream receives batches of raw CAN messages.
type CanbusStream = grpc.ServerStreamingClient[canbus.StreamCanbusReply]

// SendStream sends CAN messages and receives one ack per message.
type SendStream = grpc.BidiStreamingClient[flatbuffers.Builder, canbus.SendCanbusMessageReply]

// CanbusClient talks to the CAN bus service.
type CanbusClient struct {
	*StateClient
	cc grpc.ClientConnInterface
}

// NewCanbusClient wraps an existing connection.
func NewCanbusClient(cc grpc.ClientConnInterface) *CanbusClient {
	return &CanbusClient{
		StateClient: NewStateClient(cc, CanbusServiceName),
		cc:          cc,
	}
}

// StreamCanbusMessages starts the bus stream.
func (c *CanbusClient) StreamCanbusMessages(ctx context.Context, opts ...grpc.CallOption) (CanbusStream, error) {
	b := flatbuffers.NewBuilder(16)
	canbus.StreamCanbusRequestStart(b)
	b.Finish(canbus.StreamCanbusRequestEnd(b))

	stream, err := c.cc.NewStream(ctx, &CanbusService_ServiceDesc.Streams[0], CanbusService_StreamCanbusMessages_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[flatbuffers.Builder, canbus.StreamCanbusReply]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(b); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// SendCanbusMessage opens the bidirectional command stream.
func (c *CanbusClient) SendCanbusMessage(ctx context.Context, opts ...grpc.CallOption) (SendStream, error) {
	stream, err := c.cc.NewStream(ctx, &CanbusService_ServiceDesc.Streams[1], CanbusService_SendCanbusMessage_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	return &grpc.GenericClientStream[flatbuffers.Builder, canbus.SendCanbusMessageReply]{ClientStream: stream}, nil
}

// CanbusServiceServer is the server API for the CAN bus service.
type CanbusServiceServer interface {
	GetServiceState(context.Context, *service.GetServiceStateRequest) (*flatbuffers.Builder, error)
	StreamCanbusMessages(*canbus.StreamCanbusRequest, grpc.ServerStreamingServer[flatbuffers.Builder]) error
	SendCanbusMessage(grpc.BidiStreamingServer[canbus.SendCanbusMessageRequest, flatbuffers.Builder]) error
}

// RegisterCanbusServiceServer attaches srv to s.
func RegisterCanbusServiceServer(s grpc.ServiceRegistrar, srv CanbusServiceServer) {
	s.RegisterService(&CanbusService_ServiceDesc, srv)
}

func _CanbusService_GetServiceState_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(service.GetServiceStateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CanbusServiceServer).GetServiceState(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: CanbusService_GetServiceState_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CanbusServiceServer).GetServiceState(ctx, req.(*service.GetServiceStateRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _CanbusService_StreamCanbusMessages_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(canbus.StreamCanbusRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(CanbusServiceServer).StreamCanbusMessages(m, &grpc.GenericServerStream[canbus.StreamCanbusRequest, flatbuffers.Builder]{ServerStream: stream})
}

func _CanbusService_SendCanbusMessage_Handler(srv interface{}, stream grpc.ServerStream) error {
	return srv.(CanbusServiceServer).SendCanbusMessage(&grpc.GenericServerStream[canbus.SendCanbusMessageRequest, flatbuffers.Builder]{ServerStream: stream})
}

// CanbusService_ServiceDesc describes farm_ng.canbus.CanbusService.
var CanbusService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: CanbusServiceName,
	HandlerType: (*CanbusServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "getServiceState",
			Handler:    _CanbusService_GetServiceState_Handler,
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "streamCanbusMessages",
			Handler:       _CanbusService_StreamCanbusMessages_Handler,
			ServerStreams: true,
		},
		{
			StreamName:    "sendCanbusMessage",
			Handler:       _CanbusService_SendCanbusMessage_Handler,
			ServerStreams: true,
			ClientStreams: true,
		},
	},
	Metadata: "canbus.fbs",
}
