package rpc

import (
	"context"

	flatbuffers "github.com/google/flatbuffers/go"
	"google.golang.org/grpc"

	"github.com/vilo159/amiga-joystick-tutorial/pkg/flatbuffers/farm_ng/oak"
	"github.com/vilo159/amiga-joystick-tutorial/pkg/flatbuffers/farm_ng/service"
)

const (
	OakServiceName = "farm_ng.oak.OakService"

	OakService_GetServiceState_FullMethodName = "/farm_ng.oak.OakService/getServiceState"
	OakService_StreamFrames_FullMethodName    = "/farm_ng.oak.OakService/streamFrames"
)

// FramesStream receives synchronized camera frames.
type FramesStream = grpc.ServerStreamingClient[oak.StreamFramesReply]

// CameraClient talks to the OAK camera service.
type CameraClient struct {
	*StateClient
	cc grpc.ClientConnInterface
}

// NewCameraClient wraps an existing connection.
func NewCameraClient(cc grpc.ClientConnInterface) *CameraClient {
	return &CameraClient{
		StateClient: NewStateClient(cc, OakServiceName),
		cc:          cc,
	}
}

// StreamFrames starts the frame stream. The service sends every everyN-th
// frame; zero is sent as one.
func (c *CameraClient) StreamFrames(ctx context.Context, everyN uint32, opts ...grpc.CallOption) (FramesStream, error) {
	if everyN == 0 {
		everyN = 1
	}
	b := flatbuffers.NewBuilder(16)
	oak.StreamFramesRequestStart(b)
	oak.StreamFramesRequestAddEveryN(b, everyN)
	b.Finish(oak.StreamFramesRequestEnd(b))

	stream, err := c.cc.NewStream(ctx, &OakService_ServiceDesc.Streams[0], OakService_StreamFrames_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[flatbuffers.Builder, oak.StreamFramesReply]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(b); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// OakServiceServer is the server API for the OAK camera service. Replies are
// finished builders.
type OakServiceServer interface {
	GetServiceState(context.Context, *service.GetServiceStateRequest) (*flatbuffers.Builder, error)
	StreamFrames(*oak.StreamFramesRequest, grpc.ServerStreamingServer[flatbuffers.Builder]) error
}

// RegisterOakServiceServer attaches srv to s.
func RegisterOakServiceServer(s grpc.ServiceRegistrar, srv OakServiceServer) {
	s.RegisterService(&OakService_ServiceDesc, srv)
}

func _OakService_GetServiceState_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(service.GetServiceStateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OakServiceServer).GetServiceState(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: OakService_GetServiceState_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(OakServiceServer).GetServiceState(ctx, req.(*service.GetServiceStateRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _OakService_StreamFrames_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(oak.StreamFramesRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(OakServiceServer).StreamFrames(m, &grpc.GenericServerStream[oak.StreamFramesRequest, flatbuffers.Builder]{ServerStream: stream})
}

// OakService_ServiceDesc describes farm_ng.oak.OakService.
var OakService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: OakServiceName,
	HandlerType: (*OakServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "getServiceState",
			Handler:    _OakService_GetServiceState_Handler,
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "streamFrames",
			Handler:       _OakService_StreamFrames_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "oak.fbs",
}
