package rpc

import (
	"fmt"
	"net"
	"strconv"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Target formats host:port for grpc.NewClient.
func Target(address string, port int) string {
	return net.JoinHostPort(address, strconv.Itoa(port))
}

// NewConn creates a plaintext client connection that speaks the flatbuffers
// codec. The connection is lazy: nothing is dialled until the first call.
func NewConn(target string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	base := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.ForceCodec(Codec{})),
	}
	conn, err := grpc.NewClient(target, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client for %s: %w", target, err)
	}
	return conn, nil
}

// ServerOptions returns the options a server needs to talk to these clients.
func ServerOptions(opts ...grpc.ServerOption) []grpc.ServerOption {
	return append([]grpc.ServerOption{grpc.ForceServerCodec(Codec{})}, opts...)
}
