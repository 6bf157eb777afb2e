package rpc

import (
	"context"
	"fmt"

	flatbuffers "github.com/google/flatbuffers/go"
	"google.golang.org/grpc"

	"github.com/vilo159/amiga-joystick-tutorial/pkg/flatbuffers/farm_ng/service"
	"github.com/vilo159/amiga-joystick-tutorial/pkg/supervisor"
)

// StateClient asks a farm-ng service for its state. It implements
// supervisor.Poller.
type StateClient struct {
	cc     grpc.ClientConnInterface
	method string
}

// NewStateClient builds a client for the getServiceState method of the named
// service (for example "farm_ng.oak.OakService").
func NewStateClient(cc grpc.ClientConnInterface, serviceName string) *StateClient {
	return &StateClient{
		cc:     cc,
		method: "/" + serviceName + "/getServiceState",
	}
}

// GetServiceState performs the unary call and returns the wire state.
func (c *StateClient) GetServiceState(ctx context.Context, opts ...grpc.CallOption) (service.ServiceState, error) {
	b := flatbuffers.NewBuilder(16)
	service.GetServiceStateRequestStart(b)
	b.Finish(service.GetServiceStateRequestEnd(b))

	out := new(service.GetServiceStateReply)
	if err := c.cc.Invoke(ctx, c.method, b, out, opts...); err != nil {
		return service.ServiceStateUNKNOWN, fmt.Errorf("getServiceState: %w", err)
	}
	return out.State(), nil
}

// Poll implements supervisor.Poller.
func (c *StateClient) Poll(ctx context.Context) (supervisor.Health, error) {
	state, err := c.GetServiceState(ctx)
	if err != nil {
		return supervisor.HealthError, err
	}
	return HealthFromState(state), nil
}

// HealthFromState maps the wire enum onto supervisor.Health.
func HealthFromState(state service.ServiceState) supervisor.Health {
	switch state {
	case service.ServiceStateSTOPPED:
		return supervisor.HealthStopped
	case service.ServiceStateRUNNING:
		return supervisor.HealthRunning
	case service.ServiceStateIDLE:
		return supervisor.HealthIdle
	case service.ServiceStateUNAVAILABLE:
		return supervisor.HealthUnavailable
	case service.ServiceStateERROR:
		return supervisor.HealthError
	default:
		return supervisor.HealthUnknown
	}
}

// StateFromHealth is the inverse of HealthFromState.
func StateFromHealth(h supervisor.Health) service.ServiceState {
	switch h {
	case supervisor.HealthStopped:
		return service.ServiceStateSTOPPED
	case supervisor.HealthRunning:
		return service.ServiceStateRUNNING
	case supervisor.HealthIdle:
		return service.ServiceStateIDLE
	case supervisor.HealthUnavailable:
		return service.ServiceStateUNAVAILABLE
	case supervisor.HealthError:
		return service.ServiceStateERROR
	default:
		return service.ServiceStateUNKNOWN
	}
}

// BuildServiceStateReply encodes a getServiceState reply. Used by servers.
func BuildServiceStateReply(h supervisor.Health) *flatbuffers.Builder {
	b := flatbuffers.NewBuilder(16)
	service.GetServiceStateReplyStart(b)
	service.GetServiceStateReplyAddState(b, StateFromHealth(h))
	b.Finish(service.GetServiceStateReplyEnd(b))
	return b
}

var _ supervisor.Poller = (*StateClient)(nil)
