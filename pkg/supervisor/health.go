package supervisor

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Health is the self-reported state of a remote service.
type Health int8

const (
	HealthUnknown Health = iota
	HealthStopped
	HealthRunning
	HealthIdle
	HealthUnavailable
	HealthError
)

var healthNames = map[Health]string{
	HealthUnknown:     "UNKNOWN",
	HealthStopped:     "STOPPED",
	HealthRunning:     "RUNNING",
	HealthIdle:        "IDLE",
	HealthUnavailable: "UNAVAILABLE",
	HealthError:       "ERROR",
}

func (h Health) String() string {
	if s, ok := healthNames[h]; ok {
		return s
	}
	return "Health(" + strconv.Itoa(int(h)) + ")"
}

// ParseHealth accepts a health name in any case.
func ParseHealth(name string) (Health, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for h, n := range healthNames {
		if n == name {
			return h, nil
		}
	}
	return HealthUnknown, fmt.Errorf("unknown health %q", name)
}

// Poller reports the current health of a remote service. Implementations must
// not cache: every call asks the service.
type Poller interface {
	Poll(ctx context.Context) (Health, error)
}

// PollerFunc adapts a function to the Poller interface.
type PollerFunc func(ctx context.Context) (Health, error)

func (f PollerFunc) Poll(ctx context.Context) (Health, error) { return f(ctx) }

// Accept decides whether a stream may be open under the given health.
type Accept func(Health) bool

// AcceptIdleOrRunning is used by consumers of data that a service publishes
// even while idle.
func AcceptIdleOrRunning(h Health) bool {
	return h == HealthIdle || h == HealthRunning
}

// AcceptRunning only accepts a fully running service. Commands go here.
func AcceptRunning(h Health) bool {
	return h == HealthRunning
}
