package supervisor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	customlog "github.com/vilo159/amiga-joystick-tutorial/pkg/log"
)

type staticReporter struct {
	name  string
	items uint64
}

func (r staticReporter) Name() string { return r.name }
func (r staticReporter) Stats() Stats { return Stats{Name: r.name, Items: r.items} }

func TestRegistrySnapshotSortedByName(t *testing.T) {
	reg := NewRegistry(customlog.NewDiscardLogger())
	reg.Register(staticReporter{name: "telemetry", items: 3})
	reg.Register(staticReporter{name: "camera", items: 5})
	reg.Register(staticReporter{name: "commands", items: 1})

	assert.Equal(t, []string{"camera", "commands", "telemetry"}, reg.Names())

	snap := reg.Snapshot()
	assert.Len(t, snap, 3)
	assert.Equal(t, "camera", snap[0].Name)
	assert.Equal(t, uint64(5), snap[0].Items)

	st, ok := reg.Get("telemetry")
	assert.True(t, ok)
	assert.Equal(t, uint64(3), st.Items)

	_, ok = reg.Get("missing")
	assert.False(t, ok)
}

func TestRegistryReplaceKeepsLatest(t *testing.T) {
	reg := NewRegistry(customlog.NewDiscardLogger())
	reg.Register(staticReporter{name: "camera", items: 1})
	reg.Register(staticReporter{name: "camera", items: 9})

	st, _ := reg.Get("camera")
	assert.Equal(t, uint64(9), st.Items)
}
