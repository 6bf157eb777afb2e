package supervisor

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	customlog "github.com/vilo159/amiga-joystick-tutorial/pkg/log"
)

// Stats is a point-in-time view of a supervisor's activity.
type Stats struct {
	Name          string `json:"name"`
	Streaming     bool   `json:"streaming"`
	Health        string `json:"health"`
	Polls         uint64 `json:"polls"`
	Backoffs      uint64 `json:"backoffs"`
	Opens         uint64 `json:"opens"`
	OpenFailures  uint64 `json:"open_failures"`
	Closes        uint64 `json:"closes"`
	ReadFailures  uint64 `json:"read_failures"`
	Items         uint64 `json:"items"`
	HandlerErrors uint64 `json:"handler_errors"`
	LastItemTime  int64  `json:"last_item_time"`
	HandleTimeAvg int64  `json:"handle_time_avg_us"`
	HandleTimeMax int64  `json:"handle_time_max_us"`
}

type metrics struct {
	name          string
	streaming     atomic.Bool
	health        atomic.Int32
	polls         atomic.Uint64
	backoffs      atomic.Uint64
	opens         atomic.Uint64
	openFailures  atomic.Uint64
	closes        atomic.Uint64
	readFailures  atomic.Uint64
	items         atomic.Uint64
	handlerErrors atomic.Uint64

	mu            sync.Mutex
	lastItemTime  int64
	handleTimeAvg int64 // in microseconds
	handleTimeMax int64 // in microseconds
}

func newMetrics(name string) *metrics {
	return &metrics{name: name}
}

func (m *metrics) observe(d time.Duration) {
	us := d.Microseconds()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastItemTime = time.Now().UnixNano()
	if m.handleTimeAvg == 0 {
		m.handleTimeAvg = us
	} else {
		// Simple moving average
		m.handleTimeAvg = (m.handleTimeAvg + us) / 2
	}
	if us > m.handleTimeMax {
		m.handleTimeMax = us
	}
}

func (m *metrics) snapshot() Stats {
	m.mu.Lock()
	lastItem, avgUs, maxUs := m.lastItemTime, m.handleTimeAvg, m.handleTimeMax
	m.mu.Unlock()

	return Stats{
		Name:          m.name,
		Streaming:     m.streaming.Load(),
		Health:        Health(m.health.Load()).String(),
		Polls:         m.polls.Load(),
		Backoffs:      m.backoffs.Load(),
		Opens:         m.opens.Load(),
		OpenFailures:  m.openFailures.Load(),
		Closes:        m.closes.Load(),
		ReadFailures:  m.readFailures.Load(),
		Items:         m.items.Load(),
		HandlerErrors: m.handlerErrors.Load(),
		LastItemTime:  lastItem,
		HandleTimeAvg: avgUs,
		HandleTimeMax: maxUs,
	}
}

// Reporter is anything that can describe its stream activity.
type Reporter interface {
	Name() string
	Stats() Stats
}

// Registry keeps the supervisors of a process by name so their stats can be
// served together.
type Registry struct {
	logger    customlog.Logger
	reporters map[string]Reporter
	mu        sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry(logger customlog.Logger) *Registry {
	return &Registry{
		logger:    logger,
		reporters: make(map[string]Reporter),
	}
}

// Register adds r under its name, replacing any previous entry.
func (r *Registry) Register(rep Reporter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.reporters[rep.Name()]; exists {
		r.logger.Warnf("Replacing registered stream %q", rep.Name())
	}
	r.reporters[rep.Name()] = rep
}

// Get returns the stats of one stream.
func (r *Registry) Get(name string) (Stats, bool) {
	r.mu.RLock()
	rep, exists := r.reporters[name]
	r.mu.RUnlock()

	if !exists {
		return Stats{}, false
	}
	return rep.Stats(), true
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.reporters))
	for name := range r.reporters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot returns the stats of every registered stream, sorted by name.
func (r *Registry) Snapshot() []Stats {
	names := r.Names()
	out := make([]Stats, 0, len(names))
	for _, name := range names {
		if st, ok := r.Get(name); ok {
			out = append(out, st)
		}
	}
	return out
}
