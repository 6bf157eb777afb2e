package sim

import (
	"fmt"
	"strings"
	"time"

	"github.com/vilo159/amiga-joystick-tutorial/pkg/supervisor"
)

// Step holds a health state for a duration. A zero duration holds it
// forever.
type Step struct {
	Health supervisor.Health
	For    time.Duration
}

// Script is a health schedule. After the last step the script wraps around,
// unless that step is held forever.
type Script []Step

// At returns the scripted health elapsed after the start.
func (s Script) At(elapsed time.Duration) supervisor.Health {
	if len(s) == 0 {
		return supervisor.HealthRunning
	}
	var total time.Duration
	for _, st := range s {
		if st.For <= 0 {
			return s.walk(elapsed)
		}
		total += st.For
	}
	return s.walk(elapsed % total)
}

func (s Script) walk(elapsed time.Duration) supervisor.Health {
	for _, st := range s {
		if st.For <= 0 || elapsed < st.For {
			return st.Health
		}
		elapsed -= st.For
	}
	return s[len(s)-1].Health
}

// ParseScript reads "RUNNING:5s,IDLE:1s,UNAVAILABLE:2s". A step without a
// duration is held forever.
func ParseScript(text string) (Script, error) {
	var script Script
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, dur, hasDur := strings.Cut(part, ":")
		h, err := supervisor.ParseHealth(name)
		if err != nil {
			return nil, err
		}
		step := Step{Health: h}
		if hasDur {
			step.For, err = time.ParseDuration(dur)
			if err != nil {
				return nil, fmt.Errorf("step %q: %w", part, err)
			}
		}
		script = append(script, step)
	}
	if len(script) == 0 {
		return nil, fmt.Errorf("empty health script %q", text)
	}
	return script, nil
}
