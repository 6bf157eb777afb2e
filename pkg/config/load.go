package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from the specified file path on top of
// DefaultConfig. An empty path returns the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	// Read the config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file '%s': %w", path, err)
	}

	// Parse the YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file '%s': %w", path, err)
	}

	return cfg, nil
}

// ApplyEnvOverrides applies JOYSTICK_* variables (and PORT) over the loaded
// values.
func (c *Config) ApplyEnvOverrides() error {
	if v := os.Getenv("JOYSTICK_ADDRESS"); v != "" {
		c.Amiga.Address = v
	}
	if v := os.Getenv("JOYSTICK_LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}

	// PORT is honoured for hosting platforms; JOYSTICK_HTTP_PORT wins.
	for _, key := range []string{"PORT", "JOYSTICK_HTTP_PORT"} {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", key, v, err)
		}
		c.Server.HTTPPort = port
	}
	return nil
}

// Validate checks the configuration for missing or out of range values
func (c *Config) Validate() error {
	var errs []error

	if c.Amiga.Address == "" {
		errs = append(errs, errors.New("missing required field: amiga.address"))
	}
	if !validPort(c.Amiga.CameraPort) {
		errs = append(errs, fmt.Errorf("amiga.camera_port must be set to a valid port (got %d)", c.Amiga.CameraPort))
	}
	if !validPort(c.Amiga.CanbusPort) {
		errs = append(errs, fmt.Errorf("amiga.canbus_port must be set to a valid port (got %d)", c.Amiga.CanbusPort))
	}
	if c.Amiga.StreamEveryN < 1 {
		errs = append(errs, fmt.Errorf("amiga.stream_every_n must be at least 1 (got %d)", c.Amiga.StreamEveryN))
	}
	if !validPort(c.Server.HTTPPort) {
		errs = append(errs, fmt.Errorf("server.http_port is not a valid port (got %d)", c.Server.HTTPPort))
	}
	if c.Control.MaxSpeed < 0 {
		errs = append(errs, fmt.Errorf("control.max_speed must not be negative (got %g)", c.Control.MaxSpeed))
	}
	if c.Control.MaxAngularRate < 0 {
		errs = append(errs, fmt.Errorf("control.max_angular_rate must not be negative (got %g)", c.Control.MaxAngularRate))
	}
	if c.Control.PeriodMs <= 0 {
		errs = append(errs, fmt.Errorf("control.period_ms must be positive (got %d)", c.Control.PeriodMs))
	}
	if c.Supervisor.BackoffMs <= 0 || c.Supervisor.ReadTimeoutMs <= 0 || c.Supervisor.PollTimeoutMs <= 0 {
		errs = append(errs, errors.New("supervisor timings must be positive"))
	}
	if c.Control.AckIntervalMs <= 0 || c.Control.AckIntervalMs >= c.Supervisor.ReadTimeoutMs {
		errs = append(errs, fmt.Errorf("control.ack_interval_ms must be positive and below supervisor.read_timeout_ms (got %d)", c.Control.AckIntervalMs))
	}
	if len(c.Video.Views) == 0 {
		errs = append(errs, errors.New("video.views must name at least one view"))
	}
	if c.Joystick.RedrawHz <= 0 || c.Joystick.KnobDiameter <= 0 {
		errs = append(errs, errors.New("joystick.redraw_hz and joystick.knob_diameter must be positive"))
	}
	if c.ZeroMQ.Enabled && c.ZeroMQ.PublishBindAddress == "" {
		errs = append(errs, errors.New("missing required field: zeromq.publish_bind_address"))
	}

	return errors.Join(errs...)
}

func validPort(p int) bool {
	return p > 0 && p < 65536
}
