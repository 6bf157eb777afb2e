package config

import (
	"time"
)

// Config represents the joystick client configuration
type Config struct {
	Logging    LoggingConfig    `yaml:"logging" json:"logging"`
	Server     ServerConfig     `yaml:"server" json:"server"`
	Amiga      AmigaConfig      `yaml:"amiga" json:"amiga"`
	Control    ControlConfig    `yaml:"control" json:"control"`
	Supervisor SupervisorConfig `yaml:"supervisor" json:"supervisor"`
	Video      VideoConfig      `yaml:"video" json:"video"`
	Joystick   JoystickConfig   `yaml:"joystick" json:"joystick"`
	ZeroMQ     ZeroMQConfig     `yaml:"zeromq" json:"zeromq"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level   string `yaml:"level" json:"level"`
	LogPath string `yaml:"log_path,omitempty" json:"log_path,omitempty"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	HTTPPort       int `yaml:"http_port" json:"http_port"`
	RequestTimeout int `yaml:"request_timeout" json:"request_timeout"` // seconds
	MaxRequestSize int `yaml:"max_request_size" json:"max_request_size"`
}

// AmigaConfig locates the camera and canbus services
type AmigaConfig struct {
	Address      string `yaml:"address" json:"address"`
	CameraPort   int    `yaml:"camera_port" json:"camera_port"`
	CanbusPort   int    `yaml:"canbus_port" json:"canbus_port"`
	StreamEveryN int    `yaml:"stream_every_n" json:"stream_every_n"`
}

// ControlConfig holds command generation settings
type ControlConfig struct {
	MaxSpeed       float64 `yaml:"max_speed" json:"max_speed"`               // m/s
	MaxAngularRate float64 `yaml:"max_angular_rate" json:"max_angular_rate"` // rad/s
	PeriodMs       int     `yaml:"period_ms" json:"period_ms"`
	AckIntervalMs  int     `yaml:"ack_interval_ms" json:"ack_interval_ms"`
}

// SupervisorConfig holds stream supervision timing
type SupervisorConfig struct {
	BackoffMs     int `yaml:"backoff_ms" json:"backoff_ms"`
	ReadTimeoutMs int `yaml:"read_timeout_ms" json:"read_timeout_ms"`
	PollTimeoutMs int `yaml:"poll_timeout_ms" json:"poll_timeout_ms"`
}

// VideoConfig selects the camera views to decode
type VideoConfig struct {
	Views []string `yaml:"views" json:"views"`
}

// JoystickConfig holds input widget settings
type JoystickConfig struct {
	RedrawHz     float64 `yaml:"redraw_hz" json:"redraw_hz"`
	KnobDiameter float64 `yaml:"knob_diameter" json:"knob_diameter"`
}

// ZeroMQConfig holds the optional republisher settings
type ZeroMQConfig struct {
	Enabled            bool   `yaml:"enabled" json:"enabled"`
	PublishBindAddress string `yaml:"publish_bind_address" json:"publish_bind_address"`
	RequestBindAddress string `yaml:"request_bind_address,omitempty" json:"request_bind_address,omitempty"`
}

// DefaultConfig returns the configuration used when no file is given
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: "info",
		},
		Server: ServerConfig{
			HTTPPort:       8080,
			RequestTimeout: 10,
			MaxRequestSize: 1 << 20,
		},
		Amiga: AmigaConfig{
			Address:      "localhost",
			StreamEveryN: 1,
		},
		Control: ControlConfig{
			MaxSpeed:       1.0,
			MaxAngularRate: 1.0,
			PeriodMs:       20,
			AckIntervalMs:  100,
		},
		Supervisor: SupervisorConfig{
			BackoffMs:     100,
			ReadTimeoutMs: 5000,
			PollTimeoutMs: 1000,
		},
		Video: VideoConfig{
			Views: []string{"rgb", "disparity", "left", "right"},
		},
		Joystick: JoystickConfig{
			RedrawHz:     30,
			KnobDiameter: 100,
		},
		ZeroMQ: ZeroMQConfig{
			Enabled:            false,
			PublishBindAddress: "tcp://*:5556",
		},
	}
}

// Period returns the command generation period
func (c ControlConfig) Period() time.Duration {
	return time.Duration(c.PeriodMs) * time.Millisecond
}

// AckInterval returns how long a command stream waits between ack checks
func (c ControlConfig) AckInterval() time.Duration {
	return time.Duration(c.AckIntervalMs) * time.Millisecond
}

// Backoff returns the sleep after an unready health poll
func (c SupervisorConfig) Backoff() time.Duration {
	return time.Duration(c.BackoffMs) * time.Millisecond
}

// ReadTimeout bounds a single stream read
func (c SupervisorConfig) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutMs) * time.Millisecond
}

// PollTimeout bounds a single health poll
func (c SupervisorConfig) PollTimeout() time.Duration {
	return time.Duration(c.PollTimeoutMs) * time.Millisecond
}
