// Package config defines the on-disk YAML configuration, including the
// fuzzy control profile, and compiles profiles into the runtime objects
// the engine evaluates. Configuration errors are fatal at load time;
// nothing here degrades silently.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds everything fantop reads from disk.
type Config struct {
	IntervalSec int           `yaml:"interval_sec"`
	HistorySize int           `yaml:"history_size"`
	Log         LogConfig     `yaml:"log"`
	Metrics     MetricsConfig `yaml:"metrics"`
	Daemon      DaemonConfig  `yaml:"daemon"`
	Sensors     SensorsConfig `yaml:"sensors"`
	Profile     Profile       `yaml:"profile"`
}

type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	Path  string `yaml:"path"`  // empty logs to stderr
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

type DaemonConfig struct {
	PIDFile string `yaml:"pid_file"` // empty disables the PID file
	Apply   bool   `yaml:"apply"`    // write duty commands to the pwm attribute
}

// SensorConfig addresses one hwmon attribute by chip driver name.
type SensorConfig struct {
	Chip  string `yaml:"chip"`
	Input string `yaml:"input"`
}

type FanSensorConfig struct {
	Chip string `yaml:"chip"`
	PWM  string `yaml:"pwm"`
	Tach string `yaml:"tach"` // empty disables RPM readback
}

type SensorsConfig struct {
	Thermal SensorConfig    `yaml:"thermal"`
	Power   SensorConfig    `yaml:"power"`
	Fan     FanSensorConfig `yaml:"fan"`
}

// Default returns the stock configuration: the TEC fan profile on a
// one-second loop, metrics off, duty commands computed but not applied.
func Default() Config {
	return Config{
		IntervalSec: 1,
		HistorySize: 300,
		Log: LogConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    "127.0.0.1:9183",
		},
		Daemon: DaemonConfig{
			Apply: false,
		},
		Sensors: SensorsConfig{
			Thermal: SensorConfig{Chip: "k10temp", Input: "temp1_input"},
			Power:   SensorConfig{Chip: "ina231", Input: "power1_input"},
			Fan:     FanSensorConfig{Chip: "amdgpu", PWM: "pwm1", Tach: "fan1_input"},
		},
		Profile: DefaultProfile(),
	}
}

// Path returns ~/.config/fantop/config.yaml (or XDG_CONFIG_HOME).
// Returns empty string if home directory cannot be determined.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "fantop", "config.yaml")
}

// Load reads and validates a configuration. An explicit path must exist
// and parse; with path empty, an absent file at the default location
// falls back to Default() but a malformed one is still an error.
// Unknown keys are rejected.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = Path()
	}

	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks everything outside the profile; the profile itself is
// checked when it is compiled.
func (c Config) Validate() error {
	if c.IntervalSec <= 0 {
		return fmt.Errorf("interval_sec must be positive, got %d", c.IntervalSec)
	}
	if c.HistorySize <= 0 {
		return fmt.Errorf("history_size must be positive, got %d", c.HistorySize)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return fmt.Errorf("metrics.addr required when metrics are enabled")
	}
	if _, err := c.Profile.Compile(); err != nil {
		return err
	}
	return nil
}

// Dump renders the configuration as YAML.
func Dump(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
