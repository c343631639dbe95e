// Package config loads the YAML configuration shared by the timecoder-*
// command line tools: which formats to pre-build, the capture sample
// rate, and the optional GPIO/mDNS companion features.
//
// The decoder core package itself (github.com/wax-drive/timecoder) never
// imports this package - it stays config-free and allocation-free on the
// hot path, per spec.md §5. This is purely host-side plumbing, the same
// division direwolf draws between config.go and the demodulator files.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level YAML document for a timecoder-* tool.
type Config struct {
	// SampleRate is the capture rate in Hz, e.g. 48000.
	SampleRate int `yaml:"sample_rate"`

	// Speed is the nominal playback speed; 1.0 for normal speed.
	Speed float64 `yaml:"speed"`

	// Phono selects the lower crossing threshold for low-level input.
	Phono bool `yaml:"phono"`

	// Formats lists catalog entry names to build LUTs for at startup.
	Formats []string `yaml:"formats"`

	// GPIO optionally drives a lock-state indicator line.
	GPIO *GPIOConfig `yaml:"gpio,omitempty"`

	// Advertise optionally turns on mDNS/Bonjour service discovery for
	// the decoder's position query endpoint.
	Advertise *AdvertiseConfig `yaml:"advertise,omitempty"`

	// LogTimeFormat is a strftime(3) pattern used for event log line
	// timestamps (see cmd/timecoder-listen), rather than a Go reference
	// layout - operators used to direwolf/syslog expect the familiar
	// C-style verbs.
	LogTimeFormat string `yaml:"log_time_format"`
}

// GPIOConfig names the GPIO chip and line driven high while the decoder
// reports a locked position.
type GPIOConfig struct {
	Chip string `yaml:"chip"`
	Line int    `yaml:"line"`
}

// AdvertiseConfig names the mDNS service instance advertised for this
// decoder.
type AdvertiseConfig struct {
	Name string `yaml:"name"`
	Port int    `yaml:"port"`
}

// Default returns sane defaults for a single-format capture session at
// 44.1kHz line level, timestamped the way direwolf timestamps its own
// log lines.
func Default() Config {
	return Config{
		SampleRate:    44100,
		Speed:         1.0,
		Formats:       []string{"serato_2a"},
		LogTimeFormat: "%Y-%m-%d %H:%M:%S",
	}
}

// Load reads and parses a YAML config file at path.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.SampleRate <= 0 {
		return Config{}, fmt.Errorf("config: %s: sample_rate must be positive", path)
	}
	if len(cfg.Formats) == 0 {
		return Config{}, fmt.Errorf("config: %s: formats must list at least one entry", path)
	}
	return cfg, nil
}
