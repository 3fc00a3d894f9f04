package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/open-teleop/pathscript/pkg/script"
	"github.com/open-teleop/pathscript/pkg/trajectory"
)

// Config is the operational generator configuration, editable at runtime.
type Config struct {
	Version     string          `yaml:"version" json:"version"`
	ConfigID    string          `yaml:"config_id" json:"config_id"`
	LastUpdated string          `yaml:"lastUpdated" json:"lastUpdated"`
	Generator   GeneratorConfig `yaml:"generator" json:"generator"`
}

// GeneratorConfig holds the pipeline defaults. Pointer fields distinguish
// "unset" from an explicit zero or false.
type GeneratorConfig struct {
	MoveVerb        string   `yaml:"move_verb,omitempty" json:"move_verb,omitempty"`
	TickSeconds     float64  `yaml:"tick_seconds,omitempty" json:"tick_seconds,omitempty"`
	DelayTicks      *float64 `yaml:"delay_ticks,omitempty" json:"delay_ticks,omitempty"`
	MaxOffsetBound  *float64 `yaml:"max_offset_bound,omitempty" json:"max_offset_bound,omitempty"`
	MaxSamples      *int     `yaml:"max_samples,omitempty" json:"max_samples,omitempty"`
	WithOrientation *bool    `yaml:"with_orientation,omitempty" json:"with_orientation,omitempty"`
	ControlMode     string   `yaml:"control_mode,omitempty" json:"control_mode,omitempty"`
	MultiSegment    *bool    `yaml:"multi_segment,omitempty" json:"multi_segment,omitempty"`
}

// GeneratorSettings is GeneratorConfig with every default applied.
type GeneratorSettings struct {
	Script     script.Config
	DelayTicks float64
}

// LoadConfig reads and parses the generator configuration at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	return cfg, nil
}

// ParseConfig decodes YAML and validates the result.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the pipeline cannot run with.
func (c *Config) Validate() error {
	g := c.Generator
	if strings.ContainsAny(g.MoveVerb, " \t\r\n") {
		return fmt.Errorf("generator.move_verb must be a single word, got %q", g.MoveVerb)
	}
	if g.TickSeconds < 0 {
		return fmt.Errorf("generator.tick_seconds must not be negative, got %v", g.TickSeconds)
	}
	if g.DelayTicks != nil && *g.DelayTicks < 0 {
		return fmt.Errorf("generator.delay_ticks must not be negative, got %v", *g.DelayTicks)
	}
	if g.MaxSamples != nil && *g.MaxSamples < 0 {
		return fmt.Errorf("generator.max_samples must not be negative, got %d", *g.MaxSamples)
	}
	if _, err := trajectory.ParseControlMode(g.ControlMode); err != nil {
		return fmt.Errorf("generator.control_mode: %w", err)
	}
	return nil
}

// Settings resolves the generator section into pipeline parameters.
func (c *Config) Settings() (GeneratorSettings, error) {
	g := c.Generator
	cfg := script.DefaultConfig()

	mode, err := trajectory.ParseControlMode(g.ControlMode)
	if err != nil {
		return GeneratorSettings{}, fmt.Errorf("generator.control_mode: %w", err)
	}
	cfg.Trajectory.ControlMode = mode

	if g.MoveVerb != "" {
		cfg.MoveVerb = g.MoveVerb
	}
	if g.TickSeconds > 0 {
		cfg.Trajectory.TickSeconds = g.TickSeconds
	}
	if g.MaxOffsetBound != nil {
		cfg.Trajectory.MaxOffsetBound = *g.MaxOffsetBound
	}
	if g.MaxSamples != nil {
		cfg.Trajectory.MaxSamples = *g.MaxSamples
	}
	if g.WithOrientation != nil {
		cfg.WithOrientation = *g.WithOrientation
	}
	if g.MultiSegment != nil {
		cfg.Trajectory.MultiSegment = *g.MultiSegment
	}

	delay := trajectory.DefaultDelayTicks
	if g.DelayTicks != nil {
		delay = *g.DelayTicks
	}

	return GeneratorSettings{Script: cfg, DelayTicks: delay}, nil
}

// Marshal encodes the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
