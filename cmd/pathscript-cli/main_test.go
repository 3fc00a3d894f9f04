package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/open-teleop/pathscript/pkg/trajectory"
)

const yamlRequest = `
start: {x: 0, y: 0, z: 0}
end: {x: 10, y: 0, z: 0}
offset: {x: 0, y: 5, z: 0}
tag: foo
speed: 1
tick_interval: 20
`

const jsonRequest = `{"waypoints": [{"x": 0}, {"x": 1}, {"x": 1, "z": 1}], "tag": "bar", "speed": 0.1, "tick_interval": 20, "delay": 1}`

func TestRenderDefaults(t *testing.T) {
	settings, err := loadSettings("", overrides{MaxSamples: -1})
	if err != nil {
		t.Fatalf("loadSettings failed: %v", err)
	}

	text, err := render([]byte(yamlRequest), settings)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	if len(lines) != 22 {
		t.Fatalf("Expected 22 lines, got %d", len(lines))
	}
	if lines[10] != "minecraft:tp @e[tag=foo] 5.00 2.50 0.00 -90.00 -5.71" {
		t.Errorf("Unexpected midpoint line: %s", lines[10])
	}
}

func TestRenderJSONMultiSegment(t *testing.T) {
	settings, err := loadSettings("", overrides{MoveVerb: "tp", NoOrientation: true, MaxSamples: -1})
	if err != nil {
		t.Fatalf("loadSettings failed: %v", err)
	}

	text, err := render([]byte(jsonRequest), settings)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	// Two segments of 10 steps each, 11 samples apiece.
	if len(lines) != 44 {
		t.Fatalf("Expected 44 lines, got %d", len(lines))
	}
	if lines[0] != "tp @e[tag=bar] 0.00 0.00 0.00" || lines[1] != "delay 1" {
		t.Errorf("Unexpected first command pair: %q, %q", lines[0], lines[1])
	}
	if lines[42] != "tp @e[tag=bar] 1.00 0.00 1.00" {
		t.Errorf("Unexpected last move: %s", lines[42])
	}
}

func TestLoadSettingsOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "generator_config.yaml")
	doc := "version: \"1\"\nconfig_id: cli\ngenerator:\n  move_verb: tp\n  delay_ticks: 3\n  max_samples: 5\n"
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	settings, err := loadSettings(path, overrides{ControlMode: "explicit", MaxSamples: -1})
	if err != nil {
		t.Fatalf("loadSettings failed: %v", err)
	}
	if settings.Script.MoveVerb != "tp" {
		t.Errorf("Expected verb tp, got %s", settings.Script.MoveVerb)
	}
	if settings.DelayTicks != 3 {
		t.Errorf("Expected delay 3, got %v", settings.DelayTicks)
	}
	if settings.Script.Trajectory.ControlMode != trajectory.ControlExplicit {
		t.Errorf("Expected EXPLICIT mode, got %s", settings.Script.Trajectory.ControlMode)
	}
	if settings.Script.Trajectory.MaxSamples != 5 {
		t.Errorf("Expected max samples 5, got %d", settings.Script.Trajectory.MaxSamples)
	}

	if _, err := render([]byte(yamlRequest), settings); err == nil {
		t.Error("Expected explicit mode without controls to fail")
	}

	if _, err := loadSettings(path, overrides{ControlMode: "sideways"}); err == nil {
		t.Error("Expected unknown mode to fail")
	}
	if _, err := loadSettings(filepath.Join(dir, "missing.yaml"), overrides{}); err == nil {
		t.Error("Expected missing config file to fail")
	}
}

func TestRenderRejectsNaNOffset(t *testing.T) {
	settings, err := loadSettings("", overrides{MaxSamples: -1})
	if err != nil {
		t.Fatalf("loadSettings failed: %v", err)
	}

	doc := strings.Replace(yamlRequest, "offset: {x: 0, y: 5, z: 0}", "offset: {x: .nan}", 1)
	text, err := render([]byte(doc), settings)
	if err == nil {
		t.Fatalf("Expected error, got script:\n%s", text)
	}
	if !strings.Contains(err.Error(), "offsets[0]") {
		t.Errorf("Expected error naming offsets[0], got %v", err)
	}
}
