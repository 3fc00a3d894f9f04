package script

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-teleop/pathscript/pkg/geometry"
	"github.com/open-teleop/pathscript/pkg/trajectory"
)

func arcRequest(selector string) Request {
	return Request{
		Request: trajectory.Request{
			Waypoints:         []geometry.Point3{{X: 0, Y: 0, Z: 0}, {X: 10, Y: 0, Z: 0}},
			Offsets:           []geometry.Vector3{{X: 0, Y: 5, Z: 0}},
			Speed:             1,
			TickIntervalTicks: 20,
		},
		Selector:   selector,
		DelayTicks: trajectory.DefaultDelayTicks,
	}
}

func TestGenerate_ArcScenario(t *testing.T) {
	s, err := Generate(arcRequest(TagSelector("foo")), DefaultConfig())
	require.NoError(t, err)

	moves := []string{
		"0.00 0.00 0.00 0.00 0.00",
		"1.00 0.90 0.00 -90.00 -41.99",
		"2.00 1.60 0.00 -90.00 -34.99",
		"3.00 2.10 0.00 -90.00 -26.57",
		"4.00 2.40 0.00 -90.00 -16.70",
		"5.00 2.50 0.00 -90.00 -5.71",
		"6.00 2.40 0.00 -90.00 5.71",
		"7.00 2.10 0.00 -90.00 16.70",
		"8.00 1.60 0.00 -90.00 26.57",
		"9.00 0.90 0.00 -90.00 34.99",
		"10.00 0.00 0.00 -90.00 41.99",
	}
	var want []string
	for _, m := range moves {
		want = append(want, "minecraft:tp @e[tag=foo] "+m, "delay 2.8")
	}

	if diff := cmp.Diff(want, s.Commands); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, s.Commands, 22)
	assert.Equal(t, 11, s.Trajectory.SampleCount())
}

func TestGenerate_WithoutOrientation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WithOrientation = false

	s, err := Generate(arcRequest("3f1c0a52-1d7e-4a3e-9a51-6f4e2b8c9d10"), cfg)
	require.NoError(t, err)

	require.Len(t, s.Commands, 22)
	assert.Equal(t, "minecraft:tp 3f1c0a52-1d7e-4a3e-9a51-6f4e2b8c9d10 0.00 0.00 0.00", s.Commands[0])
	assert.Equal(t, "minecraft:tp 3f1c0a52-1d7e-4a3e-9a51-6f4e2b8c9d10 10.00 0.00 0.00", s.Commands[20])

	// Orientation is still computed on the samples.
	assert.NotZero(t, s.Trajectory.Samples[1].Yaw)
}

func TestGenerate_LineCountMatchesSteps(t *testing.T) {
	req := arcRequest(TagSelector("cart"))
	req.Waypoints = []geometry.Point3{{X: 0, Y: 64, Z: 0}, {X: 12, Y: 66, Z: 5}, {X: 12, Y: 66, Z: 5}, {X: 30, Y: 64, Z: -8}}
	req.Offsets = []geometry.Vector3{{Y: 4}, {}, {X: -3, Z: 2}}
	req.Speed = 4
	req.TickIntervalTicks = 2

	s, err := Generate(req, DefaultConfig())
	require.NoError(t, err)

	want := 0
	for _, steps := range s.Trajectory.Steps {
		want += 2 * (steps + 1)
	}
	assert.Equal(t, want, len(s.Commands))

	for i, line := range s.Commands {
		if i%2 == 1 {
			assert.Equal(t, "delay 2.8", line)
			continue
		}
		assert.True(t, strings.HasPrefix(line, "minecraft:tp @e[tag=cart] "), "line %d: %s", i, line)
		assert.Len(t, strings.Fields(line), 7, "line %d: %s", i, line)
	}

	assert.Equal(t, "minecraft:tp @e[tag=cart] 0.00 64.00 0.00 0.00 0.00", s.Commands[0])
	assert.True(t, strings.HasPrefix(s.Commands[len(s.Commands)-2], "minecraft:tp @e[tag=cart] 30.00 64.00 -8.00 "))
}

func TestGenerate_CustomVerbAndDelay(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MoveVerb = "tp"

	req := arcRequest("@s")
	req.DelayTicks = 5

	s, err := Generate(req, cfg)
	require.NoError(t, err)
	assert.Equal(t, "tp @s 0.00 0.00 0.00 0.00 0.00", s.Commands[0])
	assert.Equal(t, "delay 5", s.Commands[1])
	assert.True(t, strings.HasSuffix(s.Text(), "delay 5\n"))
	assert.Equal(t, 22, strings.Count(s.Text(), "\n"))
}

func TestGenerate_Errors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Request)
		field  string
	}{
		{"empty selector", func(r *Request) { r.Selector = "  " }, "selector"},
		{"multi-line selector", func(r *Request) { r.Selector = "@s\nkill @e" }, "selector"},
		{"negative delay", func(r *Request) { r.DelayTicks = -1 }, "delay"},
		{"offset mismatch", func(r *Request) { r.Offsets = nil }, "offsets"},
		{"one waypoint", func(r *Request) { r.Waypoints = r.Waypoints[:1] }, "waypoints"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := arcRequest("@s")
			tc.mutate(&req)

			s, err := Generate(req, DefaultConfig())
			require.Error(t, err)
			assert.Nil(t, s)

			var vErr *trajectory.ValidationError
			require.True(t, errors.As(err, &vErr), "expected ValidationError, got %T", err)
			assert.Equal(t, tc.field, vErr.Field)
		})
	}
}

func TestGenerate_OffsetTooLarge(t *testing.T) {
	req := arcRequest("@s")
	req.Offsets = []geometry.Vector3{{Y: 101}}

	s, err := Generate(req, DefaultConfig())
	assert.Nil(t, s)

	var cfgErr *trajectory.ConfigurationError
	require.True(t, errors.As(err, &cfgErr), "expected ConfigurationError, got %T", err)
	assert.Equal(t, "y", cfgErr.Axis)
}

func TestEmitter_ZeroDelay(t *testing.T) {
	e := &Emitter{Selector: "@p", WithOrientation: true}
	lines := e.Emit([]trajectory.SampledPoint{{Position: geometry.Point3{X: 1.005, Y: -2, Z: 3.333}, Yaw: -0.001, Pitch: 12.346}})

	want := []string{"minecraft:tp @p 1.00 -2.00 3.33 0.00 12.35", "delay 0"}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestEmitter_AngleFormatting(t *testing.T) {
	e := &Emitter{Selector: "@p", WithOrientation: true}
	cases := []struct {
		yaw, pitch float64
		want       string
	}{
		{2.675, 0.125, "minecraft:tp @p 0.00 0.00 0.00 2.67 0.12"},
		{-0.004, 0, "minecraft:tp @p 0.00 0.00 0.00 0.00 0.00"},
		{-41.987212495816664, 89.999, "minecraft:tp @p 0.00 0.00 0.00 -41.99 90.00"},
	}
	for _, tc := range cases {
		got := e.MoveLine(trajectory.SampledPoint{Yaw: tc.yaw, Pitch: tc.pitch})
		if got != tc.want {
			t.Errorf("Expected %q, got %q", tc.want, got)
		}
	}
}

func TestTagSelector(t *testing.T) {
	if got := TagSelector("bird"); got != "@e[tag=bird]" {
		t.Errorf("Expected @e[tag=bird], got %s", got)
	}
}
