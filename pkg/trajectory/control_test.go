package trajectory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-teleop/pathscript/pkg/geometry"
)

func TestResolveControl_OffsetFromMidpoint(t *testing.T) {
	control, err := ResolveControl(pt(0, 0, 0), pt(10, 4, -6), nil, vec(1, 2, 3), DefaultMaxOffsetBound)
	require.NoError(t, err)
	assert.Equal(t, pt(6, 4, 0), control)
}

func TestResolveControl_ExplicitVerbatim(t *testing.T) {
	explicit := pt(-900, 900, 0)
	control, err := ResolveControl(pt(0, 0, 0), pt(1, 1, 1), &explicit, vec(500, 0, 0), 1)
	require.NoError(t, err)
	assert.Equal(t, explicit, control)
}

func TestResolveControl_BoundIsPerAxis(t *testing.T) {
	// The diagonal offset is ~155.9 long but no single axis exceeds the bound.
	control, err := ResolveControl(pt(0, 0, 0), pt(10, 0, 0), nil, vec(90, 90, 90), 100)
	require.NoError(t, err)
	assert.Equal(t, pt(95, 90, 90), control)

	_, err = ResolveControl(pt(0, 0, 0), pt(10, 0, 0), nil, vec(100, -100, 100), 100)
	assert.NoError(t, err, "bound is inclusive")
}

func TestResolveControl_BoundExceeded(t *testing.T) {
	cases := []struct {
		offset geometry.Vector3
		axis   string
		delta  float64
	}{
		{vec(101, 0, 0), "x", 101},
		{vec(0, -150, 0), "y", 150},
		{vec(0, 0, 100.5), "z", 100.5},
	}

	for _, tc := range cases {
		t.Run(tc.axis, func(t *testing.T) {
			_, err := ResolveControl(pt(0, 0, 0), pt(10, 0, 0), nil, tc.offset, 100)
			require.Error(t, err)

			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tc.axis, cfgErr.Axis)
			assert.InDelta(t, tc.delta, cfgErr.Delta, 1e-9)
			assert.Equal(t, -1, cfgErr.Segment)
			assert.NotContains(t, cfgErr.Error(), "segment")
		})
	}
}

func TestStepCount(t *testing.T) {
	cases := []struct {
		name   string
		seg    Segment
		timing Timing
		want   int
	}{
		{"ten seconds at one second per tick", Segment{Start: pt(0, 0, 0), End: pt(10, 0, 0)}, Timing{Speed: 1, TickIntervalTicks: 20, TickSeconds: 0.05}, 10},
		{"floor", Segment{Start: pt(0, 0, 0), End: pt(10.9, 0, 0)}, Timing{Speed: 1, TickIntervalTicks: 20, TickSeconds: 0.05}, 10},
		{"shorter than one tick", Segment{Start: pt(0, 0, 0), End: pt(0.1, 0, 0)}, Timing{Speed: 1, TickIntervalTicks: 20, TickSeconds: 0.05}, 1},
		{"zero length", Segment{Start: pt(2, 2, 2), End: pt(2, 2, 2)}, Timing{Speed: 1, TickIntervalTicks: 20, TickSeconds: 0.05}, 1},
		{"fine ticks", Segment{Start: pt(0, 0, 0), End: pt(0, 3, 4)}, Timing{Speed: 5, TickIntervalTicks: 1, TickSeconds: 0.05}, 20},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StepCount(tc.seg, tc.timing); got != tc.want {
				t.Errorf("Expected %d steps, got %d", tc.want, got)
			}
		})
	}
}

func TestPlanSegment_EndpointsExact(t *testing.T) {
	seg := Segment{Start: pt(-3.3, 64.1, 7.7), End: pt(12.9, 70.25, -1.05), Control: pt(4, 90, 3)}
	points := PlanSegment(seg, Timing{Speed: 2.3, TickIntervalTicks: 3, TickSeconds: 0.05})

	require.Len(t, points, StepCount(seg, Timing{Speed: 2.3, TickIntervalTicks: 3, TickSeconds: 0.05})+1)
	assert.Equal(t, seg.Start, points[0])
	assert.Equal(t, seg.End, points[len(points)-1])
}

func TestOrient(t *testing.T) {
	cases := []struct {
		name       string
		from, to   geometry.Point3
		yaw, pitch float64
	}{
		{"towards +z", pt(0, 0, 0), pt(0, 0, 1), 0, 0},
		{"towards -x", pt(0, 0, 0), pt(-1, 0, 0), 90, 0},
		{"towards +x", pt(0, 0, 0), pt(1, 0, 0), -90, 0},
		{"towards -z", pt(0, 0, 0), pt(0, 0, -1), -180, 0},
		{"straight down", pt(0, 5, 0), pt(0, 4, 0), 0, 90},
		{"straight up", pt(0, 4, 0), pt(0, 5, 0), 0, -90},
		{"same point", pt(1, 2, 3), pt(1, 2, 3), 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := Orient(tc.from, tc.to)
			assert.InDelta(t, tc.yaw, o.Yaw, 1e-9)
			assert.InDelta(t, tc.pitch, o.Pitch, 1e-9)
		})
	}
}
