package trajectory

import (
	"errors"
	"fmt"
	"math"

	"github.com/open-teleop/pathscript/pkg/geometry"
)

// Request is the validated-shape input of Build. Offsets and Controls are
// indexed by segment: entry i bends the leg Waypoints[i] → Waypoints[i+1].
type Request struct {
	Waypoints []geometry.Point3
	Offsets   []geometry.Vector3
	// Controls holds optional explicit control points; a nil entry falls
	// back to the segment's offset.
	Controls          []*geometry.Point3
	Speed             float64
	TickIntervalTicks int
}

// SegmentCount is the number of legs the waypoints describe.
func (r Request) SegmentCount() int {
	if len(r.Waypoints) < 2 {
		return 0
	}
	return len(r.Waypoints) - 1
}

// Trajectory is a fully discretized path.
type Trajectory struct {
	Segments []Segment      `json:"segments"`
	Steps    []int          `json:"steps"`
	Samples  []SampledPoint `json:"samples"`
}

// SampleCount returns the number of samples, sum(steps_i + 1).
func (t *Trajectory) SampleCount() int {
	return len(t.Samples)
}

// Validate checks the structural requirements of req under opts. It never
// samples, so it is cheap to call on untrusted input.
func Validate(req Request, opts Options) error {
	n := len(req.Waypoints)
	if n < 2 {
		return Invalid("waypoints", "at least 2 waypoints are required, got %d", n)
	}
	if !opts.MultiSegment && n != 2 {
		return Invalid("waypoints", "single-segment mode takes exactly 2 waypoints, got %d", n)
	}
	for i, wp := range req.Waypoints {
		if !finite(wp.X) || !finite(wp.Y) || !finite(wp.Z) {
			return Invalid(fmt.Sprintf("waypoints[%d]", i), "coordinates must be finite, got %s", wp)
		}
	}

	if !(req.Speed > 0) || math.IsInf(req.Speed, 1) {
		return Invalid("speed", "must be a positive finite number, got %v", req.Speed)
	}
	if req.TickIntervalTicks <= 0 {
		return Invalid("tick_interval", "must be a positive integer, got %d", req.TickIntervalTicks)
	}

	segments := n - 1
	if len(req.Controls) != 0 && len(req.Controls) != segments {
		return Invalid("controls", "expected %d control points (one per segment), got %d", segments, len(req.Controls))
	}

	switch opts.ControlMode {
	case ControlExplicit:
		if len(req.Controls) != segments {
			return Invalid("controls", "explicit mode needs %d control points, got %d", segments, len(req.Controls))
		}
		for i, c := range req.Controls {
			if c == nil {
				return Invalid(fmt.Sprintf("controls[%d]", i), "missing control point")
			}
		}
		if len(req.Offsets) != 0 && len(req.Offsets) != segments {
			return Invalid("offsets", "expected %d offsets (one per segment), got %d", segments, len(req.Offsets))
		}
	case ControlOffsetDerived:
		if len(req.Offsets) != segments {
			return Invalid("offsets", "expected %d offsets (one per segment), got %d", segments, len(req.Offsets))
		}
	default:
		return Invalid("control_mode", "unsupported mode %s", opts.ControlMode)
	}

	for i, o := range req.Offsets {
		if !finite(o.X) || !finite(o.Y) || !finite(o.Z) {
			return Invalid(fmt.Sprintf("offsets[%d]", i), "components must be finite, got %s", o)
		}
	}
	for i, c := range req.Controls {
		if c != nil && (!finite(c.X) || !finite(c.Y) || !finite(c.Z)) {
			return Invalid(fmt.Sprintf("controls[%d]", i), "coordinates must be finite, got %s", *c)
		}
	}

	return nil
}

// ResolveSegments pairs consecutive waypoints and resolves each segment's
// control point. req must have passed Validate.
func ResolveSegments(req Request, opts Options) ([]Segment, error) {
	segments := make([]Segment, 0, req.SegmentCount())
	for i := 0; i < req.SegmentCount(); i++ {
		start, end := req.Waypoints[i], req.Waypoints[i+1]

		var explicit *geometry.Point3
		if i < len(req.Controls) {
			explicit = req.Controls[i]
		}
		var offset geometry.Vector3
		if i < len(req.Offsets) {
			offset = req.Offsets[i]
		}

		control, err := ResolveControl(start, end, explicit, offset, opts.MaxOffsetBound)
		if err != nil {
			var cfgErr *ConfigurationError
			if errors.As(err, &cfgErr) {
				cfgErr.Segment = i
			}
			return nil, err
		}
		segments = append(segments, Segment{Start: start, End: end, Control: control})
	}
	return segments, nil
}

// Build validates req, resolves every control point, checks the sample
// budget and then samples and orients the whole path. Nothing is sampled
// when any check fails.
func Build(req Request, opts Options) (*Trajectory, error) {
	if err := Validate(req, opts); err != nil {
		return nil, err
	}

	segments, err := ResolveSegments(req, opts)
	if err != nil {
		return nil, err
	}

	timing := Timing{
		Speed:             req.Speed,
		TickIntervalTicks: req.TickIntervalTicks,
		TickSeconds:       opts.tickSeconds(),
	}

	limit := maxTotalSamples
	if opts.MaxSamples > 0 {
		limit = opts.MaxSamples
	}
	total := 0.0
	for _, seg := range segments {
		total += math.Max(1, rawSteps(seg, timing)) + 1
	}
	if !(total <= float64(limit)) {
		return nil, Invalid("trajectory", "needs %.0f samples, limit is %d", total, limit)
	}

	samples, steps := Compose(segments, timing)
	return &Trajectory{
		Segments: segments,
		Steps:    steps,
		Samples:  samples,
	}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
