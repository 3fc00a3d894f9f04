package trajectory

import (
	"math"

	"github.com/open-teleop/pathscript/pkg/geometry"
)

// Segment is one curved leg between two consecutive waypoints.
type Segment struct {
	Start   geometry.Point3 `json:"start"`
	End     geometry.Point3 `json:"end"`
	Control geometry.Point3 `json:"control"`
}

// rawSteps is floor(duration / tickDuration) before the floor-of-one rule.
// It stays a float so callers can budget oversized requests before
// converting to int.
func rawSteps(seg Segment, timing Timing) float64 {
	distance := seg.Start.Distance(seg.End)
	duration := distance / timing.Speed
	return math.Floor(duration / timing.TickDuration())
}

// StepCount returns the number of intervals the segment is split into:
// max(1, floor((distance / speed) / tickDuration)). The segment yields
// StepCount+1 samples. Speed and tick duration must be positive. Counts
// above math.MaxInt32 saturate; Build rejects such segments before sampling.
func StepCount(seg Segment, timing Timing) int {
	steps := rawSteps(seg, timing)
	if !(steps >= 1) {
		return 1
	}
	if steps > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(steps)
}

// PlanSegment samples the segment's curve at t = i/steps for i in 0..steps.
// The first sample is exactly Start and the last exactly End.
func PlanSegment(seg Segment, timing Timing) []geometry.Point3 {
	steps := StepCount(seg, timing)
	points := make([]geometry.Point3, 0, steps+1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		points = append(points, geometry.EvaluateCurve(t, seg.Start, seg.Control, seg.End))
	}
	return points
}
