package trajectory

import (
	"github.com/open-teleop/pathscript/pkg/geometry"
)

// SampledPoint is one discretized position with the facing the entity
// takes on arriving there.
type SampledPoint struct {
	Position geometry.Point3 `json:"position"`
	Yaw      float64         `json:"yaw"`
	Pitch    float64         `json:"pitch"`
}

// composeState is the accumulator folded over every sample of a
// trajectory. prev is the orientation reference for the next sample; it is
// carried across segment joins and only absent before the very first one.
type composeState struct {
	prev    geometry.Point3
	hasPrev bool
	samples []SampledPoint
}

func (s composeState) step(p geometry.Point3) composeState {
	var o Orientation
	if s.hasPrev {
		o = Orient(s.prev, p)
	}
	return composeState{
		prev:    p,
		hasPrev: true,
		samples: append(s.samples, SampledPoint{Position: p, Yaw: o.Yaw, Pitch: o.Pitch}),
	}
}

// Compose plans every segment and concatenates the samples in travel order.
// The shared point at each join appears twice, once as the last sample of
// segment i and once as the first of segment i+1. It returns the samples
// and the step count of each segment.
func Compose(segments []Segment, timing Timing) ([]SampledPoint, []int) {
	steps := make([]int, len(segments))
	total := 0
	for i, seg := range segments {
		steps[i] = StepCount(seg, timing)
		total += steps[i] + 1
	}

	state := composeState{samples: make([]SampledPoint, 0, total)}
	for _, seg := range segments {
		for _, p := range PlanSegment(seg, timing) {
			state = state.step(p)
		}
	}
	return state.samples, steps
}
