package trajectory

import (
	"fmt"
	"math"
	"strings"
)

const (
	// DefaultTickSeconds converts one protocol tick to seconds.
	DefaultTickSeconds = 0.05
	// DefaultDelayTicks is the pause emitted after every move.
	DefaultDelayTicks = 2.8
	// DefaultMaxOffsetBound caps |control - midpoint| per axis.
	DefaultMaxOffsetBound = 100.0
	// DefaultMaxSamples caps the samples of one trajectory.
	DefaultMaxSamples = 100000

	// maxTotalSamples applies when MaxSamples is 0.
	maxTotalSamples = math.MaxInt32
)

// ControlMode selects where each segment's control point comes from.
type ControlMode int

const (
	// ControlOffsetDerived places the control point at midpoint + offset.
	// A non-nil explicit control point for a segment still takes precedence.
	ControlOffsetDerived ControlMode = iota
	// ControlExplicit requires one explicit control point per segment.
	ControlExplicit
)

func (m ControlMode) String() string {
	switch m {
	case ControlExplicit:
		return "EXPLICIT"
	case ControlOffsetDerived:
		return "OFFSET"
	default:
		return fmt.Sprintf("ControlMode(%d)", int(m))
	}
}

// ParseControlMode accepts "OFFSET" or "EXPLICIT" in any case. An empty
// string selects ControlOffsetDerived.
func ParseControlMode(s string) (ControlMode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "OFFSET", "OFFSET_DERIVED":
		return ControlOffsetDerived, nil
	case "EXPLICIT":
		return ControlExplicit, nil
	}
	return ControlOffsetDerived, fmt.Errorf("unknown control mode %q", s)
}

// Timing holds the pacing parameters of one trajectory.
type Timing struct {
	// Speed is the travel speed in blocks per second.
	Speed             float64
	TickIntervalTicks int
	TickSeconds       float64
}

// TickDuration is the wall time, in seconds, between two samples.
func (t Timing) TickDuration() float64 {
	return float64(t.TickIntervalTicks) * t.TickSeconds
}

// Options parameterizes Build. The zero value is usable: it derives
// control points from offsets, accepts any number of segments only when
// MultiSegment is set, and uses DefaultTickSeconds.
type Options struct {
	ControlMode  ControlMode
	MultiSegment bool
	// TickSeconds falls back to DefaultTickSeconds when not positive.
	TickSeconds float64
	// MaxOffsetBound disables the offset check when not positive.
	MaxOffsetBound float64
	// MaxSamples limits the total number of samples. 0 leaves only the
	// hard ceiling of math.MaxInt32 samples.
	MaxSamples int
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		ControlMode:    ControlOffsetDerived,
		MultiSegment:   true,
		TickSeconds:    DefaultTickSeconds,
		MaxOffsetBound: DefaultMaxOffsetBound,
		MaxSamples:     DefaultMaxSamples,
	}
}

func (o Options) tickSeconds() float64 {
	if o.TickSeconds > 0 {
		return o.TickSeconds
	}
	return DefaultTickSeconds
}
