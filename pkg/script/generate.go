package script

import (
	"math"
	"strings"

	"github.com/open-teleop/pathscript/pkg/trajectory"
)

// Request is everything needed to produce one command script.
type Request struct {
	trajectory.Request

	// Selector addresses the entity being moved, e.g. a UUID or TagSelector(tag).
	Selector   string
	DelayTicks float64
}

// Config selects the pipeline variant and the output dialect.
type Config struct {
	Trajectory      trajectory.Options
	MoveVerb        string
	WithOrientation bool
}

// DefaultConfig emits oriented moves over offset-derived, multi-segment paths.
func DefaultConfig() Config {
	return Config{
		Trajectory:      trajectory.DefaultOptions(),
		MoveVerb:        DefaultMoveVerb,
		WithOrientation: true,
	}
}

// Script is a generated command list together with the path it was built from.
type Script struct {
	Selector   string                 `json:"selector"`
	Commands   []string               `json:"commands"`
	Trajectory *trajectory.Trajectory `json:"trajectory"`
}

// Text joins the commands one per line, with a trailing newline.
func (s *Script) Text() string {
	if len(s.Commands) == 0 {
		return ""
	}
	return strings.Join(s.Commands, "\n") + "\n"
}

func validate(req Request) error {
	if strings.TrimSpace(req.Selector) == "" {
		return trajectory.Invalid("selector", "entity selector is required")
	}
	if strings.ContainsAny(req.Selector, "\r\n") {
		return trajectory.Invalid("selector", "must be a single line")
	}
	if math.IsNaN(req.DelayTicks) || math.IsInf(req.DelayTicks, 0) || req.DelayTicks < 0 {
		return trajectory.Invalid("delay", "must be a non-negative number, got %v", req.DelayTicks)
	}
	return nil
}

// Generate validates req, builds its trajectory and renders the commands.
// Either the complete script or an error is returned, never partial output.
func Generate(req Request, cfg Config) (*Script, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	traj, err := trajectory.Build(req.Request, cfg.Trajectory)
	if err != nil {
		return nil, err
	}

	emitter := &Emitter{
		MoveVerb:        cfg.MoveVerb,
		Selector:        req.Selector,
		DelayTicks:      req.DelayTicks,
		WithOrientation: cfg.WithOrientation,
	}

	return &Script{
		Selector:   req.Selector,
		Commands:   emitter.Emit(traj.Samples),
		Trajectory: traj,
	}, nil
}
