package request

import (
	"github.com/open-teleop/pathscript/pkg/geometry"
	"github.com/open-teleop/pathscript/pkg/script"
	"github.com/open-teleop/pathscript/pkg/trajectory"
)

// ScriptRequestDTO is the JSON and YAML form of a script request. It follows
// the same rules as FromForm: Waypoints wins over Start/End, Offsets over
// Offset, UUID over Tag, and a missing Delay becomes defaultDelay.
type ScriptRequestDTO struct {
	Waypoints    []geometry.Point3  `json:"waypoints,omitempty" yaml:"waypoints,omitempty"`
	Start        *geometry.Point3   `json:"start,omitempty" yaml:"start,omitempty"`
	End          *geometry.Point3   `json:"end,omitempty" yaml:"end,omitempty"`
	Control      *geometry.Point3   `json:"control,omitempty" yaml:"control,omitempty"`
	Controls     []*geometry.Point3 `json:"controls,omitempty" yaml:"controls,omitempty"`
	Offset       *geometry.Vector3  `json:"offset,omitempty" yaml:"offset,omitempty"`
	Offsets      []geometry.Vector3 `json:"offsets,omitempty" yaml:"offsets,omitempty"`
	UUID         string             `json:"uuid,omitempty" yaml:"uuid,omitempty"`
	Tag          string             `json:"tag,omitempty" yaml:"tag,omitempty"`
	Speed        *float64           `json:"speed" yaml:"speed"`
	TickInterval *int               `json:"tick_interval" yaml:"tick_interval"`
	Delay        *float64           `json:"delay,omitempty" yaml:"delay,omitempty"`
}

// ToRequest converts the DTO, reporting missing required fields as
// validation errors.
func (d ScriptRequestDTO) ToRequest(defaultDelay float64) (script.Request, error) {
	var req script.Request

	switch {
	case len(d.Waypoints) > 0:
		req.Waypoints = append([]geometry.Point3(nil), d.Waypoints...)
	case d.Start == nil:
		return req, trajectory.Invalid("start", "is required")
	case d.End == nil:
		return req, trajectory.Invalid("end", "is required")
	default:
		req.Waypoints = []geometry.Point3{*d.Start, *d.End}
	}

	switch {
	case len(d.Controls) > 0:
		req.Controls = append([]*geometry.Point3(nil), d.Controls...)
	case d.Control != nil:
		c := *d.Control
		req.Controls = []*geometry.Point3{&c}
	}

	switch {
	case len(d.Offsets) > 0:
		req.Offsets = append([]geometry.Vector3(nil), d.Offsets...)
	case d.Offset != nil:
		req.Offsets = repeat(*d.Offset, req.SegmentCount())
	default:
		req.Offsets = repeat(geometry.Vector3{}, req.SegmentCount())
	}

	if d.Speed == nil {
		return req, trajectory.Invalid("speed", "is required")
	}
	req.Speed = *d.Speed

	if d.TickInterval == nil {
		return req, trajectory.Invalid("tick_interval", "is required")
	}
	req.TickIntervalTicks = *d.TickInterval

	req.DelayTicks = defaultDelay
	if d.Delay != nil {
		req.DelayTicks = *d.Delay
	}

	req.Selector = Selector(d.UUID, d.Tag)
	return req, nil
}
