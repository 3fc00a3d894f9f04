package request

import (
	"strings"

	"github.com/open-teleop/pathscript/pkg/geometry"
	"github.com/open-teleop/pathscript/pkg/script"
)

// Values looks up a submitted form field; absent fields read as "".
type Values func(key string) string

// Selector addresses the entity by uuid when one is given, else by tag.
func Selector(uuid, tag string) string {
	if uuid = strings.TrimSpace(uuid); uuid != "" {
		return uuid
	}
	if tag = strings.TrimSpace(tag); tag != "" {
		return script.TagSelector(tag)
	}
	return ""
}

// FromForm builds a script request from form fields.
//
// The path is either "waypoints" (x,y,z;x,y,z;...) or "start" and "end".
// Control points come from "controls" (one entry per segment, empty entries
// allowed) or the single-segment "control". Offsets come from "offsets", or
// "offset" repeated for every segment, or default to zero. A missing or
// malformed "delay" becomes defaultDelay.
func FromForm(get Values, defaultDelay float64) (script.Request, error) {
	var req script.Request

	waypoints, err := formWaypoints(get)
	if err != nil {
		return req, err
	}
	req.Waypoints = waypoints
	segments := req.SegmentCount()

	if raw := get("controls"); strings.TrimSpace(raw) != "" {
		if req.Controls, err = ParseOptionalPointList("controls", raw); err != nil {
			return req, err
		}
	} else if raw := get("control"); strings.TrimSpace(raw) != "" {
		c, err := ParsePoint("control", raw)
		if err != nil {
			return req, err
		}
		req.Controls = []*geometry.Point3{&c}
	}

	if raw := get("offsets"); strings.TrimSpace(raw) != "" {
		req.Offsets = ParseVectorList(raw)
	} else {
		req.Offsets = repeat(ParseVectorOr(get("offset"), geometry.Vector3{}), segments)
	}

	if req.Speed, err = ParseRequiredFloat("speed", get("speed")); err != nil {
		return req, err
	}
	if req.TickIntervalTicks, err = ParseRequiredInt("tick_interval", get("tick_interval")); err != nil {
		return req, err
	}
	req.DelayTicks = ParseFloatOr(get("delay"), defaultDelay)
	req.Selector = Selector(get("uuid"), get("tag"))

	return req, nil
}

func formWaypoints(get Values) ([]geometry.Point3, error) {
	if raw := get("waypoints"); strings.TrimSpace(raw) != "" {
		return ParsePointList("waypoints", raw)
	}

	start, err := ParsePoint("start", get("start"))
	if err != nil {
		return nil, err
	}
	end, err := ParsePoint("end", get("end"))
	if err != nil {
		return nil, err
	}
	return []geometry.Point3{start, end}, nil
}

func repeat(v geometry.Vector3, n int) []geometry.Vector3 {
	out := make([]geometry.Vector3, n)
	for i := range out {
		out[i] = v
	}
	return out
}
