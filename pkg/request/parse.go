package request

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/open-teleop/pathscript/pkg/geometry"
	"github.com/open-teleop/pathscript/pkg/trajectory"
)

const (
	componentSep = ","
	listSep      = ";"
)

func parseFinite(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", raw)
	}
	return v, nil
}

// ParsePoint parses a required "x,y,z" triple.
func ParsePoint(field, raw string) (geometry.Point3, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return geometry.Point3{}, trajectory.Invalid(field, "is required")
	}

	parts := strings.Split(raw, componentSep)
	if len(parts) != 3 {
		return geometry.Point3{}, trajectory.Invalid(field, "expected x,y,z, got %q", raw)
	}

	var c [3]float64
	for i, part := range parts {
		v, err := parseFinite(part)
		if err != nil {
			return geometry.Point3{}, trajectory.Invalid(field, "bad %s component %q", geometry.Axes[i], strings.TrimSpace(part))
		}
		c[i] = v
	}
	return geometry.Point3{X: c[0], Y: c[1], Z: c[2]}, nil
}

// ParsePointList parses required "x,y,z;x,y,z;..." waypoints. Empty
// entries are skipped.
func ParsePointList(field, raw string) ([]geometry.Point3, error) {
	var points []geometry.Point3
	for i, entry := range splitList(raw) {
		if strings.TrimSpace(entry) == "" {
			continue
		}
		p, err := ParsePoint(fmt.Sprintf("%s[%d]", field, i), entry)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, nil
}

// ParseOptionalPointList parses per-segment control points. An empty entry
// yields nil so that segment falls back to its offset.
func ParseOptionalPointList(field, raw string) ([]*geometry.Point3, error) {
	entries := splitList(raw)
	if len(entries) == 0 {
		return nil, nil
	}

	points := make([]*geometry.Point3, len(entries))
	for i, entry := range entries {
		if strings.TrimSpace(entry) == "" {
			continue
		}
		p, err := ParsePoint(fmt.Sprintf("%s[%d]", field, i), entry)
		if err != nil {
			return nil, err
		}
		points[i] = &p
	}
	return points, nil
}

// ParseRequiredFloat parses a mandatory number.
func ParseRequiredFloat(field, raw string) (float64, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, trajectory.Invalid(field, "is required")
	}
	v, err := parseFinite(raw)
	if err != nil {
		return 0, trajectory.Invalid(field, "not a number: %q", strings.TrimSpace(raw))
	}
	return v, nil
}

// ParseRequiredInt parses a mandatory integer.
func ParseRequiredInt(field, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, trajectory.Invalid(field, "is required")
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, trajectory.Invalid(field, "not an integer: %q", raw)
	}
	return v, nil
}

// ParseFloatOr returns def when raw is empty or not a finite number.
func ParseFloatOr(raw string, def float64) float64 {
	v, err := parseFinite(raw)
	if err != nil {
		return def
	}
	return v
}

// ParseVectorOr parses "dx,dy,dz" where every missing or malformed
// component falls back to the matching component of def.
func ParseVectorOr(raw string, def geometry.Vector3) geometry.Vector3 {
	defaults := def.Components()
	parts := strings.Split(raw, componentSep)

	var c [3]float64
	for i := range c {
		c[i] = defaults[i]
		if i < len(parts) {
			c[i] = ParseFloatOr(parts[i], defaults[i])
		}
	}
	return geometry.Vector3{X: c[0], Y: c[1], Z: c[2]}
}

// ParseVectorList parses "dx,dy,dz;..." with ParseVectorOr semantics per
// entry, keeping empty entries as zero vectors.
func ParseVectorList(raw string) []geometry.Vector3 {
	entries := splitList(raw)
	if len(entries) == 0 {
		return nil
	}

	vectors := make([]geometry.Vector3, len(entries))
	for i, entry := range entries {
		vectors[i] = ParseVectorOr(entry, geometry.Vector3{})
	}
	return vectors
}

func splitList(raw string) []string {
	raw = strings.Trim(strings.TrimSpace(raw), listSep)
	if raw == "" {
		return nil
	}
	return strings.Split(raw, listSep)
}
