package trajectory

import (
	"github.com/open-teleop/pathscript/pkg/geometry"
)

// ResolveControl returns the control point bending the segment start→end.
//
// A non-nil explicit point is returned verbatim. Otherwise the control point
// is midpoint(start, end) + offset, and when bound is positive every axis of
// that displacement must stay within bound. The check is per axis and
// measured from the midpoint, not the endpoints: a diagonal offset of
// (90, 90, 90) passes a bound of 100 even though its length is ~156.
func ResolveControl(start, end geometry.Point3, explicit *geometry.Point3, offset geometry.Vector3, bound float64) (geometry.Point3, error) {
	if explicit != nil {
		return *explicit, nil
	}

	mid := geometry.Midpoint(start, end)
	control := mid.Add(offset)

	if bound > 0 {
		delta := control.Sub(mid).Abs().Components()
		for i, d := range delta {
			if d > bound {
				return geometry.Point3{}, &ConfigurationError{
					Segment: -1,
					Axis:    geometry.Axes[i],
					Delta:   d,
					Bound:   bound,
				}
			}
		}
	}

	return control, nil
}
