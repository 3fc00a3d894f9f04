package trajectory

import (
	"math"

	"github.com/open-teleop/pathscript/pkg/geometry"
)

// Orientation is a facing in protocol degrees.
type Orientation struct {
	Yaw   float64 `json:"yaw"`
	Pitch float64 `json:"pitch"`
}

// Orient returns the facing of an entity travelling from prev to cur.
//
//	yaw   = atan2(-dx, dz)
//	pitch = atan2(-dy, sqrt(dx² + dz²))
//
// The protocol's north is -z, so yaw 0 faces +z and yaw 90 faces -x.
// Positive pitch looks down. prev == cur yields (0, 0).
func Orient(prev, cur geometry.Point3) Orientation {
	d := cur.Sub(prev)
	yaw := math.Atan2(-d.X, d.Z)
	pitch := math.Atan2(-d.Y, math.Sqrt(d.X*d.X+d.Z*d.Z))
	return Orientation{
		Yaw:   yaw * 180.0 / math.Pi,
		Pitch: pitch * 180.0 / math.Pi,
	}
}
