// Package geometry holds the 3D point and vector values used to describe
// trajectories, and the quadratic curve evaluated along each segment.
//
// Arithmetic is delegated to r3.Vector; Point3 and Vector3 share its
// underlying layout so conversions between them are free.
package geometry

import (
	"fmt"

	"github.com/golang/geo/r3"
)

// Axis names, in component order.
var Axes = [3]string{"x", "y", "z"}

// Point3 is a position in world coordinates.
type Point3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Vector3 is a displacement, typically an offset or a delta between points.
type Vector3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Sub returns the vector from q to p.
func (p Point3) Sub(q Point3) Vector3 {
	return Vector3(r3.Vector(p).Sub(r3.Vector(q)))
}

// Add translates p by v.
func (p Point3) Add(v Vector3) Point3 {
	return Point3(r3.Vector(p).Add(r3.Vector(v)))
}

// Distance returns the euclidean distance between p and q.
func (p Point3) Distance(q Point3) float64 {
	return r3.Vector(p).Distance(r3.Vector(q))
}

// Components returns the coordinates in axis order.
func (p Point3) Components() [3]float64 {
	return [3]float64{p.X, p.Y, p.Z}
}

func (p Point3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", p.X, p.Y, p.Z)
}

// Abs returns the component-wise absolute value.
func (v Vector3) Abs() Vector3 {
	return Vector3(r3.Vector(v).Abs())
}

// Norm returns the euclidean length of v.
func (v Vector3) Norm() float64 {
	return r3.Vector(v).Norm()
}

// Components returns the coordinates in axis order.
func (v Vector3) Components() [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func (v Vector3) String() string {
	return fmt.Sprintf("<%g, %g, %g>", v.X, v.Y, v.Z)
}

// Midpoint returns (a + b) / 2.
func Midpoint(a, b Point3) Point3 {
	return Point3(r3.Vector(a).Add(r3.Vector(b)).Mul(0.5))
}

// EvaluateCurve returns the quadratic Bézier point
//
//	(1-t)²·p0 + 2(1-t)t·p1 + t²·p2
//
// for each axis independently. t is not clamped: values outside [0,1]
// extrapolate along the same polynomial.
func EvaluateCurve(t float64, p0, p1, p2 Point3) Point3 {
	u := 1 - t
	v := r3.Vector(p0).Mul(u * u).
		Add(r3.Vector(p1).Mul(2 * u * t)).
		Add(r3.Vector(p2).Mul(t * t))
	return Point3(v)
}
