package geom

import (
	"encoding/json"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vec3 is a point or extent in world space.
type Vec3 r3.Vec

// V returns the vector (x, y, z).
func V(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

// R3 converts v for use with gonum's spatial/r3 functions.
func (v Vec3) R3() r3.Vec { return r3.Vec(v) }

// Add returns v+u.
func (v Vec3) Add(u Vec3) Vec3 { return Vec3(r3.Add(v.R3(), u.R3())) }

// Sub returns v-u.
func (v Vec3) Sub(u Vec3) Vec3 { return Vec3(r3.Sub(v.R3(), u.R3())) }

// Scale returns f*v.
func (v Vec3) Scale(f float64) Vec3 { return Vec3(r3.Scale(f, v.R3())) }

// Len returns the Euclidean length of v.
func (v Vec3) Len() float64 { return r3.Norm(v.R3()) }

// RotateX rotates v by angle radians about the X axis.
func (v Vec3) RotateX(angle float64) Vec3 {
	if angle == 0 {
		return v
	}
	return Vec3(r3.NewRotation(angle, r3.Vec{X: 1}).Rotate(v.R3()))
}

// MarshalJSON encodes v as [x, y, z].
func (v Vec3) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]float64{v.X, v.Y, v.Z})
}

// UnmarshalJSON decodes a three-element array.
func (v *Vec3) UnmarshalJSON(data []byte) error {
	var a []float64
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if len(a) != 3 {
		return fmt.Errorf("vector must have 3 components, got %d", len(a))
	}
	*v = Vec3{X: a[0], Y: a[1], Z: a[2]}
	return nil
}
