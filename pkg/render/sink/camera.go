package sink

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/prism/pkg/geom"
)

// Default viewpoint, matching the interactive viewer's initial camera.
var (
	CameraEye    = geom.V(0, 2, 10)
	CameraTarget = geom.V(0, 0, 0)
)

// CameraFOV is the vertical field of view in degrees.
const CameraFOV = 60.0

const nearPlane = 0.1

// light is the direction towards the point light at (10, 10, 10).
var light = r3.Unit(r3.Vec{X: 10, Y: 10, Z: 10})

// camera is a pinhole perspective projection onto a width×height viewport.
type camera struct {
	eye                r3.Vec
	right, up, forward r3.Vec
	focal, cx, cy      float64
}

func newCamera(width, height int) camera {
	eye := CameraEye.R3()
	forward := r3.Unit(r3.Sub(CameraTarget.R3(), eye))
	right := r3.Unit(r3.Cross(forward, r3.Vec{Y: 1}))
	up := r3.Cross(right, forward)
	return camera{
		eye:     eye,
		right:   right,
		up:      up,
		forward: forward,
		focal:   float64(height) / 2 / math.Tan(CameraFOV*math.Pi/360),
		cx:      float64(width) / 2,
		cy:      float64(height) / 2,
	}
}

// depth returns the distance of p in front of the camera along its axis.
func (c camera) depth(p geom.Vec3) float64 {
	return r3.Dot(r3.Sub(p.R3(), c.eye), c.forward)
}

// project maps a world point to viewport pixels. ok is false for points at
// or behind the near plane.
func (c camera) project(p geom.Vec3) (x, y, depth float64, ok bool) {
	d := r3.Sub(p.R3(), c.eye)
	depth = r3.Dot(d, c.forward)
	if depth <= nearPlane {
		return 0, 0, depth, false
	}
	x = c.cx + r3.Dot(d, c.right)/depth*c.focal
	y = c.cy - r3.Dot(d, c.up)/depth*c.focal
	return x, y, depth, true
}

// facing reports whether a face with outward normal n at center p is visible.
func (c camera) facing(p, n geom.Vec3) bool {
	return r3.Dot(n.R3(), r3.Sub(p.R3(), c.eye)) < 0
}

// clip trims the segment a-b to the part in front of the near plane.
func (c camera) clip(a, b geom.Vec3) (geom.Vec3, geom.Vec3, bool) {
	da, db := c.depth(a), c.depth(b)
	if da <= nearPlane && db <= nearPlane {
		return a, b, false
	}
	lim := nearPlane * 1.01
	if da <= nearPlane {
		a = a.Add(b.Sub(a).Scale((lim - da) / (db - da)))
	} else if db <= nearPlane {
		b = b.Add(a.Sub(b).Scale((lim - db) / (da - db)))
	}
	return a, b, true
}

// shade applies ambient plus diffuse lighting for a surface with normal n.
// twoSided surfaces are lit from either side.
func shade(c geom.Color, n geom.Vec3, twoSided bool) geom.Color {
	l := r3.Norm(n.R3())
	if l == 0 {
		return c
	}
	diffuse := r3.Dot(r3.Scale(1/l, n.R3()), light)
	if twoSided {
		diffuse = math.Abs(diffuse)
	}
	return c.Shade(0.7 + 0.4*max(diffuse, 0))
}
