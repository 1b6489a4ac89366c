package layout

import (
	"math"

	"github.com/matzehuels/prism/pkg/chart"
	"github.com/matzehuels/prism/pkg/geom"
)

// Surface layout constants.
const (
	SurfaceSize        = 10.0
	SurfaceMinSegments = 10
	SurfaceColorRange  = 5.0 // |height| mapped to full channel intensity
)

// Segments returns the grid resolution for n input points:
// max(ceil(sqrt(n)), ceil(n/rows), 10).
func Segments(n int) int {
	if n <= 0 {
		return SurfaceMinSegments
	}
	rows := int(math.Ceil(math.Sqrt(float64(n))))
	cols := (n + rows - 1) / rows
	return max(rows, cols, SurfaceMinSegments)
}

// AnalyticHeight is the fallback surface used when input data is incomplete.
func AnalyticHeight(x, z float64) float64 {
	return math.Sin(x*0.5) * math.Cos(z*0.5) * 2
}

// HeightColor maps a height to its vertex color: blue below zero, green at
// or above, intensity |h|/5 clamped to [0, 1].
func HeightColor(h float64) (r, g, b float64) {
	v := math.Min(math.Abs(h)/SurfaceColorRange, 1)
	if h < 0 {
		return 0, 0, v
	}
	return 0, v, 0
}

// Surface builds a height-mapped grid mesh.
func Surface(pts []chart.SurfacePoint, opts ...Option) geom.Scene {
	o := newOptions(opts)

	segs := Segments(len(pts))
	stride := segs + 1
	step := SurfaceSize / float64(segs)
	half := SurfaceSize / 2

	mesh := &geom.Mesh{
		Segments:  segs,
		Width:     SurfaceSize,
		Depth:     SurfaceSize,
		Mode:      geom.HeightAnalytic,
		Positions: make([]float64, 0, 3*stride*stride),
		Colors:    make([]float64, 0, 3*stride*stride),
		Indices:   make([]uint32, 0, 6*segs*segs),
	}

	var loc locator
	if fullData(pts) {
		mesh.Mode = geom.HeightData
		plane := make([]planePoint, len(pts))
		for i, p := range pts {
			plane[i] = planePoint{x: p.X, z: p.Z, idx: i}
		}
		loc = newLocator(o.nearest, plane)
	}

	for iz := 0; iz <= segs; iz++ {
		vz := float64(iz)*step - half
		for ix := 0; ix <= segs; ix++ {
			vx := float64(ix)*step - half

			vy := AnalyticHeight(vx, vz)
			if loc != nil {
				if i := loc.nearest(vx, vz); i >= 0 {
					vy = pts[i].Y
				}
			}
			r, g, b := HeightColor(vy)
			mesh.Positions = append(mesh.Positions, vx, vy, vz)
			mesh.Colors = append(mesh.Colors, r, g, b)
		}
	}

	for iz := 0; iz < segs; iz++ {
		for ix := 0; ix < segs; ix++ {
			a := uint32(ix + stride*iz)
			b := uint32(ix + stride*(iz+1))
			c := uint32(ix + 1 + stride*(iz+1))
			d := uint32(ix + 1 + stride*iz)
			mesh.Indices = append(mesh.Indices, a, b, d, b, c, d)
		}
	}
	mesh.Normals = geom.ComputeNormals(mesh.Positions, mesh.Indices)

	return geom.Scene{Chart: geom.ChartSurface, Tilt: Tilt, Surface: mesh}
}

// fullData reports whether pts is non-empty and every point has three
// supplied, finite coordinates.
func fullData(pts []chart.SurfacePoint) bool {
	if len(pts) == 0 {
		return false
	}
	for _, p := range pts {
		if p.Imputed || !finite(p.X) || !finite(p.Y) || !finite(p.Z) {
			return false
		}
	}
	return true
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
