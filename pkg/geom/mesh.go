package geom

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// ComputeNormals returns smooth per-vertex normals for an indexed triangle
// buffer. Each vertex normal is the normalized sum of the (unnormalized,
// hence area-weighted) normals of the faces that share it. Vertices touched
// by no face, or only by degenerate faces, get (0, 1, 0).
func ComputeNormals(positions []float64, indices []uint32) []float64 {
	n := len(positions) / 3
	acc := make([]r3.Vec, n)

	at := func(i uint32) r3.Vec {
		return r3.Vec{X: positions[3*i], Y: positions[3*i+1], Z: positions[3*i+2]}
	}
	for t := 0; t+2 < len(indices); t += 3 {
		a, b, c := indices[t], indices[t+1], indices[t+2]
		pa, pb, pc := at(a), at(b), at(c)
		face := r3.Cross(r3.Sub(pb, pa), r3.Sub(pc, pa))
		acc[a] = r3.Add(acc[a], face)
		acc[b] = r3.Add(acc[b], face)
		acc[c] = r3.Add(acc[c], face)
	}

	out := make([]float64, 3*n)
	for i, v := range acc {
		l := r3.Norm(v)
		if l == 0 {
			out[3*i+1] = 1
			continue
		}
		out[3*i] = v.X / l
		out[3*i+1] = v.Y / l
		out[3*i+2] = v.Z / l
	}
	return out
}
