package layout

import (
	"gonum.org/v1/gonum/spatial/kdtree"
)

// Nearest selects the nearest-point search used by Surface.
type Nearest string

// Nearest-point strategies.
const (
	NearestAuto   Nearest = "auto"   // scan below KDTreeThreshold points, k-d tree above
	NearestScan   Nearest = "scan"   // linear scan per vertex
	NearestKDTree Nearest = "kdtree" // gonum k-d tree
)

// KDTreeThreshold is the input size at which NearestAuto switches to a k-d
// tree.
const KDTreeThreshold = 64

// locator finds the index of the input point nearest to (x, z). Distance
// ties resolve to the lowest index.
type locator interface {
	nearest(x, z float64) int
}

func newLocator(strategy Nearest, pts []planePoint) locator {
	switch strategy {
	case NearestScan:
		return scan(pts)
	case NearestKDTree:
		return newTree(pts)
	default:
		if len(pts) >= KDTreeThreshold {
			return newTree(pts)
		}
		return scan(pts)
	}
}

// planePoint is an input point projected onto the XZ plane.
type planePoint struct {
	x, z float64
	idx  int
}

func (p planePoint) dist2(x, z float64) float64 {
	dx, dz := p.x-x, p.z-z
	return dx*dx + dz*dz
}

// =============================================================================
// Linear scan
// =============================================================================

type scan []planePoint

func (s scan) nearest(x, z float64) int {
	best, bestD := -1, 0.0
	for _, p := range s {
		if d := p.dist2(x, z); best < 0 || d < bestD {
			best, bestD = p.idx, d
		}
	}
	return best
}

// =============================================================================
// k-d tree
// =============================================================================

type tree struct {
	t *kdtree.Tree
}

func newTree(pts []planePoint) tree {
	cp := make(planePoints, len(pts))
	copy(cp, pts)
	return tree{t: kdtree.New(cp, false)}
}

// nearest asks the tree for the minimum distance, then collects every point
// at exactly that distance and keeps the lowest index.
func (t tree) nearest(x, z float64) int {
	q := planePoint{x: x, z: z, idx: -1}
	got, d := t.t.Nearest(q)
	if got == nil {
		return -1
	}

	keep := kdtree.NewDistKeeper(d)
	t.t.NearestSet(keep, q)

	best := got.(planePoint).idx
	for _, c := range keep.Heap {
		p, ok := c.Comparable.(planePoint)
		if !ok || c.Dist != d {
			continue
		}
		if p.idx < best {
			best = p.idx
		}
	}
	return best
}

// Compare implements kdtree.Comparable.
func (p planePoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(planePoint)
	if d == 0 {
		return p.x - q.x
	}
	return p.z - q.z
}

// Dims implements kdtree.Comparable.
func (p planePoint) Dims() int { return 2 }

// Distance implements kdtree.Comparable using squared Euclidean distance.
func (p planePoint) Distance(c kdtree.Comparable) float64 {
	q := c.(planePoint)
	return p.dist2(q.x, q.z)
}

// planePoints implements kdtree.Interface.
type planePoints []planePoint

func (p planePoints) Index(i int) kdtree.Comparable         { return p[i] }
func (p planePoints) Len() int                              { return len(p) }
func (p planePoints) Pivot(d kdtree.Dim) int                { return plane{planePoints: p, Dim: d}.Pivot() }
func (p planePoints) Slice(start, end int) kdtree.Interface { return p[start:end] }

// plane implements kdtree.SortSlicer along one dimension.
type plane struct {
	kdtree.Dim
	planePoints
}

func (p plane) Less(i, j int) bool {
	if p.Dim == 0 {
		return p.planePoints[i].x < p.planePoints[j].x
	}
	return p.planePoints[i].z < p.planePoints[j].z
}

func (p plane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }

func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.planePoints = p.planePoints[start:end]
	return p
}

func (p plane) Swap(i, j int) {
	p.planePoints[i], p.planePoints[j] = p.planePoints[j], p.planePoints[i]
}
