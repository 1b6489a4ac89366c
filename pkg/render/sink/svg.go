package sink

import (
	"bytes"
	"cmp"
	"fmt"
	"math"
	"slices"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/prism/pkg/geom"
)

// Default preview size in pixels.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Preview colors.
const (
	backgroundTop    = "#eff6ff"
	backgroundBottom = "#faf5ff"
	gridCenterColor  = "#888888"
	gridColor        = "#444444"
	textColor        = "#000000"
)

// Grid helper extent: a 20×20 square on the floor with 20 divisions.
const (
	gridSize      = 20
	gridDivisions = 20
)

const arcStep = math.Pi / 36

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width, height int
	grid          bool
	title         string
}

// WithSize sets the viewport size in pixels.
func WithSize(width, height int) SVGOption {
	return func(r *svgRenderer) {
		if width > 0 && height > 0 {
			r.width, r.height = width, height
		}
	}
}

// WithGrid draws the floor grid helper.
func WithGrid() SVGOption { return func(r *svgRenderer) { r.grid = true } }

// WithTitle sets the document title.
func WithTitle(s string) SVGOption { return func(r *svgRenderer) { r.title = s } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{width: DefaultWidth, height: DefaultHeight}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// drawable is one primitive queued for the painter's algorithm.
type drawable struct {
	depth float64
	draw  func(*svg.SVG)
}

// RenderSVG draws a static perspective preview of the scene, viewed from
// the default camera. Primitives are painted back to front; labels are
// painted last so they stay readable.
func RenderSVG(s geom.Scene, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	cam := newCamera(r.width, r.height)
	p := &painter{cam: cam, tilt: s.Tilt}

	switch s.Chart {
	case geom.ChartBar:
		for _, b := range s.Bars {
			p.box(b.Box)
			p.text(b.Caption, false)
			p.text(b.ValueText, false)
		}
	case geom.ChartScatter:
		for _, a := range s.Axes {
			p.box(a)
		}
		for _, pt := range s.Points {
			p.sphere(pt)
			if pt.Label != nil {
				p.text(*pt.Label, true)
			}
		}
	case geom.ChartPie:
		for _, w := range s.Wedges {
			p.wedge(w)
			if w.Text != nil {
				p.text(*w.Text, false)
			}
		}
	case geom.ChartSurface:
		if s.Surface != nil {
			p.mesh(s.Surface)
		}
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(r.width, r.height, fmt.Sprintf(`viewBox="0 0 %d %d"`, r.width, r.height))
	if r.title != "" {
		canvas.Title(r.title)
	}
	renderBackground(canvas, r.width, r.height)
	if r.grid {
		renderGrid(canvas, cam)
	}

	byDepth := func(a, b drawable) int { return cmp.Compare(b.depth, a.depth) }
	slices.SortStableFunc(p.shapes, byDepth)
	slices.SortStableFunc(p.labels, byDepth)
	for _, d := range p.shapes {
		d.draw(canvas)
	}
	canvas.Gstyle("font-family:sans-serif;text-anchor:middle;fill:" + textColor)
	for _, d := range p.labels {
		d.draw(canvas)
	}
	canvas.Gend()

	if s.Len() == 0 && !s.IsScatter() {
		canvas.Text(r.width/2, r.height/2, "No data", "font-family:sans-serif;text-anchor:middle;fill:#888888;font-size:20px")
	}
	canvas.End()
	return buf.Bytes()
}

func renderBackground(canvas *svg.SVG, width, height int) {
	canvas.Def()
	canvas.LinearGradient("bg", 0, 0, 0, 100, []svg.Offcolor{
		{Offset: 0, Color: backgroundTop, Opacity: 1},
		{Offset: 100, Color: backgroundBottom, Opacity: 1},
	})
	canvas.DefEnd()
	canvas.Rect(0, 0, width, height, "fill:url(#bg)")
}

func renderGrid(canvas *svg.SVG, cam camera) {
	const half = gridSize / 2
	step := float64(gridSize) / gridDivisions
	canvas.Gstyle("stroke-width:1;fill:none")
	for i := 0; i <= gridDivisions; i++ {
		t := -half + float64(i)*step
		color := gridColor
		if t == 0 {
			color = gridCenterColor
		}
		line(canvas, cam, geom.V(t, 0, -half), geom.V(t, 0, half), "stroke:"+color)
		line(canvas, cam, geom.V(-half, 0, t), geom.V(half, 0, t), "stroke:"+color)
	}
	canvas.Gend()
}

func line(canvas *svg.SVG, cam camera, a, b geom.Vec3, style string) {
	a, b, ok := cam.clip(a, b)
	if !ok {
		return
	}
	x1, y1, _, ok1 := cam.project(a)
	x2, y2, _, ok2 := cam.project(b)
	if ok1 && ok2 {
		canvas.Line(px(x1), px(y1), px(x2), px(y2), style)
	}
}

func px(f float64) int { return int(math.Round(f)) }

// painter queues primitives of one scene in world space.
type painter struct {
	cam    camera
	tilt   float64
	shapes []drawable
	labels []drawable
}

func (p *painter) world(v geom.Vec3) geom.Vec3 { return v.RotateX(p.tilt) }

// face queues a filled polygon given in scene space. When cull is set,
// faces whose normal points away from the camera are dropped.
func (p *painter) face(pts []geom.Vec3, normal geom.Vec3, c geom.Color, cull, twoSided bool) {
	n := p.world(normal)
	xs := make([]int, len(pts))
	ys := make([]int, len(pts))
	var depth float64
	var center geom.Vec3
	for i, v := range pts {
		w := p.world(v)
		x, y, d, ok := p.cam.project(w)
		if !ok {
			return
		}
		xs[i], ys[i] = px(x), px(y)
		depth += d
		center = center.Add(w)
	}
	center = center.Scale(1 / float64(len(pts)))
	if cull && !p.cam.facing(center, n) {
		return
	}
	fill := shade(c, n, twoSided).Hex()
	style := fmt.Sprintf("fill:%s;stroke:%s;stroke-width:0.5;stroke-linejoin:round", fill, fill)
	p.shapes = append(p.shapes, drawable{
		depth: depth / float64(len(pts)),
		draw:  func(canvas *svg.SVG) { canvas.Polygon(xs, ys, style) },
	})
}

func (p *painter) box(b geom.Box) {
	half := b.Size.Scale(0.5)
	h := [3]float64{half.X, half.Y, half.Z}
	for axis := 0; axis < 3; axis++ {
		u, v := (axis+1)%3, (axis+2)%3
		for _, sign := range []float64{-1, 1} {
			n := unit(axis, sign)
			fc := b.Center.Add(n.Scale(h[axis]))
			du, dv := unit(u, h[u]), unit(v, h[v])
			pts := []geom.Vec3{
				fc.Sub(du).Sub(dv),
				fc.Add(du).Sub(dv),
				fc.Add(du).Add(dv),
				fc.Sub(du).Add(dv),
			}
			p.face(pts, n, b.Color, true, false)
		}
	}
}

func unit(axis int, f float64) geom.Vec3 {
	switch axis {
	case 0:
		return geom.V(f, 0, 0)
	case 1:
		return geom.V(0, f, 0)
	default:
		return geom.V(0, 0, f)
	}
}

func (p *painter) sphere(pt geom.Point) {
	w := p.world(pt.Center)
	x, y, d, ok := p.cam.project(w)
	if !ok {
		return
	}
	r := pt.Radius * p.cam.focal / d
	fill := pt.Color.Hex()
	rim := pt.Color.Shade(0.7).Hex()
	hi := pt.Color.Shade(1.3).Hex()
	p.shapes = append(p.shapes, drawable{
		depth: d,
		draw: func(canvas *svg.SVG) {
			canvas.Circle(px(x), px(y), max(px(r), 1), fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", fill, rim))
			canvas.Circle(px(x-r*0.3), px(y-r*0.3), max(px(r*0.35), 1), "fill-opacity:0.5;fill:"+hi)
		},
	})
}

func (p *painter) wedge(w geom.Wedge) {
	angle := w.Angle()
	if angle == 0 {
		return
	}
	cull := angle > 0
	steps := max(1, int(math.Ceil(math.Abs(angle)/arcStep)))
	arc := func(i int, z float64) geom.Vec3 {
		t := w.Start + angle*float64(i)/float64(steps)
		return geom.V(math.Cos(t)*w.Radius, math.Sin(t)*w.Radius, z)
	}

	top := []geom.Vec3{geom.V(0, 0, w.Depth)}
	bottom := []geom.Vec3{geom.V(0, 0, 0)}
	for i := 0; i <= steps; i++ {
		top = append(top, arc(i, w.Depth))
		bottom = append(bottom, arc(steps-i, 0))
	}
	p.face(top, geom.V(0, 0, 1), w.Color, cull, false)
	p.face(bottom, geom.V(0, 0, -1), w.Color, cull, false)

	for i := 0; i < steps; i++ {
		mid := w.Start + angle*(float64(i)+0.5)/float64(steps)
		quad := []geom.Vec3{arc(i, 0), arc(i+1, 0), arc(i+1, w.Depth), arc(i, w.Depth)}
		p.face(quad, geom.V(math.Cos(mid), math.Sin(mid), 0), w.Color, cull, false)
	}

	s, e := w.Start, w.End
	origin, originTop := geom.V(0, 0, 0), geom.V(0, 0, w.Depth)
	p.face([]geom.Vec3{origin, arc(0, 0), arc(0, w.Depth), originTop},
		geom.V(math.Sin(s), -math.Cos(s), 0), w.Color, cull, false)
	p.face([]geom.Vec3{origin, originTop, arc(steps, w.Depth), arc(steps, 0)},
		geom.V(-math.Sin(e), math.Cos(e), 0), w.Color, cull, false)
}

func (p *painter) mesh(m *geom.Mesh) {
	for t := 0; t+2 < len(m.Indices); t += 3 {
		a, b, c := int(m.Indices[t]), int(m.Indices[t+1]), int(m.Indices[t+2])
		n := m.Normal(a).Add(m.Normal(b)).Add(m.Normal(c))
		col := geom.RGB(
			(m.Colors[3*a]+m.Colors[3*b]+m.Colors[3*c])/3,
			(m.Colors[3*a+1]+m.Colors[3*b+1]+m.Colors[3*c+1])/3,
			(m.Colors[3*a+2]+m.Colors[3*b+2]+m.Colors[3*c+2])/3,
		)
		p.face([]geom.Vec3{m.Vertex(a), m.Vertex(b), m.Vertex(c)}, n, col, false, true)
	}
}

func (p *painter) text(t geom.Text, halo bool) {
	if t.Content == "" {
		return
	}
	x, y, d, ok := p.cam.project(p.world(t.Position))
	if !ok {
		return
	}
	size := t.FontSize
	if size <= 0 {
		size = 0.3
	}
	style := fmt.Sprintf("font-size:%.1fpx;dominant-baseline:%s", size*p.cam.focal/d, baseline(t.Anchor))
	if halo {
		style += ";paint-order:stroke;stroke:#ffffff;stroke-width:3px"
	}
	content := t.Content
	p.labels = append(p.labels, drawable{
		depth: d,
		draw:  func(canvas *svg.SVG) { canvas.Text(px(x), px(y), content, style) },
	})
}

func baseline(anchor string) string {
	switch anchor {
	case geom.AnchorTop:
		return "hanging"
	case geom.AnchorBottom:
		return "text-after-edge"
	default:
		return "middle"
	}
}
