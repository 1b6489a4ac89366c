package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/prism/pkg/errors"
	"github.com/matzehuels/prism/pkg/geom"
	"github.com/matzehuels/prism/pkg/render"
)

// Options configures scene-tree diagram rendering.
type Options struct {
	// Detailed adds positions, sizes and colors to element labels.
	// When false, only the element name and value are shown.
	Detailed bool
}

const rootID = "scene"

// ToDOT converts a scene to Graphviz DOT format. The diagram is a tree: the
// scene root, one node per chart element, and one leaf per text label.
// Element nodes are filled with the element's color.
//
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT(s geom.Scene, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.2;\n")
	buf.WriteString("\n")

	w := &writer{buf: &buf, detailed: opts.Detailed}
	w.node(rootID, rootLabel(s), "fillcolor=\"#eff6ff\"", "penwidth=2")

	switch s.Chart {
	case geom.ChartBar:
		for _, b := range s.Bars {
			id := fmt.Sprintf("bar%d", b.Index)
			w.element(id, fmt.Sprintf("%s\n%s", b.Label, formatFloat(b.Value)), b.Box.Color,
				"center: "+formatVec(b.Box.Center), "size: "+formatVec(b.Box.Size))
			w.text(id, "caption", b.Caption)
			w.text(id, "value", b.ValueText)
		}
	case geom.ChartScatter:
		for i, a := range s.Axes {
			w.element(fmt.Sprintf("axis%d", i), "axis "+string(rune('x'+i)), a.Color,
				"size: "+formatVec(a.Size))
		}
		for _, p := range s.Points {
			id := fmt.Sprintf("point%d", p.Index)
			name := fmt.Sprintf("point %d", p.Index)
			if p.Jittered {
				name += " *"
			}
			w.element(id, name, p.Color,
				"center: "+formatVec(p.Center), "radius: "+formatFloat(p.Radius))
			if p.Label != nil {
				w.text(id, "label", *p.Label)
			}
		}
	case geom.ChartPie:
		for _, wd := range s.Wedges {
			id := fmt.Sprintf("wedge%d", wd.Index)
			w.element(id, fmt.Sprintf("%s\n%.1f%%", wd.Label, wd.Percentage*100), wd.Color,
				fmt.Sprintf("arc: %s..%s", formatFloat(wd.Start), formatFloat(wd.End)))
			if wd.Text != nil {
				w.text(id, "label", *wd.Text)
			}
		}
	case geom.ChartSurface:
		if m := s.Surface; m != nil {
			w.node("mesh", fmt.Sprintf("mesh (%s)\n%d vertices\n%d triangles", m.Mode, m.VertexCount(), m.TriangleCount()))
			w.edge(rootID, "mesh")
			if opts.Detailed {
				w.node("mesh_grid", fmt.Sprintf("%d x %d segments\n%s x %s",
					m.Segments, m.Segments, formatFloat(m.Width), formatFloat(m.Depth)),
					"shape=note", "fillcolor=\"#faf5ff\"")
				w.edge("mesh", "mesh_grid")
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

type writer struct {
	buf      *bytes.Buffer
	detailed bool
}

func (w *writer) node(id, label string, attrs ...string) {
	attrs = append([]string{fmt.Sprintf("label=%q", label)}, attrs...)
	fmt.Fprintf(w.buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))
}

func (w *writer) edge(from, to string) {
	fmt.Fprintf(w.buf, "  %q -> %q;\n", from, to)
}

func (w *writer) element(id, label string, c geom.Color, details ...string) {
	if w.detailed {
		label += "\n" + strings.Join(append(details, "color: "+c.Hex()), "\n")
	}
	attrs := []string{fmt.Sprintf("fillcolor=%q", c.Hex())}
	if dark(c) {
		attrs = append(attrs, "fontcolor=white")
	}
	w.node(id, label, attrs...)
	w.edge(rootID, id)
}

func (w *writer) text(parent, role string, t geom.Text) {
	id := parent + "_" + role
	label := t.Content
	if w.detailed {
		label += "\n" + formatVec(t.Position)
		if t.Anchor != "" {
			label += " " + t.Anchor
		}
	}
	w.node(id, label, "shape=plain", "style=\"\"")
	fmt.Fprintf(w.buf, "  %q -> %q [style=dashed, arrowhead=none];\n", parent, id)
}

func rootLabel(s geom.Scene) string {
	label := fmt.Sprintf("%s chart\n%d elements", s.Chart, s.Len())
	if s.Tilt != 0 {
		label += "\ntilt " + formatFloat(s.Tilt)
	}
	if len(s.ID) >= 8 {
		label += "\n" + s.ID[:8]
	}
	return label
}

// dark reports whether white text reads better than black on c.
func dark(c geom.Color) bool {
	l, _, _ := colorful.Color(c).Lab()
	return l < 0.55
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func formatVec(v geom.Vec3) string {
	return fmt.Sprintf("(%s, %s, %s)", formatFloat(v.X), formatFloat(v.Y), formatFloat(v.Z))
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render graphviz")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root tag so the diagram scales with its
// container; Graphviz emits a pt-sized canvas with a translated viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
