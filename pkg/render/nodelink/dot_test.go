package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/prism/pkg/chart"
	"github.com/matzehuels/prism/pkg/geom"
	"github.com/matzehuels/prism/pkg/layout"
)

func barScene() geom.Scene {
	return layout.Bars([]chart.BarItem{
		{Label: "North", Value: 10},
		{Label: "South", Value: 20},
	})
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(barScene(), Options{})

	for _, want := range []string{
		"digraph G {",
		`"scene" -> "bar0";`,
		`"scene" -> "bar1";`,
		`"bar0" -> "bar0_caption"`,
		`"bar1" -> "bar1_value"`,
		`fillcolor="#4361ee"`,
		`fillcolor="#3a0ca3"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "center:") {
		t.Error("non-detailed DOT should not include positions")
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(barScene(), Options{Detailed: true})
	for _, want := range []string{"center: (", "size: (", "color: #4361ee"} {
		if !strings.Contains(dot, want) {
			t.Errorf("detailed DOT missing %q", want)
		}
	}
}

func TestToDOTCharts(t *testing.T) {
	tests := []struct {
		name  string
		scene geom.Scene
		want  []string
	}{
		{
			name: "scatter",
			scene: layout.Scatter([]chart.ScatterItem{
				{X: 1, Y: 2, Z: 3, Size: 0.5, Label: "A"},
				{X: 0, Y: 0, Z: 0, Size: 0.5, Jittered: true},
			}),
			want: []string{`"scene" -> "axis0"`, `"scene" -> "point1"`, `point 1 *`, `"point0" -> "point0_label"`},
		},
		{
			name:  "pie",
			scene: layout.Pie([]chart.BarItem{{Label: "A", Value: 1}, {Label: "B", Value: 3}}),
			want:  []string{`"scene" -> "wedge0"`, `75.0%`, "tilt "},
		},
		{
			name:  "surface",
			scene: layout.Surface(nil),
			want:  []string{`"scene" -> "mesh"`, "mesh (analytic)", "121 vertices", "200 triangles"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dot := ToDOT(tt.scene, Options{})
			for _, want := range tt.want {
				if !strings.Contains(dot, want) {
					t.Errorf("DOT missing %q:\n%s", want, dot)
				}
			}
		})
	}
}

func TestToDOTEscapesLabels(t *testing.T) {
	dot := ToDOT(layout.Bars([]chart.BarItem{{Label: `say "hi"`, Value: 1}}), Options{})
	if !strings.Contains(dot, `say \"hi\"`) {
		t.Errorf("quotes should be escaped:\n%s", dot)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(barScene(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	out := string(svg)
	if !strings.Contains(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `) {
		t.Errorf("viewBox not normalized:\n%.300s", out)
	}
	if !strings.Contains(out, "North") {
		t.Error("SVG should contain bar labels")
	}
}

func TestRenderSVGInvalidDOT(t *testing.T) {
	if _, err := RenderSVG(context.Background(), "digraph {"); err == nil {
		t.Error("expected error for malformed DOT")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="44pt" viewBox="0.00 0.00 62.00 44.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 44.00" width="62" height="44"><g/></svg>`
	if out != want {
		t.Errorf("got %s\nwant %s", out, want)
	}

	if got := normalizeViewBox([]byte("<svg/>")); string(got) != "<svg/>" {
		t.Errorf("input without viewBox should be unchanged, got %s", got)
	}
}
