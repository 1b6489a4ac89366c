package geom

import (
	"encoding/json"

	"github.com/google/uuid"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Chart kinds. A Scene's Chart field is one of these.
const (
	ChartBar     = "bar"
	ChartScatter = "scatter"
	ChartPie     = "pie"
	ChartSurface = "surface"
)

// Charts lists every chart kind in presentation order.
var Charts = []string{ChartBar, ChartScatter, ChartPie, ChartSurface}

// Text anchors: which edge of the text box sits on the anchor point.
const (
	AnchorTop    = "top"
	AnchorBottom = "bottom"
	AnchorCenter = "center"
)

// sceneNamespace seeds content-derived scene IDs.
var sceneNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/prism/scene"))

// =============================================================================
// Scene - Geometry Descriptor
// =============================================================================

// Scene is the geometry descriptor produced by a layout engine.
//
// This is a discriminated union - check Chart to determine which fields are
// populated:
//
//	bar:     Bars
//	scatter: Points, Axes
//	pie:     Wedges
//	surface: Surface
type Scene struct {
	// Discriminator
	Chart string `json:"chart"`

	// ID is derived from the scene content; equal scenes share an ID.
	ID string `json:"id,omitempty"`

	// Tilt is a rotation about the X axis (radians) applied to the whole scene.
	Tilt float64 `json:"tilt,omitempty"`

	Bars    []Bar   `json:"bars,omitempty"`
	Points  []Point `json:"points,omitempty"`
	Axes    []Box   `json:"axes,omitempty"`
	Wedges  []Wedge `json:"wedges,omitempty"`
	Surface *Mesh   `json:"surface,omitempty"`
}

// IsBar returns true if this is a bar scene.
func (s *Scene) IsBar() bool { return s.Chart == ChartBar }

// IsScatter returns true if this is a scatter scene.
func (s *Scene) IsScatter() bool { return s.Chart == ChartScatter }

// IsPie returns true if this is a pie scene.
func (s *Scene) IsPie() bool { return s.Chart == ChartPie }

// IsSurface returns true if this is a surface scene.
func (s *Scene) IsSurface() bool { return s.Chart == ChartSurface }

// Len returns the number of data-bearing elements: bars, points, wedges,
// or mesh vertices.
func (s *Scene) Len() int {
	switch s.Chart {
	case ChartBar:
		return len(s.Bars)
	case ChartScatter:
		return len(s.Points)
	case ChartPie:
		return len(s.Wedges)
	case ChartSurface:
		if s.Surface != nil {
			return s.Surface.VertexCount()
		}
	}
	return 0
}

// Fingerprint returns a UUID derived from the scene content, excluding ID.
func (s Scene) Fingerprint() string {
	s.ID = ""
	data, err := json.Marshal(s)
	if err != nil {
		return ""
	}
	return uuid.NewSHA1(sceneNamespace, data).String()
}

// =============================================================================
// Primitives
// =============================================================================

// Box is an axis-aligned box.
type Box struct {
	Center Vec3  `json:"center"`
	Size   Vec3  `json:"size"`
	Color  Color `json:"color"`
}

// Text is a billboard label.
type Text struct {
	Content  string  `json:"content"`
	Position Vec3    `json:"position"`
	Anchor   string  `json:"anchor,omitempty"` // "top", "bottom" or "center" (default)
	FontSize float64 `json:"font_size,omitempty"`
}

// =============================================================================
// Chart Elements
// =============================================================================

// Bar is one item of a bar chart.
type Bar struct {
	Index  int     `json:"index"`
	Label  string  `json:"label"`
	Value  float64 `json:"value"`
	Height float64 `json:"height"` // normalized height before the minimum clamp
	Box    Box     `json:"box"`

	Caption   Text `json:"caption"`    // item label, below the bar
	ValueText Text `json:"value_text"` // numeric value, above the bar
}

// Point is one sphere of a scatter chart.
type Point struct {
	Index    int     `json:"index"`
	Center   Vec3    `json:"center"`
	Radius   float64 `json:"radius"`
	Segments int     `json:"segments"`
	Color    Color   `json:"color"`
	Jittered bool    `json:"jittered,omitempty"` // a coordinate was randomly substituted
	Label    *Text   `json:"label,omitempty"`
}

// Wedge is one extruded sector of a pie chart. Angles are radians measured
// in input order from 0; the sector spans [Start, End).
type Wedge struct {
	Index      int     `json:"index"`
	Label      string  `json:"label"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"` // fraction of the total, 0..1
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Radius     float64 `json:"radius"`
	Depth      float64 `json:"depth"`
	Color      Color   `json:"color"`
	Text       *Text   `json:"text,omitempty"`
}

// Angle returns the angular extent of w.
func (w Wedge) Angle() float64 { return w.End - w.Start }

// Mid returns the angular midpoint of w.
func (w Wedge) Mid() float64 { return w.Start + (w.End-w.Start)/2 }

// Surface height modes.
const (
	HeightData     = "data"     // heights taken from the nearest input point
	HeightAnalytic = "analytic" // heights from the fallback formula
)

// Mesh is an indexed triangle mesh with flat per-vertex buffers.
type Mesh struct {
	Segments int     `json:"segments"`
	Width    float64 `json:"width"`
	Depth    float64 `json:"depth"`
	Mode     string  `json:"mode"` // HeightData or HeightAnalytic

	Positions []float64 `json:"positions"` // x, y, z per vertex
	Normals   []float64 `json:"normals"`   // unit normal per vertex
	Colors    []float64 `json:"colors"`    // r, g, b per vertex
	Indices   []uint32  `json:"indices"`   // three per triangle
}

// VertexCount returns the number of vertices in m.
func (m *Mesh) VertexCount() int { return len(m.Positions) / 3 }

// TriangleCount returns the number of triangles in m.
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// Vertex returns the position of vertex i.
func (m *Mesh) Vertex(i int) Vec3 {
	return V(m.Positions[3*i], m.Positions[3*i+1], m.Positions[3*i+2])
}

// Normal returns the normal of vertex i.
func (m *Mesh) Normal(i int) Vec3 {
	return V(m.Normals[3*i], m.Normals[3*i+1], m.Normals[3*i+2])
}

// VertexColor returns the color of vertex i.
func (m *Mesh) VertexColor(i int) Color {
	return RGB(m.Colors[3*i], m.Colors[3*i+1], m.Colors[3*i+2])
}
