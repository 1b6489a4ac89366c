package geom

import (
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/prism/pkg/errors"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestVec3JSON(t *testing.T) {
	data, err := V(1, -2.5, 3).MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[1,-2.5,3]" {
		t.Errorf("MarshalJSON = %s", data)
	}

	var v Vec3
	if err := v.UnmarshalJSON([]byte("[4,5,6]")); err != nil {
		t.Fatal(err)
	}
	if v != V(4, 5, 6) {
		t.Errorf("UnmarshalJSON = %v", v)
	}
	if err := v.UnmarshalJSON([]byte("[1,2]")); err == nil {
		t.Error("two-element array should fail")
	}
}

func TestVec3RotateX(t *testing.T) {
	got := V(0, 1, 0).RotateX(math.Pi / 2)
	if !approx(got.X, 0) || !approx(got.Y, 0) || !approx(got.Z, 1) {
		t.Errorf("RotateX(π/2) of +Y = %v, want +Z", got)
	}
	if V(1, 2, 3).RotateX(0) != V(1, 2, 3) {
		t.Error("zero rotation should be identity")
	}
}

func TestVec3Arithmetic(t *testing.T) {
	a, b := V(1, 2, 3), V(4, 6, 3)
	if a.Add(b) != V(5, 8, 6) {
		t.Errorf("Add = %v", a.Add(b))
	}
	if b.Sub(a).Len() != 5 {
		t.Errorf("Sub().Len() = %v, want 5", b.Sub(a).Len())
	}
	if a.Scale(2) != V(2, 4, 6) {
		t.Errorf("Scale = %v", a.Scale(2))
	}
}

func TestColor(t *testing.T) {
	c := MustHex("#4361ee")
	if c.Hex() != "#4361ee" {
		t.Errorf("Hex() = %s", c.Hex())
	}
	if RGB(0, 2, -1).Hex() != "#00ff00" {
		t.Errorf("RGB should clamp, got %s", RGB(0, 2, -1).Hex())
	}
	if _, err := Hex("blue"); err == nil {
		t.Error("Hex(blue) should fail")
	}

	var back Color
	if err := back.UnmarshalJSON([]byte(`"#f72585"`)); err != nil {
		t.Fatal(err)
	}
	if back.Hex() != "#f72585" {
		t.Errorf("round trip = %s", back.Hex())
	}
}

func TestComputeNormalsFlat(t *testing.T) {
	// Unit square in the XZ plane, wound so the face normal is +Y.
	pos := []float64{
		0, 0, 0,
		0, 0, 1,
		1, 0, 1,
		1, 0, 0,
	}
	idx := []uint32{0, 1, 3, 1, 2, 3}
	n := ComputeNormals(pos, idx)
	for i := 0; i < 4; i++ {
		if !approx(n[3*i], 0) || !approx(n[3*i+1], 1) || !approx(n[3*i+2], 0) {
			t.Errorf("normal %d = %v, want (0,1,0)", i, n[3*i:3*i+3])
		}
	}
}

func TestComputeNormalsDegenerate(t *testing.T) {
	pos := []float64{0, 0, 0, 1, 0, 0, 2, 0, 0, 5, 5, 5}
	n := ComputeNormals(pos, []uint32{0, 1, 2})
	for i := 0; i < 4; i++ {
		if n[3*i+1] != 1 {
			t.Errorf("degenerate/unused vertex %d normal = %v, want (0,1,0)", i, n[3*i:3*i+3])
		}
	}
}

func TestSceneRoundTrip(t *testing.T) {
	s := Scene{
		Chart: ChartPie,
		Tilt:  -math.Pi / 4,
		Wedges: []Wedge{{
			Index: 0, Label: "A", Value: 30, Percentage: 0.375,
			Start: 0, End: 0.75 * math.Pi, Radius: 2, Depth: 0.5,
			Color: MustHex("#4361ee"),
			Text:  &Text{Content: "A (38%)", Position: V(1, 0.3, 2)},
		}},
	}
	s.ID = s.Fingerprint()

	path := filepath.Join(t.TempDir(), "scene.json")
	if err := WriteSceneFile(s, path); err != nil {
		t.Fatalf("WriteSceneFile: %v", err)
	}
	back, err := ReadSceneFile(path)
	if err != nil {
		t.Fatalf("ReadSceneFile: %v", err)
	}
	if back.ID != s.ID || back.Fingerprint() != s.ID {
		t.Errorf("ID changed across round trip: %s -> %s", s.ID, back.ID)
	}
	if back.Wedges[0].Text.Content != "A (38%)" {
		t.Errorf("wedge text = %q", back.Wedges[0].Text.Content)
	}
	if !approx(back.Wedges[0].Mid(), 0.375*math.Pi) {
		t.Errorf("Mid() = %v", back.Wedges[0].Mid())
	}
}

func TestFingerprint(t *testing.T) {
	a := Scene{Chart: ChartBar, Bars: []Bar{{Label: "A", Value: 1}}}
	b := Scene{Chart: ChartBar, Bars: []Bar{{Label: "A", Value: 2}}}
	if a.Fingerprint() == b.Fingerprint() {
		t.Error("different content should produce different fingerprints")
	}
	a2 := a
	a2.ID = "ignored"
	if a.Fingerprint() != a2.Fingerprint() {
		t.Error("fingerprint should ignore ID")
	}
}

func TestUnmarshalSceneErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", `nope`},
		{"unknown chart", `{"chart": "radar"}`},
		{"surface without mesh", `{"chart": "surface"}`},
		{"ragged mesh", `{"chart": "surface", "surface": {"positions": [0,0,0], "normals": [], "colors": [], "indices": []}}`},
		{"bad index", `{"chart": "surface", "surface": {"positions": [0,0,0], "normals": [0,1,0], "colors": [0,0,0], "indices": [0,0,1]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalScene([]byte(tt.input))
			if !errors.Is(err, errors.ErrCodeInvalidScene) {
				t.Errorf("error = %v, want INVALID_SCENE", err)
			}
		})
	}
}

func TestReadSceneFileMissing(t *testing.T) {
	_, err := ReadSceneFile(filepath.Join(t.TempDir(), "none.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestMarshalSceneShape(t *testing.T) {
	s := Scene{Chart: ChartScatter, Points: []Point{{Center: V(1, 2, 3), Radius: 0.5, Color: MustHex("#3a0ca3")}}}
	data, err := MarshalScene(s)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	for _, want := range []string{`"chart": "scatter"`, `"center": [`, `"color": "#3a0ca3"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s:\n%s", want, out)
		}
	}
}
