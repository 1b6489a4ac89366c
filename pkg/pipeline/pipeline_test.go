package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/prism/pkg/cache"
	"github.com/matzehuels/prism/pkg/errors"
	"github.com/matzehuels/prism/pkg/geom"
	"github.com/matzehuels/prism/pkg/record"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && errors.GetCode(err) != errors.ErrCodeInvalidFormat {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("empty formats should pass: %v", err)
	}
}

func TestValidateChart(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"bar", "bar", false},
		{"Pie3D", "pie", false},
		{"surface", "surface", false},
		{"donut", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ValidateChart(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ValidateChart(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Source: "data.csv", Chart: "Bar"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.Chart != "bar" {
		t.Errorf("Chart = %q, want canonical bar", opts.Chart)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Width != DefaultWidth || opts.Height != DefaultHeight || opts.Scale != DefaultScale {
		t.Errorf("size defaults not applied: %+v", opts)
	}
	if opts.Nearest != "auto" {
		t.Errorf("Nearest = %q, want auto", opts.Nearest)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discarding logger")
	}

	missing := Options{Chart: "bar"}
	if err := missing.ValidateAndSetDefaults(); err == nil {
		t.Error("missing source should fail")
	}
	badNearest := Options{Source: "x.csv", Chart: "surface", Nearest: "octree"}
	if err := badNearest.ValidateAndSetDefaults(); err == nil {
		t.Error("unknown nearest strategy should fail")
	}
}

func TestReproducible(t *testing.T) {
	tests := []struct {
		opts Options
		want bool
	}{
		{Options{Chart: "bar"}, true},
		{Options{Chart: "scatter"}, false},
		{Options{Chart: "scatter", Seed: 7}, true},
	}
	for _, tt := range tests {
		if got := tt.opts.Reproducible(); got != tt.want {
			t.Errorf("%+v Reproducible = %v, want %v", tt.opts, got, tt.want)
		}
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Width: 640, Height: 480, Grid: true, Scale: 3, Title: "t"}
	if k := opts.ArtifactKeyOpts(FormatJSON); k.Width != 0 || k.Grid || k.Scale != 0 {
		t.Errorf("JSON artifacts should not depend on preview options: %+v", k)
	}
	if k := opts.ArtifactKeyOpts(FormatSVG); k.Width != 640 || !k.Grid || k.Scale != 0 || k.Title != "t" {
		t.Errorf("SVG key opts = %+v", k)
	}
	if k := opts.ArtifactKeyOpts(FormatPNG); k.Scale != 3 {
		t.Errorf("PNG key should include scale: %+v", k)
	}
}

// memCache is a Cache that counts operations.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	gets int
	sets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.data[key] = data
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

func writeSample(t *testing.T, name string) string {
	t.Helper()
	recs, err := record.Sample(name)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), name+".json")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := record.WriteJSON(f, recs); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExecute(t *testing.T) {
	for _, name := range []string{"bar", "scatter", "pie", "surface"} {
		t.Run(name, func(t *testing.T) {
			runner := NewRunner(nil, nil, nil)
			result, err := runner.Execute(context.Background(), Options{
				Source:  writeSample(t, name),
				Chart:   name,
				Seed:    1,
				Formats: []string{FormatSVG, FormatJSON},
			})
			if err != nil {
				t.Fatalf("Execute: %v", err)
			}
			if result.Scene.Chart != name {
				t.Errorf("scene chart = %q", result.Scene.Chart)
			}
			if result.Stats.Records == 0 || result.Stats.Elements == 0 {
				t.Errorf("stats not filled: %+v", result.Stats)
			}
			if !strings.Contains(string(result.Artifacts[FormatSVG]), "<svg") {
				t.Error("missing SVG artifact")
			}
			scene, err := geom.UnmarshalScene(result.Artifacts[FormatJSON])
			if err != nil {
				t.Fatalf("JSON artifact: %v", err)
			}
			if scene.ID != result.Scene.ID {
				t.Error("JSON artifact should describe the computed scene")
			}
		})
	}
}

func TestExecuteErrors(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	ctx := context.Background()

	_, err := runner.Execute(ctx, Options{Source: filepath.Join(t.TempDir(), "missing.csv"), Chart: "bar"})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file: got %v", err)
	}

	_, err = runner.Execute(ctx, Options{Source: "data.csv", Chart: "donut"})
	if !errors.Is(err, errors.ErrCodeInvalidChartType) {
		t.Errorf("bad chart: got %v", err)
	}
}

func TestRunnerCachesLayoutAndArtifacts(t *testing.T) {
	mc := newMemCache()
	runner := NewRunner(mc, nil, nil)
	ctx := context.Background()
	opts := Options{Source: writeSample(t, "pie"), Chart: "pie", Formats: []string{FormatSVG}}

	first, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Error("first run should miss")
	}
	if mc.sets != 2 {
		t.Errorf("sets = %d, want scene + svg", mc.sets)
	}

	second, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit: %+v", second.CacheInfo)
	}
	if second.Scene.ID != first.Scene.ID {
		t.Error("cached scene differs")
	}
	if string(second.Artifacts[FormatSVG]) != string(first.Artifacts[FormatSVG]) {
		t.Error("cached SVG differs")
	}

	opts.Grid = true
	third, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Errorf("changing the grid should only miss the artifact: %+v", third.CacheInfo)
	}
}

func TestRunnerSkipsCache(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"no cache", Options{Chart: "bar", NoCache: true}},
		{"unseeded scatter", Options{Chart: "scatter", Formats: []string{FormatJSON}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mc := newMemCache()
			runner := NewRunner(mc, nil, nil)
			tt.opts.Source = writeSample(t, tt.opts.Chart)
			if _, err := runner.Execute(context.Background(), tt.opts); err != nil {
				t.Fatal(err)
			}
			if mc.sets != 0 {
				t.Errorf("sets = %d, want 0", mc.sets)
			}
		})
	}
}

func TestLayoutIsDeterministicForSeed(t *testing.T) {
	recs := []record.Record{{"label": record.String("gap")}}
	opts := Options{Chart: "scatter", Seed: 99}
	if err := opts.ValidateForLayout(); err != nil {
		t.Fatal(err)
	}
	a, err := GenerateLayout(recs, opts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := GenerateLayout(recs, opts)
	if err != nil {
		t.Fatal(err)
	}
	if a.Points[0].Center != b.Points[0].Center {
		t.Error("same seed should jitter identically")
	}
	if !a.Points[0].Jittered {
		t.Error("missing coordinates should be jittered")
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := RenderFormat(context.Background(), geom.Scene{Chart: geom.ChartBar}, "gif", Options{})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("got %v, want INVALID_FORMAT", err)
	}
}

var _ cache.Cache = (*memCache)(nil)
