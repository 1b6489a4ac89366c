package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/prism/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
chart   = "scatter"
formats = ["svg", "json"]
width   = 1024
seed    = 7
nearest = "kdtree"

[cache]
backend = "redis"
ttl     = "36h"
scope   = "team"

[cache.redis]
addr   = "localhost:6379"
prefix = "prism:"
`)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Chart != "scatter" || cfg.Width != 1024 || cfg.Seed != 7 || cfg.Nearest != "kdtree" {
		t.Errorf("top-level fields not decoded: %+v", cfg)
	}
	if len(cfg.Formats) != 2 || cfg.Formats[1] != "json" {
		t.Errorf("Formats = %v", cfg.Formats)
	}
	if cfg.Cache.Backend != backendRedis || cfg.Cache.TTL.Duration != 36*time.Hour || cfg.Cache.Scope != "team" {
		t.Errorf("cache section not decoded: %+v", cfg.Cache)
	}
	if cfg.Cache.Redis.Addr != "localhost:6379" || cfg.Cache.Redis.Prefix != "prism:" {
		t.Errorf("redis section not decoded: %+v", cfg.Cache.Redis)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code errors.Code
	}{
		{"unknown key", `colour = "red"`, errors.ErrCodeInvalidConfig},
		{"unknown nested key", "[cache]\nsize = 10", errors.ErrCodeInvalidConfig},
		{"syntax", `chart = `, errors.ErrCodeInvalidConfig},
		{"bad chart", `chart = "radar"`, errors.ErrCodeInvalidConfig},
		{"bad format", `formats = ["gif"]`, errors.ErrCodeInvalidConfig},
		{"bad nearest", `nearest = "octree"`, errors.ErrCodeInvalidConfig},
		{"bad backend", "[cache]\nbackend = \"memcached\"", errors.ErrCodeInvalidConfig},
		{"bad ttl", "[cache]\nttl = \"soon\"", errors.ErrCodeInvalidConfig},
		{"negative size", `width = -1`, errors.ErrCodeInvalidConfig},
		{"bad mongo uri", "[cache.mongo]\nuri = \"http://localhost\"", errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(writeConfig(t, tt.body))
			if !errors.Is(err, tt.code) {
				t.Errorf("loadConfig() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestLoadConfigMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("missing default config should not fail: %v", err)
	}
	if cfg.Chart != "" || cfg.Cache.Backend != "" {
		t.Errorf("expected zero config, got %+v", cfg)
	}

	_, err = loadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing explicit config: error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestOptionsPrecedence(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	c.Config = Config{Chart: "pie", Width: 700, Height: 500, Formats: []string{"json"}, Grid: true}

	var f chartFlags
	cmd := &cobra.Command{Use: "test"}
	f.registerLayout(cmd.Flags())
	f.registerRender(cmd.Flags())
	f.registerCommon(cmd.Flags(), "")
	if err := cmd.ParseFlags([]string{"--width", "1024", "-f", "svg,PNG", "-c", "bar"}); err != nil {
		t.Fatal(err)
	}

	opts := c.options(cmd, &f)
	if opts.Chart != "bar" {
		t.Errorf("Chart = %q, flag should win", opts.Chart)
	}
	if opts.Width != 1024 || opts.Height != 500 {
		t.Errorf("size = %dx%d, want 1024x500", opts.Width, opts.Height)
	}
	if len(opts.Formats) != 2 || opts.Formats[1] != "png" {
		t.Errorf("Formats = %v, want [svg png]", opts.Formats)
	}
	if !opts.Grid {
		t.Error("Grid should come from config")
	}
	if opts.Logger != c.Logger {
		t.Error("options should carry the CLI logger")
	}
}
