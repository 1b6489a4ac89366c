package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/prism/pkg/cache"
	"github.com/matzehuels/prism/pkg/geom"
	"github.com/matzehuels/prism/pkg/observability"
	"github.com/matzehuels/prism/pkg/record"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the default lifetime of cached scenes and artifacts
	// when positive.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// The cache is instrumented so lookups reach the registered cache hooks.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  cache.Instrument(c),
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete ingest → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Ingest
	ingestStart := time.Now()
	recs, err := r.Ingest(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}
	result.Records = recs
	result.Stats.Records = len(recs)
	result.Stats.IngestTime = time.Since(ingestStart)

	opts.Logger.Info("ingested records",
		"source", opts.Source,
		"records", len(recs),
		"duration", result.Stats.IngestTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	scene, layoutHit, err := r.LayoutWithCacheInfo(ctx, recs, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Scene = scene
	result.Stats.Elements = scene.Len()
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	opts.Logger.Info("computed scene",
		"chart", scene.Chart,
		"elements", scene.Len(),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, scene, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Ingest reads the input records and reports the stage to the pipeline hooks.
func (r *Runner) Ingest(ctx context.Context, opts Options) ([]record.Record, error) {
	hooks := observability.Pipeline()
	hooks.OnIngestStart(ctx, opts.Source)
	start := time.Now()
	recs, err := Ingest(opts)
	hooks.OnIngestComplete(ctx, opts.Source, len(recs), time.Since(start), err)
	return recs, err
}

// LayoutWithCacheInfo computes the scene with caching and returns cache hit
// info. Scenes are keyed by the content of the records, so renaming or
// touching the input file does not invalidate them.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, recs []record.Record, opts Options) (geom.Scene, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return geom.Scene{}, false, err
	}

	useCache := !opts.NoCache && opts.Reproducible()
	var cacheKey string
	if useCache {
		data, err := json.Marshal(recs)
		if err != nil {
			return geom.Scene{}, false, err
		}
		cacheKey = r.Keyer.LayoutKey(cache.Hash(data), opts.LayoutKeyOpts())

		if data, hit, err := r.Cache.Get(ctx, cacheKey); err != nil {
			opts.Logger.Warn("cache read failed", "err", err)
		} else if hit {
			if scene, err := geom.UnmarshalScene(data); err == nil {
				return scene, true, nil
			}
			// Undecodable entries fall through to recompute
		}
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.Chart, len(recs))
	start := time.Now()
	scene, err := GenerateLayout(recs, opts)
	hooks.OnLayoutComplete(ctx, opts.Chart, time.Since(start), err)
	if err != nil {
		return geom.Scene{}, false, err
	}

	if useCache {
		if data, err := geom.MarshalScene(scene); err == nil {
			if err := r.Cache.Set(ctx, cacheKey, data, r.ttl(cache.TTLLayout)); err != nil {
				opts.Logger.Warn("cache write failed", "err", err)
			}
		}
	}
	return scene, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Layout(ctx context.Context, recs []record.Record, opts Options) (geom.Scene, error) {
	scene, _, err := r.LayoutWithCacheInfo(ctx, recs, opts)
	return scene, err
}

// RenderWithCacheInfo generates artifacts with caching and returns whether
// every artifact came from cache. Formats already cached are not rendered
// again. JSON artifacts embed the source path and are always rendered.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, s geom.Scene, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	sceneHash := s.ID
	if sceneHash == "" {
		sceneHash = s.Fingerprint()
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if opts.NoCache || format == FormatJSON {
			missing = append(missing, format)
			continue
		}
		key := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			artifacts[format] = data
		} else {
			missing = append(missing, format)
		}
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, missing)
	start := time.Now()
	var renderErr error
	for _, format := range missing {
		data, err := RenderFormat(ctx, s, format, opts)
		if err != nil {
			renderErr = fmt.Errorf("render %s: %w", format, err)
			break
		}
		artifacts[format] = data

		if opts.NoCache || format == FormatJSON {
			continue
		}
		key := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, r.ttl(cache.TTLArtifact)); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "err", err)
		}
	}
	hooks.OnRenderComplete(ctx, missing, time.Since(start), renderErr)
	if renderErr != nil {
		return nil, false, renderErr
	}
	return artifacts, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Render(ctx context.Context, s geom.Scene, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, s, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
