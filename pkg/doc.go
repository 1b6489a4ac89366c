// Package pkg provides the core libraries for Prism 3D chart generation.
//
// # Overview
//
// Prism turns loosely typed tabular records into 3D scene descriptors for
// bar, scatter, pie and surface charts. A scene is pure geometry (boxes,
// spheres, extruded wedges, triangle meshes, text anchors) that any 3D
// engine can draw; prism itself only renders static previews.
//
// # Architecture
//
//	JSON / CSV / YAML file
//	         ↓
//	    [record] package (heterogeneous records)
//	         ↓
//	    [chart] package (coercion to typed items)
//	         ↓
//	    [layout] package (scene construction)
//	         ↓
//	    [geom] scene → [render/sink] (SVG, PNG, PDF, JSON)
//
// The [pipeline] package runs these stages with caching from [cache].
//
// # Quick Start
//
//	recs, _ := record.ImportFile("sales.csv")
//	items := chart.Coerce(recs, chart.Bar)
//	scene, _ := layout.Build(items)
//	svg := sink.RenderSVG(scene, sink.WithGrid())
//
// Or, with caching and every output format at once:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source:  "sales.csv",
//	    Chart:   "bar",
//	    Formats: []string{"svg", "json"},
//	})
//
// # Packages
//
// [record] reads JSON arrays, CSV with a header row and YAML sequences into
// records whose values are numbers or strings, and ships built-in samples.
//
// [chart] defines the chart types and coerces records into items, filling
// missing labels, values and coordinates with documented defaults.
//
// [layout] places items in world space. Every constant of the coordinate
// system lives there.
//
// [geom] holds the scene types, vectors, colors and mesh helpers.
//
// [render/sink] previews scenes through a perspective camera, and
// [render/nodelink] draws a scene's element tree with Graphviz.
//
// [cache] stores computed scenes and artifacts in files, redis or MongoDB.
//
// [observability] exposes hooks for pipeline stages and cache traffic.
//
// [errors] carries machine-readable codes through every package.
//
// [record]: https://pkg.go.dev/github.com/matzehuels/prism/pkg/record
// [chart]: https://pkg.go.dev/github.com/matzehuels/prism/pkg/chart
// [layout]: https://pkg.go.dev/github.com/matzehuels/prism/pkg/layout
// [geom]: https://pkg.go.dev/github.com/matzehuels/prism/pkg/geom
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/prism/pkg/render/sink
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/prism/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/prism/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/prism/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/prism/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/prism/pkg/errors
package pkg
