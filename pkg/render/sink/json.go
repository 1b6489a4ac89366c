package sink

import (
	"encoding/json"

	"github.com/matzehuels/prism/pkg/geom"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	compact bool
	source  string
	seed    uint64
}

// WithCompact disables indentation.
func WithCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

// WithJSONSource records the input file the scene was built from.
func WithJSONSource(path string) JSONOption { return func(r *jsonRenderer) { r.source = path } }

// WithJSONSeed records the jitter seed used during coercion, so a scatter
// scene can be reproduced.
func WithJSONSeed(seed uint64) JSONOption { return func(r *jsonRenderer) { r.seed = seed } }

type jsonOutput struct {
	geom.Scene
	Source string `json:"source,omitempty"`
	Seed   uint64 `json:"seed,omitempty"`
}

// RenderJSON exports the scene as a JSON document that an external 3D
// renderer can consume directly. The output is readable by
// [geom.UnmarshalScene]; the extra source and seed fields are ignored there.
//
// RenderJSON returns an error only if the scene holds non-finite numbers.
func RenderJSON(s geom.Scene, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{Scene: s, Source: r.source, Seed: r.seed}
	if r.compact {
		return json.Marshal(out)
	}
	return json.MarshalIndent(out, "", "  ")
}
