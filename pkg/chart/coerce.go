package chart

import (
	"fmt"
	"math/rand/v2"

	"github.com/matzehuels/prism/pkg/record"
)

// Coercion defaults.
const (
	DefaultValue = 0.0
	DefaultSize  = 0.5 // scatter radius when size is missing, zero, negative or not a number
	JitterRange  = 5.0 // scatter jitter is uniform in [-JitterRange, JitterRange]
)

// Option configures Coerce.
type Option func(*coercer)

// WithRand sets the random source for scatter jitter. A nil source uses the
// process-wide generator.
func WithRand(r *rand.Rand) Option {
	return func(c *coercer) { c.rnd = r }
}

// WithSeed is shorthand for WithRand with a PCG source seeded by seed.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

type coercer struct {
	rnd *rand.Rand
}

func (c *coercer) jitter() float64 {
	u := rand.Float64()
	if c.rnd != nil {
		u = c.rnd.Float64()
	}
	return u*2*JitterRange - JitterRange
}

// Coerce converts records into the item shape required by t, in input order.
// It never fails: missing or invalid fields take their documented defaults.
// An unknown t yields an empty Items of that type.
func Coerce(recs []record.Record, t ChartType, opts ...Option) Items {
	c := &coercer{}
	for _, opt := range opts {
		opt(c)
	}

	it := Items{Type: t}
	switch t {
	case Bar, Pie:
		it.Bars = CoerceBars(recs, t.ItemKind())
	case Scatter:
		it.Points = c.scatter(recs)
	case Surface:
		it.Surface = CoerceSurface(recs)
	}
	return it
}

// CoerceBars converts records to label/value items. kind names unlabeled
// items ("Item 3").
func CoerceBars(recs []record.Record, kind string) []BarItem {
	items := make([]BarItem, len(recs))
	for i, rec := range recs {
		value, ok := rec.Float("value")
		if !ok {
			value = DefaultValue
		}
		items[i] = BarItem{Label: label(rec, kind, i), Value: value}
	}
	return items
}

// CoerceScatter converts records to scatter items. Missing coordinates are
// drawn uniformly from [-5, 5] using r, or the process-wide generator when r
// is nil.
func CoerceScatter(recs []record.Record, r *rand.Rand) []ScatterItem {
	return (&coercer{rnd: r}).scatter(recs)
}

func (c *coercer) scatter(recs []record.Record) []ScatterItem {
	items := make([]ScatterItem, len(recs))
	for i, rec := range recs {
		var item ScatterItem
		coord := func(field string) float64 {
			if v, ok := rec.Float(field); ok {
				return v
			}
			item.Jittered = true
			return c.jitter()
		}
		item.X = coord("x")
		item.Y = coord("y")
		item.Z = coord("z")

		item.Size = DefaultSize
		// A sphere radius must be positive, so negative sizes fall back too.
		if s, ok := rec.Float("size"); ok && s > 0 {
			item.Size = s
		}
		item.Label = label(rec, Scatter.ItemKind(), i)
		items[i] = item
	}
	return items
}

// CoerceSurface converts records to surface points. Missing coordinates
// become 0 and mark the point as imputed.
func CoerceSurface(recs []record.Record) []SurfacePoint {
	items := make([]SurfacePoint, len(recs))
	for i, rec := range recs {
		var p SurfacePoint
		coord := func(field string) float64 {
			if v, ok := rec.Float(field); ok {
				return v
			}
			p.Imputed = true
			return 0
		}
		p.X = coord("x")
		p.Y = coord("y")
		p.Z = coord("z")
		items[i] = p
	}
	return items
}

func label(rec record.Record, kind string, i int) string {
	if s, ok := rec.Text("label"); ok {
		return s
	}
	return fmt.Sprintf("%s %d", kind, i+1)
}
