package record

import (
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/prism/pkg/errors"
)

var samples = map[string]func() []Record{
	"bar":     sampleBar,
	"scatter": sampleScatter,
	"pie":     samplePie,
	"surface": sampleSurface,
}

// SampleNames lists the built-in datasets.
func SampleNames() []string {
	names := make([]string, 0, len(samples))
	for k := range samples {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// Sample returns a fresh copy of the named built-in dataset. Names match
// chart types; a trailing "3d" is accepted ("bar3d").
func Sample(name string) ([]Record, error) {
	key := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(name)), "3d")
	fn, ok := samples[key]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidChartType,
			"no sample named %q (available: %s)", name, strings.Join(SampleNames(), ", "))
	}
	return fn(), nil
}

func sampleBar() []Record {
	return labelled([]string{"Product A", "Product B", "Product C", "Product D", "Product E"},
		[]float64{42, 78, 35, 62, 91})
}

func samplePie() []Record {
	return labelled([]string{"Segment A", "Segment B", "Segment C", "Segment D", "Segment E"},
		[]float64{30, 25, 15, 20, 10})
}

func labelled(labels []string, values []float64) []Record {
	recs := make([]Record, len(labels))
	for i := range labels {
		recs[i] = Record{"label": String(labels[i]), "value": Number(values[i])}
	}
	return recs
}

func sampleScatter() []Record {
	pts := [][4]float64{
		{1, 2, 3, 0.5},
		{2, 3, 1, 0.7},
		{3, 1, 2, 0.6},
		{-2, -1, -3, 0.8},
		{-1, -3, -2, 0.5},
	}
	recs := make([]Record, len(pts))
	for i, p := range pts {
		recs[i] = Record{
			"x":     Number(p[0]),
			"y":     Number(p[1]),
			"z":     Number(p[2]),
			"size":  Number(p[3]),
			"label": String("Point " + string(rune('1'+i))),
		}
	}
	return recs
}

// sampleSurface is a 7x7 grid over [-4.5, 4.5]² sampling a saddle with a
// ripple, rounded to two decimals so the CSV form stays readable.
func sampleSurface() []Record {
	const n = 7
	recs := make([]Record, 0, n*n)
	for iz := range n {
		z := -4.5 + float64(iz)*1.5
		for ix := range n {
			x := -4.5 + float64(ix)*1.5
			y := (x*x-z*z)/8 + math.Sin(x)*0.5
			recs = append(recs, Record{
				"x": Number(x),
				"y": Number(math.Round(y*100) / 100),
				"z": Number(z),
			})
		}
	}
	return recs
}
