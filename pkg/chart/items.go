package chart

// BarItem is the coerced shape of a bar or pie record.
type BarItem struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ScatterItem is the coerced shape of a scatter record.
type ScatterItem struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Size  float64 `json:"size"`
	Label string  `json:"label,omitempty"`

	// Jittered is set when any coordinate was randomly substituted.
	Jittered bool `json:"jittered,omitempty"`
}

// SurfacePoint is the coerced shape of a surface record.
type SurfacePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`

	// Imputed is set when any coordinate was missing or invalid and was
	// replaced by 0. A dataset with imputed points uses the analytic surface.
	Imputed bool `json:"imputed,omitempty"`
}

// Items is the coerced view of a record set: Type plus the one slice that
// matches it. Bars holds the items of both bar and pie charts.
type Items struct {
	Type    ChartType      `json:"type"`
	Bars    []BarItem      `json:"bars,omitempty"`
	Points  []ScatterItem  `json:"points,omitempty"`
	Surface []SurfacePoint `json:"surface,omitempty"`
}

// Len returns the number of items for the selected type.
func (it Items) Len() int {
	switch it.Type {
	case Bar, Pie:
		return len(it.Bars)
	case Scatter:
		return len(it.Points)
	case Surface:
		return len(it.Surface)
	}
	return 0
}
