package cache

// Keyer derives cache keys for each pipeline stage.
type Keyer interface {
	// LayoutKey keys a scene computed from input records.
	LayoutKey(recordsHash string, opts LayoutKeyOpts) string
	// ArtifactKey keys a rendered output of a scene.
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds the options that change a computed scene.
type LayoutKeyOpts struct {
	Chart string `json:"chart"`
	Seed  uint64 `json:"seed,omitempty"`
}

// ArtifactKeyOpts holds the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Width  int     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
	Grid   bool    `json:"grid,omitempty"`
	Scale  float64 `json:"scale,omitempty"`
	Title  string  `json:"title,omitempty"`
}

// DefaultKeyer produces unscoped keys of the form "<stage>:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements [Keyer].
func (DefaultKeyer) LayoutKey(recordsHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", recordsHash, opts)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sceneHash, opts)
}
