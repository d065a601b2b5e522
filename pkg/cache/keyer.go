package cache

// RenderKeyOpts are the render settings that change the output bytes.
type RenderKeyOpts struct {
	Format string  `json:"format"`
	Layout string  `json:"layout"`
	Scale  float64 `json:"scale"`
}

// Keyer builds cache keys.
type Keyer interface {
	// RenderKey keys a rendered artifact of the graph with the given fingerprint.
	RenderKey(fingerprint string, opts RenderKeyOpts) string

	// DocumentKey keys the serialized document of a graph.
	DocumentKey(fingerprint string) string
}

// DefaultKeyer hashes options into the key so different settings never
// collide.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// RenderKey implements Keyer.
func (DefaultKeyer) RenderKey(fingerprint string, opts RenderKeyOpts) string {
	return hashKey("render", fingerprint, opts)
}

// DocumentKey implements Keyer.
func (DefaultKeyer) DocumentKey(fingerprint string) string {
	return "doc:" + fingerprint
}
