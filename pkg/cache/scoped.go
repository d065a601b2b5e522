package cache

// ScopedKeyer wraps a Keyer with a prefix so separate namespaces can share
// one backend. The CLI scopes by build version, which drops stale renders
// after an upgrade.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), buildinfo.Version+":")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// RenderKey generates a prefixed render key.
func (k *ScopedKeyer) RenderKey(fingerprint string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(fingerprint, opts)
}

// DocumentKey generates a prefixed document key.
func (k *ScopedKeyer) DocumentKey(fingerprint string) string {
	return k.prefix + k.inner.DocumentKey(fingerprint)
}
