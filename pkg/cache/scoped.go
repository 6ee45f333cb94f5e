package cache

// ScopedKeyer wraps a Keyer with a prefix so that several deployments can
// share one backend:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "flighttree:staging:")
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

// DatasetKey generates a prefixed dataset key.
func (k *ScopedKeyer) DatasetKey(id string) string {
	return k.prefix + k.inner.DatasetKey(id)
}

// IndexKey generates a prefixed index key.
func (k *ScopedKeyer) IndexKey() string {
	return k.prefix + k.inner.IndexKey()
}
