package cache

// ScopedKeyer puts every key of an inner Keyer under a namespace, so that
// several deployments can share one Redis without reading each other's
// entries. The file cache stores namespaced keys in a subdirectory per
// namespace.
type ScopedKeyer struct {
	inner     Keyer
	namespace string
}

// NewScopedKeyer scopes inner, or the default keyer when inner is nil, to
// namespace. Keys become "<namespace>:<key>".
func NewScopedKeyer(inner Keyer, namespace string) *ScopedKeyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, namespace: namespace}
}

// Namespace returns the namespace keys are scoped to.
func (k *ScopedKeyer) Namespace() string { return k.namespace }

func (k *ScopedKeyer) scope(key string) string { return k.namespace + ":" + key }

func (k *ScopedKeyer) SolveKey(sceneHash string, opts SolveKeyOpts) string {
	return k.scope(k.inner.SolveKey(sceneHash, opts))
}

func (k *ScopedKeyer) GraphKey(sceneHash string, opts GraphKeyOpts) string {
	return k.scope(k.inner.GraphKey(sceneHash, opts))
}

func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.scope(k.inner.ArtifactKey(layoutHash, opts))
}

var _ Keyer = (*ScopedKeyer)(nil)
