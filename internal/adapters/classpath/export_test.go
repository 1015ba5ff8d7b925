package classpath

import "go.trai.ch/stoke/internal/core/ports"

// NewBuilderForOS creates a builder with an explicit target OS for tests.
func NewBuilderForOS(goos string, store ports.ConfigStore, cache ports.DependencyCache) *Builder {
	b := NewBuilder(store, cache)
	b.goos = goos

	return b
}
