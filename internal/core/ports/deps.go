package ports

import "context"

// DependencyCache resolves artifact paths for the declared dependencies and
// reuses the persisted record while the declarations are unchanged.
//
//go:generate mockgen -source=deps.go -destination=mocks/mock_deps.go -package=mocks
type DependencyCache interface {
	// Artifacts returns the artifact paths for the current configuration.
	// A valid persisted record answers without invoking the resolver tool.
	Artifacts(ctx context.Context) ([]string, error)

	// Invalidate removes the persisted record, forcing re-resolution on the
	// next Artifacts call.
	Invalidate() error
}
