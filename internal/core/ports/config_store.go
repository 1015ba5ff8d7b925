// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/stoke/internal/core/domain"
)

// ConfigStore holds the active configuration snapshot and tracks changes
// to the underlying file.
//
//go:generate mockgen -source=config_store.go -destination=mocks/mock_config_store.go -package=mocks
type ConfigStore interface {
	// Load reads stoke.yaml from the project root and installs a new snapshot.
	// A missing file leaves the previous snapshot in place and returns nil.
	Load() (*domain.Config, error)

	// Current returns the active snapshot. It is nil when no configuration
	// has been loaded.
	Current() *domain.Config

	// View returns the dependency-relevant projection for the given build id.
	// The projection is empty when no configuration is loaded.
	View(buildID string) domain.DepView

	// WaitForChange suspends until the configuration file changes in a way
	// that alters the dependency-relevant view for the given build, then
	// returns the reloaded snapshot. Irrelevant edits keep it waiting.
	// Cancelling ctx ends only this wait; the change watch keeps running
	// for later calls on the same store.
	WaitForChange(ctx context.Context, buildID string) (*domain.Config, error)
}
