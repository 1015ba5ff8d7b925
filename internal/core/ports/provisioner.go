package ports

import (
	"context"

	"go.trai.ch/stoke/internal/core/domain"
)

// RuntimeProvisioner makes the managed JVM runtime available to tasks.
//
//go:generate mockgen -source=provisioner.go -destination=mocks/mock_provisioner.go -package=mocks
type RuntimeProvisioner interface {
	// State returns the current install state.
	State() domain.InstallState

	// Probe reports whether a runtime answers on the standard lookup path.
	Probe(ctx context.Context) bool

	// EnsureInstallable verifies that a runtime artifact is published for
	// the host platform. Failure is fatal for the requesting task.
	EnsureInstallable() (domain.InstallTarget, error)

	// EnsureInstalled makes a runtime available, downloading and extracting
	// the archive when none is present. Repeated calls are cheap once a
	// runtime is known. rationale names the task requesting the install.
	EnsureInstalled(ctx context.Context, rationale string) error

	// RuntimePath returns the runtime executable to spawn. It is valid after
	// EnsureInstalled returned nil.
	RuntimePath() string
}
