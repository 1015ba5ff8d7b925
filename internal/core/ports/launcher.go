package ports

import "context"

// ManagedSpec describes one managed runtime invocation.
type ManagedSpec struct {
	// Runtime is the JVM executable to spawn.
	Runtime string

	// Classpath is passed to the runtime via -cp.
	Classpath string

	// Payload is the serialized init document following the init flag.
	Payload string

	// Script is the runner script resource or user script path.
	Script string

	// Args are passthrough arguments appended after the script.
	Args []string

	// UsePTY runs the child on a pseudo-terminal owned by the caller,
	// so the caller can interrupt and restart it without losing the
	// surrounding terminal.
	UsePTY bool
}

// Handle refers to a spawned child process.
type Handle interface {
	// Interrupt asks the child to stop.
	Interrupt() error

	// Kill terminates the child immediately.
	Kill() error

	// Wait blocks until the child exits. A nonzero exit surfaces as a
	// *domain.ExitError.
	Wait() error
}

// Launcher spawns toolchain child processes.
//
//go:generate mockgen -source=launcher.go -destination=mocks/mock_launcher.go -package=mocks
type Launcher interface {
	// StartManaged spawns the managed runtime and returns without waiting.
	// The child inherits the surrounding terminal unless UsePTY is set.
	StartManaged(ctx context.Context, spec ManagedSpec) (Handle, error)

	// RunLightweight runs the lightweight interpreter synchronously.
	// classpath is empty when no configuration is loaded and is then not
	// passed to the interpreter.
	RunLightweight(ctx context.Context, classpath string, args []string) error
}
