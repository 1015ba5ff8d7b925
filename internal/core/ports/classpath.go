package ports

import "context"

// ClasspathBuilder assembles the JVM classpath for task execution.
//
//go:generate mockgen -source=classpath.go -destination=mocks/mock_classpath.go -package=mocks
type ClasspathBuilder interface {
	// Build joins toolchain jars, resolved artifacts and source directories
	// with the OS-specific path list separator, in that order. The toolchain
	// jars are omitted when includeToolchain is false.
	Build(ctx context.Context, sources []string, includeToolchain bool) (string, error)
}
