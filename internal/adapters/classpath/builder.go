// Package classpath assembles JVM classpaths from toolchain jars,
// resolved artifacts and source directories.
package classpath

import (
	"context"
	"runtime"
	"strings"

	"go.trai.ch/stoke/internal/core/domain"
	"go.trai.ch/stoke/internal/core/ports"
)

// Builder implements ports.ClasspathBuilder.
type Builder struct {
	store ports.ConfigStore
	cache ports.DependencyCache
	goos  string
}

// NewBuilder creates a builder targeting the current OS.
func NewBuilder(store ports.ConfigStore, cache ports.DependencyCache) *Builder {
	return &Builder{store: store, cache: cache, goos: runtime.GOOS}
}

// Build joins toolchain jars, resolved artifacts and source directories
// with the target OS path list separator, in that order.
func (b *Builder) Build(ctx context.Context, sources []string, includeToolchain bool) (string, error) {
	artifacts, err := b.cache.Artifacts(ctx)
	if err != nil {
		return "", err
	}

	entries := make([]string, 0, len(artifacts)+len(sources)+2)
	if includeToolchain {
		cfg := b.store.Current()
		if cfg == nil {
			return "", domain.ErrConfigNotFound
		}
		entries = append(entries,
			domain.CompilerJarPath(cfg.CompilerVersion),
			domain.RunnerJarPath(cfg.ToolchainVersion),
		)
	}
	entries = append(entries, artifacts...)
	entries = append(entries, sources...)

	return strings.Join(entries, separator(b.goos)), nil
}

// separator returns the JVM path list separator for the target OS.
func separator(goos string) string {
	if goos == "windows" {
		return ";"
	}

	return ":"
}
