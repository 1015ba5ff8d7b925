package domain

import (
	"reflect"
	"slices"
)

// Default toolchain pins applied when stoke.yaml omits the versions.
const (
	// DefaultCompilerVersion is the compiler jar version used when none is configured.
	DefaultCompilerVersion = "1.12.42"

	// DefaultToolchainVersion is the runner jar version used when none is configured.
	DefaultToolchainVersion = "2.8.3"
)

// Config is the build configuration loaded from stoke.yaml.
// A Config value is immutable once published by the config store;
// reloads replace the whole snapshot.
type Config struct {
	// Builds maps build ids to their specifications.
	Builds map[string]*BuildSpec `json:"builds"`

	// Dependencies are the artifact coordinates the project depends on.
	Dependencies []string `json:"dependencies"`

	// DevDependencies are additional coordinates for development tasks.
	DevDependencies []string `json:"devDependencies"`

	// CompilerVersion selects the compiler jar. Defaults to DefaultCompilerVersion.
	CompilerVersion string `json:"compiler"`

	// ToolchainVersion selects the runner jar. Defaults to DefaultToolchainVersion.
	ToolchainVersion string `json:"toolchain"`
}

// BuildSpec describes a single named build.
type BuildSpec struct {
	// ID is the build identifier, assigned from the builds map key at load.
	ID string `json:"id"`

	// SourcePaths are the source directories of the build.
	SourcePaths []string `json:"sourcePaths"`

	// Options are opaque compiler options forwarded to the toolchain.
	Options map[string]any `json:"options,omitempty"`
}

// Equal reports whether two build specs are structurally equal.
func (b *BuildSpec) Equal(other *BuildSpec) bool {
	if b == nil || other == nil {
		return b == other
	}
	return b.ID == other.ID &&
		slices.Equal(b.SourcePaths, other.SourcePaths) &&
		reflect.DeepEqual(b.Options, other.Options)
}

// ApplyDefaults fills unset version fields with the built-in pins.
func (c *Config) ApplyDefaults() {
	if c.CompilerVersion == "" {
		c.CompilerVersion = DefaultCompilerVersion
	}
	if c.ToolchainVersion == "" {
		c.ToolchainVersion = DefaultToolchainVersion
	}
}

// BuildIDs returns the configured build ids in sorted order.
func (c *Config) BuildIDs() []string {
	ids := make([]string, 0, len(c.Builds))
	for id := range c.Builds {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// DepSet returns the dependency declarations of the configuration.
func (c *Config) DepSet() DepSet {
	return DepSet{
		Dependencies:    c.Dependencies,
		DevDependencies: c.DevDependencies,
	}
}

// View returns the dependency-relevant projection of the configuration
// for the given build id. The build entry is nil when the id is unknown.
func (c *Config) View(buildID string) DepView {
	return DepView{
		DepSet: c.DepSet(),
		Build:  c.Builds[buildID],
	}
}

// SourceUnion returns the sorted union of all builds' source directories.
func (c *Config) SourceUnion() []string {
	seen := make(map[string]struct{})
	var union []string
	for _, build := range c.Builds {
		for _, src := range build.SourcePaths {
			if _, ok := seen[src]; ok {
				continue
			}
			seen[src] = struct{}{}
			union = append(union, src)
		}
	}
	slices.Sort(union)
	return union
}

// SourcesFor returns the build's source directories, falling back to the
// union of all builds' sources when the build declares none.
func (c *Config) SourcesFor(build *BuildSpec) []string {
	if build != nil && len(build.SourcePaths) > 0 {
		return build.SourcePaths
	}
	return c.SourceUnion()
}
