package domain

import (
	"fmt"
	"slices"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// DepSet holds the dependency declarations a resolution run is keyed on.
type DepSet struct {
	Dependencies    []string `json:"dependencies"`
	DevDependencies []string `json:"devDependencies"`
}

// Concat returns dependencies followed by dev dependencies, the order the
// resolver tool receives them in.
func (s DepSet) Concat() []string {
	out := make([]string, 0, len(s.Dependencies)+len(s.DevDependencies))
	out = append(out, s.Dependencies...)
	out = append(out, s.DevDependencies...)
	return out
}

// Equal reports whether two sets declare the same dependencies in the same order.
func (s DepSet) Equal(other DepSet) bool {
	return slices.Equal(s.Dependencies, other.Dependencies) &&
		slices.Equal(s.DevDependencies, other.DevDependencies)
}

// DepView is the dependency-relevant projection of a Config for one build.
// Two configurations that differ only outside this projection are
// interchangeable as far as restarts and re-resolution are concerned.
type DepView struct {
	DepSet
	Build *BuildSpec `json:"build,omitempty"`
}

// Equal reports whether two views are structurally equal.
func (v DepView) Equal(other DepView) bool {
	return v.DepSet.Equal(other.DepSet) && v.Build.Equal(other.Build)
}

// Fingerprint returns a short stable digest of the view for log lines.
// Fields are separated by NUL bytes so shifted values cannot collide.
func (v DepView) Fingerprint() string {
	hasher := xxhash.New()
	writeSection := func(values []string) {
		for _, value := range values {
			_, _ = hasher.WriteString(value)
			_, _ = hasher.Write([]byte{0})
		}
		_, _ = hasher.Write([]byte{0})
	}
	writeSection(v.Dependencies)
	writeSection(v.DevDependencies)
	if v.Build != nil {
		_, _ = hasher.WriteString(v.Build.ID)
		_, _ = hasher.Write([]byte{0})
		writeSection(v.Build.SourcePaths)

		keys := make([]string, 0, len(v.Build.Options))
		for key := range v.Build.Options {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			_, _ = hasher.WriteString(key)
			_, _ = hasher.Write([]byte{0})
			_, _ = hasher.WriteString(fmt.Sprintf("%v", v.Build.Options[key]))
			_, _ = hasher.Write([]byte{0})
		}
	}
	return fmt.Sprintf("%016x", hasher.Sum64())
}

// DepsRecord is the persisted result of one dependency resolution run.
// A record is only ever written whole; readers either see the previous
// record or the new one, never a partial state.
type DepsRecord struct {
	// Resolved is the dependency set the artifacts were resolved under.
	Resolved DepSet `json:"resolved"`

	// Artifacts are the resolved artifact paths in resolver output order.
	Artifacts []string `json:"artifacts"`
}

// ValidFor reports whether the record was resolved under the given set.
func (r *DepsRecord) ValidFor(set DepSet) bool {
	return r != nil && r.Resolved.Equal(set)
}
