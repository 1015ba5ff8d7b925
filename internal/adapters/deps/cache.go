// Package deps resolves dependency artifacts through the external
// stoke-deps tool and caches the result on disk.
//
// The cache record is keyed on the declared dependency set: as long as the
// declarations are unchanged the tool is never re-invoked. Records are
// written whole via a temp file and rename, so readers never observe a
// partial resolution.
package deps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"

	"go.trai.ch/stoke/internal/core/domain"
	"go.trai.ch/stoke/internal/core/ports"
)

// Cache implements ports.DependencyCache backed by the stoke-deps tool.
type Cache struct {
	logger ports.Logger
	store  ports.ConfigStore
	path   string

	requestGroup singleflight.Group
}

// NewCache creates a dependency cache persisting under root.
func NewCache(root string, store ports.ConfigStore, logger ports.Logger) *Cache {
	return &Cache{
		logger: logger,
		store:  store,
		path:   filepath.Join(root, domain.DefaultDepsCachePath()),
	}
}

// Artifacts returns the artifact paths for the currently loaded
// configuration. Concurrent calls for the same dependency set share one
// resolver run.
func (c *Cache) Artifacts(ctx context.Context) ([]string, error) {
	cfg := c.store.Current()
	if cfg == nil {
		return nil, domain.ErrConfigNotFound
	}
	set := cfg.DepSet()

	// The resolver receives the concatenated declarations as a JSON array;
	// the payload doubles as the deduplication key.
	payload, err := json.Marshal(set.Concat())
	if err != nil {
		return nil, zerr.Wrap(err, "failed to encode resolver request")
	}

	result, err, _ := c.requestGroup.Do(string(payload), func() (any, error) {
		record, loadErr := c.loadRecord()
		if loadErr == nil && record.ValidFor(set) {
			return record.Artifacts, nil
		}
		if loadErr != nil && !errors.Is(loadErr, domain.ErrCacheMiss) {
			c.logger.Warn(fmt.Sprintf("ignoring unreadable dependency cache: %v", loadErr))
		}

		return c.resolve(ctx, set, payload)
	})
	if err != nil {
		return nil, err
	}

	return slices.Clone(result.([]string)), nil
}

// Invalidate removes the persisted record so the next Artifacts call runs
// the resolver again. A missing record is not an error.
func (c *Cache) Invalidate() error {
	if err := os.Remove(c.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.Wrap(err, "failed to delete dependency cache record")
	}

	return nil
}

// resolve runs the external tool synchronously and persists the outcome.
// The previous record stays untouched on any failure.
func (c *Cache) resolve(ctx context.Context, set domain.DepSet, payload []byte) ([]string, error) {
	bin := resolverBinary()

	toolPath, err := exec.LookPath(bin)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrDepsToolMissing.Error()), "tool", bin)
	}

	//nolint:gosec // the binary comes from a PATH lookup or an explicit override
	cmd := exec.CommandContext(ctx, toolPath, string(payload))
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrDepsResolveFailed.Error()),
				"stderr", strings.TrimSpace(string(exitErr.Stderr)))
		}

		return nil, zerr.Wrap(err, domain.ErrDepsResolveFailed.Error())
	}

	artifacts := parseArtifacts(output)

	record := domain.DepsRecord{Resolved: set, Artifacts: artifacts}
	if err := c.saveRecord(record); err != nil {
		// Resolution succeeded; a failed persist only costs a rerun later.
		c.logger.Warn(fmt.Sprintf("could not persist dependency cache: %v", err))
	}

	return artifacts, nil
}

// loadRecord reads the persisted record, returning ErrCacheMiss when none
// exists yet.
func (c *Cache) loadRecord() (*domain.DepsRecord, error) {
	//nolint:gosec // the path is derived from the fixed workspace layout
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrCacheMiss
		}

		return nil, zerr.Wrap(err, domain.ErrDepsCacheReadFailed.Error())
	}

	var record domain.DepsRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, zerr.Wrap(err, domain.ErrDepsCacheUnmarshalFailed.Error())
	}

	return &record, nil
}

// saveRecord writes the record whole: temp file in the same directory,
// then rename.
func (c *Cache) saveRecord(record domain.DepsRecord) error {
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrDepsCacheWriteFailed.Error())
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrDepsCacheMarshalFailed.Error())
	}

	tmpFile, err := os.CreateTemp(dir, "deps-*.json")
	if err != nil {
		return zerr.Wrap(err, domain.ErrDepsCacheWriteFailed.Error())
	}
	tmpName := tmpFile.Name()

	defer func() {
		if _, err := os.Stat(tmpName); err == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return zerr.Wrap(err, domain.ErrDepsCacheWriteFailed.Error())
	}

	if err := tmpFile.Close(); err != nil {
		return zerr.Wrap(err, domain.ErrDepsCacheWriteFailed.Error())
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrDepsCacheWriteFailed.Error())
	}

	if err := os.Rename(tmpName, c.path); err != nil {
		return zerr.Wrap(err, domain.ErrDepsCacheWriteFailed.Error())
	}

	return nil
}

// parseArtifacts splits resolver output into artifact paths, dropping
// blank lines.
func parseArtifacts(output []byte) []string {
	lines := strings.Split(string(output), "\n")

	artifacts := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			artifacts = append(artifacts, trimmed)
		}
	}

	return artifacts
}

func resolverBinary() string {
	if bin := os.Getenv(domain.DepsToolEnv); bin != "" {
		return bin
	}

	return domain.DepsToolName
}
