// Package config provides the configuration store for stoke.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/stoke/internal/adapters/watcher"
	"go.trai.ch/stoke/internal/core/domain"
	"go.trai.ch/stoke/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Store implements ports.ConfigStore backed by a stoke.yaml file.
// It holds the active snapshot and, once a caller waits for changes,
// a debounced watch on the project root directory. The watch belongs to
// the store, not to any single wait: it starts with the first
// WaitForChange and runs until Close.
type Store struct {
	logger ports.Logger
	fs     ports.Watcher

	root string
	path string

	mu      sync.RWMutex
	current *domain.Config

	watchOnce   sync.Once
	watchErr    error
	watchCtx    context.Context
	watchCancel context.CancelFunc
	guard       *watcher.ContentGuard
	changes     chan struct{}
}

// NewStore creates a store rooted at the given project directory.
func NewStore(root string, logger ports.Logger, fs ports.Watcher) *Store {
	watchCtx, watchCancel := context.WithCancel(context.Background())
	return &Store{
		logger:      logger,
		fs:          fs,
		root:        root,
		path:        filepath.Join(root, domain.ConfigFileName),
		guard:       watcher.NewContentGuard(),
		changes:     make(chan struct{}, 1),
		watchCtx:    watchCtx,
		watchCancel: watchCancel,
	}
}

// Load reads stoke.yaml from the project root and installs a new snapshot.
// A missing file leaves the previous snapshot in place and returns nil.
func (s *Store) Load() (*domain.Config, error) {
	// #nosec G304 -- path is the project root joined with the fixed config file name
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	var file Stokefile
	if parseErr := yaml.Unmarshal(raw, &file); parseErr != nil {
		return nil, zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	cfg := buildConfig(&file)

	s.mu.Lock()
	s.current = cfg
	s.mu.Unlock()

	// Remember the loaded bytes so a save without edits is not reported as a change.
	s.guard.Prime(s.path)

	return cfg, nil
}

// Current returns the active snapshot, or nil when nothing has been loaded.
func (s *Store) Current() *domain.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// View returns the dependency-relevant projection for the given build id.
func (s *Store) View(buildID string) domain.DepView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return domain.DepView{}
	}
	return s.current.View(buildID)
}

// WaitForChange suspends until stoke.yaml changes in a way that alters the
// dependency-relevant view for the given build, then returns the reloaded
// snapshot. Edits outside the view keep it waiting, as do saves that fail
// to parse; those keep the previous snapshot active. Cancelling ctx ends
// only this wait: the underlying watch keeps running, so later waits on
// the same store still observe changes.
func (s *Store) WaitForChange(ctx context.Context, buildID string) (*domain.Config, error) {
	before := s.View(buildID)

	if err := s.ensureWatching(); err != nil {
		return nil, err
	}

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-s.changes:
			cfg, err := s.Load()
			if err != nil {
				s.logger.Warn(fmt.Sprintf("%s reload failed, keeping previous configuration: %v", domain.ConfigFileName, err))
				continue
			}
			if cfg == nil {
				// File removed mid-watch; wait for it to come back.
				continue
			}
			if cfg.View(buildID).Equal(before) {
				continue
			}
			return cfg, nil
		}
	}
}

// Close ends the change watch and releases the file system watcher. Waits
// already in flight keep honoring their own contexts.
func (s *Store) Close() error {
	s.watchCancel()
	return s.fs.Stop()
}

// ensureWatching starts the directory watch on first use. The watch runs
// under the store's own context, not the caller's, so one wait being
// cancelled leaves the pipeline alive for later waits; Close ends it.
func (s *Store) ensureWatching() error {
	s.watchOnce.Do(func() {
		if err := s.fs.Start(s.watchCtx, s.root); err != nil {
			s.watchErr = zerr.Wrap(err, domain.ErrWatchSetupFailed.Error())
			return
		}
		debouncer := watcher.NewDebouncer(watcher.DefaultDebounceWindow, s.onDebounced)
		go s.pump(debouncer)
	})
	return s.watchErr
}

// pump forwards config file events into the debouncer. Events for other
// files in the root directory are dropped here.
func (s *Store) pump(debouncer *watcher.Debouncer) {
	for event := range s.fs.Events() {
		if filepath.Base(event.Path) != domain.ConfigFileName {
			continue
		}
		debouncer.Add(event.Path)
	}
}

// onDebounced runs after a burst of file events settles. It signals the
// change channel only when the file content actually differs.
func (s *Store) onDebounced(paths []string) {
	changed := false
	for _, path := range paths {
		if s.guard.Changed(path) {
			changed = true
		}
	}
	if !changed {
		return
	}
	select {
	case s.changes <- struct{}{}:
	default:
	}
}

// buildConfig converts the raw YAML document into a domain configuration.
// Build ids come from the map keys; the entries themselves do not carry them.
func buildConfig(file *Stokefile) *domain.Config {
	cfg := &domain.Config{
		Builds:           make(map[string]*domain.BuildSpec, len(file.Builds)),
		Dependencies:     file.Dependencies,
		DevDependencies:  file.DevDependencies,
		CompilerVersion:  file.Compiler,
		ToolchainVersion: file.Toolchain,
	}
	for id, dto := range file.Builds {
		spec := &domain.BuildSpec{ID: id}
		if dto != nil {
			spec.SourcePaths = dto.Src
			spec.Options = dto.Options
		}
		cfg.Builds[id] = spec
	}
	cfg.ApplyDefaults()
	return cfg
}
