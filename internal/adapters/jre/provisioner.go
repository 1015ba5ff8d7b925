// Package jre provisions the Java runtime that managed tasks run on.
//
// The provisioner walks a small state machine: it prefers a runtime already
// on PATH, then a previously extracted managed install, and only then
// downloads the pinned release for the current host. Hosts without a
// published artifact are terminal and surface a fatal error.
package jre

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"

	"go.trai.ch/zerr"

	"go.trai.ch/stoke/internal/core/domain"
	"go.trai.ch/stoke/internal/core/ports"
)

// probeBinary is the command looked up on PATH before any install happens.
const probeBinary = "java"

// cacheSubdir namespaces the managed install under the user cache dir.
const cacheSubdir = "stoke"

// Provisioner implements ports.RuntimeProvisioner against the pinned
// release table in this package.
type Provisioner struct {
	logger     ports.Logger
	downloader ports.Downloader
	extractor  ports.Extractor

	installDir string
	goos       string
	goarch     string

	// installMu serializes EnsureInstalled so concurrent callers never
	// race a download; stateMu guards the observable state and path.
	installMu   sync.Mutex
	stateMu     sync.RWMutex
	state       domain.InstallState
	runtimePath string
}

// DefaultInstallDir returns the directory managed runtime installs live
// in, namespaced under the user cache dir.
func DefaultInstallDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrRuntimeInstallDirFailed.Error())
	}

	return filepath.Join(cacheDir, cacheSubdir, domain.RuntimeDirName), nil
}

// NewProvisioner creates a provisioner installing under the user cache dir.
func NewProvisioner(logger ports.Logger, downloader ports.Downloader, extractor ports.Extractor) (*Provisioner, error) {
	installDir, err := DefaultInstallDir()
	if err != nil {
		return nil, err
	}

	return newProvisioner(installDir, logger, downloader, extractor), nil
}

func newProvisioner(installDir string, logger ports.Logger, downloader ports.Downloader, extractor ports.Extractor) *Provisioner {
	return &Provisioner{
		logger:     logger,
		downloader: downloader,
		extractor:  extractor,
		installDir: installDir,
		goos:       runtime.GOOS,
		goarch:     runtime.GOARCH,
		state:      domain.RuntimeNotChecked,
	}
}

// State returns the current install state.
func (p *Provisioner) State() domain.InstallState {
	p.stateMu.RLock()
	defer p.stateMu.RUnlock()

	return p.state
}

// RuntimePath returns the resolved runtime binary, or an empty string
// before any successful EnsureInstalled call.
func (p *Provisioner) RuntimePath() string {
	p.stateMu.RLock()
	defer p.stateMu.RUnlock()

	return p.runtimePath
}

// Probe reports whether a runtime on PATH answers a version query.
func (p *Provisioner) Probe(ctx context.Context) bool {
	return exec.CommandContext(ctx, probeBinary, "-version").Run() == nil
}

// EnsureInstallable returns the install target for the current host. Hosts
// without a published artifact flip the state to unsupported, which is
// terminal.
func (p *Provisioner) EnsureInstallable() (domain.InstallTarget, error) {
	host := p.goos + "/" + p.goarch

	target, ok := installTargets[host]
	if !ok || target.Unsupported {
		p.setState(domain.RuntimeUnsupported)

		err := zerr.Wrap(domain.ErrPlatformUnsupported,
			fmt.Sprintf("no runtime is available for %s, install a JDK manually and put %s on PATH", host, probeBinary))

		return domain.InstallTarget{}, zerr.With(err, "host", host)
	}

	return target, nil
}

// EnsureInstalled makes a runtime available, downloading and extracting the
// pinned release when neither PATH nor a previous managed install provides
// one. The rationale names the task that triggered the install and is only
// logged when a download actually happens.
func (p *Provisioner) EnsureInstalled(ctx context.Context, rationale string) error {
	p.installMu.Lock()
	defer p.installMu.Unlock()

	switch p.State() {
	case domain.RuntimeInstalled:
		return nil
	case domain.RuntimeReady:
		if fileExists(p.RuntimePath()) {
			return nil
		}
		// The managed install vanished underneath us; run the flow again.
	case domain.RuntimeUnsupported:
		_, err := p.EnsureInstallable()
		return err
	}

	if p.Probe(ctx) {
		p.setResolved(domain.RuntimeInstalled, probeBinary)
		return nil
	}

	target, err := p.EnsureInstallable()
	if err != nil {
		return err
	}

	if binary, ok := p.adoptExisting(target); ok {
		p.setResolved(domain.RuntimeReady, binary)
		return nil
	}

	p.setState(domain.RuntimeNeedsInstall)
	p.logger.Info(fmt.Sprintf("%s requires the managed runtime; installing JRE %s", rationale, runtimeVersion))

	if err := os.MkdirAll(p.installDir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrRuntimeInstallDirFailed.Error())
	}

	archive := filepath.Join(p.installDir, "jre-"+runtimeVersion+".tar.gz")

	p.setState(domain.RuntimeDownloading)
	if err := p.downloader.Fetch(ctx, downloadURL(target), archive); err != nil {
		p.setState(domain.RuntimeNeedsInstall)
		return err
	}

	p.setState(domain.RuntimeExtracting)
	root, err := p.extractor.Extract(archive, p.installDir)
	if err != nil {
		p.setState(domain.RuntimeNeedsInstall)
		return err
	}
	_ = os.Remove(archive)

	binary := filepath.Join(root, filepath.FromSlash(target.BinaryRel))
	if !fileExists(binary) {
		p.setState(domain.RuntimeNeedsInstall)
		return zerr.With(domain.ErrRuntimeVerifyFailed, "binary", binary)
	}

	p.setResolved(domain.RuntimeReady, binary)

	return nil
}

// adoptExisting looks for a runtime extracted by a previous run: a single
// directory under the install dir that contains the target's binary.
func (p *Provisioner) adoptExisting(target domain.InstallTarget) (string, bool) {
	entries, err := os.ReadDir(p.installDir)
	if err != nil {
		return "", false
	}

	var root string
	for _, entry := range entries {
		if !entry.IsDir() {
			// Leftover archives from an interrupted run are not candidates.
			continue
		}
		if root != "" {
			return "", false
		}
		root = filepath.Join(p.installDir, entry.Name())
	}
	if root == "" {
		return "", false
	}

	binary := filepath.Join(root, filepath.FromSlash(target.BinaryRel))
	if !fileExists(binary) {
		return "", false
	}

	return binary, true
}

func (p *Provisioner) setState(state domain.InstallState) {
	p.stateMu.Lock()
	p.state = state
	p.stateMu.Unlock()
}

func (p *Provisioner) setResolved(state domain.InstallState, path string) {
	p.stateMu.Lock()
	p.state = state
	p.runtimePath = path
	p.stateMu.Unlock()
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)

	return err == nil
}
