// Package app implements the application layer for stoke.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.trai.ch/zerr"

	"go.trai.ch/stoke/internal/adapters/detector"
	"go.trai.ch/stoke/internal/adapters/jre"
	"go.trai.ch/stoke/internal/adapters/telemetry"
	"go.trai.ch/stoke/internal/core/domain"
	"go.trai.ch/stoke/internal/core/ports"
	"go.trai.ch/stoke/internal/engine/dispatch"
	"go.trai.ch/stoke/internal/engine/supervisor"
)

// App represents the main application logic.
type App struct {
	logger      ports.Logger
	store       ports.ConfigStore
	provisioner ports.RuntimeProvisioner
	deps        ports.DependencyCache
	dispatcher  *dispatch.Dispatcher
	supervisor  *supervisor.Supervisor

	runtimeDir string
}

// New creates a new App instance.
func New(
	log ports.Logger,
	store ports.ConfigStore,
	provisioner ports.RuntimeProvisioner,
	deps ports.DependencyCache,
	dispatcher *dispatch.Dispatcher,
	super *supervisor.Supervisor,
) *App {
	return &App{
		logger:      log,
		store:       store,
		provisioner: provisioner,
		deps:        deps,
		dispatcher:  dispatcher,
		supervisor:  super,
	}
}

// RunOptions configuration for the task and script running methods.
type RunOptions struct {
	// Mode overrides terminal auto-detection: "auto", "interactive" or
	// "plain".
	Mode string
	// Trace writes span telemetry to the workspace debug log.
	Trace bool
}

// RunTask executes a recognized task for the given build.
func (a *App) RunTask(ctx context.Context, task domain.Task, buildID string, args []string, opts RunOptions) error {
	if err := a.loadConfig(); err != nil {
		return err
	}

	done := a.setupTrace(ctx, opts)
	defer done()

	switch task {
	case domain.TaskWatch:
		return a.supervisor.Run(ctx, buildID, args)
	case domain.TaskInstall:
		return a.install(ctx)
	case domain.TaskBuild, domain.TaskREPL, domain.TaskFigwheel:
		mode := detector.ResolveMode(detector.DetectEnvironment(), opts.Mode)

		return a.dispatcher.RunManaged(ctx, dispatch.ManagedRequest{
			Task:    task,
			BuildID: buildID,
			Args:    args,
			UsePTY:  mode.Interactive(),
		})
	default:
		return zerr.With(domain.ErrUnknownTask, "task", string(task))
	}
}

// RunScript executes a script file, selecting managed or lightweight
// execution by extension. Managed scripts resolve their build the same
// way tasks do.
func (a *App) RunScript(ctx context.Context, path string, args []string, opts RunOptions) error {
	if err := a.loadConfig(); err != nil {
		return err
	}

	done := a.setupTrace(ctx, opts)
	defer done()

	switch domain.ClassifyScript(path) {
	case domain.ScriptManaged:
		mode := detector.ResolveMode(detector.DetectEnvironment(), opts.Mode)

		return a.dispatcher.RunManaged(ctx, dispatch.ManagedRequest{
			Script: path,
			Args:   args,
			UsePTY: mode.Interactive(),
		})
	case domain.ScriptLightweight:
		return a.dispatcher.RunLightweight(ctx, append([]string{path}, args...))
	default:
		return zerr.Wrap(domain.ErrScriptUnsupported,
			fmt.Sprintf("%q is not a runnable script, use %s or %s files",
				path, domain.ManagedScriptExt, domain.LightweightScriptExt))
	}
}

// Session starts an interactive lightweight session. It works without a
// configuration; with one, the session sees the project classpath.
func (a *App) Session(ctx context.Context, opts RunOptions) error {
	if err := a.loadConfig(); err != nil {
		return err
	}

	done := a.setupTrace(ctx, opts)
	defer done()

	return a.dispatcher.RunLightweight(ctx, nil)
}

// Install provisions the managed runtime and resolves dependencies
// eagerly, so later tasks start without provisioning pauses.
func (a *App) Install(ctx context.Context) error {
	if err := a.loadConfig(); err != nil {
		return err
	}

	return a.install(ctx)
}

func (a *App) install(ctx context.Context) error {
	if err := a.provisioner.EnsureInstalled(ctx, string(domain.TaskInstall)); err != nil {
		return err
	}

	artifacts, err := a.deps.Artifacts(ctx)
	if err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("runtime ready at %s", a.provisioner.RuntimePath()))
	a.logger.Info(fmt.Sprintf("resolved %d dependency artifacts", len(artifacts)))

	return nil
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	Deps    bool
	Runtime bool
}

// Clean removes cached state based on the provided options. Everything it
// deletes is re-created on demand by the next invocation.
func (a *App) Clean(_ context.Context, options CleanOptions) error {
	var errs error

	// Helper to run a removal step and log the action
	step := func(name string, fn func() error) {
		a.logger.Info(fmt.Sprintf("removing %s...", name))
		if err := fn(); err != nil {
			errs = errors.Join(errs, zerr.Wrap(err, fmt.Sprintf("failed to remove %s", name)))
			return
		}
		a.logger.Info(fmt.Sprintf("removed %s", name))
	}

	if options.Deps {
		step("dependency cache", a.deps.Invalidate)
	}

	if options.Runtime {
		dir, err := a.runtimeInstallDir()
		if err != nil {
			errs = errors.Join(errs, err)
		} else {
			step("managed runtime", func() error { return os.RemoveAll(dir) })
		}
	}

	return errs
}

// WithRuntimeDir overrides the managed runtime location that Clean removes.
// This is primarily used for testing.
func (a *App) WithRuntimeDir(dir string) *App {
	a.runtimeDir = dir
	return a
}

func (a *App) runtimeInstallDir() (string, error) {
	if a.runtimeDir != "" {
		return a.runtimeDir, nil
	}

	return jre.DefaultInstallDir()
}

// loadConfig refreshes the configuration snapshot. A missing stoke.yaml
// is not an error here; operations that need one fail on resolution.
func (a *App) loadConfig() error {
	if _, err := a.store.Load(); err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	return nil
}

// setupTrace points span telemetry at the workspace debug log for this
// invocation. The returned function flushes spans and restores the
// previous tracer provider.
func (a *App) setupTrace(ctx context.Context, opts RunOptions) func() {
	if !opts.Trace {
		return func() {}
	}

	if err := os.MkdirAll(domain.DefaultStokePath(), domain.DirPerm); err != nil {
		a.logger.Warn(fmt.Sprintf("trace log unavailable: %v", err))
		return func() {}
	}

	f, err := os.OpenFile(domain.DefaultDebugLogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, domain.FilePerm)
	if err != nil {
		a.logger.Warn(fmt.Sprintf("trace log unavailable: %v", err))
		return func() {}
	}

	shutdown := telemetry.Install(f)

	return func() {
		_ = shutdown(ctx)
		_ = f.Close()
	}
}
