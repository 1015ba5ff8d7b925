// Package dispatch turns task requests into running toolchain processes.
//
// A managed request resolves its build against one configuration snapshot,
// ensures the managed runtime, assembles the runner classpath and init
// payload, and hands the spawn to the launcher. Lightweight requests skip
// provisioning entirely and run on the stoke-lite interpreter.
package dispatch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"

	"go.trai.ch/stoke/internal/core/domain"
	"go.trai.ch/stoke/internal/core/ports"
)

// ManagedRequest describes one managed runner invocation.
type ManagedRequest struct {
	// Task selects a built-in entry point script.
	Task domain.Task

	// BuildID selects the build to run against. Empty selects the sole
	// configured build.
	BuildID string

	// Script replaces the task entry point with an explicit script path.
	Script string

	// Args are appended to the runner command line after the script.
	Args []string

	// UsePTY runs the child on a launcher-owned pseudo-terminal so it can
	// be interrupted and respawned without losing the surrounding terminal.
	UsePTY bool
}

// script returns the runner entry point for the request.
func (r ManagedRequest) script() string {
	if r.Script != "" {
		return r.Script
	}
	return r.Task.Script()
}

// rationale names the requester in provisioning log output.
func (r ManagedRequest) rationale() string {
	if r.Task != "" {
		return string(r.Task)
	}
	return filepath.Base(r.Script)
}

// Dispatcher resolves builds and spawns toolchain processes.
type Dispatcher struct {
	store       ports.ConfigStore
	provisioner ports.RuntimeProvisioner
	classpath   ports.ClasspathBuilder
	launcher    ports.Launcher
	tracer      ports.Tracer
}

// NewDispatcher creates a dispatcher over the given collaborators.
func NewDispatcher(
	store ports.ConfigStore,
	provisioner ports.RuntimeProvisioner,
	classpath ports.ClasspathBuilder,
	launcher ports.Launcher,
	tracer ports.Tracer,
) *Dispatcher {
	return &Dispatcher{
		store:       store,
		provisioner: provisioner,
		classpath:   classpath,
		launcher:    launcher,
		tracer:      tracer,
	}
}

// ResolveBuild selects the build for the given identifier from the current
// configuration snapshot. An empty identifier selects the sole configured
// build and is an error when several are configured.
func (d *Dispatcher) ResolveBuild(id string) (*domain.BuildSpec, error) {
	return resolveBuild(d.store.Current(), id)
}

func resolveBuild(cfg *domain.Config, id string) (*domain.BuildSpec, error) {
	if cfg == nil {
		return nil, domain.ErrConfigNotFound
	}
	if len(cfg.Builds) == 0 {
		return nil, domain.ErrNoBuildsConfigured
	}

	if id == "" {
		ids := cfg.BuildIDs()
		if len(ids) > 1 {
			return nil, zerr.Wrap(domain.ErrBuildAmbiguous,
				"specify one of the configured builds: "+strings.Join(ids, ", "))
		}
		id = ids[0]
	}

	build, ok := cfg.Builds[id]
	if !ok {
		return nil, zerr.Wrap(domain.ErrBuildNotFound,
			fmt.Sprintf("build %q is not configured, available: %s", id, strings.Join(cfg.BuildIDs(), ", ")))
	}

	return build, nil
}

// StartManaged spawns the managed runner for the request and returns
// without waiting. The build is resolved against a single configuration
// snapshot; the same snapshot feeds the classpath sources and the init
// payload.
func (d *Dispatcher) StartManaged(ctx context.Context, req ManagedRequest) (ports.Handle, error) {
	script := req.script()
	if script == "" {
		return nil, zerr.With(domain.ErrUnknownTask, "task", string(req.Task))
	}

	ctx, span := d.tracer.Start(ctx, "dispatch "+req.rationale())
	defer span.End()

	cfg := d.store.Current()
	build, err := resolveBuild(cfg, req.BuildID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute("stoke.build", build.ID)

	if err := d.provisioner.EnsureInstalled(ctx, req.rationale()); err != nil {
		span.RecordError(err)
		return nil, err
	}

	classpath, err := d.classpath.Build(ctx, cfg.SourcesFor(build), true)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	payload, err := domain.InitPayload{Config: cfg, Build: build}.Encode()
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	handle, err := d.launcher.StartManaged(ctx, ports.ManagedSpec{
		Runtime:   d.provisioner.RuntimePath(),
		Classpath: classpath,
		Payload:   payload,
		Script:    script,
		Args:      req.Args,
		UsePTY:    req.UsePTY,
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return handle, nil
}

// RunManaged runs the managed runner for the request to completion. A
// nonzero child exit surfaces as domain.ExitError.
func (d *Dispatcher) RunManaged(ctx context.Context, req ManagedRequest) error {
	handle, err := d.StartManaged(ctx, req)
	if err != nil {
		return err
	}

	return handle.Wait()
}

// RunLightweight runs the stoke-lite interpreter synchronously. With a
// loaded configuration the interpreter receives the project classpath,
// dependency artifacts plus the union of all builds' sources; without one
// it starts bare.
func (d *Dispatcher) RunLightweight(ctx context.Context, args []string) error {
	ctx, span := d.tracer.Start(ctx, "dispatch stoke-lite")
	defer span.End()

	var classpath string
	if cfg := d.store.Current(); cfg != nil {
		cp, err := d.classpath.Build(ctx, cfg.SourceUnion(), false)
		if err != nil {
			span.RecordError(err)
			return err
		}
		classpath = cp
	}

	return d.launcher.RunLightweight(ctx, classpath, args)
}
