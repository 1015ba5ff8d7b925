package app_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"go.trai.ch/stoke/internal/adapters/telemetry"
	"go.trai.ch/stoke/internal/app"
	"go.trai.ch/stoke/internal/core/domain"
	"go.trai.ch/stoke/internal/core/ports"
	"go.trai.ch/stoke/internal/core/ports/mocks"
	"go.trai.ch/stoke/internal/engine/dispatch"
	"go.trai.ch/stoke/internal/engine/supervisor"
)

type testDeps struct {
	ctrl        *gomock.Controller
	logger      *mocks.MockLogger
	store       *mocks.MockConfigStore
	provisioner *mocks.MockRuntimeProvisioner
	deps        *mocks.MockDependencyCache
	classpath   *mocks.MockClasspathBuilder
	launcher    *mocks.MockLauncher
}

// newApp builds an App over a real dispatcher and supervisor so the tests
// exercise the full orchestration path down to the port boundary.
func newApp(t *testing.T) (*app.App, *testDeps) {
	t.Helper()

	ctrl := gomock.NewController(t)
	deps := &testDeps{
		ctrl:        ctrl,
		logger:      mocks.NewMockLogger(ctrl),
		store:       mocks.NewMockConfigStore(ctrl),
		provisioner: mocks.NewMockRuntimeProvisioner(ctrl),
		deps:        mocks.NewMockDependencyCache(ctrl),
		classpath:   mocks.NewMockClasspathBuilder(ctrl),
		launcher:    mocks.NewMockLauncher(ctrl),
	}

	dispatcher := dispatch.NewDispatcher(
		deps.store, deps.provisioner, deps.classpath, deps.launcher, telemetry.NewNoOpTracer())
	super := supervisor.NewSupervisor(deps.logger, deps.store, dispatcher)

	a := app.New(deps.logger, deps.store, deps.provisioner, deps.deps, dispatcher, super)

	return a, deps
}

func testConfig(ids ...string) *domain.Config {
	cfg := &domain.Config{Builds: make(map[string]*domain.BuildSpec, len(ids))}
	for _, id := range ids {
		cfg.Builds[id] = &domain.BuildSpec{ID: id, SourcePaths: []string{"src/" + id}}
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestApp_RunTask_Build(t *testing.T) {
	a, deps := newApp(t)

	cfg := testConfig("app")
	handle := mocks.NewMockHandle(deps.ctrl)

	var captured ports.ManagedSpec
	deps.store.EXPECT().Load().Return(cfg, nil)
	deps.store.EXPECT().Current().Return(cfg)
	deps.provisioner.EXPECT().RuntimePath().Return("/opt/jre/bin/java")
	gomock.InOrder(
		deps.provisioner.EXPECT().EnsureInstalled(gomock.Any(), "build").Return(nil),
		deps.classpath.EXPECT().Build(gomock.Any(), []string{"src/app"}, true).Return("deps.jar:src/app", nil),
		deps.launcher.EXPECT().StartManaged(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, spec ports.ManagedSpec) (ports.Handle, error) {
				captured = spec
				return handle, nil
			}),
		handle.EXPECT().Wait().Return(nil),
	)

	err := a.RunTask(t.Context(), domain.TaskBuild, "", []string{"--verbose"}, app.RunOptions{Mode: "plain"})
	require.NoError(t, err)

	assert.Equal(t, "/opt/jre/bin/java", captured.Runtime)
	assert.Equal(t, "deps.jar:src/app", captured.Classpath)
	assert.Equal(t, "stoke/task/build.clj", captured.Script)
	assert.Equal(t, []string{"--verbose"}, captured.Args)
	assert.False(t, captured.UsePTY)
}

func TestApp_RunTask_InteractiveMode(t *testing.T) {
	a, deps := newApp(t)

	cfg := testConfig("app")
	handle := mocks.NewMockHandle(deps.ctrl)

	var captured ports.ManagedSpec
	deps.store.EXPECT().Load().Return(cfg, nil)
	deps.store.EXPECT().Current().Return(cfg)
	deps.provisioner.EXPECT().RuntimePath().Return("java")
	deps.provisioner.EXPECT().EnsureInstalled(gomock.Any(), "repl").Return(nil)
	deps.classpath.EXPECT().Build(gomock.Any(), []string{"src/app"}, true).Return("cp", nil)
	deps.launcher.EXPECT().StartManaged(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, spec ports.ManagedSpec) (ports.Handle, error) {
			captured = spec
			return handle, nil
		})
	handle.EXPECT().Wait().Return(nil)

	err := a.RunTask(t.Context(), domain.TaskREPL, "", nil, app.RunOptions{Mode: "interactive"})
	require.NoError(t, err)

	assert.Equal(t, "stoke/task/repl.clj", captured.Script)
	assert.True(t, captured.UsePTY)
}

func TestApp_RunTask_Unknown(t *testing.T) {
	a, deps := newApp(t)

	deps.store.EXPECT().Load().Return(nil, nil)

	err := a.RunTask(t.Context(), domain.Task("deploy"), "", nil, app.RunOptions{})
	require.ErrorIs(t, err, domain.ErrUnknownTask)
}

func TestApp_RunTask_LoadError(t *testing.T) {
	a, deps := newApp(t)

	deps.store.EXPECT().Load().Return(nil, assert.AnError)

	err := a.RunTask(t.Context(), domain.TaskBuild, "", nil, app.RunOptions{})
	require.ErrorIs(t, err, assert.AnError)
	assert.ErrorContains(t, err, "failed to load configuration")
}

func TestApp_RunTask_WatchResolveError(t *testing.T) {
	a, deps := newApp(t)

	deps.store.EXPECT().Load().Return(nil, nil)
	deps.store.EXPECT().Current().Return(nil)

	err := a.RunTask(t.Context(), domain.TaskWatch, "", nil, app.RunOptions{})
	require.ErrorIs(t, err, domain.ErrConfigNotFound)
}

func TestApp_RunScript_Managed(t *testing.T) {
	a, deps := newApp(t)

	cfg := testConfig("app")
	handle := mocks.NewMockHandle(deps.ctrl)

	var captured ports.ManagedSpec
	deps.store.EXPECT().Load().Return(cfg, nil)
	deps.store.EXPECT().Current().Return(cfg)
	deps.provisioner.EXPECT().RuntimePath().Return("java")
	deps.provisioner.EXPECT().EnsureInstalled(gomock.Any(), "job.clj").Return(nil)
	deps.classpath.EXPECT().Build(gomock.Any(), []string{"src/app"}, true).Return("cp", nil)
	deps.launcher.EXPECT().StartManaged(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, spec ports.ManagedSpec) (ports.Handle, error) {
			captured = spec
			return handle, nil
		})
	handle.EXPECT().Wait().Return(nil)

	err := a.RunScript(t.Context(), "scripts/job.clj", []string{"--once"}, app.RunOptions{Mode: "plain"})
	require.NoError(t, err)

	assert.Equal(t, "scripts/job.clj", captured.Script)
	assert.Equal(t, []string{"--once"}, captured.Args)
	assert.False(t, captured.UsePTY)
}

func TestApp_RunScript_Lightweight(t *testing.T) {
	a, deps := newApp(t)

	deps.store.EXPECT().Load().Return(nil, nil)
	deps.store.EXPECT().Current().Return(nil)
	deps.launcher.EXPECT().RunLightweight(gomock.Any(), "", []string{"demo.cljs", "--fast"}).Return(nil)

	err := a.RunScript(t.Context(), "demo.cljs", []string{"--fast"}, app.RunOptions{})
	require.NoError(t, err)
}

func TestApp_RunScript_Unsupported(t *testing.T) {
	a, deps := newApp(t)

	deps.store.EXPECT().Load().Return(nil, nil)

	err := a.RunScript(t.Context(), "README.md", nil, app.RunOptions{})
	require.ErrorIs(t, err, domain.ErrScriptUnsupported)
	assert.ErrorContains(t, err, `"README.md" is not a runnable script`)
}

func TestApp_Session(t *testing.T) {
	a, deps := newApp(t)

	deps.store.EXPECT().Load().Return(nil, nil)
	deps.store.EXPECT().Current().Return(nil)
	deps.launcher.EXPECT().RunLightweight(gomock.Any(), "", gomock.Nil()).Return(nil)

	err := a.Session(t.Context(), app.RunOptions{})
	require.NoError(t, err)
}

func TestApp_Install(t *testing.T) {
	a, deps := newApp(t)

	deps.store.EXPECT().Load().Return(testConfig("app"), nil)
	deps.provisioner.EXPECT().EnsureInstalled(gomock.Any(), "install").Return(nil)
	deps.deps.EXPECT().Artifacts(gomock.Any()).Return([]string{"a.jar", "b.jar"}, nil)
	deps.provisioner.EXPECT().RuntimePath().Return("/opt/jre/bin/java")
	deps.logger.EXPECT().Info("runtime ready at /opt/jre/bin/java")
	deps.logger.EXPECT().Info("resolved 2 dependency artifacts")

	err := a.Install(t.Context())
	require.NoError(t, err)
}

func TestApp_Install_ResolveError(t *testing.T) {
	a, deps := newApp(t)

	deps.store.EXPECT().Load().Return(testConfig("app"), nil)
	deps.provisioner.EXPECT().EnsureInstalled(gomock.Any(), "install").Return(nil)
	deps.deps.EXPECT().Artifacts(gomock.Any()).Return(nil, domain.ErrDepsResolveFailed)

	err := a.Install(t.Context())
	require.ErrorIs(t, err, domain.ErrDepsResolveFailed)
}

func TestApp_Clean_Deps(t *testing.T) {
	a, deps := newApp(t)

	deps.logger.EXPECT().Info("removing dependency cache...")
	deps.deps.EXPECT().Invalidate().Return(nil)
	deps.logger.EXPECT().Info("removed dependency cache")

	err := a.Clean(t.Context(), app.CleanOptions{Deps: true})
	require.NoError(t, err)
}

func TestApp_Clean_All(t *testing.T) {
	a, deps := newApp(t)

	runtimeDir := filepath.Join(t.TempDir(), "jre")
	require.NoError(t, os.MkdirAll(filepath.Join(runtimeDir, "bin"), 0o750))
	a = a.WithRuntimeDir(runtimeDir)

	deps.logger.EXPECT().Info("removing dependency cache...")
	deps.deps.EXPECT().Invalidate().Return(nil)
	deps.logger.EXPECT().Info("removed dependency cache")
	deps.logger.EXPECT().Info("removing managed runtime...")
	deps.logger.EXPECT().Info("removed managed runtime")

	err := a.Clean(t.Context(), app.CleanOptions{Deps: true, Runtime: true})
	require.NoError(t, err)
	assert.NoDirExists(t, runtimeDir)
}

func TestApp_Clean_InvalidateError(t *testing.T) {
	a, deps := newApp(t)

	deps.logger.EXPECT().Info("removing dependency cache...")
	deps.deps.EXPECT().Invalidate().Return(assert.AnError)

	err := a.Clean(t.Context(), app.CleanOptions{Deps: true})
	require.ErrorIs(t, err, assert.AnError)
	assert.ErrorContains(t, err, "failed to remove dependency cache")
}

func TestApp_Session_TraceWritesDebugLog(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	defer func() {
		errChdir := os.Chdir(cwd)
		require.NoError(t, errChdir)
	}()

	require.NoError(t, os.Chdir(t.TempDir()))

	a, deps := newApp(t)

	deps.store.EXPECT().Load().Return(nil, nil)
	deps.store.EXPECT().Current().Return(nil)
	deps.launcher.EXPECT().RunLightweight(gomock.Any(), "", gomock.Nil()).Return(nil)

	err = a.Session(t.Context(), app.RunOptions{Trace: true})
	require.NoError(t, err)
	assert.FileExists(t, domain.DefaultDebugLogPath())
}
