package supervisor_test

import (
	"bytes"
	"context"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"go.trai.ch/stoke/internal/adapters/telemetry"
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
	classpath   *mocks.MockClasspathBuilder
	launcher    *mocks.MockLauncher
	out         *bytes.Buffer
}

func newSupervisor(t *testing.T) (*supervisor.Supervisor, *testDeps) {
	t.Helper()

	ctrl := gomock.NewController(t)
	deps := &testDeps{
		ctrl:        ctrl,
		logger:      mocks.NewMockLogger(ctrl),
		store:       mocks.NewMockConfigStore(ctrl),
		provisioner: mocks.NewMockRuntimeProvisioner(ctrl),
		classpath:   mocks.NewMockClasspathBuilder(ctrl),
		launcher:    mocks.NewMockLauncher(ctrl),
		out:         &bytes.Buffer{},
	}

	dispatcher := dispatch.NewDispatcher(
		deps.store, deps.provisioner, deps.classpath, deps.launcher, telemetry.NewNoOpTracer())
	s := supervisor.NewSupervisor(deps.logger, deps.store, dispatcher).WithOutput(deps.out)

	return s, deps
}

func watchConfig() *domain.Config {
	cfg := &domain.Config{Builds: map[string]*domain.BuildSpec{
		"app": {ID: "app", SourcePaths: []string{"src/app"}},
	}}
	cfg.ApplyDefaults()
	return cfg
}

// expectCycles arms the resolution expectations shared by every spawn.
func expectCycles(deps *testDeps, n int) {
	deps.store.EXPECT().Current().Return(watchConfig()).AnyTimes()
	deps.provisioner.EXPECT().EnsureInstalled(gomock.Any(), "watch").Return(nil).Times(n)
	deps.provisioner.EXPECT().RuntimePath().Return("java").Times(n)
	deps.classpath.EXPECT().Build(gomock.Any(), []string{"src/app"}, true).Return("cp", nil).Times(n)
}

// blockUntilCancelled parks a change wait until its context ends.
func blockUntilCancelled(ctx context.Context, _ string) (*domain.Config, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestSupervisor_Run_RestartsOnChange(t *testing.T) {
	s, deps := newSupervisor(t)
	expectCycles(deps, 2)

	first := mocks.NewMockHandle(deps.ctrl)
	second := mocks.NewMockHandle(deps.ctrl)

	interrupted := make(chan struct{})
	first.EXPECT().Interrupt().DoAndReturn(func() error {
		close(interrupted)
		return nil
	})
	first.EXPECT().Wait().DoAndReturn(func() error {
		<-interrupted
		return &domain.ExitError{Code: 130}
	})
	second.EXPECT().Wait().Return(nil)

	var specs []ports.ManagedSpec
	gomock.InOrder(
		deps.launcher.EXPECT().StartManaged(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, spec ports.ManagedSpec) (ports.Handle, error) {
				specs = append(specs, spec)
				return first, nil
			}),
		deps.launcher.EXPECT().StartManaged(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, spec ports.ManagedSpec) (ports.Handle, error) {
				specs = append(specs, spec)
				return second, nil
			}),
	)

	gomock.InOrder(
		deps.store.EXPECT().WaitForChange(gomock.Any(), "app").Return(watchConfig(), nil),
		deps.store.EXPECT().WaitForChange(gomock.Any(), "app").DoAndReturn(blockUntilCancelled),
	)

	require.NoError(t, s.Run(t.Context(), "", []string{"--verbose"}))

	require.Len(t, specs, 2)
	assert.True(t, specs[0].UsePTY)
	assert.Equal(t, "stoke/task/watch.clj", specs[0].Script)
	assert.Equal(t, []string{"--verbose"}, specs[0].Args)
	assert.Contains(t, deps.out.String(), `restarting watch for build "app"`)
}

func TestSupervisor_Run_ChildExitEndsLoop(t *testing.T) {
	s, deps := newSupervisor(t)
	expectCycles(deps, 1)

	handle := mocks.NewMockHandle(deps.ctrl)
	handle.EXPECT().Wait().Return(&domain.ExitError{Code: 9})
	deps.launcher.EXPECT().StartManaged(gomock.Any(), gomock.Any()).Return(handle, nil)
	deps.store.EXPECT().WaitForChange(gomock.Any(), "app").DoAndReturn(blockUntilCancelled)

	err := s.Run(t.Context(), "app", nil)

	var exitErr *domain.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 9, exitErr.Code)
	assert.Empty(t, deps.out.String())
}

func TestSupervisor_Run_ContextCancelled(t *testing.T) {
	s, deps := newSupervisor(t)
	expectCycles(deps, 1)

	handle := mocks.NewMockHandle(deps.ctrl)
	interrupted := make(chan struct{})
	handle.EXPECT().Interrupt().DoAndReturn(func() error {
		close(interrupted)
		return nil
	})
	handle.EXPECT().Wait().DoAndReturn(func() error {
		<-interrupted
		return &domain.ExitError{Code: 130}
	})
	deps.launcher.EXPECT().StartManaged(gomock.Any(), gomock.Any()).Return(handle, nil)
	deps.store.EXPECT().WaitForChange(gomock.Any(), "app").DoAndReturn(blockUntilCancelled)

	ctx, cancel := context.WithCancel(t.Context())
	errCh := make(chan error, 1)
	go func() { errCh <- s.Run(ctx, "app", nil) }()

	cancel()

	select {
	case err := <-errCh:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("supervisor did not stop")
	}
	assert.Empty(t, deps.out.String())
}

func TestSupervisor_Run_KillsStubbornChild(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		s, deps := newSupervisor(t)
		expectCycles(deps, 2)

		stubborn := mocks.NewMockHandle(deps.ctrl)
		second := mocks.NewMockHandle(deps.ctrl)

		killed := make(chan struct{})
		stubborn.EXPECT().Interrupt().Return(nil)
		stubborn.EXPECT().Kill().DoAndReturn(func() error {
			close(killed)
			return nil
		})
		stubborn.EXPECT().Wait().DoAndReturn(func() error {
			<-killed
			return &domain.ExitError{Code: 137}
		})
		second.EXPECT().Wait().Return(nil)

		deps.logger.EXPECT().Warn("watch child ignored interrupt, killing it")

		gomock.InOrder(
			deps.launcher.EXPECT().StartManaged(gomock.Any(), gomock.Any()).Return(stubborn, nil),
			deps.launcher.EXPECT().StartManaged(gomock.Any(), gomock.Any()).Return(second, nil),
		)
		gomock.InOrder(
			deps.store.EXPECT().WaitForChange(gomock.Any(), "app").Return(watchConfig(), nil),
			deps.store.EXPECT().WaitForChange(gomock.Any(), "app").DoAndReturn(blockUntilCancelled),
		)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		require.NoError(t, s.Run(ctx, "app", nil))
		assert.Contains(t, deps.out.String(), "restarting watch")
	})
}

func TestSupervisor_Run_ResolveError(t *testing.T) {
	s, deps := newSupervisor(t)

	deps.store.EXPECT().Current().Return(nil)

	err := s.Run(t.Context(), "", nil)
	require.ErrorIs(t, err, domain.ErrConfigNotFound)
}

func TestSupervisor_Run_SpawnError(t *testing.T) {
	s, deps := newSupervisor(t)
	expectCycles(deps, 1)

	deps.launcher.EXPECT().StartManaged(gomock.Any(), gomock.Any()).Return(nil, assert.AnError)

	err := s.Run(t.Context(), "app", nil)
	require.ErrorIs(t, err, assert.AnError)
}
