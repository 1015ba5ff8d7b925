package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"go.trai.ch/stoke/internal/adapters/telemetry"
	"go.trai.ch/stoke/internal/app"
	"go.trai.ch/stoke/internal/core/domain"
	"go.trai.ch/stoke/internal/core/ports/mocks"
	"go.trai.ch/stoke/internal/engine/dispatch"
	"go.trai.ch/stoke/internal/engine/supervisor"
)

type appMocks struct {
	logger      *mocks.MockLogger
	store       *mocks.MockConfigStore
	provisioner *mocks.MockRuntimeProvisioner
	deps        *mocks.MockDependencyCache
	classpath   *mocks.MockClasspathBuilder
	launcher    *mocks.MockLauncher
}

// newTestApp assembles a real application over mocked ports.
func newTestApp(ctrl *gomock.Controller) (*app.App, *appMocks) {
	m := &appMocks{
		logger:      mocks.NewMockLogger(ctrl),
		store:       mocks.NewMockConfigStore(ctrl),
		provisioner: mocks.NewMockRuntimeProvisioner(ctrl),
		deps:        mocks.NewMockDependencyCache(ctrl),
		classpath:   mocks.NewMockClasspathBuilder(ctrl),
		launcher:    mocks.NewMockLauncher(ctrl),
	}

	dispatcher := dispatch.NewDispatcher(
		m.store, m.provisioner, m.classpath, m.launcher, telemetry.NewNoOpTracer())
	super := supervisor.NewSupervisor(m.logger, m.store, dispatcher)

	return app.New(m.logger, m.store, m.provisioner, m.deps, dispatcher, super), m
}

func provideApp(application *app.App, logger *mocks.MockLogger) ComponentProvider {
	return func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{App: application, Logger: logger}, func() {}, nil
	}
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	application, m := newTestApp(ctrl)

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provideApp(application, m.logger))
	assert.Equal(t, 0, exitCode)
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run returns 1 when the command execution fails.
func TestRun_ExecutionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	application, m := newTestApp(ctrl)

	// Simulate a failing configuration load
	m.store.EXPECT().Load().Return(nil, errors.New("load failed"))
	m.logger.EXPECT().Error(gomock.Any())

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"build"}, stderr, provideApp(application, m.logger))

	assert.Equal(t, 1, exitCode)
}

// TestRun_ChildExitCode verifies that a child's exit status passes through unchanged.
func TestRun_ChildExitCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	application, m := newTestApp(ctrl)

	cfg := &domain.Config{Builds: map[string]*domain.BuildSpec{
		"app": {ID: "app", SourcePaths: []string{"src"}},
	}}
	cfg.ApplyDefaults()

	handle := mocks.NewMockHandle(ctrl)

	m.store.EXPECT().Load().Return(cfg, nil)
	m.store.EXPECT().Current().Return(cfg)
	m.provisioner.EXPECT().EnsureInstalled(gomock.Any(), "build").Return(nil)
	m.provisioner.EXPECT().RuntimePath().Return("java")
	m.classpath.EXPECT().Build(gomock.Any(), []string{"src"}, true).Return("cp", nil)
	m.launcher.EXPECT().StartManaged(gomock.Any(), gomock.Any()).Return(handle, nil)
	handle.EXPECT().Wait().Return(&domain.ExitError{Code: 3})

	exitCode := run(context.Background(), []string{"build", "--mode=plain"}, io.Discard, provideApp(application, m.logger))

	assert.Equal(t, 3, exitCode)
}

// TestRun_Signal verifies that the context is canceled on signal.
func TestRun_Signal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	application, m := newTestApp(ctrl)

	m.store.EXPECT().Load().Return(nil, nil)
	m.store.EXPECT().Current().Return(nil)
	m.launcher.EXPECT().RunLightweight(gomock.Any(), "", gomock.Nil()).DoAndReturn(
		func(ctx context.Context, _ string, _ []string) error {
			<-ctx.Done()
			return ctx.Err()
		})
	// Allow logging of the error when context is canceled
	m.logger.EXPECT().Error(gomock.Any()).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan int)

	go func() {
		errCh <- run(ctx, []string{}, io.Discard, provideApp(application, m.logger))
	}()

	// Wait a bit to ensure run() reaches the blocking child
	time.Sleep(100 * time.Millisecond)

	cancel()

	select {
	case ret := <-errCh:
		assert.NotEqual(t, 0, ret)
	case <-time.After(2 * time.Second):
		t.Fatal("TestRun_Signal timed out waiting for run() to return")
	}
}
