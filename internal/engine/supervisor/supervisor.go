// Package supervisor drives the watch task. It keeps one managed watch
// child running and restarts it whenever the dependency-relevant
// configuration of the watched build changes. Every cycle resolves the
// build, the runtime and the dependency cache afresh; nothing from a
// previous cycle is reused beyond what the cache validity check
// re-verifies.
package supervisor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"

	"go.trai.ch/stoke/internal/core/domain"
	"go.trai.ch/stoke/internal/core/ports"
	"go.trai.ch/stoke/internal/engine/dispatch"
	"go.trai.ch/stoke/internal/ui/style"
)

// interruptGrace bounds how long a child may linger after the interrupt
// before it is killed.
const interruptGrace = 5 * time.Second

var noticeStyle = lipgloss.NewStyle().Foreground(style.Ember).Bold(true)

// Supervisor owns the watch child process across configuration changes.
type Supervisor struct {
	logger     ports.Logger
	store      ports.ConfigStore
	dispatcher *dispatch.Dispatcher
	stdout     io.Writer
	grace      time.Duration
}

// NewSupervisor creates a supervisor spawning through the given dispatcher.
func NewSupervisor(log ports.Logger, store ports.ConfigStore, dispatcher *dispatch.Dispatcher) *Supervisor {
	return &Supervisor{
		logger:     log,
		store:      store,
		dispatcher: dispatcher,
		stdout:     os.Stdout,
		grace:      interruptGrace,
	}
}

// WithOutput redirects the restart notice.
// This is primarily used for testing.
func (s *Supervisor) WithOutput(w io.Writer) *Supervisor {
	s.stdout = w
	return s
}

// Run drives watch cycles for the build until the context ends or the
// child exits on its own. The build identifier is resolved up front so
// change detection and the restart notice name the concrete build even
// when the identifier was implied.
func (s *Supervisor) Run(ctx context.Context, buildID string, extraArgs []string) error {
	for {
		build, err := s.dispatcher.ResolveBuild(buildID)
		if err != nil {
			return err
		}

		handle, err := s.dispatcher.StartManaged(ctx, dispatch.ManagedRequest{
			Task:    domain.TaskWatch,
			BuildID: build.ID,
			Args:    extraArgs,
			UsePTY:  true,
		})
		if err != nil {
			return err
		}

		restart, err := s.superviseChild(ctx, build.ID, handle)
		if !restart {
			return err
		}

		s.notice(build.ID)
	}
}

// superviseChild waits on the child and the configuration concurrently
// and reports whether the loop should start a new cycle.
func (s *Supervisor) superviseChild(ctx context.Context, buildID string, handle ports.Handle) (bool, error) {
	waitCh := make(chan error, 1)
	go func() { waitCh <- handle.Wait() }()

	watchCtx, cancelWatch := context.WithCancel(ctx)
	defer cancelWatch()

	changeCh := make(chan error, 1)
	go func() {
		_, err := s.store.WaitForChange(watchCtx, buildID)
		changeCh <- err
	}()

	select {
	case err := <-waitCh:
		// The child ended on its own; its exit is the loop's result. The
		// change wait is released and drained so no goroutine outlives
		// the cycle; the store's watch itself stays up for later cycles.
		cancelWatch()
		<-changeCh
		return false, err

	case err := <-changeCh:
		if err != nil {
			// The surrounding context ended or the change watch failed.
			_ = s.stopChild(handle, waitCh)
			return false, err
		}

		if err := s.stopChild(handle, waitCh); err != nil {
			var exitErr *domain.ExitError
			if !errors.As(err, &exitErr) {
				s.logger.Warn(fmt.Sprintf("watch child shutdown: %v", err))
			}
		}
		return true, nil
	}
}

// stopChild interrupts the child and waits for it to exit, escalating to
// a kill when the grace period passes.
func (s *Supervisor) stopChild(handle ports.Handle, waitCh <-chan error) error {
	_ = handle.Interrupt()

	timer := time.NewTimer(s.grace)
	defer timer.Stop()

	select {
	case err := <-waitCh:
		return err
	case <-timer.C:
		s.logger.Warn("watch child ignored interrupt, killing it")
		_ = handle.Kill()
		return <-waitCh
	}
}

// notice prints the styled restart line between cycles.
func (s *Supervisor) notice(buildID string) {
	fmt.Fprintln(s.stdout, noticeStyle.Render(fmt.Sprintf("config changed, restarting watch for build %q", buildID)))
}
