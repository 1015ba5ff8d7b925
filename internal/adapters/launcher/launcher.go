// Package launcher spawns toolchain child processes: the managed JVM
// runner and the lightweight stoke-lite interpreter.
package launcher

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/creack/pty"
	"go.trai.ch/zerr"
	"golang.org/x/term"

	"go.trai.ch/stoke/internal/core/domain"
	"go.trai.ch/stoke/internal/core/ports"
)

// Launcher implements ports.Launcher.
type Launcher struct {
	stdout io.Writer
	stdin  io.Reader

	pumpOnce sync.Once
	broker   stdinBroker
}

// NewLauncher creates a launcher wired to the process terminal.
func NewLauncher() *Launcher {
	return &Launcher{
		stdout: os.Stdout,
		stdin:  os.Stdin,
	}
}

// StartManaged spawns `<runtime> -cp <classpath> <main> --init <payload>
// <script> <args...>` and returns without waiting.
func (l *Launcher) StartManaged(ctx context.Context, spec ports.ManagedSpec) (ports.Handle, error) {
	argv := []string{"-cp", spec.Classpath, domain.RunnerMainClass, domain.InitFlag, spec.Payload}
	if spec.Script != "" {
		argv = append(argv, spec.Script)
	}
	argv = append(argv, spec.Args...)

	//nolint:gosec // the runtime path comes from the provisioner, not user input
	cmd := exec.CommandContext(ctx, spec.Runtime, argv...)

	if spec.UsePTY {
		return l.startPTY(cmd)
	}

	cmd.Stdin = l.stdin
	cmd.Stdout = l.stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return nil, zerr.Wrap(err, domain.ErrTaskSpawnFailed.Error())
	}

	return &procHandle{cmd: cmd}, nil
}

// startPTY runs the child on a pseudo-terminal. Output is pumped to the
// launcher's stdout and terminal input is forwarded through the broker, so
// the child can be interrupted and respawned without losing the
// surrounding terminal.
func (l *Launcher) startPTY(cmd *exec.Cmd) (ports.Handle, error) {
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrTaskSpawnFailed.Error())
	}
	_ = pty.InheritSize(os.Stdin, ptmx)

	restore := makeRaw()

	l.pumpOnce.Do(func() {
		go l.broker.pump(l.stdin)
	})
	l.broker.attach(ptmx)

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		defer func() { _ = ptmx.Close() }()

		_, _ = io.Copy(l.stdout, ptmx)
	}()

	return &ptyHandle{
		cmd:    cmd,
		ioDone: ioDone,
		cleanup: func() {
			l.broker.detach(ptmx)
			restore()
		},
	}, nil
}

// RunLightweight runs the interpreter synchronously on the inherited
// terminal. An empty classpath is not passed on.
func (l *Launcher) RunLightweight(ctx context.Context, classpath string, args []string) error {
	toolPath, err := exec.LookPath(liteBinary())
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrTaskSpawnFailed.Error()), "tool", liteBinary())
	}

	var argv []string
	if classpath != "" {
		argv = append(argv, "--classpath", classpath)
	}
	argv = append(argv, args...)

	//nolint:gosec // the binary comes from a PATH lookup or an explicit override
	cmd := exec.CommandContext(ctx, toolPath, argv...)
	cmd.Stdin = l.stdin
	cmd.Stdout = l.stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return zerr.Wrap(err, domain.ErrTaskSpawnFailed.Error())
	}

	return waitErr(cmd.Wait())
}

// procHandle controls a child inheriting the terminal directly.
type procHandle struct {
	cmd *exec.Cmd
}

func (h *procHandle) Interrupt() error { return h.cmd.Process.Signal(os.Interrupt) }

func (h *procHandle) Kill() error { return h.cmd.Process.Kill() }

func (h *procHandle) Wait() error { return waitErr(h.cmd.Wait()) }

// ptyHandle controls a child running on a launcher-owned pseudo-terminal.
type ptyHandle struct {
	cmd     *exec.Cmd
	ioDone  <-chan struct{}
	cleanup func()
}

func (h *ptyHandle) Interrupt() error { return h.cmd.Process.Signal(os.Interrupt) }

func (h *ptyHandle) Kill() error { return h.cmd.Process.Kill() }

// Wait blocks until the child exits and the output pump has drained.
func (h *ptyHandle) Wait() error {
	err := h.cmd.Wait()
	<-h.ioDone
	h.cleanup()

	return waitErr(err)
}

// waitErr converts a child exit status into the domain exit error so the
// CLI can propagate the code unchanged.
func waitErr(err error) error {
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &domain.ExitError{Code: exitErr.ExitCode()}
	}

	return zerr.Wrap(err, domain.ErrTaskExecutionFailed.Error())
}

// makeRaw switches the surrounding terminal into raw mode while a pty
// child runs, returning the restore function. Without a terminal it is a
// no-op.
func makeRaw() func() {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return func() {}
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return func() {}
	}

	return func() { _ = term.Restore(fd, state) }
}

func liteBinary() string {
	if bin := os.Getenv(domain.LiteToolEnv); bin != "" {
		return bin
	}

	return domain.LiteToolName
}
