package launcher

import "io"

// NewLauncherWithIO creates a launcher with explicit stdio for tests.
func NewLauncherWithIO(stdout io.Writer, stdin io.Reader) *Launcher {
	l := NewLauncher()
	l.stdout = stdout
	l.stdin = stdin

	return l
}
