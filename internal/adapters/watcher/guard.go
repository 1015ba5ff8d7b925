package watcher

import (
	"os"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// ContentGuard suppresses change notifications for files whose bytes did not
// actually change. Editors and formatters frequently rewrite a file with
// identical content, which would otherwise trigger spurious reloads.
type ContentGuard struct {
	mu   sync.Mutex
	seen map[string]uint64
}

// NewContentGuard creates an empty guard.
func NewContentGuard() *ContentGuard {
	return &ContentGuard{
		seen: make(map[string]uint64),
	}
}

// Prime records the current content of path so the next Changed call only
// fires on a real edit. Unreadable files are left unrecorded.
func (g *ContentGuard) Prime(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.seen[path] = xxhash.Sum64(data)
}

// Changed reports whether the file's content differs from the last
// observation of the same path. A file that cannot be read counts as
// changed; its recorded state is dropped so a later recreation fires again.
func (g *ContentGuard) Changed(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		g.mu.Lock()
		defer g.mu.Unlock()
		delete(g.seen, path)
		return true
	}

	sum := xxhash.Sum64(data)

	g.mu.Lock()
	defer g.mu.Unlock()
	prev, ok := g.seen[path]
	g.seen[path] = sum
	return !ok || prev != sum
}
