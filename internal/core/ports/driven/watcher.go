package driven

import "context"

// Watcher delivers file change notifications for watch mode.
// Optional: when nil, check --watch is unavailable.
type Watcher interface {
	// Watch begins watching the given directories recursively and returns
	// a channel of changed file paths. The channel is closed when the
	// context is cancelled or the watcher is closed.
	Watch(ctx context.Context, paths []string) (<-chan string, error)

	// Close releases watcher resources.
	Close() error
}
