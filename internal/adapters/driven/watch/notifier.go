// Package watch reports changes to a dataset file using fsnotify.
//
// The notifier watches the file's parent directory rather than the file,
// because editors and export tools often replace a file by renaming a
// temporary one over it, which drops a watch placed on the file itself.
// Bursts of events are collapsed into one notification.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/incentiva/internal/core/ports/driven"
	"github.com/custodia-labs/incentiva/internal/logger"
)

// DefaultDebounce is the quiet period after the last event before a change
// is reported.
const DefaultDebounce = 300 * time.Millisecond

// Ensure Notifier implements the interface.
var _ driven.ChangeNotifier = (*Notifier)(nil)

// Notifier is an fsnotify-backed driven.ChangeNotifier.
type Notifier struct {
	debounce time.Duration
}

// NewNotifier creates a notifier. A non-positive debounce uses DefaultDebounce.
func NewNotifier(debounce time.Duration) *Notifier {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Notifier{debounce: debounce}
}

// Watch starts watching path. The returned channel receives path once per
// burst of changes and is closed when ctx is done.
func (n *Notifier) Watch(ctx context.Context, path string) (<-chan string, error) {
	target, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	dir := filepath.Dir(target)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching directory %s: %w", dir, err)
	}

	logger.Debug("Watching %s for changes", target)

	out := make(chan string, 1)
	go n.loop(ctx, watcher, target, path, out)
	return out, nil
}

// loop forwards debounced events for target until ctx is done.
func (n *Notifier) loop(ctx context.Context, watcher *fsnotify.Watcher, target, path string, out chan<- string) {
	defer close(out)
	defer watcher.Close()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target || !relevant(event.Op) {
				continue
			}
			logger.Debug("Change event %s on %s", event.Op, event.Name)
			if timer == nil {
				timer = time.NewTimer(n.debounce)
			} else {
				timer.Reset(n.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			// A pending notification already covers this one.
			select {
			case out <- path:
			default:
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// relevant reports whether an operation can change the file's content.
func relevant(op fsnotify.Op) bool {
	return op.Has(fsnotify.Write) || op.Has(fsnotify.Create) ||
		op.Has(fsnotify.Rename) || op.Has(fsnotify.Remove)
}
