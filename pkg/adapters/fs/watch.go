package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/EagleStelle/InStelle/pkg/core"
)

// watchDebounce collapses the burst of events produced by one atomic write.
const watchDebounce = 50 * time.Millisecond

// Watch reports changes to the document made by anyone, including this process.
// Temp files of atomic writes are ignored and bursts are debounced into one event.
// The returned channel is closed when ctx is done.
func (r *Repository) Watch(ctx context.Context) (<-chan core.Event, error) {
	if !r.config.ReadOnly {
		if err := os.MkdirAll(r.config.Dir, 0755); err != nil {
			return nil, fmt.Errorf("%w: failed to create data directory: %w", core.ErrPersistence, err)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(r.config.Dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", r.config.Dir, err)
	}

	events := make(chan core.Event, 16)
	r.setWatcherActive(true)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(events)
		defer r.setWatcherActive(false)
		defer watcher.Close()
		return r.watchLoop(ctx, watcher, events)
	}, lifecycle.WithErrorHandler(func(err error) {
		r.reportWatchError(fmt.Errorf("watcher panic: %w", err))
	}))

	return events, nil
}

func (r *Repository) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, out chan<- core.Event) error {
	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()

	var pending *core.Event
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			eType := r.classify(event)
			if eType == "" {
				continue
			}
			r.config.Logger.Debug("document event", "op", event.Op.String(), "name", event.Name)
			pending = &core.Event{Type: eType, Path: r.Path, Timestamp: time.Now().Unix()}
			timer.Reset(watchDebounce)

		case wErr, ok := <-watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			r.reportWatchError(wErr)

		case <-timer.C:
			if pending == nil {
				continue
			}
			select {
			case out <- *pending:
			case <-ctx.Done():
				return nil
			}
			pending = nil
		}
	}
}

// classify maps a raw event to a document event type, or "" to drop it.
func (r *Repository) classify(event fsnotify.Event) core.EventType {
	if isTempFile(event.Name) || filepath.Base(event.Name) != r.config.Filename {
		return ""
	}
	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		return core.EventModify
	default:
		return ""
	}
}

func (r *Repository) reportWatchError(err error) {
	r.config.Logger.Error("watcher error", "error", err)
	if r.config.ErrorHandler != nil {
		r.config.ErrorHandler(err)
	}
}

var _ core.Watchable = (*Repository)(nil)
