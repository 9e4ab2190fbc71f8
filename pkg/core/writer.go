package core

import (
	"context"
	"sync"

	"github.com/aretw0/lifecycle"
)

// asyncWriter persists snapshots from a single goroutine.
// Newer snapshots replace an unwritten pending one, so at most one write is in
// flight and the document always reflects a complete snapshot.
type asyncWriter struct {
	repo    Repository
	onError func(error)
	onSaved func(discards []string)

	mu        sync.Mutex
	cond      *sync.Cond
	pending   []*Tab
	discards  []string
	hasPend   bool
	requested uint64
	written   uint64
	lastErr   error
	stopped   bool
	closed    bool

	kick chan struct{}
}

func newAsyncWriter(repo Repository, onError func(error), onSaved func([]string)) *asyncWriter {
	w := &asyncWriter{
		repo:    repo,
		onError: onError,
		onSaved: onSaved,
		kick:    make(chan struct{}, 1),
	}
	w.cond = sync.NewCond(&w.mu)
	return w
}

func (w *asyncWriter) start(ctx context.Context) {
	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		w.onError(err)
	}))
}

// enqueue must be called with a snapshot the caller no longer mutates.
// discards are handed to onSaved once a snapshot including them is written.
// After close nothing is accepted and ErrClosed is returned.
func (w *asyncWriter) enqueue(snapshot []*Tab, discards []string) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrClosed
	}
	w.pending = snapshot
	w.discards = append(w.discards, discards...)
	w.hasPend = true
	w.requested++
	w.mu.Unlock()

	select {
	case w.kick <- struct{}{}:
	default:
	}
	return nil
}

// close stops accepting snapshots. Already enqueued ones are still written.
func (w *asyncWriter) close() {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
}

func (w *asyncWriter) run(ctx context.Context) error {
	// Writes are never abandoned halfway through shutdown.
	saveCtx := context.WithoutCancel(ctx)
	defer func() {
		w.mu.Lock()
		w.stopped = true
		w.cond.Broadcast()
		w.mu.Unlock()
	}()
	for {
		select {
		case <-ctx.Done():
			w.drain(saveCtx)
			return nil
		case <-w.kick:
			w.drain(saveCtx)
		}
	}
}

func (w *asyncWriter) drain(ctx context.Context) {
	for {
		w.mu.Lock()
		if !w.hasPend {
			w.mu.Unlock()
			return
		}
		snap, discards, gen := w.pending, w.discards, w.requested
		w.pending, w.discards, w.hasPend = nil, nil, false
		w.mu.Unlock()

		// Callbacks run before flush waiters are released.
		err := w.repo.Save(ctx, snap)
		switch {
		case err != nil:
			w.onError(err)
		case len(discards) > 0 && w.onSaved != nil:
			w.onSaved(discards)
		}

		w.mu.Lock()
		w.written = gen
		w.lastErr = err
		w.cond.Broadcast()
		w.mu.Unlock()
	}
}

// flush blocks until every enqueued snapshot has been written and returns the
// error of the most recent write.
func (w *asyncWriter) flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for w.written < w.requested && !w.stopped {
		w.cond.Wait()
	}
	return w.lastErr
}

func (w *asyncWriter) pendingWrites() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.requested - w.written
}
