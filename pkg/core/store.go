package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Store is the single source of truth for tabs and notes.
//
// Every mutator changes the in-memory state first and then persists a deep
// copy of the full tab list through the Repository. A failed write does not
// roll the change back: the error (wrapping ErrPersistence) is returned and
// handed to the error handler, and the memory state stays ahead of the disk.
//
// Tabs and notes returned by the Store are live; treat them as read-only and
// change them only through Store methods.
type Store struct {
	mu      sync.RWMutex
	repo    Repository
	assets  AssetStore
	logger  *slog.Logger
	onError func(error)

	tabs   []*Tab
	active *Tab

	// icons released by the current operation, removed once the change is persisted
	discards []string
	inTx     bool

	async  bool
	writer *asyncWriter
	cancel context.CancelFunc
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithAssets sets the asset store used for image icons.
func WithAssets(assets AssetStore) StoreOption {
	return func(s *Store) {
		s.assets = assets
	}
}

// WithStoreLogger sets the logger for the store.
func WithStoreLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithErrorHandler registers a callback that receives every persistence failure.
// In asynchronous mode this is the only place write errors surface.
// The callback may run while the store is locked and must not call back into it.
func WithErrorHandler(fn func(error)) StoreOption {
	return func(s *Store) {
		s.onError = fn
	}
}

// WithAsyncPersistence moves document writes onto a background writer.
// Mutators return as soon as the snapshot is queued; call Flush or Close to wait.
func WithAsyncPersistence(enabled bool) StoreOption {
	return func(s *Store) {
		s.async = enabled
	}
}

// NewStore creates an empty Store backed by repo. Call Load to read persisted state.
func NewStore(repo Repository, opts ...StoreOption) *Store {
	s := &Store{
		repo:   repo,
		logger: slog.Default(),
		tabs:   []*Tab{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.async {
		ctx, cancel := context.WithCancel(context.Background())
		s.cancel = cancel
		s.writer = newAsyncWriter(repo, func(err error) {
			s.report(wrapPersistence(err))
		}, s.releaseIcons)
		s.writer.start(ctx)
	}
	return s
}

// --- Read access ---

// Tabs returns the tabs in tab bar order.
func (s *Store) Tabs() []*Tab {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Tab, len(s.tabs))
	copy(out, s.tabs)
	return out
}

// TabAt returns the tab at the zero-based position i.
func (s *Store) TabAt(i int) (*Tab, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.tabs) {
		return nil, fmt.Errorf("%w: no tab at position %d", ErrTabNotFound, i)
	}
	return s.tabs[i], nil
}

// ActiveTab returns the active tab, or nil when there are no tabs.
func (s *Store) ActiveTab() *Tab {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// ActiveIndex returns the position of the active tab, or -1.
func (s *Store) ActiveIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOfTab(s.active)
}

// --- Tabs ---

// AddTab appends a new tab with the given icon and makes it active.
func (s *Store) AddTab(ctx context.Context, icon string) (*Tab, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.addTab(icon)
	if err != nil {
		return nil, err
	}
	return t, s.commit(ctx)
}

// EditTab replaces the icon of tab. A previously imported image is removed
// once the change is persisted.
func (s *Store) EditTab(ctx context.Context, tab *Tab, icon string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editTab(tab, icon); err != nil {
		return err
	}
	return s.commit(ctx)
}

// SetTabImage imports the image at src and uses it as the icon of tab.
func (s *Store) SetTabImage(ctx context.Context, tab *Tab, src string) error {
	if s.assets == nil {
		return fmt.Errorf("%w: no asset store configured", ErrValidation)
	}
	icon, err := s.assets.Import(ctx, src)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editTab(tab, icon); err != nil {
		s.removeAsset(ctx, icon)
		return err
	}
	return s.commit(ctx)
}

// AddImageTab imports the image at src and appends a tab using it as icon
// in a single write. The import is undone if the tab cannot be added.
func (s *Store) AddImageTab(ctx context.Context, src string) (*Tab, error) {
	if s.assets == nil {
		return nil, fmt.Errorf("%w: no asset store configured", ErrValidation)
	}
	icon, err := s.assets.Import(ctx, src)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.addTab(icon)
	if err != nil {
		s.removeAsset(ctx, icon)
		return nil, err
	}
	return t, s.commit(ctx)
}

// DeleteTab removes tab. If it was active, the first remaining tab becomes active.
func (s *Store) DeleteTab(ctx context.Context, tab *Tab) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.deleteTab(tab); err != nil {
		return err
	}
	return s.commit(ctx)
}

// SetActiveTab makes tab the active tab. It is not persisted.
func (s *Store) SetActiveTab(tab *Tab) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setActive(tab)
}

// --- Notes ---

// NoteDraft is a note that has not been added to its tab yet.
// Committing it through the Store inserts it; dropping it discards it.
type NoteDraft struct {
	tab  *Tab
	note *Note
	done bool
}

// Note returns the draft's note.
func (d *NoteDraft) Note() *Note { return d.note }

// Tab returns the tab the draft will be added to.
func (d *NoteDraft) Tab() *Tab { return d.tab }

// BeginNote creates an empty note for tab without inserting it.
func (s *Store) BeginNote(tab *Tab) *NoteDraft {
	return &NoteDraft{tab: tab, note: NewNote()}
}

// CommitNote fills the draft and appends it to its tab.
func (s *Store) CommitNote(ctx context.Context, d *NoteDraft, title, description string) (*Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.commitDraft(d, title, description)
	if err != nil {
		return nil, err
	}
	return n, s.commit(ctx)
}

// AddNote appends a new note to tab.
func (s *Store) AddNote(ctx context.Context, tab *Tab, title, description string) (*Note, error) {
	return s.CommitNote(ctx, s.BeginNote(tab), title, description)
}

// UpdateNote sets the title and description of the note with the given ID.
func (s *Store) UpdateNote(ctx context.Context, tab *Tab, id, title, description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.updateNote(tab, id, title, description); err != nil {
		return err
	}
	return s.commit(ctx)
}

// DeleteNote removes the note with the given ID from tab.
func (s *Store) DeleteNote(ctx context.Context, tab *Tab, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.deleteNote(tab, id); err != nil {
		return err
	}
	return s.commit(ctx)
}

// ReorderNote moves the note sourceID to the current position of targetID.
// An empty or unknown targetID moves the note to the end.
func (s *Store) ReorderNote(ctx context.Context, tab *Tab, sourceID, targetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reorderNote(tab, sourceID, targetID); err != nil {
		return err
	}
	return s.commit(ctx)
}

// --- Persistence ---

// Save writes the full state now.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx)
}

// Load replaces the tabs with the persisted document and activates the first tab.
// On failure the store is left empty and the error is returned.
func (s *Store) Load(ctx context.Context) error {
	if s.writer != nil {
		// Keep reads behind queued writes.
		_ = s.writer.flush()
	}

	tabs, err := s.repo.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.discards = nil
	if err != nil {
		s.tabs = []*Tab{}
		s.active = nil
		err = wrapPersistence(err)
		s.report(err)
		return err
	}

	s.tabs = s.normalize(tabs)
	s.active = nil
	if len(s.tabs) > 0 {
		s.active = s.tabs[0]
	}
	s.logger.Debug("tabs loaded", "tabs", len(s.tabs))
	return nil
}

// Reload re-reads the document, keeping the active tab position when it still exists.
func (s *Store) Reload(ctx context.Context) error {
	var session Session
	session.Remember(s)
	if err := s.Load(ctx); err != nil {
		return err
	}
	session.Restore(s)
	return nil
}

// Flush waits for queued asynchronous writes and returns the last write error.
func (s *Store) Flush() error {
	if s.writer == nil {
		return nil
	}
	return wrapPersistence(s.writer.flush())
}

// Close stops the background writer after writing pending snapshots.
func (s *Store) Close() error {
	if s.writer == nil {
		return nil
	}
	s.writer.close()
	s.cancel()
	return wrapPersistence(s.writer.flush())
}

// --- Internals (callers hold s.mu) ---

func (s *Store) indexOfTab(tab *Tab) int {
	if tab == nil {
		return -1
	}
	for i, t := range s.tabs {
		if t == tab {
			return i
		}
	}
	return -1
}

func (s *Store) requireTab(tab *Tab) (int, error) {
	i := s.indexOfTab(tab)
	if i < 0 {
		return -1, ErrTabNotFound
	}
	return i, nil
}

func (s *Store) addTab(icon string) (*Tab, error) {
	t, err := NewTab(icon)
	if err != nil {
		return nil, err
	}
	s.tabs = append(s.tabs, t)
	s.active = t
	s.logger.Debug("tab added", "icon", icon, "tabs", len(s.tabs))
	return t, nil
}

func (s *Store) editTab(tab *Tab, icon string) error {
	if _, err := s.requireTab(tab); err != nil {
		return err
	}
	if err := validateIcon(icon); err != nil {
		return err
	}
	old := tab.Icon
	tab.Icon = icon
	if old != icon {
		s.discards = append(s.discards, old)
	}
	return nil
}

func (s *Store) deleteTab(tab *Tab) error {
	i, err := s.requireTab(tab)
	if err != nil {
		return err
	}
	s.tabs = append(s.tabs[:i:i], s.tabs[i+1:]...)
	if s.active == tab {
		s.active = nil
		if len(s.tabs) > 0 {
			s.active = s.tabs[0]
		}
	}
	s.discards = append(s.discards, tab.Icon)
	s.logger.Debug("tab deleted", "icon", tab.Icon, "tabs", len(s.tabs))
	return nil
}

func (s *Store) setActive(tab *Tab) error {
	if _, err := s.requireTab(tab); err != nil {
		return err
	}
	s.active = tab
	return nil
}

func (s *Store) commitDraft(d *NoteDraft, title, description string) (*Note, error) {
	if d == nil {
		return nil, fmt.Errorf("%w: nil draft", ErrValidation)
	}
	if d.done {
		return nil, ErrDraftClosed
	}
	if _, err := s.requireTab(d.tab); err != nil {
		return nil, err
	}
	d.note.Title = title
	d.note.Description = description
	d.tab.Notes = append(d.tab.Notes, d.note)
	d.done = true
	return d.note, nil
}

func (s *Store) updateNote(tab *Tab, id, title, description string) error {
	if _, err := s.requireTab(tab); err != nil {
		return err
	}
	n, ok := tab.Note(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoteNotFound, id)
	}
	n.Title = title
	n.Description = description
	return nil
}

func (s *Store) deleteNote(tab *Tab, id string) error {
	if _, err := s.requireTab(tab); err != nil {
		return err
	}
	i := tab.IndexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNoteNotFound, id)
	}
	tab.Notes = append(tab.Notes[:i:i], tab.Notes[i+1:]...)
	return nil
}

func (s *Store) reorderNote(tab *Tab, sourceID, targetID string) error {
	if _, err := s.requireTab(tab); err != nil {
		return err
	}
	notes, ok := MoveNote(tab.Notes, sourceID, targetID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoteNotFound, sourceID)
	}
	tab.Notes = notes
	return nil
}

// commit persists the current state unless a transaction is open, then
// releases icons dropped by the operation.
func (s *Store) commit(ctx context.Context) error {
	if s.inTx {
		return nil
	}
	snapshot := CloneTabs(s.tabs)
	discards := s.discards
	s.discards = nil

	if s.writer != nil {
		// The writer releases the icons once the snapshot is on disk.
		if err := s.writer.enqueue(snapshot, discards); err != nil {
			s.discards = discards
			err = wrapPersistence(err)
			s.report(err)
			return err
		}
		return nil
	}
	if err := s.repo.Save(ctx, snapshot); err != nil {
		// The document still references the old icons, so they stay.
		err = wrapPersistence(err)
		s.report(err)
		return err
	}
	s.removeUnused(ctx, discards)
	return nil
}

// releaseIcons runs on the async writer after a successful write.
func (s *Store) releaseIcons(discards []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeUnused(context.Background(), discards)
}

func (s *Store) removeUnused(ctx context.Context, icons []string) {
	for _, icon := range icons {
		if s.iconInUse(icon) {
			continue
		}
		s.removeAsset(ctx, icon)
	}
}

func (s *Store) iconInUse(icon string) bool {
	for _, t := range s.tabs {
		if t.Icon == icon {
			return true
		}
	}
	return false
}

// removeAsset deletes an owned image. Failures are logged only.
func (s *Store) removeAsset(ctx context.Context, icon string) {
	if s.assets == nil || !s.assets.Owns(icon) {
		return
	}
	if err := s.assets.Remove(ctx, icon); err != nil {
		s.logger.Warn("failed to remove tab image", "path", icon, "error", err)
		return
	}
	s.logger.Debug("tab image removed", "path", icon)
}

// normalize drops nil entries and gives every note a unique ID.
// Documents written before notes carried IDs load with empty ones.
func (s *Store) normalize(tabs []*Tab) []*Tab {
	out := make([]*Tab, 0, len(tabs))
	seen := make(map[string]bool)
	for _, t := range tabs {
		if t == nil {
			continue
		}
		notes := make([]*Note, 0, len(t.Notes))
		for _, n := range t.Notes {
			if n == nil {
				continue
			}
			if n.ID == "" || seen[n.ID] {
				n.ID = uuid.NewString()
			}
			seen[n.ID] = true
			notes = append(notes, n)
		}
		t.Notes = notes
		out = append(out, t)
	}
	return out
}

func (s *Store) report(err error) {
	if err == nil {
		return
	}
	s.logger.Error("persistence error", "error", err)
	if s.onError != nil {
		s.onError(err)
	}
}

func wrapPersistence(err error) error {
	if err == nil || errors.Is(err, ErrPersistence) || errors.Is(err, ErrParse) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}
