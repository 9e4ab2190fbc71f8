package core

import (
	"context"
	"errors"
)

var errNestedTransaction = errors.New("transaction already in progress")

// Tx applies mutations to a Store without persisting them individually.
// It is only valid inside the function passed to WithTransaction.
type Tx struct {
	s      *Store
	closed bool
}

// WithTransaction runs fn with the store locked and persists the result once.
// If fn returns an error the in-memory state is restored and nothing is written.
// fn must use tx, not the Store, to make changes.
func (s *Store) WithTransaction(ctx context.Context, fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inTx {
		return errNestedTransaction
	}

	snap := s.snapshot()
	tx := &Tx{s: s}
	s.inTx = true

	err := fn(tx)
	tx.closed = true
	s.inTx = false

	if err != nil {
		s.restore(snap)
		return err
	}
	return s.commit(ctx)
}

func (tx *Tx) check() error {
	if tx.closed {
		return errors.New("transaction closed")
	}
	return nil
}

// Tabs returns the tabs as staged so far.
func (tx *Tx) Tabs() []*Tab {
	out := make([]*Tab, len(tx.s.tabs))
	copy(out, tx.s.tabs)
	return out
}

// AddTab stages a new active tab.
func (tx *Tx) AddTab(icon string) (*Tab, error) {
	if err := tx.check(); err != nil {
		return nil, err
	}
	return tx.s.addTab(icon)
}

// EditTab stages an icon change.
func (tx *Tx) EditTab(tab *Tab, icon string) error {
	if err := tx.check(); err != nil {
		return err
	}
	return tx.s.editTab(tab, icon)
}

// DeleteTab stages the removal of tab.
func (tx *Tx) DeleteTab(tab *Tab) error {
	if err := tx.check(); err != nil {
		return err
	}
	return tx.s.deleteTab(tab)
}

// SetActiveTab stages a change of the active tab.
func (tx *Tx) SetActiveTab(tab *Tab) error {
	if err := tx.check(); err != nil {
		return err
	}
	return tx.s.setActive(tab)
}

// AddNote stages a new note at the end of tab.
func (tx *Tx) AddNote(tab *Tab, title, description string) (*Note, error) {
	if err := tx.check(); err != nil {
		return nil, err
	}
	return tx.s.commitDraft(tx.s.BeginNote(tab), title, description)
}

// UpdateNote stages a note edit.
func (tx *Tx) UpdateNote(tab *Tab, id, title, description string) error {
	if err := tx.check(); err != nil {
		return err
	}
	return tx.s.updateNote(tab, id, title, description)
}

// DeleteNote stages a note removal.
func (tx *Tx) DeleteNote(tab *Tab, id string) error {
	if err := tx.check(); err != nil {
		return err
	}
	return tx.s.deleteNote(tab, id)
}

// ReorderNote stages a note move.
func (tx *Tx) ReorderNote(tab *Tab, sourceID, targetID string) error {
	if err := tx.check(); err != nil {
		return err
	}
	return tx.s.reorderNote(tab, sourceID, targetID)
}

// storeSnapshot captures state in place so that pointers held by callers
// stay valid after a rollback.
type storeSnapshot struct {
	tabs     []*Tab
	active   *Tab
	states   []tabState
	discards []string
}

type tabState struct {
	tab    *Tab
	icon   string
	notes  []*Note
	values []Note
}

func (s *Store) snapshot() storeSnapshot {
	snap := storeSnapshot{
		tabs:     append([]*Tab(nil), s.tabs...),
		active:   s.active,
		states:   make([]tabState, len(s.tabs)),
		discards: append([]string(nil), s.discards...),
	}
	for i, t := range s.tabs {
		st := tabState{
			tab:    t,
			icon:   t.Icon,
			notes:  append([]*Note(nil), t.Notes...),
			values: make([]Note, len(t.Notes)),
		}
		for j, n := range t.Notes {
			st.values[j] = *n
		}
		snap.states[i] = st
	}
	return snap
}

func (s *Store) restore(snap storeSnapshot) {
	s.tabs = snap.tabs
	if s.tabs == nil {
		s.tabs = []*Tab{}
	}
	s.active = snap.active
	s.discards = snap.discards
	for _, st := range snap.states {
		st.tab.Icon = st.icon
		st.tab.Notes = st.notes
		if st.tab.Notes == nil {
			st.tab.Notes = []*Note{}
		}
		for j, n := range st.notes {
			*n = st.values[j]
		}
	}
}
