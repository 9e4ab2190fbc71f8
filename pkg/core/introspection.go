package core

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Tabs           int    `json:"tabs"`
	Notes          int    `json:"notes"`
	ActiveIndex    int    `json:"active_index"`
	Async          bool   `json:"async"`
	PendingWrites  uint64 `json:"pending_writes"`
	RepositoryType string `json:"repository_type"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notes := 0
	for _, t := range s.tabs {
		notes += len(t.Notes)
	}

	repoType := "unknown"
	if s.repo != nil {
		repoType = "repository"
		if comp, ok := s.repo.(introspection.Component); ok {
			repoType = comp.ComponentType()
		}
	}

	state := StoreState{
		Tabs:           len(s.tabs),
		Notes:          notes,
		ActiveIndex:    s.indexOfTab(s.active),
		Async:          s.writer != nil,
		RepositoryType: repoType,
	}
	if s.writer != nil {
		state.PendingWrites = s.writer.pendingWrites()
	}
	return state
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
