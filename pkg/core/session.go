package core

// Session carries navigation-scoped state between views of the same Store.
// It replaces a process-wide "last active tab" variable: whoever owns the
// navigation keeps a Session and passes it along explicitly.
type Session struct {
	activeIndex int
	remembered  bool
}

// Remember records the position of the store's active tab.
func (se *Session) Remember(s *Store) {
	se.activeIndex = s.ActiveIndex()
	se.remembered = se.activeIndex >= 0
}

// Restore reactivates the remembered position if it still exists.
// It reports whether the active tab was changed.
func (se *Session) Restore(s *Store) bool {
	if !se.remembered {
		return false
	}
	tab, err := s.TabAt(se.activeIndex)
	if err != nil {
		return false
	}
	return s.SetActiveTab(tab) == nil
}

// ActiveIndex returns the remembered position, or -1.
func (se *Session) ActiveIndex() int {
	if !se.remembered {
		return -1
	}
	return se.activeIndex
}
