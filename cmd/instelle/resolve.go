package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/EagleStelle/InStelle/pkg/core"
)

// tabByPosition resolves a 1-based tab position.
func tabByPosition(store *core.Store, arg string) (*core.Tab, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return nil, fmt.Errorf("invalid tab position %q", arg)
	}
	return store.TabAt(n - 1)
}

// selectTab returns the tab at the 1-based position, or the active tab when arg is empty.
func selectTab(store *core.Store, arg string) (*core.Tab, error) {
	if arg != "" {
		return tabByPosition(store, arg)
	}
	if tab := store.ActiveTab(); tab != nil {
		return tab, nil
	}
	return nil, fmt.Errorf("%w: no tabs yet", core.ErrTabNotFound)
}

// findNote resolves a note by full ID or by a prefix unique across all tabs.
func findNote(store *core.Store, ref string) (*core.Tab, *core.Note, error) {
	if ref == "" {
		return nil, nil, fmt.Errorf("%w: empty note id", core.ErrNoteNotFound)
	}

	var (
		foundTab  *core.Tab
		foundNote *core.Note
		matches   int
	)
	for _, tab := range store.Tabs() {
		for _, n := range tab.Notes {
			if n.ID == ref {
				return tab, n, nil
			}
			if strings.HasPrefix(n.ID, ref) {
				foundTab, foundNote = tab, n
				matches++
			}
		}
	}

	switch matches {
	case 0:
		return nil, nil, fmt.Errorf("%w: %s", core.ErrNoteNotFound, ref)
	case 1:
		return foundTab, foundNote, nil
	default:
		return nil, nil, fmt.Errorf("note id prefix %q is ambiguous (%d matches)", ref, matches)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
