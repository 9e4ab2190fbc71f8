// Package core holds the InStelle domain: tabs, notes and the Store that owns them.
package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// DefaultIcon is the glyph given to tabs created without an explicit icon.
const DefaultIcon = "📄"

// Note is a single title/description entry inside a tab.
// ID is assigned once by NewNote and is the only identity used for lookups.
type Note struct {
	ID          string
	Title       string
	Description string
}

// NewNote returns an empty note with a fresh identifier.
func NewNote() *Note {
	return &Note{ID: uuid.NewString()}
}

// Tab labels an ordered list of notes with a glyph or an image path.
type Tab struct {
	Icon  string
	Notes []*Note
}

// NewTab creates a tab with the given icon and no notes.
func NewTab(icon string) (*Tab, error) {
	if err := validateIcon(icon); err != nil {
		return nil, err
	}
	return &Tab{Icon: icon, Notes: []*Note{}}, nil
}

func validateIcon(icon string) error {
	if strings.TrimSpace(icon) == "" {
		return fmt.Errorf("%w: icon cannot be empty", ErrInvalidIcon)
	}
	return nil
}

// IndexOf returns the position of the note with the given ID, or -1.
func (t *Tab) IndexOf(id string) int {
	for i, n := range t.Notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

// Note returns the note with the given ID.
func (t *Tab) Note(id string) (*Note, bool) {
	if i := t.IndexOf(id); i >= 0 {
		return t.Notes[i], true
	}
	return nil, false
}

// clone returns a deep copy of the tab.
func (t *Tab) clone() *Tab {
	c := &Tab{Icon: t.Icon, Notes: make([]*Note, len(t.Notes))}
	for i, n := range t.Notes {
		cp := *n
		c.Notes[i] = &cp
	}
	return c
}

// CloneTabs deep-copies a tab list so the copy shares no pointers with the source.
func CloneTabs(tabs []*Tab) []*Tab {
	out := make([]*Tab, len(tabs))
	for i, t := range tabs {
		out[i] = t.clone()
	}
	return out
}

// EventType represents the type of change observed on the persisted document.
type EventType string

const (
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change to the persisted document made outside the Store.
type Event struct {
	Type      EventType
	Path      string
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer.
func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.Path)
}
