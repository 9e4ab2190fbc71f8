package core

// MoveNote splices the note identified by sourceID out of notes and reinserts it
// at the index the note identified by targetID occupies once the source is gone.
// With an empty or unknown targetID the source is appended.
// The relative order of every other note is preserved.
// It returns false, leaving notes untouched, when sourceID is not present.
func MoveNote(notes []*Note, sourceID, targetID string) ([]*Note, bool) {
	src := -1
	for i, n := range notes {
		if n.ID == sourceID {
			src = i
			break
		}
	}
	if src < 0 {
		return notes, false
	}

	moved := notes[src]
	rest := make([]*Note, 0, len(notes))
	rest = append(rest, notes[:src]...)
	rest = append(rest, notes[src+1:]...)

	dst := -1
	if targetID != "" && targetID != sourceID {
		for i, n := range rest {
			if n.ID == targetID {
				dst = i
				break
			}
		}
	}
	if dst < 0 {
		return append(rest, moved), true
	}

	out := make([]*Note, 0, len(notes))
	out = append(out, rest[:dst]...)
	out = append(out, moved)
	out = append(out, rest[dst:]...)
	return out, true
}
