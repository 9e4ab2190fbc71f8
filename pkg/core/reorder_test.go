package core

import (
	"strings"
	"testing"
)

func notesOf(ids string) []*Note {
	var out []*Note
	for _, id := range strings.Split(ids, "") {
		out = append(out, &Note{ID: id, Title: id})
	}
	return out
}

func idsOf(notes []*Note) string {
	var sb strings.Builder
	for _, n := range notes {
		sb.WriteString(n.ID)
	}
	return sb.String()
}

func TestMoveNote(t *testing.T) {
	tests := []struct {
		name   string
		notes  string
		source string
		target string
		want   string
		wantOK bool
	}{
		{name: "before later target", notes: "ABC", source: "A", target: "C", want: "BAC", wantOK: true},
		{name: "before earlier target", notes: "ABC", source: "C", target: "A", want: "CAB", wantOK: true},
		{name: "adjacent target keeps order", notes: "ABCD", source: "B", target: "C", want: "ABCD", wantOK: true},
		{name: "backwards past one", notes: "ABCD", source: "C", target: "B", want: "ACBD", wantOK: true},
		{name: "no target appends", notes: "ABC", source: "A", target: "", want: "BCA", wantOK: true},
		{name: "unknown target appends", notes: "ABC", source: "B", target: "Z", want: "ACB", wantOK: true},
		{name: "self target appends", notes: "ABC", source: "A", target: "A", want: "BCA", wantOK: true},
		{name: "single note", notes: "A", source: "A", target: "", want: "A", wantOK: true},
		{name: "unknown source", notes: "ABC", source: "Z", target: "A", want: "ABC", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MoveNote(notesOf(tt.notes), tt.source, tt.target)
			if ok != tt.wantOK {
				t.Fatalf("MoveNote() ok = %v, want %v", ok, tt.wantOK)
			}
			if idsOf(got) != tt.want {
				t.Errorf("MoveNote() = %q, want %q", idsOf(got), tt.want)
			}
		})
	}
}

func TestMoveNote_ThenAppendEndsLast(t *testing.T) {
	for _, target := range []string{"A", "B", "C", "D", "E", ""} {
		notes := notesOf("ABCDE")
		notes, _ = MoveNote(notes, "C", target)
		notes, _ = MoveNote(notes, "C", "")
		if got := notes[len(notes)-1].ID; got != "C" {
			t.Errorf("target %q: last note = %s, want C", target, got)
		}
		if len(notes) != 5 {
			t.Errorf("target %q: len = %d, want 5", target, len(notes))
		}
	}
}

func TestMoveNote_DoesNotAliasInput(t *testing.T) {
	notes := notesOf("ABC")
	_, _ = MoveNote(notes, "A", "")
	if idsOf(notes) != "ABC" {
		t.Errorf("input modified: %q", idsOf(notes))
	}
}
