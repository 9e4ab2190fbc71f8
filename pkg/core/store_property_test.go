package core_test

import (
	"context"
	"reflect"
	"testing"

	"pgregory.net/rapid"

	"github.com/EagleStelle/InStelle/pkg/core"
)

func iconGenerator() *rapid.Generator[string] {
	return rapid.OneOf(
		rapid.Just("📄"),
		rapid.Just("⭐"),
		rapid.Just("img:cat.png"),
		rapid.Just("  "),
	)
}

func testStore_Invariants_Properties(t *rapid.T) {
	ctx := context.Background()
	repo := &MockRepository{}
	s := core.NewStore(repo, core.WithAssets(&MockAssets{}))

	steps := rapid.IntRange(1, 40).Draw(t, "steps")
	for i := 0; i < steps; i++ {
		tabs := s.Tabs()
		pickTab := func() *core.Tab {
			if len(tabs) == 0 {
				return nil
			}
			return tabs[rapid.IntRange(0, len(tabs)-1).Draw(t, "tab")]
		}
		pickNote := func(tab *core.Tab) string {
			if tab == nil || len(tab.Notes) == 0 {
				return ""
			}
			return tab.Notes[rapid.IntRange(0, len(tab.Notes)-1).Draw(t, "note")].ID
		}

		switch rapid.IntRange(0, 6).Draw(t, "op") {
		case 0:
			_, _ = s.AddTab(ctx, iconGenerator().Draw(t, "icon"))
		case 1:
			if tab := pickTab(); tab != nil {
				_ = s.EditTab(ctx, tab, iconGenerator().Draw(t, "icon"))
			}
		case 2:
			if tab := pickTab(); tab != nil {
				_ = s.DeleteTab(ctx, tab)
			}
		case 3:
			if tab := pickTab(); tab != nil {
				_ = s.SetActiveTab(tab)
			}
		case 4:
			if tab := pickTab(); tab != nil {
				_, _ = s.AddNote(ctx, tab, "same title", "")
			}
		case 5:
			tab := pickTab()
			if id := pickNote(tab); id != "" {
				_ = s.DeleteNote(ctx, tab, id)
			}
		case 6:
			tab := pickTab()
			if id := pickNote(tab); id != "" {
				_ = s.ReorderNote(ctx, tab, id, pickNote(tab))
			}
		}

		checkInvariants(t, s, repo)
	}
}

func checkInvariants(t *rapid.T, s *core.Store, repo *MockRepository) {
	tabs := s.Tabs()

	// Property: no tab holds two notes with the same ID
	for _, tab := range tabs {
		seen := map[string]bool{}
		for _, n := range tab.Notes {
			if seen[n.ID] {
				t.Fatalf("duplicate note id %s", n.ID)
			}
			seen[n.ID] = true
		}
	}

	// Property: the active tab is nil or one of the tabs
	if active := s.ActiveTab(); active != nil {
		found := false
		for _, tab := range tabs {
			if tab == active {
				found = true
			}
		}
		if !found {
			t.Fatal("active tab is not in the tab list")
		}
	} else if len(tabs) > 0 && s.ActiveIndex() != -1 {
		t.Fatal("nil active tab with a non-negative index")
	}

	// Property: the persisted document matches memory after every successful change
	if repo.Saves() > 0 && !reflect.DeepEqual(repo.Stored(), core.CloneTabs(tabs)) {
		t.Fatal("persisted document differs from memory")
	}
}

func TestStore_Invariants_Properties(t *testing.T) {
	t.Parallel()
	rapid.Check(t, testStore_Invariants_Properties)
}

func FuzzStore_Invariants_Properties(f *testing.F) {
	f.Fuzz(rapid.MakeFuzz(testStore_Invariants_Properties))
}
