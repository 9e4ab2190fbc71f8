package instelle_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	instelle "github.com/EagleStelle/InStelle"
)

// Example_basic demonstrates how to open a store, add notes and reorder them.
func Example_basic() {
	// Create a temporary directory for the example
	tmpDir, err := os.MkdirTemp("", "instelle-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	ctx := context.Background()
	store, err := instelle.Open(ctx,
		instelle.WithDataDir(filepath.Join(tmpDir, "Instelle")),
		instelle.WithAssetDir(filepath.Join(tmpDir, "InStelle")),
	)
	if err != nil {
		log.Fatal(err)
	}

	// 1. Add a tab and three notes
	tab, err := store.AddTab(ctx, "📄")
	if err != nil {
		log.Fatal(err)
	}
	var ids []string
	for _, title := range []string{"x", "y", "z"} {
		note, err := store.AddNote(ctx, tab, title, "")
		if err != nil {
			log.Fatal(err)
		}
		ids = append(ids, note.ID)
	}

	// 2. Move "x" in front of "z"
	if err := store.ReorderNote(ctx, tab, ids[0], ids[2]); err != nil {
		log.Fatal(err)
	}

	for _, n := range store.ActiveTab().Notes {
		fmt.Println(n.Title)
	}
	// Output:
	// y
	// x
	// z
}
