// Package instelle is the Composition Root for the InStelle notes core.
//
// It connects the tab and note domain (pkg/core) with the filesystem
// adapters (pkg/adapters/fs) using the Hexagonal Architecture pattern.
//
// Model:
//
// Notes are grouped into tabs. A tab is labelled by an emoji glyph or an
// imported image and holds an ordered list of notes, each with a title and a
// description. The whole tab list is persisted as one JSON document in the
// per-user configuration directory; which tab is active is never persisted.
//
// Features:
//
//   - **Single Document**: every change rewrites notesAppData.json atomically.
//   - **Image Icons**: images are copied into a private folder and removed once no tab uses them.
//   - **Stable Identity**: notes are identified by UUID, so duplicate titles are harmless.
//   - **Transactions**: group several changes into one write, rolled back on error.
//   - **Async Writes**: optionally coalesce writes on a background writer.
//   - **Dev Safety**: `go run` and `go test` never touch real notes.
//
// Usage:
//
//	store, err := instelle.Open(ctx, instelle.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//
//	tab, err := store.AddTab(ctx, "📄")
//	note, err := store.AddNote(ctx, tab, "Groceries", "milk, eggs")
package instelle
