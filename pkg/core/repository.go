package core

import "context"

// Repository defines the contract for persisting the tab list.
// The whole list is read and written as one document.
type Repository interface {
	// Initialize ensures the underlying storage is ready (e.g., create directories).
	Initialize(ctx context.Context) error

	// Load returns the persisted tabs. A missing document yields an empty list.
	Load(ctx context.Context) ([]*Tab, error)

	// Save replaces the persisted document with the given tabs.
	Save(ctx context.Context, tabs []*Tab) error
}

// Watchable defines an interface for repositories that report external changes.
type Watchable interface {
	Watch(ctx context.Context) (<-chan Event, error)
}

// AssetStore manages image files owned by tabs.
type AssetStore interface {
	// Import copies an image into the store and returns the icon path to use.
	Import(ctx context.Context, src string) (string, error)

	// Owns reports whether icon refers to a file managed by the store.
	Owns(icon string) bool

	// Remove deletes an owned file. Missing files are not an error.
	Remove(ctx context.Context, icon string) error
}
