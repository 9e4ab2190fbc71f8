package instelle

import (
	"context"
	"log/slog"

	"github.com/EagleStelle/InStelle/internal/platform"
	"github.com/EagleStelle/InStelle/pkg/adapters/fs"
	"github.com/EagleStelle/InStelle/pkg/core"
)

// Version exposes the version of the library.
// See version.go for the implementation using go:embed.

// --- Types ---

// Store is a public alias for the notes store.
type Store = core.Store

// Tab is a public alias for a tab.
type Tab = core.Tab

// Note is a public alias for a note.
type Note = core.Note

// App bundles a Store with its repository and asset store.
type App = platform.App

// --- Configuration ---

// Option defines a functional option for configuring InStelle.
type Option = platform.Option

// WithDataDir sets the folder holding the notes document.
func WithDataDir(dir string) Option {
	return platform.WithDataDir(dir)
}

// WithAssetDir sets the folder holding imported tab images.
func WithAssetDir(dir string) Option {
	return platform.WithAssetDir(dir)
}

// WithFilename sets the document file name.
func WithFilename(name string) Option {
	return platform.WithFilename(name)
}

// WithDefaultIcon sets the glyph used for tabs created without an icon.
func WithDefaultIcon(icon string) Option {
	return platform.WithDefaultIcon(icon)
}

// WithLogger sets the logger for the store and its adapters.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithAsyncSave moves document writes onto a background writer.
func WithAsyncSave(enabled bool) Option {
	return platform.WithAsyncSave(enabled)
}

// WithErrorHandler registers a callback for persistence and watcher failures.
func WithErrorHandler(fn func(error)) Option {
	return platform.WithErrorHandler(fn)
}

// WithReadOnly opens the document without ever writing it.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithForceTemp forces the data folders into the dev sandbox.
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithDevSafety controls the sandbox used when running via `go run` or `go test`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithSerializer overrides the document format.
func WithSerializer(s fs.Serializer) Option {
	return platform.WithSerializer(s)
}

// WithConfigFile reads defaults from a YAML file.
func WithConfigFile(path string) Option {
	return platform.WithConfigFile(path)
}

// --- Factory ---

// Open resolves the data folders, loads the document and returns the Store.
func Open(ctx context.Context, opts ...Option) (*core.Store, error) {
	return platform.Open(ctx, opts...)
}

// OpenApp is Open returning the repository and asset store as well.
func OpenApp(ctx context.Context, opts ...Option) (*App, error) {
	return platform.New(ctx, opts...)
}

// --- Safety & Paths ---

// DefaultDataDir returns the per-user folder of the notes document.
func DefaultDataDir() (string, error) {
	return platform.DefaultDataDir()
}

// DefaultAssetDir returns the per-user folder of imported images.
func DefaultAssetDir() (string, error) {
	return platform.DefaultAssetDir()
}

// ResolveDataDir applies the dev safety rules to a folder path.
func ResolveDataDir(dir string, forceTemp bool) string {
	return platform.ResolveDataDir(dir, forceTemp)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}
