package platform

import (
	"log/slog"

	"github.com/EagleStelle/InStelle/pkg/adapters/fs"
)

// options holds the internal configuration for opening a notes store.
// Settings live in config keyed by name so that values from the config file
// only fill what no explicit option has set.
type options struct {
	logger       *slog.Logger
	serializer   fs.Serializer
	errorHandler func(error)
	configFile   string
	config       map[string]any
}

// Option defines a functional option for configuring InStelle.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		config: make(map[string]any),
	}
}

func parseOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithDataDir sets the folder holding the notes document.
// Defaults to the "Instelle" folder under the user configuration directory.
func WithDataDir(dir string) Option {
	return func(o *options) {
		o.config["data_dir"] = dir
	}
}

// WithAssetDir sets the folder holding imported tab images.
// Defaults to the "InStelle" folder under the user configuration directory.
func WithAssetDir(dir string) Option {
	return func(o *options) {
		o.config["asset_dir"] = dir
	}
}

// WithFilename sets the document file name. The extension picks the serializer.
func WithFilename(name string) Option {
	return func(o *options) {
		o.config["filename"] = name
	}
}

// WithDefaultIcon sets the glyph used for tabs created without an icon.
func WithDefaultIcon(icon string) Option {
	return func(o *options) {
		o.config["default_icon"] = icon
	}
}

// WithLogger sets the logger shared by the store and its adapters.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithAsyncSave moves document writes onto a background writer.
// Errors then surface only through the error handler and Flush.
func WithAsyncSave(enabled bool) Option {
	return func(o *options) {
		o.config["async_save"] = enabled
	}
}

// WithErrorHandler registers a callback for persistence and watcher failures.
func WithErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}

// WithReadOnly opens the document without ever writing it.
// In this mode:
// 1. Every mutation keeps its in-memory effect but persisting returns ErrReadOnly.
// 2. No folders are created.
// 3. Dev safety is bypassed, so the real document is read.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.config["read_only"] = enabled
	}
}

// WithForceTemp forces the data and asset folders into the dev sandbox.
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.config["temp_dir"] = force
	}
}

// WithDevSafety controls the sandbox used when running via `go run` or `go test`.
// By default (true) folders outside the temp directory are re-rooted under it.
//
// CAUTION: disabling this lets development builds edit real notes.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.config["dev_safety"] = enabled
	}
}

// WithSerializer overrides the document format chosen from the file extension.
func WithSerializer(s fs.Serializer) Option {
	return func(o *options) {
		o.serializer = s
	}
}

// WithConfigFile reads defaults from a YAML file. A missing file is ignored.
func WithConfigFile(path string) Option {
	return func(o *options) {
		o.configFile = path
	}
}

func (o *options) str(key string) string {
	v, _ := o.config[key].(string)
	return v
}

func (o *options) flag(key string, def bool) bool {
	if v, ok := o.config[key].(bool); ok {
		return v
	}
	return def
}
