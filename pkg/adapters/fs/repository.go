package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/EagleStelle/InStelle/pkg/core"
)

// DefaultFilename is the name of the notes document inside the data folder.
const DefaultFilename = "notesAppData.json"

// Repository implements core.Repository with a single document on disk.
type Repository struct {
	Path       string
	config     Config
	serializer Serializer

	mu            sync.RWMutex
	watcherActive bool
	lastSave      *time.Time
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	Dir        string     // folder holding the document, created on demand
	Filename   string     // defaults to DefaultFilename
	Serializer Serializer // defaults to the serializer matching Filename's extension
	Logger     *slog.Logger
	ReadOnly   bool

	// ErrorHandler receives runtime errors from Watch. Optional.
	ErrorHandler func(error)
}

// NewRepository creates a new filesystem-backed repository.
func NewRepository(config Config) *Repository {
	if config.Filename == "" {
		config.Filename = DefaultFilename
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	serializer := config.Serializer
	if serializer == nil {
		if s, ok := SerializerFor(config.Filename); ok {
			serializer = s
		} else {
			serializer = NewJSONSerializer()
		}
	}
	return &Repository{
		Path:       filepath.Join(config.Dir, config.Filename),
		config:     config,
		serializer: serializer,
	}
}

// Initialize creates the data folder unless the repository is read-only.
func (r *Repository) Initialize(ctx context.Context) error {
	if r.config.ReadOnly {
		return nil
	}
	if err := os.MkdirAll(r.config.Dir, 0755); err != nil {
		return fmt.Errorf("%w: failed to create data directory: %w", core.ErrPersistence, err)
	}
	return nil
}

// Load reads and parses the document. A missing document is an empty tab list.
func (r *Repository) Load(ctx context.Context) ([]*core.Tab, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.Path)
	if errors.Is(err, os.ErrNotExist) {
		r.config.Logger.Debug("no document yet, starting empty", "path", r.Path)
		return []*core.Tab{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %w", core.ErrPersistence, r.Path, err)
	}

	tabs, err := r.serializer.Deserialize(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", r.Path, err)
	}
	return tabs, nil
}

// Save serializes tabs and replaces the document atomically.
func (r *Repository) Save(ctx context.Context, tabs []*core.Tab) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := r.serializer.Serialize(tabs)
	if err != nil {
		return fmt.Errorf("%w: failed to serialize document: %w", core.ErrPersistence, err)
	}

	if err := os.MkdirAll(r.config.Dir, 0755); err != nil {
		return fmt.Errorf("%w: failed to create data directory: %w", core.ErrPersistence, err)
	}

	if err := writeFileAtomic(r.Path, data, 0644); err != nil {
		return fmt.Errorf("%w: %w", core.ErrPersistence, err)
	}

	r.recordSave()
	r.config.Logger.Debug("document saved", "path", r.Path, "tabs", len(tabs), "bytes", len(data))
	return nil
}

// Serializer returns the serializer used for the document.
func (r *Repository) Serializer() Serializer {
	return r.serializer
}

func (r *Repository) recordSave() {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	r.lastSave = &now
}
