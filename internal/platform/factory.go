package platform

import (
	"context"
	"log/slog"

	"github.com/EagleStelle/InStelle/pkg/adapters/fs"
	"github.com/EagleStelle/InStelle/pkg/core"
)

// App bundles a Store with the adapters it was built from.
type App struct {
	Store       *core.Store
	Repository  *fs.Repository
	Assets      *fs.AssetStore
	DefaultIcon string
	Logger      *slog.Logger

	// LoadErr is set when the document existed but could not be read. The
	// Store is then empty, and saving it would replace the unreadable file.
	LoadErr error
}

// Close stops the store's background writer, if any.
func (a *App) Close() error {
	return a.Store.Close()
}

// New builds the repository, asset store and Store and loads the document.
//
//	app, err := platform.New(ctx, platform.WithDataDir(dir), platform.WithAsyncSave(true))
//
// Only initialization errors are returned. A document that cannot be read is
// logged, reported to the error handler and kept in App.LoadErr, and the
// Store starts empty. Callers that write should check LoadErr first.
func New(ctx context.Context, opts ...Option) (*App, error) {
	o := parseOptions(opts)
	s, err := resolve(o)
	if err != nil {
		return nil, err
	}

	repo := fs.NewRepository(fs.Config{
		Dir:          s.dataDir,
		Filename:     s.filename,
		Serializer:   o.serializer,
		Logger:       s.logger,
		ReadOnly:     s.readOnly,
		ErrorHandler: o.errorHandler,
	})
	if err := repo.Initialize(ctx); err != nil {
		return nil, err
	}

	assets := fs.NewAssetStore(s.assetDir, s.logger)

	store := core.NewStore(repo,
		core.WithAssets(assets),
		core.WithStoreLogger(s.logger),
		core.WithErrorHandler(o.errorHandler),
		core.WithAsyncPersistence(s.async),
	)
	loadErr := store.Load(ctx)
	if loadErr != nil {
		s.logger.Warn("starting with no tabs", "path", repo.Path, "error", loadErr)
	}

	icon := s.defaultIcon
	if icon == "" {
		icon = core.DefaultIcon
	}

	return &App{
		Store:       store,
		Repository:  repo,
		Assets:      assets,
		DefaultIcon: icon,
		Logger:      s.logger,
		LoadErr:     loadErr,
	}, nil
}

// Open is New returning only the Store.
func Open(ctx context.Context, opts ...Option) (*core.Store, error) {
	app, err := New(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return app.Store, nil
}
