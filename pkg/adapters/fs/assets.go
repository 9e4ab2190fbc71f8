package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"

	"github.com/EagleStelle/InStelle/pkg/core"
)

// ImagePattern matches the image files accepted as tab icons.
const ImagePattern = "*.{jpg,jpeg,png}"

// ErrUnsupportedImage is returned when importing a file that is not an accepted image.
var ErrUnsupportedImage = fmt.Errorf("%w: unsupported image type", core.ErrValidation)

// AssetStore keeps copies of the images used as tab icons.
// Imported files are named <uuid>.<ext> directly inside Dir.
type AssetStore struct {
	Dir    string
	logger *slog.Logger
}

// NewAssetStore creates an asset store rooted at dir.
func NewAssetStore(dir string, logger *slog.Logger) *AssetStore {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AssetStore{Dir: filepath.Clean(dir), logger: logger}
}

// IsSupportedImage reports whether name has an accepted image extension.
func IsSupportedImage(name string) bool {
	ok, err := doublestar.Match(ImagePattern, strings.ToLower(filepath.Base(name)))
	return err == nil && ok
}

// Import copies src into the store and returns the absolute path of the copy.
func (a *AssetStore) Import(ctx context.Context, src string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !IsSupportedImage(src) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedImage, filepath.Base(src))
	}

	info, err := os.Stat(src)
	if err != nil {
		return "", fmt.Errorf("%w: %w", core.ErrPersistence, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s is not a regular file", core.ErrValidation, src)
	}

	if err := os.MkdirAll(a.Dir, 0755); err != nil {
		return "", fmt.Errorf("%w: failed to create asset directory: %w", core.ErrPersistence, err)
	}

	dst := filepath.Join(a.Dir, uuid.NewString()+strings.ToLower(filepath.Ext(src)))
	if err := copyFileAtomic(src, dst, 0644); err != nil {
		return "", fmt.Errorf("%w: failed to import image: %w", core.ErrPersistence, err)
	}

	a.logger.Debug("image imported", "src", src, "path", dst)
	return dst, nil
}

// Owns reports whether icon is an image file directly inside the store.
func (a *AssetStore) Owns(icon string) bool {
	if icon == "" || !IsSupportedImage(icon) {
		return false
	}
	abs, err := filepath.Abs(icon)
	if err != nil {
		return false
	}
	return filepath.Dir(abs) == a.Dir
}

// Remove deletes an owned image. Missing files are not an error.
func (a *AssetStore) Remove(ctx context.Context, icon string) error {
	if !a.Owns(icon) {
		return fmt.Errorf("%w: %s is not managed by the asset store", core.ErrValidation, icon)
	}
	if err := os.Remove(icon); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Prune deletes every stored image not listed in keep and returns the removed paths.
func (a *AssetStore) Prune(ctx context.Context, keep []string) ([]string, error) {
	if _, err := os.Stat(a.Dir); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	referenced := make(map[string]bool, len(keep))
	for _, k := range keep {
		if abs, err := filepath.Abs(k); err == nil {
			referenced[abs] = true
		}
	}

	matches, err := doublestar.Glob(os.DirFS(a.Dir), ImagePattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}

	var removed []string
	for _, m := range matches {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		path := filepath.Join(a.Dir, filepath.FromSlash(m))
		if referenced[path] {
			continue
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			a.logger.Warn("failed to prune image", "path", path, "error", err)
			continue
		}
		removed = append(removed, path)
	}
	return removed, nil
}

var _ core.AssetStore = (*AssetStore)(nil)
