package platform

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFilename)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigFile(t *testing.T) {
	t.Run("Missing File", func(t *testing.T) {
		cfg, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("All Keys", func(t *testing.T) {
		path := writeConfig(t, `
data_dir: /data/notes
asset_dir: /data/images
filename: notes.yaml
default_icon: "⭐"
async_save: true
read_only: false
log_level: debug
`)
		cfg, err := LoadConfigFile(path)
		require.NoError(t, err)
		require.NotNil(t, cfg)
		assert.Equal(t, "/data/notes", cfg.DataDir)
		assert.Equal(t, "/data/images", cfg.AssetDir)
		assert.Equal(t, "notes.yaml", cfg.Filename)
		assert.Equal(t, "⭐", cfg.DefaultIcon)
		require.NotNil(t, cfg.AsyncSave)
		assert.True(t, *cfg.AsyncSave)
		require.NotNil(t, cfg.ReadOnly)
		assert.False(t, *cfg.ReadOnly)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("Malformed YAML", func(t *testing.T) {
		_, err := LoadConfigFile(writeConfig(t, "data_dir: [unclosed"))
		assert.Error(t, err)
	})

	t.Run("Unknown Log Level", func(t *testing.T) {
		_, err := LoadConfigFile(writeConfig(t, "log_level: chatty"))
		assert.Error(t, err)
	})
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLogLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestFileConfigApply(t *testing.T) {
	async := true
	cfg := &FileConfig{DataDir: "/from/file", Filename: "notes.yaml", AsyncSave: &async}

	o := parseOptions([]Option{WithDataDir("/explicit"), WithAsyncSave(false)})
	cfg.apply(o)

	assert.Equal(t, "/explicit", o.str("data_dir"), "explicit options win")
	assert.Equal(t, "notes.yaml", o.str("filename"), "file fills unset values")
	assert.False(t, o.flag("async_save", true), "explicit false is kept")
	assert.Nil(t, o.logger, "no log level, no logger")
}
