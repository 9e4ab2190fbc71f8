package platform

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileConfig is the optional YAML configuration file.
type FileConfig struct {
	DataDir     string `yaml:"data_dir"`
	AssetDir    string `yaml:"asset_dir"`
	Filename    string `yaml:"filename"`
	DefaultIcon string `yaml:"default_icon"`
	AsyncSave   *bool  `yaml:"async_save"`
	ReadOnly    *bool  `yaml:"read_only"`
	LogLevel    string `yaml:"log_level"`
}

// LoadConfigFile reads a YAML config file. A missing file yields nil and no error.
func LoadConfigFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	if cfg.LogLevel != "" {
		if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
			return nil, fmt.Errorf("invalid config %s: %w", path, err)
		}
	}
	return &cfg, nil
}

// ParseLogLevel maps debug, info, warn and error to slog levels.
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}

// apply fills every setting the options left unset.
func (c *FileConfig) apply(o *options) {
	setDefault(o, "data_dir", c.DataDir)
	setDefault(o, "asset_dir", c.AssetDir)
	setDefault(o, "filename", c.Filename)
	setDefault(o, "default_icon", c.DefaultIcon)
	if c.AsyncSave != nil {
		setDefault(o, "async_save", *c.AsyncSave)
	}
	if c.ReadOnly != nil {
		setDefault(o, "read_only", *c.ReadOnly)
	}
	if o.logger == nil && c.LogLevel != "" {
		level, _ := ParseLogLevel(c.LogLevel)
		o.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	}
}

func setDefault[T comparable](o *options, key string, value T) {
	var zero T
	if value == zero {
		return
	}
	if _, ok := o.config[key]; ok {
		return
	}
	o.config[key] = value
}
