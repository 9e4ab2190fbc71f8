package platform

import (
	"log/slog"
	"path/filepath"

	"github.com/EagleStelle/InStelle/pkg/adapters/fs"
)

// settings is the resolved configuration used to build the adapters.
type settings struct {
	dataDir     string
	assetDir    string
	filename    string
	defaultIcon string
	readOnly    bool
	async       bool
	logger      *slog.Logger
}

// resolve merges the config file into o and applies path defaults and dev safety.
func resolve(o *options) (*settings, error) {
	// Without an explicit file, config.yaml next to the document is used.
	configFile := o.configFile
	if configFile == "" {
		if dir := o.str("data_dir"); dir != "" {
			configFile = filepath.Join(dir, ConfigFilename)
		} else if path, err := DefaultConfigFile(); err == nil {
			configFile = path
		}
	}
	if configFile != "" {
		cfg, err := LoadConfigFile(configFile)
		if err != nil {
			return nil, err
		}
		if cfg != nil {
			cfg.apply(o)
		}
	}

	s := &settings{
		dataDir:     o.str("data_dir"),
		assetDir:    o.str("asset_dir"),
		filename:    o.str("filename"),
		defaultIcon: o.str("default_icon"),
		readOnly:    o.flag("read_only", false),
		async:       o.flag("async_save", false),
		logger:      o.logger,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.filename == "" {
		s.filename = fs.DefaultFilename
	}

	if s.dataDir == "" {
		dir, err := DefaultDataDir()
		if err != nil {
			return nil, err
		}
		s.dataDir = dir
	}
	if s.assetDir == "" {
		dir, err := DefaultAssetDir()
		if err != nil {
			return nil, err
		}
		s.assetDir = dir
	}

	// Read-only access is inherently safe, and the caller may opt out.
	bypassSafety := s.readOnly || !o.flag("dev_safety", true)
	useTemp := o.flag("temp_dir", false) || (IsDevRun() && !bypassSafety)

	originalData, originalAssets := s.dataDir, s.assetDir
	s.dataDir = ResolveDataDir(s.dataDir, useTemp)
	s.assetDir = ResolveDataDir(s.assetDir, useTemp)

	if IsDevRun() {
		switch {
		case bypassSafety && s.readOnly:
			s.logger.Debug("running in READ-ONLY mode (bypassing dev sandbox)", "data_dir", s.dataDir)
		case bypassSafety:
			s.logger.Warn("running in UNSAFE mode (bypassing dev sandbox)", "data_dir", s.dataDir)
		}
	}
	if useTemp && (originalData != s.dataDir || originalAssets != s.assetDir) {
		s.logger.Warn("running in SAFE MODE (Dev/Test)",
			"original_data_dir", originalData, "data_dir", s.dataDir,
			"original_asset_dir", originalAssets, "asset_dir", s.assetDir)
	}

	return s, nil
}
