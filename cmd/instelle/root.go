package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	instelle "github.com/EagleStelle/InStelle"
)

var (
	verbose    bool
	dataDir    string
	assetDir   string
	configFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "instelle",
	Short: "Tabbed notes stored in a single JSON document",
	Long: `InStelle keeps notes grouped in tabs labelled by an emoji or an image.
This tool edits the same document the desktop app uses.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Folder holding the notes document")
	rootCmd.PersistentFlags().StringVar(&assetDir, "asset-dir", "", "Folder holding imported tab images")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file")
}

// openApp opens the store with the persistent flags applied. A document that
// exists but cannot be read is an error: the empty Store would overwrite it on
// the next save, and its images would look unused.
func openApp(ctx context.Context, extra ...instelle.Option) (*instelle.App, error) {
	app, err := openAppAllowingEmpty(ctx, extra...)
	if err != nil {
		return nil, err
	}
	if app.LoadErr != nil {
		_ = app.Close()
		return nil, fmt.Errorf("refusing to continue, %s could not be loaded: %w", app.Repository.Path, app.LoadErr)
	}
	return app, nil
}

// openAppAllowingEmpty is openApp for commands that never write, where an
// unreadable document only means starting with no tabs.
func openAppAllowingEmpty(ctx context.Context, extra ...instelle.Option) (*instelle.App, error) {
	opts := []instelle.Option{instelle.WithLogger(slog.Default())}
	if dataDir != "" {
		opts = append(opts, instelle.WithDataDir(dataDir))
	}
	if assetDir != "" {
		opts = append(opts, instelle.WithAssetDir(assetDir))
	}
	if configFile != "" {
		opts = append(opts, instelle.WithConfigFile(configFile))
	}
	opts = append(opts, extra...)

	app, err := instelle.OpenApp(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open notes: %w", err)
	}
	return app, nil
}
