package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	adapter "github.com/EagleStelle/InStelle/pkg/adapters/lifecycle"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print changes to the notes document and reload it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// Watching never writes, and a broken document may be fixed while we wait.
		app, err := openAppAllowingEmpty(ctx)
		if err != nil {
			return err
		}
		defer app.Close()

		events, err := app.Repository.Watch(ctx)
		if err != nil {
			return fmt.Errorf("failed to watch document: %w", err)
		}
		source := adapter.NewSource(events)
		if err := source.Start(ctx); err != nil {
			return fmt.Errorf("failed to start watcher: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", app.Repository.Path)
		for e := range source.Events() {
			fmt.Fprintln(out, e.String())
			if err := app.Store.Reload(context.WithoutCancel(ctx)); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "reload failed: %v\n", err)
				continue
			}
			tabs := app.Store.Tabs()
			notes := 0
			for _, t := range tabs {
				notes += len(t.Notes)
			}
			fmt.Fprintf(out, "  %d tabs, %d notes\n", len(tabs), notes)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
