package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete imported images no tab uses anymore",
	Long: `Prune removes images left in the asset folder by failed saves or by
edits made with older versions. Images referenced by a tab are kept.
Nothing is removed when the notes document cannot be read.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer app.Close()

		var keep []string
		for _, tab := range app.Store.Tabs() {
			keep = append(keep, tab.Icon)
		}

		removed, err := app.Assets.Prune(ctx, keep)
		if err != nil {
			return fmt.Errorf("failed to prune images: %w", err)
		}
		out := cmd.OutOrStdout()
		for _, path := range removed {
			fmt.Fprintln(out, "removed", path)
		}
		fmt.Fprintf(out, "%d unused images removed\n", len(removed))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pruneCmd)
}
