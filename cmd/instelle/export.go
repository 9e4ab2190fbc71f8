package main

import (
	"fmt"

	"github.com/spf13/cobra"

	instelle "github.com/EagleStelle/InStelle"
	"github.com/EagleStelle/InStelle/pkg/adapters/fs"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print every tab and note as JSON or YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		serializer, ok := fs.SerializerFor("export." + exportFormat)
		if !ok {
			return fmt.Errorf("unsupported format %q (use json or yaml)", exportFormat)
		}

		app, err := openApp(cmd.Context(), instelle.WithReadOnly(true))
		if err != nil {
			return err
		}
		defer app.Close()

		data, err := serializer.Serialize(app.Store.Tabs())
		if err != nil {
			return fmt.Errorf("failed to export: %w", err)
		}
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Output format: json or yaml")
	rootCmd.AddCommand(exportCmd)
}
