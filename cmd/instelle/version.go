package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	instelle "github.com/EagleStelle/InStelle"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of instelle",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "instelle version %s\n", strings.TrimSpace(instelle.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
