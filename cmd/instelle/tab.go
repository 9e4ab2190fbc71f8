package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/EagleStelle/InStelle/pkg/core"
)

var (
	tabIcon  string
	tabImage string
)

var tabCmd = &cobra.Command{
	Use:   "tab",
	Short: "Manage tabs",
}

var tabListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tabs in tab bar order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		out := cmd.OutOrStdout()
		active := app.Store.ActiveTab()
		for i, tab := range app.Store.Tabs() {
			marker := " "
			if tab == active {
				marker = "*"
			}
			fmt.Fprintf(out, "%s %d  %s  (%d notes)\n", marker, i+1, tab.Icon, len(tab.Notes))
		}
		return nil
	},
}

var tabAddCmd = &cobra.Command{
	Use:   "add [icon]",
	Short: "Append a tab labelled by an emoji, or by an image with --image",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 && tabImage != "" {
			return fmt.Errorf("give either an icon or --image, not both")
		}

		ctx := cmd.Context()
		app, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer app.Close()

		var tab *core.Tab
		switch {
		case tabImage != "":
			tab, err = app.Store.AddImageTab(ctx, tabImage)
		case len(args) == 1:
			tab, err = app.Store.AddTab(ctx, args[0])
		default:
			tab, err = app.Store.AddTab(ctx, app.DefaultIcon)
		}
		if err != nil {
			return fmt.Errorf("failed to add tab: %w", err)
		}
		if err := app.Store.Flush(); err != nil {
			return fmt.Errorf("failed to save: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Tab added: %d %s\n", len(app.Store.Tabs()), tab.Icon)
		return nil
	},
}

var tabEditCmd = &cobra.Command{
	Use:   "edit <n>",
	Short: "Change the icon of the tab at position n",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if (tabIcon == "") == (tabImage == "") {
			return fmt.Errorf("exactly one of --icon or --image is required")
		}

		ctx := cmd.Context()
		app, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer app.Close()

		tab, err := tabByPosition(app.Store, args[0])
		if err != nil {
			return err
		}

		if tabImage != "" {
			err = app.Store.SetTabImage(ctx, tab, tabImage)
		} else {
			err = app.Store.EditTab(ctx, tab, tabIcon)
		}
		if err != nil {
			return fmt.Errorf("failed to edit tab: %w", err)
		}
		if err := app.Store.Flush(); err != nil {
			return fmt.Errorf("failed to save: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Tab %s updated: %s\n", args[0], tab.Icon)
		return nil
	},
}

var tabDeleteCmd = &cobra.Command{
	Use:   "delete <n>",
	Short: "Delete the tab at position n and its notes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer app.Close()

		tab, err := tabByPosition(app.Store, args[0])
		if err != nil {
			return err
		}
		if err := app.Store.DeleteTab(ctx, tab); err != nil {
			return fmt.Errorf("failed to delete tab: %w", err)
		}
		if err := app.Store.Flush(); err != nil {
			return fmt.Errorf("failed to save: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Tab deleted: %s\n", args[0])
		return nil
	},
}

func init() {
	tabAddCmd.Flags().StringVar(&tabImage, "image", "", "Image file (.jpg, .jpeg, .png) to use as the icon")
	tabEditCmd.Flags().StringVar(&tabIcon, "icon", "", "New emoji icon")
	tabEditCmd.Flags().StringVar(&tabImage, "image", "", "Image file (.jpg, .jpeg, .png) to use as the icon")

	tabCmd.AddCommand(tabListCmd, tabAddCmd, tabEditCmd, tabDeleteCmd)
	rootCmd.AddCommand(tabCmd)
}
