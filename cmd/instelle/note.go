package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	noteTab         string
	noteTitle       string
	noteDescription string
	noteBefore      string
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage the notes of a tab",
}

var noteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the notes of a tab (the first tab by default)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		out := cmd.OutOrStdout()
		if len(app.Store.Tabs()) == 0 {
			fmt.Fprintln(out, "No tabs yet.")
			return nil
		}
		tab, err := selectTab(app.Store, noteTab)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "%s  %d notes\n", tab.Icon, len(tab.Notes))
		for _, n := range tab.Notes {
			fmt.Fprintf(out, "  %s  %s\n", shortID(n.ID), n.Title)
			if n.Description != "" {
				fmt.Fprintf(out, "            %s\n", n.Description)
			}
		}
		return nil
	},
}

var noteAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Append a note to a tab (the first tab by default)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer app.Close()

		tab, err := selectTab(app.Store, noteTab)
		if err != nil {
			return err
		}
		note, err := app.Store.AddNote(ctx, tab, noteTitle, noteDescription)
		if err != nil {
			return fmt.Errorf("failed to add note: %w", err)
		}
		if err := app.Store.Flush(); err != nil {
			return fmt.Errorf("failed to save: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Note added: %s\n", note.ID)
		return nil
	},
}

var noteEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change the title or description of a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer app.Close()

		tab, note, err := findNote(app.Store, args[0])
		if err != nil {
			return err
		}

		title, description := note.Title, note.Description
		if cmd.Flags().Changed("title") {
			title = noteTitle
		}
		if cmd.Flags().Changed("description") {
			description = noteDescription
		}

		if err := app.Store.UpdateNote(ctx, tab, note.ID, title, description); err != nil {
			return fmt.Errorf("failed to edit note: %w", err)
		}
		if err := app.Store.Flush(); err != nil {
			return fmt.Errorf("failed to save: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Note updated: %s\n", note.ID)
		return nil
	},
}

var noteDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer app.Close()

		tab, note, err := findNote(app.Store, args[0])
		if err != nil {
			return err
		}
		if err := app.Store.DeleteNote(ctx, tab, note.ID); err != nil {
			return fmt.Errorf("failed to delete note: %w", err)
		}
		if err := app.Store.Flush(); err != nil {
			return fmt.Errorf("failed to save: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Note deleted: %s\n", note.ID)
		return nil
	},
}

var noteMoveCmd = &cobra.Command{
	Use:   "move <id>",
	Short: "Move a note in front of another note, or to the end of its tab",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer app.Close()

		tab, note, err := findNote(app.Store, args[0])
		if err != nil {
			return err
		}

		targetID := ""
		if noteBefore != "" {
			targetTab, target, err := findNote(app.Store, noteBefore)
			if err != nil {
				return fmt.Errorf("target: %w", err)
			}
			if targetTab != tab {
				return fmt.Errorf("notes can only move within their own tab")
			}
			targetID = target.ID
		}

		if err := app.Store.ReorderNote(ctx, tab, note.ID, targetID); err != nil {
			return fmt.Errorf("failed to move note: %w", err)
		}
		if err := app.Store.Flush(); err != nil {
			return fmt.Errorf("failed to save: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Note moved: %s\n", note.ID)
		return nil
	},
}

func init() {
	noteListCmd.Flags().StringVar(&noteTab, "tab", "", "1-based tab position")
	noteAddCmd.Flags().StringVar(&noteTab, "tab", "", "1-based tab position")
	noteAddCmd.Flags().StringVarP(&noteTitle, "title", "t", "", "Note title")
	noteAddCmd.Flags().StringVarP(&noteDescription, "description", "d", "", "Note description")
	noteEditCmd.Flags().StringVarP(&noteTitle, "title", "t", "", "New title")
	noteEditCmd.Flags().StringVarP(&noteDescription, "description", "d", "", "New description")
	noteMoveCmd.Flags().StringVar(&noteBefore, "before", "", "Insert in front of this note (default: move to the end)")

	noteCmd.AddCommand(noteListCmd, noteAddCmd, noteEditCmd, noteDeleteCmd, noteMoveCmd)
	rootCmd.AddCommand(noteCmd)
}
