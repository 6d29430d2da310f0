package main

import (
	"fmt"

	"github.com/amonks/kanban/board"
	"github.com/amonks/kanban/internal/ui"
	"github.com/spf13/cobra"
)

var columnCmd = &cobra.Command{
	Use:   "column",
	Short: "Manage a board's columns",
}

// column add
var columnAddCmd = &cobra.Command{
	Use:   "add <board> <title>",
	Short: "Add a column to the end of a board",
	Args:  cobra.ExactArgs(2),
	RunE:  runColumnAdd,
}

// column rename
var columnRenameCmd = &cobra.Command{
	Use:   "rename <board> <column> <title>",
	Short: "Rename a column",
	Args:  cobra.ExactArgs(3),
	RunE:  runColumnRename,
}

// column delete
var columnDeleteCmd = &cobra.Command{
	Use:   "delete <board> <column>",
	Short: "Delete a column and its tasks",
	Args:  cobra.ExactArgs(2),
	RunE:  runColumnDelete,
}

var columnDeleteYes bool

func init() {
	rootCmd.AddCommand(columnCmd)
	columnCmd.AddCommand(columnAddCmd, columnRenameCmd, columnDeleteCmd)

	columnDeleteCmd.Flags().BoolVarP(&columnDeleteYes, "yes", "y", false, "Delete without asking for confirmation")
}

func runColumnAdd(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(sess *session) error {
		b, err := resolveBoard(sess.store, args[0])
		if err != nil {
			return err
		}
		created, err := sess.store.CreateColumn(b.ID, args[1])
		if err != nil {
			return err
		}

		b, _ = sess.store.Board(b.ID)
		highlight := columnHighlighter(b)
		return printResult(cmd, created, "Added column %s: %s", highlight(created.ID), created.Title)
	})
}

func runColumnRename(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(sess *session) error {
		b, err := resolveBoard(sess.store, args[0])
		if err != nil {
			return err
		}
		column, err := resolveColumn(b, args[1])
		if err != nil {
			return err
		}

		column.Title = args[2]
		result, err := sess.store.UpdateColumn(b.ID, column)
		if err != nil {
			return err
		}
		if err := resultError(result, "column", column.ID); err != nil {
			return err
		}

		title, _ := board.ValidateTitle(column.Title)
		highlight := columnHighlighter(b)
		return printResult(cmd, resultJSON{Result: result, ID: column.ID}, "Renamed column %s: %s", highlight(column.ID), title)
	})
}

func runColumnDelete(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(sess *session) error {
		b, err := resolveBoard(sess.store, args[0])
		if err != nil {
			return err
		}
		column, err := resolveColumn(b, args[1])
		if err != nil {
			return err
		}

		if !columnDeleteYes && len(column.Tasks) > 0 {
			prompter := ui.StdioPrompter{In: cmd.InOrStdin(), Out: cmd.ErrOrStderr()}
			message := fmt.Sprintf("Delete column %q and its %d tasks?", column.Title, len(column.Tasks))
			ok, err := prompter.Confirm(message)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.ErrOrStderr(), "Aborted.")
				return nil
			}
		}

		highlight := columnHighlighter(b)
		result, err := sess.store.DeleteColumn(b.ID, column.ID)
		if err != nil {
			return err
		}
		if err := resultError(result, "column", column.ID); err != nil {
			return err
		}
		return printResult(cmd, resultJSON{Result: result, ID: column.ID}, "Deleted column %s: %s", highlight(column.ID), column.Title)
	})
}
