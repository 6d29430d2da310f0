package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/amonks/kanban/board"
	"github.com/amonks/kanban/internal/boardview"
	"github.com/amonks/kanban/internal/ui"
	"github.com/spf13/cobra"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Manage boards",
}

// board list
var boardListCmd = &cobra.Command{
	Use:   "list",
	Short: "List boards",
	Args:  cobra.NoArgs,
	RunE:  runBoardList,
}

// board create
var boardCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a board with To Do, In Progress, and Done columns",
	Args:  cobra.ExactArgs(1),
	RunE:  runBoardCreate,
}

// board rename
var boardRenameCmd = &cobra.Command{
	Use:   "rename <board> <title>",
	Short: "Rename a board",
	Args:  cobra.ExactArgs(2),
	RunE:  runBoardRename,
}

// board delete
var boardDeleteCmd = &cobra.Command{
	Use:   "delete <board>",
	Short: "Delete a board and everything in it",
	Args:  cobra.ExactArgs(1),
	RunE:  runBoardDelete,
}

var boardDeleteYes bool

// board show
var boardShowCmd = &cobra.Command{
	Use:   "show [board]",
	Short: "Show a board's columns and tasks",
	Long: `Show a board's columns and tasks.

Without an argument, or with ".", shows the current board.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBoardShow,
}

var (
	boardShowWidth        int
	boardShowDescriptions bool
)

func init() {
	rootCmd.AddCommand(boardCmd)
	boardCmd.AddCommand(boardListCmd, boardCreateCmd, boardRenameCmd, boardDeleteCmd, boardShowCmd)

	boardDeleteCmd.Flags().BoolVarP(&boardDeleteYes, "yes", "y", false, "Delete without asking for confirmation")

	boardShowCmd.Flags().IntVar(&boardShowWidth, "width", 0, "Render width (default: terminal width)")
	boardShowCmd.Flags().BoolVar(&boardShowDescriptions, "descriptions", false, "Show the first line of each description")
}

func runBoardList(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(sess *session) error {
		boards := sess.store.Boards()
		if jsonOutput {
			return encodeJSON(cmd.OutOrStdout(), boards)
		}
		if len(boards) == 0 {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "No boards.")
			return err
		}

		highlight := boardHighlighter(sess.store)
		_, err := fmt.Fprint(cmd.OutOrStdout(), formatBoardTable(boards, highlight, time.Now()))
		return err
	})
}

func formatBoardTable(boards []board.Board, highlight func(string) string, now time.Time) string {
	builder := ui.NewTableBuilder([]string{"ID", "TITLE", "COLUMNS", "TASKS", "DONE", "AGE"}, len(boards))
	for _, b := range boards {
		done := 0
		for _, column := range b.Columns {
			for _, task := range column.Tasks {
				if task.Completed {
					done++
				}
			}
		}
		builder.AddRow(
			highlight(b.ID),
			ui.TruncateTableCell(b.Title),
			strconv.Itoa(len(b.Columns)),
			strconv.Itoa(b.TaskCount()),
			strconv.Itoa(done),
			ui.FormatTimeAgo(b.CreatedAt, now),
		)
	}
	return builder.String()
}

func runBoardCreate(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(sess *session) error {
		created, err := sess.store.CreateBoard(args[0])
		if err != nil {
			return err
		}
		highlight := boardHighlighter(sess.store)
		return printResult(cmd, created, "Created board %s: %s", highlight(created.ID), created.Title)
	})
}

func runBoardRename(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(sess *session) error {
		b, err := resolveBoard(sess.store, args[0])
		if err != nil {
			return err
		}
		b.Title = args[1]
		updated, err := sess.store.UpdateBoard(b)
		if err != nil {
			return err
		}
		highlight := boardHighlighter(sess.store)
		return printResult(cmd, updated, "Renamed board %s: %s", highlight(updated.ID), updated.Title)
	})
}

func runBoardDelete(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(sess *session) error {
		b, err := resolveBoard(sess.store, args[0])
		if err != nil {
			return err
		}

		if !boardDeleteYes {
			prompter := ui.StdioPrompter{In: cmd.InOrStdin(), Out: cmd.ErrOrStderr()}
			message := fmt.Sprintf("Delete board %q with %d columns and %d tasks?", b.Title, len(b.Columns), b.TaskCount())
			ok, err := prompter.Confirm(message)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.ErrOrStderr(), "Aborted.")
				return nil
			}
		}

		highlight := boardHighlighter(sess.store)
		label := highlight(b.ID)
		if err := sess.store.DeleteBoard(b.ID); err != nil {
			return err
		}
		return printResult(cmd, resultJSON{Result: board.Applied, ID: b.ID}, "Deleted board %s: %s", label, b.Title)
	})
}

func runBoardShow(cmd *cobra.Command, args []string) error {
	arg := currentBoardArg
	if len(args) > 0 {
		arg = args[0]
	}

	return withSession(cmd, func(sess *session) error {
		b, err := resolveBoard(sess.store, arg)
		if err != nil {
			return err
		}
		if jsonOutput {
			return encodeJSON(cmd.OutOrStdout(), b)
		}

		width := boardShowWidth
		if width <= 0 {
			width = boardview.TerminalWidth()
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), boardview.Render(b, boardview.Options{
			Width:            width,
			Now:              time.Now(),
			FormatID:         taskHighlighter(b),
			ShowDescriptions: boardShowDescriptions,
		}))
		return err
	})
}
