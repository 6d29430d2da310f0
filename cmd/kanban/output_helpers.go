package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/amonks/kanban/board"
	"github.com/amonks/kanban/internal/ui"
	"github.com/spf13/cobra"
)

func encodeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

// printResult writes value as JSON under --json, and message otherwise.
func printResult(cmd *cobra.Command, value any, format string, args ...any) error {
	if jsonOutput {
		return encodeJSON(cmd.OutOrStdout(), value)
	}
	_, err := fmt.Fprintf(cmd.OutOrStdout(), format+"\n", args...)
	return err
}

// taskJSON is a task together with the column that owns it.
type taskJSON struct {
	board.Task
	ColumnID string `json:"columnId"`
}

// resultJSON reports the outcome of a nested update, delete, or move.
type resultJSON struct {
	Result board.Result `json:"result"`
	ID     string       `json:"id"`
}

func logHighlighter(prefixLengths map[string]int, highlight func(string, int) string) func(string) string {
	if prefixLengths == nil {
		prefixLengths = map[string]int{}
	}
	return func(id string) string {
		if id == "" {
			return id
		}
		prefixLen, ok := prefixLengths[strings.ToLower(id)]
		if !ok {
			return highlight(id, 0)
		}
		return highlight(id, prefixLen)
	}
}

func boardHighlighter(store *board.Store) func(string) string {
	return logHighlighter(board.NewBoardIndex(store.Boards()).PrefixLengths(), ui.HighlightID)
}

func columnHighlighter(b board.Board) func(string) string {
	return logHighlighter(board.NewColumnIndex(b).PrefixLengths(), ui.HighlightID)
}

func taskHighlighter(b board.Board) func(string) string {
	return logHighlighter(board.NewTaskIndex(b).PrefixLengths(), ui.HighlightID)
}

// resultError turns a NotFound result into an error naming what was missing.
func resultError(result board.Result, what, id string) error {
	if result == board.NotFound {
		return fmt.Errorf("%s %s no longer exists", what, id)
	}
	return nil
}
