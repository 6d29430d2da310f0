package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/amonks/kanban/board"
	"github.com/amonks/kanban/internal/markdown"
	internalstrings "github.com/amonks/kanban/internal/strings"
	"github.com/amonks/kanban/internal/ui"
)

const (
	taskDetailLineWidth = 80
	taskDetailIndent    = 2
)

// formatTaskDetail renders a task with its rendered description.
func formatTaskDetail(t board.Task, column board.Column, highlight func(string) string, now time.Time) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "ID:        %s\n", highlight(t.ID))
	fmt.Fprintf(&builder, "Title:     %s\n", t.Title)
	fmt.Fprintf(&builder, "Column:    %s\n", column.Title)
	fmt.Fprintf(&builder, "Priority:  %s\n", t.Priority)
	fmt.Fprintf(&builder, "Completed: %s\n", yesNo(t.Completed))
	fmt.Fprintf(&builder, "Due:       %s\n", formatDue(t, now))
	fmt.Fprintf(&builder, "Created:   %s (%s)\n", t.CreatedAt.Local().Format("2006-01-02 15:04:05"), ui.FormatTimeAgo(t.CreatedAt, now))

	if !internalstrings.IsBlank(t.Description) {
		rendered := markdown.SafeRender(taskDetailLineWidth, taskDetailIndent, []byte(t.Description))
		fmt.Fprintf(&builder, "\nDescription:\n%s\n", strings.TrimRight(string(rendered), "\n"))
	}
	return builder.String()
}

func formatDue(t board.Task, now time.Time) string {
	if t.DueDate == nil {
		return "-"
	}
	due := ui.FormatDate(t.DueDate.In(now.Location()))
	label := t.DueLabel(now)
	if t.IsOverdue(now) {
		return fmt.Sprintf("%s (%s, overdue)", due, label)
	}
	return fmt.Sprintf("%s (%s)", due, label)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

// formatTaskTable renders items as a table of tasks.
func formatTaskTable(b board.Board, items []taskJSON, highlight func(string) string, now time.Time) string {
	columnTitles := make(map[string]string, len(b.Columns))
	for _, column := range b.Columns {
		columnTitles[column.ID] = column.Title
	}

	builder := ui.NewTableBuilder([]string{"ID", "COLUMN", "PRIORITY", "DUE", "DONE", "TITLE"}, len(items))
	for _, item := range items {
		due := item.DueLabel(now)
		if due == "" {
			due = "-"
		} else if item.IsOverdue(now) {
			due += "!"
		}
		done := ""
		if item.Completed {
			done = "x"
		}
		builder.AddRow(
			highlight(item.ID),
			ui.TruncateTableCell(columnTitles[item.ColumnID]),
			string(item.Priority),
			due,
			done,
			ui.TruncateTableCell(item.Title),
		)
	}
	return builder.String()
}
