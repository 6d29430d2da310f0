// Package boardview renders a board as side-by-side columns for the terminal.
package boardview

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/amonks/kanban/board"
	"github.com/amonks/kanban/internal/markdown"
	internalstrings "github.com/amonks/kanban/internal/strings"
	"github.com/amonks/kanban/internal/ui"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/term"
)

const (
	// DefaultWidth is used when the terminal size is unknown.
	DefaultWidth = 100

	// MinColumnWidth is the narrowest column, borders included. Boards
	// whose columns would be narrower are stacked vertically.
	MinColumnWidth = 24

	columnGap = 1

	// Border plus horizontal padding.
	columnChrome = 4
)

// Options controls rendering.
type Options struct {
	// Width is the total width available. Zero means DefaultWidth.
	Width int

	// Now decides overdue and due-soon styling.
	Now time.Time

	// FormatID decorates task IDs, e.g. to highlight unique prefixes.
	// If nil, IDs are shown as-is.
	FormatID func(string) string

	// ShowDescriptions adds the first line of each description.
	ShowDescriptions bool
}

// TerminalWidth returns the width of stdout, or DefaultWidth when stdout
// isn't a terminal.
func TerminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return DefaultWidth
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	return width
}

// Render draws b with a title bar above its columns.
func Render(b board.Board, opts Options) string {
	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}

	header := boardTitleBar.Render(ui.Truncate(b.Title, max(width-2, 1)))
	if len(b.Columns) == 0 {
		return header + "\n" + emptyStyle.Render("no columns") + "\n"
	}

	columnWidth, stacked := layout(width, len(b.Columns))
	rendered := make([]string, 0, len(b.Columns))
	for _, column := range b.Columns {
		rendered = append(rendered, renderColumn(column, columnWidth, opts))
	}

	var body string
	if stacked {
		body = lipgloss.JoinVertical(lipgloss.Left, rendered...)
	} else {
		spaced := make([]string, 0, len(rendered)*2-1)
		for i, col := range rendered {
			if i > 0 {
				spaced = append(spaced, strings.Repeat(" ", columnGap))
			}
			spaced = append(spaced, col)
		}
		body = lipgloss.JoinHorizontal(lipgloss.Top, spaced...)
	}
	return header + "\n" + body + "\n"
}

// layout returns the outer width of each column and whether columns are
// stacked instead of placed side by side.
func layout(width, columns int) (int, bool) {
	perColumn := (width - columnGap*(columns-1)) / columns
	if perColumn >= MinColumnWidth {
		return perColumn, false
	}
	return max(width, MinColumnWidth), true
}

func renderColumn(column board.Column, outerWidth int, opts Options) string {
	inner := outerWidth - columnChrome
	lines := []string{headerStyle.Render(ui.Truncate(columnHeader(column), inner))}

	if len(column.Tasks) == 0 {
		lines = append(lines, emptyStyle.Render("(empty)"))
	}
	for _, task := range column.Tasks {
		lines = append(lines, "")
		lines = append(lines, taskLines(task, inner, opts)...)
	}

	return columnStyle.Width(outerWidth - 2).Render(strings.Join(lines, "\n"))
}

func columnHeader(column board.Column) string {
	return column.Title + " (" + strconv.Itoa(len(column.Tasks)) + ")"
}

func taskLines(task board.Task, width int, opts Options) []string {
	marker := "[ ] "
	style := titleStyle
	if task.Completed {
		marker = "[x] "
		style = doneStyle
	}

	var lines []string
	indent := strings.Repeat(" ", len(marker))
	wrapped := strings.Split(wordwrap.String(internalstrings.NormalizeWhitespace(task.Title), max(width-len(marker), 1)), "\n")
	for i, line := range wrapped {
		prefix := indent
		if i == 0 {
			prefix = marker
		}
		lines = append(lines, prefix+style.Render(ui.Truncate(line, width-len(marker))))
	}

	if opts.ShowDescriptions {
		if preview := firstLine(task.Description); preview != "" {
			lines = append(lines, indent+valueMuted.Render(ui.Truncate(preview, width-len(marker))))
		}
	}

	lines = append(lines, indent+metaLine(task, width-len(marker), opts))
	return lines
}

func metaLine(task board.Task, width int, opts Options) string {
	id := ui.Truncate(task.ID, max(width/2, 1))
	formatID := opts.FormatID
	if formatID != nil && id == task.ID {
		id = formatID(task.ID)
	} else {
		id = valueMuted.Render(id)
	}

	parts := []string{id}
	if priority, ok := priorityStyles[task.Priority]; ok {
		parts = append(parts, priority.Render(string(task.Priority)))
	}
	if label := task.DueLabel(opts.Now); label != "" {
		due := "due " + label
		switch {
		case task.IsOverdue(opts.Now):
			due = overdueStyle.Render(due + "!")
		case !task.Completed && task.IsDueSoon(opts.Now):
			due = dueSoonStyle.Render(due)
		default:
			due = valueMuted.Render(due)
		}
		parts = append(parts, due)
	}

	line := strings.Join(parts, " ")
	if ui.DisplayWidth(line) > width {
		return ui.Truncate(line, width)
	}
	return line
}

func firstLine(description string) string {
	for _, line := range markdown.PlainLines(description) {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
