package ui

import (
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
)

const tableCellMaxWidth = 50
const tableCellEllipsis = "..."

// TableBuilder collects rows and renders a formatted table.
type TableBuilder struct {
	headers []string
	rows    [][]string
}

// NewTableBuilder returns a builder with preallocated rows.
func NewTableBuilder(headers []string, capacity int) *TableBuilder {
	return &TableBuilder{headers: headers, rows: make([][]string, 0, capacity)}
}

// AddRow appends a row to the table.
func (builder *TableBuilder) AddRow(row ...string) {
	builder.rows = append(builder.rows, row)
}

// Len returns the number of rows added so far.
func (builder *TableBuilder) Len() int {
	return len(builder.rows)
}

// String renders the table output.
func (builder *TableBuilder) String() string {
	return FormatTable(builder.headers, builder.rows)
}

// FormatTable renders headers and rows as a left-aligned table with two
// spaces between columns. ANSI sequences don't count towards widths.
func FormatTable(headers []string, rows [][]string) string {
	all := make([][]string, 0, len(rows)+1)
	all = append(all, normalizeRow(headers))
	for _, row := range rows {
		all = append(all, normalizeRow(row))
	}

	widths := make([]int, len(headers))
	for _, row := range all {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if w := DisplayWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var builder strings.Builder
	for _, row := range all {
		for i, cell := range row {
			builder.WriteString(cell)
			if i == len(row)-1 {
				break
			}
			if i < len(widths) {
				builder.WriteString(strings.Repeat(" ", widths[i]-DisplayWidth(cell)+2))
			}
		}
		builder.WriteByte('\n')
	}
	return builder.String()
}

// TruncateTableCell limits a cell to the table's maximum width.
func TruncateTableCell(value string) string {
	return Truncate(normalizeTableCell(value), tableCellMaxWidth)
}

// Truncate shortens value to at most width visible cells, ending with an
// ellipsis when anything was cut.
func Truncate(value string, width int) string {
	if width <= 0 {
		return ""
	}
	if DisplayWidth(value) <= width {
		return value
	}
	if width <= len(tableCellEllipsis) {
		return truncate.String(value, uint(width))
	}
	return truncate.StringWithTail(value, uint(width), tableCellEllipsis)
}

// DisplayWidth returns the printable width of value, ignoring ANSI codes.
func DisplayWidth(value string) int {
	return ansi.PrintableRuneWidth(value)
}

func normalizeRow(row []string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = normalizeTableCell(cell)
	}
	return out
}

func normalizeTableCell(value string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(value)
}
