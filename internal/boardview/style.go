package boardview

import (
	"github.com/amonks/kanban/board"
	"github.com/charmbracelet/lipgloss"
)

var (
	borderASCII = lipgloss.Border{
		Top:         "-",
		Bottom:      "-",
		Left:        "|",
		Right:       "|",
		TopLeft:     "+",
		TopRight:    "+",
		BottomLeft:  "+",
		BottomRight: "+",
	}

	columnStyle = lipgloss.NewStyle().Border(borderASCII).BorderForeground(lipgloss.Color("238")).Padding(0, 1)

	headerStyle   = lipgloss.NewStyle().Bold(true)
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Strikethrough(true)
	valueMuted    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	overdueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	dueSoonStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	emptyStyle    = valueMuted.Copy().Italic(true)
	boardTitleBar = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("24")).Padding(0, 1)

	priorityStyles = map[board.Priority]lipgloss.Style{
		board.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		board.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		board.PriorityNormal: lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		board.PriorityLow:    valueMuted,
	}
)
