// Package board implements an offline kanban board store.
//
// A Store owns an ordered list of boards, each holding an ordered list of
// columns, each holding an ordered list of tasks. Every mutation replaces the
// in-memory snapshot and hands it to a background writer that saves the full
// board list to a Slot. Mutations return before the write lands, so a crash
// in between loses that mutation; the next successful write (or Close)
// brings durable storage back in line with memory.
//
// The public API mirrors what a board UI needs:
//   - CreateBoard, UpdateBoard, DeleteBoard, SelectBoard for boards
//   - CreateColumn, UpdateColumn, DeleteColumn for columns
//   - CreateTask, UpdateTask, DeleteTask, MoveTask, ToggleTask for tasks
//   - Boards, Board, CurrentBoard, Column, FindTask for reads
package board

import "time"

// Priority represents the urgency of a task.
type Priority string

const (
	// PriorityLow is for tasks that can wait.
	PriorityLow Priority = "low"

	// PriorityNormal is the default priority.
	PriorityNormal Priority = "normal"

	// PriorityMedium is for tasks that should be picked up soon.
	PriorityMedium Priority = "medium"

	// PriorityHigh is for urgent tasks.
	PriorityHigh Priority = "high"
)

// ValidPriorities returns all valid priority values, lowest first.
func ValidPriorities() []Priority {
	return []Priority{PriorityLow, PriorityNormal, PriorityMedium, PriorityHigh}
}

// IsValid returns true if the priority is a known value.
func (p Priority) IsValid() bool {
	for _, valid := range ValidPriorities() {
		if p == valid {
			return true
		}
	}
	return false
}

// Rank returns the sort rank for a priority. Lower ranks sort first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityNormal:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// MaxTitleLength is the maximum allowed length, in runes, for any title.
const MaxTitleLength = 500

// Titles of the columns every new board starts with.
const (
	ColumnToDo       = "To Do"
	ColumnInProgress = "In Progress"
	ColumnDone       = "Done"
)

// DefaultColumnTitles returns the titles seeded into a new board, in order.
func DefaultColumnTitles() []string {
	return []string{ColumnToDo, ColumnInProgress, ColumnDone}
}

// Board is a named, ordered set of columns.
type Board struct {
	// ID is unique across all boards and never changes.
	ID string `json:"id"`

	// Title is the non-empty, trimmed board name.
	Title string `json:"title"`

	// Columns are kept in insertion order.
	Columns []Column `json:"columns"`

	// CreatedAt is when the board was created.
	CreatedAt time.Time `json:"createdAt"`
}

// Column is a named, ordered bucket of tasks within a board.
type Column struct {
	// ID is unique within the owning board.
	ID string `json:"id"`

	// Title is the non-empty, trimmed column name.
	Title string `json:"title"`

	// Tasks are kept in insertion order; moves append to the tail.
	Tasks []Task `json:"tasks"`
}

// Task is a unit of work.
type Task struct {
	// ID is unique within the owning board.
	ID string `json:"id"`

	Title       string `json:"title"`
	Description string `json:"description"`

	// DueDate is nil when the task has no due date.
	DueDate *time.Time `json:"dueDate"`

	Priority  Priority  `json:"priority"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// TaskData holds the caller-supplied fields of a new task.
type TaskData struct {
	Title       string
	Description string

	// DueDate is optional.
	DueDate *time.Time

	// Priority defaults to PriorityNormal when empty.
	Priority Priority

	Completed bool
}

// Column returns the column with the given ID.
func (b Board) Column(id string) (Column, bool) {
	i := b.columnIndex(id)
	if i < 0 {
		return Column{}, false
	}
	return b.Columns[i], true
}

// TaskCount returns the number of tasks across all columns.
func (b Board) TaskCount() int {
	count := 0
	for _, column := range b.Columns {
		count += len(column.Tasks)
	}
	return count
}

func (b Board) columnIndex(id string) int {
	for i := range b.Columns {
		if b.Columns[i].ID == id {
			return i
		}
	}
	return -1
}

func (c Column) taskIndex(id string) int {
	for i := range c.Tasks {
		if c.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func boardIndex(boards []Board, id string) int {
	for i := range boards {
		if boards[i].ID == id {
			return i
		}
	}
	return -1
}
