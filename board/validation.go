package board

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/amonks/kanban/internal/validation"
)

var (
	// ErrValidation is wrapped by every error caused by bad caller input.
	// State is never modified when one is returned.
	ErrValidation = errors.New("invalid input")

	// ErrNotFound is wrapped by every error caused by an unknown ID.
	ErrNotFound = errors.New("not found")

	// ErrEmptyTitle is returned when a title is empty after trimming.
	ErrEmptyTitle = fmt.Errorf("%w: title cannot be empty", ErrValidation)

	// ErrTitleTooLong is returned when a title exceeds MaxTitleLength.
	ErrTitleTooLong = fmt.Errorf("%w: title exceeds maximum length", ErrValidation)

	// ErrInvalidPriority is returned for an unknown task priority.
	ErrInvalidPriority = fmt.Errorf("%w: invalid priority", ErrValidation)

	// ErrMissingID is returned when an entity in a replacement has no ID.
	ErrMissingID = fmt.Errorf("%w: missing id", ErrValidation)

	// ErrDuplicateID is returned when an ID would appear twice in a board.
	ErrDuplicateID = fmt.Errorf("%w: duplicate id", ErrValidation)

	// ErrReusedID is returned when a replacement carries the ID of a deleted entity.
	ErrReusedID = fmt.Errorf("%w: id belongs to a deleted entity", ErrValidation)

	// ErrBoardNotFound is returned when a board with the given ID doesn't exist.
	ErrBoardNotFound = fmt.Errorf("board %w", ErrNotFound)

	// ErrColumnNotFound is returned when a column with the given ID doesn't exist.
	ErrColumnNotFound = fmt.Errorf("column %w", ErrNotFound)

	// ErrTaskNotFound is returned when a task with the given ID doesn't exist.
	ErrTaskNotFound = fmt.Errorf("task %w", ErrNotFound)

	// ErrAmbiguousIDPrefix is returned when an ID prefix matches several entities.
	ErrAmbiguousIDPrefix = errors.New("ambiguous ID prefix")

	// ErrStoreClosed is returned by mutations after Close.
	ErrStoreClosed = errors.New("board store is closed")
)

// ValidateTitle trims title and checks that it is usable.
// It returns the trimmed title.
func ValidateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrEmptyTitle
	}
	if n := utf8.RuneCountInString(title); n > MaxTitleLength {
		return "", fmt.Errorf("%w: %d > %d", ErrTitleTooLong, n, MaxTitleLength)
	}
	return title, nil
}

// ValidatePriority normalizes priority and checks that it is known.
// An empty priority becomes PriorityNormal.
func ValidatePriority(priority Priority) (Priority, error) {
	normalized := normalizePriority(priority)
	if normalized == "" {
		return PriorityNormal, nil
	}
	if !normalized.IsValid() {
		return "", validation.FormatInvalidValueError(ErrInvalidPriority, priority, ValidPriorities())
	}
	return normalized, nil
}

// ValidateBoard checks every title, priority, and ID in b.
func ValidateBoard(b *Board) error {
	if _, err := ValidateTitle(b.Title); err != nil {
		return fmt.Errorf("board %q: %w", b.ID, err)
	}
	for _, column := range b.Columns {
		if _, err := ValidateTitle(column.Title); err != nil {
			return fmt.Errorf("column %q: %w", column.ID, err)
		}
		for _, task := range column.Tasks {
			if _, err := ValidateTitle(task.Title); err != nil {
				return fmt.Errorf("task %q: %w", task.ID, err)
			}
			if _, err := ValidatePriority(task.Priority); err != nil {
				return fmt.Errorf("task %q: %w", task.ID, err)
			}
		}
	}
	return validateStructure(b)
}

// validateStructure checks that every ID in b is present and that column
// and task IDs are unique within the board, which also guarantees that no
// task is owned by two columns.
func validateStructure(b *Board) error {
	if b.ID == "" {
		return fmt.Errorf("%w: board", ErrMissingID)
	}
	seen := make(map[string]struct{})
	for _, column := range b.Columns {
		if column.ID == "" {
			return fmt.Errorf("%w: column in board %q", ErrMissingID, b.ID)
		}
		if _, ok := seen[column.ID]; ok {
			return fmt.Errorf("%w: %q in board %q", ErrDuplicateID, column.ID, b.ID)
		}
		seen[column.ID] = struct{}{}
		for _, task := range column.Tasks {
			if task.ID == "" {
				return fmt.Errorf("%w: task in column %q", ErrMissingID, column.ID)
			}
			if _, ok := seen[task.ID]; ok {
				return fmt.Errorf("%w: %q in board %q", ErrDuplicateID, task.ID, b.ID)
			}
			seen[task.ID] = struct{}{}
		}
	}
	return nil
}

func validateBoardIDs(boards []Board) error {
	seen := make(map[string]struct{}, len(boards))
	for i := range boards {
		if err := validateStructure(&boards[i]); err != nil {
			return err
		}
		if _, ok := seen[boards[i].ID]; ok {
			return fmt.Errorf("%w: board %q", ErrDuplicateID, boards[i].ID)
		}
		seen[boards[i].ID] = struct{}{}
	}
	return nil
}

func normalizePriority(priority Priority) Priority {
	return Priority(strings.ToLower(strings.TrimSpace(string(priority))))
}
