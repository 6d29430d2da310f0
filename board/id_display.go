package board

import (
	"fmt"
	"strings"

	"github.com/amonks/kanban/internal/ids"
)

// IDIndex indexes board, column, or task IDs for prefix matching and display.
type IDIndex struct {
	ids      []string
	original map[string]string
	notFound error
}

func newIDIndex(values []string, notFound error) IDIndex {
	original := make(map[string]string, len(values))
	for _, id := range values {
		lower := strings.ToLower(id)
		if _, ok := original[lower]; !ok {
			original[lower] = id
		}
	}
	return IDIndex{ids: ids.NormalizeUniqueIDs(values), original: original, notFound: notFound}
}

// NewBoardIndex builds an IDIndex over board IDs.
func NewBoardIndex(boards []Board) IDIndex {
	boardIDs := make([]string, 0, len(boards))
	for _, b := range boards {
		boardIDs = append(boardIDs, b.ID)
	}
	return newIDIndex(boardIDs, ErrBoardNotFound)
}

// NewColumnIndex builds an IDIndex over the column IDs of a board.
func NewColumnIndex(b Board) IDIndex {
	columnIDs := make([]string, 0, len(b.Columns))
	for _, column := range b.Columns {
		columnIDs = append(columnIDs, column.ID)
	}
	return newIDIndex(columnIDs, ErrColumnNotFound)
}

// NewTaskIndex builds an IDIndex over every task ID in a board.
func NewTaskIndex(b Board) IDIndex {
	taskIDs := make([]string, 0, b.TaskCount())
	for _, column := range b.Columns {
		for _, task := range column.Tasks {
			taskIDs = append(taskIDs, task.ID)
		}
	}
	return newIDIndex(taskIDs, ErrTaskNotFound)
}

// Resolve returns the full ID for a prefix.
func (index IDIndex) Resolve(prefix string) (string, error) {
	notFound := index.notFound
	if notFound == nil {
		notFound = ErrNotFound
	}
	if prefix == "" {
		return "", notFound
	}

	match, found, ambiguous := ids.MatchPrefixNormalized(index.ids, prefix)
	if !found {
		return "", fmt.Errorf("%w: %s", notFound, prefix)
	}
	if ambiguous {
		return "", fmt.Errorf("%w: %s", ErrAmbiguousIDPrefix, prefix)
	}

	if id, ok := index.original[match]; ok {
		return id, nil
	}
	return match, nil
}

// PrefixLengths returns the shortest unique prefix length for each ID,
// keyed by the lowercased ID.
func (index IDIndex) PrefixLengths() map[string]int {
	return ids.UniquePrefixLengthsNormalized(index.ids)
}
