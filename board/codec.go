package board

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Encode serializes boards as the JSON array kept in a Slot.
// Empty column and task lists are written as [] and unset due dates as null.
func Encode(boards []Board) ([]byte, error) {
	data, err := json.Marshal(cloneBoards(boards))
	if err != nil {
		return nil, fmt.Errorf("marshal boards: %w", err)
	}
	return data, nil
}

// Decode parses a JSON array written by Encode.
//
// Missing priorities are read as PriorityNormal. Data whose IDs are missing
// or duplicated within a board is rejected, since it can't satisfy the
// store's ownership rules.
func Decode(data []byte) ([]Board, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []Board{}, nil
	}

	var boards []Board
	if err := json.Unmarshal(data, &boards); err != nil {
		return nil, fmt.Errorf("unmarshal boards: %w", err)
	}

	boards = cloneBoards(boards)
	for i := range boards {
		for j := range boards[i].Columns {
			tasks := boards[i].Columns[j].Tasks
			for k := range tasks {
				priority := normalizePriority(tasks[k].Priority)
				if priority == "" {
					priority = PriorityNormal
				}
				tasks[k].Priority = priority
			}
		}
	}

	if err := validateBoardIDs(boards); err != nil {
		return nil, fmt.Errorf("check boards: %w", err)
	}
	return boards, nil
}

// cloneBoards deep-copies boards. The result never shares memory with the
// input and never contains nil slices.
func cloneBoards(boards []Board) []Board {
	out := make([]Board, len(boards))
	for i := range boards {
		out[i] = cloneBoard(boards[i])
	}
	return out
}

func cloneBoard(b Board) Board {
	columns := make([]Column, len(b.Columns))
	for i := range b.Columns {
		columns[i] = cloneColumn(b.Columns[i])
	}
	b.Columns = columns
	return b
}

func cloneColumn(c Column) Column {
	tasks := make([]Task, len(c.Tasks))
	for i := range c.Tasks {
		tasks[i] = cloneTask(c.Tasks[i])
	}
	c.Tasks = tasks
	return c
}

func cloneTask(t Task) Task {
	if t.DueDate != nil {
		due := *t.DueDate
		t.DueDate = &due
	}
	return t
}
