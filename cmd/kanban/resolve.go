package main

import (
	"fmt"

	"github.com/amonks/kanban/board"
)

// currentBoardArg selects the current board.
const currentBoardArg = "."

// resolveBoard finds a board by ID prefix, or the current board for ".".
func resolveBoard(store *board.Store, arg string) (board.Board, error) {
	if arg == currentBoardArg {
		b, ok := store.CurrentBoard()
		if !ok {
			return board.Board{}, fmt.Errorf("%w: there are no boards", board.ErrBoardNotFound)
		}
		return b, nil
	}

	boards := store.Boards()
	id, err := board.NewBoardIndex(boards).Resolve(arg)
	if err != nil {
		return board.Board{}, err
	}
	b, ok := store.Board(id)
	if !ok {
		return board.Board{}, fmt.Errorf("%w: %s", board.ErrBoardNotFound, arg)
	}
	return b, nil
}

// resolveColumn finds a column of b by ID prefix.
func resolveColumn(b board.Board, arg string) (board.Column, error) {
	id, err := board.NewColumnIndex(b).Resolve(arg)
	if err != nil {
		return board.Column{}, err
	}
	column, ok := b.Column(id)
	if !ok {
		return board.Column{}, fmt.Errorf("%w: %s", board.ErrColumnNotFound, arg)
	}
	return column, nil
}

// resolveTask finds a task of b by ID prefix, along with its column.
func resolveTask(b board.Board, arg string) (board.Column, board.Task, error) {
	id, err := board.NewTaskIndex(b).Resolve(arg)
	if err != nil {
		return board.Column{}, board.Task{}, err
	}
	for _, column := range b.Columns {
		for _, task := range column.Tasks {
			if task.ID == id {
				return column, task, nil
			}
		}
	}
	return board.Column{}, board.Task{}, fmt.Errorf("%w: %s", board.ErrTaskNotFound, arg)
}
