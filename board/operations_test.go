package board_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/amonks/kanban/board"
	"github.com/google/go-cmp/cmp"
)

func TestCreateBoard_SeedsDefaultColumns(t *testing.T) {
	env := openTestStore(t, nil, nil)

	b := mustCreateBoard(t, env.store, "  Sprint 1  ")

	if b.Title != "Sprint 1" {
		t.Errorf("expected trimmed title, got %q", b.Title)
	}
	if !b.CreatedAt.Equal(testNow) {
		t.Errorf("expected CreatedAt %v, got %v", testNow, b.CreatedAt)
	}

	var titles []string
	for _, column := range b.Columns {
		titles = append(titles, column.Title)
		if column.Tasks == nil || len(column.Tasks) != 0 {
			t.Errorf("expected empty non-nil tasks in %q, got %#v", column.Title, column.Tasks)
		}
	}
	if diff := cmp.Diff(board.DefaultColumnTitles(), titles); diff != "" {
		t.Fatalf("column titles mismatch (-want +got):\n%s", diff)
	}

	current, ok := env.store.CurrentBoard()
	if !ok || current.ID != b.ID {
		t.Fatalf("expected new board to be current, got %q (ok=%v)", current.ID, ok)
	}
}

func TestCreateBoard_Validation(t *testing.T) {
	env := openTestStore(t, nil, nil)

	tests := []struct {
		name  string
		title string
		want  error
	}{
		{name: "empty", title: "", want: board.ErrEmptyTitle},
		{name: "whitespace", title: " \t\n ", want: board.ErrEmptyTitle},
		{name: "too long", title: strings.Repeat("x", board.MaxTitleLength+1), want: board.ErrTitleTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.store.CreateBoard(tt.title)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if !errors.Is(err, board.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}

	if len(env.store.Boards()) != 0 {
		t.Fatalf("expected no boards after failed creates, got %d", len(env.store.Boards()))
	}

	if _, err := env.store.CreateBoard(strings.Repeat("é", board.MaxTitleLength)); err != nil {
		t.Fatalf("expected title of exactly MaxTitleLength runes to be accepted: %v", err)
	}
}

func TestSprintScenario(t *testing.T) {
	env := openTestStore(t, nil, nil)
	store := env.store

	b := mustCreateBoard(t, store, "Sprint 1")
	todo, inProgress, done := b.Columns[0], b.Columns[1], b.Columns[2]

	due := time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC)
	designDoc, err := store.CreateTask(b.ID, todo.ID, board.TaskData{
		Title:       "Write design doc",
		Description: "Cover storage",
		DueDate:     &due,
		Priority:    board.PriorityHigh,
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	review := mustCreateTask(t, store, b.ID, todo.ID, "Review PR")

	if review.Priority != board.PriorityNormal {
		t.Errorf("expected default priority normal, got %q", review.Priority)
	}

	result, err := store.MoveTask(b.ID, todo.ID, inProgress.ID, designDoc.ID)
	if err != nil || result != board.Applied {
		t.Fatalf("move to in progress: %v, %v", result, err)
	}
	result, err = store.MoveTask(b.ID, inProgress.ID, done.ID, designDoc.ID)
	if err != nil || result != board.Applied {
		t.Fatalf("move to done: %v, %v", result, err)
	}
	result, err = store.ToggleTask(b.ID, done.ID, designDoc.ID)
	if err != nil || result != board.Applied {
		t.Fatalf("toggle: %v, %v", result, err)
	}

	got := mustBoard(t, store, b.ID)
	checkOwnership(t, store.Boards())

	if ids := columnTaskIDs(got.Columns[0]); !cmp.Equal(ids, []string{review.ID}) {
		t.Errorf("to do tasks = %v", ids)
	}
	if ids := columnTaskIDs(got.Columns[1]); len(ids) != 0 {
		t.Errorf("in progress tasks = %v", ids)
	}
	if ids := columnTaskIDs(got.Columns[2]); !cmp.Equal(ids, []string{designDoc.ID}) {
		t.Errorf("done tasks = %v", ids)
	}

	moved := got.Columns[2].Tasks[0]
	if !moved.Completed {
		t.Error("expected moved task to be completed")
	}
	if moved.Title != designDoc.Title || moved.Description != designDoc.Description || moved.Priority != board.PriorityHigh {
		t.Errorf("move changed task fields: %+v", moved)
	}
	if moved.DueDate == nil || !moved.DueDate.Equal(due) {
		t.Errorf("expected due date %v, got %v", due, moved.DueDate)
	}

	columnID, found, ok := store.FindTask(b.ID, designDoc.ID)
	if !ok || columnID != done.ID || found.ID != designDoc.ID {
		t.Errorf("FindTask = %q, %q, %v", columnID, found.ID, ok)
	}
}

func TestMoveTask_AppendsToTail(t *testing.T) {
	env := openTestStore(t, nil, nil)
	store := env.store

	b := mustCreateBoard(t, store, "Board")
	src, dst := b.Columns[0].ID, b.Columns[1].ID
	a := mustCreateTask(t, store, b.ID, src, "a")
	x := mustCreateTask(t, store, b.ID, dst, "x")
	y := mustCreateTask(t, store, b.ID, dst, "y")

	if _, err := store.MoveTask(b.ID, src, dst, a.ID); err != nil {
		t.Fatalf("move: %v", err)
	}

	column, ok := store.Column(b.ID, dst)
	if !ok {
		t.Fatal("destination column missing")
	}
	if diff := cmp.Diff([]string{x.ID, y.ID, a.ID}, columnTaskIDs(column)); diff != "" {
		t.Fatalf("destination order mismatch (-want +got):\n%s", diff)
	}
}

func TestMoveTask_SameColumnIsNoop(t *testing.T) {
	env := openTestStore(t, nil, nil)
	store := env.store

	b := mustCreateBoard(t, store, "Board")
	col := b.Columns[0].ID
	first := mustCreateTask(t, store, b.ID, col, "first")
	mustCreateTask(t, store, b.ID, col, "second")

	before := encodeState(t, store)
	result, err := store.MoveTask(b.ID, col, col, first.ID)
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if result != board.Unchanged {
		t.Fatalf("expected Unchanged, got %q", result)
	}
	if after := encodeState(t, store); after != before {
		t.Fatalf("same-column move changed state:\nbefore %s\nafter  %s", before, after)
	}
}

func TestMoveTask_NotFound(t *testing.T) {
	env := openTestStore(t, nil, nil)
	store := env.store

	b := mustCreateBoard(t, store, "Board")
	todo, doing := b.Columns[0].ID, b.Columns[1].ID
	task := mustCreateTask(t, store, b.ID, todo, "task")

	tests := []struct {
		name              string
		boardID, src, dst string
		taskID            string
	}{
		{name: "unknown board", boardID: "nope", src: todo, dst: doing, taskID: task.ID},
		{name: "unknown source", boardID: b.ID, src: "nope", dst: doing, taskID: task.ID},
		{name: "unknown destination", boardID: b.ID, src: todo, dst: "nope", taskID: task.ID},
		{name: "unknown task", boardID: b.ID, src: todo, dst: doing, taskID: "nope"},
		{name: "task in other column", boardID: b.ID, src: doing, dst: todo, taskID: task.ID},
	}

	before := encodeState(t, store)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := store.MoveTask(tt.boardID, tt.src, tt.dst, tt.taskID)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result != board.NotFound {
				t.Fatalf("expected NotFound, got %q", result)
			}
			if after := encodeState(t, store); after != before {
				t.Fatalf("failed move changed state")
			}
		})
	}
}

func TestNestedOperations_NotFound(t *testing.T) {
	env := openTestStore(t, nil, nil)
	store := env.store

	b := mustCreateBoard(t, store, "Board")
	col := b.Columns[0]
	task := mustCreateTask(t, store, b.ID, col.ID, "task")
	before := encodeState(t, store)

	checks := []struct {
		name string
		run  func() (board.Result, error)
	}{
		{"update column", func() (board.Result, error) {
			return store.UpdateColumn(b.ID, board.Column{ID: "nope", Title: "x"})
		}},
		{"update column unknown board", func() (board.Result, error) {
			return store.UpdateColumn("nope", board.Column{ID: col.ID, Title: "x"})
		}},
		{"delete column", func() (board.Result, error) { return store.DeleteColumn(b.ID, "nope") }},
		{"update task", func() (board.Result, error) {
			return store.UpdateTask(b.ID, col.ID, board.Task{ID: "nope", Title: "x"})
		}},
		{"update task wrong column", func() (board.Result, error) {
			return store.UpdateTask(b.ID, b.Columns[1].ID, board.Task{ID: task.ID, Title: "x"})
		}},
		{"toggle task", func() (board.Result, error) { return store.ToggleTask(b.ID, col.ID, "nope") }},
		{"delete task", func() (board.Result, error) { return store.DeleteTask(b.ID, col.ID, "nope") }},
	}

	for _, tt := range checks {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tt.run()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result != board.NotFound {
				t.Fatalf("expected NotFound, got %q", result)
			}
		})
	}

	if after := encodeState(t, store); after != before {
		t.Fatalf("not-found operations changed state")
	}
}

func TestTopLevelOperations_NotFound(t *testing.T) {
	env := openTestStore(t, nil, nil)
	store := env.store
	b := mustCreateBoard(t, store, "Board")

	if _, err := store.UpdateBoard(board.Board{ID: "nope", Title: "x"}); !errors.Is(err, board.ErrBoardNotFound) {
		t.Errorf("UpdateBoard: expected ErrBoardNotFound, got %v", err)
	}
	if err := store.DeleteBoard("nope"); !errors.Is(err, board.ErrBoardNotFound) {
		t.Errorf("DeleteBoard: expected ErrBoardNotFound, got %v", err)
	}
	if err := store.SelectBoard("nope"); !errors.Is(err, board.ErrNotFound) {
		t.Errorf("SelectBoard: expected ErrNotFound, got %v", err)
	}
	if _, err := store.CreateColumn("nope", "x"); !errors.Is(err, board.ErrBoardNotFound) {
		t.Errorf("CreateColumn: expected ErrBoardNotFound, got %v", err)
	}
	if _, err := store.CreateTask("nope", b.Columns[0].ID, board.TaskData{Title: "x"}); !errors.Is(err, board.ErrBoardNotFound) {
		t.Errorf("CreateTask: expected ErrBoardNotFound, got %v", err)
	}
	if _, err := store.CreateTask(b.ID, "nope", board.TaskData{Title: "x"}); !errors.Is(err, board.ErrColumnNotFound) {
		t.Errorf("CreateTask: expected ErrColumnNotFound, got %v", err)
	}
}

func TestCreateTask_Validation(t *testing.T) {
	env := openTestStore(t, nil, nil)
	store := env.store
	b := mustCreateBoard(t, store, "Board")
	col := b.Columns[0].ID

	if _, err := store.CreateTask(b.ID, col, board.TaskData{Title: "  "}); !errors.Is(err, board.ErrEmptyTitle) {
		t.Errorf("expected ErrEmptyTitle, got %v", err)
	}
	if _, err := store.CreateTask(b.ID, col, board.TaskData{Title: "x", Priority: "urgent"}); !errors.Is(err, board.ErrInvalidPriority) {
		t.Errorf("expected ErrInvalidPriority, got %v", err)
	}

	task, err := store.CreateTask(b.ID, col, board.TaskData{Title: " Ship ", Priority: "HIGH"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.Title != "Ship" || task.Priority != board.PriorityHigh {
		t.Errorf("expected normalized task, got %+v", task)
	}

	column, _ := store.Column(b.ID, col)
	if len(column.Tasks) != 1 {
		t.Fatalf("expected only the valid task to be stored, got %d", len(column.Tasks))
	}
}

func TestCreateTask_CopiesDueDate(t *testing.T) {
	env := openTestStore(t, nil, nil)
	store := env.store
	b := mustCreateBoard(t, store, "Board")

	due := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	task, err := store.CreateTask(b.ID, b.Columns[0].ID, board.TaskData{Title: "x", DueDate: &due})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	due = due.AddDate(1, 0, 0)

	_, stored, _ := store.FindTask(b.ID, task.ID)
	if stored.DueDate.Year() != 2025 {
		t.Fatalf("stored due date aliased caller's value: %v", stored.DueDate)
	}
}

func TestUpdateBoard(t *testing.T) {
	env := openTestStore(t, nil, nil)
	store := env.store
	b := mustCreateBoard(t, store, "Board")

	renamed := b
	renamed.Title = "  Renamed "
	renamed.CreatedAt = time.Time{}
	got, err := store.UpdateBoard(renamed)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Title != "Renamed" {
		t.Errorf("expected trimmed title, got %q", got.Title)
	}
	if !got.CreatedAt.Equal(b.CreatedAt) {
		t.Errorf("expected CreatedAt to be preserved, got %v", got.CreatedAt)
	}
	if diff := cmp.Diff(got, mustBoard(t, store, b.ID)); diff != "" {
		t.Errorf("stored board mismatch (-returned +stored):\n%s", diff)
	}
}

func TestUpdateBoard_RejectsDuplicateOwnership(t *testing.T) {
	env := openTestStore(t, nil, nil)
	store := env.store
	b := mustCreateBoard(t, store, "Board")
	task := mustCreateTask(t, store, b.ID, b.Columns[0].ID, "task")

	b = mustBoard(t, store, b.ID)
	before := encodeState(t, store)

	bad := b
	bad.Columns = append([]board.Column(nil), b.Columns...)
	bad.Columns[1].Tasks = []board.Task{task}
	if _, err := store.UpdateBoard(bad); !errors.Is(err, board.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}

	missing := b
	missing.Columns = append([]board.Column(nil), b.Columns...)
	missing.Columns[0] = board.Column{Title: "no id"}
	if _, err := store.UpdateBoard(missing); !errors.Is(err, board.ErrMissingID) {
		t.Fatalf("expected ErrMissingID, got %v", err)
	}

	if after := encodeState(t, store); after != before {
		t.Fatal("rejected update changed state")
	}
}

func TestUpdateColumn(t *testing.T) {
	env := openTestStore(t, nil, nil)
	store := env.store
	b := mustCreateBoard(t, store, "Board")
	col := b.Columns[0]
	first := mustCreateTask(t, store, b.ID, col.ID, "first")
	second := mustCreateTask(t, store, b.ID, col.ID, "second")

	col, _ = store.Column(b.ID, col.ID)
	col.Title = " Backlog "
	col.Tasks = []board.Task{col.Tasks[1], col.Tasks[0]}

	result, err := store.UpdateColumn(b.ID, col)
	if err != nil || result != board.Applied {
		t.Fatalf("update column: %v, %v", result, err)
	}

	got, _ := store.Column(b.ID, col.ID)
	if got.Title != "Backlog" {
		t.Errorf("expected trimmed title, got %q", got.Title)
	}
	if diff := cmp.Diff([]string{second.ID, first.ID}, columnTaskIDs(got)); diff != "" {
		t.Errorf("task order mismatch (-want +got):\n%s", diff)
	}

	if _, err := store.UpdateColumn(b.ID, board.Column{ID: col.ID, Title: ""}); !errors.Is(err, board.ErrEmptyTitle) {
		t.Errorf("expected ErrEmptyTitle, got %v", err)
	}

	stolen := b.Columns[1]
	stolen.Tasks = []board.Task{first}
	if _, err := store.UpdateColumn(b.ID, stolen); !errors.Is(err, board.ErrDuplicateID) {
		t.Errorf("expected ErrDuplicateID, got %v", err)
	}
}

func TestUpdateTask_OverwritesAllFields(t *testing.T) {
	env := openTestStore(t, nil, nil)
	store := env.store
	b := mustCreateBoard(t, store, "Board")
	col := b.Columns[0].ID

	due := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	task, err := store.CreateTask(b.ID, col, board.TaskData{
		Title:       "Old",
		Description: "old description",
		DueDate:     &due,
		Priority:    board.PriorityHigh,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	replacement := board.Task{
		ID:        task.ID,
		Title:     " New ",
		Priority:  "Low",
		Completed: true,
		CreatedAt: task.CreatedAt,
	}
	result, err := store.UpdateTask(b.ID, col, replacement)
	if err != nil || result != board.Applied {
		t.Fatalf("update: %v, %v", result, err)
	}

	_, got, _ := store.FindTask(b.ID, task.ID)
	want := board.Task{
		ID:        task.ID,
		Title:     "New",
		Priority:  board.PriorityLow,
		Completed: true,
		CreatedAt: task.CreatedAt,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("task mismatch (-want +got):\n%s", diff)
	}

	if _, err := store.UpdateTask(b.ID, col, board.Task{ID: task.ID, Title: "x", Priority: "someday"}); !errors.Is(err, board.ErrInvalidPriority) {
		t.Errorf("expected ErrInvalidPriority, got %v", err)
	}
}

func TestToggleTask_Twice(t *testing.T) {
	env := openTestStore(t, nil, nil)
	store := env.store
	b := mustCreateBoard(t, store, "Board")
	col := b.Columns[0].ID
	task := mustCreateTask(t, store, b.ID, col, "task")

	for i, want := range []bool{true, false} {
		if _, err := store.ToggleTask(b.ID, col, task.ID); err != nil {
			t.Fatalf("toggle %d: %v", i, err)
		}
		_, got, _ := store.FindTask(b.ID, task.ID)
		if got.Completed != want {
			t.Fatalf("after toggle %d: completed = %v, want %v", i, got.Completed, want)
		}
	}
}

func TestDeleteColumn_CascadesTasks(t *testing.T) {
	env := openTestStore(t, nil, nil)
	store := env.store
	b := mustCreateBoard(t, store, "Board")
	col := b.Columns[1].ID
	task := mustCreateTask(t, store, b.ID, col, "task")

	result, err := store.DeleteColumn(b.ID, col)
	if err != nil || result != board.Applied {
		t.Fatalf("delete column: %v, %v", result, err)
	}

	got := mustBoard(t, store, b.ID)
	if len(got.Columns) != 2 || got.Columns[0].ID != b.Columns[0].ID || got.Columns[1].ID != b.Columns[2].ID {
		t.Fatalf("unexpected columns after delete: %+v", got.Columns)
	}
	if _, _, ok := store.FindTask(b.ID, task.ID); ok {
		t.Fatal("task survived its column's deletion")
	}
}

func TestDeleteBoard_CurrentFallsBackToFirst(t *testing.T) {
	env := openTestStore(t, nil, nil)
	store := env.store

	a := mustCreateBoard(t, store, "A")
	bb := mustCreateBoard(t, store, "B")
	c := mustCreateBoard(t, store, "C")

	if err := store.SelectBoard(bb.ID); err != nil {
		t.Fatalf("select: %v", err)
	}

	if err := store.DeleteBoard(a.ID); err != nil {
		t.Fatalf("delete a: %v", err)
	}
	if current, _ := store.CurrentBoard(); current.ID != bb.ID {
		t.Fatalf("deleting another board changed selection to %q", current.ID)
	}

	if err := store.DeleteBoard(bb.ID); err != nil {
		t.Fatalf("delete b: %v", err)
	}
	if current, _ := store.CurrentBoard(); current.ID != c.ID {
		t.Fatalf("expected fallback to %q, got %q", c.ID, current.ID)
	}

	if err := store.DeleteBoard(c.ID); err != nil {
		t.Fatalf("delete c: %v", err)
	}
	if _, ok := store.CurrentBoard(); ok {
		t.Fatal("expected no current board")
	}
	if len(store.Boards()) != 0 {
		t.Fatal("expected no boards")
	}
}

func TestDeletedIDsAreNeverReused(t *testing.T) {
	// The second task is offered the deleted task's and column's IDs first.
	newID := scriptedIDs("board", "c1", "c2", "c3", "task", "task", "c1", "next")
	env := openTestStore(t, nil, newID)
	store := env.store

	b := mustCreateBoard(t, store, "Board")
	task := mustCreateTask(t, store, b.ID, "c1", "first")
	if task.ID != "task" {
		t.Fatalf("unexpected id %q", task.ID)
	}
	if _, err := store.DeleteTask(b.ID, "c1", task.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	if _, err := store.DeleteColumn(b.ID, "c1"); err != nil {
		t.Fatalf("delete column: %v", err)
	}

	again := mustCreateTask(t, store, b.ID, "c2", "second")
	if again.ID != "next" {
		t.Fatalf("expected retired ids to be skipped, got %q", again.ID)
	}

	col, _ := store.Column(b.ID, "c2")
	col.Tasks = append(col.Tasks, board.Task{ID: "task", Title: "zombie"})
	if _, err := store.UpdateColumn(b.ID, col); !errors.Is(err, board.ErrReusedID) {
		t.Fatalf("expected ErrReusedID, got %v", err)
	}
}

func TestDroppedIDsAreNeverReused(t *testing.T) {
	t.Run("update column", func(t *testing.T) {
		env := openTestStore(t, nil, nil)
		store := env.store

		b := mustCreateBoard(t, store, "Board")
		columnID := b.Columns[0].ID
		task := mustCreateTask(t, store, b.ID, columnID, "first")

		col, _ := store.Column(b.ID, columnID)
		col.Tasks = nil
		if result, err := store.UpdateColumn(b.ID, col); err != nil || result != board.Applied {
			t.Fatalf("drop task: result=%s err=%v", result, err)
		}

		col.Tasks = []board.Task{task}
		if _, err := store.UpdateColumn(b.ID, col); !errors.Is(err, board.ErrReusedID) {
			t.Fatalf("expected ErrReusedID, got %v", err)
		}
		if got, _ := store.Column(b.ID, columnID); len(got.Tasks) != 0 {
			t.Fatalf("expected the column to stay empty, got %+v", got.Tasks)
		}
	})

	t.Run("update board", func(t *testing.T) {
		env := openTestStore(t, nil, nil)
		store := env.store

		b := mustCreateBoard(t, store, "Board")
		dropped := b.Columns[2]
		task := mustCreateTask(t, store, b.ID, dropped.ID, "first")
		b, _ = store.Board(b.ID)

		trimmed := b
		trimmed.Columns = b.Columns[:2]
		if _, err := store.UpdateBoard(trimmed); err != nil {
			t.Fatalf("drop column: %v", err)
		}

		for _, columns := range [][]board.Column{
			b.Columns,
			{b.Columns[0], {ID: b.Columns[1].ID, Title: b.Columns[1].Title, Tasks: []board.Task{task}}},
		} {
			restored := b
			restored.Columns = columns
			if _, err := store.UpdateBoard(restored); !errors.Is(err, board.ErrReusedID) {
				t.Fatalf("expected ErrReusedID, got %v", err)
			}
		}
		if got, _ := store.Board(b.ID); len(got.Columns) != 2 {
			t.Fatalf("expected two columns, got %d", len(got.Columns))
		}
	})

	t.Run("moved task stays live", func(t *testing.T) {
		env := openTestStore(t, nil, nil)
		store := env.store

		b := mustCreateBoard(t, store, "Board")
		task := mustCreateTask(t, store, b.ID, b.Columns[0].ID, "first")
		b, _ = store.Board(b.ID)

		b.Columns[1].Tasks = append(b.Columns[1].Tasks, b.Columns[0].Tasks...)
		b.Columns[0].Tasks = nil
		if _, err := store.UpdateBoard(b); err != nil {
			t.Fatalf("move task between columns: %v", err)
		}
		b.Columns[0].Tasks, b.Columns[1].Tasks = b.Columns[1].Tasks, nil
		if _, err := store.UpdateBoard(b); err != nil {
			t.Fatalf("expected task %s to move back, got %v", task.ID, err)
		}
	})
}

func TestCreate_LiveIDCollisionIsSkipped(t *testing.T) {
	newID := scriptedIDs("board", "c1", "c2", "c3", "c1", "board", "fresh")
	env := openTestStore(t, nil, newID)
	store := env.store

	b := mustCreateBoard(t, store, "Board")
	task := mustCreateTask(t, store, b.ID, "c1", "task")
	if task.ID != "fresh" {
		t.Fatalf("expected live ids to be skipped, got %q", task.ID)
	}
}

func TestOperationsAfterClose(t *testing.T) {
	env := openTestStore(t, nil, nil)
	store := env.store
	b := mustCreateBoard(t, store, "Board")

	if err := store.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}

	if _, err := store.CreateBoard("late"); !errors.Is(err, board.ErrStoreClosed) {
		t.Errorf("CreateBoard: expected ErrStoreClosed, got %v", err)
	}
	if _, err := store.MoveTask(b.ID, b.Columns[0].ID, b.Columns[1].ID, "x"); !errors.Is(err, board.ErrStoreClosed) {
		t.Errorf("MoveTask: expected ErrStoreClosed, got %v", err)
	}
	if len(store.Boards()) != 1 {
		t.Errorf("reads should still work after close")
	}
}

func TestReadsReturnCopies(t *testing.T) {
	env := openTestStore(t, nil, nil)
	store := env.store
	b := mustCreateBoard(t, store, "Board")
	mustCreateTask(t, store, b.ID, b.Columns[0].ID, "task")

	boards := store.Boards()
	boards[0].Title = "mutated"
	boards[0].Columns[0].Tasks[0].Title = "mutated"
	boards[0].Columns = boards[0].Columns[:1]

	got := mustBoard(t, store, b.ID)
	if got.Title != "Board" || len(got.Columns) != 3 || got.Columns[0].Tasks[0].Title != "task" {
		t.Fatalf("mutating a read result changed the store: %+v", got)
	}
}
