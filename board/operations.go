package board

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// CreateBoard creates a board seeded with the default columns, appends it
// to the board list, and makes it the current board.
func (s *Store) CreateBoard(title string) (Board, error) {
	title, err := ValidateTitle(title)
	if err != nil {
		return Board{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureOpen(); err != nil {
		return Board{}, err
	}

	defaults := DefaultColumnTitles()
	newIDs, err := s.freshIDs(1 + len(defaults))
	if err != nil {
		return Board{}, err
	}

	created := Board{
		ID:        newIDs[0],
		Title:     title,
		Columns:   make([]Column, 0, len(defaults)),
		CreatedAt: s.now(),
	}
	for i, columnTitle := range defaults {
		created.Columns = append(created.Columns, Column{
			ID:    newIDs[i+1],
			Title: columnTitle,
			Tasks: []Task{},
		})
	}

	next := append(cloneBoards(s.boards), created)
	s.currentID = created.ID
	s.commit(next)

	return cloneBoard(created), nil
}

// UpdateBoard replaces the board that has the same ID as b.
//
// The replacement is stored as given, including its columns and tasks,
// except that the title is trimmed and the original creation time is kept.
func (s *Store) UpdateBoard(b Board) (Board, error) {
	updated := cloneBoard(b)
	title, err := ValidateTitle(updated.Title)
	if err != nil {
		return Board{}, err
	}
	updated.Title = title
	if err := normalizeColumns(updated.Columns); err != nil {
		return Board{}, err
	}
	if err := validateStructure(&updated); err != nil {
		return Board{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureOpen(); err != nil {
		return Board{}, err
	}

	i := boardIndex(s.boards, b.ID)
	if i < 0 {
		return Board{}, fmt.Errorf("%w: %s", ErrBoardNotFound, b.ID)
	}
	updated.CreatedAt = s.boards[i].CreatedAt
	if id, reused := s.reusesRetiredID(updated.Columns); reused {
		return Board{}, fmt.Errorf("%w: %s", ErrReusedID, id)
	}
	s.retireDropped(s.boards[i].Columns, updated.Columns)

	next := cloneBoards(s.boards)
	next[i] = updated
	s.commit(next)

	return cloneBoard(updated), nil
}

// DeleteBoard removes a board with all of its columns and tasks. If it was
// the current board, the first remaining board becomes current.
func (s *Store) DeleteBoard(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureOpen(); err != nil {
		return err
	}

	i := boardIndex(s.boards, id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrBoardNotFound, id)
	}

	s.retireBoard(s.boards[i])

	next := make([]Board, 0, len(s.boards)-1)
	for j := range s.boards {
		if j == i {
			continue
		}
		next = append(next, cloneBoard(s.boards[j]))
	}
	if s.currentID == id {
		s.currentID = ""
	}
	s.commit(next)

	return nil
}

// CreateColumn appends an empty column to a board.
func (s *Store) CreateColumn(boardID, title string) (Column, error) {
	title, err := ValidateTitle(title)
	if err != nil {
		return Column{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureOpen(); err != nil {
		return Column{}, err
	}

	bi := boardIndex(s.boards, boardID)
	if bi < 0 {
		return Column{}, fmt.Errorf("%w: %s", ErrBoardNotFound, boardID)
	}

	newIDs, err := s.freshIDs(1)
	if err != nil {
		return Column{}, err
	}
	created := Column{ID: newIDs[0], Title: title, Tasks: []Task{}}

	next := cloneBoards(s.boards)
	next[bi].Columns = append(next[bi].Columns, created)
	s.commit(next)

	return cloneColumn(created), nil
}

// UpdateColumn replaces the column with the same ID as c within a board.
// The column's tasks are replaced too.
func (s *Store) UpdateColumn(boardID string, c Column) (Result, error) {
	updated := cloneColumn(c)
	title, err := ValidateTitle(updated.Title)
	if err != nil {
		return "", err
	}
	updated.Title = title
	if err := normalizeTasks(updated.Tasks); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureOpen(); err != nil {
		return "", err
	}

	bi, ci, ok := s.locateColumn(boardID, c.ID)
	if !ok {
		s.logMiss("update column", boardID, c.ID, "")
		return NotFound, nil
	}

	if id, reused := s.reusesRetiredID([]Column{updated}); reused {
		return "", fmt.Errorf("%w: %s", ErrReusedID, id)
	}

	candidate := cloneBoard(s.boards[bi])
	candidate.Columns[ci] = updated
	if err := validateStructure(&candidate); err != nil {
		return "", err
	}
	s.retireDropped([]Column{s.boards[bi].Columns[ci]}, []Column{updated})

	next := cloneBoards(s.boards)
	next[bi] = candidate
	s.commit(next)

	return Applied, nil
}

// DeleteColumn removes a column and all of its tasks from a board.
func (s *Store) DeleteColumn(boardID, columnID string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureOpen(); err != nil {
		return "", err
	}

	bi, ci, ok := s.locateColumn(boardID, columnID)
	if !ok {
		s.logMiss("delete column", boardID, columnID, "")
		return NotFound, nil
	}

	s.retireColumn(s.boards[bi].Columns[ci])

	next := cloneBoards(s.boards)
	columns := next[bi].Columns
	next[bi].Columns = append(columns[:ci:ci], columns[ci+1:]...)
	s.commit(next)

	return Applied, nil
}

// CreateTask appends a new task to a column.
func (s *Store) CreateTask(boardID, columnID string, data TaskData) (Task, error) {
	title, err := ValidateTitle(data.Title)
	if err != nil {
		return Task{}, err
	}
	priority, err := ValidatePriority(data.Priority)
	if err != nil {
		return Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureOpen(); err != nil {
		return Task{}, err
	}

	bi := boardIndex(s.boards, boardID)
	if bi < 0 {
		return Task{}, fmt.Errorf("%w: %s", ErrBoardNotFound, boardID)
	}
	ci := s.boards[bi].columnIndex(columnID)
	if ci < 0 {
		return Task{}, fmt.Errorf("%w: %s", ErrColumnNotFound, columnID)
	}

	newIDs, err := s.freshIDs(1)
	if err != nil {
		return Task{}, err
	}
	created := cloneTask(Task{
		ID:          newIDs[0],
		Title:       title,
		Description: data.Description,
		DueDate:     data.DueDate,
		Priority:    priority,
		Completed:   data.Completed,
		CreatedAt:   s.now(),
	})

	next := cloneBoards(s.boards)
	column := &next[bi].Columns[ci]
	column.Tasks = append(column.Tasks, created)
	s.commit(next)

	return cloneTask(created), nil
}

// UpdateTask overwrites every field of the task with the same ID as t
// within a column. There is no partial merge: the last write wins.
func (s *Store) UpdateTask(boardID, columnID string, t Task) (Result, error) {
	updated := cloneTask(t)
	if err := normalizeTask(&updated); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureOpen(); err != nil {
		return "", err
	}

	bi, ci, ti, ok := s.locateTask(boardID, columnID, t.ID)
	if !ok {
		s.logMiss("update task", boardID, columnID, t.ID)
		return NotFound, nil
	}

	next := cloneBoards(s.boards)
	next[bi].Columns[ci].Tasks[ti] = updated
	s.commit(next)

	return Applied, nil
}

// ToggleTask flips the completed flag of a task.
func (s *Store) ToggleTask(boardID, columnID, taskID string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureOpen(); err != nil {
		return "", err
	}

	bi, ci, ti, ok := s.locateTask(boardID, columnID, taskID)
	if !ok {
		s.logMiss("toggle task", boardID, columnID, taskID)
		return NotFound, nil
	}

	next := cloneBoards(s.boards)
	task := &next[bi].Columns[ci].Tasks[ti]
	task.Completed = !task.Completed
	s.commit(next)

	return Applied, nil
}

// DeleteTask removes a task from a column.
func (s *Store) DeleteTask(boardID, columnID, taskID string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureOpen(); err != nil {
		return "", err
	}

	bi, ci, ti, ok := s.locateTask(boardID, columnID, taskID)
	if !ok {
		s.logMiss("delete task", boardID, columnID, taskID)
		return NotFound, nil
	}

	s.retired[taskID] = struct{}{}

	next := cloneBoards(s.boards)
	tasks := next[bi].Columns[ci].Tasks
	next[bi].Columns[ci].Tasks = append(tasks[:ti:ti], tasks[ti+1:]...)
	s.commit(next)

	return Applied, nil
}

// MoveTask removes a task from its source column and appends it to the
// tail of the destination column in one step.
//
// If the board, either column, or the task can't be found, nothing changes
// and NotFound is returned. Moving a task to the column it is already in
// returns Unchanged.
func (s *Store) MoveTask(boardID, sourceColumnID, destColumnID, taskID string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureOpen(); err != nil {
		return "", err
	}

	bi, si, ti, ok := s.locateTask(boardID, sourceColumnID, taskID)
	if !ok {
		s.logMiss("move task", boardID, sourceColumnID, taskID)
		return NotFound, nil
	}
	di := s.boards[bi].columnIndex(destColumnID)
	if di < 0 {
		s.logMiss("move task", boardID, destColumnID, "")
		return NotFound, nil
	}
	if si == di {
		return Unchanged, nil
	}

	next := cloneBoards(s.boards)
	source := &next[bi].Columns[si]
	dest := &next[bi].Columns[di]
	moved := source.Tasks[ti]
	source.Tasks = append(source.Tasks[:ti:ti], source.Tasks[ti+1:]...)
	dest.Tasks = append(dest.Tasks, moved)
	s.commit(next)

	return Applied, nil
}

func (s *Store) locateColumn(boardID, columnID string) (int, int, bool) {
	bi := boardIndex(s.boards, boardID)
	if bi < 0 {
		return -1, -1, false
	}
	ci := s.boards[bi].columnIndex(columnID)
	if ci < 0 {
		return -1, -1, false
	}
	return bi, ci, true
}

func (s *Store) locateTask(boardID, columnID, taskID string) (int, int, int, bool) {
	bi, ci, ok := s.locateColumn(boardID, columnID)
	if !ok {
		return -1, -1, -1, false
	}
	ti := s.boards[bi].Columns[ci].taskIndex(taskID)
	if ti < 0 {
		return -1, -1, -1, false
	}
	return bi, ci, ti, true
}

func (s *Store) reusesRetiredID(columns []Column) (string, bool) {
	for _, column := range columns {
		if _, ok := s.retired[column.ID]; ok {
			return column.ID, true
		}
		for _, task := range column.Tasks {
			if _, ok := s.retired[task.ID]; ok {
				return task.ID, true
			}
		}
	}
	return "", false
}

func (s *Store) logMiss(op, boardID, columnID, taskID string) {
	fields := log.Fields{"op": op, "board": boardID}
	if columnID != "" {
		fields["column"] = columnID
	}
	if taskID != "" {
		fields["task"] = taskID
	}
	s.logger.WithFields(fields).Debug("target not found; nothing changed")
}

func normalizeColumns(columns []Column) error {
	for i := range columns {
		title, err := ValidateTitle(columns[i].Title)
		if err != nil {
			return fmt.Errorf("column %q: %w", columns[i].ID, err)
		}
		columns[i].Title = title
		if err := normalizeTasks(columns[i].Tasks); err != nil {
			return err
		}
	}
	return nil
}

func normalizeTasks(tasks []Task) error {
	for i := range tasks {
		if err := normalizeTask(&tasks[i]); err != nil {
			return err
		}
	}
	return nil
}

func normalizeTask(t *Task) error {
	title, err := ValidateTitle(t.Title)
	if err != nil {
		return fmt.Errorf("task %q: %w", t.ID, err)
	}
	priority, err := ValidatePriority(t.Priority)
	if err != nil {
		return fmt.Errorf("task %q: %w", t.ID, err)
	}
	t.Title = title
	t.Priority = priority
	return nil
}
