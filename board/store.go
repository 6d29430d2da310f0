package board

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/amonks/kanban/internal/ids"
	log "github.com/sirupsen/logrus"
)

// Slot is a durable key/value cell holding the encoded board list.
type Slot interface {
	// Load returns the stored bytes, or nil data and a nil error when
	// nothing has been saved yet.
	Load(ctx context.Context) ([]byte, error)

	// Save replaces the stored bytes.
	Save(ctx context.Context, data []byte) error
}

// Options configures how the store is opened.
type Options struct {
	// Logger receives persistence diagnostics. If nil, logs are discarded.
	Logger *log.Logger

	// Now returns the current time. Defaults to time.Now in UTC.
	Now func() time.Time

	// NewID generates identifiers. Defaults to random UUIDs.
	NewID ids.Generator

	// WriteTimeout bounds each save. Defaults to DefaultWriteTimeout.
	WriteTimeout time.Duration
}

// maxIDAttempts bounds retries when a generated ID is already taken.
const maxIDAttempts = 16

// Store owns the board hierarchy and the current-board selection.
//
// All methods are safe for concurrent use. Mutations are applied one at a
// time; each builds a fresh snapshot, so values returned from reads are
// never modified by later mutations.
type Store struct {
	mu        sync.Mutex
	boards    []Board
	currentID string
	retired   map[string]struct{}
	closed    bool

	persist *persister
	logger  *log.Logger
	now     func() time.Time
	newID   ids.Generator
}

// Open restores the board list from slot and starts the background writer.
//
// Missing data yields an empty store. Malformed data is logged and treated
// as missing. An error reading the slot is returned, since the store can't
// tell whether data exists. Call Close to flush the final write.
func Open(ctx context.Context, slot Slot, opts Options) (*Store, error) {
	if slot == nil {
		return nil, fmt.Errorf("board store requires a slot")
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New()
		logger.SetOutput(io.Discard)
	}
	now := opts.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	newID := opts.NewID
	if newID == nil {
		newID = ids.New
	}

	boards, err := restore(ctx, slot, logger)
	if err != nil {
		return nil, err
	}

	s := &Store{
		boards:  boards,
		retired: make(map[string]struct{}),
		persist: newPersister(slot, logger, opts.WriteTimeout),
		logger:  logger,
		now:     now,
		newID:   newID,
	}
	if len(boards) > 0 {
		s.currentID = boards[0].ID
	}

	go s.persist.run()
	return s, nil
}

func restore(ctx context.Context, slot Slot, logger *log.Logger) ([]Board, error) {
	data, err := slot.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load boards: %w", err)
	}
	if data == nil {
		logger.Debug("no stored boards")
		return []Board{}, nil
	}

	boards, err := Decode(data)
	if err != nil {
		logger.WithError(err).WithField("bytes", len(data)).Error("stored boards are malformed; starting empty")
		return []Board{}, nil
	}

	logger.WithField("boards", len(boards)).Debug("restored boards")
	return boards, nil
}

// Close flushes the latest snapshot and stops the background writer.
// It returns the error from the final write, if any. Mutations after
// Close return ErrStoreClosed.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	return s.persist.close(ctx)
}

// Flush waits until every mutation made so far has been written (or
// superseded by a later write) and returns the error of the latest write.
func (s *Store) Flush(ctx context.Context) error {
	return s.persist.flush(ctx)
}

// Boards returns a copy of all boards in order.
func (s *Store) Boards() []Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneBoards(s.boards)
}

// Board returns a copy of the board with the given ID.
func (s *Store) Board(id string) (Board, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := boardIndex(s.boards, id)
	if i < 0 {
		return Board{}, false
	}
	return cloneBoard(s.boards[i]), true
}

// CurrentBoard returns the selected board. It returns false only when
// there are no boards.
func (s *Store) CurrentBoard() (Board, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := boardIndex(s.boards, s.currentID)
	if i < 0 {
		return Board{}, false
	}
	return cloneBoard(s.boards[i]), true
}

// Column returns a copy of a column within a board.
func (s *Store) Column(boardID, columnID string) (Column, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bi := boardIndex(s.boards, boardID)
	if bi < 0 {
		return Column{}, false
	}
	column, ok := s.boards[bi].Column(columnID)
	if !ok {
		return Column{}, false
	}
	return cloneColumn(column), true
}

// FindTask locates a task anywhere in a board and returns the ID of the
// column that owns it.
func (s *Store) FindTask(boardID, taskID string) (string, Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bi := boardIndex(s.boards, boardID)
	if bi < 0 {
		return "", Task{}, false
	}
	for _, column := range s.boards[bi].Columns {
		if ti := column.taskIndex(taskID); ti >= 0 {
			return column.ID, cloneTask(column.Tasks[ti]), true
		}
	}
	return "", Task{}, false
}

// SelectBoard makes the board with the given ID current.
func (s *Store) SelectBoard(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if boardIndex(s.boards, id) < 0 {
		return fmt.Errorf("%w: %s", ErrBoardNotFound, id)
	}
	s.currentID = id
	return nil
}

// commit installs next as the live snapshot and queues it for writing.
// next must be freshly built; it is shared with the writer from here on.
func (s *Store) commit(next []Board) {
	s.boards = next
	if boardIndex(next, s.currentID) < 0 {
		s.currentID = ""
		if len(next) > 0 {
			s.currentID = next[0].ID
		}
	}
	s.persist.submit(next)
}

func (s *Store) ensureOpen() error {
	if s.closed {
		return ErrStoreClosed
	}
	return nil
}

// freshIDs returns n generated IDs not used by any live or deleted entity
// nor by each other.
func (s *Store) freshIDs(n int) ([]string, error) {
	out := make([]string, 0, n)
	taken := make(map[string]struct{}, n)
	for len(out) < n {
		id, ok := s.tryNewID(taken)
		if !ok {
			return nil, errors.New("could not generate an unused id")
		}
		taken[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}

func (s *Store) tryNewID(taken map[string]struct{}) (string, bool) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := s.newID()
		if id == "" {
			continue
		}
		if _, ok := taken[id]; ok {
			continue
		}
		if _, ok := s.retired[id]; ok {
			continue
		}
		if s.idInUse(id) {
			continue
		}
		return id, true
	}
	return "", false
}

func (s *Store) idInUse(id string) bool {
	for _, b := range s.boards {
		if b.ID == id {
			return true
		}
		for _, column := range b.Columns {
			if column.ID == id || column.taskIndex(id) >= 0 {
				return true
			}
		}
	}
	return false
}

func (s *Store) retireBoard(b Board) {
	s.retired[b.ID] = struct{}{}
	for _, column := range b.Columns {
		s.retireColumn(column)
	}
}

func (s *Store) retireColumn(c Column) {
	s.retired[c.ID] = struct{}{}
	for _, task := range c.Tasks {
		s.retired[task.ID] = struct{}{}
	}
}

// retireDropped retires every column and task ID in before that after no
// longer holds.
func (s *Store) retireDropped(before, after []Column) {
	kept := make(map[string]struct{})
	for _, column := range after {
		kept[column.ID] = struct{}{}
		for _, task := range column.Tasks {
			kept[task.ID] = struct{}{}
		}
	}
	for _, column := range before {
		if _, ok := kept[column.ID]; !ok {
			s.retired[column.ID] = struct{}{}
		}
		for _, task := range column.Tasks {
			if _, ok := kept[task.ID]; !ok {
				s.retired[task.ID] = struct{}{}
			}
		}
	}
}
