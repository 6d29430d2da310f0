package slot

import (
	"context"
	"sync"
)

// Memory keeps the value in process memory. It is used by tests and by
// callers that don't want durability.
type Memory struct {
	mu      sync.Mutex
	data    []byte
	saved   bool
	saves   int
	loadErr error
	saveErr error
}

// NewMemory creates an empty memory slot.
func NewMemory() *Memory {
	return &Memory{}
}

// NewMemoryWith creates a memory slot that already holds data.
func NewMemoryWith(data []byte) *Memory {
	return &Memory{data: append([]byte(nil), data...), saved: true}
}

// Load returns a copy of the stored value, or nil if nothing was saved.
func (m *Memory) Load(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if !m.saved {
		return nil, nil
	}
	return append([]byte{}, m.data...), nil
}

// Save stores a copy of data, unless a save error has been injected.
func (m *Memory) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveErr != nil {
		return m.saveErr
	}
	m.data = append([]byte{}, data...)
	m.saved = true
	m.saves++
	return nil
}

// Data returns the stored value and whether anything was saved.
func (m *Memory) Data() ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte{}, m.data...), m.saved
}

// Saves returns the number of successful saves.
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// FailLoads makes subsequent loads return err. Pass nil to clear.
func (m *Memory) FailLoads(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErr = err
}

// FailSaves makes subsequent saves return err. Pass nil to clear.
func (m *Memory) FailSaves(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}
