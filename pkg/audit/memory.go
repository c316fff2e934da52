package audit

import (
	"context"
	"sync"
)

// Memory is an in-process Log. It is safe for concurrent use.
type Memory struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMemory creates an empty in-memory log.
func NewMemory() *Memory {
	return &Memory{}
}

// Record appends an entry.
func (m *Memory) Record(_ context.Context, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
	return nil
}

// History returns entries for a record in the order they were recorded.
func (m *Memory) History(
	_ context.Context,
	kind string,
	id uint,
) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var res []Entry
	for _, e := range m.entries {
		if e.Kind == kind && e.RecordID == id {
			res = append(res, e)
		}
	}
	return res, nil
}

// Len returns the total number of entries.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
