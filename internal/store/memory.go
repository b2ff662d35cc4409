package store

import "sync"

// Memory is an in-memory Store for tests and dry runs. Nothing is
// persisted.
type Memory struct {
	mu   sync.RWMutex
	seen map[string]struct{}

	// MarkSeenErr, when set, is returned by every MarkSeen call.
	MarkSeenErr error
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{seen: make(map[string]struct{})}
}

func (m *Memory) Contains(id string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.seen[id]

	return ok, nil
}

func (m *Memory) MarkSeen(id string) error {
	if m.MarkSeenErr != nil {
		return m.MarkSeenErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.seen[id] = struct{}{}

	return nil
}

func (m *Memory) Count() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.seen), nil
}

func (m *Memory) Close() error {
	return nil
}
