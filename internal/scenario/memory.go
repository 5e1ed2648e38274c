package scenario

import (
	"sort"
	"sync"
)

// MemoryStore keeps scenarios in a map for the life of the process
type MemoryStore struct {
	mu        sync.RWMutex
	scenarios map[string]*Scenario
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{scenarios: make(map[string]*Scenario)}
}

func (m *MemoryStore) Save(s *Scenario) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scenarios[s.ID] = s
	return nil
}

func (m *MemoryStore) Get(id string) (*Scenario, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.scenarios[id]
	if !ok {
		return nil, ErrUnknownScenario
	}
	return s, nil
}

// List returns summaries newest first
func (m *MemoryStore) List() ([]Summary, error) {
	m.mu.RLock()
	out := make([]Summary, 0, len(m.scenarios))
	for _, s := range m.scenarios {
		out = append(out, s.Summary())
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemoryStore) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.scenarios[id]; !ok {
		return ErrUnknownScenario
	}
	delete(m.scenarios, id)
	return nil
}

// Clear removes every scenario and reports how many there were
func (m *MemoryStore) Clear() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.scenarios)
	m.scenarios = make(map[string]*Scenario)
	return n, nil
}

func (m *MemoryStore) Driver() string { return "memory" }

func (m *MemoryStore) Close() error { return nil }
