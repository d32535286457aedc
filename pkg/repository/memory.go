package repository

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

// MemoryRepository keeps records in process. Records are returned by copy.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[string]Record
	order   []string
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[string]Record)}
}

func (m *MemoryRepository) Create(_ context.Context, r *Record) error {
	if r.ID == "" {
		return errors.New("record id is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[r.ID]; ok {
		return errors.Errorf("record %s already exists", r.ID)
	}
	m.records[r.ID] = *r
	m.order = append(m.order, r.ID)
	return nil
}

func (m *MemoryRepository) Get(_ context.Context, userID int64, id string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.records[id]
	if !ok || r.UserID != userID {
		return nil, errors.Wrap(ErrNotFound, id)
	}
	return &r, nil
}

func (m *MemoryRepository) Delete(_ context.Context, userID int64, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.records[id]
	if !ok || r.UserID != userID {
		return errors.Wrap(ErrNotFound, id)
	}
	delete(m.records, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MemoryRepository) DeleteByProject(_ context.Context, userID, projectID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.order[:0]
	removed := 0
	for _, id := range m.order {
		r := m.records[id]
		if r.UserID == userID && r.ProjectID == projectID {
			delete(m.records, id)
			removed++
			continue
		}
		kept = append(kept, id)
	}
	m.order = kept
	return removed, nil
}

func (m *MemoryRepository) Find(_ context.Context, f Filter) (*Page, error) {
	m.mu.RLock()
	matches := m.collect(func(r *Record) bool { return f.matches(r) })
	m.mu.RUnlock()

	return paginate(matches, f), nil
}

// All returns every record of the user in insertion order.
func (m *MemoryRepository) All(_ context.Context, userID int64) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.collect(func(r *Record) bool { return r.UserID == userID }), nil
}

func (m *MemoryRepository) collect(keep func(*Record) bool) []Record {
	out := []Record{}
	for _, id := range m.order {
		r := m.records[id]
		if keep(&r) {
			out = append(out, r)
		}
	}
	return out
}
