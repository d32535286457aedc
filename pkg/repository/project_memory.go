package repository

import (
	"context"
	"strconv"
	"sync"

	"github.com/pkg/errors"
)

type MemoryProjectRepository struct {
	mu       sync.RWMutex
	seq      int64
	projects map[int64]Project
}

var _ ProjectRepository = (*MemoryProjectRepository)(nil)

func NewMemoryProjectRepository() *MemoryProjectRepository {
	return &MemoryProjectRepository{projects: make(map[int64]Project)}
}

func (m *MemoryProjectRepository) CreateProject(_ context.Context, p *Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	p.ID = m.seq
	m.projects[p.ID] = *p
	return nil
}

func (m *MemoryProjectRepository) GetProject(_ context.Context, userID, id int64) (*Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.projects[id]
	if !ok || p.UserID != userID {
		return nil, errors.Wrap(ErrProjectNotFound, strconv.FormatInt(id, 10))
	}
	return &p, nil
}

func (m *MemoryProjectRepository) UpdateProject(_ context.Context, p *Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.projects[p.ID]
	if !ok || cur.UserID != p.UserID {
		return errors.Wrap(ErrProjectNotFound, strconv.FormatInt(p.ID, 10))
	}
	cur.Name = p.Name
	cur.Description = p.Description
	cur.UpdatedAt = p.UpdatedAt
	m.projects[p.ID] = cur
	*p = cur
	return nil
}

func (m *MemoryProjectRepository) DeleteProject(_ context.Context, userID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.projects[id]
	if !ok || p.UserID != userID {
		return errors.Wrap(ErrProjectNotFound, strconv.FormatInt(id, 10))
	}
	delete(m.projects, id)
	return nil
}

func (m *MemoryProjectRepository) ListProjects(_ context.Context, userID int64, limit, offset int) (*ProjectPage, error) {
	m.mu.RLock()
	owned := []Project{}
	for _, p := range m.projects {
		if p.UserID == userID {
			owned = append(owned, p)
		}
	}
	m.mu.RUnlock()

	return paginateProjects(owned, limit, offset), nil
}
