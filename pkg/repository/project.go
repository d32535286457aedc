package repository

import (
	"context"
	"slices"
	"time"

	"github.com/pkg/errors"
)

var ErrProjectNotFound = errors.New("project not found")

// Project groups a user's analyses. IDs are assigned by the store.
type Project struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ProjectPage struct {
	Projects   []Project  `json:"projects"`
	Pagination Pagination `json:"pagination"`
}

// ProjectRepository stores projects. Like Repository, every access is scoped
// to the owner and a project of another user is ErrProjectNotFound.
type ProjectRepository interface {
	// CreateProject assigns p.ID.
	CreateProject(ctx context.Context, p *Project) error
	GetProject(ctx context.Context, userID, id int64) (*Project, error)
	// UpdateProject replaces Name, Description and UpdatedAt of an owned project.
	UpdateProject(ctx context.Context, p *Project) error
	DeleteProject(ctx context.Context, userID, id int64) error
	// ListProjects returns a page of the user's projects, newest first.
	ListProjects(ctx context.Context, userID int64, limit, offset int) (*ProjectPage, error)
}

func paginateProjects(ps []Project, limit, offset int) *ProjectPage {
	slices.SortStableFunc(ps, func(a, b Project) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return int(b.ID - a.ID)
	})

	start, end, hasMore := window(len(ps), offset, limit)
	out := make([]Project, end-start)
	copy(out, ps[start:end])

	return &ProjectPage{
		Projects: out,
		Pagination: Pagination{
			Total:   len(ps),
			Limit:   limit,
			Offset:  offset,
			HasMore: hasMore,
		},
	}
}
