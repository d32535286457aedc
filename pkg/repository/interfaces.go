package repository

import (
	"context"
	"slices"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("analysis not found")

// Repository stores analysis records. Every read and delete is scoped to the
// owning user; a record of another user is reported as ErrNotFound.
type Repository interface {
	Create(ctx context.Context, r *Record) error
	Get(ctx context.Context, userID int64, id string) (*Record, error)
	Delete(ctx context.Context, userID int64, id string) error
	Find(ctx context.Context, f Filter) (*Page, error)
	All(ctx context.Context, userID int64) ([]Record, error)
	// DeleteByProject removes every record of the user's project and returns
	// how many were removed.
	DeleteByProject(ctx context.Context, userID, projectID int64) (int, error)
}

func sortNewestFirst(rs []Record) {
	slices.SortStableFunc(rs, func(a, b Record) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}
