package repository

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redisV9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huynhanx03/codelens/pkg/analysis"
)

var base = time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)

func newRedisRepository(t *testing.T) Repository {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redisV9.NewClient(&redisV9.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisRepository(client)
}

// runRepositoryTests runs the same contract against every implementation.
func runRepositoryTests(t *testing.T, newRepo func(t *testing.T) Repository) {
	t.Run("CreateGet", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)

		rec := &Record{ID: "a1", UserID: 1, ProjectID: 3, ProjectName: "api", Filename: "main.go",
			Language: analysis.Go, Score: 88, CreatedAt: base}
		require.NoError(t, repo.Create(ctx, rec))
		assert.Error(t, repo.Create(ctx, rec))

		got, err := repo.Get(ctx, 1, "a1")
		require.NoError(t, err)
		assert.Equal(t, "main.go", got.Filename)
		assert.Equal(t, 88, got.Score)
		assert.True(t, base.Equal(got.CreatedAt))
	})

	t.Run("OwnershipScoped", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)
		require.NoError(t, repo.Create(ctx, &Record{ID: "a1", UserID: 1, CreatedAt: base}))

		_, err := repo.Get(ctx, 2, "a1")
		assert.True(t, errors.Is(err, ErrNotFound))
		assert.True(t, errors.Is(repo.Delete(ctx, 2, "a1"), ErrNotFound))

		_, err = repo.Get(ctx, 1, "missing")
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("Delete", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)
		require.NoError(t, repo.Create(ctx, &Record{ID: "a1", UserID: 1, CreatedAt: base}))
		require.NoError(t, repo.Create(ctx, &Record{ID: "a2", UserID: 1, CreatedAt: base.Add(time.Minute)}))

		require.NoError(t, repo.Delete(ctx, 1, "a1"))
		_, err := repo.Get(ctx, 1, "a1")
		assert.True(t, errors.Is(err, ErrNotFound))

		all, err := repo.All(ctx, 1)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "a2", all[0].ID)
	})

	t.Run("FindFiltersAndPages", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)
		for i := 0; i < 5; i++ {
			lang := analysis.Go
			if i%2 == 1 {
				lang = analysis.Python
			}
			require.NoError(t, repo.Create(ctx, &Record{
				ID: fmt.Sprintf("a%d", i), UserID: 1, ProjectID: int64(1 + i%2),
				Language: lang, CreatedAt: base.Add(time.Duration(i) * time.Hour),
			}))
		}
		require.NoError(t, repo.Create(ctx, &Record{ID: "other", UserID: 2, CreatedAt: base}))

		page, err := repo.Find(ctx, Filter{UserID: 1, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, Pagination{Total: 5, Limit: 2, Offset: 0, HasMore: true}, page.Pagination)
		require.Len(t, page.Analyses, 2)
		assert.Equal(t, "a4", page.Analyses[0].ID)
		assert.Equal(t, "a3", page.Analyses[1].ID)

		page, err = repo.Find(ctx, Filter{UserID: 1, Limit: 2, Offset: 4})
		require.NoError(t, err)
		assert.False(t, page.Pagination.HasMore)
		require.Len(t, page.Analyses, 1)
		assert.Equal(t, "a0", page.Analyses[0].ID)

		page, err = repo.Find(ctx, Filter{UserID: 1, Language: "python", Limit: 20})
		require.NoError(t, err)
		assert.Equal(t, 2, page.Pagination.Total)

		page, err = repo.Find(ctx, Filter{UserID: 1, ProjectID: 1, Language: "go", Limit: 20})
		require.NoError(t, err)
		assert.Equal(t, 3, page.Pagination.Total)

		page, err = repo.Find(ctx, Filter{UserID: 1, Limit: 20, Offset: 50})
		require.NoError(t, err)
		assert.Empty(t, page.Analyses)
	})

	t.Run("FindHugeWindow", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)
		require.NoError(t, repo.Create(ctx, &Record{ID: "a1", UserID: 1, CreatedAt: base}))
		require.NoError(t, repo.Create(ctx, &Record{ID: "a2", UserID: 1, CreatedAt: base.Add(time.Minute)}))

		page, err := repo.Find(ctx, Filter{UserID: 1, Limit: 20, Offset: math.MaxInt})
		require.NoError(t, err)
		assert.Empty(t, page.Analyses)
		assert.False(t, page.Pagination.HasMore)

		page, err = repo.Find(ctx, Filter{UserID: 1, Limit: math.MaxInt, Offset: 1})
		require.NoError(t, err)
		require.Len(t, page.Analyses, 1)
		assert.Equal(t, "a1", page.Analyses[0].ID)
		assert.False(t, page.Pagination.HasMore)
	})

	t.Run("DeleteByProject", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)
		require.NoError(t, repo.Create(ctx, &Record{ID: "a1", UserID: 1, ProjectID: 7, CreatedAt: base}))
		require.NoError(t, repo.Create(ctx, &Record{ID: "a2", UserID: 1, ProjectID: 8, CreatedAt: base}))
		require.NoError(t, repo.Create(ctx, &Record{ID: "a3", UserID: 1, ProjectID: 7, CreatedAt: base}))
		require.NoError(t, repo.Create(ctx, &Record{ID: "b1", UserID: 2, ProjectID: 7, CreatedAt: base}))

		n, err := repo.DeleteByProject(ctx, 1, 7)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		all, err := repo.All(ctx, 1)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "a2", all[0].ID)

		_, err = repo.Get(ctx, 2, "b1")
		assert.NoError(t, err)

		n, err = repo.DeleteByProject(ctx, 1, 7)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("AllEmpty", func(t *testing.T) {
		all, err := newRepo(t).All(context.Background(), 42)
		require.NoError(t, err)
		assert.NotNil(t, all)
		assert.Empty(t, all)
	})
}

func TestMemoryRepository(t *testing.T) {
	runRepositoryTests(t, func(*testing.T) Repository { return NewMemoryRepository() })
}

func TestRedisRepository(t *testing.T) {
	runRepositoryTests(t, newRedisRepository)
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name                 string
		total, offset, limit int
		start, end           int
		hasMore              bool
	}{
		{"first page", 5, 0, 2, 0, 2, true},
		{"last page", 5, 4, 2, 4, 5, false},
		{"past end", 5, 9, 2, 5, 5, false},
		{"negative", 5, -3, -1, 0, 0, true},
		{"max offset", 5, math.MaxInt, 20, 5, 5, false},
		{"max both", 5, math.MaxInt, math.MaxInt, 5, 5, false},
		{"max limit", 5, 1, math.MaxInt, 1, 5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, hasMore := window(tt.total, tt.offset, tt.limit)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
			assert.Equal(t, tt.hasMore, hasMore)
		})
	}
}

func TestRedisRepository_CreateRollsBackUnindexed(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redisV9.NewClient(&redisV9.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	repo := NewRedisRepository(client)

	// a string at the index key makes ZADD fail with WRONGTYPE
	require.NoError(t, mr.Set("analyses:1", "x"))

	err := repo.Create(ctx, &Record{ID: "a1", UserID: 1, CreatedAt: base})
	require.Error(t, err)
	assert.False(t, mr.Exists("analysis:a1"))

	_, err = repo.Get(ctx, 1, "a1")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRedisRepository_KeepsResult(t *testing.T) {
	ctx := context.Background()
	repo := newRedisRepository(t)

	res := &analysis.Result{ID: "a1", FileName: "x.js", Language: analysis.JavaScript,
		Report: analysis.Evaluate("var a = 1", analysis.JavaScript), CreatedAt: base}
	require.NoError(t, repo.Create(ctx, &Record{ID: "a1", UserID: 1, Result: res, Score: res.Score, CreatedAt: base}))

	got, err := repo.Get(ctx, 1, "a1")
	require.NoError(t, err)
	require.NotNil(t, got.Result)
	assert.Equal(t, res.Report, got.Result.Report)
}
