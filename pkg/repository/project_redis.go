package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	redisV9 "github.com/redis/go-redis/v9"
)

const (
	projectSeqKey      = "projects:seq"
	projectKeyPrefix   = "project"
	projectIndexPrefix = "projects:user"
)

// RedisProjectRepository stores each project as JSON under project:{id} and
// indexes a user's projects in the sorted set projects:user:{userId}. IDs come
// from INCR on projects:seq.
type RedisProjectRepository struct {
	client *redisV9.Client
}

var _ ProjectRepository = (*RedisProjectRepository)(nil)

func NewRedisProjectRepository(client *redisV9.Client) *RedisProjectRepository {
	return &RedisProjectRepository{client: client}
}

func projectKey(id int64) string {
	return fmt.Sprintf("%s:%d", projectKeyPrefix, id)
}

func projectIndexKey(userID int64) string {
	return fmt.Sprintf("%s:%d", projectIndexPrefix, userID)
}

func (r *RedisProjectRepository) CreateProject(ctx context.Context, p *Project) error {
	id, err := r.client.Incr(ctx, projectSeqKey).Result()
	if err != nil {
		return errors.Wrap(err, "allocate project id")
	}
	p.ID = id

	b, err := json.Marshal(p)
	if err != nil {
		return errors.Wrap(err, "encode project")
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redisV9.Pipeliner) error {
		pipe.Set(ctx, projectKey(id), b, 0)
		pipe.ZAdd(ctx, projectIndexKey(p.UserID), redisV9.Z{
			Score:  float64(p.CreatedAt.UnixMilli()),
			Member: id,
		})
		return nil
	})
	return errors.Wrapf(err, "store project %d", id)
}

func (r *RedisProjectRepository) GetProject(ctx context.Context, userID, id int64) (*Project, error) {
	b, err := r.client.Get(ctx, projectKey(id)).Bytes()
	if errors.Is(err, redisV9.Nil) {
		return nil, errors.Wrap(ErrProjectNotFound, strconv.FormatInt(id, 10))
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get project %d", id)
	}

	var p Project
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, errors.Wrapf(err, "decode project %d", id)
	}
	if p.UserID != userID {
		return nil, errors.Wrap(ErrProjectNotFound, strconv.FormatInt(id, 10))
	}
	return &p, nil
}

func (r *RedisProjectRepository) UpdateProject(ctx context.Context, p *Project) error {
	cur, err := r.GetProject(ctx, p.UserID, p.ID)
	if err != nil {
		return err
	}
	cur.Name = p.Name
	cur.Description = p.Description
	cur.UpdatedAt = p.UpdatedAt

	b, err := json.Marshal(cur)
	if err != nil {
		return errors.Wrap(err, "encode project")
	}
	if err := r.client.Set(ctx, projectKey(cur.ID), b, 0).Err(); err != nil {
		return errors.Wrapf(err, "update project %d", cur.ID)
	}
	*p = *cur
	return nil
}

func (r *RedisProjectRepository) DeleteProject(ctx context.Context, userID, id int64) error {
	if _, err := r.GetProject(ctx, userID, id); err != nil {
		return err
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redisV9.Pipeliner) error {
		pipe.Del(ctx, projectKey(id))
		pipe.ZRem(ctx, projectIndexKey(userID), id)
		return nil
	})
	return errors.Wrapf(err, "delete project %d", id)
}

func (r *RedisProjectRepository) ListProjects(ctx context.Context, userID int64, limit, offset int) (*ProjectPage, error) {
	ids, err := r.client.ZRange(ctx, projectIndexKey(userID), 0, -1).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "list projects of user %d", userID)
	}
	if len(ids) == 0 {
		return paginateProjects([]Project{}, limit, offset), nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = projectKeyPrefix + ":" + id
	}
	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "load projects of user %d", userID)
	}

	out := make([]Project, 0, len(vals))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var p Project
		if err := json.Unmarshal([]byte(s), &p); err != nil {
			return nil, errors.Wrapf(err, "decode project %s", ids[i])
		}
		out = append(out, p)
	}
	return paginateProjects(out, limit, offset), nil
}
