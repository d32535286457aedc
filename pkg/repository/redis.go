package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	redisV9 "github.com/redis/go-redis/v9"
)

const (
	recordKeyPrefix = "analysis"
	userIndexPrefix = "analyses"
)

// RedisRepository stores each record as JSON under analysis:{id} and indexes
// a user's ids in the sorted set analyses:{userId}, scored by creation time.
type RedisRepository struct {
	client *redisV9.Client
}

var _ Repository = (*RedisRepository)(nil)

func NewRedisRepository(client *redisV9.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

func recordKey(id string) string {
	return fmt.Sprintf("%s:%s", recordKeyPrefix, id)
}

func userIndexKey(userID int64) string {
	return fmt.Sprintf("%s:%d", userIndexPrefix, userID)
}

func (r *RedisRepository) Create(ctx context.Context, rec *Record) error {
	if rec.ID == "" {
		return errors.New("record id is required")
	}

	b, err := json.Marshal(rec)
	if err != nil {
		return errors.Wrap(err, "encode record")
	}

	created, err := r.client.SetNX(ctx, recordKey(rec.ID), b, 0).Result()
	if err != nil {
		return errors.Wrapf(err, "store record %s", rec.ID)
	}
	if !created {
		return errors.Errorf("record %s already exists", rec.ID)
	}

	err = r.client.ZAdd(ctx, userIndexKey(rec.UserID), redisV9.Z{
		Score:  float64(rec.CreatedAt.UnixMilli()),
		Member: rec.ID,
	}).Err()
	if err != nil {
		// an unindexed record would be invisible to Find and All
		if delErr := r.client.Del(ctx, recordKey(rec.ID)).Err(); delErr != nil {
			return errors.Wrapf(err, "index record %s (rollback: %v)", rec.ID, delErr)
		}
		return errors.Wrapf(err, "index record %s", rec.ID)
	}
	return nil
}

func (r *RedisRepository) Get(ctx context.Context, userID int64, id string) (*Record, error) {
	b, err := r.client.Get(ctx, recordKey(id)).Bytes()
	if errors.Is(err, redisV9.Nil) {
		return nil, errors.Wrap(ErrNotFound, id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get record %s", id)
	}

	var rec Record
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, errors.Wrapf(err, "decode record %s", id)
	}
	if rec.UserID != userID {
		return nil, errors.Wrap(ErrNotFound, id)
	}
	return &rec, nil
}

func (r *RedisRepository) Delete(ctx context.Context, userID int64, id string) error {
	if _, err := r.Get(ctx, userID, id); err != nil {
		return err
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redisV9.Pipeliner) error {
		pipe.Del(ctx, recordKey(id))
		pipe.ZRem(ctx, userIndexKey(userID), id)
		return nil
	})
	return errors.Wrapf(err, "delete record %s", id)
}

func (r *RedisRepository) DeleteByProject(ctx context.Context, userID, projectID int64) (int, error) {
	all, err := r.load(ctx, userID)
	if err != nil {
		return 0, err
	}

	var ids []string
	for _, rec := range all {
		if rec.ProjectID == projectID {
			ids = append(ids, rec.ID)
		}
	}
	if len(ids) == 0 {
		return 0, nil
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redisV9.Pipeliner) error {
		for _, id := range ids {
			pipe.Del(ctx, recordKey(id))
			pipe.ZRem(ctx, userIndexKey(userID), id)
		}
		return nil
	})
	if err != nil {
		return 0, errors.Wrapf(err, "delete records of project %d", projectID)
	}
	return len(ids), nil
}

func (r *RedisRepository) Find(ctx context.Context, f Filter) (*Page, error) {
	all, err := r.load(ctx, f.UserID)
	if err != nil {
		return nil, err
	}

	matches := make([]Record, 0, len(all))
	for i := range all {
		if f.matches(&all[i]) {
			matches = append(matches, all[i])
		}
	}
	return paginate(matches, f), nil
}

// All returns the user's records oldest first.
func (r *RedisRepository) All(ctx context.Context, userID int64) ([]Record, error) {
	return r.load(ctx, userID)
}

func (r *RedisRepository) load(ctx context.Context, userID int64) ([]Record, error) {
	ids, err := r.client.ZRange(ctx, userIndexKey(userID), 0, -1).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "list index of user %d", userID)
	}
	if len(ids) == 0 {
		return []Record{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = recordKey(id)
	}
	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "load records of user %d", userID)
	}

	out := make([]Record, 0, len(vals))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			// index entry without a record
			continue
		}
		var rec Record
		if err := json.Unmarshal([]byte(s), &rec); err != nil {
			return nil, errors.Wrapf(err, "decode record %s", ids[i])
		}
		out = append(out, rec)
	}
	return out, nil
}
