package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkg/errors"
	redisV9 "github.com/redis/go-redis/v9"

	"github.com/huynhanx03/codelens/pkg/common/cache"
	"github.com/huynhanx03/codelens/pkg/settings"
	"github.com/huynhanx03/codelens/pkg/utils"
)

const (
	defaultPoolSize        = 10
	defaultMinIdleConns    = 5
	defaultPoolTimeout     = 5
	defaultDialTimeout     = 5
	defaultReadTimeout     = 3
	defaultWriteTimeout    = 3
	defaultMaxRetries      = 3
	defaultMinRetryBackoff = 300 // millis
	defaultMaxRetryBackoff = 500 // millis

	pingTimeout = 5 * time.Second
	scanCount   = 200
)

// RedisEngine is a JSON cache engine over one Redis database.
type RedisEngine struct {
	client *redisV9.Client
	config settings.Redis
}

var _ cache.CacheEngine = (*RedisEngine)(nil)

func (r *RedisEngine) connect() error {
	r.setDefaultConfig()

	addr := r.config.Host
	if r.config.Port > 0 {
		addr = fmt.Sprintf("%s:%d", addr, r.config.Port)
	}

	r.client = redisV9.NewClient(&redisV9.Options{
		Addr:            addr,
		Password:        r.config.Password,
		DB:              r.config.Database,
		PoolSize:        r.config.PoolSize,
		MinIdleConns:    r.config.MinIdleConns,
		MaxRetries:      r.config.MaxRetries,
		DialTimeout:     utils.ToDuration(r.config.DialTimeout),
		ReadTimeout:     utils.ToDuration(r.config.ReadTimeout),
		WriteTimeout:    utils.ToDuration(r.config.WriteTimeout),
		PoolTimeout:     utils.ToDuration(r.config.PoolTimeout),
		MinRetryBackoff: utils.ToDurationMs(r.config.MinRetryBackoff),
		MaxRetryBackoff: utils.ToDurationMs(r.config.MaxRetryBackoff),
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := r.client.Ping(ctx).Err(); err != nil {
		_ = r.client.Close()
		return fmt.Errorf("%w: %w", ErrPingFailed, err)
	}

	return nil
}

func (r *RedisEngine) setDefaultConfig() {
	if r.config.PoolSize == 0 {
		r.config.PoolSize = defaultPoolSize
	}
	if r.config.MinIdleConns == 0 {
		r.config.MinIdleConns = defaultMinIdleConns
	}
	if r.config.PoolTimeout == 0 {
		r.config.PoolTimeout = defaultPoolTimeout
	}
	if r.config.DialTimeout == 0 {
		r.config.DialTimeout = defaultDialTimeout
	}
	if r.config.ReadTimeout == 0 {
		r.config.ReadTimeout = defaultReadTimeout
	}
	if r.config.WriteTimeout == 0 {
		r.config.WriteTimeout = defaultWriteTimeout
	}
	if r.config.MaxRetries == 0 {
		r.config.MaxRetries = defaultMaxRetries
	}
	if r.config.MinRetryBackoff == 0 {
		r.config.MinRetryBackoff = defaultMinRetryBackoff
	}
	if r.config.MaxRetryBackoff == 0 {
		r.config.MaxRetryBackoff = defaultMaxRetryBackoff
	}
}

// Get returns the raw JSON stored at key. A missing key reports
// ErrKeyNotFound with exists false.
func (r *RedisEngine) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redisV9.Nil) {
		return nil, false, ErrKeyNotFound
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "get %s", key)
	}
	return b, true, nil
}

// Set stores value as JSON. A ttl of zero keeps the key until deleted.
func (r *RedisEngine) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "encode %s", key)
	}
	return r.client.Set(ctx, key, b, ttl).Err()
}

func (r *RedisEngine) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// InvalidatePrefix deletes every key starting with prefix. It walks the
// keyspace with SCAN so the server is never blocked by a single KEYS call.
func (r *RedisEngine) InvalidatePrefix(ctx context.Context, prefix string) error {
	iter := r.client.Scan(ctx, 0, prefix+"*", scanCount).Iterator()

	batch := make([]string, 0, scanCount)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == scanCount {
			if err := r.client.Del(ctx, batch...).Err(); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(batch) > 0 {
		return r.client.Del(ctx, batch...).Err()
	}
	return nil
}

func (r *RedisEngine) DeleteBulk(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

func (r *RedisEngine) Close() {
	if r.client != nil {
		_ = r.client.Close()
	}
}

// Client returns the underlying client for callers that need raw commands.
func (r *RedisEngine) Client() *redisV9.Client {
	return r.client
}
