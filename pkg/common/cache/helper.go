package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

// ErrMiss is returned by HandleHitCache when the key is absent or unreadable.
var ErrMiss = errors.New("miss cache")

// HandleHitCache decodes the cached JSON at key into model.
func HandleHitCache(ctx context.Context, model any, c CacheEngine, key string) error {
	byteData, exists, err := c.Get(ctx, key)
	if err != nil || !exists {
		return ErrMiss
	}
	if err := json.Unmarshal(byteData, model); err != nil {
		return errors.Wrap(ErrMiss, "failed to unmarshal cache")
	}
	return nil
}

// HandleSetCache handles cache set
func HandleSetCache(ctx context.Context, model any, c CacheEngine, key string, ttl time.Duration) error {
	return errors.Wrapf(c.Set(ctx, key, model, ttl), "set cache %s", key)
}

// GetOrSetRemote is cache-aside over a remote engine. A failed or undecodable
// read counts as a miss. A failed compute is returned as is and nothing is
// written. A failed write does not fail the call; it is reported through
// onWriteErr when non-nil.
func GetOrSetRemote[V any](
	ctx context.Context,
	c CacheEngine,
	key string,
	ttl time.Duration,
	compute func() (V, error),
	onWriteErr func(error),
) (V, error) {
	var cached V
	if err := HandleHitCache(ctx, &cached, c, key); err == nil {
		return cached, nil
	}

	value, err := compute()
	if err != nil {
		var zero V
		return zero, err
	}

	if err := HandleSetCache(ctx, value, c, key, ttl); err != nil && onWriteErr != nil {
		onWriteErr(err)
	}
	return value, nil
}
