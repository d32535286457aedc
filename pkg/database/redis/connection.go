package redis

import (
	"fmt"

	"github.com/huynhanx03/codelens/pkg/settings"
)

// NewConnection dials Redis and verifies it answers PING.
func NewConnection(cfg settings.Redis) (*RedisEngine, error) {
	engine := &RedisEngine{config: cfg}

	if err := engine.connect(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	return engine, nil
}
