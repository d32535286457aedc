package redis

import "github.com/pkg/errors"

var (
	ErrKeyNotFound      = errors.New("redis: key not found")
	ErrPingFailed       = errors.New("redis: ping failed")
	ErrConnectionFailed = errors.New("redis: connection failed")
)
