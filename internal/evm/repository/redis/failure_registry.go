// Package redis keeps the set of failed heights between runs so they can be retried.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	failedHeightsKey = "ethtxs:failed_heights"
	failedErrorsKey  = "ethtxs:failed_errors"
)

// FailureRegistry records failed heights in a sorted set scored by height, with the last error per
// height in a hash.
type FailureRegistry struct {
	rdb *redis.Client
}

// NewFailureRegistry connects to rawURL and verifies the connection.
func NewFailureRegistry(ctx context.Context, rawURL string) (*FailureRegistry, error) {
	if rawURL == "" {
		return nil, errors.New("redis url is required")
	}
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &FailureRegistry{rdb: rdb}, nil
}

// Close closes the Redis connection.
func (r *FailureRegistry) Close() error {
	return r.rdb.Close()
}

// RecordFailure registers height as failed at stage with cause.
func (r *FailureRegistry) RecordFailure(ctx context.Context, height uint64, stage string, cause error) error {
	member := strconv.FormatUint(height, 10)
	reason := stage
	if cause != nil {
		reason = stage + ": " + cause.Error()
	}

	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, failedHeightsKey, redis.Z{Score: float64(height), Member: member})
		pipe.HSet(ctx, failedErrorsKey, member, reason)
		return nil
	})
	if err != nil {
		return fmt.Errorf("record failed height %d: %w", height, err)
	}
	return nil
}

// Resolve removes height from the registry. Unknown heights are ignored.
func (r *FailureRegistry) Resolve(ctx context.Context, height uint64) error {
	member := strconv.FormatUint(height, 10)

	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRem(ctx, failedHeightsKey, member)
		pipe.HDel(ctx, failedErrorsKey, member)
		return nil
	})
	if err != nil {
		return fmt.Errorf("resolve height %d: %w", height, err)
	}
	return nil
}

// FailedHeights returns every registered height in ascending order.
func (r *FailureRegistry) FailedHeights(ctx context.Context) ([]uint64, error) {
	members, err := r.rdb.ZRange(ctx, failedHeightsKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("zrange failed heights: %w", err)
	}

	heights := make([]uint64, 0, len(members))
	for _, member := range members {
		height, err := strconv.ParseUint(member, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid failed height %q: %w", member, err)
		}
		heights = append(heights, height)
	}
	return heights, nil
}

// LastError returns the recorded reason for height, or "" when none is stored.
func (r *FailureRegistry) LastError(ctx context.Context, height uint64) (string, error) {
	reason, err := r.rdb.HGet(ctx, failedErrorsKey, strconv.FormatUint(height, 10)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("hget failed error: %w", err)
	}
	return reason, nil
}
