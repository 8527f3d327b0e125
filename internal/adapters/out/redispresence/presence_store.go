// Package redispresence mirrors which customers and couriers are online into
// Redis sets, one set per role, so other services can see who is reachable
// without talking to this process.
package redispresence

import (
	"context"
	"fmt"
	"log/slog"

	"courierhub/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "presence:"

// redisClient defines the interface we need from go-redis.
type redisClient interface {
	SAdd(ctx context.Context, key string, members ...interface{}) *redis.IntCmd
	SRem(ctx context.Context, key string, members ...interface{}) *redis.IntCmd
	SCard(ctx context.Context, key string) *redis.IntCmd
}

var _ ports.PresenceTracker = (*PresenceStore)(nil)

// PresenceStore implements ports.PresenceTracker with one Redis set per role
// (`presence:customer`, `presence:courier`).
type PresenceStore struct {
	client redisClient
	logger *slog.Logger
}

func NewPresenceStore(client redisClient, logger *slog.Logger) (*PresenceStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PresenceStore{
		client: client,
		logger: logger.With("component", "redis_presence"),
	}, nil
}

func (s *PresenceStore) MarkOnline(ctx context.Context, role, id string) error {
	key := roleKey(role)
	if err := s.client.SAdd(ctx, key, id).Err(); err != nil {
		return fmt.Errorf("failed to sadd %s: %w", key, err)
	}
	s.logger.DebugContext(ctx, "Marked online", "key", key, "identity", id)
	return nil
}

func (s *PresenceStore) MarkOffline(ctx context.Context, role, id string) error {
	key := roleKey(role)
	if err := s.client.SRem(ctx, key, id).Err(); err != nil {
		return fmt.Errorf("failed to srem %s: %w", key, err)
	}
	s.logger.DebugContext(ctx, "Marked offline", "key", key, "identity", id)
	return nil
}

func (s *PresenceStore) CountOnline(ctx context.Context, role string) (int64, error) {
	n, err := s.client.SCard(ctx, roleKey(role)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to scard %s: %w", roleKey(role), err)
	}
	return n, nil
}

func roleKey(role string) string {
	return keyPrefix + role
}
