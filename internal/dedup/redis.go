package dedup

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisGuard struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisGuard returns a Guard whose seen set is shared across replicas.
// SETNX makes the check-and-insert atomic on the Redis side, and the TTL
// bounds growth of the set.
func NewRedisGuard(client *redis.Client, ttl time.Duration, logger *slog.Logger) Guard {
	if logger == nil {
		logger = slog.Default()
	}
	return &redisGuard{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (g *redisGuard) ShouldProcess(ctx context.Context, commentID string) bool {
	acquired, err := g.client.SetNX(ctx, "engagebot:seen_comment:"+commentID, 1, g.ttl).Result()
	if err != nil {
		// At-most-once bias: with Redis unreachable we cannot prove the
		// comment is fresh, so skip rather than risk a duplicate reply.
		g.logger.ErrorContext(ctx, "dedup check failed, skipping comment", "comment_id", commentID, "error", err)
		return false
	}
	return acquired
}
