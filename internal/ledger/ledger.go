// Package ledger tracks processed event ids per handler namespace so
// redelivered events short-circuit to a no-op. The ledger is best effort:
// every store failure is logged and treated as "not processed", trading
// occasional re-processing for never dropping an update.
package ledger

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

type Ledger interface {
	IsProcessed(ctx context.Context, namespace, eventID string) bool
	MarkProcessed(ctx context.Context, namespace, eventID string, at time.Time)
}

// RedisLedger keeps one sorted set per namespace, scored by the
// processed-at time in unix milliseconds. Marking an event also evicts
// entries older than the retention window.
type RedisLedger struct {
	client    *redis.Client
	keyRoot   string
	retention time.Duration
}

func NewRedisLedger(client *redis.Client, keyRoot string, retention time.Duration) *RedisLedger {
	return &RedisLedger{
		client:    client,
		keyRoot:   keyRoot,
		retention: retention,
	}
}

func (l *RedisLedger) key(namespace string) string {
	return l.keyRoot + ":" + namespace
}

func (l *RedisLedger) IsProcessed(ctx context.Context, namespace, eventID string) bool {
	_, err := l.client.ZScore(ctx, l.key(namespace), eventID).Result()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		slog.Error("ledger lookup failed, treating event as unprocessed", "namespace", namespace, "event_id", eventID, "error", err)
		return false
	}
	return true
}

func (l *RedisLedger) MarkProcessed(ctx context.Context, namespace, eventID string, at time.Time) {
	key := l.key(namespace)

	err := l.client.ZAdd(ctx, key, redis.Z{
		Score:  float64(at.UnixMilli()),
		Member: eventID,
	}).Err()
	if err != nil {
		slog.Error("error marking event processed", "namespace", namespace, "event_id", eventID, "error", err)
	}

	cutoff := at.Add(-l.retention).UnixMilli()
	err = l.client.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(cutoff, 10)).Err()
	if err != nil {
		slog.Error("error evicting old ledger entries", "namespace", namespace, "error", err)
	}
}

var _ Ledger = (*RedisLedger)(nil)
