// Package sync mirrors the local save to a remote document store so
// progress follows the hunter across devices. The remote copy is a
// convenience mirror, not the source of truth.
package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/store"
)

// RemoteStore is the port the saver pushes through. Fetch returns
// found=false when the user has no remote snapshot yet.
type RemoteStore interface {
	Fetch(ctx context.Context) (dump store.Dump, found bool, err error)
	Push(ctx context.Context, dump store.Dump) error
}

// RedisStore keeps each user's entire save as one JSON document under a
// single key. Whole-document writes keep the remote copy consistent
// even when a push races a fetch from another device.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client, userID string) *RedisStore {
	return &RedisStore{
		client: client,
		key:    fmt.Sprintf("%ssnapshot:%s", store.Prefix, userID),
	}
}

func (r *RedisStore) Fetch(ctx context.Context) (store.Dump, bool, error) {
	raw, err := r.client.Get(ctx, r.key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("fetch snapshot: %w", err)
	}
	var dump store.Dump
	if err := json.Unmarshal([]byte(raw), &dump); err != nil {
		return nil, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return dump, true, nil
}

func (r *RedisStore) Push(ctx context.Context, dump store.Dump) error {
	b, err := json.Marshal(dump)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := r.client.Set(ctx, r.key, b, 0).Err(); err != nil {
		return fmt.Errorf("push snapshot: %w", err)
	}
	return nil
}
