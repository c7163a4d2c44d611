package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// KVStore persists the durable slots (notes, leaderboard) as whole JSON blobs
// in Redis, one key per slot. An absent key reads as nil, matching the
// app.KVStore contract.
type KVStore struct {
	client *redis.Client
}

func NewKVStore(client *redis.Client) *KVStore {
	return &KVStore{client: client}
}

func (s *KVStore) Load(ctx context.Context, slot string) ([]byte, error) {
	data, err := s.client.Get(ctx, slot).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *KVStore) Save(ctx context.Context, slot string, data []byte) error {
	// Slots hold the full current value, so no TTL: last write wins until the
	// next mutation overwrites it.
	return s.client.Set(ctx, slot, data, 0).Err()
}
