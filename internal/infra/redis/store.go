package redis

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store implements kv.Store on Redis with JSON-encoded values. It keeps
// the same degrade-to-default contract as the file backend: a miss,
// corrupt payload, or unreachable server reads as "not found" and writes
// report false after logging.
type Store struct {
	client *redis.Client
	ttl    time.Duration // zero means no expiry
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func (s *Store) Get(ctx context.Context, key string, out any) bool {
	raw, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("kv get %q: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Printf("kv get %q: corrupt value: %v", key, err)
		return false
	}
	return true
}

func (s *Store) Set(ctx context.Context, key string, value any) bool {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("kv set %q: %v", key, err)
		return false
	}
	if err := s.client.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		log.Printf("kv set %q: %v", key, err)
		return false
	}
	return true
}

func (s *Store) Remove(ctx context.Context, key string) bool {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		log.Printf("kv remove %q: %v", key, err)
		return false
	}
	return true
}
