package baseline

import (
	"context"
	"fmt"

	"github.com/kwertop/trackbench/internal/util"
	"github.com/redis/go-redis/v9"
)

// RedisSet is an ExactSet kept in a redis set at _key_.
// Every operation is a single redis command: SADD, SISMEMBER, SCARD or DEL.
// _length_ mirrors the cardinality so that MemoryUsage needs no round trip.
type RedisSet struct {
	client *redis.Client
	key    string
	length uint64
}

// NewRedisSet creates a RedisSet on the package redis client under a random key.
// MakeRedisClient must have been called before.
func NewRedisSet() (*RedisSet, error) {
	client := GetRedisClient()
	if client == nil {
		return nil, fmt.Errorf("trackbench: redis client isn't initialized")
	}
	return NewRedisSetWithClient(client), nil
}

// NewRedisSetWithClient creates a RedisSet on _client_ under a random key
func NewRedisSetWithClient(client *redis.Client) *RedisSet {
	return &RedisSet{client: client, key: util.GenerateRandomString(16)}
}

// Key returns the redis key holding the set
func (s *RedisSet) Key() string {
	return s.key
}

// Add inserts _key_ and returns true if it wasn't present before
func (s *RedisSet) Add(key string) (bool, error) {
	added, err := s.client.SAdd(context.Background(), s.key, key).Result()
	if err != nil {
		return false, fmt.Errorf("trackbench: error while adding to redis set %s: %v", s.key, err)
	}
	s.length += uint64(added)
	return added == 1, nil
}

// Contains returns true if _key_ was added before
func (s *RedisSet) Contains(key string) (bool, error) {
	ok, err := s.client.SIsMember(context.Background(), s.key, key).Result()
	if err != nil {
		return false, fmt.Errorf("trackbench: error while looking up redis set %s: %v", s.key, err)
	}
	return ok, nil
}

// Len returns the cardinality of the redis set
func (s *RedisSet) Len() (uint64, error) {
	card, err := s.client.SCard(context.Background(), s.key).Result()
	if err != nil {
		return 0, fmt.Errorf("trackbench: error while reading size of redis set %s: %v", s.key, err)
	}
	return uint64(card), nil
}

// MemoryUsage returns the estimated size of the set in bytes, BytesPerKey per key
func (s *RedisSet) MemoryUsage() float64 {
	return estimateMemory(s.length)
}

// Clear deletes the redis set
func (s *RedisSet) Clear() error {
	if err := s.client.Del(context.Background(), s.key).Err(); err != nil {
		return fmt.Errorf("trackbench: error while deleting redis set %s: %v", s.key, err)
	}
	s.length = 0
	return nil
}
