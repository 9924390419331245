package redis

import (
	"context"
	"fmt"
	"sort"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/custodia-labs/quickprogress/internal/core/ports/driven"
)

// DefaultKeyPrefix namespaces every key written by the store.
const DefaultKeyPrefix = "quickprogress:progress:"

// Ensure ProgressStore implements the interface.
var _ driven.ProgressStore = (*ProgressStore)(nil)

// ProgressStore stores studied tokens as Redis sets.
type ProgressStore struct {
	client *goredis.Client
	prefix string
}

// NewProgressStore connects to the server at redisURL and verifies it with a ping.
// redisURL uses the redis://[user:password@]host:port/db form.
func NewProgressStore(ctx context.Context, redisURL string) (*ProgressStore, error) {
	opt, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client := goredis.NewClient(opt)
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return NewProgressStoreFromClient(client, DefaultKeyPrefix), nil
}

// NewProgressStoreFromClient wraps an existing client. An empty prefix uses DefaultKeyPrefix.
func NewProgressStoreFromClient(client *goredis.Client, prefix string) *ProgressStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &ProgressStore{client: client, prefix: prefix}
}

func (s *ProgressStore) redisKey(key string) string {
	return s.prefix + key
}

// Get returns the members of the set for key, sorted. A missing key yields an empty slice.
func (s *ProgressStore) Get(ctx context.Context, key string) ([]string, error) {
	members, err := s.client.SMembers(ctx, s.redisKey(key)).Result()
	if err != nil {
		return nil, fmt.Errorf("reading progress set: %w", err)
	}
	sort.Strings(members)
	return members, nil
}

// Put replaces the set for key with tokens.
func (s *ProgressStore) Put(ctx context.Context, key string, tokens []string) error {
	rk := s.redisKey(key)

	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Del(ctx, rk)
		if len(tokens) > 0 {
			members := make([]any, len(tokens))
			for i, t := range tokens {
				members[i] = t
			}
			pipe.SAdd(ctx, rk, members...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("writing progress set: %w", err)
	}
	return nil
}

// Remove deletes the set for key.
func (s *ProgressStore) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.redisKey(key)).Err(); err != nil {
		return fmt.Errorf("deleting progress set: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *ProgressStore) Close() error {
	return s.client.Close()
}
