package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"Backend-Schoolhub/src/models"
	"Backend-Schoolhub/src/services/attendance"
)

const (
	classSummaryKey  = "fees:class-summary"
	sessionKeyPrefix = "attendance:session:"
	sessionTTL       = 12 * time.Hour
)

// RedisSummaryCache เก็บ class summary ล่าสุดเป็น JSON
type RedisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSummaryCache(client *redis.Client, ttl time.Duration) *RedisSummaryCache {
	return &RedisSummaryCache{client: client, ttl: ttl}
}

func (c *RedisSummaryCache) SetClassSummaries(ctx context.Context, summaries map[string]models.ClassFeeSummary) error {
	b, err := json.Marshal(summaries)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, classSummaryKey, b, c.ttl).Err()
}

func (c *RedisSummaryCache) GetClassSummaries(ctx context.Context) (map[string]models.ClassFeeSummary, bool, error) {
	b, err := c.client.Get(ctx, classSummaryKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var summaries map[string]models.ClassFeeSummary
	if err := json.Unmarshal(b, &summaries); err != nil {
		return nil, false, fmt.Errorf("decode class summaries: %w", err)
	}
	return summaries, true, nil
}

// RedisSessionStore keeps scan session snapshots between requests.
type RedisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func (s *RedisSessionStore) SaveSession(ctx context.Context, snap attendance.SessionSnapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKeyPrefix+snap.ID, b, sessionTTL).Err()
}

func (s *RedisSessionStore) LoadSession(ctx context.Context, id string) (*attendance.SessionSnapshot, error) {
	b, err := s.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snap attendance.SessionSnapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &snap, nil
}
