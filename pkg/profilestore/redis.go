package profilestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"accounthub/models"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "profile:"

// RedisStore keeps each profile as a JSON value under profile:<userId>.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, userID string) (models.Profile, error) {
	id, err := normalizeID(userID)
	if err != nil {
		return models.Profile{}, err
	}
	raw, err := s.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.Profile{}, ErrNotFound
		}
		return models.Profile{}, fmt.Errorf("redis get profile %s: %w", id, err)
	}
	var p models.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return models.Profile{}, fmt.Errorf("decode profile %s: %w", id, err)
	}
	return p, nil
}

func (s *RedisStore) Set(ctx context.Context, userID string, p models.Profile) error {
	id, err := normalizeID(userID)
	if err != nil {
		return err
	}
	p.UserID = id
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile %s: %w", id, err)
	}
	if err := s.client.Set(ctx, redisKeyPrefix+id, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set profile %s: %w", id, err)
	}
	return nil
}
