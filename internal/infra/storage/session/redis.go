package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

const keyPrefix = "barber:session:"

// RedisStore хранит сессии в Redis в виде JSON с TTL
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore создает хранилище сессий поверх Redis
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Get получает сессию по ID
func (s *RedisStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	raw, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("%w: Get: %v", ErrStorage, err)
	}

	var session domain.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("%w: Get: %v", ErrDecode, err)
	}

	return &session, nil
}

// Save сохраняет сессию и продлевает её TTL
func (s *RedisStore) Save(ctx context.Context, session *domain.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("%w: Save: %v", ErrEncode, err)
	}

	if err := s.client.Set(ctx, keyPrefix+session.ID, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Save: %v", ErrStorage, err)
	}

	return nil
}

// Delete удаляет сессию
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("%w: Delete: %v", ErrStorage, err)
	}
	return nil
}
