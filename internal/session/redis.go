package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

const DefaultTTL = 24 * time.Hour

// RedisStore хранит корзины в Redis и годится для нескольких инстансов.
// TTL ставится при создании и обновляется на каждой записи, брошенные
// сессии исчезают сами.
type RedisStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{Client: client, TTL: ttl}
}

func (s *RedisStore) key(token string) string {
	return keyPrefix + token
}

func (s *RedisStore) Create(ctx context.Context) (string, error) {
	token := newToken()
	if err := s.Client.Set(ctx, s.key(token), "[]", s.TTL).Err(); err != nil {
		return "", fmt.Errorf("redis: create session: %w", err)
	}
	return token, nil
}

func (s *RedisStore) Exists(ctx context.Context, token string) (bool, error) {
	n, err := s.Client.Exists(ctx, s.key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("redis: exists: %w", err)
	}
	return n > 0, nil
}

func (s *RedisStore) Cart(ctx context.Context, token string) ([]uint, error) {
	data, err := s.Client.Get(ctx, s.key(token)).Bytes()
	if err == redis.Nil {
		return []uint{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis: get session: %w", err)
	}

	var items []uint
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("redis: decode session: %w", err)
	}
	return items, nil
}

func (s *RedisStore) Append(ctx context.Context, token string, productID uint) error {
	return s.mutate(ctx, token, func(items []uint) []uint {
		return append(items, productID)
	})
}

func (s *RedisStore) RemoveFirst(ctx context.Context, token string, productID uint) error {
	return s.mutate(ctx, token, func(items []uint) []uint {
		for i, id := range items {
			if id == productID {
				return append(items[:i], items[i+1:]...)
			}
		}
		return items
	})
}

// mutate выполняет read-modify-write под WATCH: параллельное изменение той же
// сессии приводит к повтору транзакции вместо потерянного обновления.
func (s *RedisStore) mutate(ctx context.Context, token string, fn func([]uint) []uint) error {
	key := s.key(token)

	txn := func(tx *redis.Tx) error {
		var items []uint
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil && err != redis.Nil {
			return err
		}
		if err == nil {
			if err := json.Unmarshal(data, &items); err != nil {
				return err
			}
		}

		out, err := json.Marshal(fn(items))
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, s.TTL)
			return nil
		})
		return err
	}

	for i := 0; i < 5; i++ {
		err := s.Client.Watch(ctx, txn, key)
		if err == nil {
			return nil
		}
		if err == redis.TxFailedErr {
			continue
		}
		return fmt.Errorf("redis: mutate session: %w", err)
	}
	return fmt.Errorf("redis: mutate session: too many conflicts")
}
