package cache

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/zatekoja/ayurvedaclinic/backend/internal/domain/providers"
	redisclient "github.com/zatekoja/ayurvedaclinic/backend/internal/infrastructure/clients/redis"
	apperrors "github.com/zatekoja/ayurvedaclinic/backend/pkg/errors"
)

// RedisKVAdapter implements the KeyValueStore interface with plain Redis strings.
// Values never expire.
type RedisKVAdapter struct {
	client *redisclient.Client
}

// NewRedisKVAdapter creates a new Redis key-value adapter
func NewRedisKVAdapter(client *redisclient.Client) *RedisKVAdapter {
	return &RedisKVAdapter{client: client}
}

var _ providers.KeyValueStore = (*RedisKVAdapter)(nil)

// Load retrieves the value stored under key
func (a *RedisKVAdapter) Load(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := a.client.Client().Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, apperrors.NewInternalError("failed to load "+key, err)
	}
	return value, true, nil
}

// Save stores value under key
func (a *RedisKVAdapter) Save(ctx context.Context, key string, value []byte) error {
	if err := a.client.Client().Set(ctx, key, value, 0).Err(); err != nil {
		return apperrors.NewInternalError("failed to save "+key, err)
	}
	return nil
}

// SaveBatch writes every entry inside one MULTI/EXEC block
func (a *RedisKVAdapter) SaveBatch(ctx context.Context, entries map[string][]byte) error {
	_, err := a.client.Client().TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for key, value := range entries {
			pipe.Set(ctx, key, value, 0)
		}
		return nil
	})
	if err != nil {
		return apperrors.NewInternalError("failed to save batch", err)
	}
	return nil
}
