package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// Redis shares cached catalog responses between instances. Redis failures
// are logged and treated as cache misses.
type Redis struct {
	client *redis.Client
	prefix string
}

func NewRedis(ctx context.Context, cfg RedisConfig) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", cfg.Addr, err)
	}
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "bbc:"
	}
	log.Info().Str("addr", cfg.Addr).Int("db", cfg.DB).Msg("redis cache ready")
	return &Redis{client: client, prefix: prefix}, nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	b, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("redis get")
		return nil, false
	}
	return b, true
}

func (r *Redis) Set(ctx context.Context, key string, val []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	if err := r.client.Set(ctx, r.prefix+key, val, ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("redis set")
	}
}

func (r *Redis) Close() error {
	return r.client.Close()
}
