package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Redis is a Store backed by a shared Redis instance, for deployments with
// more than one process.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(config RedisConfig) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, err
	}

	ttl := config.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	return &Redis{
		client: client,
		ttl:    ttl,
	}, nil
}

func (c *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *Redis) Put(ctx context.Context, key string, payload []byte) error {
	return c.client.Set(ctx, key, payload, c.ttl).Err()
}

func (c *Redis) Close() error {
	return c.client.Close()
}
