package database

import (
	"context"
	"time"

	"hackathon-vote-system/config"
	"hackathon-vote-system/internal/global/sentry/tracing"

	"github.com/redis/go-redis/v9"
)

// Redis 未配置时为 nil
var Redis *redis.Client

func InitRedis() error {
	c := config.Get().Redis
	if c.Host == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     c.Host + ":" + c.Port,
		Password: c.Password,
		DB:       c.DB,
	})
	if tracing.IsEnabled() {
		client.AddHook(tracing.NewRedisSentryHook())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return err
	}
	Redis = client
	return nil
}
