package realtime

import (
	"context"

	"hackathon-vote-system/config"
	"hackathon-vote-system/internal/global/database"
	"hackathon-vote-system/internal/global/httpclient"
	"hackathon-vote-system/internal/global/logger"
)

// Init 根据配置组装 Publisher；启用 Redis 时启动 Relay，ctx 结束时退出
func Init(ctx context.Context) {
	log := logger.New("Realtime")
	cfg := config.Get()
	hub := Local()

	var publishers []Publisher
	if database.Redis != nil {
		pub := NewRedisPublisher(database.Redis, cfg.Redis.Prefix)
		relay := NewRelay(pub, hub, log)
		go func() {
			if err := relay.Run(ctx, nil, ChannelVoting, ChannelAdmin); err != nil {
				log.Error("Redis 实时消息订阅退出", "error", err)
			}
		}()
		publishers = append(publishers, pub)
	} else {
		publishers = append(publishers, hub)
	}
	if cfg.Webhook.URL != "" {
		publishers = append(publishers, NewWebhookPublisher(httpclient.Client, cfg.Webhook.URL, cfg.Webhook.Secret))
	}
	if cfg.Telegram.Token != "" {
		tg, err := NewTelegramPublisher(cfg.Telegram.Token, cfg.Telegram.ChatID)
		if err != nil {
			log.Error("Telegram 推送初始化失败", "error", err)
		} else {
			publishers = append(publishers, tg)
		}
	}

	SetDefault(Multi(publishers...))
	log.Info("实时推送初始化完成", "redis", database.Redis != nil, "webhook", cfg.Webhook.URL != "", "telegram", cfg.Telegram.Token != "")
}
