package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisPublisher 把事件发到 <prefix>:<channel>，由各实例的 Relay 转发
type RedisPublisher struct {
	client *redis.Client
	prefix string
}

func NewRedisPublisher(client *redis.Client, prefix string) *RedisPublisher {
	return &RedisPublisher{client: client, prefix: prefix}
}

func (p *RedisPublisher) key(channel string) string {
	if p.prefix == "" {
		return channel
	}
	return p.prefix + ":" + channel
}

func (p *RedisPublisher) Publish(ctx context.Context, channel string, ev Event) error {
	ev.Channel = channel
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.key(channel), payload).Err()
}

// Relay 订阅 Redis 频道，转进本地 Hub
type Relay struct {
	pub *RedisPublisher
	hub *Hub
	log *slog.Logger
}

func NewRelay(pub *RedisPublisher, hub *Hub, log *slog.Logger) *Relay {
	return &Relay{pub: pub, hub: hub, log: log}
}

// Run 阻塞到 ctx 结束；ready 在订阅确认后关闭，可以为 nil
func (r *Relay) Run(ctx context.Context, ready chan<- struct{}, channels ...string) error {
	keys := make([]string, len(channels))
	for i, ch := range channels {
		keys[i] = r.pub.key(ch)
	}
	ps := r.pub.client.Subscribe(ctx, keys...)
	defer ps.Close()

	// 等待订阅确认，否则紧接着的 Publish 可能丢失
	if _, err := ps.Receive(ctx); err != nil {
		return err
	}
	if ready != nil {
		close(ready)
	}

	msgs := ps.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				r.log.Warn("丢弃无法解析的实时消息", "channel", msg.Channel, "error", err)
				continue
			}
			channel := strings.TrimPrefix(msg.Channel, r.pub.prefix+":")
			_ = r.hub.Publish(ctx, channel, ev)
		}
	}
}
