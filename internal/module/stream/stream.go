package stream

import (
	"context"
	"net/http"
	"time"

	"hackathon-vote-system/internal/global/jwt"
	"hackathon-vote-system/internal/global/realtime"

	"github.com/gin-gonic/gin"
)

// PingInterval 空闲连接的心跳间隔，防止被反向代理断开
var PingInterval = 25 * time.Second

type PresencePayload struct {
	Online int `json:"online"`
}

// Stream 以 SSE 推送 voting 和 admin 两个频道的事件，连接断开时退订
func Stream(c *gin.Context) {
	var userID uint
	if claims, ok := jwt.GetUserPayload(c); ok {
		userID = claims.UserID
	}

	hub := realtime.Local()
	sub := hub.Subscribe(realtime.ChannelVoting, realtime.ChannelAdmin)
	log.Debug("实时连接建立", "user_id", userID, "subscription", sub.ID)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	announce(hub)
	defer func() {
		sub.Close()
		announce(hub)
		log.Debug("实时连接断开", "user_id", userID, "subscription", sub.ID)
	}()

	ticker := time.NewTicker(PingInterval)
	defer ticker.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub.Events():
			if !ok {
				return
			}
			c.SSEvent(ev.Type, ev)
			c.Writer.Flush()
		case <-ticker.C:
			c.SSEvent("ping", time.Now().Unix())
			c.Writer.Flush()
		}
	}
}

// announce 在线人数只统计本实例的连接
func announce(hub *realtime.Hub) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	ev := realtime.NewEvent(realtime.TypePresence, PresencePayload{Online: hub.Online()})
	if err := realtime.Default().Publish(ctx, realtime.ChannelVoting, ev); err != nil {
		log.Warn("在线人数推送失败", "error", err)
	}
}
