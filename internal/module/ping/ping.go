package ping

import (
	"context"
	"errors"
	"time"

	"hackathon-vote-system/internal/global/database"
	"hackathon-vote-system/internal/global/realtime"
	"hackathon-vote-system/internal/global/response"

	"github.com/gin-gonic/gin"
)

const Version = "1.0.0"

var errNoDB = errors.New("数据库未初始化")

type PingResp struct {
	Message string `json:"message"`
	Version string `json:"version"`
	DB      string `json:"db"`
	Redis   string `json:"redis"`
	Online  int    `json:"online"`
}

// Ping 依赖不可用时仍返回 200，只在对应字段里标出来
func Ping(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
	defer cancel()

	resp := PingResp{
		Message: "pong",
		Version: Version,
		DB:      "ok",
		Redis:   "disabled",
		Online:  realtime.Local().Online(),
	}
	if err := pingDB(ctx); err != nil {
		log.Warn("数据库不可用", "error", err)
		resp.DB = "unavailable"
	}
	if database.Redis != nil {
		resp.Redis = "ok"
		if err := database.Redis.Ping(ctx).Err(); err != nil {
			log.Warn("Redis 不可用", "error", err)
			resp.Redis = "unavailable"
		}
	}
	response.Success(c, resp)
}

func pingDB(ctx context.Context) error {
	if database.DB == nil {
		return errNoDB
	}
	sqlDB, err := database.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
