package admin

import (
	"context"

	"hackathon-vote-system/config"
	"hackathon-vote-system/internal/global/database"
	"hackathon-vote-system/internal/global/realtime"
	"hackathon-vote-system/internal/global/response"
	"hackathon-vote-system/internal/model"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UpdateSettingsReq struct {
	IsVotingEnabled *bool              `json:"is_voting_enabled"`
	MaxVotesPerUser *int               `json:"max_votes_per_user" binding:"omitempty,min=0"`
	VotingMode      *config.VotingMode `json:"voting_mode" binding:"omitempty,oneof=reason scores"`
}

func GetSettings(c *gin.Context) {
	settings, err := model.LoadSettings(database.DB.WithContext(c.Request.Context()))
	if err != nil {
		log.Error("读取系统设置失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, settings)
}

// UpdateSettings 每次修改 version 加一，并通知前端刷新
func UpdateSettings(c *gin.Context) {
	var req UpdateSettingsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	updates := map[string]any{}
	if req.IsVotingEnabled != nil {
		updates["is_voting_enabled"] = *req.IsVotingEnabled
	}
	if req.MaxVotesPerUser != nil {
		updates["max_votes_per_user"] = *req.MaxVotesPerUser
	}
	if req.VotingMode != nil {
		updates["voting_mode"] = *req.VotingMode
	}
	if len(updates) == 0 {
		response.Fail(c, response.ErrInvalidRequest.WithTips("没有需要修改的设置"))
		return
	}
	updates["version"] = gorm.Expr("version + 1")

	db := database.DB.WithContext(c.Request.Context())
	if err := db.Model(&model.SystemSettings{}).Where("id = ?", model.SettingsID).Updates(updates).Error; err != nil {
		log.Error("更新系统设置失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	settings, err := model.LoadSettings(db)
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("系统设置已更新",
		"is_voting_enabled", settings.IsVotingEnabled,
		"max_votes_per_user", settings.MaxVotesPerUser,
		"voting_mode", settings.VotingMode,
		"version", settings.Version)
	publish(realtime.ChannelVoting, realtime.NewEvent(realtime.TypeSettingsChanged, settings))
	response.Success(c, settings)
}

func publish(channel string, ev realtime.Event) {
	pub := realtime.Default()
	go func() {
		if err := pub.Publish(context.Background(), channel, ev); err != nil {
			log.Warn("实时消息发送失败", "type", ev.Type, "error", err)
		}
	}()
}
