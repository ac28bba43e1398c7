package admin

import (
	"hackathon-vote-system/internal/global/database"
	"hackathon-vote-system/internal/global/jwt"
	"hackathon-vote-system/internal/global/realtime"
	"hackathon-vote-system/internal/global/response"
	"hackathon-vote-system/internal/model"

	"github.com/gin-gonic/gin"
)

type BroadcastReq struct {
	Message string `json:"message" binding:"required,max=500"`
}

type BroadcastPayload struct {
	Message string `json:"message"`
	From    uint   `json:"from"`
}

type OverviewResp struct {
	Users    int64                 `json:"users"`
	Projects int64                 `json:"projects"`
	Votes    int64                 `json:"votes"`
	Online   int                   `json:"online"`
	Settings *model.SystemSettings `json:"settings"`
}

// Broadcast 向所有在线用户推送一条公告
func Broadcast(c *gin.Context) {
	var req BroadcastReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	claims, _ := jwt.GetUserPayload(c)
	var from uint
	if claims != nil {
		from = claims.UserID
	}
	publish(realtime.ChannelAdmin, realtime.NewEvent(realtime.TypeBroadcast, BroadcastPayload{Message: req.Message, From: from}))
	log.Info("管理员发送公告", "from", from)
	response.Success(c)
}

func Overview(c *gin.Context) {
	db := database.DB.WithContext(c.Request.Context())
	var resp OverviewResp
	if err := db.Model(&model.User{}).Count(&resp.Users).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if err := db.Model(&model.Project{}).Count(&resp.Projects).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if err := db.Model(&model.Vote{}).Count(&resp.Votes).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	settings, err := model.LoadSettings(db)
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	resp.Settings = settings
	resp.Online = realtime.Local().Online()
	response.Success(c, resp)
}
