package admin

import (
	"errors"

	"hackathon-vote-system/internal/global/database"
	"hackathon-vote-system/internal/global/response"
	"hackathon-vote-system/internal/model"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type idUri struct {
	ID uint `uri:"id" binding:"required"`
}

type PageReq struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Keyword  string `form:"keyword"`
}

func (p *PageReq) normalize() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 || p.PageSize > 100 {
		p.PageSize = 20
	}
}

func (p *PageReq) offset() int {
	return (p.Page - 1) * p.PageSize
}

type QuotaReq struct {
	// MaxVotes 为 0 时恢复使用全局上限
	MaxVotes *int `json:"max_votes" binding:"required,min=0"`
}

type userRow struct {
	model.User
	VotesUsed int64 `json:"votes_used"`
	MaxVotes  int   `json:"max_votes"`
}

func ListUsers(c *gin.Context) {
	var req PageReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	req.normalize()

	db := database.DB.WithContext(c.Request.Context())
	query := db.Model(&model.User{})
	if req.Keyword != "" {
		like := "%" + req.Keyword + "%"
		query = query.Where("email LIKE ? OR nick_name LIKE ?", like, like)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	var users []model.User
	if err := query.Order("id").Offset(req.offset()).Limit(req.PageSize).Find(&users).Error; err != nil {
		log.Error("获取用户列表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	ids := make([]uint, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	var counters []model.UserVoteStats
	if len(ids) > 0 {
		if err := db.Where("user_id IN ?", ids).Find(&counters).Error; err != nil {
			response.Fail(c, response.ErrDatabase.WithOrigin(err))
			return
		}
	}
	byUser := make(map[uint]model.UserVoteStats, len(counters))
	for _, s := range counters {
		byUser[s.UserID] = s
	}

	rows := make([]userRow, len(users))
	for i, u := range users {
		s := byUser[u.ID]
		rows[i] = userRow{User: u, VotesUsed: int64(s.VotesUsed), MaxVotes: s.MaxVotes}
	}
	response.Success(c, gin.H{"users": rows, "total": total, "page": req.Page, "page_size": req.PageSize})
}

func setUserBlocked(c *gin.Context, blocked bool) {
	var uri idUri
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	res := database.DB.WithContext(c.Request.Context()).Model(&model.User{}).Where("id = ?", uri.ID).Update("blocked", blocked)
	if res.Error != nil {
		log.Error("更新用户状态失败", "error", res.Error, "user_id", uri.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(res.Error))
		return
	}
	if res.RowsAffected == 0 {
		response.Fail(c, response.ErrNotFound.WithTips("用户不存在"))
		return
	}
	log.Info("更新用户封禁状态", "user_id", uri.ID, "blocked", blocked)
	response.Success(c)
}

func BlockUser(c *gin.Context) {
	setUserBlocked(c, true)
}

func UnblockUser(c *gin.Context) {
	setUserBlocked(c, false)
}

// SetUserQuota 单独调整某个用户的票数上限，不影响已投的票
func SetUserQuota(c *gin.Context) {
	var uri idUri
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	var req QuotaReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	db := database.DB.WithContext(c.Request.Context())
	if err := db.First(&model.User{}, uri.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("用户不存在"))
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	stats := model.UserVoteStats{UserID: uri.ID, MaxVotes: *req.MaxVotes}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"max_votes"}),
	}).Create(&stats).Error; err != nil {
		log.Error("设置用户票数上限失败", "error", err, "user_id", uri.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	log.Info("设置用户票数上限", "user_id", uri.ID, "max_votes", *req.MaxVotes)
	response.Success(c, gin.H{"user_id": uri.ID, "max_votes": *req.MaxVotes})
}
