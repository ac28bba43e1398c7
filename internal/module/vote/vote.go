package vote

import (
	"errors"

	"hackathon-vote-system/internal/global/database"
	"hackathon-vote-system/internal/global/jwt"
	"hackathon-vote-system/internal/global/response"
	"hackathon-vote-system/internal/model"
	"hackathon-vote-system/internal/module/stats"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CastReq struct {
	ProjectID uint `json:"project_id" binding:"required"`
	Ballot
}

type CastResp struct {
	VoteID     uint     `json:"vote_id"`
	TotalScore *float64 `json:"total_score,omitempty"`
}

type projectIDUri struct {
	ProjectID uint `uri:"project_id" binding:"required"`
}

// activeVoter 取当前登录用户，封禁或已删除的用户不能参与投票
func activeVoter(c *gin.Context) (*model.User, bool) {
	claims, ok := jwt.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return nil, false
	}
	var user model.User
	if err := database.DB.WithContext(c.Request.Context()).First(&user, claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrTokenInvalid)
			return nil, false
		}
		log.Error("查询投票用户失败", "error", err, "user_id", claims.UserID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return nil, false
	}
	if user.Blocked {
		log.Warn("封禁用户尝试投票", "user_id", user.ID)
		response.Fail(c, response.ErrUserBlocked)
		return nil, false
	}
	return &user, true
}

// Cast 投票
func Cast(c *gin.Context) {
	var req CastReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	voter, ok := activeVoter(c)
	if !ok {
		return
	}

	vote, err := CastVote(c.Request.Context(), database.DB, voter.ID, req.ProjectID, req.Ballot)
	if err != nil {
		var e *response.Error
		if errors.As(err, &e) && e.Code >= response.ErrServerInternal.Code {
			log.Error("投票写入失败", "error", err, "voter_id", voter.ID, "project_id", req.ProjectID)
		} else {
			log.Info("投票被拒绝", "reason", err.Error(), "voter_id", voter.ID, "project_id", req.ProjectID)
		}
		response.Fail(c, err)
		return
	}

	log.Info("投票成功", "vote_id", vote.ID, "voter_id", voter.ID, "project_id", req.ProjectID)
	response.Success(c, CastResp{VoteID: vote.ID, TotalScore: vote.TotalScore})
}

// GetEligibility 投票前预检，不能投票时 allowed=false 并给出原因
func GetEligibility(c *gin.Context) {
	var uri projectIDUri
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	voter, ok := activeVoter(c)
	if !ok {
		return
	}

	result, err := CheckEligibility(database.DB.WithContext(c.Request.Context()), voter.ID, uri.ProjectID)
	if err != nil {
		log.Error("检查投票资格失败", "error", err, "voter_id", voter.ID, "project_id", uri.ProjectID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, result)
}

func GetMyStats(c *gin.Context) {
	claims, ok := jwt.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	s, err := stats.UserVoteStats(database.DB.WithContext(c.Request.Context()), claims.UserID)
	if err != nil {
		log.Error("查询投票统计失败", "error", err, "user_id", claims.UserID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, s)
}

func GetProjectVoteCount(c *gin.Context) {
	var uri projectIDUri
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	count, err := stats.ProjectVoteCount(database.DB.WithContext(c.Request.Context()), uri.ProjectID)
	if err != nil {
		log.Error("查询项目票数失败", "error", err, "project_id", uri.ProjectID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, gin.H{"project_id": uri.ProjectID, "vote_count": count})
}

type myVote struct {
	model.Vote
	ProjectTitle string `json:"project_title"`
}

// ListMyVotes 当前用户投过的项目，按时间倒序
func ListMyVotes(c *gin.Context) {
	claims, ok := jwt.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	db := database.DB.WithContext(c.Request.Context())

	var votes []model.Vote
	if err := db.Preload("Scores").Where("voter_id = ?", claims.UserID).
		Order("created_at DESC, id DESC").Find(&votes).Error; err != nil {
		log.Error("查询我的投票失败", "error", err, "user_id", claims.UserID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	ids := make([]uint, len(votes))
	for i, v := range votes {
		ids[i] = v.ProjectID
	}
	var projects []model.Project
	if len(ids) > 0 {
		if err := db.Unscoped().Select("id", "title").Where("id IN ?", ids).Find(&projects).Error; err != nil {
			response.Fail(c, response.ErrDatabase.WithOrigin(err))
			return
		}
	}
	titles := make(map[uint]string, len(projects))
	for _, p := range projects {
		titles[p.ID] = p.Title
	}

	out := make([]myVote, len(votes))
	for i, v := range votes {
		out[i] = myVote{Vote: v, ProjectTitle: titles[v.ProjectID]}
	}
	response.Success(c, gin.H{"votes": out, "total": len(out)})
}
