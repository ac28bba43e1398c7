package admin

import (
	"hackathon-vote-system/internal/global/database"
	"hackathon-vote-system/internal/global/response"
	"hackathon-vote-system/internal/model"
	"hackathon-vote-system/internal/module/vote"

	"github.com/gin-gonic/gin"
)

type ListVotesReq struct {
	PageReq
	ProjectID uint `form:"project_id"`
	VoterID   uint `form:"voter_id"`
}

func ListVotes(c *gin.Context) {
	var req ListVotesReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	req.normalize()

	query := database.DB.WithContext(c.Request.Context()).Model(&model.Vote{})
	if req.ProjectID != 0 {
		query = query.Where("project_id = ?", req.ProjectID)
	}
	if req.VoterID != 0 {
		query = query.Where("voter_id = ?", req.VoterID)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	var votes []model.Vote
	if err := query.Preload("Voter").Preload("Scores").
		Order("created_at DESC, id DESC").Offset(req.offset()).Limit(req.PageSize).
		Find(&votes).Error; err != nil {
		log.Error("获取投票列表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, gin.H{"votes": votes, "total": total, "page": req.Page, "page_size": req.PageSize})
}

// DeleteVote 删除违规投票，投票人的额度随之退回
func DeleteVote(c *gin.Context) {
	var uri idUri
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	v, err := vote.DeleteVote(c.Request.Context(), database.DB, uri.ID)
	if err != nil {
		log.Warn("删除投票失败", "error", err, "vote_id", uri.ID)
		response.Fail(c, err)
		return
	}
	log.Info("管理员删除投票", "vote_id", v.ID, "voter_id", v.VoterID, "project_id", v.ProjectID)
	response.Success(c)
}
