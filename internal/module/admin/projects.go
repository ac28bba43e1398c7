package admin

import (
	"hackathon-vote-system/internal/global/database"
	"hackathon-vote-system/internal/global/response"
	"hackathon-vote-system/internal/model"

	"github.com/gin-gonic/gin"
)

type LockReq struct {
	Locked *bool `json:"locked" binding:"required"`
}

func updateProject(c *gin.Context, column string, value any) {
	var uri idUri
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	res := database.DB.WithContext(c.Request.Context()).Model(&model.Project{}).Where("id = ?", uri.ID).Update(column, value)
	if res.Error != nil {
		log.Error("更新项目状态失败", "error", res.Error, "project_id", uri.ID, column, value)
		response.Fail(c, response.ErrDatabase.WithOrigin(res.Error))
		return
	}
	if res.RowsAffected == 0 {
		response.Fail(c, response.ErrNotFound.WithTips("项目不存在"))
		return
	}
	log.Info("更新项目状态", "project_id", uri.ID, column, value)
	response.Success(c)
}

// BlockProject 封禁后项目不再展示，也不能再被投票，已有票数保留
func BlockProject(c *gin.Context) {
	updateProject(c, "blocked", true)
}

func UnblockProject(c *gin.Context) {
	updateProject(c, "blocked", false)
}

// LockProject 锁定后提交者不能再修改
func LockProject(c *gin.Context) {
	var req LockReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	updateProject(c, "locked", *req.Locked)
}

func DeleteProject(c *gin.Context) {
	var uri idUri
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	res := database.DB.WithContext(c.Request.Context()).Delete(&model.Project{}, uri.ID)
	if res.Error != nil {
		log.Error("删除项目失败", "error", res.Error, "project_id", uri.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(res.Error))
		return
	}
	if res.RowsAffected == 0 {
		response.Fail(c, response.ErrNotFound.WithTips("项目不存在"))
		return
	}
	log.Info("管理员删除项目", "project_id", uri.ID)
	response.Success(c)
}
