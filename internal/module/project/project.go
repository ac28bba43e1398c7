package project

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"hackathon-vote-system/internal/global/database"
	"hackathon-vote-system/internal/global/jwt"
	"hackathon-vote-system/internal/global/objectstore"
	"hackathon-vote-system/internal/global/response"
	"hackathon-vote-system/internal/model"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MaxTeamMembers 不含提交者本人
const MaxTeamMembers = 10

type CreateReq struct {
	Title           string `json:"title" binding:"required,max=100"`
	Description     string `json:"description"`
	DemoURL         string `json:"demo_url" binding:"omitempty,url,max=255"`
	RepoURL         string `json:"repo_url" binding:"omitempty,url,max=255"`
	PresentationURL string `json:"presentation_url" binding:"omitempty,url,max=255"`
	CategoryID      *uint  `json:"category_id"`
	TeamMembers     []uint `json:"team_members"`
}

// UpdateReq 指针字段为 nil 表示不修改
type UpdateReq struct {
	Title           *string `json:"title" binding:"omitempty,max=100"`
	Description     *string `json:"description"`
	DemoURL         *string `json:"demo_url" binding:"omitempty,max=255"`
	RepoURL         *string `json:"repo_url" binding:"omitempty,max=255"`
	PresentationURL *string `json:"presentation_url" binding:"omitempty,max=255"`
	CategoryID      *uint   `json:"category_id"`
	TeamMembers     *[]uint `json:"team_members"`
}

type ListReq struct {
	CategoryID  *uint  `form:"category_id"`
	SubmitterID *uint  `form:"submitter_id"`
	Title       string `form:"title"`
	Page        int    `form:"page"`
	PageSize    int    `form:"page_size"`
}

type AttachmentReq struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type"`
}

type idUri struct {
	ID uint `uri:"id" binding:"required"`
}

// normalizeMembers 去重并去掉提交者本人，队员必须是已注册用户
func normalizeMembers(db *gorm.DB, submitterID uint, members []uint) (datatypes.JSONSlice[uint], error) {
	out := make([]uint, 0, len(members))
	for _, id := range members {
		if id == 0 || id == submitterID || slices.Contains(out, id) {
			continue
		}
		out = append(out, id)
	}
	if len(out) > MaxTeamMembers {
		return nil, response.ErrInvalidRequest.WithTips(fmt.Sprintf("队员不能超过 %d 人", MaxTeamMembers))
	}
	if len(out) > 0 {
		var n int64
		if err := db.Model(&model.User{}).Where("id IN ?", out).Count(&n).Error; err != nil {
			return nil, response.ErrDatabase.WithOrigin(err)
		}
		if n != int64(len(out)) {
			return nil, response.ErrInvalidRequest.WithTips("队员中有不存在的用户")
		}
	}
	return datatypes.JSONSlice[uint](out), nil
}

func checkCategory(db *gorm.DB, categoryID *uint) error {
	if categoryID == nil {
		return nil
	}
	var n int64
	if err := db.Model(&model.Category{}).Where("id = ?", *categoryID).Count(&n).Error; err != nil {
		return response.ErrDatabase.WithOrigin(err)
	}
	if n == 0 {
		return response.ErrInvalidRequest.WithTips("分类不存在")
	}
	return nil
}

func CreateProject(c *gin.Context) {
	claims, ok := jwt.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	var req CreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	db := database.DB.WithContext(c.Request.Context())
	if err := checkCategory(db, req.CategoryID); err != nil {
		response.Fail(c, err)
		return
	}
	members, err := normalizeMembers(db, claims.UserID, req.TeamMembers)
	if err != nil {
		response.Fail(c, err)
		return
	}

	project := model.Project{
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		DemoURL:         req.DemoURL,
		RepoURL:         req.RepoURL,
		PresentationURL: req.PresentationURL,
		CategoryID:      req.CategoryID,
		TeamMembers:     members,
		SubmitterID:     claims.UserID,
	}
	if err := db.Omit("Submitter").Create(&project).Error; err != nil {
		log.Error("创建项目失败", "error", err, "submitter_id", claims.UserID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("创建项目成功", "id", project.ID, "title", project.Title, "submitter_id", claims.UserID)
	response.Success(c, project)
}

// loadOwnProject 只有提交者能修改，被封禁或锁定的项目不能修改
func loadOwnProject(c *gin.Context) (*model.Project, bool) {
	claims, ok := jwt.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return nil, false
	}
	var uri idUri
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return nil, false
	}

	var project model.Project
	if err := database.DB.WithContext(c.Request.Context()).First(&project, uri.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("项目不存在"))
			return nil, false
		}
		log.Error("查询项目失败", "error", err, "id", uri.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return nil, false
	}
	if project.SubmitterID != claims.UserID {
		log.Warn("非提交者尝试修改项目", "id", project.ID, "user_id", claims.UserID)
		response.Fail(c, response.ErrForbidden.WithTips("只有提交者可以修改项目"))
		return nil, false
	}
	if project.Blocked || project.Locked {
		response.Fail(c, response.ErrForbidden.WithTips("项目已被管理员锁定"))
		return nil, false
	}
	return &project, true
}

func UpdateProject(c *gin.Context) {
	var req UpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	project, ok := loadOwnProject(c)
	if !ok {
		return
	}

	db := database.DB.WithContext(c.Request.Context())
	updates := map[string]any{}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			response.Fail(c, response.ErrInvalidRequest.WithTips("项目名称不能为空"))
			return
		}
		updates["title"] = title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.DemoURL != nil {
		updates["demo_url"] = *req.DemoURL
	}
	if req.RepoURL != nil {
		updates["repo_url"] = *req.RepoURL
	}
	if req.PresentationURL != nil {
		updates["presentation_url"] = *req.PresentationURL
	}
	if req.CategoryID != nil {
		if err := checkCategory(db, req.CategoryID); err != nil {
			response.Fail(c, err)
			return
		}
		updates["category_id"] = *req.CategoryID
	}
	if req.TeamMembers != nil {
		members, err := normalizeMembers(db, project.SubmitterID, *req.TeamMembers)
		if err != nil {
			response.Fail(c, err)
			return
		}
		updates["team_members"] = members
	}
	if len(updates) == 0 {
		response.Success(c, project)
		return
	}

	if err := db.Model(project).Updates(updates).Error; err != nil {
		log.Error("更新项目失败", "error", err, "id", project.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if err := db.First(project, project.ID).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	log.Info("更新项目成功", "id", project.ID)
	response.Success(c, project)
}

// DeleteProject 软删除，已有的投票保留但不再出现在结果里
func DeleteProject(c *gin.Context) {
	project, ok := loadOwnProject(c)
	if !ok {
		return
	}
	if err := database.DB.WithContext(c.Request.Context()).Delete(project).Error; err != nil {
		log.Error("删除项目失败", "error", err, "id", project.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	log.Info("删除项目成功", "id", project.ID)
	response.Success(c)
}

// GetProject 被封禁的项目对外不可见
func GetProject(c *gin.Context) {
	var uri idUri
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	var project model.Project
	err := database.DB.WithContext(c.Request.Context()).Preload("Submitter").First(&project, uri.ID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Fail(c, response.ErrNotFound.WithTips("项目不存在"))
		return
	case err != nil:
		log.Error("查询项目失败", "error", err, "id", uri.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if project.Blocked {
		response.Fail(c, response.ErrProjectUnavailable)
		return
	}
	response.Success(c, project)
}

func ListProjects(c *gin.Context) {
	var req ListReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 || req.PageSize > 100 {
		req.PageSize = 10
	}

	query := database.DB.WithContext(c.Request.Context()).Model(&model.Project{}).Where("blocked = ?", false)
	if req.CategoryID != nil {
		query = query.Where("category_id = ?", *req.CategoryID)
	}
	if req.SubmitterID != nil {
		query = query.Where("submitter_id = ?", *req.SubmitterID)
	}
	if req.Title != "" {
		query = query.Where("title LIKE ?", "%"+req.Title+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Error("获取项目总数失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var projects []model.Project
	offset := (req.Page - 1) * req.PageSize
	if err := query.Preload("Submitter").Order("created_at DESC, id DESC").
		Offset(offset).Limit(req.PageSize).Find(&projects).Error; err != nil {
		log.Error("获取项目列表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, gin.H{
		"projects":    projects,
		"total":       total,
		"page":        req.Page,
		"page_size":   req.PageSize,
		"total_pages": (total + int64(req.PageSize) - 1) / int64(req.PageSize),
	})
}

// PresignAttachment 返回直传对象存储的预签名地址，前端上传后再把 file_url 写进项目链接
func PresignAttachment(c *gin.Context) {
	var req AttachmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if objectstore.Default == nil {
		response.Fail(c, response.ErrServiceUnavailable.WithTips("未配置对象存储"))
		return
	}
	project, ok := loadOwnProject(c)
	if !ok {
		return
	}

	ticket, err := objectstore.Default.PresignUpload(c.Request.Context(), objectstore.UploadRequest{
		Dir:         fmt.Sprintf("project/%d", project.ID),
		Filename:    req.Filename,
		ContentType: req.ContentType,
	})
	if err != nil {
		log.Error("生成附件上传地址失败", "error", err, "id", project.ID)
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}
	response.Success(c, ticket)
}
