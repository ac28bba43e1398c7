package category

import (
	"strings"

	"hackathon-vote-system/internal/global/database"
	"hackathon-vote-system/internal/global/response"
	"hackathon-vote-system/internal/model"

	"github.com/gin-gonic/gin"
)

type CreateReq struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=255"`
}

func ListCategories(c *gin.Context) {
	var categories []model.Category
	if err := database.DB.WithContext(c.Request.Context()).Order("id").Find(&categories).Error; err != nil {
		log.Error("获取分类列表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, gin.H{"categories": categories, "total": len(categories)})
}

func CreateCategory(c *gin.Context) {
	var req CreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	category := model.Category{Name: strings.TrimSpace(req.Name), Description: req.Description}
	if err := database.DB.WithContext(c.Request.Context()).Create(&category).Error; err != nil {
		if database.IsDuplicate(err) {
			response.Fail(c, response.ErrAlreadyExists.WithTips("分类已存在"))
			return
		}
		log.Error("创建分类失败", "error", err, "name", req.Name)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	log.Info("创建分类成功", "id", category.ID, "name", category.Name)
	response.Success(c, category)
}
