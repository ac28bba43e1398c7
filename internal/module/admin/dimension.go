package admin

import (
	"errors"

	"hackathon-vote-system/internal/global/database"
	"hackathon-vote-system/internal/global/response"
	"hackathon-vote-system/internal/model"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateDimensionReq struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description string  `json:"description" binding:"max=255"`
	Weight      float64 `json:"weight" binding:"required,gt=0"`
}

type UpdateDimensionReq struct {
	Name        *string  `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string  `json:"description" binding:"omitempty,max=255"`
	Weight      *float64 `json:"weight" binding:"omitempty,gt=0"`
	Active      *bool    `json:"active"`
}

func ListDimensions(c *gin.Context) {
	var dims []model.ScoreDimension
	if err := database.DB.WithContext(c.Request.Context()).Order("id").Find(&dims).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, dims)
}

func CreateDimension(c *gin.Context) {
	var req CreateDimensionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	dim := model.ScoreDimension{
		Name:        req.Name,
		Description: req.Description,
		Weight:      req.Weight,
		Active:      true,
	}
	if err := database.DB.WithContext(c.Request.Context()).Create(&dim).Error; err != nil {
		if database.IsDuplicate(err) {
			response.Fail(c, response.ErrAlreadyExists.WithTips("维度名称已存在"))
			return
		}
		log.Error("创建打分维度失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	log.Info("创建打分维度", "dimension_id", dim.ID, "name", dim.Name, "weight", dim.Weight)
	response.Success(c, dim)
}

// UpdateDimension 停用的维度不再出现在新选票中，已有分数不受影响
func UpdateDimension(c *gin.Context) {
	var uri idUri
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	var req UpdateDimensionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	db := database.DB.WithContext(c.Request.Context())
	var dim model.ScoreDimension
	if err := db.First(&dim, uri.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("维度不存在"))
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Weight != nil {
		updates["weight"] = *req.Weight
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if len(updates) > 0 {
		if err := db.Model(&dim).Updates(updates).Error; err != nil {
			if database.IsDuplicate(err) {
				response.Fail(c, response.ErrAlreadyExists.WithTips("维度名称已存在"))
				return
			}
			log.Error("更新打分维度失败", "error", err, "dimension_id", dim.ID)
			response.Fail(c, response.ErrDatabase.WithOrigin(err))
			return
		}
	}
	if err := db.First(&dim, uri.ID).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, dim)
}
