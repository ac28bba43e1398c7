package category

import (
	"hackathon-vote-system/internal/global/jwt"
	"hackathon-vote-system/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (m *ModuleCategory) InitRouter(r *gin.RouterGroup) {
	categoryGroup := r.Group("/category")

	categoryGroup.GET("/list", ListCategories)
	categoryGroup.POST("/create", middleware.Auth(jwt.RoleAdmin), CreateCategory)
}
