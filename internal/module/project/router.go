package project

import (
	"hackathon-vote-system/internal/global/jwt"
	"hackathon-vote-system/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (p *ModuleProject) InitRouter(r *gin.RouterGroup) {
	projectGroup := r.Group("/project")

	projectGroup.GET("/list", ListProjects)
	projectGroup.GET("/:id", GetProject)

	authed := projectGroup.Group("", middleware.Auth(jwt.RoleUser))
	authed.POST("/create", CreateProject)
	authed.PUT("/update/:id", UpdateProject)
	authed.DELETE("/delete/:id", DeleteProject)
	authed.POST("/:id/attachment", PresignAttachment)
}
