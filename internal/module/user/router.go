package user

import (
	"hackathon-vote-system/internal/global/jwt"
	"hackathon-vote-system/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (u *ModuleUser) InitRouter(r *gin.RouterGroup) {
	userGroup := r.Group("/user")

	userGroup.POST("/register", Register)
	userGroup.POST("/login", Login)

	userGroup.GET("/me", middleware.Auth(jwt.RoleUser), GetMe)
	userGroup.PUT("/password", middleware.Auth(jwt.RoleUser), ChangePassword)
}
