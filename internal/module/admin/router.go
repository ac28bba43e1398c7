package admin

import (
	"hackathon-vote-system/internal/global/jwt"
	"hackathon-vote-system/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (a *ModuleAdmin) InitRouter(r *gin.RouterGroup) {
	adminGroup := r.Group("/admin", middleware.Auth(jwt.RoleAdmin))

	adminGroup.GET("/settings", GetSettings)
	adminGroup.PUT("/settings", UpdateSettings)

	adminGroup.GET("/users", ListUsers)
	adminGroup.PUT("/user/:id/block", BlockUser)
	adminGroup.PUT("/user/:id/unblock", UnblockUser)
	adminGroup.PUT("/user/:id/quota", SetUserQuota)

	adminGroup.PUT("/project/:id/block", BlockProject)
	adminGroup.PUT("/project/:id/unblock", UnblockProject)
	adminGroup.PUT("/project/:id/lock", LockProject)
	adminGroup.DELETE("/project/:id", DeleteProject)

	adminGroup.GET("/votes", ListVotes)
	adminGroup.DELETE("/vote/:id", DeleteVote)

	adminGroup.GET("/dimension", ListDimensions)
	adminGroup.POST("/dimension", CreateDimension)
	adminGroup.PUT("/dimension/:id", UpdateDimension)

	adminGroup.POST("/broadcast", Broadcast)
	adminGroup.GET("/overview", Overview)
}
