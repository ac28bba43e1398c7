package stats

import (
	"hackathon-vote-system/internal/global/jwt"
	"hackathon-vote-system/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (s *ModuleStats) InitRouter(r *gin.RouterGroup) {
	statsGroup := r.Group("/stats")

	statsGroup.GET("/results", GetResults)
	statsGroup.GET("/results/export", middleware.Auth(jwt.RoleAdmin), ExportResults)
}
