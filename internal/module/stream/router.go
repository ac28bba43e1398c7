package stream

import (
	"hackathon-vote-system/internal/global/jwt"
	"hackathon-vote-system/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (s *ModuleStream) InitRouter(r *gin.RouterGroup) {
	r.GET("/realtime/stream", middleware.Auth(jwt.RoleUser), Stream)
}
