package vote

import (
	"hackathon-vote-system/internal/global/jwt"
	"hackathon-vote-system/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (v *ModuleVote) InitRouter(r *gin.RouterGroup) {
	voteGroup := r.Group("/vote")

	voteGroup.GET("/count/:project_id", GetProjectVoteCount)

	authed := voteGroup.Group("", middleware.Auth(jwt.RoleUser))
	authed.GET("/eligibility/:project_id", GetEligibility)
	authed.POST("/cast", Cast)
	authed.GET("/stats", GetMyStats)
	authed.GET("/mine", ListMyVotes)
}
