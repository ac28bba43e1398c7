package module

import (
	"hackathon-vote-system/internal/module/admin"
	"hackathon-vote-system/internal/module/category"
	"hackathon-vote-system/internal/module/ping"
	"hackathon-vote-system/internal/module/project"
	"hackathon-vote-system/internal/module/stats"
	"hackathon-vote-system/internal/module/stream"
	"hackathon-vote-system/internal/module/user"
	"hackathon-vote-system/internal/module/vote"

	"github.com/gin-gonic/gin"
)

type Module interface {
	GetName() string
	Init()
	InitRouter(r *gin.RouterGroup)
}

var Modules []Module

func registerModule(m []Module) {
	Modules = append(Modules, m...)
}

func init() {
	// Register your module here
	registerModule([]Module{
		&user.ModuleUser{},
		&ping.ModulePing{},
		&category.ModuleCategory{},
		&project.ModuleProject{},
		&vote.ModuleVote{},
		&stats.ModuleStats{},
		&admin.ModuleAdmin{},
		&stream.ModuleStream{},
	})
}
