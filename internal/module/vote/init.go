package vote

import (
	"log/slog"

	"hackathon-vote-system/internal/global/logger"
)

var log *slog.Logger

type ModuleVote struct{}

func (v *ModuleVote) GetName() string {
	return "Vote"
}

func (v *ModuleVote) Init() {
	log = logger.New("Vote")
}
