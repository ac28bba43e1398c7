package stream

import (
	"log/slog"

	"hackathon-vote-system/internal/global/logger"
)

var log *slog.Logger

type ModuleStream struct{}

func (s *ModuleStream) GetName() string {
	return "Stream"
}

func (s *ModuleStream) Init() {
	log = logger.New("Stream")
}
