package category

import (
	"log/slog"

	"hackathon-vote-system/internal/global/logger"
)

var log *slog.Logger

type ModuleCategory struct{}

func (m *ModuleCategory) GetName() string {
	return "Category"
}

func (m *ModuleCategory) Init() {
	log = logger.New("Category")
}
