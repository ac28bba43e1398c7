package model

import (
	"time"

	"gorm.io/gorm"
)

type Model struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (m *Model) CreateTime() int64 {
	return m.CreatedAt.UnixMilli()
}

// All 参与自动迁移的模型，生产库和测试库共用
func All() []any {
	return []any{
		&User{},
		&Category{},
		&Project{},
		&ScoreDimension{},
		&Vote{},
		&VoteScore{},
		&UserVoteStats{},
		&SystemSettings{},
	}
}
