package model

import (
	"time"

	"hackathon-vote-system/config"

	"gorm.io/gorm"
)

// SettingsID SystemSettings 只有一行
const SettingsID = 1

type SystemSettings struct {
	ID              uint              `gorm:"primaryKey" json:"-"`
	IsVotingEnabled bool              `gorm:"not null" json:"is_voting_enabled"`
	MaxVotesPerUser int               `gorm:"not null" json:"max_votes_per_user"`
	VotingMode      config.VotingMode `gorm:"type:varchar(20);not null" json:"voting_mode"`
	Version         uint              `gorm:"not null;default:1" json:"version"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// EffectiveMax 单个用户的票数上限
func (s *SystemSettings) EffectiveMax(stats *UserVoteStats) int {
	if stats != nil && stats.MaxVotes > 0 {
		return stats.MaxVotes
	}
	return s.MaxVotesPerUser
}

// LoadSettings 每次都从数据库读，管理员修改后立即生效
func LoadSettings(tx *gorm.DB) (*SystemSettings, error) {
	var s SystemSettings
	if err := tx.First(&s, SettingsID).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// ActiveDimensions 打分模式下选票必须覆盖的维度
func ActiveDimensions(tx *gorm.DB) ([]ScoreDimension, error) {
	var dims []ScoreDimension
	err := tx.Where("active = ?", true).Order("id").Find(&dims).Error
	return dims, err
}
