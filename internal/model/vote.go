package model

import "time"

// Vote 创建后不可修改，只能被管理员删除
// 不使用软删除，避免唯一索引和已删除的行冲突
type Vote struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	VoterID    uint        `gorm:"not null;uniqueIndex:idx_vote_voter_project" json:"voter_id"`
	ProjectID  uint        `gorm:"not null;uniqueIndex:idx_vote_voter_project;index" json:"project_id"`
	Reason     string      `gorm:"type:text" json:"reason,omitempty"`
	TotalScore *float64    `json:"total_score,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	Scores     []VoteScore `gorm:"foreignKey:VoteID;constraint:OnDelete:CASCADE" json:"scores,omitempty"`

	Voter partialUser `gorm:"foreignKey:VoterID;references:ID" json:"voter"`
}

type VoteScore struct {
	ID          uint `gorm:"primaryKey" json:"-"`
	VoteID      uint `gorm:"not null;uniqueIndex:idx_vote_dimension" json:"-"`
	DimensionID uint `gorm:"not null;uniqueIndex:idx_vote_dimension;index" json:"dimension_id"`
	Score       int  `gorm:"not null" json:"score"`
}

// ScoreDimension 打分维度，Weight 参与总分加权
type ScoreDimension struct {
	Model
	Name        string  `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string  `gorm:"type:varchar(255)" json:"description"`
	Weight      float64 `gorm:"not null" json:"weight"`
	Active      bool    `gorm:"not null" json:"active"`
}

// UserVoteStats 已用票数计数器，和 Vote 的插入/删除在同一事务内更新
type UserVoteStats struct {
	UserID     uint       `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	VotesUsed  int        `gorm:"not null;default:0" json:"votes_used"`
	MaxVotes   int        `gorm:"not null;default:0" json:"max_votes"` // 0 表示使用全局上限
	LastVoteAt *time.Time `json:"last_vote_at"`
}
