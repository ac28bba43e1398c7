package model

import (
	"slices"

	"gorm.io/datatypes"
)

type Category struct {
	Model
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:varchar(255)" json:"description"`
}

type Project struct {
	Model
	Title           string `gorm:"type:varchar(100);not null" json:"title"`
	Description     string `gorm:"type:text" json:"description"`
	DemoURL         string `gorm:"type:varchar(255)" json:"demo_url"`
	RepoURL         string `gorm:"type:varchar(255)" json:"repo_url"`
	PresentationURL string `gorm:"type:varchar(255)" json:"presentation_url"`
	CategoryID      *uint  `gorm:"index" json:"category_id"`
	// TeamMembers 队员的用户 ID，按值保存，不做外键
	TeamMembers datatypes.JSONSlice[uint] `gorm:"type:json" json:"team_members"`
	SubmitterID uint                      `gorm:"not null;index" json:"submitter_id"`
	Blocked     bool                      `gorm:"default:false;not null" json:"blocked"`
	// Locked 被管理员锁定后提交者不能再修改
	Locked bool `gorm:"default:false;not null" json:"locked"`

	Submitter partialUser `gorm:"foreignKey:SubmitterID;references:ID" json:"submitter"`
}

// IsMember 提交者本人或队员
func (p *Project) IsMember(userID uint) bool {
	return p.SubmitterID == userID || slices.Contains(p.TeamMembers, userID)
}
