package test

import (
	"fmt"
	"testing"

	"hackathon-vote-system/config"
	"hackathon-vote-system/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func CreateUser(t *testing.T, db *gorm.DB, nickName string) *model.User {
	t.Helper()
	u := &model.User{
		Email:    fmt.Sprintf("%s@example.com", nickName),
		Password: "x",
		NickName: nickName,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func CreateProject(t *testing.T, db *gorm.DB, title string, submitterID uint, members ...uint) *model.Project {
	t.Helper()
	p := &model.Project{
		Title:       title,
		SubmitterID: submitterID,
		TeamMembers: datatypes.JSONSlice[uint](members),
	}
	require.NoError(t, db.Omit("Submitter").Create(p).Error)
	return p
}

func CreateDimension(t *testing.T, db *gorm.DB, name string, weight float64) *model.ScoreDimension {
	t.Helper()
	d := &model.ScoreDimension{Name: name, Weight: weight, Active: true}
	require.NoError(t, db.Create(d).Error)
	return d
}

// UpdateSettings 直接改库，绕过管理员接口
func UpdateSettings(t *testing.T, db *gorm.DB, enabled bool, maxVotes int, mode config.VotingMode) {
	t.Helper()
	require.NoError(t, db.Model(&model.SystemSettings{}).Where("id = ?", model.SettingsID).Updates(map[string]any{
		"is_voting_enabled":  enabled,
		"max_votes_per_user": maxVotes,
		"voting_mode":        mode,
	}).Error)
}
