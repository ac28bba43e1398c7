package vote

import (
	"errors"

	"hackathon-vote-system/internal/global/response"
	"hackathon-vote-system/internal/model"

	"gorm.io/gorm"
)

// Kind 不能投票的原因，按检查顺序排列
type Kind string

const (
	KindVotingDisabled       Kind = "voting_disabled"
	KindCannotVoteOwnProject Kind = "cannot_vote_own_project"
	KindAlreadyVoted         Kind = "already_voted"
	KindQuotaExceeded        Kind = "quota_exceeded"
	KindProjectUnavailable   Kind = "project_unavailable"
)

var kindErrors = map[Kind]*response.Error{
	KindVotingDisabled:       response.ErrVotingDisabled,
	KindCannotVoteOwnProject: response.ErrCannotVoteOwnProject,
	KindAlreadyVoted:         response.ErrAlreadyVoted,
	KindQuotaExceeded:        response.ErrQuotaExceeded,
	KindProjectUnavailable:   response.ErrProjectUnavailable,
}

// Err 对应的业务错误，未知原因按禁止处理
func (k Kind) Err() *response.Error {
	if e, ok := kindErrors[k]; ok {
		return e
	}
	return response.ErrForbidden
}

type Eligibility struct {
	Allowed   bool   `json:"allowed"`
	Reason    Kind   `json:"reason,omitempty"`
	Message   string `json:"message,omitempty"`
	VotesUsed int64  `json:"votes_used"`
	MaxVotes  int    `json:"max_votes"`
}

func deny(e Eligibility, k Kind) Eligibility {
	e.Allowed = false
	e.Reason = k
	e.Message = k.Err().Message
	return e
}

// CheckEligibility 只读。返回的 error 只表示查询失败，不能投票的原因在 Eligibility 里
func CheckEligibility(tx *gorm.DB, voterID, projectID uint) (Eligibility, error) {
	settings, err := model.LoadSettings(tx)
	if err != nil {
		return Eligibility{}, err
	}
	return checkWith(tx, settings, voterID, projectID)
}

func checkWith(tx *gorm.DB, settings *model.SystemSettings, voterID, projectID uint) (Eligibility, error) {
	var result Eligibility

	var stats model.UserVoteStats
	if err := tx.Where("user_id = ?", voterID).Limit(1).Find(&stats).Error; err != nil {
		return result, err
	}
	result.MaxVotes = settings.EffectiveMax(&stats)
	if err := tx.Model(&model.Vote{}).Where("voter_id = ?", voterID).Count(&result.VotesUsed).Error; err != nil {
		return result, err
	}

	if !settings.IsVotingEnabled {
		return deny(result, KindVotingDisabled), nil
	}

	// 项目不存在时跳过归属检查，最后落到 ProjectUnavailable
	var project model.Project
	found := true
	if err := tx.First(&project, projectID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return result, err
		}
		found = false
	}
	if found && project.IsMember(voterID) {
		return deny(result, KindCannotVoteOwnProject), nil
	}

	var existing int64
	if err := tx.Model(&model.Vote{}).
		Where("voter_id = ? AND project_id = ?", voterID, projectID).
		Count(&existing).Error; err != nil {
		return result, err
	}
	if existing > 0 {
		return deny(result, KindAlreadyVoted), nil
	}

	if result.VotesUsed >= int64(result.MaxVotes) {
		return deny(result, KindQuotaExceeded), nil
	}

	if !found || project.Blocked {
		return deny(result, KindProjectUnavailable), nil
	}

	result.Allowed = true
	return result, nil
}
