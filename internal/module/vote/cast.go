package vote

import (
	"context"
	"errors"
	"time"

	"hackathon-vote-system/config"
	"hackathon-vote-system/internal/global/database"
	"hackathon-vote-system/internal/global/response"
	"hackathon-vote-system/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CastVote 在一个事务里完成：校验选票、重新检查资格、写入投票、占用一票额度
// 提交成功后异步通知，通知失败不影响已提交的投票
func CastVote(ctx context.Context, db *gorm.DB, voterID, projectID uint, ballot Ballot) (*model.Vote, error) {
	var (
		vote      *model.Vote
		voteCount int64
		voterName string
	)
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		settings, err := model.LoadSettings(tx)
		if err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}

		var dims []model.ScoreDimension
		if settings.VotingMode == config.VotingModeScores {
			if dims, err = model.ActiveDimensions(tx); err != nil {
				return response.ErrDatabase.WithOrigin(err)
			}
		}
		v, err := validateBallot(settings.VotingMode, dims, ballot)
		if err != nil {
			return err
		}

		// 和提交之间仍有竞争窗口，最终由唯一索引和条件更新兜底
		result, err := checkWith(tx, settings, voterID, projectID)
		if err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		if !result.Allowed {
			return result.Reason.Err()
		}

		vote = &model.Vote{
			VoterID:    voterID,
			ProjectID:  projectID,
			Reason:     v.reason,
			TotalScore: v.total,
			Scores:     v.scores,
		}
		if err := insertVote(tx, vote); err != nil {
			return err
		}
		if err := consumeQuota(tx, voterID, settings.MaxVotesPerUser); err != nil {
			return err
		}

		if err := tx.Model(&model.Vote{}).Where("project_id = ?", projectID).Count(&voteCount).Error; err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		return tx.Model(&model.User{}).Select("nick_name").Where("id = ?", voterID).Scan(&voterName).Error
	})
	if err != nil {
		var e *response.Error
		if !errors.As(err, &e) {
			err = response.ErrDatabase.WithOrigin(err)
		}
		return nil, err
	}

	NotifyVoteCast(projectID, voteCount, voterName)
	return vote, nil
}

// insertVote 唯一索引 (voter_id, project_id) 冲突时返回 ErrAlreadyVoted
func insertVote(tx *gorm.DB, vote *model.Vote) error {
	err := tx.Omit("Voter").Create(vote).Error
	switch {
	case err == nil:
		return nil
	case database.IsDuplicate(err):
		return response.ErrAlreadyVoted.WithOrigin(err)
	default:
		return response.ErrDatabase.WithOrigin(err)
	}
}

// consumeQuota 单条条件更新：已用票数低于上限才加一，没有命中的行说明额度已用完
func consumeQuota(tx *gorm.DB, voterID uint, globalMax int) error {
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.UserVoteStats{UserID: voterID}).Error; err != nil {
		return response.ErrDatabase.WithOrigin(err)
	}

	res := tx.Model(&model.UserVoteStats{}).
		Where("user_id = ? AND votes_used < (CASE WHEN max_votes > 0 THEN max_votes ELSE ? END)", voterID, globalMax).
		Updates(map[string]any{
			"votes_used":   gorm.Expr("votes_used + 1"),
			"last_vote_at": time.Now(),
		})
	if res.Error != nil {
		return response.ErrDatabase.WithOrigin(res.Error)
	}
	if res.RowsAffected == 0 {
		return response.ErrQuotaExceeded
	}
	return nil
}

// DeleteVote 管理员删除投票，同一事务内归还一票额度
func DeleteVote(ctx context.Context, db *gorm.DB, voteID uint) (*model.Vote, error) {
	var (
		vote      model.Vote
		voteCount int64
	)
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&vote, voteID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.ErrNotFound.WithTips("投票不存在")
			}
			return response.ErrDatabase.WithOrigin(err)
		}
		if err := tx.Where("vote_id = ?", vote.ID).Delete(&model.VoteScore{}).Error; err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		if err := tx.Delete(&model.Vote{}, vote.ID).Error; err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		if err := tx.Model(&model.UserVoteStats{}).
			Where("user_id = ? AND votes_used > 0", vote.VoterID).
			Update("votes_used", gorm.Expr("votes_used - 1")).Error; err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		if err := tx.Model(&model.Vote{}).Where("project_id = ?", vote.ProjectID).Count(&voteCount).Error; err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	NotifyVoteDeleted(vote.ProjectID, voteCount)
	return &vote, nil
}
