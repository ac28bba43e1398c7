package stats

import (
	"sort"
	"time"

	"hackathon-vote-system/config"
	"hackathon-vote-system/internal/model"

	"gorm.io/gorm"
)

// UserStats remaining 不会小于 0，管理员下调上限后已投的票保留
type UserStats struct {
	VotesUsed int64 `json:"votes_used"`
	MaxVotes  int   `json:"max_votes"`
	Remaining int64 `json:"remaining"`
}

// UserVoteStats 已用票数按 Vote 行统计，不读计数器
func UserVoteStats(db *gorm.DB, voterID uint) (*UserStats, error) {
	settings, err := model.LoadSettings(db)
	if err != nil {
		return nil, err
	}
	var counter model.UserVoteStats
	if err := db.Where("user_id = ?", voterID).Limit(1).Find(&counter).Error; err != nil {
		return nil, err
	}

	out := &UserStats{MaxVotes: settings.EffectiveMax(&counter)}
	if err := db.Model(&model.Vote{}).Where("voter_id = ?", voterID).Count(&out.VotesUsed).Error; err != nil {
		return nil, err
	}
	out.Remaining = max(int64(out.MaxVotes)-out.VotesUsed, 0)
	return out, nil
}

func ProjectVoteCount(db *gorm.DB, projectID uint) (int64, error) {
	var count int64
	err := db.Model(&model.Vote{}).Where("project_id = ?", projectID).Count(&count).Error
	return count, err
}

type ResultFilter struct {
	CategoryID *uint `form:"category_id"`
}

type DimensionAverage struct {
	DimensionID  uint    `json:"dimension_id"`
	AverageScore float64 `json:"average_score"`
}

type ProjectResult struct {
	Rank              int                `json:"rank" excel:"排名"`
	ProjectID         uint               `json:"project_id" excel:"项目ID"`
	Title             string             `json:"title" excel:"项目名称"`
	CategoryID        *uint              `json:"category_id" excel:"分类ID"`
	VoteCount         int64              `json:"vote_count" excel:"票数"`
	AverageScore      *float64           `json:"average_score,omitempty" excel:"平均总分"`
	DimensionAverages []DimensionAverage `json:"dimension_averages,omitempty" excel:"-"`
	SubmittedAt       time.Time          `json:"submitted_at" excel:"提交时间"`
}

type voteAggregate struct {
	ProjectID    uint
	VoteCount    int64
	AverageScore *float64
}

type dimensionAggregate struct {
	ProjectID    uint
	DimensionID  uint
	AverageScore float64
}

// VotingResults 排除封禁和已删除的项目
// 打分模式按平均总分降序，理由模式按票数降序；并列时先提交的在前，再按 ID
func VotingResults(db *gorm.DB, filter ResultFilter) ([]ProjectResult, error) {
	settings, err := model.LoadSettings(db)
	if err != nil {
		return nil, err
	}

	query := db.Model(&model.Project{}).Where("blocked = ?", false)
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	var projects []model.Project
	if err := query.Select("id", "title", "category_id", "created_at").Find(&projects).Error; err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return []ProjectResult{}, nil
	}
	ids := make([]uint, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}

	var votes []voteAggregate
	if err := db.Model(&model.Vote{}).
		Select("project_id, COUNT(*) AS vote_count, AVG(total_score) AS average_score").
		Where("project_id IN ?", ids).
		Group("project_id").
		Scan(&votes).Error; err != nil {
		return nil, err
	}
	byProject := make(map[uint]voteAggregate, len(votes))
	for _, v := range votes {
		byProject[v.ProjectID] = v
	}

	dimsByProject := make(map[uint][]DimensionAverage)
	if settings.VotingMode == config.VotingModeScores {
		var dims []dimensionAggregate
		if err := db.Table("vote_score").
			Select("vote.project_id AS project_id, vote_score.dimension_id AS dimension_id, AVG(vote_score.score) AS average_score").
			Joins("JOIN vote ON vote.id = vote_score.vote_id").
			Where("vote.project_id IN ?", ids).
			Group("vote.project_id, vote_score.dimension_id").
			Order("vote_score.dimension_id").
			Scan(&dims).Error; err != nil {
			return nil, err
		}
		for _, d := range dims {
			dimsByProject[d.ProjectID] = append(dimsByProject[d.ProjectID], DimensionAverage{
				DimensionID:  d.DimensionID,
				AverageScore: d.AverageScore,
			})
		}
	}

	results := make([]ProjectResult, len(projects))
	for i, p := range projects {
		agg := byProject[p.ID]
		results[i] = ProjectResult{
			ProjectID:         p.ID,
			Title:             p.Title,
			CategoryID:        p.CategoryID,
			VoteCount:         agg.VoteCount,
			AverageScore:      agg.AverageScore,
			DimensionAverages: dimsByProject[p.ID],
			SubmittedAt:       p.CreatedAt,
		}
	}
	rank(results, settings.VotingMode)
	return results, nil
}

func rank(results []ProjectResult, mode config.VotingMode) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if mode == config.VotingModeScores {
			as, bs := scoreOf(a), scoreOf(b)
			if as != bs {
				return as > bs
			}
		} else if a.VoteCount != b.VoteCount {
			return a.VoteCount > b.VoteCount
		}
		if !a.SubmittedAt.Equal(b.SubmittedAt) {
			return a.SubmittedAt.Before(b.SubmittedAt)
		}
		return a.ProjectID < b.ProjectID
	})
	for i := range results {
		results[i].Rank = i + 1
	}
}

// scoreOf 没有打分的项目排在最后
func scoreOf(r ProjectResult) float64 {
	if r.AverageScore == nil {
		return -1
	}
	return *r.AverageScore
}
