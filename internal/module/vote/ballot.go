package vote

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"hackathon-vote-system/config"
	"hackathon-vote-system/internal/global/response"
	"hackathon-vote-system/internal/model"
)

const (
	MaxReasonLength = 500
	MinScore        = 1
	MaxScore        = 10
)

// Ballot 理由模式只看 Reason，打分模式只看 Scores
type Ballot struct {
	Reason string           `json:"reason"`
	Scores []DimensionScore `json:"scores"`
}

type DimensionScore struct {
	DimensionID uint `json:"dimension_id"`
	Score       int  `json:"score"`
}

// validated 校验通过后要写入的内容
type validated struct {
	reason string
	total  *float64
	scores []model.VoteScore
}

// validateBallot 和资格无关，在资格检查之前执行
func validateBallot(mode config.VotingMode, dims []model.ScoreDimension, b Ballot) (*validated, error) {
	if mode == config.VotingModeScores {
		return validateScores(dims, b.Scores)
	}

	reason := strings.TrimSpace(b.Reason)
	if reason == "" {
		return nil, response.ErrInvalidRequest.WithTips("投票理由不能为空")
	}
	if utf8.RuneCountInString(reason) > MaxReasonLength {
		return nil, response.ErrInvalidRequest.WithTips(fmt.Sprintf("投票理由不能超过 %d 字", MaxReasonLength))
	}
	return &validated{reason: reason}, nil
}

// validateScores 每个启用的维度恰好一个 1..10 的分数，总分 = Σ 分数 × 权重
func validateScores(dims []model.ScoreDimension, scores []DimensionScore) (*validated, error) {
	if len(dims) == 0 {
		return nil, response.ErrServiceUnavailable.WithTips("未配置打分维度")
	}
	weights := make(map[uint]float64, len(dims))
	for _, d := range dims {
		weights[d.ID] = d.Weight
	}

	out := &validated{scores: make([]model.VoteScore, 0, len(scores))}
	seen := make(map[uint]bool, len(scores))
	var total float64
	for _, s := range scores {
		weight, ok := weights[s.DimensionID]
		if !ok {
			return nil, response.ErrInvalidRequest.WithTips(fmt.Sprintf("未知的打分维度 %d", s.DimensionID))
		}
		if seen[s.DimensionID] {
			return nil, response.ErrInvalidRequest.WithTips(fmt.Sprintf("打分维度 %d 重复", s.DimensionID))
		}
		if s.Score < MinScore || s.Score > MaxScore {
			return nil, response.ErrInvalidRequest.WithTips(fmt.Sprintf("分数必须在 %d 到 %d 之间", MinScore, MaxScore))
		}
		seen[s.DimensionID] = true
		total += float64(s.Score) * weight
		out.scores = append(out.scores, model.VoteScore{DimensionID: s.DimensionID, Score: s.Score})
	}
	if len(seen) != len(dims) {
		return nil, response.ErrInvalidRequest.WithTips("每个打分维度都需要评分")
	}
	out.total = &total
	return out, nil
}
