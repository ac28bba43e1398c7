package vote

import (
	"context"
	"time"

	"hackathon-vote-system/internal/global/realtime"
)

const notifyTimeout = 3 * time.Second

// VoteCountPayload 只是让前端刷新计数的提示，以 /vote/count 为准
type VoteCountPayload struct {
	ProjectID uint   `json:"project_id"`
	VoteCount int64  `json:"vote_count"`
	Voter     string `json:"voter,omitempty"`
}

// NotifyVoteCast 投票提交后调用，不阻塞请求，失败只记日志
func NotifyVoteCast(projectID uint, newVoteCount int64, voterDisplayName string) {
	publish(realtime.NewEvent(realtime.TypeVoteCast, VoteCountPayload{
		ProjectID: projectID,
		VoteCount: newVoteCount,
		Voter:     voterDisplayName,
	}))
}

func NotifyVoteDeleted(projectID uint, newVoteCount int64) {
	publish(realtime.NewEvent(realtime.TypeVoteDeleted, VoteCountPayload{
		ProjectID: projectID,
		VoteCount: newVoteCount,
	}))
}

func publish(ev realtime.Event) {
	pub := realtime.Default()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := pub.Publish(ctx, realtime.ChannelVoting, ev); err != nil {
			log.Warn("投票通知发送失败", "type", ev.Type, "error", err)
		}
	}()
}
