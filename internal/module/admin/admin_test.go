package admin

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"testing"
	"time"

	"hackathon-vote-system/config"
	"hackathon-vote-system/internal/global/jwt"
	"hackathon-vote-system/internal/global/realtime"
	"hackathon-vote-system/internal/global/response"
	"hackathon-vote-system/internal/model"
	"hackathon-vote-system/internal/module/vote"
	"hackathon-vote-system/test"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	(&ModuleAdmin{}).Init()
	(&vote.ModuleVote{}).Init()
	os.Exit(m.Run())
}

type published struct {
	channel string
	ev      realtime.Event
}

func capture(t *testing.T) <-chan published {
	ch := make(chan published, 8)
	restore := realtime.SetDefault(realtime.PublisherFunc(func(_ context.Context, channel string, ev realtime.Event) error {
		ch <- published{channel: channel, ev: ev}
		return nil
	}))
	t.Cleanup(restore)
	return ch
}

func waitEvent(t *testing.T, ch <-chan published) published {
	t.Helper()
	select {
	case p := <-ch:
		return p
	case <-time.After(2 * time.Second):
		t.Fatal("没有收到实时消息")
		return published{}
	}
}

func router() *gin.Engine {
	return test.Router(func(r *gin.RouterGroup) {
		(&ModuleAdmin{}).InitRouter(r)
	})
}

func path(format string, id uint) string {
	return "/admin/" + format + "/" + strconv.FormatUint(uint64(id), 10)
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	db := test.SetupDB(t)
	u := test.CreateUser(t, db, "u")
	r := router()

	w, resp := test.DoRequest(t, r, http.MethodGet, "/admin/settings", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	test.ErrorEqual(t, response.ErrUnauthorized, resp)

	w, resp = test.DoRequest(t, r, http.MethodGet, "/admin/settings", test.Token(u.ID, jwt.RoleUser), nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	test.ErrorEqual(t, response.ErrForbidden, resp)
}

func TestUpdateSettingsBumpsVersionAndNotifies(t *testing.T) {
	db := test.SetupDB(t)
	events := capture(t)
	r := router()
	auth := test.Token(1, jwt.RoleAdmin)

	_, resp := test.DoRequest(t, r, http.MethodPut, "/admin/settings", auth, gin.H{
		"is_voting_enabled":  false,
		"max_votes_per_user": 5,
		"voting_mode":        config.VotingModeScores,
	})
	test.NoError(t, resp)

	var s model.SystemSettings
	test.DecodeData(t, resp, &s)
	require.False(t, s.IsVotingEnabled)
	require.Equal(t, 5, s.MaxVotesPerUser)
	require.Equal(t, config.VotingModeScores, s.VotingMode)
	require.Equal(t, uint(2), s.Version)

	p := waitEvent(t, events)
	require.Equal(t, realtime.ChannelVoting, p.channel)
	require.Equal(t, realtime.TypeSettingsChanged, p.ev.Type)

	stored, err := model.LoadSettings(db)
	require.NoError(t, err)
	require.Equal(t, uint(2), stored.Version)
	require.Equal(t, 5, stored.MaxVotesPerUser)
}

func TestUpdateSettingsRejectsInvalid(t *testing.T) {
	test.SetupDB(t)
	r := router()
	auth := test.Token(1, jwt.RoleAdmin)

	_, resp := test.DoRequest(t, r, http.MethodPut, "/admin/settings", auth, gin.H{"voting_mode": "lottery"})
	test.ErrorEqual(t, response.ErrInvalidRequest, resp)

	_, resp = test.DoRequest(t, r, http.MethodPut, "/admin/settings", auth, gin.H{"max_votes_per_user": -1})
	test.ErrorEqual(t, response.ErrInvalidRequest, resp)

	_, resp = test.DoRequest(t, r, http.MethodPut, "/admin/settings", auth, gin.H{})
	test.ErrorEqual(t, response.ErrInvalidRequest, resp)
}

func TestBlockUserAndQuota(t *testing.T) {
	db := test.SetupDB(t)
	u := test.CreateUser(t, db, "u")
	r := router()
	auth := test.Token(1, jwt.RoleAdmin)

	_, resp := test.DoRequest(t, r, http.MethodPut, path("user", u.ID)+"/block", auth, nil)
	test.NoError(t, resp)
	var got model.User
	require.NoError(t, db.First(&got, u.ID).Error)
	require.True(t, got.Blocked)

	_, resp = test.DoRequest(t, r, http.MethodPut, path("user", u.ID)+"/unblock", auth, nil)
	test.NoError(t, resp)
	require.NoError(t, db.First(&got, u.ID).Error)
	require.False(t, got.Blocked)

	_, resp = test.DoRequest(t, r, http.MethodPut, path("user", 999)+"/block", auth, nil)
	test.ErrorEqual(t, response.ErrNotFound, resp)

	// 第一次写入计数器行，第二次覆盖上限
	_, resp = test.DoRequest(t, r, http.MethodPut, path("user", u.ID)+"/quota", auth, gin.H{"max_votes": 7})
	test.NoError(t, resp)
	_, resp = test.DoRequest(t, r, http.MethodPut, path("user", u.ID)+"/quota", auth, gin.H{"max_votes": 1})
	test.NoError(t, resp)

	var stats model.UserVoteStats
	require.NoError(t, db.First(&stats, "user_id = ?", u.ID).Error)
	require.Equal(t, 1, stats.MaxVotes)
	require.Equal(t, 0, stats.VotesUsed)

	_, resp = test.DoRequest(t, r, http.MethodPut, path("user", 999)+"/quota", auth, gin.H{"max_votes": 1})
	test.ErrorEqual(t, response.ErrNotFound, resp)

	_, resp = test.DoRequest(t, r, http.MethodGet, "/admin/users?keyword=u@", auth, nil)
	test.NoError(t, resp)
	var list struct {
		Users []userRow `json:"users"`
		Total int64     `json:"total"`
	}
	test.DecodeData(t, resp, &list)
	require.Equal(t, int64(1), list.Total)
	require.Equal(t, 1, list.Users[0].MaxVotes)
}

func TestProjectModeration(t *testing.T) {
	db := test.SetupDB(t)
	u := test.CreateUser(t, db, "u")
	p := test.CreateProject(t, db, "P", u.ID)
	r := router()
	auth := test.Token(1, jwt.RoleAdmin)

	_, resp := test.DoRequest(t, r, http.MethodPut, path("project", p.ID)+"/block", auth, nil)
	test.NoError(t, resp)
	_, resp = test.DoRequest(t, r, http.MethodPut, path("project", p.ID)+"/lock", auth, gin.H{"locked": true})
	test.NoError(t, resp)

	var got model.Project
	require.NoError(t, db.First(&got, p.ID).Error)
	require.True(t, got.Blocked)
	require.True(t, got.Locked)

	_, resp = test.DoRequest(t, r, http.MethodPut, path("project", p.ID)+"/lock", auth, gin.H{})
	test.ErrorEqual(t, response.ErrInvalidRequest, resp)

	_, resp = test.DoRequest(t, r, http.MethodDelete, path("project", p.ID), auth, nil)
	test.NoError(t, resp)
	require.Error(t, db.First(&model.Project{}, p.ID).Error)
	require.NoError(t, db.Unscoped().First(&model.Project{}, p.ID).Error)

	_, resp = test.DoRequest(t, r, http.MethodDelete, path("project", p.ID), auth, nil)
	test.ErrorEqual(t, response.ErrNotFound, resp)
}

func TestDeleteVoteReturnsQuota(t *testing.T) {
	db := test.SetupDB(t)
	events := capture(t)
	voter := test.CreateUser(t, db, "voter")
	owner := test.CreateUser(t, db, "owner")
	p := test.CreateProject(t, db, "P", owner.ID)

	v, err := vote.CastVote(context.Background(), db, voter.ID, p.ID, vote.Ballot{Reason: "好"})
	require.NoError(t, err)
	require.Equal(t, realtime.TypeVoteCast, waitEvent(t, events).ev.Type)

	r := router()
	auth := test.Token(1, jwt.RoleAdmin)

	_, resp := test.DoRequest(t, r, http.MethodGet, "/admin/votes?project_id="+strconv.FormatUint(uint64(p.ID), 10), auth, nil)
	test.NoError(t, resp)
	var list struct {
		Votes []model.Vote `json:"votes"`
		Total int64        `json:"total"`
	}
	test.DecodeData(t, resp, &list)
	require.Equal(t, int64(1), list.Total)
	require.Equal(t, "voter", list.Votes[0].Voter.NickName)

	_, resp = test.DoRequest(t, r, http.MethodDelete, path("vote", v.ID), auth, nil)
	test.NoError(t, resp)
	require.Equal(t, realtime.TypeVoteDeleted, waitEvent(t, events).ev.Type)

	var stats model.UserVoteStats
	require.NoError(t, db.First(&stats, "user_id = ?", voter.ID).Error)
	require.Equal(t, 0, stats.VotesUsed)

	_, resp = test.DoRequest(t, r, http.MethodDelete, path("vote", v.ID), auth, nil)
	test.ErrorEqual(t, response.ErrNotFound, resp)
}

func TestDimensions(t *testing.T) {
	db := test.SetupDB(t)
	r := router()
	auth := test.Token(1, jwt.RoleAdmin)

	_, resp := test.DoRequest(t, r, http.MethodPost, "/admin/dimension", auth, gin.H{"name": "创新", "weight": 1.5})
	test.NoError(t, resp)
	var dim model.ScoreDimension
	test.DecodeData(t, resp, &dim)
	require.True(t, dim.Active)

	_, resp = test.DoRequest(t, r, http.MethodPost, "/admin/dimension", auth, gin.H{"name": "创新", "weight": 1})
	test.ErrorEqual(t, response.ErrAlreadyExists, resp)

	_, resp = test.DoRequest(t, r, http.MethodPost, "/admin/dimension", auth, gin.H{"name": "完成度", "weight": 0})
	test.ErrorEqual(t, response.ErrInvalidRequest, resp)

	_, resp = test.DoRequest(t, r, http.MethodPut, path("dimension", dim.ID), auth, gin.H{"active": false, "weight": 2})
	test.NoError(t, resp)
	test.DecodeData(t, resp, &dim)
	require.False(t, dim.Active)
	require.Equal(t, 2.0, dim.Weight)

	active, err := model.ActiveDimensions(db)
	require.NoError(t, err)
	require.Empty(t, active)

	_, resp = test.DoRequest(t, r, http.MethodPut, path("dimension", 999), auth, gin.H{"active": true})
	test.ErrorEqual(t, response.ErrNotFound, resp)

	_, resp = test.DoRequest(t, r, http.MethodGet, "/admin/dimension", auth, nil)
	test.NoError(t, resp)
	var dims []model.ScoreDimension
	test.DecodeData(t, resp, &dims)
	require.Len(t, dims, 1)
}

func TestBroadcastAndOverview(t *testing.T) {
	db := test.SetupDB(t)
	events := capture(t)
	admin := test.CreateUser(t, db, "admin")
	test.CreateProject(t, db, "P", admin.ID)
	r := router()
	auth := test.Token(admin.ID, jwt.RoleAdmin)

	_, resp := test.DoRequest(t, r, http.MethodPost, "/admin/broadcast", auth, gin.H{"message": "投票将在十分钟后结束"})
	test.NoError(t, resp)
	p := waitEvent(t, events)
	require.Equal(t, realtime.ChannelAdmin, p.channel)
	require.Equal(t, realtime.TypeBroadcast, p.ev.Type)
	require.Equal(t, BroadcastPayload{Message: "投票将在十分钟后结束", From: admin.ID}, p.ev.Data)

	_, resp = test.DoRequest(t, r, http.MethodPost, "/admin/broadcast", auth, gin.H{"message": ""})
	test.ErrorEqual(t, response.ErrInvalidRequest, resp)

	_, resp = test.DoRequest(t, r, http.MethodGet, "/admin/overview", auth, nil)
	test.NoError(t, resp)
	var ov OverviewResp
	test.DecodeData(t, resp, &ov)
	require.Equal(t, int64(1), ov.Users)
	require.Equal(t, int64(1), ov.Projects)
	require.Equal(t, int64(0), ov.Votes)
	require.NotNil(t, ov.Settings)
}
