package stream

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"hackathon-vote-system/config"
	"hackathon-vote-system/internal/global/jwt"
	"hackathon-vote-system/internal/global/realtime"
	"hackathon-vote-system/test"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	config.Set(config.Default())
	(&ModuleStream{}).Init()
	os.Exit(m.Run())
}

func newServer(t *testing.T) *httptest.Server {
	r := test.Router(func(r *gin.RouterGroup) {
		(&ModuleStream{}).InitRouter(r)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

// nextEvent 读到下一个 event: 行，返回事件名和随后的 data 行
func nextEvent(t *testing.T, reader *bufio.Reader) (string, string) {
	t.Helper()
	var name string
	for {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "event:"):
			name = strings.TrimPrefix(line, "event:")
		case strings.HasPrefix(line, "data:") && name != "":
			return name, strings.TrimPrefix(line, "data:")
		}
	}
}

func TestStreamRequiresLogin(t *testing.T) {
	srv := newServer(t)
	resp, err := http.Get(srv.URL + "/realtime/stream")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestStreamDeliversEvents(t *testing.T) {
	srv := newServer(t)
	hub := realtime.Local()
	before := hub.Online()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	token := strings.TrimPrefix(test.Token(1, jwt.RoleUser), "Bearer ")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/realtime/stream?token="+token, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	name, data := nextEvent(t, reader)
	require.Equal(t, realtime.TypePresence, name)
	require.Contains(t, data, `"online":`)
	require.Equal(t, before+1, hub.Online())

	require.NoError(t, hub.Publish(context.Background(), realtime.ChannelAdmin,
		realtime.NewEvent(realtime.TypeBroadcast, map[string]string{"message": "hello"})))
	name, data = nextEvent(t, reader)
	require.Equal(t, realtime.TypeBroadcast, name)
	require.Contains(t, data, `"message":"hello"`)

	cancel()
	require.Eventually(t, func() bool {
		return hub.Online() == before
	}, 2*time.Second, 10*time.Millisecond)
}

func TestStreamPing(t *testing.T) {
	prev := PingInterval
	PingInterval = 20 * time.Millisecond
	t.Cleanup(func() { PingInterval = prev })

	srv := newServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/realtime/stream", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", test.Token(2, jwt.RoleUser))
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	for {
		name, _ := nextEvent(t, reader)
		if name == "ping" {
			return
		}
	}
}
