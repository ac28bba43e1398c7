package tracing

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestSanitizeURL(t *testing.T) {
	require.Equal(t, "https://hooks.example.com/vote", sanitizeURL("https://hooks.example.com/vote?token=secret"))
	require.Equal(t, "unknown", sanitizeURL(""))
	require.Equal(t, "unknown", sanitizeURL("://bad"))
}

func TestPipelineDescription(t *testing.T) {
	ctx := context.Background()
	cmds := []redis.Cmder{
		redis.NewStringCmd(ctx, "get", "a"),
		redis.NewIntCmd(ctx, "incr", "b"),
	}
	require.Equal(t, "PIPELINE: GET, INCR", pipelineDescription(cmds))

	cmds = append(cmds, redis.NewIntCmd(ctx, "publish", "c", "x"), redis.NewIntCmd(ctx, "del", "d"))
	require.Equal(t, "PIPELINE: GET, INCR, PUBLISH...", pipelineDescription(cmds))
}

func TestStartSpanWithoutTransaction(t *testing.T) {
	require.Nil(t, StartSpanFromContext(context.Background(), "op", "desc"))
}
