package httpclient

import (
	"time"

	"hackathon-vote-system/internal/global/sentry/tracing"

	"github.com/go-resty/resty/v2"
)

var Client *resty.Client

// New 出站请求统一的超时、重试和追踪配置
func New() *resty.Client {
	client := resty.New().
		SetTimeout(5 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond).
		SetHeader("User-Agent", "hackathon-vote-system")
	if tracing.IsEnabled() {
		tracing.SetupRestyTracing(client)
	}
	return client
}

func Init() {
	Client = New()
}
