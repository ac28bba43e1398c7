package sentry

import (
	"errors"
	"fmt"
	"time"

	"hackathon-vote-system/config"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
)

// CodedError 带错误码的错误，只有 5xxxx 需要上报
type CodedError interface {
	error
	GetCode() int32
}

func enabled() bool {
	return config.Get().Sentry.Dsn != ""
}

// Init 未配置 DSN 时什么都不做
func Init() error {
	if !enabled() {
		return nil
	}
	cfg := config.Get()

	tracesSampleRate := cfg.Sentry.SampleRate
	if tracesSampleRate <= 0 {
		tracesSampleRate = 1.0
	}
	environment := cfg.Sentry.Environment
	if environment == "" {
		environment = string(cfg.Mode)
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.Sentry.Dsn,
		Environment:      environment,
		Release:          "hackathon-vote-system@1.0.0",
		SampleRate:       1.0, // 错误事件不采样
		EnableTracing:    true,
		TracesSampleRate: tracesSampleRate,
		EnableLogs:       true,
	})
	if err != nil {
		return fmt.Errorf("sentry initialization failed: %w", err)
	}
	return nil
}

func Middleware() gin.HandlerFunc {
	if !enabled() {
		return func(c *gin.Context) { c.Next() }
	}
	return sentrygin.New(sentrygin.Options{
		Repanic:         true, // 交给后面的 Recovery 处理
		WaitForDelivery: false,
		Timeout:         2 * time.Second,
	})
}

// CaptureException 只上报服务器错误，业务错误（投票被拒等）不上报
func CaptureException(c *gin.Context, err error) {
	if !enabled() || !ShouldReport(err) {
		return
	}
	hub := sentrygin.GetHubFromContext(c)
	if hub == nil {
		return
	}
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetRequest(c.Request)
		scope.SetTag("path", c.FullPath())
		scope.SetTag("method", c.Request.Method)
		if payload, ok := c.Get("payload"); ok {
			scope.SetUser(sentry.User{Data: map[string]string{"payload": fmt.Sprintf("%+v", payload)}})
		}
		hub.CaptureException(err)
	})
}

func ShouldReport(err error) bool {
	if err == nil {
		return false
	}
	var coded CodedError
	if errors.As(err, &coded) {
		return coded.GetCode() >= 50000
	}
	return true
}

// Flush 退出前调用
func Flush(timeout time.Duration) {
	if enabled() {
		sentry.Flush(timeout)
	}
}
