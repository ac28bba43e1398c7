package logger

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"sync"

	"hackathon-vote-system/config"

	sentryslog "github.com/getsentry/sentry-go/slog"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	instance *slog.Logger
	once     sync.Once
)

// fanoutHandler 把同一条记录交给多个 handler，任一失败不影响其它
type fanoutHandler []slog.Handler

func (h fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h fanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, handler := range h {
		if handler.Enabled(ctx, r.Level) {
			errs = append(errs, handler.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (h fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make(fanoutHandler, len(h))
	for i, handler := range h {
		next[i] = handler.WithAttrs(attrs)
	}
	return next
}

func (h fanoutHandler) WithGroup(name string) slog.Handler {
	next := make(fanoutHandler, len(h))
	for i, handler := range h {
		next[i] = handler.WithGroup(name)
	}
	return next
}

// Get 获取全局 Logger
func Get() *slog.Logger {
	once.Do(func() {
		instance = build(config.Get())
	})
	return instance
}

func build(cfg *config.Config) *slog.Logger {
	release := cfg.Mode == config.ModeRelease
	opts := &slog.HandlerOptions{
		AddSource: release,
		Level:     parseLevel(cfg.Log.Level),
	}

	var handler slog.Handler
	if release && cfg.Log.FilePath != "" {
		// release 模式写文件并按大小轮转
		handler = slog.NewJSONHandler(&lumberjack.Logger{
			Filename:   cfg.Log.FilePath,
			MaxSize:    cfg.Log.MaxSize,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAge,
			Compress:   cfg.Log.Compress,
		}, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	if cfg.Sentry.Dsn != "" {
		// Error 作为 Sentry Event，Warn 及以上作为 Sentry Log
		sentryHandler := sentryslog.Option{
			EventLevel: []slog.Level{slog.LevelError},
			LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
			AddSource:  release,
		}.NewSentryHandler(context.Background())
		handler = fanoutHandler{handler, sentryHandler}
	}

	return slog.New(handler).With(
		"app_name", "hackathon-vote-system",
		"env", string(cfg.Mode),
	)
}

// New 创建带 module 字段的 Logger
func New(module string) *slog.Logger {
	return Get().With("module", module)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
