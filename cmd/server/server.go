package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"hackathon-vote-system/config"
	"hackathon-vote-system/internal/global/database"
	"hackathon-vote-system/internal/global/httpclient"
	"hackathon-vote-system/internal/global/logger"
	"hackathon-vote-system/internal/global/middleware"
	"hackathon-vote-system/internal/global/objectstore"
	internalOtel "hackathon-vote-system/internal/global/otel"
	"hackathon-vote-system/internal/global/realtime"
	internalSentry "hackathon-vote-system/internal/global/sentry"
	"hackathon-vote-system/internal/module"
	"hackathon-vote-system/tools"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout 等待进行中的请求结束的最长时间
const shutdownTimeout = 10 * time.Second

var log *slog.Logger

func Init(ctx context.Context) {
	config.Init()
	log = logger.New("Server")

	tools.PanicOnErr(internalSentry.Init())

	database.Init()
	tools.PanicOnErr(database.InitRedis())

	httpclient.Init()

	if config.Get().OTel.Enable {
		log.Info("OTel Enabled")
	}
	tools.PanicOnErr(internalOtel.Init(ctx))
	tools.PanicOnErr(objectstore.Init(ctx))

	realtime.Init(ctx)

	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Module: %s", m.GetName()))
		m.Init()
	}
}

func NewEngine() *gin.Engine {
	gin.SetMode(string(config.Get().Mode))
	r := gin.New()

	r.Use(middleware.RequestID())
	switch config.Get().Mode {
	case config.ModeRelease:
		r.Use(middleware.Logger(logger.Get()))
	case config.ModeDebug:
		r.Use(gin.Logger())
	}
	r.Use(internalSentry.Middleware())
	r.Use(middleware.SentryEnrichIP())
	r.Use(middleware.Cors())
	r.Use(middleware.Recovery())

	if config.Get().OTel.Enable {
		r.Use(middleware.Trace())
	}

	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Router: %s", m.GetName()))
		m.InitRouter(r.Group("/" + config.Get().Prefix))
	}
	return r
}

// Run 阻塞直到 ctx 结束或监听失败，退出前关闭实时连接并刷新 Sentry 和 OTel
func Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    config.Get().Host + ":" + config.Get().Port,
		Handler: NewEngine(),
	}
	// SSE 连接不会自己结束，关闭订阅让它们返回
	srv.RegisterOnShutdown(realtime.Local().CloseAll)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("HTTP 服务启动", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("HTTP 服务关闭中")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		err := srv.Shutdown(shutdownCtx)
		if otelErr := internalOtel.Shutdown(shutdownCtx); otelErr != nil {
			log.Error("Failed to shutdown TracerProvider", "error", otelErr)
		}
		internalSentry.Flush(2 * time.Second)
		return err
	})
	return g.Wait()
}
