package middleware

import (
	"bytes"
	"log/slog"
	"time"

	sentrylib "github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// maxResponseLogSize 日志中记录的响应体最大大小（10KB）
	maxResponseLogSize = 10 * 1024

	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "request_id"
)

// responseBodyWriter 只缓存响应体的前 maxResponseLogSize 字节
type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseBodyWriter) Write(b []byte) (int, error) {
	if remaining := maxResponseLogSize - w.body.Len(); remaining > 0 {
		if len(b) <= remaining {
			w.body.Write(b)
		} else {
			w.body.Write(b[:remaining])
		}
	}
	return w.ResponseWriter.Write(b)
}

// RequestID 沿用上游传入的 X-Request-ID，没有就生成一个
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func Logger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		blw := &responseBodyWriter{
			ResponseWriter: c.Writer,
			body:           bytes.NewBuffer(nil),
		}
		c.Writer = blw

		c.Next()

		// SSE 长连接的响应体没有记录价值
		responseBody := blw.body.String()
		if c.Writer.Header().Get("Content-Type") == "text/event-stream" {
			responseBody = ""
		} else if blw.body.Len() >= maxResponseLogSize {
			responseBody += "...(truncated)"
		}

		log.Info("HTTP Request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"status", c.Writer.Status(),
			"latency", time.Since(startTime).String(),
			"client_ip", c.ClientIP(),
			"request_id", c.GetString(RequestIDKey),
			"response_body", responseBody,
		)
	}
}

// SentryEnrichIP 放在 sentry.Middleware() 之后，后续上报都带上客户端 IP 和请求 ID
func SentryEnrichIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.ConfigureScope(func(scope *sentrylib.Scope) {
				clientIP := c.ClientIP()
				scope.SetUser(sentrylib.User{IPAddress: clientIP})
				scope.SetTag("client_ip", clientIP)
				if id := c.GetString(RequestIDKey); id != "" {
					scope.SetTag("request_id", id)
				}
				if forwardedFor := c.GetHeader("X-Forwarded-For"); forwardedFor != "" {
					scope.SetTag("x_forwarded_for", forwardedFor)
				}
			})
		}
		c.Next()
	}
}
