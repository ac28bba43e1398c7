package middleware

import (
	"hackathon-vote-system/internal/global/response"
	internalSentry "hackathon-vote-system/internal/global/sentry"

	"github.com/gin-gonic/gin"
)

// Recovery 捕获 panic，并把请求中记录的服务器错误上报 Sentry
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer reportError(c)
		defer response.Recovery(c)
		c.Next()
	}
}

func reportError(c *gin.Context) {
	v, ok := c.Get(response.ErrorContextKey)
	if !ok {
		return
	}
	if err, ok := v.(error); ok {
		internalSentry.CaptureException(c, err)
	}
}
