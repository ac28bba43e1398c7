package response

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"hackathon-vote-system/config"

	"github.com/gin-gonic/gin"
)

// ErrorContextKey gin.Context 中保存错误对象的键，供日志和 Sentry 使用
const ErrorContextKey = "error"

type ResponseBody struct {
	Code   int32  `json:"code"`
	Msg    string `json:"msg"`
	Data   any    `json:"data,omitempty"`
	Origin string `json:"origin,omitempty"`
}

// Success 写成功响应，data 最多取第一个
func Success(c *gin.Context, data ...any) {
	body := ResponseBody{Code: http.StatusOK, Msg: "success"}
	if len(data) > 0 {
		body.Data = data[0]
	}
	c.JSON(http.StatusOK, body)
}

// Fail 写失败响应，非 *Error 一律按服务器内部错误处理
func Fail(c *gin.Context, err error) {
	var e *Error
	if !errors.As(err, &e) {
		e = ErrServerInternal.WithOrigin(err)
	}
	c.Set(ErrorContextKey, e)

	body := ResponseBody{Code: e.Code, Msg: e.Message}
	if config.Get().Mode == config.ModeDebug {
		body.Origin = e.Origin
	}
	c.AbortWithStatusJSON(e.Status(), body)
}

// Recovery 在 defer 中调用，把 panic 转为 500 响应
func Recovery(c *gin.Context) {
	if r := recover(); r != nil {
		slog.Error("panic recovered", "panic", r, "path", c.Request.URL.Path)
		Fail(c, ErrServerInternal.WithOrigin(fmt.Errorf("panic: %v", r)))
	}
}
