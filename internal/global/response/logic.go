package response

import (
	"errors"
	"fmt"
	"net/http"

	pkgerrors "github.com/pkg/errors"
)

// Error 业务错误：错误码、提示信息、HTTP 状态和原始错误链
type Error struct {
	Code    int32  `json:"code"`
	Message string `json:"msg"`
	Origin  string `json:"origin"`

	status int
	// cause 供 errors.Unwrap 和 Sentry 提取错误链
	cause error
	stack pkgerrors.StackTrace
}

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

func newError(status int, code int32, msg string) *Error {
	return &Error{
		Code:    code,
		Message: msg,
		status:  status,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("code:%d, msg:%s", e.Code, e.Message)
}

// GetCode 实现 sentry.CodedError
func (e *Error) GetCode() int32 {
	return e.Code
}

// Status 对应的 HTTP 状态码
func (e *Error) Status() int {
	if e.status == 0 {
		return http.StatusInternalServerError
	}
	return e.status
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) StackTrace() pkgerrors.StackTrace {
	if e.stack != nil {
		return e.stack
	}
	if st, ok := e.cause.(stackTracer); ok {
		return st.StackTrace()
	}
	return nil
}

// Is 只比较错误码，派生出来的错误（WithOrigin/WithTips）仍然 Is 原错误
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// WithOrigin 附带原始错误，debug 模式下返回给前端
func (e *Error) WithOrigin(err error) *Error {
	if err == nil {
		return e
	}
	if _, ok := err.(stackTracer); !ok {
		err = pkgerrors.WithStack(err)
	}
	out := *e
	out.Origin = fmt.Sprintf("%+v", err)
	out.cause = err
	out.stack = err.(stackTracer).StackTrace()
	return &out
}

// WithTips 追加对前端可见的提示
func (e *Error) WithTips(details ...string) *Error {
	out := *e
	out.Message = e.Message + " " + fmt.Sprintf("%v", details)
	return &out
}
