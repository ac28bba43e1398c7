package response

import "net/http"

var (
	ErrInvalidRequest  = newError(http.StatusBadRequest, 40000, "请求参数错误")
	ErrInvalidPassword = newError(http.StatusBadRequest, 40001, "密码错误")

	ErrTokenInvalid = newError(http.StatusUnauthorized, 40100, "登录状态无效")
	ErrUnauthorized = newError(http.StatusUnauthorized, 40101, "未登录")

	ErrForbidden            = newError(http.StatusForbidden, 40300, "无权限")
	ErrVotingDisabled       = newError(http.StatusForbidden, 40301, "投票未开放")
	ErrCannotVoteOwnProject = newError(http.StatusForbidden, 40302, "不能给自己参与的项目投票")
	ErrUserBlocked          = newError(http.StatusForbidden, 40303, "账号已被封禁")

	ErrNotFound           = newError(http.StatusNotFound, 40400, "资源不存在")
	ErrProjectUnavailable = newError(http.StatusNotFound, 40401, "项目不存在或已被封禁")

	ErrAlreadyExists = newError(http.StatusConflict, 40900, "资源已存在")
	ErrAlreadyVoted  = newError(http.StatusConflict, 40901, "已经给该项目投过票")
	ErrQuotaExceeded = newError(http.StatusConflict, 40902, "投票次数已用完")

	ErrServerInternal     = newError(http.StatusInternalServerError, 50000, "服务器内部错误")
	ErrDatabase           = newError(http.StatusInternalServerError, 50001, "数据库错误")
	ErrServiceUnavailable = newError(http.StatusServiceUnavailable, 50300, "服务未启用")
)
