package middleware

import (
	"strings"

	"hackathon-vote-system/internal/global/jwt"
	"hackathon-vote-system/internal/global/response"

	"github.com/gin-gonic/gin"
)

// Auth 校验 Bearer token，角色低于 minRoleID 时拒绝
func Auth(minRoleID int) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			response.Fail(c, response.ErrUnauthorized)
			return
		}

		claims, valid := jwt.ParseToken(token)
		if !valid {
			response.Fail(c, response.ErrTokenInvalid)
			return
		}
		if claims.RoleID < minRoleID {
			response.Fail(c, response.ErrForbidden)
			return
		}
		c.Set(jwt.PayloadKey, claims)
		c.Next()
	}
}

// bearerToken 浏览器的 EventSource 不能带请求头，SSE 允许用 ?token= 传递
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		if q := c.Query("token"); q != "" {
			return q, true
		}
		return "", false
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(authHeader, "Bearer "), true
}
