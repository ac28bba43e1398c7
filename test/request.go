package test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"hackathon-vote-system/internal/global/jwt"
	"hackathon-vote-system/internal/global/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// Router 只挂 Recovery 的测试引擎，路由由各模块的 InitRouter 注册
func Router(register func(r *gin.RouterGroup)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, _ any) {
		response.Fail(c, response.ErrServerInternal)
	}))
	register(r.Group(""))
	return r
}

// Token 给测试用户签发 token，返回 Authorization 头的值
func Token(userID uint, roleID int) string {
	return "Bearer " + jwt.CreateToken(jwt.Payload{UserID: userID, NickName: "tester", RoleID: roleID})
}

// DoRequest body 为 nil 时不带请求体；auth 为空时不带 Authorization
func DoRequest(t *testing.T, r http.Handler, method, path, auth string, body any) (*httptest.ResponseRecorder, response.ResponseBody) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp response.ResponseBody
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

// DecodeData 把 ResponseBody.Data 重新解到具体类型
func DecodeData(t *testing.T, resp response.ResponseBody, out any) {
	t.Helper()
	b, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, out))
}
