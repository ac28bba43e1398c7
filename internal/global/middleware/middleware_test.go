package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"hackathon-vote-system/config"
	"hackathon-vote-system/internal/global/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	config.Set(config.Default())
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		claims, _ := jwt.GetUserPayload(c)
		if claims != nil {
			c.String(http.StatusOK, claims.NickName)
			return
		}
		c.String(http.StatusOK, "ok")
	})
	r.GET("/", handlers...)
	return r
}

func TestAuth(t *testing.T) {
	r := newEngine(Auth(jwt.RoleAdmin))
	admin := jwt.CreateToken(jwt.Payload{UserID: 1, NickName: "root", RoleID: jwt.RoleAdmin})
	user := jwt.CreateToken(jwt.Payload{UserID: 2, NickName: "alice", RoleID: jwt.RoleUser})

	cases := []struct {
		name   string
		header string
		query  string
		status int
	}{
		{"missing", "", "", http.StatusUnauthorized},
		{"bad scheme", "Token " + admin, "", http.StatusUnauthorized},
		{"garbage", "Bearer abc", "", http.StatusUnauthorized},
		{"low role", "Bearer " + user, "", http.StatusForbidden},
		{"admin", "Bearer " + admin, "", http.StatusOK},
		{"query token", "", "?token=" + admin, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/"+tc.query, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(w, req)
			require.Equal(t, tc.status, w.Code)
			if tc.status == http.StatusOK {
				require.Equal(t, "root", w.Body.String())
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	r := newEngine(RequestID())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Len(t, w.Header().Get(RequestIDHeader), 36)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "upstream-1")
	r.ServeHTTP(w, req)
	require.Equal(t, "upstream-1", w.Header().Get(RequestIDHeader))
}

func TestRecoveryTurnsPanicInto500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	config.Set(config.Default())
	r := gin.New()
	r.Use(Recovery())
	r.GET("/", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), "50000")
}

func TestCorsPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Cors())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/", nil))
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
