package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"hackathon-vote-system/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestErrorIsComparesCode(t *testing.T) {
	derived := ErrAlreadyVoted.WithTips("project 3")
	require.True(t, errors.Is(derived, ErrAlreadyVoted))
	require.False(t, errors.Is(derived, ErrQuotaExceeded))
	require.Equal(t, ErrAlreadyVoted.Message, "已经给该项目投过票")
}

func TestWithOriginKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	e := ErrDatabase.WithOrigin(cause)

	require.ErrorIs(t, e, cause)
	require.NotNil(t, e.StackTrace())
	require.Contains(t, e.Origin, "connection refused")
	require.Empty(t, ErrDatabase.Origin, "base error must not be mutated")
	require.Same(t, ErrDatabase, ErrDatabase.WithOrigin(nil))
}

func TestFailWritesStatusAndEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	config.Set(config.Default())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Fail(c, ErrQuotaExceeded)

	require.Equal(t, http.StatusConflict, w.Code)
	var body ResponseBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, int32(40902), body.Code)
	require.True(t, c.IsAborted())
}

func TestFailWrapsUnknownErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	config.Set(config.Default())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Fail(c, errors.New("disk on fire"))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body ResponseBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, ErrServerInternal.Code, body.Code)
	require.Contains(t, body.Origin, "disk on fire")
}
