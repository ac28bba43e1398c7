package category

import (
	"net/http"
	"os"
	"testing"

	"hackathon-vote-system/internal/global/jwt"
	"hackathon-vote-system/internal/global/response"
	"hackathon-vote-system/test"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	(&ModuleCategory{}).Init()
	os.Exit(m.Run())
}

func TestCreateAndList(t *testing.T) {
	test.SetupDB(t)
	r := test.Router((&ModuleCategory{}).InitRouter)
	admin := test.Token(1, jwt.RoleAdmin)

	w, _ := test.DoRequest(t, r, http.MethodPost, "/category/create", test.Token(2, jwt.RoleUser), map[string]any{"name": "AI"})
	require.Equal(t, http.StatusForbidden, w.Code)

	_, resp := test.DoRequest(t, r, http.MethodPost, "/category/create", admin, map[string]any{"name": "AI"})
	test.NoError(t, resp)
	_, resp = test.DoRequest(t, r, http.MethodPost, "/category/create", admin, map[string]any{"name": "AI"})
	test.ErrorEqual(t, response.ErrAlreadyExists, resp)
	_, resp = test.DoRequest(t, r, http.MethodPost, "/category/create", admin, map[string]any{"name": "Web3"})
	test.NoError(t, resp)

	_, resp = test.DoRequest(t, r, http.MethodGet, "/category/list", "", nil)
	test.NoError(t, resp)
	var out struct {
		Categories []struct {
			Name string `json:"name"`
		} `json:"categories"`
	}
	test.DecodeData(t, resp, &out)
	require.Len(t, out.Categories, 2)
	require.Equal(t, "AI", out.Categories[0].Name)
}
