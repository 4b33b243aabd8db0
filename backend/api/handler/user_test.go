package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rigforge/backend/common"
	"rigforge/backend/model"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	common.JWTSecret = "test-jwt-secret"
	common.JWTRefreshSecret = "test-jwt-refresh-secret"
}

func setupUserRouter() *gin.Engine {
	r := gin.New()
	r.Use(sessions.Sessions("rigforge_session", cookie.NewStore([]byte("test-secret"))))
	r.POST("/api/auth/register", Register)
	r.POST("/api/auth/login", Login)
	r.POST("/api/auth/logout", Logout)
	return r
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest("POST", path, strings.NewReader(string(raw)))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterAndLogin(t *testing.T) {
	router := setupUserRouter()

	w := postJSON(t, router, "/api/auth/register", gin.H{
		"username": "builder1",
		"password": "secret-pass",
	})
	require.Equal(t, 200, w.Code, w.Body.String())
	resp := decodeResponse(t, w)
	require.True(t, resp.Success, resp.Message)

	// duplicate username is rejected
	w = postJSON(t, router, "/api/auth/register", gin.H{
		"username": "builder1",
		"password": "other-pass",
	})
	resp = decodeResponse(t, w)
	assert.False(t, resp.Success)

	// login succeeds and hands out tokens
	w = postJSON(t, router, "/api/auth/login", gin.H{
		"username": "builder1",
		"password": "secret-pass",
	})
	require.Equal(t, 200, w.Code)
	var loginResp struct {
		Success bool `json:"success"`
		Data    struct {
			AccessToken  string     `json:"access_token"`
			RefreshToken string     `json:"refresh_token"`
			User         model.User `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))
	require.True(t, loginResp.Success)
	assert.NotEmpty(t, loginResp.Data.AccessToken)
	assert.NotEmpty(t, loginResp.Data.RefreshToken)
	assert.Equal(t, "builder1", loginResp.Data.User.Username)
}

func TestLoginWrongPassword(t *testing.T) {
	router := setupUserRouter()

	postJSON(t, router, "/api/auth/register", gin.H{
		"username": "builder2",
		"password": "secret-pass",
	})
	w := postJSON(t, router, "/api/auth/login", gin.H{
		"username": "builder2",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
