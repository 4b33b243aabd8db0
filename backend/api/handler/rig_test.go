package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"rigforge/backend/common"
	"rigforge/backend/library/blobstore"
	"rigforge/backend/library/workshop"
	"rigforge/backend/model"

	"github.com/burugo/thing"
	"github.com/burugo/thing/drivers/db/sqlite"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	common.SQLitePath = ":memory:"
	common.RedisEnabled = false
	dbAdapter, err := sqlite.NewSQLiteAdapter(":memory:")
	if err != nil {
		panic(err)
	}
	thing.Configure(dbAdapter, nil)
	if err := thing.AutoMigrate(&model.User{}, &model.Submission{}); err != nil {
		panic(err)
	}
	if err := model.UserInit(); err != nil {
		panic(err)
	}
	if err := model.SubmissionInit(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func setupRigRouter() *gin.Engine {
	Setup(workshop.NewManager(), blobstore.NewMemoryStore())
	r := gin.New()
	r.Use(sessions.Sessions("rigforge_session", cookie.NewStore([]byte("test-secret"))))
	r.GET("/api/rig", GetRig)
	r.PUT("/api/rig/base_model", SetRigBaseModel)
	r.POST("/api/rig/components", AddRigComponent)
	r.PUT("/api/rig/components/:index", UpdateRigComponent)
	r.DELETE("/api/rig/components/:index", RemoveRigComponent)
	r.POST("/api/rig/submit", SubmitRig)
	r.POST("/api/rig/save", SaveRig)
	r.GET("/api/rig/saved", GetSavedRig)
	r.GET("/api/rig/submissions", GetMySubmissions)
	return r
}

// rigClient keeps the session cookie across requests, like a browser would.
type rigClient struct {
	t       *testing.T
	router  *gin.Engine
	cookies []*http.Cookie
}

func newRigClient(t *testing.T, router *gin.Engine) *rigClient {
	return &rigClient{t: t, router: router}
}

func (rc *rigClient) do(method, path string, body any) *httptest.ResponseRecorder {
	rc.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(rc.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(rc.t, err)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range rc.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	rc.router.ServeHTTP(w, req)
	if set := w.Result().Cookies(); len(set) > 0 {
		rc.cookies = set
	}
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) common.APIResponse {
	t.Helper()
	var resp common.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestRigLifecycle(t *testing.T) {
	router := setupRigRouter()
	rc := newRigClient(t, router)

	// fresh session starts empty
	w := rc.do("GET", "/api/rig", nil)
	assert.Equal(t, 200, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)

	// build Tower-X: cpu 300 + ram 80/16GB
	w = rc.do("PUT", "/api/rig/base_model", gin.H{"value": "Tower-X"})
	assert.Equal(t, 200, w.Code)

	w = rc.do("POST", "/api/rig/components", nil)
	require.Equal(t, 200, w.Code)
	var addResp struct {
		Data struct {
			Index int `json:"index"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &addResp))
	assert.Equal(t, 0, addResp.Data.Index)

	for _, upd := range []gin.H{
		{"field": "type", "value": "cpu"},
		{"field": "name", "value": "Ryzen"},
		{"field": "price", "value": "300"},
	} {
		w = rc.do("PUT", "/api/rig/components/0", upd)
		require.Equal(t, 200, w.Code, "update %v", upd)
	}

	rc.do("POST", "/api/rig/components", nil)
	for _, upd := range []gin.H{
		{"field": "type", "value": "ram"},
		{"field": "name", "value": "Corsair"},
		{"field": "price", "value": "80"},
		{"field": "capacity", "value": "16"},
	} {
		w = rc.do("PUT", "/api/rig/components/1", upd)
		require.Equal(t, 200, w.Code, "update %v", upd)
	}

	// live total
	w = rc.do("GET", "/api/rig", nil)
	var view struct {
		Data struct {
			Configuration struct {
				BaseModel  string  `json:"baseModel"`
				TotalPrice float64 `json:"totalPrice"`
			} `json:"configuration"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "Tower-X", view.Data.Configuration.BaseModel)
	assert.Equal(t, 380.0, view.Data.Configuration.TotalPrice)

	// submit then save
	w = rc.do("POST", "/api/rig/submit", nil)
	resp = decodeResponse(t, w)
	require.True(t, resp.Success, "submit should pass: %s", w.Body.String())

	w = rc.do("POST", "/api/rig/save", nil)
	resp = decodeResponse(t, w)
	require.True(t, resp.Success, "save should pass: %s", w.Body.String())

	// read the blob back
	w = rc.do("GET", "/api/rig/saved", nil)
	var saved struct {
		Success bool `json:"success"`
		Data    struct {
			BaseModel  string  `json:"baseModel"`
			TotalPrice float64 `json:"totalPrice"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	assert.True(t, saved.Success)
	assert.Equal(t, "Tower-X", saved.Data.BaseModel)
	assert.Equal(t, 380.0, saved.Data.TotalPrice)
}

func TestSubmitInvalidReturnsFieldErrors(t *testing.T) {
	router := setupRigRouter()
	rc := newRigClient(t, router)

	rc.do("POST", "/api/rig/components", nil)
	for _, upd := range []gin.H{
		{"field": "type", "value": "storage"},
		{"field": "name", "value": "NVMe"},
		{"field": "price", "value": "120"},
	} {
		rc.do("PUT", "/api/rig/components/0", upd)
	}

	w := rc.do("POST", "/api/rig/submit", nil)
	var resp struct {
		Success bool              `json:"success"`
		Data    map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Data, "baseModel")
	assert.Contains(t, resp.Data, "components[0].capacity")
	assert.Contains(t, resp.Data, "components[0].storageType")

	// the failed submit's mapping is visible on the next GET
	w = rc.do("GET", "/api/rig", nil)
	var view struct {
		Data struct {
			Errors map[string]string `json:"errors"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Contains(t, view.Data.Errors, "components[0].capacity")
}

func TestSaveRecordsSubmissionHistory(t *testing.T) {
	router := setupRigRouter()
	rc := newRigClient(t, router)

	rc.do("PUT", "/api/rig/base_model", gin.H{"value": "Mini-ITX"})
	rc.do("POST", "/api/rig/components", nil)
	for _, upd := range []gin.H{
		{"field": "type", "value": "gpu"},
		{"field": "name", "value": "RTX"},
		{"field": "price", "value": "500"},
	} {
		rc.do("PUT", "/api/rig/components/0", upd)
	}
	w := rc.do("POST", "/api/rig/submit", nil)
	require.True(t, decodeResponse(t, w).Success, w.Body.String())
	w = rc.do("POST", "/api/rig/save", nil)
	require.True(t, decodeResponse(t, w).Success, w.Body.String())

	w = rc.do("GET", "/api/rig/submissions", nil)
	var resp struct {
		Success bool               `json:"success"`
		Data    []model.Submission `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Len(t, resp.Data, 1)
	row := resp.Data[0]
	assert.Equal(t, "Mini-ITX", row.BaseModelName)
	assert.Equal(t, 1, row.ComponentCount)
	assert.Equal(t, 500.0, row.TotalPrice)

	// the history blob round-trips to the saved snapshot
	var snap struct {
		BaseModel  string  `json:"baseModel"`
		TotalPrice float64 `json:"totalPrice"`
	}
	require.NoError(t, json.Unmarshal([]byte(row.Blob), &snap))
	assert.Equal(t, "Mini-ITX", snap.BaseModel)
	assert.Equal(t, 500.0, snap.TotalPrice)
}

func TestSaveBeforeSubmitReturnsError(t *testing.T) {
	router := setupRigRouter()
	rc := newRigClient(t, router)

	w := rc.do("POST", "/api/rig/save", nil)
	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "submit the configuration")
}

func TestComponentIndexErrors(t *testing.T) {
	router := setupRigRouter()
	rc := newRigClient(t, router)

	w := rc.do("DELETE", "/api/rig/components/0", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = rc.do("PUT", "/api/rig/components/5", gin.H{"field": "name", "value": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = rc.do("PUT", "/api/rig/components/abc", gin.H{"field": "name", "value": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	rc.do("POST", "/api/rig/components", nil)
	w = rc.do("PUT", "/api/rig/components/0", gin.H{"field": "warranty", "value": "3y"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSavedWithoutSave(t *testing.T) {
	router := setupRigRouter()
	rc := newRigClient(t, router)

	w := rc.do("GET", "/api/rig/saved", nil)
	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, "no saved configuration", resp.Message)
}
