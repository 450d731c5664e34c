package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"infinitewash/models"
	"infinitewash/services/apperror"
	"infinitewash/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(mw gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw)
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("adminEmail"))
	})
	return r
}

func get(r http.Handler, header, value string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.9:5555"
	if header != "" {
		req.Header.Set(header, value)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitPerClientIP(t *testing.T) {
	r := newRouter(RateLimitMiddleware(3))

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, get(r, "", "").Code)
	}
	w := get(r, "", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	var body utils.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, string(apperror.RateLimited), body.Kind)
	assert.Equal(t, http.StatusOK, get(r, "X-Forwarded-For", "198.51.100.7, 10.0.0.1").Code)
}

func TestGetClientIP(t *testing.T) {
	cases := []struct {
		header, value, want string
	}{
		{"X-Forwarded-For", "198.51.100.7, 10.0.0.1", "198.51.100.7"},
		{"X-Real-IP", " 198.51.100.8 ", "198.51.100.8"},
		{"", "", "203.0.113.9"},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Request.RemoteAddr = "203.0.113.9:5555"
		if tc.header != "" {
			c.Request.Header.Set(tc.header, tc.value)
		}
		assert.Equal(t, tc.want, getClientIP(c))
	}
}

func TestAdminAuth(t *testing.T) {
	r := newRouter(JWTAuthAdminMiddleware("secret"))

	assert.Equal(t, http.StatusUnauthorized, get(r, "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Authorization", "Bearer garbage").Code)

	wrongRole, err := utils.GenerateToken("secret", "x@y.z", "x@y.z", "customer", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Authorization", "Bearer "+wrongRole).Code)

	otherKey, err := utils.GenerateToken("other", "x@y.z", "x@y.z", models.RoleAdmin, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Authorization", "Bearer "+otherKey).Code)

	token, err := utils.GenerateToken("secret", "owner@infinitewash.co.uk", "owner@infinitewash.co.uk", models.RoleAdmin, time.Hour)
	require.NoError(t, err)
	w := get(r, "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "owner@infinitewash.co.uk", w.Body.String())
}
