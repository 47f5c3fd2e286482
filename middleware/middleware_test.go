package middleware

import (
	"Agora/pkg/context"
	"Agora/pkg/jwt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("middleware-secret")

func secretFn() []byte { return secret }

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinZap(), PrometheusMiddleware())
	whoami := func(c *gin.Context) {
		uid, err := context.GetUserID(c)
		if err != nil {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.JSON(http.StatusOK, gin.H{"uid": uid})
	}
	r.GET("/private", Auth(secretFn), whoami)
	r.GET("/public", OptionalAuth(secretFn), whoami)
	return r
}

func do(r http.Handler, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth(t *testing.T) {
	r := newEngine()
	token, err := jwt.GenerateToken(secret, 7, jwt.TypeAccess, time.Minute)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, do(r, "/private", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/private", "Token "+token).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/private", "Bearer garbage").Code)

	w := do(r, "/private", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"uid":7}`, w.Body.String())
}

func TestOptionalAuth(t *testing.T) {
	r := newEngine()
	token, err := jwt.GenerateToken(secret, 9, jwt.TypeAccess, time.Minute)
	require.NoError(t, err)

	w := do(r, "/public", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", w.Body.String())

	w = do(r, "/public", "Bearer "+token)
	assert.JSONEq(t, `{"uid":9}`, w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, do(r, "/public", "Bearer expired").Code)
}

func TestPrometheusMiddleware(t *testing.T) {
	r := newEngine()
	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/public", "200"))
	do(r, "/public", "")
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/public", "200"))
	assert.Equal(t, before+1, after)
}
