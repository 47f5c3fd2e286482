package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestErrorMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(ErrorMiddleware())
	r.GET("/biz", func(c *gin.Context) { _ = c.Error(NewError(http.StatusConflict, "nickname taken")) })
	r.GET("/plain", func(c *gin.Context) { _ = c.Error(errors.New("disk full")) })
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	r.GET("/ok", func(c *gin.Context) { Success(c, false) })

	w := serve(r, "/biz")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "nickname taken", gjson.Get(w.Body.String(), "message").String())

	w = serve(r, "/plain")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "disk full", gjson.Get(w.Body.String(), "message").String())

	w = serve(r, "/panic")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = serve(r, "/ok")
	assert.Equal(t, http.StatusOK, w.Code)
	data := gjson.Get(w.Body.String(), "data")
	assert.True(t, data.IsBool())
	assert.False(t, data.Bool())
}
