package handler

import (
	"Agora/config"
	"Agora/pkg/response"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Site serves the page-level endpoints around the static files.
type Site struct {
	Config *config.Config
}

// PageConfig is what the pages read from /config.json.
type PageConfig struct {
	APIBaseURL string `json:"apiBaseUrl"`
	PageSize   int    `json:"pageSize"`
}

func (s *Site) RegisterRouter(r gin.IRouter) {
	r.GET("/", s.Index)
	r.GET("/config.json", s.PageConfig)
	r.GET("/healthz", s.Health)
}

// Index redirects to the entry page.
func (s *Site) Index(c *gin.Context) {
	c.Redirect(http.StatusFound, s.Config.Static.Index)
}

// PageConfig tells the pages where the backend lives. With the proxy on the
// pages call the same origin.
func (s *Site) PageConfig(c *gin.Context) {
	base := s.Config.Backend.BaseURL
	if s.Config.Backend.Proxy {
		base = ""
	}
	c.JSON(http.StatusOK, PageConfig{APIBaseURL: base, PageSize: s.Config.Backend.PageSize})
}

func (s *Site) Health(c *gin.Context) {
	response.Success(c, gin.H{"env": s.Config.App.Env})
}
