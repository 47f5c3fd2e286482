package handler

import (
	"Agora/config"
	"Agora/pkg/log"
	"Agora/pkg/response"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Proxy forwards /api to the backend so the pages can stay same-origin.
type Proxy struct {
	target  *url.URL
	reverse *httputil.ReverseProxy
}

func NewProxy(conf *config.Config) (*Proxy, error) {
	target, err := url.Parse(conf.Backend.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("backend url %q must be absolute", conf.Backend.BaseURL)
	}
	p := &Proxy{target: target}
	p.reverse = &httputil.ReverseProxy{
		Rewrite: func(r *httputil.ProxyRequest) {
			r.SetURL(target)
			r.SetXForwarded()
		},
		ErrorHandler: p.fail,
	}
	return p, nil
}

func (p *Proxy) RegisterRouter(r gin.IRouter) {
	r.Any("/api/*path", p.Forward)
}

func (p *Proxy) Forward(c *gin.Context) {
	p.reverse.ServeHTTP(c.Writer, c.Request)
}

// fail answers with the error envelope the client reads messages from.
func (p *Proxy) fail(w http.ResponseWriter, r *http.Request, err error) {
	log.L.Warn("proxy backend", zap.String("target", p.target.String()),
		zap.String("path", r.URL.Path), zap.Error(err))
	response.WriteJSON(w, http.StatusBadGateway, response.Response{
		Status:  response.StatusError,
		Message: "backend unavailable",
	})
}
