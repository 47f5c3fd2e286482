package server

import (
	"Agora/config"
	"Agora/handler"
)

type Handlers struct {
	Site   *handler.Site
	Static *handler.Static
	// Proxy is nil unless backend.proxy is set.
	Proxy *handler.Proxy
}

// ProvideProxy builds the /api proxy when the config asks for one.
func ProvideProxy(conf *config.Config) (*handler.Proxy, error) {
	if !conf.Backend.Proxy {
		return nil, nil
	}
	return handler.NewProxy(conf)
}
