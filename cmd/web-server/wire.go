//go:build wireinject
// +build wireinject

package main

import (
	"Agora/config"
	"Agora/handler"
	"Agora/pkg/server"

	"github.com/google/wire"
)

func InitServer(cfg *config.Config) (*server.AppProvider, error) {
	wire.Build(
		server.ProvideProxy,
		server.NewGinEngine,
		wire.Struct(new(handler.Site), "*"),
		wire.Struct(new(handler.Static), "*"),
		wire.Struct(new(server.Handlers), "*"),
		wire.Struct(new(server.AppProvider), "*"),
	)
	return nil, nil
}
