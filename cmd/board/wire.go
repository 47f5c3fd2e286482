//go:build wireinject
// +build wireinject

package main

import (
	"Agora/config"
	"Agora/internal/board"
	"Agora/pkg/api"
	"Agora/pkg/session"

	"github.com/google/wire"
)

func InitApp(cfg *config.Config, id session.ID) (*App, func(), error) {
	wire.Build(
		session.ProvideStore,
		session.ProvideCredential,
		api.NewClient,
		board.NewAuth,
		wire.Struct(new(App), "*"),
	)
	return nil, nil, nil
}
