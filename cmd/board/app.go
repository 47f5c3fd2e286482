package main

import (
	"Agora/config"
	"Agora/internal/board"
	"Agora/pkg/api"
	"Agora/pkg/session"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
)

// App is one CLI invocation bound to one session.
type App struct {
	Config *config.Config
	Client *api.Client
	Auth   *board.Auth
}

// loadConfig falls back to defaults when the config file does not exist.
func loadConfig(path string) (*config.Config, error) {
	conf, err := config.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return config.Default(), nil
	}
	return conf, err
}

// open wires the App for the current command. With create set and no
// session given, a new session ID is generated and printed.
func open(ctx *cli.Context, create bool) (*App, func(), error) {
	conf, ok := ctx.App.Metadata["config"].(*config.Config)
	if !ok {
		return nil, nil, errors.New("config not loaded")
	}
	if url := ctx.String("api"); url != "" {
		conf.Backend.BaseURL = url
	}

	id := ctx.String("session")
	if id == "" && create {
		id = session.NewID()
		fmt.Fprintf(ctx.App.Writer, "new session: %s\nexport BOARD_SESSION=%s\n", id, id)
	}
	if create && conf.Session.Store == config.SessionStoreMemory {
		fmt.Fprintln(ctx.App.ErrWriter, "warning: session store is memory, the token will not outlive this command")
	}
	return InitApp(conf, session.ID(id))
}

func out(ctx *cli.Context) io.Writer {
	return ctx.App.Writer
}

// expired is the re-authentication hint printed after a 401.
func expired(ctx *cli.Context) func() {
	return func() {
		fmt.Fprintln(ctx.App.ErrWriter, api.MsgUnauthorized+", run `board login` again")
	}
}
