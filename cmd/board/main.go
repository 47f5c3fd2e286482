package main

import (
	"Agora/config"
	"Agora/pkg/log"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	if err := newCLI().Run(os.Args); err != nil {
		log.L.Fatal("board", zap.Error(err))
	}
}

func newCLI() *cli.App {
	return &cli.App{
		Name:  "board",
		Usage: "read and write the board from a terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: config.Path(os.Getenv("APP_ENV")), Usage: "config file"},
			&cli.StringFlag{Name: "session", EnvVars: []string{"BOARD_SESSION"}, Usage: "session id"},
			&cli.StringFlag{Name: "api", Usage: "backend base url, overrides the config"},
		},
		Before: func(ctx *cli.Context) error {
			conf, err := loadConfig(ctx.String("config"))
			if err != nil {
				return err
			}
			log.Init(conf.Log)
			if ctx.App.Metadata == nil {
				ctx.App.Metadata = map[string]any{}
			}
			ctx.App.Metadata["config"] = conf
			return nil
		},
		Commands: []*cli.Command{
			loginCommand(),
			logoutCommand(),
			signupCommand(),
			whoamiCommand(),
			postsCommand(),
			postCommand(),
			likeCommand(),
			commentsCommand(),
			commentCommand(),
		},
	}
}
