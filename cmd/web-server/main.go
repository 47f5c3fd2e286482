package main

import (
	"Agora/config"
	"Agora/internal/mockapi"
	"Agora/pkg/log"
	"Agora/pkg/server"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	cfg := config.New(config.Path(os.Getenv("APP_ENV")))
	log.Init(cfg.Log)
	appProvider, err := InitServer(cfg)
	if err != nil {
		log.L.Fatal("failed to init server", zap.Error(err))
	}

	cliApp := &cli.App{
		Name:  "web-server",
		Usage: "serve the board pages",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start http server",
				Action: func(ctx *cli.Context) error {
					return server.Run(ctx, appProvider)
				},
			},
			{
				Name:  "mock-api",
				Usage: "run an in-memory backend for local development",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "addr", Value: ":8080", Usage: "listen address"},
					&cli.IntFlag{Name: "seed", Value: 45, Usage: "number of demo posts"},
					&cli.IntFlag{Name: "comments", Value: 3, Usage: "comments per demo post"},
				},
				Action: func(ctx *cli.Context) error {
					return runMockAPI(ctx, cfg)
				},
			},
		},
	}
	if err := cliApp.Run(os.Args); err != nil {
		log.L.Fatal("failed to start server", zap.Error(err))
	}
}

func runMockAPI(ctx *cli.Context, cfg *config.Config) error {
	mock := mockapi.New()
	if n := ctx.Int("seed"); n > 0 {
		mock.Seed(n, ctx.Int("comments"))
		log.L.Info("mock api seeded", zap.Int("posts", n),
			zap.String("email", mockapi.DemoEmail), zap.String("password", mockapi.DemoPassword))
	}

	engine := gin.New()
	engine.Use(server.CORSMiddleware())
	engine.Any("/*path", gin.WrapH(mock.Handler()))

	app := &server.AppProvider{Config: cfg, Engine: engine}
	srv := &http.Server{Addr: ctx.String("addr"), Handler: app.Engine, ReadHeaderTimeout: 10 * time.Second}
	log.L.Info("mock api listening", zap.String("addr", srv.Addr))
	go func() {
		<-ctx.Context.Done()
		_ = srv.Close()
	}()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
