package server

import (
	"Agora/config"
	"Agora/middleware"
	"Agora/pkg/log"
	"Agora/pkg/response"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 3 * time.Second

type AppProvider struct {
	Config *config.Config
	Engine *gin.Engine
}

func NewGinEngine(conf *config.Config, h *Handlers) *gin.Engine {
	if conf.Debug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(CORSMiddleware())
	r.Use(middleware.GinZap(), response.ErrorMiddleware())
	if conf.Metrics.Enabled {
		r.Use(middleware.PrometheusMiddleware())
		r.GET(conf.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	h.Site.RegisterRouter(r)
	if h.Proxy != nil {
		h.Proxy.RegisterRouter(r)
	}
	r.NoRoute(h.Static.Serve)
	return r
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 设置 CORS 头
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Content-Length, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// Run serves until the context ends or a termination signal arrives.
func Run(ctx *cli.Context, app *AppProvider) error {
	eg, groupCtx := errgroup.WithContext(ctx.Context)
	c := make(chan os.Signal, 1)
	// 终止的信号 服务要停止了
	signal.Notify(c, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT)
	defer signal.Stop(c)

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", app.Config.Server.Http))
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	log.L.Info("server starting", zap.String("serverId", serverID(ln)),
		zap.Int("port", app.Config.Server.Http),
		zap.String("env", app.Config.App.Env),
		zap.String("static", app.Config.Static.Root),
		zap.String("backend", app.Config.Backend.BaseURL),
		zap.Bool("proxy", app.Config.Backend.Proxy),
	)

	return run(c, eg, groupCtx, app, ln)
}

func serverID(ln net.Listener) string {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	return fmt.Sprintf("%s/%s", host, ln.Addr().String())
}

func run(c <-chan os.Signal, eg *errgroup.Group, ctx context.Context, app *AppProvider, ln net.Listener) error {
	serv := &http.Server{
		Handler:           app.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	id := serverID(ln)

	eg.Go(func() error {
		err := serv.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	eg.Go(func() error {
		defer func() {
			log.L.Info("server stopping", zap.String("serverId", id))

			// 等待中断信号以优雅地关闭服务器
			timeCtx, timeCancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer timeCancel()

			if err := serv.Shutdown(timeCtx); err != nil {
				log.L.Info("server stopping", zap.String("serverId", id), zap.Error(err))
			}
		}()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c:
			return nil
		}
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.L.Info("server stopping", zap.Error(err))
		return err
	}

	log.L.Info("server stopped", zap.String("serverId", id))

	return nil
}
