package app

import (
	"context"
	"fmt"
	nethttp "net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/adtech-learning/internal/http"
	"github.com/yungbote/adtech-learning/internal/observability"
	"github.com/yungbote/adtech-learning/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	Router   *gin.Engine
	Cfg      Config
	Services Services
	Metrics  *observability.Metrics

	otelShutdown func(context.Context) error
}

// New loads .env and the environment, then builds the app. It never binds a
// port; call Run for that.
func New() (*App, error) {
	LoadDotEnv()
	log, err := logger.New(LogMode())
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	a, err := NewWithConfig(context.Background(), log, cfg)
	if err != nil {
		log.Sync()
		return nil, err
	}
	return a, nil
}

func NewWithConfig(ctx context.Context, log *logger.Logger, cfg Config) (*App, error) {
	var shutdown func(context.Context) error
	if cfg.TracingEnabled {
		shutdown = observability.InitOTel(ctx, log, observability.OtelConfig{
			ServiceName: "adtech-learning",
			Environment: cfg.Environment,
			Version:     cfg.Version,
		})
	}

	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics()
	}

	serviceset, err := wireServices(ctx, log, cfg, metrics)
	if err != nil {
		return nil, err
	}
	handlerset := wireHandlers(log, serviceset)
	router := wireRouter(log, cfg, handlerset, metrics)

	return &App{
		Log:          log,
		Router:       router,
		Cfg:          cfg,
		Services:     serviceset,
		Metrics:      metrics,
		otelShutdown: shutdown,
	}, nil
}

// Handler is the request entry point for hosts that own the socket.
func (a *App) Handler() nethttp.Handler {
	return a.Router
}

// Run serves on the configured address until ctx is done. In serverless mode
// it returns immediately without listening.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	if a.Cfg.Serverless {
		a.Log.Info("serverless mode: not starting a listener")
		return nil
	}
	srv := http.NewServer(a.Log, a.Router, http.ServerConfig{
		Addr:            a.Cfg.Addr(),
		ReadTimeout:     a.Cfg.ReadTimeout,
		WriteTimeout:    a.Cfg.WriteTimeout,
		ShutdownTimeout: a.Cfg.ShutdownTimeout,
	})
	return srv.Run(ctx)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.otelShutdown != nil {
		timeout := a.Cfg.ShutdownTimeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := a.otelShutdown(ctx); err != nil && a.Log != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		a.otelShutdown = nil
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
