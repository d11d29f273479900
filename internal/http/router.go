package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/adtech-learning/internal/http/handlers"
	httpMW "github.com/yungbote/adtech-learning/internal/http/middleware"
	"github.com/yungbote/adtech-learning/internal/observability"
	"github.com/yungbote/adtech-learning/internal/platform/logger"
)

const (
	metricsPath = "/metrics"
	serviceName = "adtech-learning"
)

type RouterConfig struct {
	Log     *logger.Logger
	Metrics *observability.Metrics

	TracingEnabled bool
	CORSOrigins    []string

	PageHandler    *httpH.PageHandler
	HealthHandler  *httpH.HealthHandler
	FaviconHandler *httpH.FaviconHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.TracingEnabled {
		r.Use(otelgin.Middleware(serviceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics, metricsPath))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/health", cfg.HealthHandler.HealthCheck)
	}

	// Pages
	if cfg.PageHandler != nil {
		r.GET("/", cfg.PageHandler.Home)
		r.GET("/glossary", cfg.PageHandler.Glossary)
		r.GET("/topic/:id", cfg.PageHandler.Topic)
		r.GET("/example/:id", cfg.PageHandler.Example)
	}

	// Static
	if cfg.FaviconHandler != nil {
		r.GET("/favicon.png", cfg.FaviconHandler.Serve)
		r.GET("/favicon.ico", cfg.FaviconHandler.Serve)
	}

	if cfg.Metrics != nil {
		r.GET(metricsPath, gin.WrapH(cfg.Metrics.Handler()))
	}

	return r
}
