package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/adtech-learning/internal/http"
	httpH "github.com/yungbote/adtech-learning/internal/http/handlers"
	"github.com/yungbote/adtech-learning/internal/observability"
	"github.com/yungbote/adtech-learning/internal/platform/logger"
)

type Handlers struct {
	Health  *httpH.HealthHandler
	Page    *httpH.PageHandler
	Favicon *httpH.FaviconHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:  httpH.NewHealthHandler(),
		Page:    httpH.NewPageHandler(log, services.Pages),
		Favicon: httpH.NewFaviconHandler(services.Favicon),
	}
}

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers, metrics *observability.Metrics) *gin.Engine {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	return http.NewRouter(http.RouterConfig{
		Log:            log,
		Metrics:        metrics,
		TracingEnabled: cfg.TracingEnabled,
		CORSOrigins:    cfg.CORSOrigins,
		PageHandler:    handlers.Page,
		HealthHandler:  handlers.Health,
		FaviconHandler: handlers.Favicon,
	})
}
