package app

import (
	"context"
	"fmt"

	"github.com/yungbote/adtech-learning/internal/domain/content"
	"github.com/yungbote/adtech-learning/internal/favicon"
	"github.com/yungbote/adtech-learning/internal/observability"
	"github.com/yungbote/adtech-learning/internal/pages"
	"github.com/yungbote/adtech-learning/internal/platform/logger"
	"github.com/yungbote/adtech-learning/internal/render"
)

type Services struct {
	Registry *content.Registry
	Renderer *render.Renderer
	Pages    pages.Service
	Favicon  []byte
}

func wireServices(ctx context.Context, log *logger.Logger, cfg Config, metrics *observability.Metrics) (Services, error) {
	log.Info("Wiring services...")

	reg, err := content.Load()
	if err != nil {
		return Services{}, fmt.Errorf("load content: %w", err)
	}
	renderer, err := render.New(reg)
	if err != nil {
		return Services{}, fmt.Errorf("init renderer: %w", err)
	}
	pageService := pages.NewPageService(log, reg, renderer, pages.Options{
		CacheEnabled: cfg.PageCacheEnabled,
		Metrics:      metrics,
	})
	if cfg.PageCacheEnabled && cfg.PageCacheWarm {
		if err := pageService.Warm(ctx); err != nil {
			return Services{}, err
		}
	}

	var icon []byte
	buf, err := favicon.Generate(favicon.Options{Color: cfg.FaviconColor})
	if err != nil {
		log.Warn("favicon generation failed (route disabled)", "error", err)
	} else {
		icon = buf.Bytes()
	}

	return Services{
		Registry: reg,
		Renderer: renderer,
		Pages:    pageService,
		Favicon:  icon,
	}, nil
}
