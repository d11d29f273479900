package pages

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/yungbote/adtech-learning/internal/domain/content"
	"github.com/yungbote/adtech-learning/internal/observability"
	"github.com/yungbote/adtech-learning/internal/platform/apierr"
	"github.com/yungbote/adtech-learning/internal/platform/logger"
)

const (
	CodeTopicNotFound   = "topic_not_found"
	CodeExampleNotFound = "example_not_found"

	MsgTopicNotFound   = "Topic not found"
	MsgExampleNotFound = "Example not found"
)

// Service resolves request parameters to rendered pages. Home and Glossary
// never fail on bad input; they fall back to the default selection.
type Service interface {
	Home(ctx context.Context, exampleParam string) ([]byte, error)
	Glossary(ctx context.Context, termParam string) ([]byte, error)
	Topic(ctx context.Context, id string) ([]byte, error)
	Example(ctx context.Context, id string) ([]byte, error)
	Warm(ctx context.Context) error
	Paths() []string
}

// Renderer is the subset of render.Renderer the service needs.
type Renderer interface {
	Home(selected content.ExampleID) ([]byte, error)
	Topic(id content.TopicID) ([]byte, error)
	Example(id content.ExampleID) ([]byte, error)
	Glossary(selected content.GlossaryID) ([]byte, error)
}

type Options struct {
	CacheEnabled bool
	Metrics      *observability.Metrics
}

type pageService struct {
	log      *logger.Logger
	reg      *content.Registry
	renderer Renderer
	metrics  *observability.Metrics

	cacheEnabled bool
	mu           sync.RWMutex
	cache        map[string][]byte
	group        singleflight.Group
}

func NewPageService(log *logger.Logger, reg *content.Registry, renderer Renderer, opts Options) Service {
	return &pageService{
		log:          log.With("service", "PageService"),
		reg:          reg,
		renderer:     renderer,
		metrics:      opts.Metrics,
		cacheEnabled: opts.CacheEnabled,
		cache:        make(map[string][]byte),
	}
}

func (s *pageService) Home(ctx context.Context, exampleParam string) ([]byte, error) {
	id, ok := content.ParseExampleID(exampleParam)
	if !ok {
		id = content.DefaultExampleID
	}
	return s.page(ctx, "home", string(id), func() ([]byte, error) { return s.renderer.Home(id) })
}

func (s *pageService) Glossary(ctx context.Context, termParam string) ([]byte, error) {
	id, ok := content.ParseGlossaryID(termParam)
	if !ok {
		id = s.reg.DefaultGlossaryID()
	}
	return s.page(ctx, "glossary", string(id), func() ([]byte, error) { return s.renderer.Glossary(id) })
}

func (s *pageService) Topic(ctx context.Context, raw string) ([]byte, error) {
	id, ok := content.ParseTopicID(raw)
	if !ok {
		return nil, apierr.NotFound(CodeTopicNotFound, MsgTopicNotFound)
	}
	return s.page(ctx, "topic", string(id), func() ([]byte, error) { return s.renderer.Topic(id) })
}

func (s *pageService) Example(ctx context.Context, raw string) ([]byte, error) {
	id, ok := content.ParseExampleID(raw)
	if !ok {
		return nil, apierr.NotFound(CodeExampleNotFound, MsgExampleNotFound)
	}
	return s.page(ctx, "example", string(id), func() ([]byte, error) { return s.renderer.Example(id) })
}

// page memoizes render output under kind:id. Concurrent misses on the same
// key share one render.
func (s *pageService) page(ctx context.Context, kind, id string, render func() ([]byte, error)) ([]byte, error) {
	_, span := observability.Tracer().Start(ctx, "pages."+kind)
	defer span.End()
	span.SetAttributes(attribute.String("page.kind", kind), attribute.String("page.id", id))

	if !s.cacheEnabled {
		s.metrics.IncPageLookup(kind, "bypass")
		body, err := s.timedRender(kind, render)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return body, err
	}

	key := kind + ":" + id
	s.mu.RLock()
	body, ok := s.cache[key]
	s.mu.RUnlock()
	if ok {
		s.metrics.IncPageLookup(kind, "hit")
		span.SetAttributes(attribute.Bool("page.cache_hit", true))
		return body, nil
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		s.mu.RLock()
		cached, ok := s.cache[key]
		s.mu.RUnlock()
		if ok {
			return cached, nil
		}
		out, err := s.timedRender(kind, render)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.cache[key] = out
		s.mu.Unlock()
		return out, nil
	})
	if err != nil {
		s.metrics.IncPageLookup(kind, "error")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.log.Error("page render failed", "page", key, "error", err)
		return nil, fmt.Errorf("render %s: %w", key, err)
	}
	s.metrics.IncPageLookup(kind, "miss")
	return v.([]byte), nil
}

func (s *pageService) timedRender(kind string, render func() ([]byte, error)) ([]byte, error) {
	start := time.Now()
	body, err := render()
	s.metrics.ObservePageRender(kind, time.Since(start))
	return body, err
}

// Warm renders every page once so the first visitor never pays for it.
func (s *pageService) Warm(ctx context.Context) error {
	if !s.cacheEnabled {
		return nil
	}
	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for _, id := range content.ExampleIDs {
		id := id
		g.Go(func() error {
			_, err := s.Home(gctx, string(id))
			return err
		})
		g.Go(func() error {
			_, err := s.Example(gctx, string(id))
			return err
		})
	}
	for _, id := range content.TopicIDs {
		id := id
		g.Go(func() error {
			_, err := s.Topic(gctx, string(id))
			return err
		})
	}
	for _, id := range content.GlossaryIDs {
		id := id
		g.Go(func() error {
			_, err := s.Glossary(gctx, string(id))
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("warm page cache: %w", err)
	}
	s.mu.RLock()
	n := len(s.cache)
	s.mu.RUnlock()
	s.log.Info("page cache warmed", "pages", n, "duration_ms", time.Since(start).Milliseconds())
	return nil
}

// Paths lists every canonical page URL, in navigation order.
func (s *pageService) Paths() []string {
	return AllPaths()
}

func AllPaths() []string {
	out := []string{"/"}
	for _, id := range content.ExampleIDs {
		out = append(out, "/?example="+string(id))
	}
	out = append(out, "/glossary")
	for _, id := range content.GlossaryIDs {
		out = append(out, "/glossary?term="+string(id))
	}
	for _, id := range content.TopicIDs {
		out = append(out, "/topic/"+string(id))
	}
	for _, id := range content.ExampleIDs {
		out = append(out, "/example/"+string(id))
	}
	return out
}
