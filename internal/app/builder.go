package app

import (
	"context"
	"fmt"
	"strings"

	"factsheet/internal/catalog"
	"factsheet/internal/config"
	"factsheet/internal/factsheet"
	"factsheet/internal/gateway/factsheetapi"
	"factsheet/internal/logger"
	"factsheet/internal/render"
	factsheethttp "factsheet/internal/transport/http/factsheet"
)

type AppBuilder struct {
	cfg    *config.Config
	charts []catalog.Chart

	sourceFn  func(config.SourceConfig, []catalog.Chart) (factsheet.BookSource, error)
	httpFn    func(config.AppConfig, factsheethttp.Service, render.Options) (*factsheethttp.Server, error)
	watcherFn func(string) (*config.Watcher, error)
}

type AppBuilderOption func(*AppBuilder)

// WithBookSource replaces the API client, mostly for tests.
func WithBookSource(src factsheet.BookSource) AppBuilderOption {
	return func(b *AppBuilder) {
		b.sourceFn = func(config.SourceConfig, []catalog.Chart) (factsheet.BookSource, error) {
			return src, nil
		}
	}
}

// WithCharts replaces the default catalogue.
func WithCharts(charts []catalog.Chart) AppBuilderOption {
	return func(b *AppBuilder) {
		b.charts = charts
	}
}

func NewAppBuilder(cfg *config.Config, opts ...AppBuilderOption) *AppBuilder {
	b := &AppBuilder{
		cfg:       cfg,
		charts:    catalog.Default(),
		sourceFn:  buildBookSource,
		httpFn:    buildHTTPServer,
		watcherFn: config.NewWatcher,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

func (b *AppBuilder) Build(ctx context.Context) (*App, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if b.cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	cfg := b.cfg
	if err := catalog.Validate(b.charts); err != nil {
		return nil, err
	}

	source, err := b.sourceFn(cfg.Source, b.charts)
	if err != nil {
		return nil, err
	}
	builder := factsheet.NewBuilder(b.charts, NormalizeOptions(cfg.Normalize), cfg.Normalize.Workers)
	service, err := factsheet.NewService(source, builder)
	if err != nil {
		return nil, err
	}

	renderOpts := render.Options{PageTitle: cfg.Render.PageTitle, WidthPx: cfg.Render.WidthPx}
	server, err := b.httpFn(cfg.App, service, renderOpts)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:     cfg,
		service: service,
		http:    server,
		Summary: newStartupSummary(cfg, b.charts),
	}
	if cfg.App.WatchConfig {
		if strings.TrimSpace(cfg.Path) == "" {
			logger.Warnf("app.watch_config is on but no config file was loaded; hot reload disabled")
		} else {
			a.watchFn = func() (*config.Watcher, error) { return b.watcherFn(cfg.Path) }
		}
	}
	return a, nil
}

func buildBookSource(cfg config.SourceConfig, charts []catalog.Chart) (factsheet.BookSource, error) {
	client, err := factsheetapi.NewClient(cfg, catalog.SheetNames(charts), catalog.Shapes(charts))
	if err != nil {
		return nil, fmt.Errorf("init factsheet api client: %w", err)
	}
	return client, nil
}

func buildHTTPServer(cfg config.AppConfig, svc factsheethttp.Service, opts render.Options) (*factsheethttp.Server, error) {
	server, err := factsheethttp.NewServer(factsheethttp.ServerConfig{
		Addr:    cfg.HTTPAddr,
		Service: svc,
		Render:  opts,
	})
	if err != nil {
		return nil, fmt.Errorf("init factsheet http: %w", err)
	}
	return server, nil
}
