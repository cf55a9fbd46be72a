package app

import (
	"context"
	"fmt"

	"factsheet/internal/config"
	"factsheet/internal/export"
	"factsheet/internal/factsheet"
	"factsheet/internal/logger"
	"factsheet/internal/render"
	factsheethttp "factsheet/internal/transport/http/factsheet"

	"golang.org/x/sync/errgroup"
)

// App wires config, the fetch/normalize service and the HTTP surface.
type App struct {
	cfg     *config.Config
	service *factsheet.Service
	http    *factsheethttp.Server
	Summary *StartupSummary

	// watchFn starts the config watcher; nil when hot reload is off. Only
	// Run calls it, so one-shot commands never watch.
	watchFn func() (*config.Watcher, error)
}

// NewApp builds the application without starting anything.
func NewApp(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	logger.SetLevel(cfg.App.LogLevel)
	return buildAppWithWire(context.Background(), cfg)
}

// Run serves HTTP until ctx is cancelled. With watch_config on, reloaded
// normalize settings are pushed into the service as they arrive.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.cfg == nil {
		return fmt.Errorf("app not initialized")
	}
	if a.http == nil {
		return fmt.Errorf("http server not initialized")
	}
	if a.Summary != nil {
		a.Summary.Print()
	}
	if a.watchFn != nil {
		watcher, err := a.watchFn()
		if err != nil {
			return fmt.Errorf("start config watcher: %w", err)
		}
		defer watcher.Close()
		watcher.Subscribe(a.applyConfig)
	}

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := a.http.Start(ctx); err != nil {
			return fmt.Errorf("factsheet http server error: %w", err)
		}
		return nil
	})
	return group.Wait()
}

func (a *App) applyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	logger.SetLevel(cfg.App.LogLevel)
	a.service.SetOptions(NormalizeOptions(cfg.Normalize), cfg.Normalize.Workers)
}

// Service exposes the fetch/normalize service.
func (a *App) Service() *factsheet.Service {
	if a == nil {
		return nil
	}
	return a.service
}

// Snapshot performs one fetch and build.
func (a *App) Snapshot(ctx context.Context) (factsheet.Factsheet, error) {
	return a.service.Load(ctx)
}

// RenderHTML writes the rendered page to htmlPath and, when pngPath is set,
// a headless-browser screenshot of it.
func (a *App) RenderHTML(ctx context.Context, htmlPath, pngPath string) error {
	fs, err := a.Snapshot(ctx)
	if err != nil {
		return err
	}
	opts := a.renderOptions()
	if err := render.WriteHTML(fs, opts, htmlPath); err != nil {
		return err
	}
	logger.Infof("rendered %d charts to %s", len(fs.Charts), htmlPath)
	if pngPath == "" {
		return nil
	}
	if err := render.WritePNG(ctx, fs, opts, pngPath); err != nil {
		return err
	}
	logger.Infof("snapshot saved to %s", pngPath)
	return nil
}

// Export writes the workbook for one fresh build.
func (a *App) Export(ctx context.Context, path string) error {
	fs, err := a.Snapshot(ctx)
	if err != nil {
		return err
	}
	return export.WriteWorkbook(fs, path)
}

func (a *App) renderOptions() render.Options {
	return render.Options{PageTitle: a.cfg.Render.PageTitle, WidthPx: a.cfg.Render.WidthPx}
}
