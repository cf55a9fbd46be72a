package render

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"factsheet/internal/factsheet"
)

const snapshotTimeout = 30 * time.Second

var (
	headlessOnce sync.Once
	headlessErr  error
)

// EnsureHeadlessAvailable starts a throwaway browser once and reports
// whether PNG snapshots can work on this host.
func EnsureHeadlessAvailable(ctx context.Context) error {
	headlessOnce.Do(func() {
		targetCtx := ctx
		if targetCtx == nil {
			targetCtx = context.Background()
		}
		parent, cancel := chromedp.NewContext(targetCtx)
		if cancel != nil {
			defer cancel()
		}
		headlessErr = chromedp.Run(parent)
	})
	return headlessErr
}

// SnapshotPNG loads html into a headless browser and returns a full-page
// screenshot.
func SnapshotPNG(ctx context.Context, html []byte, width, height int) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if width <= 0 {
		width = defaultWidthPx
	}
	parent, cancel := chromedp.NewContext(ctx)
	defer cancel()

	timeoutCtx, cancelTimeout := context.WithTimeout(parent, snapshotTimeout)
	defer cancelTimeout()

	dataURI := "data:text/html;base64," + base64.StdEncoding.EncodeToString(html)
	var screenshot []byte
	tasks := chromedp.Tasks{
		chromedp.EmulateViewport(int64(width), int64(height)),
		chromedp.Navigate(dataURI),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(1500 * time.Millisecond),
		chromedp.FullScreenshot(&screenshot, 0),
	}
	if err := chromedp.Run(timeoutCtx, tasks...); err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	return screenshot, nil
}

// WritePNG renders fs and stores its screenshot at path.
func WritePNG(ctx context.Context, fs factsheet.Factsheet, o Options, path string) error {
	if err := EnsureHeadlessAvailable(ctx); err != nil {
		return fmt.Errorf("headless browser unavailable: %w", err)
	}
	html, err := HTML(fs, o)
	if err != nil {
		return err
	}
	png, err := SnapshotPNG(ctx, html, o.WidthPx, PageHeight(fs))
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, png, 0o644)
}
