package finn

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/chromedp"

	"boligbudsjett/config"
	"boligbudsjett/utils"
)

// BrowserFetcher renders the listing in headless Chrome and returns the
// resulting document. Useful when the key facts are filled in client side.
type BrowserFetcher struct {
	cfg    *config.Config
	logger *utils.Logger
	settle time.Duration
}

// NewBrowserFetcher creates a chromedp-backed fetcher.
func NewBrowserFetcher(cfg *config.Config, logger *utils.Logger) *BrowserFetcher {
	return &BrowserFetcher{cfg: cfg, logger: logger, settle: 2 * time.Second}
}

// Fetch navigates to url, waits for the body and returns the outer HTML.
// The whole run, browser start-up included, is bounded by the fetch timeout.
func (f *BrowserFetcher) Fetch(ctx context.Context, url string) (string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(f.cfg.UserAgent),
	)
	if bin := findChromeBinary(f.cfg.ChromeBin); bin != "" {
		f.logger.Debug("using browser binary %s", bin)
		opts = append(opts, chromedp.ExecPath(bin))
	}

	ctx, cancelTimeout := timeoutContext(ctx, f.cfg.FetchTimeout)
	defer cancelTimeout()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	// Suppress chromedp log noise
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(f.settle),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", &NetworkError{URL: url, Err: fmt.Errorf("chromedp: %w", err)}
	}
	return html, nil
}

// findChromeBinary locates Chrome/Chromium, preferring the configured path.
func findChromeBinary(configured string) string {
	if configured != "" {
		return configured
	}
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}
