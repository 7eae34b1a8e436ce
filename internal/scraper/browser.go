package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// BrowserFetcher renders pages in headless Chrome. It is slower than
// HTTPFetcher but gets past pages that refuse plain HTTP clients.
type BrowserFetcher struct {
	chromePath string
	userAgent  string
	timeout    time.Duration
}

// NewBrowserFetcher creates a fetcher backed by headless Chrome. chromePath may
// be empty to let chromedp locate the browser.
func NewBrowserFetcher(chromePath, userAgent string, timeout time.Duration) *BrowserFetcher {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &BrowserFetcher{
		chromePath: chromePath,
		userAgent:  userAgent,
		timeout:    timeout,
	}
}

// Fetch renders url and returns the outer HTML of the document.
func (f *BrowserFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	opts := chromedp.DefaultExecAllocatorOptions[:]
	if f.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(f.chromePath))
	}
	opts = append(opts,
		chromedp.Headless,
		chromedp.DisableGPU,
		chromedp.NoSandbox,
		chromedp.UserAgent(f.userAgent),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromeCtx, chromeCancel := chromedp.NewContext(allocCtx)
	defer chromeCancel()

	var html string
	err := chromedp.Run(chromeCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady(`body`, chromedp.ByQuery),
		chromedp.OuterHTML(`html`, &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("rendering page: %w", err)
	}

	return []byte(html), nil
}
