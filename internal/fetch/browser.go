package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// MinContentLength is the shortest extracted text (in characters) trusted
// from a plain HTTP fetch; shorter pages are likely rendered by JavaScript.
const MinContentLength = 200

// ShouldUseBrowser reports whether extracted text is too short to be the real page.
func ShouldUseBrowser(extractedText string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(extractedText)) < MinContentLength
}

// Renderer returns the HTML of a page after scripts have run.
type Renderer func(ctx context.Context, url string) (string, error)

// ChromeRenderer renders pages in headless Chrome. Chrome or Chromium must
// be installed on the machine.
func ChromeRenderer(timeout time.Duration, logger *zap.Logger) Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context, url string) (string, error) {
		logger.Debug("starting headless browser", zap.String("url", url))

		allocCtx, cancel := chromedp.NewExecAllocator(ctx,
			append(chromedp.DefaultExecAllocatorOptions[:],
				chromedp.Flag("headless", true),
				chromedp.Flag("disable-gpu", true),
				chromedp.Flag("no-sandbox", true),
				chromedp.Flag("disable-dev-shm-usage", true),
			)...,
		)
		defer cancel()

		browserCtx, cancel := chromedp.NewContext(allocCtx)
		defer cancel()

		browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
		defer cancel()

		var html string
		err := chromedp.Run(browserCtx,
			chromedp.Navigate(url),
			chromedp.WaitReady("body"),
			chromedp.Sleep(2*time.Second),
			chromedp.OuterHTML("html", &html),
		)
		if err != nil {
			return "", fmt.Errorf("browser rendering failed: %w", err)
		}

		logger.Debug("page rendered", zap.String("url", url), zap.Int("bytes", len(html)))
		return html, nil
	}
}
