package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/intern-eval/internal/fetch"
)

// renderTimeout bounds a single headless browser page load
const renderTimeout = 60 * time.Second

var newRenderer = func(logger *zap.Logger) fetch.Renderer {
	return fetch.ChromeRenderer(renderTimeout, logger)
}

// sourceFlags names where a command reads its review notes from
type sourceFlags struct {
	file    string
	url     string
	browser bool
}

func (s *sourceFlags) register(cmd *cobra.Command, fileUsage string) {
	cmd.Flags().StringVarP(&s.file, "input", "i", "", fileUsage)
	cmd.Flags().StringVar(&s.url, "url", "", "URL of a page holding the notes (wiki, Notion, published doc, plain text)")
	cmd.Flags().BoolVar(&s.browser, "browser", false, "Render --url in headless Chrome before extracting text")
}

// load returns the notes from the file or page selected by the flags
func (s *sourceFlags) load(ctx context.Context) (string, error) {
	if s.url == "" {
		return readTextFile(s.file)
	}

	logger.Info("fetching reference page", zap.String("url", s.url), zap.Bool("browser", s.browser))
	text, err := fetch.ReferenceText(ctx, s.url, fetch.ReferenceOptions{
		Render:      newRenderer(logger),
		ForceRender: s.browser,
		Logger:      logger,
	})
	if err != nil {
		return "", fmt.Errorf("failed to load %s: %w", s.url, err)
	}
	return text, nil
}
