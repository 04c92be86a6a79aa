package fetch

import (
	"context"

	"go.uber.org/zap"
)

// ReferenceOptions configures ReferenceText.
type ReferenceOptions struct {
	HTTP *Options
	// Render, when set, is used for pages whose HTTP text is too short
	Render Renderer
	// ForceRender skips the plain HTTP extraction
	ForceRender bool
	Logger      *zap.Logger
}

// ReferenceText downloads a page of review notes and returns its text.
// Plain-text responses are returned as they are; HTML is reduced to the
// main content, rendered in a browser first when needed and available.
func ReferenceText(ctx context.Context, url string, opts ReferenceOptions) (string, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	platform := DetectPlatform(url)

	if opts.ForceRender {
		if opts.Render == nil {
			return "", &Error{URL: url, Message: "browser rendering requested but no renderer configured"}
		}
		return renderAndExtract(ctx, url, platform, opts.Render)
	}

	result, err := URL(ctx, url, opts.HTTP)
	if err != nil {
		return "", err
	}
	if IsPlainText(result.ContentType) {
		return cleanWhitespace(result.Body), nil
	}

	text, err := ExtractMainText(result.Body, PlatformContentSelectors(platform), PlatformNoiseSelectors(platform)...)
	if err != nil {
		return "", &Error{URL: url, Message: "failed to extract text", Cause: err}
	}

	if ShouldUseBrowser(text) && opts.Render != nil {
		logger.Info("page text too short, rendering in browser",
			zap.String("url", url),
			zap.Int("chars", len([]rune(text))))
		rendered, renderErr := renderAndExtract(ctx, url, platform, opts.Render)
		if renderErr == nil && len(rendered) > len(text) {
			return rendered, nil
		}
		if renderErr != nil {
			logger.Warn("browser rendering failed, keeping HTTP text", zap.Error(renderErr))
		}
	}

	if text == "" {
		return "", &Error{URL: url, Message: "no text found on page"}
	}
	return text, nil
}

func renderAndExtract(ctx context.Context, url string, platform Platform, render Renderer) (string, error) {
	html, err := render(ctx, url)
	if err != nil {
		return "", &Error{URL: url, Message: "browser rendering failed", Cause: err}
	}
	text, err := ExtractMainText(html, PlatformContentSelectors(platform), PlatformNoiseSelectors(platform)...)
	if err != nil {
		return "", &Error{URL: url, Message: "failed to extract text", Cause: err}
	}
	if text == "" {
		return "", &Error{URL: url, Message: "no text found on rendered page"}
	}
	return text, nil
}
