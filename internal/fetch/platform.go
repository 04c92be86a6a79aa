package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known document hosting platform.
type Platform string

const (
	// PlatformConfluence is Atlassian Confluence
	PlatformConfluence Platform = "confluence"
	// PlatformNotion is a published Notion page
	PlatformNotion Platform = "notion"
	// PlatformGoogleDocs is a published Google Doc
	PlatformGoogleDocs Platform = "google_docs"
	// PlatformUnknown is an unrecognized platform
	PlatformUnknown Platform = "unknown"
)

// DetectPlatform identifies the hosting platform from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Host)
	switch {
	case strings.HasSuffix(host, "atlassian.net") || strings.Contains(parsed.Path, "/wiki/spaces/"):
		return PlatformConfluence
	case strings.HasSuffix(host, "notion.site") || strings.HasSuffix(host, "notion.so"):
		return PlatformNotion
	case host == "docs.google.com":
		return PlatformGoogleDocs
	default:
		return PlatformUnknown
	}
}

// PlatformContentSelectors returns content selectors for a platform.
func PlatformContentSelectors(platform Platform) []string {
	switch platform {
	case PlatformConfluence:
		return []string{"#main-content .wiki-content", ".wiki-content", "#main-content"}
	case PlatformNotion:
		return []string{".notion-page-content", "main"}
	case PlatformGoogleDocs:
		return []string{"#contents", ".doc-content"}
	default:
		return DefaultTextSelectors()
	}
}

// PlatformNoiseSelectors returns elements to drop before extraction.
func PlatformNoiseSelectors(platform Platform) []string {
	common := []string{".cookie-consent", ".gdpr-notice", ".social-share"}

	switch platform {
	case PlatformConfluence:
		return append(common, "#comments-section", ".page-metadata", "#likes-and-labels-container")
	case PlatformNotion:
		return append(common, ".notion-topbar", ".notion-comments")
	case PlatformGoogleDocs:
		return append(common, "#header", "#footer")
	default:
		return common
	}
}
