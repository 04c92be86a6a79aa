package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><h1>Review notes</h1></body></html>"))
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, server.URL, result.URL)
	assert.Contains(t, result.Body, "<h1>Review notes</h1>")
	assert.Equal(t, "text/html", result.ContentType)
	assert.Equal(t, http.StatusOK, result.StatusCode)
}

func TestURL_CustomHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
		assert.Equal(t, "custom-agent", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	opts := DefaultOptions()
	opts.UserAgent = "custom-agent"
	opts.Headers = map[string]string{"Authorization": "Bearer abc"}

	_, err := URL(context.Background(), server.URL, opts)
	require.NoError(t, err)
}

func TestURL_InvalidURL(t *testing.T) {
	for _, raw := range []string{"not-a-valid-url", "ftp://example.com/notes", "file:///etc/passwd"} {
		t.Run(raw, func(t *testing.T) {
			_, err := URL(context.Background(), raw, nil)
			require.Error(t, err)

			var fetchErr *Error
			assert.ErrorAs(t, err, &fetchErr)
			assert.Contains(t, err.Error(), "invalid URL")
		})
	}
}

func TestURL_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.Error(t, err)
	require.NotNil(t, result)
	assert.Equal(t, http.StatusNotFound, result.StatusCode)

	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "HTTP status 404")
}

func TestURL_TooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 64)))
	}))
	defer server.Close()

	opts := DefaultOptions()
	opts.MaxBytes = 32

	_, err := URL(context.Background(), server.URL, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "larger than 32 bytes")
}

func TestURL_CanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("late"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := URL(ctx, server.URL, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsPlainText(t *testing.T) {
	assert.True(t, IsPlainText("text/plain"))
	assert.True(t, IsPlainText("text/plain; charset=utf-8"))
	assert.True(t, IsPlainText("Text/Markdown"))
	assert.False(t, IsPlainText("text/html; charset=utf-8"))
	assert.False(t, IsPlainText(""))
}

func TestExtractMainText_RemovesNoise(t *testing.T) {
	html := `
	<html>
		<body>
			<nav>Navigation</nav>
			<main>
				<h1>Đánh giá tháng 9</h1>
				<p>Nam: nắm vững Java.</p>
			</main>
			<footer>Footer</footer>
		</body>
	</html>`

	text, err := ExtractMainText(html, DefaultTextSelectors())
	require.NoError(t, err)
	assert.Contains(t, text, "Đánh giá tháng 9")
	assert.Contains(t, text, "nắm vững Java")
	assert.NotContains(t, text, "Navigation")
	assert.NotContains(t, text, "Footer")
}

func TestExtractMainText_OneLinePerBlock(t *testing.T) {
	html := `<main><ul><li>Java tốt</li><li>Giao tiếp kém</li></ul><p>Line one<br>Line two</p></main>`

	text, err := ExtractMainText(html, DefaultTextSelectors())
	require.NoError(t, err)
	assert.Equal(t, "Java tốt\nGiao tiếp kém\nLine one\nLine two", text)
}

func TestExtractMainText_FallbackToBody(t *testing.T) {
	html := `<html><body><span>Some content here.</span></body></html>`

	text, err := ExtractMainText(html, DefaultTextSelectors())
	require.NoError(t, err)
	assert.Equal(t, "Some content here.", text)
}

func TestExtractMainText_ExtraNoiseSelectors(t *testing.T) {
	html := `<main><div class="page-metadata">Created by admin</div><p>Strength: teamwork</p></main>`

	text, err := ExtractMainText(html, DefaultTextSelectors(), ".page-metadata")
	require.NoError(t, err)
	assert.Equal(t, "Strength: teamwork", text)
}

func TestCleanWhitespace(t *testing.T) {
	assert.Equal(t, "a\nb", cleanWhitespace("  a  \n\n\t\n b\n"))
	assert.Equal(t, "", cleanWhitespace(" \n \n"))
}

func TestError_Unwrap(t *testing.T) {
	cause := context.DeadlineExceeded
	err := &Error{URL: "https://x", Message: "HTTP request failed", Cause: cause}
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "fetch error for https://x: HTTP request failed: context deadline exceeded", err.Error())
	assert.Equal(t, "fetch error for https://x: boom", (&Error{URL: "https://x", Message: "boom"}).Error())
}
