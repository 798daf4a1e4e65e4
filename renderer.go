package viewdocs

import (
	"context"
	"html"
)

// RenderVersion identifies the rendering pipeline as a whole, including
// preprocessing and HTML post-processing. Bump it whenever their output
// changes so persisted renders from an older build are not served.
const RenderVersion = "2"

// Renderer converts markdown source to an HTML fragment.
// Implementations must be deterministic and safe for concurrent use.
type Renderer interface {
	// Render returns the HTML fragment for source.
	// A failure is reported with code ERENDER.
	Render(source []byte) ([]byte, error)
}

// RenderCache stores rendered HTML keyed by content.
type RenderCache interface {
	// Get returns the HTML stored under key.
	// Returns ENOTFOUND on a cache miss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores html under key, replacing any previous value.
	Put(ctx context.Context, key string, html []byte) error
}

// RenderFallback returns a best-effort HTML fragment for source that could
// not be rendered: the escaped text in a preformatted block.
func RenderFallback(source []byte) []byte {
	return []byte(`<pre class="render-fallback">` + html.EscapeString(string(source)) + "</pre>\n")
}
