// Package goldmark renders markdown to HTML using the goldmark engine, with
// fenced code highlighted by chroma.
package goldmark

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fwojciec/viewdocs"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "github"

// Ensure Renderer implements viewdocs.Renderer at compile time.
var _ viewdocs.Renderer = (*Renderer)(nil)

// Renderer converts markdown to HTML. It holds no per-call state, so a
// single instance can serve concurrent requests without locking.
type Renderer struct {
	style string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithStyle sets the chroma style name used for code highlighting.
// Unknown names fall back to chroma's default style.
func WithStyle(name string) Option {
	return func(r *Renderer) {
		if name != "" {
			r.style = name
		}
	}
}

// NewRenderer creates a new Renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{style: DefaultStyle}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Version identifies the renderer configuration. Persistent caches include
// it in their keys so output from a different configuration is never reused.
func (r *Renderer) Version() string {
	return "goldmark/" + r.style
}

// Render converts markdown source into an HTML fragment.
func (r *Renderer) Render(source []byte) (out []byte, err error) {
	defer func() {
		if p := recover(); p != nil {
			out, err = nil, viewdocs.Errorf(viewdocs.ERENDER, "markdown render panic: %v", p)
		}
	}()

	var buf bytes.Buffer
	ctx := parser.NewContext(parser.WithIDs(newHeadingIDs()))
	if err := r.engine().Convert(preprocess(source), &buf, parser.WithContext(ctx)); err != nil {
		return nil, viewdocs.Errorf(viewdocs.ERENDER, "markdown render: %v", err)
	}
	return buf.Bytes(), nil
}

// Stylesheet returns the CSS for the highlighting classes emitted by Render.
func (r *Renderer) Stylesheet() (string, error) {
	var sb strings.Builder
	if err := newHighlighter(r.style).writeCSS(&sb); err != nil {
		return "", fmt.Errorf("highlight stylesheet: %w", err)
	}
	return sb.String(), nil
}

// engine builds a goldmark instance per call.
func (r *Renderer) engine() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			extension.DefinitionList,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
			renderer.WithNodeRenderers(
				util.Prioritized(newHighlighter(r.style), 100),
			),
		),
	)
}
