// Package goquery post-processes rendered HTML using goquery.
package goquery

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/viewdocs"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure Renderer implements viewdocs.Renderer at compile time.
var _ viewdocs.Renderer = (*Renderer)(nil)

// Renderer decorates a viewdocs.Renderer and adjusts its output for the
// browser: external links open in a new tab, images load lazily and tables
// are wrapped so they can scroll horizontally.
type Renderer struct {
	next viewdocs.Renderer
}

// NewRenderer wraps next with HTML post-processing.
func NewRenderer(next viewdocs.Renderer) *Renderer {
	return &Renderer{next: next}
}

// Render renders source with the wrapped renderer and post-processes the
// result. If the fragment cannot be parsed it is returned unchanged.
func (r *Renderer) Render(source []byte) ([]byte, error) {
	out, err := r.next.Render(source)
	if err != nil {
		return nil, err
	}

	processed, err := postProcess(out)
	if err != nil {
		return out, nil
	}
	return processed, nil
}

// postProcess parses fragment in a <body> context, so leading raw HTML
// such as <style> or comments stays where the markdown put it.
func postProcess(fragment []byte) ([]byte, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(bytes.NewReader(fragment), body)
	if err != nil {
		return nil, err
	}
	root := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	doc := goquery.NewDocumentFromNode(root)

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if !isExternalLink(href) {
			return
		}
		sel.SetAttr("target", "_blank")
		sel.SetAttr("rel", "noopener noreferrer")
	})

	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		if _, exists := sel.Attr("loading"); !exists {
			sel.SetAttr("loading", "lazy")
		}
	})

	doc.Find("table").WrapHtml(`<div class="table-wrapper"></div>`)

	var buf bytes.Buffer
	for n := root.FirstChild; n != nil; n = n.NextSibling {
		if err := html.Render(&buf, n); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// isExternalLink reports whether href points to another site.
func isExternalLink(href string) bool {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return u.Host != ""
	}
	return false
}
