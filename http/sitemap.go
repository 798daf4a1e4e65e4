package http

import (
	"bytes"
	"net/http"
	"net/url"

	"github.com/beevik/etree"
	"github.com/fwojciec/viewdocs"
)

// sitemapNamespace is the XML namespace of the sitemaps.org protocol.
const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// BuildSitemap returns a sitemaps.org urlset listing docs under baseURL.
func BuildSitemap(baseURL string, docs []*viewdocs.Document) ([]byte, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, viewdocs.Errorf(viewdocs.EINVALID, "invalid base URL: %v", err)
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	urlset := doc.CreateElement("urlset")
	urlset.CreateAttr("xmlns", sitemapNamespace)

	for _, d := range docs {
		loc := *base
		loc.Path = "/" + d.Path

		u := urlset.CreateElement("url")
		u.CreateElement("loc").SetText(loc.String())
		if !d.ModTime.IsZero() {
			u.CreateElement("lastmod").SetText(d.ModTime.UTC().Format("2006-01-02"))
		}
	}

	doc.Indent(2)
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// handleSitemap serves a sitemap of the document set.
func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	docs, err := s.DocumentService.FindDocuments(r.Context())
	if err != nil {
		s.Error(w, r, err)
		return
	}

	body, err := BuildSitemap("http://"+r.Host, docs)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(body)
}
