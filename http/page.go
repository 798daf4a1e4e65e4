package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/fwojciec/viewdocs"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed assets
var assetFS embed.FS

var (
	pageTmpl  = template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/page.html"))
	errorTmpl = template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/error.html"))
)

// pageData is the view model shared by the page and error templates.
type pageData struct {
	Title       string
	ProjectName string
	Path        string
	LiveReload  bool
	Nav         []navItem
	TOC         []viewdocs.Section
	Breadcrumb  []crumb

	// Document pages.
	Content  template.HTML
	Degraded bool

	// Error pages.
	Heading string
	Message string
}

type navItem struct {
	Href    string
	Name    string
	Dir     string
	Tooltip string
	Active  bool
}

type crumb struct {
	Name string
	Href string
}

// layoutData builds the parts of the view model common to every page:
// navigation and project name. current is the active document path.
func (s *Server) layoutData(r *http.Request, current string) *pageData {
	data := &pageData{
		ProjectName: s.ProjectName,
		Path:        current,
		LiveReload:  s.LiveReload && current != "",
	}

	docs, err := s.DocumentService.FindDocuments(r.Context())
	if err != nil {
		s.Logger.WarnContext(r.Context(), "navigation unavailable", "err", err)
		return data
	}
	for _, doc := range docs {
		tooltip := doc.FrontMatter.Description
		if tooltip == "" {
			tooltip = doc.Title
		}
		dir := path.Dir(doc.Path)
		if dir == "." {
			dir = ""
		}
		data.Nav = append(data.Nav, navItem{
			Href:    documentHref(doc.Path),
			Name:    viewdocs.DisplayName(doc.Path),
			Dir:     dir,
			Tooltip: tooltip,
			Active:  doc.Path == current,
		})
	}
	return data
}

// documentData builds the view model for a rendered document.
func (s *Server) documentData(r *http.Request, doc *viewdocs.Document) *pageData {
	data := s.layoutData(r, doc.Path)
	data.Title = doc.Title
	data.Content = template.HTML(doc.HTML)
	data.Degraded = doc.RenderError != nil
	data.Breadcrumb = breadcrumb(doc.Path, s.Target.DefaultFile)

	for _, sec := range doc.Sections {
		if sec.Level == 2 || sec.Level == 3 {
			data.TOC = append(data.TOC, sec)
		}
	}
	return data
}

// breadcrumb returns the trail below "Home" for a document path. The
// default document has a single unlinked entry; intermediate directories
// are shown as plain text.
func breadcrumb(p, defaultFile string) []crumb {
	if p == defaultFile {
		return []crumb{{Name: p}}
	}
	segs := strings.Split(p, "/")
	crumbs := make([]crumb, 0, len(segs))
	for _, seg := range segs[:len(segs)-1] {
		crumbs = append(crumbs, crumb{Name: seg})
	}
	return append(crumbs, crumb{Name: segs[len(segs)-1], Href: documentHref(p)})
}

// documentHref returns the escaped URL path for a document.
func documentHref(p string) string {
	return (&url.URL{Path: "/" + p}).EscapedPath()
}

// render executes tmpl into a buffer so template failures never produce a
// partial page.
func (s *Server) render(w http.ResponseWriter, tmpl *template.Template, status int, data *pageData) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		s.Logger.Error("template execution failed", "err", err)
		http.Error(w, "Internal error.", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
