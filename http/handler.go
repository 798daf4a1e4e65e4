package http

import (
	"encoding/json"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fwojciec/viewdocs"
)

func (s *Server) registerRoutes() {
	assets, _ := fs.Sub(assetFS, "assets")

	s.router.HandleFunc("GET /{$}", s.handleIndex)
	s.router.HandleFunc("GET /index.html", s.handleIndex)
	s.router.HandleFunc("GET /_check_update", s.handleCheckUpdate)
	s.router.HandleFunc("GET /_assets/highlight.css", s.handleHighlightCSS)
	s.router.Handle("GET /_assets/", http.StripPrefix("/_assets/", http.FileServerFS(assets)))
	s.router.HandleFunc("GET /sitemap.xml", s.handleSitemap)
	s.router.HandleFunc("GET /{path...}", s.handlePath)
}

// handleIndex serves the default document.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.serveDocument(w, r, s.Target.DefaultFile)
}

// handlePath serves a markdown document as a page and anything else as a
// static file from the root.
func (s *Server) handlePath(w http.ResponseWriter, r *http.Request) {
	p := r.PathValue("path")
	if viewdocs.IsMarkdown(p) {
		s.serveDocument(w, r, p)
		return
	}
	s.serveStatic(w, r, p)
}

func (s *Server) serveDocument(w http.ResponseWriter, r *http.Request, p string) {
	doc, err := s.DocumentService.FindDocument(r.Context(), p)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	s.render(w, pageTmpl, http.StatusOK, s.documentData(r, doc))
}

// serveStatic serves a file below the root. Directories, excluded
// directories and paths escaping the root are not served.
func (s *Server) serveStatic(w http.ResponseWriter, r *http.Request, p string) {
	notFound := viewdocs.Errorf(viewdocs.ENOTFOUND, "file %q not found", p)
	if p == "" || s.Exclude.MatchPath(p) {
		s.Error(w, r, notFound)
		return
	}

	root, err := os.OpenRoot(s.Target.Root)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	defer root.Close()

	f, err := root.Open(filepath.FromSlash(p))
	if err != nil {
		s.Error(w, r, notFound)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		s.Error(w, r, notFound)
		return
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

// checkUpdateResponse is the live reload polling response.
type checkUpdateResponse struct {
	Modified string `json:"modified,omitempty"`
	Error    string `json:"error,omitempty"`
	File     string `json:"file"`
}

// handleCheckUpdate reports the modification time of a document so pages
// can reload when it changes. Missing documents are reported in the body
// with a 200 status.
func (s *Server) handleCheckUpdate(w http.ResponseWriter, r *http.Request) {
	file := r.URL.Query().Get("file")
	if file == "" {
		file = s.Target.DefaultFile
	}

	resp := checkUpdateResponse{File: file}
	mtime, err := s.DocumentService.StatDocument(r.Context(), strings.TrimPrefix(file, "/"))
	switch {
	case err == nil:
		resp.Modified = strconv.FormatFloat(float64(mtime.UnixNano())/1e9, 'f', -1, 64)
	case viewdocs.ErrorCode(err) == viewdocs.ENOTFOUND:
		resp.Error = "File not found"
	default:
		s.Logger.ErrorContext(r.Context(), "check update failed", "file", file, "err", err)
		resp.Error = viewdocs.ErrorMessage(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	_ = json.NewEncoder(w).Encode(resp)
}

// handleHighlightCSS serves the code highlighting stylesheet.
func (s *Server) handleHighlightCSS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	_, _ = w.Write([]byte(s.Stylesheet))
}
