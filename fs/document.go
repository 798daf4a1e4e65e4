package fs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/viewdocs"
	"golang.org/x/sync/errgroup"
)

// Ensure DocumentService implements viewdocs.DocumentService at compile time.
var _ viewdocs.DocumentService = (*DocumentService)(nil)

// DocumentService reads documents from under the target root and renders
// them on demand. Rendered documents are cached until the file's
// modification time or size changes.
type DocumentService struct {
	target *viewdocs.Target
	opts   ScanOptions

	// Renderer converts document content to HTML. Required.
	Renderer viewdocs.Renderer

	// Cache optionally persists rendered HTML across runs.
	Cache viewdocs.RenderCache

	// CacheVersion identifies Renderer in Cache keys, after
	// viewdocs.RenderVersion. It should change whenever Renderer output for
	// the same input would change.
	CacheVersion string

	mu      sync.RWMutex
	paths   []string
	entries map[string]*entry
}

type entry struct {
	doc      *viewdocs.Document
	rendered bool
}

// NewDocumentService creates a new DocumentService for target. The
// document set is empty until Refresh is called.
func NewDocumentService(target *viewdocs.Target, opts ScanOptions, renderer viewdocs.Renderer) *DocumentService {
	return &DocumentService{
		target:   target,
		opts:     opts,
		Renderer: renderer,
		entries:  make(map[string]*entry),
	}
}

// Target returns the served target.
func (s *DocumentService) Target() *viewdocs.Target {
	return s.target
}

// Refresh rescans the target and replaces the document set. Cache entries
// for documents no longer in the set are dropped.
func (s *DocumentService) Refresh(ctx context.Context) error {
	paths, err := Scan(ctx, s.target, s.opts)
	if err != nil {
		return err
	}

	keep := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		keep[p] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths = paths
	for p := range s.entries {
		if _, ok := keep[p]; !ok {
			delete(s.entries, p)
		}
	}
	return nil
}

// Invalidate drops the cached document at path, if any.
func (s *DocumentService) Invalidate(p string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, p)
}

// Warm renders every document in the set using at most concurrency
// workers. Documents that disappear while warming are skipped.
func (s *DocumentService) Warm(ctx context.Context, concurrency int) error {
	if concurrency < 1 {
		concurrency = 1
	}

	s.mu.RLock()
	paths := append([]string(nil), s.paths...)
	s.mu.RUnlock()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if _, err := s.FindDocument(gctx, p); err != nil && viewdocs.ErrorCode(err) != viewdocs.ENOTFOUND {
				return err
			}
			return nil
		})
	}
	return g.Wait()
}

// FindDocument returns the rendered document at the slash-separated path.
// A document whose rendering failed is returned with degraded HTML and
// RenderError set rather than as an error.
func (s *DocumentService) FindDocument(ctx context.Context, p string) (*viewdocs.Document, error) {
	rel, full, err := s.locate(p)
	if err != nil {
		return nil, err
	}

	info, err := s.stat(rel, full)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	e := s.entries[rel]
	s.mu.RUnlock()
	if e != nil && e.rendered && fresh(e.doc, info) {
		return clone(e.doc), nil
	}

	doc, err := load(rel, full, info)
	if err != nil {
		return nil, err
	}
	s.render(ctx, doc)

	s.mu.Lock()
	s.entries[rel] = &entry{doc: doc, rendered: true}
	s.mu.Unlock()

	return clone(doc), nil
}

// FindDocuments returns the document set in navigation order. Documents
// carry titles and metadata but no HTML. Documents removed from disk since
// the last Refresh are omitted.
func (s *DocumentService) FindDocuments(ctx context.Context) ([]*viewdocs.Document, error) {
	s.mu.RLock()
	paths := append([]string(nil), s.paths...)
	s.mu.RUnlock()

	docs := make([]*viewdocs.Document, 0, len(paths))
	for _, rel := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		full := filepath.Join(s.target.Root, filepath.FromSlash(rel))
		info, err := s.stat(rel, full)
		if viewdocs.ErrorCode(err) == viewdocs.ENOTFOUND {
			continue
		} else if err != nil {
			return nil, err
		}

		s.mu.RLock()
		e := s.entries[rel]
		s.mu.RUnlock()
		if e != nil && fresh(e.doc, info) {
			docs = append(docs, summary(e.doc))
			continue
		}

		doc, err := load(rel, full, info)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.entries[rel] = &entry{doc: doc}
		s.mu.Unlock()
		docs = append(docs, summary(doc))
	}
	return docs, nil
}

// StatDocument returns the modification time of the document at path.
func (s *DocumentService) StatDocument(ctx context.Context, p string) (time.Time, error) {
	rel, full, err := s.locate(p)
	if err != nil {
		return time.Time{}, err
	}
	info, err := s.stat(rel, full)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// locate validates a request path and returns it relative to the root,
// along with the corresponding filesystem path. Paths that are not
// markdown, that escape the root or that fall outside the served set
// return ENOTFOUND.
func (s *DocumentService) locate(p string) (rel, full string, err error) {
	notFound := viewdocs.Errorf(viewdocs.ENOTFOUND, "document %q not found", p)

	raw := strings.TrimPrefix(strings.ReplaceAll(p, "\\", "/"), "/")
	if raw == "" || strings.ContainsRune(raw, 0) {
		return "", "", notFound
	}
	for _, seg := range strings.Split(raw, "/") {
		if seg == ".." {
			return "", "", notFound
		}
	}

	rel = path.Clean(raw)
	if rel == "." || path.IsAbs(rel) || filepath.IsAbs(rel) || !viewdocs.IsMarkdown(rel) {
		return "", "", notFound
	}

	switch {
	case s.target.Mode == viewdocs.ModeFile && rel != s.target.DefaultFile:
		return "", "", notFound
	case s.opts.Shallow && strings.Contains(rel, "/"):
		return "", "", notFound
	case s.opts.Exclude.MatchPath(rel):
		return "", "", notFound
	}

	return rel, filepath.Join(s.target.Root, filepath.FromSlash(rel)), nil
}

func (s *DocumentService) stat(rel, full string) (os.FileInfo, error) {
	info, err := os.Stat(full)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, viewdocs.Errorf(viewdocs.ENOTFOUND, "document %q not found", rel)
	} else if err != nil {
		return nil, fmt.Errorf("stat %s: %w", rel, err)
	}
	if info.IsDir() {
		return nil, viewdocs.Errorf(viewdocs.ENOTFOUND, "document %q not found", rel)
	}
	return info, nil
}

// render fills in doc.HTML, consulting the persistent cache first.
func (s *DocumentService) render(ctx context.Context, doc *viewdocs.Document) {
	key := cacheKey(s.CacheVersion, doc.ContentHash)
	if s.Cache != nil {
		if html, err := s.Cache.Get(ctx, key); err == nil {
			doc.HTML = string(html)
			return
		}
	}

	html, err := s.Renderer.Render([]byte(doc.Content))
	if err != nil {
		if viewdocs.ErrorCode(err) != viewdocs.ERENDER {
			err = viewdocs.Errorf(viewdocs.ERENDER, "render %s: %v", doc.Path, err)
		}
		doc.HTML = string(viewdocs.RenderFallback([]byte(doc.Content)))
		doc.RenderError = err
		return
	}
	doc.HTML = string(html)

	if s.Cache != nil {
		// A failed write only costs a re-render on the next run.
		_ = s.Cache.Put(ctx, key, html)
	}
}

// load reads the document at full and parses its metadata.
func load(rel, full string, info os.FileInfo) (*viewdocs.Document, error) {
	data, err := os.ReadFile(full)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, viewdocs.Errorf(viewdocs.ENOTFOUND, "document %q not found", rel)
	} else if err != nil {
		return nil, fmt.Errorf("read %s: %w", rel, err)
	}

	var fm viewdocs.FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(data), &fm)
	if err != nil {
		// Malformed front matter is shown as part of the document.
		fm, body = viewdocs.FrontMatter{}, data
	}
	content := string(body)

	title := fm.Title
	if title == "" {
		title = viewdocs.ExtractTitle(content)
	}
	if title == "" {
		base := path.Base(rel)
		title = strings.TrimSuffix(base, path.Ext(base))
	}

	doc := &viewdocs.Document{
		Path:        rel,
		Title:       title,
		Content:     content,
		FrontMatter: fm,
		ContentHash: hashContent(data),
		Sections:    viewdocs.ExtractSections(content),
		ModTime:     info.ModTime(),
		Size:        info.Size(),
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// cacheKey builds the persistent cache key for content rendered by the
// renderer identified by version.
func cacheKey(version, hash string) string {
	return viewdocs.RenderVersion + ":" + version + ":" + hash
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(content))
}

func fresh(doc *viewdocs.Document, info os.FileInfo) bool {
	return doc.ModTime.Equal(info.ModTime()) && doc.Size == info.Size()
}

func clone(doc *viewdocs.Document) *viewdocs.Document {
	other := *doc
	return &other
}

func summary(doc *viewdocs.Document) *viewdocs.Document {
	other := *doc
	other.HTML = ""
	other.RenderError = nil
	return &other
}
