package viewdocs

import (
	"context"
	"time"
)

// Document represents a single markdown file under the served root.
type Document struct {
	// Path is slash-separated and relative to the target root.
	Path        string      `json:"path"`
	Title       string      `json:"title"`
	Content     string      `json:"content"` // Markdown, front matter removed
	FrontMatter FrontMatter `json:"frontMatter"`
	ContentHash string      `json:"contentHash"`
	HTML        string      `json:"html"`
	Sections    []Section   `json:"sections"`
	ModTime     time.Time   `json:"modTime"`
	Size        int64       `json:"size"`

	// RenderError is set when HTML holds a degraded rendering of Content.
	RenderError error `json:"-"`
}

// FrontMatter holds the optional metadata block at the top of a document.
type FrontMatter struct {
	Title       string   `json:"title,omitempty" yaml:"title" toml:"title"`
	Description string   `json:"description,omitempty" yaml:"description" toml:"description"`
	Tags        []string `json:"tags,omitempty" yaml:"tags" toml:"tags"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.Path == "" {
		return Errorf(EINVALID, "document path required")
	}
	if !IsMarkdown(d.Path) {
		return Errorf(EINVALID, "document path %q is not markdown", d.Path)
	}
	return nil
}

// DocumentService represents a service for reading and rendering documents.
type DocumentService interface {
	// FindDocument returns the rendered document at path.
	// Returns ENOTFOUND if the document does not exist on disk or is outside
	// the served document set.
	FindDocument(ctx context.Context, path string) (*Document, error)

	// FindDocuments returns the document set in navigation order.
	// Documents carry titles but are not rendered.
	FindDocuments(ctx context.Context) ([]*Document, error)

	// StatDocument returns the modification time of the document at path.
	// Returns ENOTFOUND if the document does not exist.
	StatDocument(ctx context.Context, path string) (time.Time, error)
}
