package mock

import (
	"context"
	"time"

	"github.com/fwojciec/viewdocs"
)

var _ viewdocs.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of viewdocs.DocumentService.
type DocumentService struct {
	FindDocumentFn  func(ctx context.Context, path string) (*viewdocs.Document, error)
	FindDocumentsFn func(ctx context.Context) ([]*viewdocs.Document, error)
	StatDocumentFn  func(ctx context.Context, path string) (time.Time, error)
}

func (s *DocumentService) FindDocument(ctx context.Context, path string) (*viewdocs.Document, error) {
	return s.FindDocumentFn(ctx, path)
}

func (s *DocumentService) FindDocuments(ctx context.Context) ([]*viewdocs.Document, error) {
	return s.FindDocumentsFn(ctx)
}

func (s *DocumentService) StatDocument(ctx context.Context, path string) (time.Time, error) {
	return s.StatDocumentFn(ctx, path)
}
