package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/viewdocs"
)

// Ensure LoggingDocumentService implements viewdocs.DocumentService.
var _ viewdocs.DocumentService = (*LoggingDocumentService)(nil)

// LoggingDocumentService wraps a DocumentService with logging. Lookups are
// logged at debug level; degraded renders are logged as warnings.
type LoggingDocumentService struct {
	next   viewdocs.DocumentService
	logger *slog.Logger
}

// NewLoggingDocumentService creates a new LoggingDocumentService.
func NewLoggingDocumentService(next viewdocs.DocumentService, logger *slog.Logger) *LoggingDocumentService {
	return &LoggingDocumentService{next: next, logger: logger}
}

// FindDocument delegates to the wrapped service and logs the operation.
func (s *LoggingDocumentService) FindDocument(ctx context.Context, path string) (doc *viewdocs.Document, err error) {
	defer func(begin time.Time) {
		if doc != nil && doc.RenderError != nil {
			s.logger.WarnContext(ctx, "degraded render",
				"path", path,
				"err", doc.RenderError,
			)
		}
		s.logger.DebugContext(ctx, "find document",
			"path", path,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindDocument(ctx, path)
}

// FindDocuments delegates to the wrapped service and logs the operation.
func (s *LoggingDocumentService) FindDocuments(ctx context.Context) (docs []*viewdocs.Document, err error) {
	defer func(begin time.Time) {
		s.logger.DebugContext(ctx, "find documents",
			"count", len(docs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindDocuments(ctx)
}

// StatDocument delegates to the wrapped service.
func (s *LoggingDocumentService) StatDocument(ctx context.Context, path string) (time.Time, error) {
	return s.next.StatDocument(ctx, path)
}
