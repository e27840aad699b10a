package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hrdesk/assistant-backend/internal/data/repos"
	"github.com/hrdesk/assistant-backend/internal/domain"
	"github.com/hrdesk/assistant-backend/internal/pkg/logger"
)

// DocumentService exposes the ingested-document registry and removes a
// document's vectors together with its registry row.
type DocumentService interface {
	List(ctx context.Context) ([]*domain.Document, error)
	Delete(ctx context.Context, id uuid.UUID) (int, error)
}

type documentService struct {
	log     *logger.Logger
	docs    repos.DocumentRepo
	vectors VectorService
}

func NewDocumentService(log *logger.Logger, docs repos.DocumentRepo, vectors VectorService) DocumentService {
	return &documentService{
		log:     log.With("service", "DocumentService"),
		docs:    docs,
		vectors: vectors,
	}
}

func (s *documentService) List(ctx context.Context) ([]*domain.Document, error) {
	return s.docs.List(ctx)
}

// Delete removes the document's vectors from the store first, then the
// registry row. The row survives a store failure so the delete can be
// retried.
func (s *documentService) Delete(ctx context.Context, id uuid.UUID) (int, error) {
	doc, err := s.docs.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}

	if len(doc.VectorIDs) > 0 {
		if err := s.vectors.Delete(ctx, doc.VectorIDs); err != nil {
			return 0, fmt.Errorf("delete vectors: %w", err)
		}
	}

	if err := s.docs.DeleteByID(ctx, id); err != nil {
		return 0, err
	}

	s.log.Info("Document deleted", "id", id, "filename", doc.Filename, "vectors", len(doc.VectorIDs))
	return len(doc.VectorIDs), nil
}
