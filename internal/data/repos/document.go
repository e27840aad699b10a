package repos

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hrdesk/assistant-backend/internal/domain"
	"github.com/hrdesk/assistant-backend/internal/pkg/apperr"
	"github.com/hrdesk/assistant-backend/internal/pkg/logger"
)

type DocumentRepo interface {
	Create(ctx context.Context, doc *domain.Document) error
	List(ctx context.Context) ([]*domain.Document, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type documentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDocumentRepo(db *gorm.DB, baseLog *logger.Logger) DocumentRepo {
	return &documentRepo{db: db, log: baseLog.With("repo", "DocumentRepo")}
}

func (r *documentRepo) Create(ctx context.Context, doc *domain.Document) error {
	if doc == nil {
		return fmt.Errorf("document required")
	}
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *documentRepo) List(ctx context.Context) ([]*domain.Document, error) {
	var results []*domain.Document
	if err := r.db.WithContext(ctx).
		Order("uploaded_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *documentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	var doc domain.Document
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("document %s: %w", id, apperr.ErrNotFound)
		}
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.Document{}).Error
}
