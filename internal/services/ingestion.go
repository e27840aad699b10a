package services

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hrdesk/assistant-backend/internal/data/repos"
	"github.com/hrdesk/assistant-backend/internal/domain"
	"github.com/hrdesk/assistant-backend/internal/ingestion/chunker"
	"github.com/hrdesk/assistant-backend/internal/ingestion/extractor"
	"github.com/hrdesk/assistant-backend/internal/pkg/apperr"
	"github.com/hrdesk/assistant-backend/internal/pkg/logger"
)

// IngestionService runs the upload pipeline: validate, extract, chunk, embed
// and store, one file at a time. Each file's outcome is independent.
type IngestionService interface {
	ProcessFiles(ctx context.Context, files []domain.UploadedFile, department string) (domain.UploadSummary, []domain.FileResult, error)
}

type IngestionConfig struct {
	MaxFileSize  int64
	ChunkSize    int
	ChunkOverlap int
	// FileBatchSize bounds how many files share one pass; processing within
	// a batch is still sequential.
	FileBatchSize int
}

type ingestionService struct {
	log     *logger.Logger
	extract *extractor.Extractor
	embed   EmbeddingService
	vectors VectorService
	docs    repos.DocumentRepo
	cfg     IngestionConfig
}

func NewIngestionService(
	log *logger.Logger,
	extract *extractor.Extractor,
	embed EmbeddingService,
	vectors VectorService,
	docs repos.DocumentRepo,
	cfg IngestionConfig,
) IngestionService {
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = 10485760
	}
	if cfg.FileBatchSize <= 0 {
		cfg.FileBatchSize = 3
	}
	return &ingestionService{
		log:     log.With("service", "IngestionService"),
		extract: extract,
		embed:   embed,
		vectors: vectors,
		docs:    docs,
		cfg:     cfg,
	}
}

func (s *ingestionService) ProcessFiles(ctx context.Context, files []domain.UploadedFile, department string) (domain.UploadSummary, []domain.FileResult, error) {
	if len(files) == 0 {
		return domain.UploadSummary{}, nil, apperr.ErrNoFiles
	}

	department = strings.TrimSpace(department)
	if department == "" {
		department = "general"
	}

	s.log.Info("Processing uploaded files", "count", len(files), "department", department)

	results := make([]domain.FileResult, 0, len(files))
	totalBatches := (len(files) + s.cfg.FileBatchSize - 1) / s.cfg.FileBatchSize

	for i := 0; i < len(files); i += s.cfg.FileBatchSize {
		end := i + s.cfg.FileBatchSize
		if end > len(files) {
			end = len(files)
		}

		s.log.Debug("Processing file batch", "batch", i/s.cfg.FileBatchSize+1, "total_batches", totalBatches)

		for _, file := range files[i:end] {
			results = append(results, s.processFile(ctx, file, department))
		}
	}

	summary := domain.UploadSummary{Total: len(files)}
	for _, r := range results {
		if r.Status == domain.FileStatusSuccess {
			summary.Successful++
		} else {
			summary.Failed++
		}
	}

	s.log.Info("File processing complete", "successful", summary.Successful, "failed", summary.Failed)
	return summary, results, nil
}

func (s *ingestionService) processFile(ctx context.Context, file domain.UploadedFile, department string) domain.FileResult {
	log := s.log.With("filename", file.OriginalName)
	log.Info("Processing file", "mime_type", file.MimeType, "size", file.Size)

	// The staged upload is removed whether the file succeeds or fails.
	defer func() {
		if err := os.Remove(file.Path); err != nil && !os.IsNotExist(err) {
			log.Warn("Failed to clean up uploaded file", "path", file.Path, "error", err)
		}
	}()

	chunks, vectorIDs, err := s.ingest(ctx, file, department)
	if err != nil {
		log.Error("File processing failed", "error", err)
		return domain.FileResult{
			Filename: file.OriginalName,
			Status:   domain.FileStatusError,
			Error:    err.Error(),
		}
	}

	log.Info("File processed", "chunks", chunks, "vectors", len(vectorIDs))
	return domain.FileResult{
		Filename: file.OriginalName,
		FileSize: file.Size,
		Chunks:   chunks,
		Vectors:  len(vectorIDs),
		Status:   domain.FileStatusSuccess,
		Message:  fmt.Sprintf("Successfully processed and stored %d text chunks", chunks),
	}
}

func (s *ingestionService) ingest(ctx context.Context, file domain.UploadedFile, department string) (int, []string, error) {
	if !extractor.IsSupported(file.MimeType) {
		return 0, nil, fmt.Errorf("%w: %s", apperr.ErrUnsupportedFileType, file.MimeType)
	}
	if file.Size > s.cfg.MaxFileSize {
		return 0, nil, fmt.Errorf("%w: %d bytes (max: %d bytes)", apperr.ErrFileTooLarge, file.Size, s.cfg.MaxFileSize)
	}

	text, err := s.extract.Extract(file.Path, file.MimeType)
	if err != nil {
		return 0, nil, fmt.Errorf("extract text: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return 0, nil, apperr.ErrEmptyContent
	}

	chunks := chunker.Split(text, s.cfg.ChunkSize, s.cfg.ChunkOverlap)
	if len(chunks) == 0 {
		return 0, nil, apperr.ErrEmptyContent
	}

	embeddings, err := s.embed.EmbedMany(ctx, chunks)
	if err != nil {
		return 0, nil, fmt.Errorf("create embeddings: %w", err)
	}
	if len(embeddings) != len(chunks) {
		return 0, nil, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(chunks), len(embeddings))
	}

	uploadDate := time.Now().UTC().Format(time.RFC3339)
	records := make([]domain.VectorRecord, len(chunks))
	vectorIDs := make([]string, len(chunks))
	for i, chunk := range chunks {
		id := NewVectorID(file.StoredName, i)
		vectorIDs[i] = id
		records[i] = domain.VectorRecord{
			ID:     id,
			Values: embeddings[i],
			Metadata: domain.ChunkMetadata{
				Filename:    file.OriginalName,
				FileID:      file.StoredName,
				ChunkIndex:  i,
				Text:        chunk,
				FileType:    file.MimeType,
				FileSize:    file.Size,
				UploadDate:  uploadDate,
				Department:  department,
				ChunkLength: len(chunk),
			},
		}
	}

	if err := s.vectors.Upsert(ctx, records); err != nil {
		return 0, nil, fmt.Errorf("store vectors: %w", err)
	}

	s.recordDocument(ctx, file, department, len(chunks), vectorIDs)
	return len(chunks), vectorIDs, nil
}

// recordDocument is best-effort: the vector store already holds the data, so
// a registry failure downgrades to a warning instead of failing the file.
func (s *ingestionService) recordDocument(ctx context.Context, file domain.UploadedFile, department string, chunks int, vectorIDs []string) {
	if s.docs == nil {
		return
	}
	doc := &domain.Document{
		ID:         uuid.New(),
		Filename:   file.OriginalName,
		FileID:     file.StoredName,
		MimeType:   file.MimeType,
		FileSize:   file.Size,
		Department: department,
		ChunkCount: chunks,
		VectorIDs:  vectorIDs,
		UploadedAt: time.Now().UTC(),
	}
	if err := s.docs.Create(ctx, doc); err != nil {
		s.log.Warn("Failed to record document in registry", "filename", file.OriginalName, "error", err)
	}
}
