package services

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/hrdesk/assistant-backend/internal/clients/pinecone"
	"github.com/hrdesk/assistant-backend/internal/domain"
	"github.com/hrdesk/assistant-backend/internal/pkg/apperr"
	"github.com/hrdesk/assistant-backend/internal/pkg/logger"
)

// VectorService wraps the Pinecone index used for document chunks.
type VectorService interface {
	Upsert(ctx context.Context, records []domain.VectorRecord) error
	Query(ctx context.Context, vector []float32, topK int, filter map[string]any) ([]domain.Match, error)
	Delete(ctx context.Context, ids []string) error
	Stats(ctx context.Context) (domain.IndexStats, error)
	TestConnection(ctx context.Context) bool
	IndexName() string
}

const defaultUpsertBatchDelay = 100 * time.Millisecond

type VectorConfig struct {
	IndexName string
	IndexHost string
	// UpsertBatchSize keeps single requests under the payload limit.
	UpsertBatchSize int
	// BatchDelay paces consecutive upsert batches. Zero means the default;
	// a negative value disables pacing.
	BatchDelay time.Duration
}

type vectorService struct {
	log *logger.Logger
	pc  pinecone.Client
	cfg VectorConfig
}

// NewVectorService wraps pc. A nil pc produces a disabled service whose calls
// fail fast. When the index host is not configured it is resolved once via
// the control plane.
func NewVectorService(log *logger.Logger, pc pinecone.Client, cfg VectorConfig) (VectorService, error) {
	serviceLog := log.With("service", "VectorService")

	if strings.TrimSpace(cfg.IndexName) == "" {
		cfg.IndexName = "hrdocs"
	}
	if cfg.UpsertBatchSize <= 0 {
		cfg.UpsertBatchSize = 100
	}
	switch {
	case cfg.BatchDelay == 0:
		cfg.BatchDelay = defaultUpsertBatchDelay
	case cfg.BatchDelay < 0:
		cfg.BatchDelay = 0
	}

	if pc != nil && strings.TrimSpace(cfg.IndexHost) == "" {
		desc, err := pc.DescribeIndex(context.Background(), cfg.IndexName)
		if err != nil {
			return nil, fmt.Errorf("pinecone describe_index failed: %w", err)
		}
		cfg.IndexHost = strings.TrimSpace(desc.Host)
		serviceLog.Warn("PINECONE_INDEX_HOST not set; resolved via describe_index (avoid this in production)",
			"index_name", cfg.IndexName,
			"index_host", cfg.IndexHost,
		)
	}

	return &vectorService{log: serviceLog, pc: pc, cfg: cfg}, nil
}

func (s *vectorService) IndexName() string { return s.cfg.IndexName }

func (s *vectorService) Upsert(ctx context.Context, records []domain.VectorRecord) error {
	if s.pc == nil {
		return fmt.Errorf("pinecone %w", apperr.ErrClientDisabled)
	}
	if len(records) == 0 {
		return nil
	}

	totalBatches := (len(records) + s.cfg.UpsertBatchSize - 1) / s.cfg.UpsertBatchSize
	for i := 0; i < len(records); i += s.cfg.UpsertBatchSize {
		end := i + s.cfg.UpsertBatchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[i:end]

		s.log.Debug("Upserting vector batch",
			"batch", i/s.cfg.UpsertBatchSize+1,
			"total_batches", totalBatches,
			"size", len(batch),
		)

		vectors := make([]pinecone.Vector, len(batch))
		for j, rec := range batch {
			vectors[j] = pinecone.Vector{
				ID:       rec.ID,
				Values:   rec.Values,
				Metadata: metadataToMap(rec.Metadata),
			}
		}

		// Earlier batches stay persisted if a later one fails; the caller
		// retries the whole file and re-upserted ids are new.
		if _, err := s.pc.UpsertVectors(ctx, s.cfg.IndexHost, pinecone.UpsertRequest{Vectors: vectors}); err != nil {
			return fmt.Errorf("upsert batch %d/%d failed: %w", i/s.cfg.UpsertBatchSize+1, totalBatches, err)
		}

		if end < len(records) && s.cfg.BatchDelay > 0 {
			time.Sleep(s.cfg.BatchDelay)
		}
	}
	return nil
}

func (s *vectorService) Query(ctx context.Context, vector []float32, topK int, filter map[string]any) ([]domain.Match, error) {
	if s.pc == nil {
		return nil, fmt.Errorf("pinecone %w", apperr.ErrClientDisabled)
	}
	if len(vector) == 0 {
		return nil, fmt.Errorf("query vector required")
	}

	resp, err := s.pc.Query(ctx, s.cfg.IndexHost, pinecone.QueryRequest{
		Vector:          vector,
		TopK:            topK,
		Filter:          filter,
		IncludeValues:   false,
		IncludeMetadata: true,
	})
	if err != nil {
		return nil, err
	}

	matches := make([]domain.Match, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		matches = append(matches, domain.Match{
			ID:       m.ID,
			Score:    m.Score,
			Metadata: metadataFromMap(m.Metadata),
		})
	}
	return matches, nil
}

func (s *vectorService) Delete(ctx context.Context, ids []string) error {
	if s.pc == nil {
		return fmt.Errorf("pinecone %w", apperr.ErrClientDisabled)
	}
	if len(ids) == 0 {
		return nil
	}
	return s.pc.DeleteVectors(ctx, s.cfg.IndexHost, pinecone.DeleteRequest{IDs: ids})
}

func (s *vectorService) Stats(ctx context.Context) (domain.IndexStats, error) {
	if s.pc == nil {
		return domain.IndexStats{}, fmt.Errorf("pinecone %w", apperr.ErrClientDisabled)
	}
	resp, err := s.pc.DescribeIndexStats(ctx, s.cfg.IndexHost)
	if err != nil {
		return domain.IndexStats{}, err
	}
	return domain.IndexStats{TotalVectors: resp.TotalVectorCount, Dimension: resp.Dimension}, nil
}

func (s *vectorService) TestConnection(ctx context.Context) bool {
	if s.pc == nil {
		return false
	}
	if _, err := s.Stats(ctx); err != nil {
		s.log.Warn("Pinecone connection test failed", "error", err)
		return false
	}
	return true
}

const vectorIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewVectorID builds a store id unique across re-uploads of the same
// filename: <stored name>-chunk-<index>-<millis>-<random suffix>.
func NewVectorID(filename string, chunkIndex int) string {
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = vectorIDAlphabet[rand.Intn(len(vectorIDAlphabet))]
	}
	return fmt.Sprintf("%s-chunk-%d-%d-%s", filename, chunkIndex, time.Now().UnixMilli(), suffix)
}

func metadataToMap(m domain.ChunkMetadata) map[string]any {
	return map[string]any{
		"filename":    m.Filename,
		"fileId":      m.FileID,
		"chunkIndex":  m.ChunkIndex,
		"text":        m.Text,
		"fileType":    m.FileType,
		"fileSize":    m.FileSize,
		"uploadDate":  m.UploadDate,
		"department":  m.Department,
		"chunkLength": m.ChunkLength,
	}
}

func metadataFromMap(m map[string]any) domain.ChunkMetadata {
	out := domain.ChunkMetadata{
		Filename:   stringField(m, "filename"),
		FileID:     stringField(m, "fileId"),
		Text:       stringField(m, "text"),
		FileType:   stringField(m, "fileType"),
		UploadDate: stringField(m, "uploadDate"),
		Department: stringField(m, "department"),
	}
	out.ChunkIndex = int(numberField(m, "chunkIndex"))
	out.FileSize = int64(numberField(m, "fileSize"))
	out.ChunkLength = int(numberField(m, "chunkLength"))
	if out.Filename == "" {
		out.Filename = "unknown"
	}
	if out.Department == "" {
		out.Department = "general"
	}
	return out
}

func stringField(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func numberField(m map[string]any, key string) float64 {
	if m == nil {
		return 0
	}
	switch v := m[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}
