package services

import (
	"context"
	"fmt"
	"time"

	"github.com/hrdesk/assistant-backend/internal/clients/openai"
	"github.com/hrdesk/assistant-backend/internal/pkg/apperr"
	"github.com/hrdesk/assistant-backend/internal/pkg/logger"
)

// EmbeddingService turns text into vectors via the OpenAI embeddings API,
// batching large inputs with pacing between batches.
type EmbeddingService interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedMany(ctx context.Context, texts []string) ([][]float32, error)
	TestConnection(ctx context.Context) bool
}

const (
	defaultEmbedBatchDelay      = 100 * time.Millisecond
	defaultEmbedLargeBatchDelay = 200 * time.Millisecond
)

type EmbeddingConfig struct {
	// BatchSize caps how many texts go into one embeddings request.
	BatchSize int
	// BatchDelay paces consecutive batches; LargeBatchDelay applies once the
	// total input exceeds LargeInputThreshold. Zero means the defaults; a
	// negative value disables pacing. Rate-limit heuristics, not a contract
	// of the upstream API.
	BatchDelay          time.Duration
	LargeBatchDelay     time.Duration
	LargeInputThreshold int
}

type embeddingService struct {
	log *logger.Logger
	ai  openai.Client
	cfg EmbeddingConfig
}

// NewEmbeddingService wraps ai. A nil ai produces a disabled service whose
// calls fail fast with a descriptive error.
func NewEmbeddingService(log *logger.Logger, ai openai.Client, cfg EmbeddingConfig) EmbeddingService {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	switch {
	case cfg.BatchDelay == 0:
		cfg.BatchDelay = defaultEmbedBatchDelay
	case cfg.BatchDelay < 0:
		cfg.BatchDelay = 0
	}
	switch {
	case cfg.LargeBatchDelay == 0:
		cfg.LargeBatchDelay = defaultEmbedLargeBatchDelay
	case cfg.LargeBatchDelay < 0:
		cfg.LargeBatchDelay = 0
	}
	if cfg.LargeInputThreshold <= 0 {
		cfg.LargeInputThreshold = 100
	}
	return &embeddingService{
		log: log.With("service", "EmbeddingService"),
		ai:  ai,
		cfg: cfg,
	}
}

func (s *embeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	if s.ai == nil {
		return nil, fmt.Errorf("openai %w", apperr.ErrClientDisabled)
	}
	vectors, err := s.ai.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("embedding count mismatch: expected 1, got %d", len(vectors))
	}
	return vectors[0], nil
}

func (s *embeddingService) EmbedMany(ctx context.Context, texts []string) ([][]float32, error) {
	if s.ai == nil {
		return nil, fmt.Errorf("openai %w", apperr.ErrClientDisabled)
	}
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	s.log.Debug("Creating embeddings", "chunks", len(texts))

	delay := s.cfg.BatchDelay
	if len(texts) > s.cfg.LargeInputThreshold {
		delay = s.cfg.LargeBatchDelay
	}

	out := make([][]float32, 0, len(texts))
	totalBatches := (len(texts) + s.cfg.BatchSize - 1) / s.cfg.BatchSize

	for i := 0; i < len(texts); i += s.cfg.BatchSize {
		end := i + s.cfg.BatchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch := texts[i:end]

		s.log.Debug("Processing embedding batch",
			"batch", i/s.cfg.BatchSize+1,
			"total_batches", totalBatches,
			"size", len(batch),
		)

		vectors, err := s.ai.Embed(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("embedding batch %d/%d failed: %w", i/s.cfg.BatchSize+1, totalBatches, err)
		}
		if len(vectors) != len(batch) {
			return nil, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(batch), len(vectors))
		}
		out = append(out, vectors...)

		if end < len(texts) && delay > 0 {
			time.Sleep(delay)
		}
	}

	s.log.Debug("Created embeddings", "count", len(out))
	return out, nil
}

func (s *embeddingService) TestConnection(ctx context.Context) bool {
	if s.ai == nil {
		return false
	}
	_, err := s.ai.Embed(ctx, []string{"test"})
	if err != nil {
		s.log.Warn("OpenAI connection test failed", "error", err)
		return false
	}
	return true
}
