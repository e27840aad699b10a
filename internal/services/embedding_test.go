package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/hrdesk/assistant-backend/internal/pkg/apperr"
)

func TestEmbedManyBatches(t *testing.T) {
	ai := &fakeOpenAI{}
	svc := NewEmbeddingService(testLogger(t), ai, EmbeddingConfig{BatchSize: 50, BatchDelay: -1, LargeBatchDelay: -1})

	texts := make([]string, 120)
	for i := range texts {
		texts[i] = fmt.Sprintf("chunk %d", i)
	}

	vectors, err := svc.EmbedMany(context.Background(), texts)
	if err != nil {
		t.Fatalf("EmbedMany: %v", err)
	}
	if len(vectors) != 120 {
		t.Fatalf("vectors: want=120 got=%d", len(vectors))
	}
	if len(ai.embedCalls) != 3 {
		t.Fatalf("batches: want=3 got=%d", len(ai.embedCalls))
	}
	for i, want := range []int{50, 50, 20} {
		if len(ai.embedCalls[i]) != want {
			t.Fatalf("batch %d size: want=%d got=%d", i, want, len(ai.embedCalls[i]))
		}
	}
}

func TestEmbedManyEmptyInput(t *testing.T) {
	ai := &fakeOpenAI{}
	svc := NewEmbeddingService(testLogger(t), ai, EmbeddingConfig{})

	vectors, err := svc.EmbedMany(context.Background(), nil)
	if err != nil {
		t.Fatalf("EmbedMany: %v", err)
	}
	if len(vectors) != 0 {
		t.Fatalf("vectors: want=0 got=%d", len(vectors))
	}
	if len(ai.embedCalls) != 0 {
		t.Fatalf("embed calls: want=0 got=%d", len(ai.embedCalls))
	}
}

func TestEmbedManyCountMismatch(t *testing.T) {
	ai := &fakeOpenAI{
		embedFn: func(_ context.Context, inputs []string) ([][]float32, error) {
			return make([][]float32, len(inputs)-1), nil
		},
	}
	svc := NewEmbeddingService(testLogger(t), ai, EmbeddingConfig{})

	_, err := svc.EmbedMany(context.Background(), []string{"a", "b"})
	if err == nil || !strings.Contains(err.Error(), "count mismatch") {
		t.Fatalf("error: want count mismatch got %v", err)
	}
}

func TestEmbedManyBatchFailureAborts(t *testing.T) {
	calls := 0
	ai := &fakeOpenAI{
		embedFn: func(_ context.Context, inputs []string) ([][]float32, error) {
			calls++
			if calls == 2 {
				return nil, fmt.Errorf("rate limited")
			}
			out := make([][]float32, len(inputs))
			for i := range out {
				out[i] = []float32{1}
			}
			return out, nil
		},
	}
	svc := NewEmbeddingService(testLogger(t), ai, EmbeddingConfig{BatchSize: 2, BatchDelay: -1, LargeBatchDelay: -1})

	_, err := svc.EmbedMany(context.Background(), []string{"a", "b", "c", "d", "e"})
	if err == nil || !strings.Contains(err.Error(), "rate limited") {
		t.Fatalf("error: want rate limited got %v", err)
	}
	if calls != 2 {
		t.Fatalf("embed calls: want=2 got=%d", calls)
	}
}

func TestEmbedDisabledClient(t *testing.T) {
	svc := NewEmbeddingService(testLogger(t), nil, EmbeddingConfig{})

	if _, err := svc.Embed(context.Background(), "q"); !errors.Is(err, apperr.ErrClientDisabled) {
		t.Fatalf("Embed error: want ErrClientDisabled got %v", err)
	}
	if _, err := svc.EmbedMany(context.Background(), []string{"q"}); !errors.Is(err, apperr.ErrClientDisabled) {
		t.Fatalf("EmbedMany error: want ErrClientDisabled got %v", err)
	}
	if svc.TestConnection(context.Background()) {
		t.Fatalf("TestConnection: want=false got=true")
	}
}

func TestEmbeddingPacingDefaults(t *testing.T) {
	svc := NewEmbeddingService(testLogger(t), &fakeOpenAI{}, EmbeddingConfig{}).(*embeddingService)
	if svc.cfg.BatchDelay != 100*time.Millisecond {
		t.Fatalf("BatchDelay: want=100ms got=%v", svc.cfg.BatchDelay)
	}
	if svc.cfg.LargeBatchDelay != 200*time.Millisecond {
		t.Fatalf("LargeBatchDelay: want=200ms got=%v", svc.cfg.LargeBatchDelay)
	}

	svc = NewEmbeddingService(testLogger(t), &fakeOpenAI{}, EmbeddingConfig{BatchDelay: -1, LargeBatchDelay: -1}).(*embeddingService)
	if svc.cfg.BatchDelay != 0 || svc.cfg.LargeBatchDelay != 0 {
		t.Fatalf("negative delays must disable pacing, got batch=%v large=%v", svc.cfg.BatchDelay, svc.cfg.LargeBatchDelay)
	}
}

func TestEmbedManyPacesBatches(t *testing.T) {
	ai := &fakeOpenAI{}
	svc := NewEmbeddingService(testLogger(t), ai, EmbeddingConfig{
		BatchSize:  2,
		BatchDelay: 30 * time.Millisecond,
	})

	start := time.Now()
	if _, err := svc.EmbedMany(context.Background(), []string{"a", "b", "c", "d", "e"}); err != nil {
		t.Fatalf("EmbedMany: %v", err)
	}
	// 3 batches, 2 sleeps between them.
	if elapsed := time.Since(start); elapsed < 60*time.Millisecond {
		t.Fatalf("elapsed: want>=60ms got=%v", elapsed)
	}
}

func TestEmbedSingle(t *testing.T) {
	ai := &fakeOpenAI{
		embedFn: func(_ context.Context, inputs []string) ([][]float32, error) {
			return [][]float32{{0.1, 0.2}}, nil
		},
	}
	svc := NewEmbeddingService(testLogger(t), ai, EmbeddingConfig{})

	vec, err := svc.Embed(context.Background(), "what is the pto policy")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(vec) != 2 {
		t.Fatalf("vector length: want=2 got=%d", len(vec))
	}
}
