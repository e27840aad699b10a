package handlers

import (
	"context"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hrdesk/assistant-backend/internal/domain"
	"github.com/hrdesk/assistant-backend/internal/pkg/logger"
	"github.com/hrdesk/assistant-backend/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

type fakeIngestion struct {
	fn    func(ctx context.Context, files []domain.UploadedFile, department string) (domain.UploadSummary, []domain.FileResult, error)
	calls [][]domain.UploadedFile
	deps  []string
}

var _ services.IngestionService = (*fakeIngestion)(nil)

func (f *fakeIngestion) ProcessFiles(ctx context.Context, files []domain.UploadedFile, department string) (domain.UploadSummary, []domain.FileResult, error) {
	f.calls = append(f.calls, files)
	f.deps = append(f.deps, department)
	if f.fn != nil {
		return f.fn(ctx, files, department)
	}
	results := make([]domain.FileResult, len(files))
	for i, file := range files {
		results[i] = domain.FileResult{
			Filename: file.OriginalName,
			FileSize: file.Size,
			Chunks:   1,
			Vectors:  1,
			Status:   domain.FileStatusSuccess,
		}
	}
	return domain.UploadSummary{Total: len(files), Successful: len(files)}, results, nil
}

type fakeEmbedding struct {
	connected bool
}

var _ services.EmbeddingService = (*fakeEmbedding)(nil)

func (f *fakeEmbedding) Embed(context.Context, string) ([]float32, error) {
	return []float32{1}, nil
}

func (f *fakeEmbedding) EmbedMany(_ context.Context, texts []string) ([][]float32, error) {
	return make([][]float32, len(texts)), nil
}

func (f *fakeEmbedding) TestConnection(context.Context) bool { return f.connected }

type fakeVectors struct {
	connected bool
	stats     domain.IndexStats
	statsErr  error
	deleteErr error
	deleted   [][]string
}

var _ services.VectorService = (*fakeVectors)(nil)

func (f *fakeVectors) Upsert(context.Context, []domain.VectorRecord) error { return nil }

func (f *fakeVectors) Query(context.Context, []float32, int, map[string]any) ([]domain.Match, error) {
	return nil, nil
}

func (f *fakeVectors) Delete(_ context.Context, ids []string) error {
	f.deleted = append(f.deleted, ids)
	return f.deleteErr
}

func (f *fakeVectors) Stats(context.Context) (domain.IndexStats, error) {
	return f.stats, f.statsErr
}

func (f *fakeVectors) TestConnection(context.Context) bool { return f.connected }

func (f *fakeVectors) IndexName() string { return "hrdocs" }

type fakeChat struct {
	fn func(ctx context.Context, req domain.ChatRequest) (domain.ChatResult, error)
}

var _ services.ChatService = (*fakeChat)(nil)

func (f *fakeChat) Answer(ctx context.Context, req domain.ChatRequest) (domain.ChatResult, error) {
	if f.fn != nil {
		return f.fn(ctx, req)
	}
	return domain.ChatResult{Response: "answer"}, nil
}

type fakeDocuments struct {
	listFn   func(ctx context.Context) ([]*domain.Document, error)
	deleteFn func(ctx context.Context, id uuid.UUID) (int, error)
}

var _ services.DocumentService = (*fakeDocuments)(nil)

func (f *fakeDocuments) List(ctx context.Context) ([]*domain.Document, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}
	return nil, nil
}

func (f *fakeDocuments) Delete(ctx context.Context, id uuid.UUID) (int, error) {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return 0, nil
}
