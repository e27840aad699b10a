package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/hrdesk/assistant-backend/internal/clients/openai"
	"github.com/hrdesk/assistant-backend/internal/clients/pinecone"
	"github.com/hrdesk/assistant-backend/internal/data/repos"
	"github.com/hrdesk/assistant-backend/internal/domain"
	"github.com/hrdesk/assistant-backend/internal/pkg/apperr"
	"github.com/hrdesk/assistant-backend/internal/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

type fakeOpenAI struct {
	embedFn func(ctx context.Context, inputs []string) ([][]float32, error)
	chatFn  func(ctx context.Context, messages []domain.ChatMessage) (string, error)

	embedCalls [][]string
	chatCalls  [][]domain.ChatMessage
}

var _ openai.Client = (*fakeOpenAI)(nil)

func (f *fakeOpenAI) Embed(ctx context.Context, inputs []string) ([][]float32, error) {
	f.embedCalls = append(f.embedCalls, inputs)
	if f.embedFn != nil {
		return f.embedFn(ctx, inputs)
	}
	out := make([][]float32, len(inputs))
	for i := range inputs {
		out[i] = []float32{float32(i), 1}
	}
	return out, nil
}

func (f *fakeOpenAI) ChatComplete(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	f.chatCalls = append(f.chatCalls, messages)
	if f.chatFn != nil {
		return f.chatFn(ctx, messages)
	}
	return "answer", nil
}

type fakePinecone struct {
	describeFn func(ctx context.Context, indexName string) (*pinecone.IndexDescription, error)
	upsertFn   func(ctx context.Context, host string, req pinecone.UpsertRequest) (*pinecone.UpsertResponse, error)
	queryFn    func(ctx context.Context, host string, req pinecone.QueryRequest) (*pinecone.QueryResponse, error)
	deleteFn   func(ctx context.Context, host string, req pinecone.DeleteRequest) error
	statsFn    func(ctx context.Context, host string) (*pinecone.IndexStatsResponse, error)

	upsertCalls []pinecone.UpsertRequest
	queryCalls  []pinecone.QueryRequest
	deleteCalls []pinecone.DeleteRequest
}

var _ pinecone.Client = (*fakePinecone)(nil)

func (f *fakePinecone) DescribeIndex(ctx context.Context, indexName string) (*pinecone.IndexDescription, error) {
	if f.describeFn != nil {
		return f.describeFn(ctx, indexName)
	}
	return &pinecone.IndexDescription{Name: indexName, Host: "test-host.pinecone.io"}, nil
}

func (f *fakePinecone) UpsertVectors(ctx context.Context, host string, req pinecone.UpsertRequest) (*pinecone.UpsertResponse, error) {
	f.upsertCalls = append(f.upsertCalls, req)
	if f.upsertFn != nil {
		return f.upsertFn(ctx, host, req)
	}
	return &pinecone.UpsertResponse{UpsertedCount: int64(len(req.Vectors))}, nil
}

func (f *fakePinecone) Query(ctx context.Context, host string, req pinecone.QueryRequest) (*pinecone.QueryResponse, error) {
	f.queryCalls = append(f.queryCalls, req)
	if f.queryFn != nil {
		return f.queryFn(ctx, host, req)
	}
	return &pinecone.QueryResponse{}, nil
}

func (f *fakePinecone) DeleteVectors(ctx context.Context, host string, req pinecone.DeleteRequest) error {
	f.deleteCalls = append(f.deleteCalls, req)
	if f.deleteFn != nil {
		return f.deleteFn(ctx, host, req)
	}
	return nil
}

func (f *fakePinecone) DescribeIndexStats(ctx context.Context, host string) (*pinecone.IndexStatsResponse, error) {
	if f.statsFn != nil {
		return f.statsFn(ctx, host)
	}
	return &pinecone.IndexStatsResponse{TotalVectorCount: 42, Dimension: 2048}, nil
}

type fakeDocumentRepo struct {
	createErr error
	docs      map[uuid.UUID]*domain.Document
	created   []*domain.Document
	deleted   []uuid.UUID
	deleteErr error
}

var _ repos.DocumentRepo = (*fakeDocumentRepo)(nil)

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: map[uuid.UUID]*domain.Document{}}
}

func (f *fakeDocumentRepo) Create(_ context.Context, doc *domain.Document) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, doc)
	f.docs[doc.ID] = doc
	return nil
}

func (f *fakeDocumentRepo) List(_ context.Context) ([]*domain.Document, error) {
	out := make([]*domain.Document, 0, len(f.docs))
	for _, d := range f.docs {
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeDocumentRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Document, error) {
	if d, ok := f.docs[id]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("document %s: %w", id, apperr.ErrNotFound)
}

func (f *fakeDocumentRepo) DeleteByID(_ context.Context, id uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	delete(f.docs, id)
	return nil
}
