package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hrdesk/assistant-backend/internal/domain"
	"github.com/hrdesk/assistant-backend/internal/pkg/apperr"
)

func newDocumentRouter(t *testing.T, docs *fakeDocuments) *gin.Engine {
	t.Helper()
	h := NewDocumentHandler(testLogger(t), docs)
	r := gin.New()
	r.GET("/api/documents", h.List)
	r.DELETE("/api/documents/:id", h.Delete)
	return r
}

func TestDocumentList(t *testing.T) {
	docs := &fakeDocuments{
		listFn: func(context.Context) ([]*domain.Document, error) {
			return []*domain.Document{
				{ID: uuid.New(), Filename: "handbook.pdf", ChunkCount: 12, UploadedAt: time.Now().UTC()},
				{ID: uuid.New(), Filename: "benefits.docx", ChunkCount: 4, UploadedAt: time.Now().UTC()},
			}, nil
		},
	}
	r := newDocumentRouter(t, docs)

	req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: want=200 got=%d", w.Code)
	}
	body := decodeBody(t, w)
	if body["count"] != float64(2) {
		t.Fatalf("count: got %v", body["count"])
	}
	documents := body["documents"].([]any)
	if len(documents) != 2 {
		t.Fatalf("documents: got %d", len(documents))
	}
}

func TestDocumentListEmpty(t *testing.T) {
	r := newDocumentRouter(t, &fakeDocuments{})

	req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: want=200 got=%d", w.Code)
	}
	if body := decodeBody(t, w); body["count"] != float64(0) {
		t.Fatalf("count: got %v", body["count"])
	}
}

func TestDocumentDelete(t *testing.T) {
	id := uuid.New()
	docs := &fakeDocuments{
		deleteFn: func(_ context.Context, got uuid.UUID) (int, error) {
			if got != id {
				t.Fatalf("id: want=%s got=%s", id, got)
			}
			return 7, nil
		},
	}
	r := newDocumentRouter(t, docs)

	req := httptest.NewRequest(http.MethodDelete, "/api/documents/"+id.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: want=200 got=%d", w.Code)
	}
	if body := decodeBody(t, w); body["vectorsDeleted"] != float64(7) {
		t.Fatalf("vectorsDeleted: got %v", body["vectorsDeleted"])
	}
}

func TestDocumentDeleteBadID(t *testing.T) {
	r := newDocumentRouter(t, &fakeDocuments{})

	req := httptest.NewRequest(http.MethodDelete, "/api/documents/not-a-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: want=400 got=%d", w.Code)
	}
}

func TestDocumentDeleteNotFound(t *testing.T) {
	docs := &fakeDocuments{
		deleteFn: func(_ context.Context, id uuid.UUID) (int, error) {
			return 0, fmt.Errorf("document %s: %w", id, apperr.ErrNotFound)
		},
	}
	r := newDocumentRouter(t, docs)

	req := httptest.NewRequest(http.MethodDelete, "/api/documents/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status: want=404 got=%d", w.Code)
	}
}

func TestDocumentDeleteStoreFailure(t *testing.T) {
	docs := &fakeDocuments{
		deleteFn: func(context.Context, uuid.UUID) (int, error) {
			return 0, fmt.Errorf("delete vectors: store unavailable")
		},
	}
	r := newDocumentRouter(t, docs)

	req := httptest.NewRequest(http.MethodDelete, "/api/documents/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status: want=500 got=%d", w.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	h := NewHealthHandler()
	r := gin.New()
	r.GET("/health", h.HealthCheck)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: want=200 got=%d", w.Code)
	}
	if body := decodeBody(t, w); body["status"] != "OK" {
		t.Fatalf("status field: got %v", body["status"])
	}
}
