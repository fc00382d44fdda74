package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/reviewlens/backend/internal/config"
	"github.com/reviewlens/backend/internal/services"
)

// stubQueue records enqueued tasks without processing them.
type stubQueue struct {
	tasks []*services.AnalysisTask
}

func (q *stubQueue) Enqueue(task *services.AnalysisTask) error {
	q.tasks = append(q.tasks, task)
	return nil
}
func (q *stubQueue) IsAsync() bool { return false }
func (q *stubQueue) Close() error  { return nil }

func multipartBody(t *testing.T, field string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, content := range files {
		fw, err := w.CreateFormFile(field, name)
		if err != nil {
			t.Fatalf("failed to build form: %v", err)
		}
		fw.Write([]byte(content))
	}
	w.Close()
	return &buf, w.FormDataContentType()
}

func newBatchRouter(t *testing.T, queue services.TaskQueue) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handler := NewAnalyzeHandler(nil, queue, &config.UploadConfig{MaxFileSizeMB: 1})
	router := gin.New()
	router.POST("/api/batch-review", handler.BatchReview)
	return router
}

func TestBatchReviewQueuesFiles(t *testing.T) {
	queue := &stubQueue{}
	router := newBatchRouter(t, queue)

	body, contentType := multipartBody(t, "files", map[string]string{
		"a.py": "print('hi')",
		"b.go": "package main",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/batch-review", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", w.Code, w.Body.String())
	}
	if len(queue.tasks) != 2 {
		t.Errorf("expected 2 queued tasks, got %d", len(queue.tasks))
	}

	var resp struct {
		Data struct {
			Accepted []struct {
				Filename string `json:"filename"`
				TaskID   string `json:"task_id"`
			} `json:"accepted"`
			Rejected []struct{} `json:"rejected"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(resp.Data.Accepted) != 2 {
		t.Fatalf("expected 2 accepted entries, got %d", len(resp.Data.Accepted))
	}
	for _, entry := range resp.Data.Accepted {
		if entry.TaskID == "" {
			t.Errorf("expected task id for %s", entry.Filename)
		}
	}
}

func TestBatchReviewRejectsBadFilesIndividually(t *testing.T) {
	queue := &stubQueue{}
	router := newBatchRouter(t, queue)

	body, contentType := multipartBody(t, "files", map[string]string{
		"good.py":  "print('hi')",
		"bad.docx": "not source code",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/batch-review", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202 with partial rejection, got %d", w.Code)
	}
	if len(queue.tasks) != 1 {
		t.Errorf("expected only the valid file queued, got %d", len(queue.tasks))
	}

	var resp struct {
		Data struct {
			Accepted []struct {
				Filename string `json:"filename"`
			} `json:"accepted"`
			Rejected []struct {
				Filename string `json:"filename"`
				Error    string `json:"error"`
			} `json:"rejected"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(resp.Data.Rejected) != 1 || resp.Data.Rejected[0].Filename != "bad.docx" {
		t.Fatalf("expected bad.docx rejected, got %+v", resp.Data.Rejected)
	}
	if resp.Data.Rejected[0].Error == "" {
		t.Error("expected a rejection reason")
	}
}

func TestBatchReviewNoFiles(t *testing.T) {
	queue := &stubQueue{}
	router := newBatchRouter(t, queue)

	body, contentType := multipartBody(t, "files", nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/batch-review", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty batch, got %d", w.Code)
	}
}
