package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/brewpulse/backend/internal/models"
	"github.com/brewpulse/backend/internal/service"
	"github.com/brewpulse/backend/internal/snapshot"
)

func newTestHandler() (*Handler, *snapshot.Cache) {
	cache := snapshot.NewCache(0)
	return &Handler{
		Cache:           cache,
		Loader:          &service.Loader{Cache: cache, Logger: zerolog.Nop()},
		Validator:       validator.New(),
		Logger:          zerolog.Nop(),
		MaxUploadSizeMB: 50,
	}, cache
}

func TestUploadDatasetLoadsRecords(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, cache := newTestHandler()

	r := gin.New()
	r.POST("/api/datasets", h.UploadDataset)

	body, contentType := makeMultipartBody(t, "report", "report.csv",
		"Check,Status,Priority,Date Created\n\"T1\",\"Open\",\"High Risk\",\"2025-01-01\"\n")
	req, _ := http.NewRequest(http.MethodPost, "/api/datasets", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var summary models.LoadSummary
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.RecordsKept != 1 {
		t.Fatalf("expected 1 record kept, got %+v", summary)
	}
	if cache.RecordCount() != 1 {
		t.Fatalf("upload must replace the cache")
	}
}

func TestUploadDatasetRejectsNonCSV(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, _ := newTestHandler()

	r := gin.New()
	r.POST("/api/datasets", h.UploadDataset)

	body, contentType := makeMultipartBody(t, "report", "report.xlsx", "not a csv")
	req, _ := http.NewRequest(http.MethodPost, "/api/datasets", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-csv upload, got %d", w.Code)
	}
}

func TestDashboardScenario(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, _ := newTestHandler()
	h.Loader.LoadCSV("Check,Status,Priority,Date Created\n\"T1\",\"Open\",\"High Risk\",\"2025-01-01\"\n", "inline")

	r := gin.New()
	r.GET("/api/dashboard", h.Dashboard)
	req, _ := http.NewRequest(http.MethodGet, "/api/dashboard", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var snap models.MetricsSnapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.TotalComplaints != 1 || snap.OpenComplaints != 1 {
		t.Fatalf("unexpected counts: %+v", snap)
	}
	if snap.EscalationRate != 100 {
		t.Fatalf("escalationRate = %.1f, want 100", snap.EscalationRate)
	}
}

func TestValidationMatchesSnapshotVerdict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, _ := newTestHandler()
	h.Loader.LoadCSV("Check,Status,Date Created\n\"T1\",\"Open\",\"2025-01-01\"\n", "inline")

	r := gin.New()
	r.GET("/api/validation", h.Validation)
	r.GET("/api/dashboard", h.Dashboard)

	req, _ := http.NewRequest(http.MethodGet, "/api/validation", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var verdict models.ValidationResult
	if err := json.Unmarshal(w.Body.Bytes(), &verdict); err != nil {
		t.Fatalf("decode verdict: %v", err)
	}

	req, _ = http.NewRequest(http.MethodGet, "/api/dashboard", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var snap models.MetricsSnapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}

	if verdict.IsValid != snap.Validation.IsValid || len(verdict.Issues) != len(snap.Validation.Issues) {
		t.Fatalf("validation endpoint diverges from snapshot: %+v vs %+v", verdict, snap.Validation)
	}
}

func TestDataStatusPredicate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, _ := newTestHandler()

	r := gin.New()
	r.GET("/api/data-status", h.DataStatus)
	req, _ := http.NewRequest(http.MethodGet, "/api/data-status", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["sufficient_real_data"] != false {
		t.Fatalf("empty cache must report insufficient data: %v", resp)
	}
}

func TestFetchDatasetRejectsBadURL(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, _ := newTestHandler()

	r := gin.New()
	r.POST("/api/datasets/fetch", h.FetchDataset)
	req, _ := http.NewRequest(http.MethodPost, "/api/datasets/fetch", bytes.NewBufferString(`{"url":"not a url"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid url, got %d", w.Code)
	}
}

func makeMultipartBody(t *testing.T, fieldName, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(fieldName, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write content: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}
