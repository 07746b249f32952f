package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"docoutline/internal/config"
	"docoutline/internal/outline"
	"docoutline/internal/pipeline"
)

const testKey = "test-api-key"

func testCfg() config.Config {
	return config.Config{
		APIKey:         testKey,
		WorkerCount:    1,
		MaxQueueSize:   8,
		MaxUploadBytes: 1 << 20,
		MaxPages:       50,
		JobTTL:         time.Hour,
	}
}

func testServer(t *testing.T, cfg config.Config) *Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	orch := pipeline.NewOrchestrator(cfg, outline.DefaultConfig(), log)
	orch.Start(context.Background())
	t.Cleanup(orch.Stop)
	return NewServer(orch, log, cfg)
}

// multipartUpload builds a single-file multipart body.
func multipartUpload(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func authed(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer "+testKey)
	return req
}

func TestHealth_Public(t *testing.T) {
	srv := testServer(t, testCfg())

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != `{"status":"ok"}` {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestAuth_RejectsMissingAndWrongKey(t *testing.T) {
	srv := testServer(t, testCfg())

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without credentials, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.Header.Set("Authorization", "Bearer wrong-key")
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for wrong key, got %d", rec.Code)
	}
}

func TestExtract_SynchronousMarkdown(t *testing.T) {
	srv := testServer(t, testCfg())

	body, contentType := multipartUpload(t, "file", "report.md",
		[]byte("# Annual Report\n\n## Finance\n\n### Cash Flow\n"))
	req := authed(httptest.NewRequest(http.MethodPost, "/api/outline", body))
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var doc outline.Document
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("response is not a document: %v", err)
	}
	if doc.Title != "Annual Report" {
		t.Errorf("expected title %q, got %q", "Annual Report", doc.Title)
	}
	if len(doc.Outline) != 3 {
		t.Errorf("expected 3 outline entries, got %+v", doc.Outline)
	}
}

func TestExtract_UnsupportedExtension(t *testing.T) {
	srv := testServer(t, testCfg())

	body, contentType := multipartUpload(t, "file", "data.csv", []byte("a,b\n"))
	req := authed(httptest.NewRequest(http.MethodPost, "/api/outline", body))
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestExtract_UnreadableDocument(t *testing.T) {
	srv := testServer(t, testCfg())

	body, contentType := multipartUpload(t, "file", "broken.docx", []byte("not a zip"))
	req := authed(httptest.NewRequest(http.MethodPost, "/api/outline", body))
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestExtract_OversizedUpload(t *testing.T) {
	cfg := testCfg()
	cfg.MaxUploadBytes = 16
	srv := testServer(t, cfg)

	body, contentType := multipartUpload(t, "file", "big.md",
		[]byte("# A heading that is comfortably past sixteen bytes\n"))
	req := authed(httptest.NewRequest(http.MethodPost, "/api/outline", body))
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}
}

func TestBatchExtract_QueuesJobsAndCompletes(t *testing.T) {
	srv := testServer(t, testCfg())

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, content := range map[string]string{
		"one.md":   "# One\n",
		"bad.xlsx": "spreadsheet",
	} {
		fw, err := mw.CreateFormFile("files", name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		io.WriteString(fw, content)
	}
	mw.Close()

	req := authed(httptest.NewRequest(http.MethodPost, "/api/outline/batch", &buf))
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Jobs []struct {
			Filename string `json:"filename"`
			JobID    string `json:"job_id"`
			PollURL  string `json:"poll_url"`
			Error    string `json:"error"`
		} `json:"jobs"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if len(resp.Jobs) != 2 {
		t.Fatalf("expected 2 job slots, got %d", len(resp.Jobs))
	}

	var pollURL string
	for _, j := range resp.Jobs {
		switch j.Filename {
		case "one.md":
			if j.JobID == "" || j.PollURL == "" {
				t.Errorf("expected queued job for one.md, got %+v", j)
			}
			pollURL = j.PollURL
		case "bad.xlsx":
			if j.Error == "" {
				t.Errorf("expected in-line rejection for bad.xlsx, got %+v", j)
			}
		default:
			t.Errorf("unexpected filename %q", j.Filename)
		}
	}
	if pollURL == "" {
		t.Fatal("no poll URL for the queued job")
	}

	deadline := time.After(5 * time.Second)
	for {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, authed(httptest.NewRequest(http.MethodGet, pollURL, nil)))
		if rec.Code != http.StatusOK {
			t.Fatalf("poll: expected 200, got %d", rec.Code)
		}
		var snap pipeline.JobSnapshot
		if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
			t.Fatalf("poll: bad snapshot: %v", err)
		}
		if snap.Status == pipeline.StatusCompleted {
			if snap.Result == nil || snap.Result.Title != "One" {
				t.Fatalf("unexpected result: %+v", snap.Result)
			}
			break
		}
		if snap.Status == pipeline.StatusFailed {
			t.Fatalf("job failed: %v", snap.Errors)
		}
		select {
		case <-deadline:
			t.Fatalf("job never completed, last status %s", snap.Status)
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestJobStatus_NotFound(t *testing.T) {
	srv := testServer(t, testCfg())

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, authed(httptest.NewRequest(http.MethodGet, "/api/outline/jobs/no-such-job", nil)))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestStats_ReportsExtractionCounters(t *testing.T) {
	srv := testServer(t, testCfg())

	// One successful synchronous extraction feeds the counters.
	body, contentType := multipartUpload(t, "file", "doc.md", []byte("# Doc\n"))
	req := authed(httptest.NewRequest(http.MethodPost, "/api/outline", body))
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("extract: expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, authed(httptest.NewRequest(http.MethodGet, "/api/stats", nil)))
	if rec.Code != http.StatusOK {
		t.Fatalf("stats: expected 200, got %d", rec.Code)
	}

	var resp struct {
		QueueDepth int                    `json:"queue_depth"`
		Extraction pipeline.StatsSnapshot `json:"extraction"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad stats response: %v", err)
	}
	if resp.Extraction.DocsProcessed != 1 {
		t.Errorf("expected 1 processed doc, got %d", resp.Extraction.DocsProcessed)
	}
	if resp.Extraction.TitlesFound != 1 {
		t.Errorf("expected 1 title, got %d", resp.Extraction.TitlesFound)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"report.pdf", "report.pdf"},
		{"../../etc/passwd", "passwd"},
		{"dir/nested.md", "nested.md"},
		{"", "unnamed"},
		{".", "unnamed"},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, expected %q", tt.in, got, tt.want)
		}
	}
}
