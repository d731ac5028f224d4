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
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/stylegest/internal/chunker"
	"github.com/dgallion1/stylegest/internal/config"
	"github.com/dgallion1/stylegest/internal/extract"
	"github.com/dgallion1/stylegest/internal/lexicon"
	"github.com/dgallion1/stylegest/internal/nlp"
	"github.com/dgallion1/stylegest/internal/pipeline"
	"github.com/dgallion1/stylegest/internal/report"
	"github.com/dgallion1/stylegest/internal/store"
)

const testKey = "test-key"

const samplePaper = `Introduction

We studied leaf tissue from forty plots across two seasons [1]. Prior work measured canopy light.

Results

The photosynthesis rate rose sharply in June. Leaf photosynthesis peaked near noon each day.

Discussion

These patterns suggest that canopy light may limit growth in dense stands of young trees.
`

func newTestServer(t *testing.T, ratePerMinute int) *Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := store.Open(filepath.Join(t.TempDir(), "reports.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	stats := extract.NewLatencyStats(time.Hour)
	ex := extract.NewExtractor(lexicon.Default(), nlp.FakeTagger{}, chunker.DefaultConfig(), stats, log)
	analyzer := pipeline.NewAnalyzer(nil, ex, report.DefaultLimits(), 2, log)
	orch := pipeline.NewOrchestrator(pipeline.OrchestratorConfig{Workers: 1, MaxQueueSize: 4}, analyzer, st, log)
	orch.Start(context.Background())
	t.Cleanup(orch.Stop)

	cfg := config.Config{
		StylegestAPIKey:      testKey,
		MaxUploadBytes:       1 << 20,
		AnalyzeRatePerMinute: ratePerMinute,
		DefaultJournalName:   "Target Journal",
	}
	return NewServer(orch, st, stats, log, cfg)
}

func do(t *testing.T, s *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	if req.Header.Get("Authorization") == "" {
		req.Header.Set("Authorization", "Bearer "+testKey)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func analyzeRequest(t *testing.T, journal string, files map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if journal != "" {
		mw.WriteField("journal_name", journal)
	}
	for name, content := range files {
		fw, err := mw.CreateFormFile("files", name)
		if err != nil {
			t.Fatal(err)
		}
		fw.Write([]byte(content))
	}
	mw.Close()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func waitForJob(t *testing.T, s *Server, jobID string) pipeline.JobSnapshot {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for {
		rec := do(t, s, httptest.NewRequest(http.MethodGet, "/api/analyze/"+jobID+"/status", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var snap pipeline.JobSnapshot
		if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
			t.Fatal(err)
		}
		switch snap.Status {
		case pipeline.StatusCompleted, pipeline.StatusPartial, pipeline.StatusFailed:
			return snap
		}
		if time.Now().After(deadline) {
			t.Fatalf("job %s still %s", jobID, snap.Status)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHealthIsPublic(t *testing.T) {
	s := newTestServer(t, 30)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("expected ok body, got %q", rec.Body.String())
	}
}

func TestAuthRequired(t *testing.T) {
	s := newTestServer(t, 30)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	if rec := do(t, s, req); rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 with wrong token, got %d", rec.Code)
	}
}

func TestAnalyzeLifecycle(t *testing.T) {
	s := newTestServer(t, 30)

	rec := do(t, s, analyzeRequest(t, "Plant Journal", map[string]string{
		"a.txt":     samplePaper,
		"notes.csv": "a,b",
	}))
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}
	var queued struct {
		JobID     string              `json:"job_id"`
		Documents int                 `json:"documents"`
		Rejected  []map[string]string `json:"rejected"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &queued); err != nil {
		t.Fatal(err)
	}
	if queued.Documents != 1 || len(queued.Rejected) != 1 {
		t.Errorf("expected 1 document and 1 rejected, got %d and %d", queued.Documents, len(queued.Rejected))
	}

	snap := waitForJob(t, s, queued.JobID)
	if snap.Status != pipeline.StatusCompleted {
		t.Fatalf("expected completed, got %s (%v)", snap.Status, snap.Progress.Errors)
	}
	if snap.ReportID == "" {
		t.Fatal("expected a report ID")
	}

	rec = do(t, s, httptest.NewRequest(http.MethodGet, "/api/reports/"+snap.ReportID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var rep report.StyleReport
	if err := json.Unmarshal(rec.Body.Bytes(), &rep); err != nil {
		t.Fatal(err)
	}
	if rep.Metadata.JournalName != "Plant Journal" || rep.Metadata.PapersAnalyzed != 1 {
		t.Errorf("unexpected metadata %+v", rep.Metadata)
	}

	rec = do(t, s, httptest.NewRequest(http.MethodGet, "/api/reports/"+snap.ReportID+"/summary", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.HasPrefix(rec.Body.String(), "# Plant Journal Style Summary") {
		t.Errorf("expected markdown summary, got %q", rec.Body.String())
	}

	rec = do(t, s, httptest.NewRequest(http.MethodGet, "/api/reports", nil))
	var list struct {
		Reports []store.Meta `json:"reports"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list.Reports) != 1 || list.Reports[0].ID != snap.ReportID {
		t.Errorf("expected the stored report listed, got %+v", list.Reports)
	}

	rec = do(t, s, httptest.NewRequest(http.MethodDelete, "/api/reports/"+snap.ReportID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on delete, got %d", rec.Code)
	}
	rec = do(t, s, httptest.NewRequest(http.MethodGet, "/api/reports/"+snap.ReportID, nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", rec.Code)
	}

	rec = do(t, s, httptest.NewRequest(http.MethodGet, "/api/stats/extract", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for stats, got %d", rec.Code)
	}
	var stats struct {
		Stats extract.StatsSnapshot `json:"stats"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatal(err)
	}
	if stats.Stats.Count == 0 {
		t.Error("expected recorded chunk extractions")
	}
}

func TestAnalyzeRejectsUnsupportedOnly(t *testing.T) {
	s := newTestServer(t, 30)
	rec := do(t, s, analyzeRequest(t, "", map[string]string{"data.csv": "a,b"}))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestAnalyzeRequiresFiles(t *testing.T) {
	s := newTestServer(t, 30)
	rec := do(t, s, analyzeRequest(t, "J", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestAnalyzeRateLimited(t *testing.T) {
	s := newTestServer(t, 1)
	files := map[string]string{"a.txt": samplePaper}
	if rec := do(t, s, analyzeRequest(t, "J", files)); rec.Code != http.StatusAccepted {
		t.Fatalf("expected first request accepted, got %d", rec.Code)
	}
	rec := do(t, s, analyzeRequest(t, "J", files))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}
}

func TestUnknownJobAndReport(t *testing.T) {
	s := newTestServer(t, 30)
	if rec := do(t, s, httptest.NewRequest(http.MethodGet, "/api/analyze/nope/status", nil)); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown job, got %d", rec.Code)
	}
	if rec := do(t, s, httptest.NewRequest(http.MethodGet, "/api/reports/nope/summary", nil)); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown report, got %d", rec.Code)
	}
	if rec := do(t, s, httptest.NewRequest(http.MethodDelete, "/api/reports/nope", nil)); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 deleting unknown report, got %d", rec.Code)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct{ in, want string }{
		{"paper.pdf", "paper.pdf"},
		{"../../etc/passwd.txt", "passwd.txt"},
		{`C:\docs\paper.docx`, "paper.docx"},
		{"", "unnamed"},
		{"a..b.txt", "a_b.txt"},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}
