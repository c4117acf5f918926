package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/akolanti/PDFSummarizer/internal/data/store"
	"github.com/akolanti/PDFSummarizer/internal/domain/jobModel"
	"github.com/akolanti/PDFSummarizer/internal/handlers"
	"github.com/akolanti/PDFSummarizer/internal/job"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	uploads := handlers.UploadConfig{Dir: t.TempDir(), MaxBytes: 1 << 20, RequestTimeout: time.Minute}
	handlers.InitJobHandler(job.InitJobService(job.ServiceConfig{
		JobChannel:        make(chan jobModel.Job, 1),
		DispatcherChannel: make(chan bool, 1),
		JobStore:          store.InitInMemoryJobStore(time.Hour),
	}), uploads)

	ts := httptest.NewServer(Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestRoutes(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		path   string
		status int
		body   string
	}{
		{"/", http.StatusOK, "PDF Summarizer"},
		{"/healthz", http.StatusOK, `"ok"`},
		{"/api/status/unknown", http.StatusNotFound, "Job not found"},
		{"/metrics", http.StatusOK, "http_requests_total"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			res, err := http.Get(ts.URL + tt.path)
			if err != nil {
				t.Fatal(err)
			}
			defer res.Body.Close()
			buf := new(strings.Builder)
			if _, err := io.Copy(buf, res.Body); err != nil {
				t.Fatal(err)
			}
			if res.StatusCode != tt.status {
				t.Errorf("status got %d, want %d", res.StatusCode, tt.status)
			}
			if !strings.Contains(buf.String(), tt.body) {
				t.Errorf("body missing %q", tt.body)
			}
		})
	}
}

func TestAPI_CORSPreflight(t *testing.T) {
	ts := newTestServer(t)

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/api/summarize", nil)
	req.Header.Set("Origin", "https://example.org")
	req.Header.Set("Access-Control-Request-Method", "POST")
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()

	if got := res.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("allow origin got %q", got)
	}
}
