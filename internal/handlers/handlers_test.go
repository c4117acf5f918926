package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/akolanti/PDFSummarizer/internal/api"
	"github.com/akolanti/PDFSummarizer/internal/data/store"
	"github.com/akolanti/PDFSummarizer/internal/domain/jobModel"
	"github.com/akolanti/PDFSummarizer/internal/job"
	"github.com/go-chi/chi/v5"
)

var testJobService *job.Service

func TestMain(m *testing.M) {
	uploadDir, err := os.MkdirTemp("", "summarizer-uploads")
	if err != nil {
		panic(err)
	}
	uploads := UploadConfig{Dir: uploadDir, MaxBytes: 1 << 20, RequestTimeout: time.Minute}

	testJobService = job.InitJobService(job.ServiceConfig{
		JobChannel:        make(chan jobModel.Job, 20),
		DispatcherChannel: make(chan bool, 20),
		JobStore:          store.InitInMemoryJobStore(time.Hour),
	})
	InitJobHandler(testJobService, uploads)
	InitFormHandler(&mockSummarizer{}, uploads)

	code := m.Run()
	os.RemoveAll(uploadDir)
	os.Exit(code)
}

type mockSummarizer struct {
	OnSummarize func(ctx context.Context, req jobModel.SummaryRequest) jobModel.SummaryOutcome
}

func (m *mockSummarizer) Summarize(ctx context.Context, req jobModel.SummaryRequest) jobModel.SummaryOutcome {
	if m.OnSummarize != nil {
		return m.OnSummarize(ctx, req)
	}
	return jobModel.Succeeded("mocked summary", []string{"mocked chunk"})
}

func (m *mockSummarizer) ProcessJob(ctx context.Context, j jobModel.Job) jobModel.Job {
	return j
}

func withSummarizer(t *testing.T, s *mockSummarizer) {
	t.Helper()
	previous := formSummarizer
	formSummarizer = s
	t.Cleanup(func() { formSummarizer = previous })
}

// multipartBody builds a form with the given fields and, when fileName is set, a document upload.
func multipartBody(t *testing.T, fields map[string]string, fileName string, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if fileName != "" {
		part, err := writer.CreateFormFile("document", fileName)
		if err != nil {
			t.Fatal(err)
		}
		part.Write([]byte(content))
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}
	return body, writer.FormDataContentType()
}

func drainJobs() {
	for {
		select {
		case <-testJobService.JobChannel:
		default:
			return
		}
	}
}

func TestFormHandler_RendersDefaults(t *testing.T) {
	rec := httptest.NewRecorder()
	FormHandler(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"Write a summary of this chunk of text",
		"BULLET POINT SUMMARY:",
		`name="use_refine"`,
		`onchange="this.form.submit()"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("form is missing %q", want)
		}
	}
	if strings.Contains(body, " checked") {
		t.Error("refine should start unticked")
	}
}

func TestSubmitFormHandler_Success(t *testing.T) {
	var got jobModel.SummaryRequest
	var existed bool
	withSummarizer(t, &mockSummarizer{
		OnSummarize: func(ctx context.Context, req jobModel.SummaryRequest) jobModel.SummaryOutcome {
			got = req
			_, err := os.Stat(req.DocumentPath)
			existed = err == nil
			return jobModel.Succeeded("the final summary", []string{"first step", "second step"})
		},
	})

	body, contentType := multipartBody(t, map[string]string{
		"chunk_prompt":   "Chunk {text}",
		"combine_prompt": "Combine {text}",
		"use_refine":     "on",
	}, "notes.txt", "some notes")
	req := httptest.NewRequest(http.MethodPost, "/summarize", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	SubmitFormHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status got %d", rec.Code)
	}
	if !got.UseRefine || got.ChunkPrompt != "Chunk {text}" || got.CombinePrompt != "Combine {text}" || got.DocumentName != "notes.txt" {
		t.Errorf("request got %+v", got)
	}
	if !existed {
		t.Error("upload was not on disk while summarizing")
	}
	if _, err := os.Stat(got.DocumentPath); !os.IsNotExist(err) {
		t.Error("upload was not removed after summarizing")
	}

	out := rec.Body.String()
	if !strings.Contains(out, "the final summary") || !strings.Contains(out, "first step\nsecond step") {
		t.Errorf("outputs missing from page: %s", out)
	}
	if !strings.Contains(out, "Chunk {text}") || !strings.Contains(out, " checked") {
		t.Error("submitted values were not kept")
	}
}

func TestSubmitFormHandler_Error(t *testing.T) {
	withSummarizer(t, &mockSummarizer{
		OnSummarize: func(ctx context.Context, req jobModel.SummaryRequest) jobModel.SummaryOutcome {
			return jobModel.Failed(jobModel.NewJobError(jobModel.ErrKindLLMBackend, errors.New("quota exceeded"), false))
		},
	})

	body, contentType := multipartBody(t, map[string]string{"chunk_prompt": "{text}"}, "doc.pdf", "%PDF-1.4")
	req := httptest.NewRequest(http.MethodPost, "/summarize", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	SubmitFormHandler(rec, req)

	out := rec.Body.String()
	if !strings.Contains(out, "Error! #quota exceeded") {
		t.Errorf("error not rendered: %s", out)
	}
	if strings.Contains(out, "mocked chunk") {
		t.Error("second output should be empty on error")
	}
}

func TestSubmitFormHandler_NoDocument(t *testing.T) {
	called := false
	withSummarizer(t, &mockSummarizer{
		OnSummarize: func(ctx context.Context, req jobModel.SummaryRequest) jobModel.SummaryOutcome {
			called = true
			if req.DocumentPath != "" {
				t.Errorf("unexpected path %q", req.DocumentPath)
			}
			return jobModel.Failed(jobModel.NewJobError(jobModel.ErrKindInvalidRequest, errNoDocument, false))
		},
	})

	body, contentType := multipartBody(t, map[string]string{"chunk_prompt": "{text}"}, "", "")
	req := httptest.NewRequest(http.MethodPost, "/summarize", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	SubmitFormHandler(rec, req)

	if !called {
		t.Fatal("summarizer was not called")
	}
	if !strings.Contains(rec.Body.String(), "Error! #no document was provided") {
		t.Errorf("error not rendered: %s", rec.Body.String())
	}
}

func TestPostSummarizeHandler_QueuesJob(t *testing.T) {
	drainJobs()
	body, contentType := multipartBody(t, map[string]string{"use_refine": "true"}, "report.pdf", "%PDF-1.4")
	req := httptest.NewRequest(http.MethodPost, "/api/summarize", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	PostSummarizeHandler(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status got %d: %s", rec.Code, rec.Body.String())
	}
	var res api.InitJobResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if res.Id == "" || res.StatusURL != "/api/status/"+res.Id {
		t.Errorf("response got %+v", res)
	}

	select {
	case queued := <-testJobService.JobChannel:
		defer os.Remove(queued.Request.DocumentPath)
		if queued.Id != res.Id || !queued.Request.UseRefine || queued.Request.DocumentName != "report.pdf" {
			t.Errorf("queued job got %+v", queued)
		}
		if queued.Status != jobModel.JobStatusQueued {
			t.Errorf("status got %s", queued.Status)
		}
	default:
		t.Fatal("no job was queued")
	}

	// the queued job can be polled
	router := chi.NewRouter()
	router.Get("/api/status/{id}", GetStatusHandler)
	statusRec := httptest.NewRecorder()
	router.ServeHTTP(statusRec, httptest.NewRequest(http.MethodGet, res.StatusURL, nil))

	if statusRec.Code != http.StatusOK {
		t.Fatalf("status poll got %d", statusRec.Code)
	}
	var status api.JobResponse
	if err := json.NewDecoder(statusRec.Body).Decode(&status); err != nil {
		t.Fatal(err)
	}
	if status.Status != string(jobModel.JobStatusQueued) || status.Result != nil {
		t.Errorf("status got %+v", status)
	}
}

func TestPostSummarizeHandler_BadRequests(t *testing.T) {
	tests := []struct {
		name     string
		fields   map[string]string
		fileName string
		wantKind string
	}{
		{"prompt without text", map[string]string{"chunk_prompt": "Summarize it"}, "doc.pdf", "PROMPT_TEMPLATE"},
		{"no document", map[string]string{}, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drainJobs()
			body, contentType := multipartBody(t, tt.fields, tt.fileName, "content")
			req := httptest.NewRequest(http.MethodPost, "/api/summarize", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()

			PostSummarizeHandler(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status got %d", rec.Code)
			}
			var res api.JobResponse
			if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
				t.Fatal(err)
			}
			if res.Error == nil || res.Error.Kind != tt.wantKind {
				t.Errorf("error got %+v", res.Error)
			}
			if len(testJobService.JobChannel) != 0 {
				t.Error("a bad request must not queue a job")
			}
		})
	}
}

func TestGetStatusHandler_Complete(t *testing.T) {
	ctx := context.Background()
	done := jobModel.Job{
		Id:      "done-job",
		Status:  jobModel.JobStatusComplete,
		Request: jobModel.SummaryRequest{DocumentName: "a.pdf"},
		Outcome: jobModel.Succeeded("all done", []string{"all done"}),
	}
	if err := testJobService.JobStore.SaveJob(ctx, done); err != nil {
		t.Fatal(err)
	}

	router := chi.NewRouter()
	router.Get("/api/status/{id}", GetStatusHandler)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status/done-job", nil))

	var res api.JobResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if res.Result == nil || res.Result.Summary != "all done" || res.Result.Strategy != jobModel.StrategyMapReduce {
		t.Errorf("result got %+v", res.Result)
	}
}

func TestGetStatusHandler_NotFound(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/api/status/{id}", GetStatusHandler)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status/ghost", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status got %d", rec.Code)
	}
}

func TestGetHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	GetHandler(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("got %d %s", rec.Code, rec.Body.String())
	}
}

func TestParseCheckbox(t *testing.T) {
	for value, want := range map[string]bool{"on": true, "true": true, "1": true, "": false, "off": false, "false": false} {
		if got := parseCheckbox(value); got != want {
			t.Errorf("parseCheckbox(%q) got %v", value, got)
		}
	}
}
