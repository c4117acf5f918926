package handlers

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/akolanti/PDFSummarizer/internal/adapter/utils"
	"github.com/akolanti/PDFSummarizer/internal/domain/jobModel"
	"github.com/akolanti/PDFSummarizer/internal/summarize"
	"github.com/akolanti/PDFSummarizer/pkg/logger_i"
)

//go:embed templates/form.html
var templateFS embed.FS

var formTemplate = template.Must(template.ParseFS(templateFS, "templates/form.html"))

var (
	formSummarizer summarize.Service
	formUploads    UploadConfig
	logFH          *logger_i.Logger
)

type formPage struct {
	ChunkPrompt    string
	CombinePrompt  string
	UseRefine      bool
	Summary        string
	ChunkSummaries string
}

func InitFormHandler(summarizer summarize.Service, uploads UploadConfig) {
	formSummarizer = summarizer
	formUploads = uploads
	initLoggers()
}

// FormHandler renders the empty form with the map reduce prompts.
func FormHandler(w http.ResponseWriter, r *http.Request) {
	chunk, combine := summarize.DefaultPrompts(false)
	renderForm(w, http.StatusOK, formPage{ChunkPrompt: chunk, CombinePrompt: combine})
}

// SubmitFormHandler summarizes the uploaded document while the browser waits and
// renders the page again with both outputs.
func SubmitFormHandler(w http.ResponseWriter, r *http.Request) {
	log := logFH.With("traceId", utils.TraceID(r.Context()))

	r.Body = http.MaxBytesReader(w, r.Body, formUploads.MaxBytes)
	if err := r.ParseMultipartForm(formUploads.MaxBytes); err != nil {
		log.Warn("Bad form submission", "error", err)
		renderForm(w, http.StatusBadRequest, errorPage(formPage{}, errors.New("file too large or bad request")))
		return
	}

	req := summaryRequestFromForm(r)
	page := formPage{
		ChunkPrompt:   req.ChunkPrompt,
		CombinePrompt: req.CombinePrompt,
		UseRefine:     req.UseRefine,
	}

	path, name, err := saveUpload(r, formUploads.Dir)
	if err != nil && !errors.Is(err, errNoDocument) {
		log.Error("Couldn't store upload", "error", err)
		renderForm(w, http.StatusInternalServerError, errorPage(page, err))
		return
	}
	defer removeUpload(path)
	req.DocumentPath = path
	req.DocumentName = name

	ctx := r.Context()
	if formUploads.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, formUploads.RequestTimeout)
		defer cancel()
	}

	outcome := formSummarizer.Summarize(ctx, req)
	if outcome.Failed() {
		page.Summary = outcome.Err.Display()
		renderForm(w, http.StatusOK, page)
		return
	}
	page.Summary = outcome.Summary
	page.ChunkSummaries = outcome.StepsText()
	renderForm(w, http.StatusOK, page)
}

func errorPage(page formPage, err error) formPage {
	page.Summary = jobModel.JobError{Message: err.Error()}.Display()
	page.ChunkSummaries = ""
	return page
}

func renderForm(w http.ResponseWriter, status int, page formPage) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := formTemplate.Execute(w, page); err != nil {
		logFH.Error("Error rendering form", "error", err)
	}
}
