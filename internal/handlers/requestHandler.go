package handlers

import (
	"errors"
	"net/http"

	"github.com/akolanti/PDFSummarizer/internal/adapter"
	"github.com/akolanti/PDFSummarizer/internal/adapter/utils"
	"github.com/akolanti/PDFSummarizer/internal/api"
	"github.com/akolanti/PDFSummarizer/internal/domain/jobModel"
	"github.com/akolanti/PDFSummarizer/internal/summarize"
	"github.com/akolanti/PDFSummarizer/pkg/logger_i"
)

var logRH *logger_i.Logger

type newJobData struct {
	id      string
	traceId string
	request jobModel.SummaryRequest
}

// GetHandler godoc
// @Summary      Health check
// @Tags         Health
// @Produce      json
// @Success      200  {object}  api.HealthResponse
// @Router       /healthz [get]
func GetHandler(w http.ResponseWriter, r *http.Request) {
	writeJsonResponse(w, http.StatusOK, api.HealthResponse{Status: "ok"})
}

// PostSummarizeHandler godoc
// @Summary      Summarize a document
// @Description  Uploads a PDF, DOCX, ODT, RTF or TXT file and queues a summary job. Poll the returned status url for the result.
// @Tags         Summaries
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        document        formData  file    true   "The document to summarize"
// @Param        chunk_prompt    formData  string  false  "Prompt applied to every chunk, must contain {text}"
// @Param        combine_prompt  formData  string  false  "Prompt that combines the chunk summaries, must contain {text}"
// @Param        use_refine      formData  bool    false  "Use the refine strategy instead of map reduce"
// @Success      202  {object}  api.InitJobResponse  "Job successfully created"
// @Failure      400  {object}  api.JobResponse      "Missing document, bad prompt or file too large"
// @Failure      401  {object}  api.JobResponse      "Missing or invalid bearer token"
// @Failure      500  {object}  api.JobResponse      "Storage or write error"
// @Router       /api/summarize [post]
func PostSummarizeHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request", "remote", r.RemoteAddr)
		return
	}
	log := logRH.With("traceId", utils.TraceID(r.Context()))
	uploads := handlerInstance.uploads

	r.Body = http.MaxBytesReader(w, r.Body, uploads.MaxBytes)
	if err := r.ParseMultipartForm(uploads.MaxBytes); err != nil {
		log.Warn("Bad summarize request", "error", err)
		WriteErrorResponse(w, http.StatusBadRequest, "", "File too large or bad request")
		return
	}

	req := summaryRequestFromForm(r)
	if _, err := summarize.PromptsFor(req); err != nil {
		writeJsonResponse(w, http.StatusBadRequest, api.JobResponse{
			Status: string(api.JobStatusError),
			Error:  adapter.ToOutgoingError(jobModel.NewJobError(jobModel.ErrKindPromptTemplate, err, false)),
		})
		return
	}

	path, name, err := saveUpload(r, uploads.Dir)
	if err != nil {
		if errors.Is(err, errNoDocument) {
			WriteErrorResponse(w, http.StatusBadRequest, "", "document is required")
			return
		}
		log.Error("Couldn't store upload", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "", "Storage error")
		return
	}
	req.DocumentPath = path
	req.DocumentName = name

	newJob := newJobData{
		id:      utils.GetNewUUID(),
		traceId: utils.TraceID(r.Context()),
		request: req,
	}
	CreateNewJob(newJob)
	writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(newJob.id))
}

// GetStatusHandler godoc
// @Summary      Get job status
// @Description  Retrieves the status of a summary job, with the summary and the per chunk summaries once it is complete.
// @Tags         Summaries
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  api.JobResponse   "Current state of the job"
// @Failure      404  {object}  api.JobResponse   "Job not found"
// @Router       /api/status/{id} [get]
func GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	idString := utils.GetChiURLParam(r, "id")
	logRH.Debug("Get Status Request", "URL path", r.URL.Path)

	result, isFound := validateId(idString, utils.TraceID(r.Context()))
	if !isFound {
		WriteErrorResponse(w, http.StatusNotFound, idString, "Job not found")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToAPIResponse(result))
}
