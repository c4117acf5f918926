package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/akolanti/PDFSummarizer/internal/adapter/utils"
	"github.com/akolanti/PDFSummarizer/internal/domain/jobModel"
	"github.com/akolanti/PDFSummarizer/internal/job"
	"github.com/akolanti/PDFSummarizer/pkg/logger_i"
)

var (
	handlerInstance *JobHandler //private singleton
	once            sync.Once
	logJH           *logger_i.Logger
	loggerOnce      sync.Once
)

type JobHandler struct {
	service *job.Service
	uploads UploadConfig
}

// UploadConfig is shared by the job api and the form.
type UploadConfig struct {
	Dir            string
	MaxBytes       int64
	RequestTimeout time.Duration
}

func InitJobHandler(jobService *job.Service, uploads UploadConfig) {
	once.Do(func() {
		handlerInstance = &JobHandler{service: jobService, uploads: uploads}

		initLoggers()
		logJH.Info("Starting job handler")
	})
}

func CreateNewJob(newJob newJobData) {
	log := logJH.With("traceId", newJob.traceId, "job id", newJob.id)
	log.Info("To create new job")
	handlerInstance.pushToJobChannel(newJob, log)
}

func GetJobStatus(id string, traceId string) (result jobModel.Job, isFound bool) {
	ctxC := utils.WithTraceID(context.Background(), traceId)
	if handlerInstance != nil {
		return handlerInstance.service.Status(ctxC, id)
	}
	return result, false
}

// private methods
func (h *JobHandler) pushToJobChannel(newJob newJobData, log *logger_i.Logger) {
	_job := jobModel.Job{
		Id:          newJob.id,
		TraceId:     newJob.traceId,
		Request:     newJob.request,
		CreatedTime: time.Now(),
		Status:      jobModel.JobStatusQueued,
		CurrentStep: jobModel.SummaryInit,
	}

	ctxC := utils.WithTraceID(context.Background(), newJob.traceId)
	signalled, err := h.service.Enqueue(ctxC, _job)
	if err != nil {
		log.Error("Failed to save queued job", "error", err)
	}
	if signalled {
		log.Debug("Signalled dispatcher for a new worker")
	}
	log.Info("Created new job")
}

func initLoggers() {
	loggerOnce.Do(func() {
		logJH = logger_i.NewLogger("JobHandler")
		logRH = logger_i.NewLogger("RequestHandler")
		logFH = logger_i.NewLogger("FormHandler")
	})
}
