package worker

import (
	"context"
	"time"

	"github.com/akolanti/PDFSummarizer/internal/adapter/utils"
	jobmodel "github.com/akolanti/PDFSummarizer/internal/domain/jobModel"
	"github.com/akolanti/PDFSummarizer/internal/metrics"
)

// store writes get their own short deadline so a job that ran out of time is still recorded
const saveTimeout = 5 * time.Second

func executeJob(job jobmodel.Job) {
	start := time.Now()
	defer func() {
		metrics.CaptureExecutionMetrics("job_total", time.Since(start))
	}()
	ctxTrace := utils.WithTraceID(context.Background(), job.TraceId)
	log := logger.With("traceId", job.TraceId, "jobId", job.Id)
	log.Debug("Processing job")

	job.Status = jobmodel.JobStatusRunning
	job.CurrentStep = jobmodel.DocumentLoad
	saveJobState(ctxTrace, job)

	ctx := ctxTrace
	if jobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctxTrace, jobTimeout)
		defer cancel()
	}
	job = _summarizer.ProcessJob(ctx, job)

	saveJobState(ctxTrace, job)
	log.Info("Job finished", "status", job.Status)
}

func removeWorker(reason string) {
	workerWaitGroup.Done()
	metrics.DecrementActiveWorkerCount()
	logger.Info("Removed worker", "reason", reason)
}

func saveJobState(ctx context.Context, job jobmodel.Job) {
	ctx, cancel := context.WithTimeout(ctx, saveTimeout)
	defer cancel()
	if err := _jobService.JobStore.SaveJob(ctx, job); err != nil {
		logger.Error("Failed to save job state", "jobId", job.Id, "err", err)
	}
}
