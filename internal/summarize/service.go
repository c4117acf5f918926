package summarize

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/akolanti/PDFSummarizer/internal/adapter/utils"
	"github.com/akolanti/PDFSummarizer/internal/domain/commonModels"
	"github.com/akolanti/PDFSummarizer/internal/domain/jobModel"
	"github.com/akolanti/PDFSummarizer/internal/llm"
	"github.com/akolanti/PDFSummarizer/internal/loader"
	"github.com/akolanti/PDFSummarizer/internal/metrics"
	"github.com/akolanti/PDFSummarizer/internal/prompt"
	"github.com/akolanti/PDFSummarizer/pkg/logger_i"
)

// Service is all the handlers, the worker and the mcp server see. The loader and
// the llm stay behind it so tests can hand in mocks.
type Service interface {
	Summarize(ctx context.Context, req jobModel.SummaryRequest) jobModel.SummaryOutcome
	ProcessJob(ctx context.Context, job jobModel.Job) jobModel.Job
}

type service struct {
	loader      loader.Loader
	llmProvider llm.Provider
	opts        Options
	logger      *logger_i.Logger
}

func NewService(l loader.Loader, provider llm.Provider, opts Options) Service {
	return &service{
		loader:      l,
		llmProvider: provider,
		opts:        opts,
		logger:      logger_i.NewLogger("Summarize Service"),
	}
}

func (s *service) Summarize(ctx context.Context, req jobModel.SummaryRequest) jobModel.SummaryOutcome {
	start := time.Now()
	strategy := ForFlag(req.UseRefine, s.opts)
	log := s.logger.With("traceId", utils.TraceID(ctx), "strategy", strategy.Name(), "document", req.DocumentName)

	outcome := s.run(ctx, log, strategy, req)

	result := "success"
	if outcome.Failed() {
		result = string(outcome.Err.Kind)
	}
	metrics.CountSummary(strategy.Name(), result)
	metrics.CaptureJobMetrics(result, time.Since(start))
	log.Info("Summarize finished", "result", result, "took", time.Since(start))
	return outcome
}

func (s *service) run(ctx context.Context, log *logger_i.Logger, strategy Strategy, req jobModel.SummaryRequest) jobModel.SummaryOutcome {
	if req.DocumentPath == "" {
		return s.failure(log, jobModel.ErrKindInvalidRequest, errors.New("no document was provided"), false)
	}

	logStep(log, jobModel.PromptParse)
	prompts, err := PromptsFor(req)
	if err != nil {
		return s.failure(log, jobModel.ErrKindPromptTemplate, err, false)
	}

	doc, err := s.executeLoadStep(ctx, log, req)
	if err != nil {
		return s.failure(log, jobModel.ErrKindDocumentLoad, err, false)
	}

	result, err := s.executeLLMStep(ctx, log, strategy, doc.Texts(), prompts)
	if err != nil {
		var te *prompt.TemplateError
		if errors.As(err, &te) {
			return s.failure(log, jobModel.ErrKindPromptTemplate, err, false)
		}
		return s.failure(log, jobModel.ErrKindLLMBackend, err, llm.IsRetryable(err))
	}

	logStep(log, jobModel.Complete)
	return jobModel.Succeeded(result.Summary, result.Steps)
}

// ProcessJob summarizes a queued job and removes its upload once done.
func (s *service) ProcessJob(ctx context.Context, job jobModel.Job) jobModel.Job {
	defer removeUpload(s.logger, job.Request.DocumentPath)

	job.CurrentStep = jobModel.SummaryInit
	job.Outcome = s.Summarize(ctx, job.Request)
	job.EndTime = time.Now()

	if job.Outcome.Failed() {
		job.Status = jobModel.JobStatusError
		job.CurrentStep = jobModel.Error
		return job
	}
	job.Status = jobModel.JobStatusComplete
	job.CurrentStep = jobModel.Complete
	return job
}

func (s *service) executeLoadStep(ctx context.Context, log *logger_i.Logger, req jobModel.SummaryRequest) (commonModels.Document, error) {
	logStep(log, jobModel.DocumentLoad)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("document_load", time.Since(start)) }()

	return s.loader.Load(ctx, req.DocumentPath, req.DocumentName)
}

func (s *service) executeLLMStep(ctx context.Context, log *logger_i.Logger, strategy Strategy, chunks []string, prompts Prompts) (Result, error) {
	logStep(log, jobModel.LLMCall)
	log.Debug("Running strategy", "chunks", len(chunks))

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics(strategy.Name(), time.Since(start)) }()

	return strategy.Summarize(ctx, chunks, prompts, s.llmProvider)
}

func (s *service) failure(log *logger_i.Logger, kind jobModel.ErrorKind, err error, canRetry bool) jobModel.SummaryOutcome {
	log.Error(string(kind), "error", err, "retry", canRetry)
	return jobModel.Failed(jobModel.NewJobError(kind, err, canRetry))
}

func logStep(log *logger_i.Logger, step jobModel.InternalStatus) {
	log.Debug("Summarize", "Current Status", step)
}

func removeUpload(log *logger_i.Logger, path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Warn("Failed to remove upload", "path", path, "error", err)
	}
}
