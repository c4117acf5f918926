package jobModel

import (
	"context"
	"net/http"
	"strings"
	"time"
)

type JobStatus string
type InternalStatus string
type ErrorKind string

const (
	JobStatusQueued   JobStatus = "QUEUED"
	JobStatusRunning  JobStatus = "RUNNING"
	JobStatusComplete JobStatus = "COMPLETE"
	JobStatusError    JobStatus = "Error"

	SummaryInit  InternalStatus = "Init"
	PromptParse  InternalStatus = "PromptParse"
	DocumentLoad InternalStatus = "DocumentLoad"
	LLMCall      InternalStatus = "LLM"
	StoreCall    InternalStatus = "Store"
	Error        InternalStatus = "Error"
	Complete     InternalStatus = "Complete"

	ErrKindDocumentLoad   ErrorKind = "DOCUMENT_LOAD"
	ErrKindPromptTemplate ErrorKind = "PROMPT_TEMPLATE"
	ErrKindLLMBackend     ErrorKind = "LLM_BACKEND"
	ErrKindInvalidRequest ErrorKind = "INVALID_REQUEST"

	StrategyMapReduce = "map_reduce"
	StrategyRefine    = "refine"
)

type Job struct {
	Id          string         `json:"id"`
	TraceId     string         `json:"trace_id"`
	Request     SummaryRequest `json:"request"`
	Outcome     SummaryOutcome `json:"outcome"`
	CreatedTime time.Time      `json:"created_time"`
	EndTime     time.Time      `json:"end_time,omitempty"`
	Status      JobStatus      `json:"status"`
	CurrentStep InternalStatus `json:"current_step"`
}

type SummaryRequest struct {
	DocumentName  string `json:"document_name"`
	DocumentPath  string `json:"document_path"`
	UseRefine     bool   `json:"use_refine"`
	ChunkPrompt   string `json:"chunk_prompt"`
	CombinePrompt string `json:"combine_prompt"`
}

func (r SummaryRequest) Strategy() string {
	if r.UseRefine {
		return StrategyRefine
	}
	return StrategyMapReduce
}

// SummaryOutcome holds either a summary with its steps or an error, never both.
type SummaryOutcome struct {
	Summary string    `json:"summary,omitempty"`
	Steps   []string  `json:"steps,omitempty"`
	Err     *JobError `json:"error,omitempty"`
}

func Succeeded(summary string, steps []string) SummaryOutcome {
	return SummaryOutcome{Summary: summary, Steps: steps}
}

func Failed(err JobError) SummaryOutcome {
	return SummaryOutcome{Err: &err}
}

func (o SummaryOutcome) Failed() bool {
	return o.Err != nil
}

// StepsText joins the intermediate summaries one per line.
func (o SummaryOutcome) StepsText() string {
	return strings.Join(o.Steps, "\n")
}

type JobError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Code    int       `json:"code"`
	Retry   bool      `json:"retry"`
}

func NewJobError(kind ErrorKind, err error, canRetry bool) JobError {
	return JobError{
		Kind:    kind,
		Message: err.Error(),
		Code:    kind.HTTPStatus(),
		Retry:   canRetry,
	}
}

// Display is how an error is shown to a person, whatever its kind.
func (e JobError) Display() string {
	return "Error! #" + e.Message
}

func (k ErrorKind) HTTPStatus() int {
	switch k {
	case ErrKindPromptTemplate, ErrKindInvalidRequest:
		return http.StatusBadRequest
	case ErrKindDocumentLoad:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

type JobStore interface {
	GetJob(ctx context.Context, jobId string) (Job, bool)
	SaveJob(ctx context.Context, job Job) error
	DeleteJob(ctx context.Context, jobID string)
}
