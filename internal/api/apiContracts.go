package api

import "time"

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"
)

type JobResponse struct {
	Id        string            `json:"id" example:"4b9e8c1a-2f0d-4c55-9a51-0d3c1b7c9e21"`
	Status    string            `json:"status" example:"COMPLETE"`
	Step      string            `json:"step,omitempty" example:"Complete"`
	Result    *SummaryResult    `json:"result,omitempty"`
	Error     *JobOutgoingError `json:"error,omitempty"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Kind    string `json:"kind,omitempty" example:"DOCUMENT_LOAD"`
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Job not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

type SummaryResult struct {
	Document       string   `json:"document" example:"report.pdf"`
	Strategy       string   `json:"strategy" example:"map_reduce"`
	Summary        string   `json:"summary"`
	ChunkSummaries []string `json:"chunk_summaries"`
}

type InitJobResponse struct {
	Id        string `json:"id"`
	StatusURL string `json:"status_url"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
