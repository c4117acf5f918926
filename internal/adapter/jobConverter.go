package adapter

import (
	"fmt"

	"github.com/akolanti/PDFSummarizer/internal/api"
	"github.com/akolanti/PDFSummarizer/internal/domain/jobModel"
)

func ToInitJobResponse(id string) api.InitJobResponse {
	return api.InitJobResponse{
		Id:        id,
		StatusURL: fmt.Sprintf("/api/status/%s", id),
	}
}

func ToAPIResponse(job jobModel.Job) api.JobResponse {
	response := api.JobResponse{
		Id:        job.Id,
		Status:    string(job.Status),
		Step:      string(job.CurrentStep),
		StartTime: job.CreatedTime,
		EndTime:   job.EndTime,
	}

	if job.Outcome.Failed() {
		response.Error = ToOutgoingError(*job.Outcome.Err)
		return response
	}
	if job.Status == jobModel.JobStatusComplete {
		response.Result = &api.SummaryResult{
			Document:       job.Request.DocumentName,
			Strategy:       job.Request.Strategy(),
			Summary:        job.Outcome.Summary,
			ChunkSummaries: job.Outcome.Steps,
		}
	}
	return response
}

func ToOutgoingError(err jobModel.JobError) *api.JobOutgoingError {
	return &api.JobOutgoingError{
		Kind:    string(err.Kind),
		Code:    err.Code,
		Message: err.Message,
		Retry:   err.Retry,
	}
}

func BadRequest(id string, error string, code int) api.JobResponse {
	return api.JobResponse{
		Id:     id,
		Status: string(api.JobStatusError),
		Error: &api.JobOutgoingError{
			Code:    code,
			Message: error,
			Retry:   false,
		},
	}
}
