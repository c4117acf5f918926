package adapter

import (
	"errors"
	"net/http"
	"testing"

	"github.com/akolanti/PDFSummarizer/internal/domain/jobModel"
)

func TestToAPIResponse_Complete(t *testing.T) {
	job := jobModel.Job{
		Id:      "job-1",
		Status:  jobModel.JobStatusComplete,
		Request: jobModel.SummaryRequest{DocumentName: "report.pdf", UseRefine: true},
		Outcome: jobModel.Succeeded("done", []string{"a", "done"}),
	}

	res := ToAPIResponse(job)
	if res.Error != nil {
		t.Fatalf("unexpected error %+v", res.Error)
	}
	if res.Result == nil || res.Result.Summary != "done" || len(res.Result.ChunkSummaries) != 2 {
		t.Fatalf("result got %+v", res.Result)
	}
	if res.Result.Strategy != jobModel.StrategyRefine {
		t.Errorf("strategy got %s", res.Result.Strategy)
	}
}

func TestToAPIResponse_Queued(t *testing.T) {
	res := ToAPIResponse(jobModel.Job{Id: "job-2", Status: jobModel.JobStatusQueued})
	if res.Result != nil || res.Error != nil {
		t.Errorf("queued job should carry neither result nor error: %+v", res)
	}
}

func TestToAPIResponse_Failed(t *testing.T) {
	jobErr := jobModel.NewJobError(jobModel.ErrKindDocumentLoad, errors.New("no text"), false)
	res := ToAPIResponse(jobModel.Job{Id: "job-3", Status: jobModel.JobStatusError, Outcome: jobModel.Failed(jobErr)})

	if res.Result != nil {
		t.Error("failed job should not carry a result")
	}
	if res.Error == nil || res.Error.Kind != "DOCUMENT_LOAD" || res.Error.Code != http.StatusUnprocessableEntity {
		t.Errorf("error got %+v", res.Error)
	}
}

func TestToInitJobResponse(t *testing.T) {
	if got := ToInitJobResponse("abc").StatusURL; got != "/api/status/abc" {
		t.Errorf("status url got %q", got)
	}
}
