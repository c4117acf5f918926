package job

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/akolanti/PDFSummarizer/internal/config"
	"github.com/akolanti/PDFSummarizer/internal/domain/jobModel"
	"github.com/akolanti/PDFSummarizer/internal/metrics"
)

// Service is the queue between the api handlers and the worker pool.
type Service struct {
	JobChannel        chan jobModel.Job
	RequestCount      int64
	DispatcherChannel chan bool
	JobStore          jobModel.JobStore
}

type ServiceConfig struct {
	JobChannel        chan jobModel.Job
	RequestCount      int64
	DispatcherChannel chan bool
	JobStore          jobModel.JobStore
}

func InitJobService(cfg ServiceConfig) *Service {
	return &Service{
		JobChannel:        cfg.JobChannel,
		RequestCount:      cfg.RequestCount,
		DispatcherChannel: cfg.DispatcherChannel,
		JobStore:          cfg.JobStore,
	}
}

// Enqueue saves the queued summary job and hands it to the workers.
// It blocks while the channel is full. The returned bool reports whether the dispatcher was asked for a new worker.
func (s *Service) Enqueue(ctx context.Context, j jobModel.Job) (signalled bool, err error) {
	//saved first so a status poll right after 202 finds it
	if err = s.JobStore.SaveJob(ctx, j); err != nil {
		err = fmt.Errorf("save queued job %s: %w", j.Id, err)
	}

	metrics.IncrementJobsInQueue()
	select {
	case s.JobChannel <- j:
	case <-ctx.Done():
		metrics.DecrementJobsInQueue()
		return false, ctx.Err()
	}

	//a new worker every RequestsPerNewWorkerCount requests, idle ones retire
	count := atomic.AddInt64(&s.RequestCount, 1)
	if count%config.RequestsPerNewWorkerCount != 0 || s.DispatcherChannel == nil {
		return false, err
	}
	metrics.StartDispatcherSignalCount()
	s.DispatcherChannel <- true
	return true, err
}

func (s *Service) Status(ctx context.Context, id string) (jobModel.Job, bool) {
	return s.JobStore.GetJob(ctx, id)
}
