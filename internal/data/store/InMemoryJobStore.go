package store

import (
	"context"
	"sync"
	"time"

	"github.com/akolanti/PDFSummarizer/internal/domain/jobModel"
	"github.com/akolanti/PDFSummarizer/pkg/logger_i"
)

var inMemLogger = logger_i.NewLogger("InMem JobStore")

type storedJob struct {
	job       jobModel.Job
	expiresAt time.Time
}

// InMemoryJobStore is used when redis is not available. Jobs expire after ttl like they do in redis.
type InMemoryJobStore struct {
	jobMutex *sync.RWMutex
	jobMap   map[string]storedJob
	ttl      time.Duration
	now      func() time.Time
}

func InitInMemoryJobStore(ttl time.Duration) *InMemoryJobStore {
	return &InMemoryJobStore{
		jobMutex: new(sync.RWMutex),
		jobMap:   make(map[string]storedJob),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (store *InMemoryJobStore) SaveJob(ctx context.Context, jobToStored jobModel.Job) error {
	store.jobMutex.Lock()
	defer store.jobMutex.Unlock()

	now := store.now()
	store.evictExpired(now)
	store.jobMap[jobToStored.Id] = storedJob{job: jobToStored, expiresAt: now.Add(store.ttl)}
	inMemLogger.Debug("Saved job to store", "jobId", jobToStored.Id, "status", jobToStored.Status)
	return nil
}

func (store *InMemoryJobStore) GetJob(ctx context.Context, jobId string) (jobModel.Job, bool) {
	store.jobMutex.RLock()
	defer store.jobMutex.RUnlock()

	stored, found := store.jobMap[jobId]
	if found && !store.now().Before(stored.expiresAt) {
		found = false
	}
	inMemLogger.Debug("Get job", "jobId", jobId, "found", found)
	if !found {
		return jobModel.Job{}, false
	}
	return stored.job, true
}

func (store *InMemoryJobStore) DeleteJob(ctx context.Context, jobID string) {
	store.jobMutex.Lock()
	defer store.jobMutex.Unlock()
	delete(store.jobMap, jobID)
}

// callers hold the write lock
func (store *InMemoryJobStore) evictExpired(now time.Time) {
	for id, stored := range store.jobMap {
		if !now.Before(stored.expiresAt) {
			delete(store.jobMap, id)
		}
	}
}
