package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/akolanti/PDFSummarizer/internal/adapter/utils"
	"github.com/akolanti/PDFSummarizer/internal/config"
	"github.com/akolanti/PDFSummarizer/internal/data/redisStore"
	"github.com/akolanti/PDFSummarizer/internal/domain/jobModel"
	"github.com/akolanti/PDFSummarizer/pkg/logger_i"
)

const jobKeyPrefix = "summary_job:"

type RedisJobStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func NewRedisJobStore(store *redisStore.Store) *RedisJobStore {
	return &RedisJobStore{
		store:  store,
		logger: logger_i.NewLogger("JobStore"),
	}
}

// NewJobStore connects to redis when addr is set and falls back to memory otherwise.
func NewJobStore(ctx context.Context, addr string, password string) jobModel.JobStore {
	if addr != "" {
		rs, err := redisStore.GetRedisStore(ctx, redisStore.Options{Addr: addr, Password: password, DB: config.RedisJobStore})
		if err == nil {
			return NewRedisJobStore(rs)
		}
		inMemLogger.Warn("Redis unavailable, falling back to in memory job store", "error", err)
	}
	return InitInMemoryJobStore(config.RedisJobStoreTTL)
}

func jobKey(id string) string {
	return jobKeyPrefix + id
}

func (s *RedisJobStore) SaveJob(ctx context.Context, job jobModel.Job) error {
	log := s.logger.With("traceId", utils.TraceID(ctx), "job Id", job.Id)
	log.Debug("saving job")
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}

	if err = s.store.Set(ctx, jobKey(job.Id), data, config.RedisJobStoreTTL); err != nil {
		return fmt.Errorf("save job %s: %w", job.Id, err)
	}
	log.Debug("Saved job to Redis")
	return nil
}

func (s *RedisJobStore) GetJob(ctx context.Context, jobId string) (jobModel.Job, bool) {
	var job jobModel.Job
	log := s.logger.With("traceId", utils.TraceID(ctx), "job Id", jobId)
	log.Debug("getting job")
	val, err := s.store.Get(ctx, jobKey(jobId))
	if s.store.IsNil(err) {
		return job, false
	} else if err != nil {
		log.Error("Error reading job from Redis", "error", err)
		return job, false
	}

	if err = json.Unmarshal([]byte(val), &job); err != nil {
		log.Error("Stored job is not valid json", "error", err)
		return job, false
	}

	log.Debug("Job found in Redis")
	return job, true
}

func (s *RedisJobStore) DeleteJob(ctx context.Context, jobID string) {
	if err := s.store.Del(ctx, jobKey(jobID)); err != nil {
		s.logger.Error("Error deleting job from Redis", "jobId", jobID, "error", err)
		return
	}
	s.logger.Debug("Job deleted from Redis", "jobId", jobID)
}
