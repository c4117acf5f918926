package store_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/akolanti/PDFSummarizer/internal/config"
	"github.com/akolanti/PDFSummarizer/internal/data/redisStore"
	"github.com/akolanti/PDFSummarizer/internal/data/store"
	"github.com/akolanti/PDFSummarizer/internal/domain/jobModel"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func testJob(id string) jobModel.Job {
	return jobModel.Job{
		Id:     id,
		Status: jobModel.JobStatusComplete,
		Request: jobModel.SummaryRequest{
			DocumentName: "report.pdf",
			UseRefine:    true,
		},
		Outcome: jobModel.Succeeded("final", []string{"first", "final"}),
	}
}

func TestRedisJobStore_Lifecycle(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	jobStore := store.NewRedisJobStore(redisStore.NewTestStore(client))

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
	jobID := "job_abc_123"
	job := testJob(jobID)

	t.Run("Save and Get Roundtrip", func(t *testing.T) {
		if err := jobStore.SaveJob(ctx, job); err != nil {
			t.Fatalf("SaveJob failed: %v", err)
		}

		retrieved, found := jobStore.GetJob(ctx, jobID)
		if !found {
			t.Fatal("Job was saved but not found in Redis")
		}
		if retrieved.Outcome.Summary != "final" || len(retrieved.Outcome.Steps) != 2 {
			t.Errorf("outcome mismatch, got %+v", retrieved.Outcome)
		}
		if !retrieved.Request.UseRefine {
			t.Error("request lost the strategy flag")
		}
	})

	t.Run("Saved with TTL", func(t *testing.T) {
		ttl := mr.TTL("summary_job:" + jobID)
		if ttl != config.RedisJobStoreTTL {
			t.Errorf("ttl got %v, want %v", ttl, config.RedisJobStoreTTL)
		}
		mr.FastForward(config.RedisJobStoreTTL + time.Second)
		if _, found := jobStore.GetJob(ctx, jobID); found {
			t.Error("job should have expired")
		}
	})

	t.Run("Get Non-Existent Job", func(t *testing.T) {
		if _, found := jobStore.GetJob(ctx, "ghost-id"); found {
			t.Error("Expected found=false for non-existent key")
		}
	})

	t.Run("Delete Job", func(t *testing.T) {
		if err := jobStore.SaveJob(ctx, job); err != nil {
			t.Fatal(err)
		}
		jobStore.DeleteJob(ctx, jobID)
		if mr.Exists("summary_job:" + jobID) {
			t.Error("Job still exists in Redis after DeleteJob call")
		}
	})
}

func TestRedisJobStore_Concurrent(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	jobStore := store.NewRedisJobStore(redisStore.NewTestStore(client))

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "race-trace")
	job := testJob("race-job")

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = jobStore.SaveJob(ctx, job)
			_, _ = jobStore.GetJob(ctx, "race-job")
		}()
	}
	wg.Wait()

	if _, found := jobStore.GetJob(ctx, "race-job"); !found {
		t.Error("job missing after concurrent saves")
	}
}

func TestInMemoryJobStore(t *testing.T) {
	ctx := context.Background()
	jobStore := store.InitInMemoryJobStore(time.Hour)

	if err := jobStore.SaveJob(ctx, testJob("mem-1")); err != nil {
		t.Fatal(err)
	}
	got, found := jobStore.GetJob(ctx, "mem-1")
	if !found || got.Outcome.Summary != "final" {
		t.Fatalf("got %+v, found %v", got, found)
	}

	jobStore.DeleteJob(ctx, "mem-1")
	if _, found := jobStore.GetJob(ctx, "mem-1"); found {
		t.Error("job still present after delete")
	}
}

func TestInMemoryJobStore_Expiry(t *testing.T) {
	ctx := context.Background()
	jobStore := store.InitInMemoryJobStore(time.Millisecond)

	if err := jobStore.SaveJob(ctx, testJob("short")); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, found := jobStore.GetJob(ctx, "short"); found {
		t.Error("job should have expired")
	}
}

func TestNewJobStore_FallsBackToMemory(t *testing.T) {
	jobStore := store.NewJobStore(context.Background(), "", "")
	if _, ok := jobStore.(*store.InMemoryJobStore); !ok {
		t.Errorf("expected the in memory store, got %T", jobStore)
	}
}

func TestNewJobStore_UsesRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	jobStore := store.NewJobStore(ctx, mr.Addr(), "")
	if _, ok := jobStore.(*store.RedisJobStore); !ok {
		t.Fatalf("expected the redis store, got %T", jobStore)
	}
	if err := jobStore.SaveJob(ctx, testJob("via-redis")); err != nil {
		t.Fatal(err)
	}
	if !mr.Exists("summary_job:via-redis") {
		t.Error("job not written to redis")
	}
}
