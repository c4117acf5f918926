package llm

import (
	"context"
	"time"

	"github.com/akolanti/PDFSummarizer/internal/metrics"
	"golang.org/x/time/rate"
)

type pacedProvider struct {
	next    Provider
	limiter *rate.Limiter
}

// Paced limits next to requestsPerSecond calls (no limit when <= 0) and records
// latency and outcome of every call.
func Paced(next Provider, requestsPerSecond float64) Provider {
	p := &pacedProvider{next: next}
	if requestsPerSecond > 0 {
		burst := int(requestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		p.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}
	return p
}

func (p *pacedProvider) Complete(ctx context.Context, prompt string) (string, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	start := time.Now()
	out, err := p.next.Complete(ctx, prompt)
	metrics.CaptureExecutionMetrics("llm_completion", time.Since(start))
	metrics.CountLLMCall(err == nil)
	return out, err
}
