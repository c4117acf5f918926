package summarize

import (
	"context"
	"fmt"

	"github.com/akolanti/PDFSummarizer/internal/domain/jobModel"
	"github.com/akolanti/PDFSummarizer/internal/llm"
	"github.com/akolanti/PDFSummarizer/internal/prompt"
)

type refine struct{}

func (r *refine) Name() string {
	return jobModel.StrategyRefine
}

// Summarize folds the chunks in order into one running summary. Every running
// summary is a step and the last one is the result.
func (r *refine) Summarize(ctx context.Context, chunks []string, prompts Prompts, provider llm.Provider) (Result, error) {
	if len(chunks) == 0 {
		return Result{}, ErrNoChunks
	}

	running, err := complete(ctx, provider, prompts.Chunk, textValues(chunks[0]))
	if err != nil {
		return Result{}, fmt.Errorf("summarize chunk 1: %w", err)
	}
	steps := make([]string, 0, len(chunks))
	steps = append(steps, running)

	for i := 1; i < len(chunks); i++ {
		running, err = complete(ctx, provider, prompts.Combine, refineValues(prompts.Combine, running, chunks[i]))
		if err != nil {
			return Result{}, fmt.Errorf("refine chunk %d: %w", i+1, err)
		}
		steps = append(steps, running)
	}

	return Result{Summary: running, Steps: steps}, nil
}

func refineValues(tmpl prompt.Template, existing string, chunk string) map[string]string {
	if tmpl.Has(prompt.ExistingAnswerVariable) {
		return map[string]string{
			prompt.ExistingAnswerVariable: existing,
			prompt.TextVariable:           chunk,
		}
	}
	return textValues("Existing summary:\n" + existing + "\n\nNew context:\n" + chunk)
}
