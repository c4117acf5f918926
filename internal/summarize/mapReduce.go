package summarize

import (
	"context"
	"fmt"
	"strings"

	"github.com/akolanti/PDFSummarizer/internal/domain/jobModel"
	"github.com/akolanti/PDFSummarizer/internal/llm"
	"github.com/akolanti/PDFSummarizer/internal/prompt"
	"golang.org/x/sync/errgroup"
)

type mapReduce struct {
	concurrency     int
	combineMaxChars int
}

func (m *mapReduce) Name() string {
	return jobModel.StrategyMapReduce
}

// Summarize runs the chunk prompt over every chunk, then the combine prompt over the joined results.
func (m *mapReduce) Summarize(ctx context.Context, chunks []string, prompts Prompts, provider llm.Provider) (Result, error) {
	if len(chunks) == 0 {
		return Result{}, ErrNoChunks
	}

	steps, err := m.mapAll(ctx, chunks, prompts.Chunk, provider, "summarize chunk")
	if err != nil {
		return Result{}, err
	}

	docs := steps
	for m.needsCollapse(docs) {
		docs, err = m.collapse(ctx, docs, prompts.Combine, provider)
		if err != nil {
			return Result{}, err
		}
	}

	summary, err := complete(ctx, provider, prompts.Combine, textValues(strings.Join(docs, summarySeparator)))
	if err != nil {
		return Result{}, fmt.Errorf("combine summaries: %w", err)
	}
	return Result{Summary: summary, Steps: steps}, nil
}

// mapAll renders tmpl over each text in parallel and keeps the outputs in input order.
func (m *mapReduce) mapAll(ctx context.Context, texts []string, tmpl prompt.Template, provider llm.Provider, step string) ([]string, error) {
	out := make([]string, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.concurrency)

	for i, text := range texts {
		g.Go(func() error {
			summary, err := complete(gctx, provider, tmpl, textValues(text))
			if err != nil {
				return fmt.Errorf("%s %d: %w", step, i+1, err)
			}
			out[i] = summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *mapReduce) needsCollapse(docs []string) bool {
	if m.combineMaxChars <= 0 || len(docs) < 2 {
		return false
	}
	return joinedLength(docs) > m.combineMaxChars
}

// collapse merges neighbouring summaries through the combine prompt. Every group
// holds at least two summaries so each round shrinks the list.
func (m *mapReduce) collapse(ctx context.Context, docs []string, tmpl prompt.Template, provider llm.Provider) ([]string, error) {
	var groups []string
	var current []string
	for _, doc := range docs {
		if len(current) >= 2 && joinedLength(append(current, doc)) > m.combineMaxChars {
			groups = append(groups, strings.Join(current, summarySeparator))
			current = nil
		}
		current = append(current, doc)
	}
	if len(current) == 1 && len(groups) > 0 {
		// a lone trailing summary joins the previous group
		groups[len(groups)-1] += summarySeparator + current[0]
	} else if len(current) > 0 {
		groups = append(groups, strings.Join(current, summarySeparator))
	}

	return m.mapAll(ctx, groups, tmpl, provider, "collapse group")
}

func joinedLength(docs []string) int {
	n := len(summarySeparator) * (len(docs) - 1)
	for _, d := range docs {
		n += len(d)
	}
	return n
}
