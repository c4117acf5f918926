package summarize

import (
	"context"
	"errors"

	"github.com/akolanti/PDFSummarizer/internal/domain/jobModel"
	"github.com/akolanti/PDFSummarizer/internal/llm"
	"github.com/akolanti/PDFSummarizer/internal/prompt"
)

var ErrNoChunks = errors.New("nothing to summarize")

// joins chunk summaries before they go through the combine prompt
const summarySeparator = "\n\n"

type Prompts struct {
	Chunk   prompt.Template
	Combine prompt.Template
}

type Result struct {
	Summary string
	Steps   []string
}

type Strategy interface {
	Name() string
	Summarize(ctx context.Context, chunks []string, prompts Prompts, provider llm.Provider) (Result, error)
}

type Options struct {
	MapConcurrency  int
	CombineMaxChars int
}

// ForFlag picks refine when useRefine is set, map-reduce otherwise.
func ForFlag(useRefine bool, opts Options) Strategy {
	if useRefine {
		return &refine{}
	}
	concurrency := opts.MapConcurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &mapReduce{
		concurrency:     concurrency,
		combineMaxChars: opts.CombineMaxChars,
	}
}

// PromptsFor parses the request prompts, falling back to the defaults of the strategy for empty ones.
func PromptsFor(req jobModel.SummaryRequest) (Prompts, error) {
	chunkRaw, combineRaw := DefaultPrompts(req.UseRefine)
	if req.ChunkPrompt != "" {
		chunkRaw = req.ChunkPrompt
	}
	if req.CombinePrompt != "" {
		combineRaw = req.CombinePrompt
	}

	chunk, err := prompt.Parse(chunkRaw)
	if err != nil {
		return Prompts{}, err
	}
	var combine prompt.Template
	if req.UseRefine {
		combine, err = prompt.Parse(combineRaw, prompt.ExistingAnswerVariable)
	} else {
		combine, err = prompt.Parse(combineRaw)
	}
	if err != nil {
		return Prompts{}, err
	}
	return Prompts{Chunk: chunk, Combine: combine}, nil
}

func DefaultPrompts(useRefine bool) (chunk string, combine string) {
	if useRefine {
		return prompt.DefaultQuestionPrompt, prompt.DefaultCombinePrompt
	}
	return prompt.DefaultMapPrompt, prompt.DefaultCombinePrompt
}
