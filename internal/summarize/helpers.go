package summarize

import (
	"context"

	"github.com/akolanti/PDFSummarizer/internal/llm"
	"github.com/akolanti/PDFSummarizer/internal/prompt"
)

func textValues(text string) map[string]string {
	return map[string]string{prompt.TextVariable: text}
}

func complete(ctx context.Context, provider llm.Provider, tmpl prompt.Template, values map[string]string) (string, error) {
	rendered, err := tmpl.Render(values)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return provider.Complete(ctx, rendered)
}
