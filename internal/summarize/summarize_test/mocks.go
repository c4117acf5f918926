package summarize_test

import (
	"context"
	"sync"

	"github.com/akolanti/PDFSummarizer/internal/domain/commonModels"
)

// MockLLM implements llm.Provider and remembers every prompt it was sent
type MockLLM struct {
	OnComplete func(ctx context.Context, prompt string) (string, error)

	mu      sync.Mutex
	prompts []string
}

func (m *MockLLM) Complete(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.OnComplete != nil {
		return m.OnComplete(ctx, prompt)
	}
	return "mocked summary", nil
}

func (m *MockLLM) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

func (m *MockLLM) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// MockLoader implements loader.Loader
type MockLoader struct {
	OnLoad func(ctx context.Context, path string, name string) (commonModels.Document, error)
}

func (m *MockLoader) Load(ctx context.Context, path string, name string) (commonModels.Document, error) {
	if m.OnLoad != nil {
		return m.OnLoad(ctx, path, name)
	}
	return docWithChunks("chunk one"), nil
}

func docWithChunks(texts ...string) commonModels.Document {
	doc := commonModels.Document{Id: "doc", Name: "doc.pdf", ContentType: commonModels.PDF, PageCount: len(texts)}
	for i, text := range texts {
		doc.Chunks = append(doc.Chunks, commonModels.DocChunk{Index: i, Chunk: text, PageNum: i + 1})
	}
	return doc
}

func loaderFor(texts ...string) *MockLoader {
	return &MockLoader{
		OnLoad: func(ctx context.Context, path string, name string) (commonModels.Document, error) {
			return docWithChunks(texts...), nil
		},
	}
}
