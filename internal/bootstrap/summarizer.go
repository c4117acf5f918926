package bootstrap

import (
	"context"
	"fmt"

	"github.com/akolanti/PDFSummarizer/internal/config"
	"github.com/akolanti/PDFSummarizer/internal/customHttpClient"
	"github.com/akolanti/PDFSummarizer/internal/llm"
	"github.com/akolanti/PDFSummarizer/internal/llm/gemini"
	"github.com/akolanti/PDFSummarizer/internal/llm/openaiLLM"
	"github.com/akolanti/PDFSummarizer/internal/loader"
	"github.com/akolanti/PDFSummarizer/internal/summarize"
)

// NewProvider builds the llm client selected by settings, paced and instrumented.
func NewProvider(ctx context.Context, settings config.Settings) (llm.Provider, error) {
	var provider llm.Provider
	var err error

	switch settings.LLMProvider {
	case config.ProviderOpenAI:
		provider, err = openaiLLM.NewClient(openaiLLM.Options{
			APIKey:      settings.OpenAIAPIKey,
			BaseURL:     settings.OpenAIBaseURL,
			Model:       settings.LLMModel,
			Temperature: settings.LLMTemperature,
			MaxRetries:  settings.LLMMaxRetries,
			HTTPClient:  customHttpClient.Get(),
		})
	case config.ProviderGemini:
		provider, err = gemini.NewClient(ctx, settings.GeminiAPIKey, settings.LLMModel, settings.LLMTemperature, customHttpClient.Get())
	default:
		return nil, fmt.Errorf("unknown llm provider %q", settings.LLMProvider)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s client: %w", settings.LLMProvider, err)
	}
	return llm.Paced(provider, settings.LLMRequestsPerSecond), nil
}

// NewSummarizer wires the loader and the llm into a summarize.Service.
func NewSummarizer(ctx context.Context, settings config.Settings) (summarize.Service, error) {
	provider, err := NewProvider(ctx, settings)
	if err != nil {
		return nil, err
	}
	return summarize.NewService(
		loader.NewFileLoader(settings.ChunkSize, settings.ChunkOverlap),
		provider,
		summarize.Options{
			MapConcurrency:  settings.MapConcurrency,
			CombineMaxChars: settings.CombineMaxChars,
		},
	), nil
}
