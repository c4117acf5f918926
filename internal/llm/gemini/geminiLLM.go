package gemini

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/akolanti/PDFSummarizer/internal/adapter/utils"
	"github.com/akolanti/PDFSummarizer/internal/llm"
	"github.com/akolanti/PDFSummarizer/pkg/logger_i"
	"google.golang.org/genai"
)

const providerName = "gemini"

type llmClient struct {
	client      *genai.Client
	modelName   string
	temperature float32
	logger      *logger_i.Logger
}

func NewClient(ctx context.Context, apiKey string, modelName string, temperature float64, httpClient *http.Client) (llm.Provider, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	})
	if err != nil {
		return nil, err
	}

	logger := logger_i.NewLogger("llm_gemini")
	logger.Info("Gemini client created", "model", modelName)
	return &llmClient{
		client:      c,
		modelName:   modelName,
		temperature: float32(temperature),
		logger:      logger,
	}, nil
}

func (c *llmClient) Complete(ctx context.Context, prompt string) (string, error) {
	log := c.logger.With("traceId", utils.TraceID(ctx))
	log.Debug("generate content", "prompt chars", len(prompt))

	result, err := c.client.Models.GenerateContent(
		ctx,
		c.modelName,
		genai.Text(prompt),
		&genai.GenerateContentConfig{Temperature: genai.Ptr(c.temperature)},
	)
	if err != nil {
		log.Error("generate content failed", "error", err)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		return "", &llm.BackendError{Provider: providerName, Err: err}
	}
	if result == nil {
		return "", llm.ErrEmptyResponse
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", llm.ErrEmptyResponse
	}
	return text, nil
}
