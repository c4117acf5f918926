package openaiLLM

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/akolanti/PDFSummarizer/internal/adapter/utils"
	"github.com/akolanti/PDFSummarizer/internal/llm"
	"github.com/akolanti/PDFSummarizer/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const providerName = "openai"

type Options struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxRetries  int
	HTTPClient  *http.Client
}

type llmClient struct {
	client      openai.Client
	model       string
	temperature float64
	logger      *logger_i.Logger
}

func NewClient(opts Options) (llm.Provider, error) {
	if opts.APIKey == "" {
		return nil, errors.New("openai api key is required")
	}
	if opts.Model == "" {
		opts.Model = "gpt-4o-mini"
	}

	requestOptions := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(opts.MaxRetries),
	}
	if opts.BaseURL != "" {
		requestOptions = append(requestOptions, option.WithBaseURL(opts.BaseURL))
	}
	if opts.HTTPClient != nil {
		requestOptions = append(requestOptions, option.WithHTTPClient(opts.HTTPClient))
	}

	c := &llmClient{
		client:      openai.NewClient(requestOptions...),
		model:       opts.Model,
		temperature: opts.Temperature,
		logger:      logger_i.NewLogger("llm_openai"),
	}
	c.logger.Info("OpenAI client created", "model", opts.Model)
	return c, nil
}

func (c *llmClient) Complete(ctx context.Context, prompt string) (string, error) {
	log := c.logger.With("traceId", utils.TraceID(ctx))
	log.Debug("chat completion", "prompt chars", len(prompt))

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(c.temperature),
	})
	if err != nil {
		log.Error("chat completion failed", "error", err)
		return "", wrapError(err)
	}

	if len(resp.Choices) == 0 {
		return "", llm.ErrEmptyResponse
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", llm.ErrEmptyResponse
	}
	return text, nil
}

func wrapError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	be := &llm.BackendError{Provider: providerName, Err: err}
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		be.StatusCode = apiErr.StatusCode
	}
	return be
}
