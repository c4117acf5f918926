package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	TRACE_ID_KEY                = "traceId"
	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute

	//serverTimeouts
	ReadTimeout            = 30 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second
	//write timeout is RequestTimeout + this, a summary can take minutes
	WriteTimeoutMargin = 30 * time.Second

	//job requests buffer limit
	BufferLimit = 100

	//a single pdf page that takes longer than this is skipped
	PageExtractTimeout = 10 * time.Second

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis has 16 DB we can use
	RedisJobStore = 0

	RedisJobStoreTTL = 24 * time.Hour

	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Settings is built once at startup and handed to every component that needs it.
type Settings struct {
	IsProd   bool   `env:"IS_PROD"   envDefault:"false"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"debug"`

	ListenAddr     string        `env:"LISTEN_ADDR"      envDefault:"0.0.0.0:7860"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"  envDefault:"10m"`
	MaxUploadBytes int64         `env:"MAX_UPLOAD_BYTES" envDefault:"33554432"`
	UploadDir      string        `env:"UPLOAD_DIR"       envDefault:"temporary_data"`
	AuthToken      string        `env:"API_AUTH_TOKEN"`

	LLMProvider          string  `env:"LLM_PROVIDER"            envDefault:"openai"`
	OpenAIAPIKey         string  `env:"OPENAI_API_KEY"`
	OpenAIBaseURL        string  `env:"OPENAI_BASE_URL"`
	GeminiAPIKey         string  `env:"GEMINI_API_KEY"`
	LLMModel             string  `env:"LLM_MODEL"`
	LLMTemperature       float64 `env:"LLM_TEMPERATURE"         envDefault:"0.5"`
	LLMMaxRetries        int     `env:"LLM_MAX_RETRIES"         envDefault:"2"`
	LLMRequestsPerSecond float64 `env:"LLM_REQUESTS_PER_SECOND" envDefault:"0"`

	ChunkSize       int `env:"CHUNK_SIZE"        envDefault:"4000"`
	ChunkOverlap    int `env:"CHUNK_OVERLAP"     envDefault:"200"`
	MapConcurrency  int `env:"MAP_CONCURRENCY"   envDefault:"4"`
	CombineMaxChars int `env:"COMBINE_MAX_CHARS" envDefault:"12000"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
}

// Load reads Settings from the environment and fills provider dependent defaults.
func Load() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return s, fmt.Errorf("parse environment: %w", err)
	}
	s.LLMProvider = strings.ToLower(strings.TrimSpace(s.LLMProvider))
	if s.LLMModel == "" {
		s.LLMModel = defaultModel(s.LLMProvider)
	}
	return s, s.Validate()
}

func (s Settings) Validate() error {
	switch s.LLMProvider {
	case ProviderOpenAI:
		if s.OpenAIAPIKey == "" {
			return errors.New("OPENAI_API_KEY is required")
		}
	case ProviderGemini:
		if s.GeminiAPIKey == "" {
			return errors.New("GEMINI_API_KEY is required when LLM_PROVIDER=gemini")
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", s.LLMProvider)
	}

	if s.ChunkSize <= 0 {
		return errors.New("CHUNK_SIZE must be positive")
	}
	if s.ChunkOverlap < 0 || s.ChunkOverlap >= s.ChunkSize {
		return errors.New("CHUNK_OVERLAP must be in [0, CHUNK_SIZE)")
	}
	if s.MapConcurrency < 1 {
		return errors.New("MAP_CONCURRENCY must be at least 1")
	}
	if s.MaxUploadBytes <= 0 {
		return errors.New("MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}

func (s Settings) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func (s Settings) WriteTimeout() time.Duration {
	return s.RequestTimeout + WriteTimeoutMargin
}

func defaultModel(provider string) string {
	if provider == ProviderGemini {
		return "gemini-2.5-flash-lite"
	}
	return "gpt-4o-mini"
}
