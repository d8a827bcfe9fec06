// File path: internal/llm/openai.go
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/adityakulkarni/reportforge/internal/common"
)

// OpenAIConfig configures the OpenAI-backed provider. The credential is
// injected here once at startup; the provider never reads the environment.
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	HTTPTimeout time.Duration
}

// OpenAIProvider implements Provider using the official openai-go SDK
// (chat completions).
type OpenAIProvider struct {
	client openai.Client
}

// NewOpenAIProvider builds the provider or fails with ErrMissingCredential
// when no API key is supplied.
func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	logger := common.Logger()
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingCredential
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		logger.Info("llm: configuring OpenAI client with custom endpoint", "endpoint", cfg.BaseURL)
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.HTTPTimeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.HTTPTimeout))
	}
	return &OpenAIProvider{client: openai.NewClient(opts...)}, nil
}

func (o *OpenAIProvider) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	logger := common.Logger()
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(opts.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	}
	if opts.Temperature > 0 {
		params.Temperature = openai.Float(opts.Temperature)
	}
	if opts.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(opts.MaxTokens))
	}
	logger.Debug("llm: sending chat completion request", "model", opts.Model, "prompt_len", len(prompt))
	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		mapped := mapAPIError(err)
		logger.Error("llm: chat completion failed", "error", mapped)
		return "", mapped
	}
	if len(resp.Choices) == 0 {
		return "", &UpstreamError{Status: http.StatusBadGateway, Err: errors.New("empty choices in completion response")}
	}
	logger.Debug("llm: chat completion succeeded")
	return resp.Choices[0].Message.Content, nil
}

func (o *OpenAIProvider) Name() string {
	return "openai"
}

// mapAPIError translates SDK failures into the provider error taxonomy so
// callers can distinguish rate limits, exhausted quota, and everything else.
func mapAPIError(err error) error {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		switch apierr.StatusCode {
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %v", ErrRateLimited, err)
		case http.StatusPaymentRequired:
			return fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
		default:
			return &UpstreamError{Status: apierr.StatusCode, Err: err}
		}
	}
	return &UpstreamError{Status: http.StatusBadGateway, Err: err}
}
