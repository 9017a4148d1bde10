package inference

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"lullaby/pkg/config"
)

// ErrEmptyCompletion is returned when the provider answered successfully but
// without any text.
var ErrEmptyCompletion = errors.New("empty completion content")

// Inferencer defines an interface for running model inference.
type Inferencer interface {
	// Infer performs exactly one completion call. An empty system prompt sends
	// the user prompt as the only message. Blank output is ErrEmptyCompletion.
	Infer(ctx context.Context, params *openai.ChatCompletionNewParams, system, user string) (string, error)
}

// New builds the instrumented inferencer for the configured provider.
func New(ctx context.Context, cfg *config.Config) (Inferencer, error) {
	var inf Inferencer
	switch cfg.Provider {
	case config.ProviderOpenRouter:
		opts := []option.RequestOption{option.WithBaseURL(cfg.BaseURL)}
		if cfg.Referer != "" {
			opts = append(opts, option.WithHeader("HTTP-Referer", cfg.Referer))
		}
		if cfg.Title != "" {
			opts = append(opts, option.WithHeader("X-Title", cfg.Title))
		}
		inf = NewOpenAIInferencer(cfg.APIKey, cfg.Model, opts...)
	case config.ProviderOpenAI:
		inf = NewOpenAIInferencer(cfg.APIKey, cfg.Model)
	case config.ProviderGemini:
		g, err := NewGeminiInferencer(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		inf = g
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
	return Instrument(inf, cfg.Provider, cfg.Model), nil
}
