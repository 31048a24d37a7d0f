package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"

	"github.com/zhouzirui/persona-chat/backend/internal/config"
)

// Completer generates one reply for a role-tagged prompt. Implementations make
// exactly one attempt per call.
type Completer interface {
	Complete(ctx context.Context, entries []*schema.Message) Outcome
	Name() string
}

// Params are the generation settings applied to every request.
type Params struct {
	Model       string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
}

// ParamsFrom extracts generation settings from the AI configuration.
func ParamsFrom(cfg config.AIConfig) Params {
	return Params{
		Model:       cfg.Model,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
		Timeout:     cfg.Timeout,
	}
}

// New builds the completer selected by cfg.Provider. When credentials are
// missing it returns a Disabled completer so every reply falls back.
func New(ctx context.Context, cfg config.AIConfig) (Completer, error) {
	if !cfg.Enabled() {
		return Disabled{Reason: fmt.Sprintf("%s credentials not configured", cfg.Provider)}, nil
	}

	switch strings.ToLower(cfg.Provider) {
	case config.ProviderOpenAI:
		return NewOpenAIProvider(cfg.APIKey, cfg.BaseURL, ParamsFrom(cfg)), nil
	case config.ProviderArk:
		chatModel, err := cfg.NewChatModel(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create ark chat model: %w", err)
		}
		return NewArkProvider(chatModel, ParamsFrom(cfg)), nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
}

// Disabled fails every completion with a configuration error.
type Disabled struct {
	Reason string
}

func (d Disabled) Complete(context.Context, []*schema.Message) Outcome {
	return Failure(&Error{Kind: KindConfig, Provider: d.Name(), Message: d.Reason})
}

func (Disabled) Name() string { return "disabled" }

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
