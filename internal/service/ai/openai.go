package ai

import (
	"context"
	"errors"
	"net/http"

	"github.com/cloudwego/eino/schema"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider calls an OpenAI-compatible chat completions endpoint.
type OpenAIProvider struct {
	client *openai.Client
	params Params
}

// NewOpenAIProvider creates a provider for apiKey. An empty baseURL keeps the
// library default.
func NewOpenAIProvider(apiKey, baseURL string, params Params) *OpenAIProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIProvider{
		client: openai.NewClientWithConfig(cfg),
		params: params,
	}
}

func (p *OpenAIProvider) Name() string { return "openai" }

func (p *OpenAIProvider) Complete(ctx context.Context, entries []*schema.Message) Outcome {
	ctx, cancel := withTimeout(ctx, p.params.Timeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.params.Model,
		Messages:    toOpenAIMessages(entries),
		MaxTokens:   p.params.MaxTokens,
		Temperature: p.params.Temperature,
	})
	if err != nil {
		return Failure(p.classify(err))
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return Failure(&Error{Kind: KindEmpty, Provider: p.Name(), Message: "empty completion response"})
	}
	return Success(resp.Choices[0].Message.Content)
}

func (p *OpenAIProvider) classify(err error) *Error {
	out := &Error{Kind: KindNetwork, Provider: p.Name(), Message: "request failed", Cause: err}

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		out.Status = apiErr.HTTPStatusCode
		out.Kind = KindProvider
		out.Message = apiErr.Message
	case errors.As(err, &reqErr):
		out.Status = reqErr.HTTPStatusCode
		out.Kind = KindProvider
		out.Message = "unexpected response"
	}
	if out.Status == http.StatusTooManyRequests {
		out.Kind = KindRateLimit
	}
	return out
}

func toOpenAIMessages(entries []*schema.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(entries))
	for _, entry := range entries {
		role := openai.ChatMessageRoleUser
		switch entry.Role {
		case schema.System:
			role = openai.ChatMessageRoleSystem
		case schema.Assistant:
			role = openai.ChatMessageRoleAssistant
		}
		out = append(out, openai.ChatCompletionMessage{Role: role, Content: entry.Content})
	}
	return out
}
