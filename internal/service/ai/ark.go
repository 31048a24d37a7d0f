package ai

import (
	"context"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// ArkProvider generates replies through an eino chat model, normally the
// Volcengine Ark model built by config.AIConfig.NewChatModel.
type ArkProvider struct {
	chatModel model.BaseChatModel
	params    Params
}

// NewArkProvider wraps chatModel.
func NewArkProvider(chatModel model.BaseChatModel, params Params) *ArkProvider {
	return &ArkProvider{chatModel: chatModel, params: params}
}

func (p *ArkProvider) Name() string { return "ark" }

func (p *ArkProvider) Complete(ctx context.Context, entries []*schema.Message) Outcome {
	ctx, cancel := withTimeout(ctx, p.params.Timeout)
	defer cancel()

	opts := []model.Option{
		model.WithTemperature(p.params.Temperature),
		model.WithMaxTokens(p.params.MaxTokens),
	}
	if p.params.Model != "" {
		opts = append(opts, model.WithModel(p.params.Model))
	}

	resp, err := p.chatModel.Generate(ctx, entries, opts...)
	if err != nil {
		return Failure(&Error{Kind: KindProvider, Provider: p.Name(), Message: "generate failed", Cause: err})
	}
	if resp == nil || resp.Content == "" {
		return Failure(&Error{Kind: KindEmpty, Provider: p.Name(), Message: "empty completion response"})
	}
	return Success(resp.Content)
}
