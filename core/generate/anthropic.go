package generate

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// DefaultAnthropicModel is used when no model is configured. Summaries are
// short and frequent, so the small model is the default.
const DefaultAnthropicModel = "claude-haiku-4-5-20251001"

const anthropicMaxTokens = 2048

// AnthropicProvider streams completions from Anthropic's Claude models.
type AnthropicProvider struct {
	client *anthropic.Client
	model  string
}

// NewAnthropicProvider builds an Anthropic-backed provider. The API key
// defaults to ANTHROPIC_API_KEY.
func NewAnthropicProvider(opts Options) *AnthropicProvider {
	var reqOpts []option.RequestOption
	if opts.APIKey != "" {
		reqOpts = append(reqOpts, option.WithAPIKey(opts.APIKey))
	}

	model := opts.Model
	if model == "" {
		model = DefaultAnthropicModel
	}

	client := anthropic.NewClient(reqOpts...)
	return &AnthropicProvider{client: &client, model: model}
}

// Name returns the provider identifier.
func (p *AnthropicProvider) Name() string { return "anthropic" }

// StreamWithHandler sends the prompt and forwards each text delta to the
// handler as it arrives.
func (p *AnthropicProvider) StreamWithHandler(ctx context.Context, prompt string, handler Handler) error {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: anthropicMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}

	stream := p.client.Messages.NewStreaming(ctx, params)
	for stream.Next() {
		event := stream.Current()

		switch ev := event.AsAny().(type) {
		case anthropic.ContentBlockDeltaEvent:
			if delta, ok := ev.Delta.AsAny().(anthropic.TextDelta); ok {
				if err := handler(delta.Text); err != nil {
					return err
				}
			}
		}
	}

	if err := stream.Err(); err != nil {
		return fmt.Errorf("anthropic stream: %w", err)
	}
	return nil
}
