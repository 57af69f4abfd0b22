package generate

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
)

// DefaultOpenAIModel is used when no model is configured.
const DefaultOpenAIModel = "gpt-4o-mini"

const openaiMaxTokens = 2048

// OpenAIProvider streams completions from OpenAI models.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider builds an OpenAI-backed provider. The API key defaults
// to OPENAI_API_KEY.
func NewOpenAIProvider(opts Options) *OpenAIProvider {
	var reqOpts []option.RequestOption
	if opts.APIKey != "" {
		reqOpts = append(reqOpts, option.WithAPIKey(opts.APIKey))
	}

	model := opts.Model
	if model == "" {
		model = DefaultOpenAIModel
	}

	client := openai.NewClient(reqOpts...)
	return &OpenAIProvider{client: &client, model: model}
}

// Name returns the provider identifier.
func (p *OpenAIProvider) Name() string { return "openai" }

// StreamWithHandler sends the prompt and forwards each text delta to the
// handler as it arrives.
func (p *OpenAIProvider) StreamWithHandler(ctx context.Context, prompt string, handler Handler) error {
	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(p.model),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: openai.String(prompt),
		},
		MaxOutputTokens: openai.Int(openaiMaxTokens),
	}

	stream := p.client.Responses.NewStreaming(ctx, params)
	for stream.Next() {
		event := stream.Current()

		switch ev := event.AsAny().(type) {
		case responses.ResponseTextDeltaEvent:
			if ev.Delta == "" {
				continue
			}
			if err := handler(ev.Delta); err != nil {
				return err
			}
		}
	}

	if err := stream.Err(); err != nil {
		return fmt.Errorf("openai stream: %w", err)
	}
	return nil
}
