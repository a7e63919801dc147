package inference

import (
	"context"
	"time"

	"github.com/sashabaranov/go-openai"

	"koita-chat-api/internal/domain/chat"
	"koita-chat-api/internal/domain/usersettings"
	"koita-chat-api/internal/infrastructure/metrics"
	chatclient "koita-chat-api/internal/utils/httpclients/chat"
	"koita-chat-api/internal/utils/platformerrors"
)

const providerName = "mistral"

// MistralGateway adapts the OpenAI-compatible client to chat.ModelGateway.
type MistralGateway struct {
	client *chatclient.ChatCompletionClient
}

var _ chat.ModelGateway = (*MistralGateway)(nil)

func NewMistralGateway(client *chatclient.ChatCompletionClient) *MistralGateway {
	return &MistralGateway{client: client}
}

func (g *MistralGateway) ChatCompletion(ctx context.Context, messages []chat.Message, opts usersettings.ModelOptions) (*chat.Completion, error) {
	start := time.Now()
	resp, err := g.client.CreateChatCompletion(ctx, buildRequest(messages, opts))
	metrics.RecordLLMDuration(opts.Model, false, time.Since(start).Seconds())
	if err != nil {
		metrics.RecordProviderError(providerName, "completion")
		return nil, err
	}
	if len(resp.Choices) == 0 {
		metrics.RecordProviderError(providerName, "completion")
		return nil, platformerrors.NewErrorWithContext(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"provider returned no choices", nil, "2f8d6c1e-4b3a-4e5f-9a7c-6d1e8b2f4a90",
			map[string]any{platformerrors.PublicMessageKey: chatclient.PublicErrorMessage})
	}

	model := resp.Model
	if model == "" {
		model = opts.Model
	}
	return &chat.Completion{
		Content:      resp.Choices[0].Message.Content,
		Model:        model,
		FinishReason: string(resp.Choices[0].FinishReason),
	}, nil
}

func (g *MistralGateway) StreamChatCompletion(ctx context.Context, messages []chat.Message, opts usersettings.ModelOptions, onToken chat.TokenHandler) (string, error) {
	start := time.Now()
	first := true

	content, err := g.client.StreamChatCompletion(ctx, buildRequest(messages, opts), func(delta string) error {
		if first {
			metrics.RecordFirstToken(opts.Model, time.Since(start).Seconds())
			first = false
		}
		metrics.StreamDeltasTotal.WithLabelValues(opts.Model).Inc()
		return onToken(delta)
	})
	metrics.RecordLLMDuration(opts.Model, true, time.Since(start).Seconds())

	if err != nil && ctx.Err() == nil {
		metrics.RecordProviderError(providerName, "stream")
	}
	return content, err
}

func buildRequest(messages []chat.Message, opts usersettings.ModelOptions) openai.ChatCompletionRequest {
	wire := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		wire = append(wire, openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}
	return openai.ChatCompletionRequest{
		Model:       opts.Model,
		Messages:    wire,
		Temperature: float32(opts.Temperature),
		MaxTokens:   opts.MaxTokens,
	}
}
