package openai

import (
	"context"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"pagesmith/internal/domain"
	"pagesmith/internal/domain/services"
)

// Client implements services.Gateway using the official openai-go SDK
// (chat completions, non-streaming). Any OpenAI-compatible endpoint works via
// the base URL option.
type Client struct {
	client openai.Client
}

// NewClient creates a gateway client. baseURL may be empty for the default
// OpenAI endpoint.
func NewClient(apiKey, baseURL string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gateway API key missing: %w", domain.ErrConfig)
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &Client{client: openai.NewClient(opts...)}, nil
}

// Complete sends a chat completion request and returns the single text output.
func (c *Client) Complete(ctx context.Context, model string, messages []services.Message) (string, error) {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case "system":
			msgs = append(msgs, openai.SystemMessage(m.Content))
		case "assistant":
			msgs = append(msgs, openai.ChatCompletionMessageParamOfAssistant(m.Content))
		default:
			msgs = append(msgs, openai.UserMessage(m.Content))
		}
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: msgs,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGeneration, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", domain.ErrGeneration)
	}

	return resp.Choices[0].Message.Content, nil
}
