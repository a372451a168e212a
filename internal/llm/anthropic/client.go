// Package anthropic adapts the Anthropic Messages API to llm.Completer.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"resume-parser/internal/llm"
	"resume-parser/internal/shared/telemetry"
)

const (
	// DefaultModel is used when LLM_MODEL is empty.
	DefaultModel = "claude-3-5-haiku-20241022"

	defaultMaxTokens = 4096
)

// ErrAPIKeyRequired is returned when no API key is configured.
var ErrAPIKeyRequired = errors.New("ANTHROPIC_API_KEY is required")

// Client implements llm.Completer with a single, non-retried Messages call.
type Client struct {
	client      anthropic.Client
	model       anthropic.Model
	temperature float64
	maxTokens   int64
}

// NewClient constructs a client. Extra options are appended after the API key,
// which lets tests point the SDK at a local server.
func NewClient(apiKey, model string, temperature float64, opts ...option.RequestOption) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrAPIKeyRequired
	}
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	reqOpts := append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, opts...)

	return &Client{
		client:      anthropic.NewClient(reqOpts...),
		model:       anthropic.Model(model),
		temperature: temperature,
		maxTokens:   defaultMaxTokens,
	}, nil
}

// Complete sends prompt as a single user message and returns the first text block.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: anthropic.Float(c.temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}

	message, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic messages: %w", err)
	}
	telemetry.Info("llm.response", map[string]any{
		"provider":      "anthropic",
		"model":         string(c.model),
		"input_tokens":  message.Usage.InputTokens,
		"output_tokens": message.Usage.OutputTokens,
	})

	for _, block := range message.Content {
		if block.Type == "text" {
			return strings.TrimSpace(block.Text), nil
		}
	}
	return "", fmt.Errorf("anthropic response has no text block")
}

var _ llm.Completer = (*Client)(nil)
