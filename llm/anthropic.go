package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicConfig holds Anthropic generator configuration.
type AnthropicConfig struct {
	APIKey    string
	Model     string
	MaxTokens int64
}

// Anthropic generates text through the Anthropic Messages API.
// One configured client is reused across invocations.
type Anthropic struct {
	client    *anthropic.Client
	model     string
	maxTokens int64
}

// NewAnthropic creates an Anthropic generator.
func NewAnthropic(cfg AnthropicConfig) *Anthropic {
	model := cfg.Model
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1024
	}

	client := anthropic.NewClient(option.WithAPIKey(cfg.APIKey))
	return &Anthropic{
		client:    &client,
		model:     model,
		maxTokens: maxTokens,
	}
}

// Generate submits the prompt as a single user message and returns the
// concatenated text blocks of the response.
func (a *Anthropic) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: a.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", classifyAnthropicError(err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	return strings.TrimSpace(text.String()), nil
}

// ListModels returns the IDs of models available to the configured key.
func (a *Anthropic) ListModels(ctx context.Context) ([]string, error) {
	page, err := a.client.Models.List(ctx, anthropic.ModelListParams{})
	if err != nil {
		return nil, classifyAnthropicError(err)
	}

	var ids []string
	for _, m := range page.Data {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

// classifyAnthropicError maps SDK errors onto the typed failure kinds.
// 429 is the rate-limit status; 529 is Anthropic's overloaded status and is
// treated the same way.
func classifyAnthropicError(err error) error {
	var apierr *anthropic.Error
	if errors.As(err, &apierr) {
		if apierr.StatusCode == http.StatusTooManyRequests || apierr.StatusCode == 529 {
			return &GenerateError{Kind: KindRateLimited, Err: err}
		}
	}
	return &GenerateError{Kind: KindOther, Err: err}
}
