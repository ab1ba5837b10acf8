// Package anthropic implements model.Model using the Anthropic Messages
// API, as an alternative backend for deployments without Gemini access.
package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/Fl0zWer/Paibot/model"
)

// Options configure the Anthropic model adapter.
type Options struct {
	Model             anthropic.Model
	SystemInstruction string
}

// Model wraps the Anthropic Messages API behind the generic model.Model
// interface.
type Model struct {
	client *anthropic.Client
	opts   Options
}

// Compile-time assertion.
var _ model.Model = (*Model)(nil)

// NewModel creates a new Anthropic model using the official client, which
// reads its credential from the environment.
func NewModel(optFns ...func(o *Options)) *Model {
	client := anthropic.NewClient()
	return NewModelFromClient(&client, optFns...)
}

// NewModelFromClient creates a new Anthropic model from an existing client.
func NewModelFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Model {
	opts := Options{Model: anthropic.ModelClaude3_5Sonnet20241022}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Model{client: client, opts: opts}
}

// Generate implements model.Model. The configured system instruction is sent
// through the dedicated system field.
func (m *Model) Generate(ctx context.Context, req model.Request) (string, error) {
	if len(req.Turns) == 0 {
		return "", fmt.Errorf("anthropic: no turns provided")
	}

	messages := make([]anthropic.MessageParam, 0, len(req.Turns))
	for _, t := range req.Turns {
		block := anthropic.NewTextBlock(t.Content)
		if t.Role == model.RoleAssistant {
			messages = append(messages, anthropic.NewAssistantMessage(block))
			continue
		}
		messages = append(messages, anthropic.NewUserMessage(block))
	}

	params := anthropic.MessageNewParams{
		Model:       m.opts.Model,
		Messages:    messages,
		MaxTokens:   int64(req.Config.MaxOutputTokens),
		Temperature: anthropic.Float(float64(req.Config.Temperature)),
		TopP:        anthropic.Float(float64(req.Config.TopP)),
		TopK:        anthropic.Int(int64(req.Config.TopK)),
	}
	if m.opts.SystemInstruction != "" {
		params.System = []anthropic.TextBlockParam{{Text: m.opts.SystemInstruction}}
	}

	resp, err := m.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic: api error: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.AsText().Text)
		}
	}
	return sb.String(), nil
}

// Info implements model.Model.
func (m *Model) Info() model.Info {
	return model.Info{Name: string(m.opts.Model), Provider: "anthropic"}
}
