// Package openai implements model.Model using the OpenAI Chat Completions
// API, as an alternative backend for deployments without Gemini access. It
// adapts Paibot's normalized turns into the SDK's message format.
package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"

	"github.com/Fl0zWer/Paibot/model"
)

// Options configure the OpenAI model adapter.
type Options struct {
	Model             string
	SystemInstruction string
}

// Model wraps the OpenAI Chat Completions API behind the generic
// model.Model interface.
type Model struct {
	client *openai.Client
	opts   Options
}

// Compile-time assertion.
var _ model.Model = (*Model)(nil)

// NewModel creates a new OpenAI model using the official client, which reads
// its credential from the environment.
func NewModel(optFns ...func(o *Options)) *Model {
	client := openai.NewClient()
	return NewModelFromClient(&client, optFns...)
}

// NewModelFromClient creates a new OpenAI model from an existing client.
func NewModelFromClient(client *openai.Client, optFns ...func(o *Options)) *Model {
	opts := Options{Model: openai.ChatModelGPT4oMini}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Model{client: client, opts: opts}
}

// Generate implements model.Model. The configured system instruction becomes
// a leading system message. TopK has no Chat Completions equivalent and is
// ignored.
func (m *Model) Generate(ctx context.Context, req model.Request) (string, error) {
	if len(req.Turns) == 0 {
		return "", fmt.Errorf("openai: no turns provided")
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Turns)+1)
	if m.opts.SystemInstruction != "" {
		messages = append(messages, openai.SystemMessage(m.opts.SystemInstruction))
	}
	for _, t := range req.Turns {
		if t.Role == model.RoleAssistant {
			messages = append(messages, openai.AssistantMessage(t.Content))
			continue
		}
		messages = append(messages, openai.UserMessage(t.Content))
	}

	params := openai.ChatCompletionNewParams{
		Messages:            messages,
		Model:               m.opts.Model,
		Temperature:         openai.Float(float64(req.Config.Temperature)),
		TopP:                openai.Float(float64(req.Config.TopP)),
		MaxCompletionTokens: openai.Int(int64(req.Config.MaxOutputTokens)),
	}

	resp, err := m.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai: api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

// Info implements model.Model.
func (m *Model) Info() model.Info {
	return model.Info{Name: m.opts.Model, Provider: "openai"}
}
