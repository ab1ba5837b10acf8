// Package gemini implements model.Model on top of the Google GenAI SDK. It
// is the default provider: the original deployment runs against the Gemini
// API with a credential taken from the environment at process start.
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/Fl0zWer/Paibot/model"
)

// DefaultModel is the model name used when none is configured.
const DefaultModel = "gemini-pro"

// Options configure the Gemini model adapter.
type Options struct {
	Model             string
	SystemInstruction string
}

// Model wraps the GenAI client behind the generic model.Model interface.
type Model struct {
	client *genai.Client
	opts   Options
}

// Compile-time assertion.
var _ model.Model = (*Model)(nil)

// NewModel creates a Gemini model from an API key. An empty key is a
// configuration error; deployments without one must inject another Model.
func NewModel(ctx context.Context, apiKey string, optFns ...func(o *Options)) (*Model, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return NewModelFromClient(client, optFns...), nil
}

// NewModelFromClient creates a Gemini model from an existing client.
func NewModelFromClient(client *genai.Client, optFns ...func(o *Options)) *Model {
	opts := Options{Model: DefaultModel}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Model{client: client, opts: opts}
}

// Generate implements model.Model. Assistant turns map onto Gemini's "model"
// role; the system instruction configured at construction rides along with
// every request.
func (m *Model) Generate(ctx context.Context, req model.Request) (string, error) {
	if len(req.Turns) == 0 {
		return "", fmt.Errorf("gemini: no turns provided")
	}

	contents := make([]*genai.Content, 0, len(req.Turns))
	for _, t := range req.Turns {
		var role genai.Role = genai.RoleUser
		if t.Role == model.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(t.Content, role))
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(req.Config.Temperature),
		TopP:            genai.Ptr(req.Config.TopP),
		TopK:            genai.Ptr(float32(req.Config.TopK)),
		MaxOutputTokens: req.Config.MaxOutputTokens,
	}
	if m.opts.SystemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(m.opts.SystemInstruction, genai.RoleUser)
	}

	resp, err := m.client.Models.GenerateContent(ctx, m.opts.Model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini: api error: %w", err)
	}
	return resp.Text(), nil
}

// Info implements model.Model.
func (m *Model) Info() model.Info {
	return model.Info{Name: m.opts.Model, Provider: "gemini"}
}
