package model

import (
	"context"
	"fmt"
	"sync"
)

// Conversation roles used in prompts. Providers map RoleAssistant onto their
// native equivalent (e.g. "model" for Gemini).
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one role-attributed message of a prompt, oldest first.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenerationConfig carries the sampling options recognized by every provider.
type GenerationConfig struct {
	Temperature     float32 `json:"temperature"`
	TopP            float32 `json:"top_p"`
	TopK            int32   `json:"top_k"`
	MaxOutputTokens int32   `json:"max_output_tokens"`
}

// DefaultGenerationConfig returns the fixed configuration used for chat turns.
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		Temperature:     0.75,
		TopP:            0.9,
		TopK:            40,
		MaxOutputTokens: 512,
	}
}

// Request captures the normalized model input produced by the orchestrator.
type Request struct {
	Turns  []Turn
	Config GenerationConfig
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "gemini", "openai", "anthropic", "mock"
}

// Model is the minimal synchronous interface required to drive generation.
type Model interface {
	Generate(ctx context.Context, req Request) (string, error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests. Canned
// responses are keyed by the content of the final turn; unknown prompts get
// a deterministic echo. Every request is recorded for assertions.
type MockModel struct {
	mu        sync.Mutex
	info      Info
	responses map[string]string
	requests  []Request
	err       error
}

// NewMockModel constructs a MockModel with the given display name.
func NewMockModel(name string) *MockModel {
	return &MockModel{
		info:      Info{Name: name, Provider: "mock"},
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned completion for an input prompt.
func (m *MockModel) AddResponse(prompt, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[prompt] = response
}

// FailWith makes every subsequent Generate call return err.
func (m *MockModel) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Generate implements Model.
func (m *MockModel) Generate(_ context.Context, req Request) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	if m.err != nil {
		return "", m.err
	}
	if len(req.Turns) == 0 {
		return "", fmt.Errorf("no turns provided")
	}
	last := req.Turns[len(req.Turns)-1]
	if resp, ok := m.responses[last.Content]; ok {
		return resp, nil
	}
	return fmt.Sprintf("Mock response to: %s", last.Content), nil
}

// Requests returns a copy of every request seen so far, in order.
func (m *MockModel) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// Info implements Model.
func (m *MockModel) Info() Info { return m.info }
