// Package model defines the provider-agnostic boundary to the generative
// model backing Paibot.
//
// Core goals:
//   - One synchronous Generate contract for all providers
//   - A fixed, recognized GenerationConfig (temperature, top-p, top-k,
//     max output tokens) passed on every request
//   - System instruction supplied at provider construction time
//   - Lightweight mocking for tests (MockModel)
//
// Providers (Gemini, OpenAI, Anthropic) live in sub-packages and implement
// the Model interface so the orchestrator stays decoupled from vendor SDKs.
// Provider errors propagate to the caller of the turn unmodified.
package model
