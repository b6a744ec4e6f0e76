package llm

import (
	"context"
	"encoding/json"
)

// Provider abstracts a generative backend. The challenge generator talks to
// this interface only; vendors are swapped through configuration.
type Provider interface {
	// Generate sends one prompt and returns the model output. When
	// Request.Schema is set the provider asks the backend for structured
	// output conforming to it and validates the result before returning.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID reports the model this provider is configured with.
	ModelID() string
}

type Request struct {
	// System sets the model's role and constraints.
	System string

	// User is the user-turn prompt. Generation here is single-turn.
	User string

	// Schema, when set, requests structured JSON output.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Schema describes the JSON structure expected from the model.
type Schema struct {
	// Name identifies the schema (OpenAI response-format name, cache key).
	Name string

	// Definition is a JSON Schema document as a map.
	Definition map[string]any
}

type Response struct {
	// Content is the raw model output. With a Schema in the request this is
	// validated JSON; without one it is whatever text the model produced.
	Content json.RawMessage

	// Model is the backend model that actually served the request.
	Model string

	// StopReason is normalized across vendors: "end", "max_tokens" or "error".
	StopReason string

	Usage Usage
}

const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
	StopError     = "error"
)

type Usage struct {
	InputTokens  int
	OutputTokens int
}
