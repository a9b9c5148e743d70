// Package explain generates short tutor-style explanations of quiz answers
// using a hosted LLM. Explanations are optional: the quiz works without a
// configured provider.
package explain

import (
	"context"
	"encoding/json"
)

// Provider sends a single-turn prompt to an LLM.
type Provider interface {
	// Complete returns the model's reply. When the prompt carries a Schema
	// the reply JSON has been validated against it.
	Complete(ctx context.Context, p Prompt) (*Completion, error)

	// Model returns the model identifier requests are sent to.
	Model() string
}

// Prompt is one request to a Provider.
type Prompt struct {
	System string
	User   string

	// Schema asks the provider for structured JSON output.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Schema names a JSON Schema the reply must satisfy.
type Schema struct {
	// Name is kebab-case, e.g. "answer-explanation".
	Name        string
	Description string
	Definition  map[string]any
}

// Completion is a provider reply.
type Completion struct {
	JSON  json.RawMessage
	Model string

	InputTokens  int
	OutputTokens int
}

// TotalTokens returns input plus output tokens.
func (c *Completion) TotalTokens() int { return c.InputTokens + c.OutputTokens }
