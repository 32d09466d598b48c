package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Provider generates one structured reply per request.
type Provider interface {
	// Generate sends req and returns the reply. When req.Schema is set the
	// reply content has already been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the model id requests are sent to.
	ModelID() string
}

// Request is a single-turn prompt.
type Request struct {
	System      string
	Messages    []Message
	Schema      *Schema // nil for free text
	MaxTokens   int
	Temperature float64 // 0 leaves the provider default
}

// Message is one conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role identifies who wrote a Message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema the reply must satisfy. Name is used as
// the schema or tool name by providers that need one.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response is a provider reply.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string // StopEnd or StopMaxTokens
}

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// Usage is the token count of one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

func newUsage(in, out int) Usage {
	return Usage{InputTokens: in, OutputTokens: out, TotalTokens: in + out}
}

// reply checks raw against the request schema and wraps it as a Response.
// A truncated reply that fails validation is reported as such.
func reply(req Request, raw json.RawMessage, usage Usage, model, stop string) (*Response, error) {
	if err := ValidateResponse(req.Schema, raw); err != nil {
		var inv *ErrInvalidResponse
		if stop == StopMaxTokens && errors.As(err, &inv) {
			inv.Truncated = true
		}
		return nil, err
	}
	return &Response{Content: raw, Usage: usage, Model: model, StopReason: stop}, nil
}
