package llm

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
)

// MockResponse is one queued reply of a MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider replays queued replies in order and records every request.
// An offline mock answers schema requests from the schema itself once the
// queue is empty; otherwise an empty queue reports the provider as
// unavailable.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	offline   bool
	Calls     []Request
}

// NewMockProvider returns a mock that replays responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// NewOfflineProvider returns the mock behind the "mock" provider setting.
func NewOfflineProvider() *MockProvider {
	return &MockProvider{offline: true}
}

func (m *MockProvider) ModelID() string { return "mock" }

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, req)

	if len(m.responses) > 0 {
		next := m.responses[0]
		m.responses = m.responses[1:]
		if next.Err != nil {
			return nil, next.Err
		}
		return &Response{Content: next.Content, Usage: next.Usage, Model: "mock", StopReason: StopEnd}, nil
	}

	if !m.offline || req.Schema == nil {
		return nil, &ErrProviderUnavailable{}
	}
	raw, err := json.Marshal(stubValue(req.Schema.Definition))
	if err != nil {
		return nil, &ErrInvalidResponse{Err: err}
	}
	return reply(req, raw, Usage{}, "mock", StopEnd)
}

// CallCount returns the number of Generate calls so far.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

const offlineText = "offline reply"

// stubValue builds the smallest value satisfying def: required object
// properties only, minimum-length arrays and strings, the first enum value.
func stubValue(def map[string]any) any {
	if enum, ok := def["enum"].([]any); ok && len(enum) > 0 {
		return enum[0]
	}
	switch def["type"] {
	case "object":
		obj := map[string]any{}
		props, _ := def["properties"].(map[string]any)
		required, _ := def["required"].([]any)
		for _, r := range required {
			name, _ := r.(string)
			prop, _ := props[name].(map[string]any)
			obj[name] = stubValue(prop)
		}
		return obj
	case "array":
		items, _ := def["items"].(map[string]any)
		arr := []any{}
		for range intKeyword(def, "minItems") {
			arr = append(arr, stubValue(items))
		}
		return arr
	case "string":
		if n := intKeyword(def, "minLength"); n > len(offlineText) {
			return offlineText + strings.Repeat(".", n-len(offlineText))
		}
		return offlineText
	case "integer", "number":
		return intKeyword(def, "minimum")
	case "boolean":
		return false
	default:
		return nil
	}
}

// intKeyword reads a numeric schema keyword written as a Go int or as a
// decoded JSON number.
func intKeyword(def map[string]any, key string) int {
	switch v := def[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}
