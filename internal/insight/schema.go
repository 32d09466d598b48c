package insight

import "github.com/relcheck/relcheck/internal/llm"

// Schema defines the JSON shape the LLM must return for an insight.
var Schema = &llm.Schema{
	Name:        "assessment-insight",
	Description: "A short reflection on one completed relationship check-in",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "2-4 sentence overview of where the relationship stands",
			},
			"strengths": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"maxItems":    4,
				"description": "Specific things that are going well (5-12 words each)",
			},
			"concerns": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"maxItems":    4,
				"description": "Specific issues worth attention (5-12 words each)",
			},
			"suggestions": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"maxItems":    4,
				"description": "Concrete, small next steps (one sentence each)",
			},
		},
		"required":             []any{"summary", "strengths", "concerns", "suggestions"},
		"additionalProperties": false,
	},
}
