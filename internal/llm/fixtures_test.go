package llm

const insightJSON = `{"summary":"Mostly steady.","strengths":["trust"],"concerns":[],"suggestions":["talk weekly"]}`

// insightSchema mirrors the schema the insight service sends.
func insightSchema() *Schema {
	list := map[string]any{
		"type":     "array",
		"items":    map[string]any{"type": "string"},
		"maxItems": 4,
	}
	return &Schema{
		Name:        "assessment-insight",
		Description: "A short reflection on one completed relationship check-in",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"summary":     map[string]any{"type": "string", "minLength": 1},
				"strengths":   list,
				"concerns":    list,
				"suggestions": list,
			},
			"required":             []any{"summary", "strengths", "concerns", "suggestions"},
			"additionalProperties": false,
		},
	}
}

func insightRequest() Request {
	return Request{
		System: "You reflect on relationship check-ins.",
		Messages: []Message{{
			Role:    RoleUser,
			Content: "Score 72% (good). Red flags: [critical] feels unsafe raising issues.",
		}},
		Schema:    insightSchema(),
		MaxTokens: 512,
	}
}
