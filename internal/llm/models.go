package llm

import "strings"

// ModelCost is USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost returns the USD cost of one request.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*c.InputPerMTok + float64(outputTokens)*c.OutputPerMTok) / 1_000_000
}

// model is one entry of the catalogue: the short name accepted in
// config, the id sent to the provider and its list price.
type model struct {
	provider string
	alias    string
	id       string
	cost     ModelCost
}

// catalogue lists the models relcheck offers per provider. Insights are
// short, so only the small and mid tiers are listed. Any other id is
// passed through unchanged and reported without a cost.
var catalogue = []model{
	{"anthropic", "claude-haiku", "claude-haiku-4-5-20251001", ModelCost{1, 5}},
	{"anthropic", "claude-sonnet", "claude-sonnet-4-5-20250929", ModelCost{3, 15}},
	{"openai", "gpt-4o-mini", "gpt-4o-mini", ModelCost{0.15, 0.6}},
	{"openai", "gpt-4.1-mini", "gpt-4.1-mini", ModelCost{0.4, 1.6}},
	{"openai", "gpt-4o", "gpt-4o", ModelCost{2.5, 10}},
	{"gemini", "gemini-flash", "gemini-2.5-flash", ModelCost{0.3, 2.5}},
	{"gemini", "gemini-flash-lite", "gemini-2.5-flash-lite", ModelCost{0.1, 0.4}},
	{"openrouter", "openrouter-flash", "google/gemini-2.5-flash", ModelCost{0.3, 2.5}},
}

// resolveModel maps a catalogue alias to the provider's model id.
// Unknown names are treated as ids already.
func resolveModel(provider, name string) string {
	for _, m := range catalogue {
		if m.provider == provider && m.alias == name {
			return m.id
		}
	}
	return name
}

// LookupCost returns the price of a model id or alias, or nil when the
// model is not in the catalogue. Dated snapshots such as
// "gpt-4o-mini-2024-07-18", which providers report back, match their base id.
func LookupCost(name string) *ModelCost {
	var best *model
	for i, m := range catalogue {
		switch {
		case m.id == name, m.alias == name:
			c := m.cost
			return &c
		case strings.HasPrefix(name, m.id+"-"):
			if best == nil || len(m.id) > len(best.id) {
				best = &catalogue[i]
			}
		}
	}
	if best == nil {
		return nil
	}
	c := best.cost
	return &c
}
