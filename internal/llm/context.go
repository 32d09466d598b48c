package llm

import "context"

// PurposeInsight tags requests that reflect on a completed assessment.
const PurposeInsight = "insight"

type purposeKey struct{}

// WithPurpose tags ctx so the audit log records why a request was made.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the tag set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if p, ok := ctx.Value(purposeKey{}).(string); ok && p != "" {
		return p
	}
	return "unknown"
}
