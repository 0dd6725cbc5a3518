package llm

import "context"

// Request purposes recorded with each logged call.
const (
	PurposeHint        = "hint"
	PurposeDistractors = "distractors"
	PurposeUnknown     = "unknown"
)

type purposeKey struct{}

// WithPurpose labels the calls made with ctx.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or PurposeUnknown.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return PurposeUnknown
}
