package logger

import "context"

type contextKey struct{}

var logFieldsKey contextKey

// LogFields carries request-scoped identifiers that every log record in the
// request should include. Callers add fields as they learn them; the slog
// handler reads the merged set back out at emit time.
type LogFields struct {
	ProjectID    *string // forum project id (Mongo ObjectID hex)
	GenerationID *int64  // summary generation id
	Component    string  // component name, e.g. "recap.service.summary"
}

// overlay returns f with any field set on next replacing f's value.
func (f LogFields) overlay(next LogFields) LogFields {
	if next.ProjectID != nil {
		f.ProjectID = next.ProjectID
	}
	if next.GenerationID != nil {
		f.GenerationID = next.GenerationID
	}
	if next.Component != "" {
		f.Component = next.Component
	}
	return f
}

// WithLogFields returns a context whose log fields are the existing ones
// overlaid with fields. Cancellation and deadlines pass through untouched.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	return context.WithValue(ctx, logFieldsKey, GetLogFields(ctx).overlay(fields))
}

// GetLogFields returns the fields stored on ctx, or the zero value.
func GetLogFields(ctx context.Context) LogFields {
	fields, _ := ctx.Value(logFieldsKey).(LogFields)
	return fields
}

// Ptr makes a pointer from a value, for inline LogFields literals.
func Ptr[T any](v T) *T {
	return &v
}

// Truncate caps s at maxLen bytes, marking the cut with "...". Generated
// summary text goes through this before it is logged.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
