package queue

// EventSummaryGenerated is the stream event emitted after a summary is
// regenerated and persisted.
const EventSummaryGenerated = "summary.generated"

// SummaryGeneratedEvent carries enough for consumers to act without a
// database read. CommentCount and UpdateCount are the counts the summary
// was generated against.
type SummaryGeneratedEvent struct {
	ProjectID    string
	GenerationID int64
	Model        string
	CommentCount int
	UpdateCount  int
	DurationMS   int64
}

// streamValues flattens the event into XAdd field-value pairs. An empty
// traceID is omitted.
func (e SummaryGeneratedEvent) streamValues(traceID string) map[string]any {
	values := map[string]any{
		"event":         EventSummaryGenerated,
		"project_id":    e.ProjectID,
		"generation_id": e.GenerationID,
		"model":         e.Model,
		"comment_count": e.CommentCount,
		"update_count":  e.UpdateCount,
		"duration_ms":   e.DurationMS,
	}
	if traceID != "" {
		values["trace_id"] = traceID
	}
	return values
}
