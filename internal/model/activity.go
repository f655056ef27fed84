package model

import "time"

// ActivityKind tags where a timeline item came from.
type ActivityKind string

const (
	ActivityKindComment ActivityKind = "comment"
	ActivityKindUpdate  ActivityKind = "update"
)

// AnnotatedActivityItem is one line of the linearized thread transcript fed
// to the completion model. Built fresh for each generation, never persisted.
type AnnotatedActivityItem struct {
	Kind        ActivityKind
	Display     string
	Depth       int
	CreatedAt   time.Time
	HasChildren bool
}
