package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ThreadSummary is the per-project summary cache row, overwritten in place on
// every regeneration. CommentCount and LastCommentID keep their original
// schema names but cover every activity item, updates included: they record
// the thread state the summary was generated against, which is what staleness
// checks compare.
type ThreadSummary struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProjectID     primitive.ObjectID `bson:"project" json:"projectId"`
	Summary       string             `bson:"summary" json:"summary"`
	CommentCount  int                `bson:"commentCount" json:"commentCount"`
	LastCommentID string             `bson:"lastCommentId" json:"lastCommentId"`
	Model         string             `bson:"model,omitempty" json:"model,omitempty"`
	GenerationID  int64              `bson:"generationId,omitempty" json:"generationId,omitempty"`
	LastUpdated   time.Time          `bson:"lastUpdated" json:"lastUpdated"`
}
