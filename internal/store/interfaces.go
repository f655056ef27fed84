package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shipits/recap/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ProjectStore defines the contract for project data access
type ProjectStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Project, error)
}

// CommentStore defines the contract for comment data access
type CommentStore interface {
	// ListByProject returns all non-deleted comments for a project in
	// ascending creation order.
	ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]model.Comment, error)
}

// ProjectUpdateStore defines the contract for project update data access
type ProjectUpdateStore interface {
	// ListByProject returns all updates for a project in ascending creation order.
	ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]model.ProjectUpdate, error)
}

// ThreadSummaryStore defines the contract for the summary cache
type ThreadSummaryStore interface {
	GetByProject(ctx context.Context, projectID primitive.ObjectID) (*model.ThreadSummary, error)
	// Upsert overwrites the project's summary row, creating it when absent.
	// The stored row's ID is written back into summary.
	Upsert(ctx context.Context, summary *model.ThreadSummary) error
}
