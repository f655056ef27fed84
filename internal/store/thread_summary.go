package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shipits/recap/internal/model"
)

type threadSummaryStore struct {
	coll *mongo.Collection
}

func newThreadSummaryStore(coll *mongo.Collection) ThreadSummaryStore {
	return &threadSummaryStore{coll: coll}
}

func (s *threadSummaryStore) GetByProject(ctx context.Context, projectID primitive.ObjectID) (*model.ThreadSummary, error) {
	var summary model.ThreadSummary
	err := s.coll.FindOne(ctx, bson.M{"project": projectID}).Decode(&summary)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &summary, nil
}

func (s *threadSummaryStore) Upsert(ctx context.Context, summary *model.ThreadSummary) error {
	// One row per project, replaced in full on every regeneration. The unique
	// index on project makes concurrent upserts converge on a single row.
	filter := bson.M{"project": summary.ProjectID}
	update := bson.M{"$set": bson.M{
		"project":       summary.ProjectID,
		"summary":       summary.Summary,
		"commentCount":  summary.CommentCount,
		"lastCommentId": summary.LastCommentID,
		"model":         summary.Model,
		"generationId":  summary.GenerationID,
		"lastUpdated":   summary.LastUpdated,
	}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stored model.ThreadSummary
	if err := s.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored); err != nil {
		return err
	}
	*summary = stored
	return nil
}
