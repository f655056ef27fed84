package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shipits/recap/internal/model"
)

type commentStore struct {
	coll *mongo.Collection
}

func newCommentStore(coll *mongo.Collection) CommentStore {
	return &commentStore{coll: coll}
}

func (s *commentStore) ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]model.Comment, error) {
	// Soft-deleted comments are invisible to summaries. Old rows predate the
	// isDeleted field, hence the $ne instead of an equality match.
	filter := bson.M{
		"project":   projectID,
		"isDeleted": bson.M{"$ne": true},
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	var comments []model.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}
