package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shipits/recap/internal/model"
)

type projectUpdateStore struct {
	coll *mongo.Collection
}

func newProjectUpdateStore(coll *mongo.Collection) ProjectUpdateStore {
	return &projectUpdateStore{coll: coll}
}

func (s *projectUpdateStore) ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]model.ProjectUpdate, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := s.coll.Find(ctx, bson.M{"project": projectID}, opts)
	if err != nil {
		return nil, err
	}

	var updates []model.ProjectUpdate
	if err := cursor.All(ctx, &updates); err != nil {
		return nil, err
	}
	return updates, nil
}
