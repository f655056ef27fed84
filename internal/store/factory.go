package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names follow the forum's Mongoose pluralization.
const (
	collProjects        = "projects"
	collComments        = "comments"
	collProjectUpdates  = "projectupdates"
	collThreadSummaries = "threadsummaries"
)

type Stores struct {
	database *mongo.Database
}

func NewStores(database *mongo.Database) *Stores {
	return &Stores{database: database}
}

func (s *Stores) Projects() ProjectStore {
	return newProjectStore(s.database.Collection(collProjects))
}

func (s *Stores) Comments() CommentStore {
	return newCommentStore(s.database.Collection(collComments))
}

func (s *Stores) ProjectUpdates() ProjectUpdateStore {
	return newProjectUpdateStore(s.database.Collection(collProjectUpdates))
}

func (s *Stores) ThreadSummaries() ThreadSummaryStore {
	return newThreadSummaryStore(s.database.Collection(collThreadSummaries))
}

// EnsureIndexes creates the indexes this service relies on. The forum owns
// the other collections' indexes; only the summary cache is ours.
func (s *Stores) EnsureIndexes(ctx context.Context) error {
	summaries := s.database.Collection(collThreadSummaries)
	_, err := summaries.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "project", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("creating thread summary index: %w", err)
	}
	return nil
}
