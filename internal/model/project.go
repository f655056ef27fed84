package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project carries the slice of the forum's project schema that summary
// generation needs. The forum owns the full schema; this service only reads.
type Project struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Tags        []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	Status      string             `bson:"status" json:"status"`
	OwnerName   string             `bson:"ownerName" json:"ownerName"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
