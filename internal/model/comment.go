package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommentType classifies a comment the way the forum's compose form does.
type CommentType string

const (
	CommentTypeGeneral     CommentType = "general"
	CommentTypeQuestion    CommentType = "question"
	CommentTypeImprovement CommentType = "improvement"
	CommentTypeAnswer      CommentType = "answer"
)

// Comment is a row in the forum's comments collection. Field names follow the
// original Mongoose schema, which is why they are camelCase.
type Comment struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	ProjectID     primitive.ObjectID  `bson:"project" json:"projectId"`
	ParentID      *primitive.ObjectID `bson:"parentComment,omitempty" json:"parentId,omitempty"`
	AuthorID      primitive.ObjectID  `bson:"author" json:"authorId"`
	AuthorName    string              `bson:"authorName" json:"authorName"`
	Content       string              `bson:"content" json:"content"`
	Type          CommentType         `bson:"type" json:"type"`
	Pinned        bool                `bson:"isPinned" json:"isPinned"`
	IsQuestion    bool                `bson:"isQuestion" json:"isQuestion"`
	IsAnswered    bool                `bson:"isAnswered" json:"isAnswered"`
	ReactionCount int                 `bson:"reactionCount" json:"reactionCount"`
	Deleted       bool                `bson:"isDeleted" json:"-"`
	CreatedAt     time.Time           `bson:"createdAt" json:"createdAt"`
}

// IsReply reports whether the comment references a parent comment.
func (c Comment) IsReply() bool {
	return c.ParentID != nil
}
