package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// ModerationStatus says which of the three moderation collections a post
// lives in. A post exists in exactly one collection at any time; moving it
// between collections is the only status transition.
type ModerationStatus string

const (
	StatusSubmitted ModerationStatus = "submitted"
	StatusApproved  ModerationStatus = "approved"
	StatusRejected  ModerationStatus = "rejected"
)

// Collection returns the mongo collection name backing the status.
func (s ModerationStatus) Collection() string {
	switch s {
	case StatusApproved:
		return "approved_posts"
	case StatusRejected:
		return "rejected_posts"
	default:
		return "submitted_posts"
	}
}

type Post struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title    string             `bson:"title" json:"title"`
	Content  string             `bson:"content" json:"content"`
	Author   string             `bson:"author" json:"author"`
	AuthorID string             `bson:"authorId" json:"authorId"`
	Category string             `bson:"category,omitempty" json:"category"`
	Tags     []string           `bson:"tags" json:"tags"`
	Likes    int64              `bson:"likes" json:"likes"`
	Views    int64              `bson:"views" json:"views"`
	IsPinned bool               `bson:"isPinned" json:"isPinned"`
	IsLocked bool               `bson:"isLocked" json:"isLocked"`

	CreatedAt int64 `bson:"createdAt" json:"createdAt"`
	UpdatedAt int64 `bson:"updatedAt" json:"updatedAt"`

	// Moderation trail, stamped when the post moves collections.
	IsApproved      bool   `bson:"isApproved" json:"isApproved"`
	ApprovedBy      string `bson:"approvedBy,omitempty" json:"approvedBy,omitempty"`
	ApprovedAt      int64  `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`
	RejectedBy      string `bson:"rejectedBy,omitempty" json:"rejectedBy,omitempty"`
	RejectedAt      int64  `bson:"rejectedAt,omitempty" json:"rejectedAt,omitempty"`
	RejectionReason string `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
}

type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PostID    primitive.ObjectID `bson:"postId" json:"postId"`
	Content   string             `bson:"content" json:"content"`
	Author    string             `bson:"author" json:"author"`
	AuthorID  string             `bson:"authorId" json:"authorId"`
	Likes     int64              `bson:"likes" json:"likes"`
	CreatedAt int64              `bson:"createdAt" json:"createdAt"`
	UpdatedAt int64              `bson:"updatedAt" json:"updatedAt"`
}
