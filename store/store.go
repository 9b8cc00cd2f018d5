// Package store wraps the mongo collections behind interfaces so the service
// layer can be exercised without a running database.
package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"societyhub/models"
)

// StatusPost is a post annotated with the collection it was found in.
type StatusPost struct {
	models.Post `bson:",inline"`
	Status      models.ModerationStatus `bson:"-" json:"status"`
}

type PostStore interface {
	Insert(ctx context.Context, status models.ModerationStatus, p *models.Post) error
	Get(ctx context.Context, status models.ModerationStatus, id primitive.ObjectID) (*models.Post, error)
	// Find searches all three moderation collections for the id.
	Find(ctx context.Context, id primitive.ObjectID) (*models.Post, models.ModerationStatus, error)
	List(ctx context.Context, status models.ModerationStatus) ([]models.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]StatusPost, error)
	// Move relocates a post from one moderation collection to another,
	// applying stamp to the document before it lands in the destination.
	// Returns the stamped post, or apperrors.ErrNotFound if the source
	// collection does not hold the id.
	Move(ctx context.Context, id primitive.ObjectID, from, to models.ModerationStatus, stamp func(*models.Post)) (*models.Post, error)
	Update(ctx context.Context, status models.ModerationStatus, id primitive.ObjectID, set bson.M) error
	Delete(ctx context.Context, status models.ModerationStatus, id primitive.ObjectID) error
	IncViews(ctx context.Context, id primitive.ObjectID) error
	IncLikes(ctx context.Context, id primitive.ObjectID) error
	// LastSubmissionAt returns the newest createdAt among the author's posts
	// across all three collections, 0 if they have none.
	LastSubmissionAt(ctx context.Context, authorID string) (int64, error)
}

type CommentStore interface {
	Insert(ctx context.Context, c *models.Comment) error
	Get(ctx context.Context, id primitive.ObjectID) (*models.Comment, error)
	ListByPost(ctx context.Context, postID primitive.ObjectID) ([]models.Comment, error)
	ListByAuthor(ctx context.Context, authorID string) ([]models.Comment, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	// DeleteByPost removes every comment referencing the post and reports
	// how many went.
	DeleteByPost(ctx context.Context, postID primitive.ObjectID) (int64, error)
	IncLikes(ctx context.Context, id primitive.ObjectID) error
}

type EventStore interface {
	Insert(ctx context.Context, e *models.Event) error
	Get(ctx context.Context, id primitive.ObjectID) (*models.Event, error)
	List(ctx context.Context, publicOnly bool) ([]models.Event, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type SignupStore interface {
	// Insert persists the signup, enforcing maxSignups when max > 0. A full
	// event yields *apperrors.CapacityError.
	Insert(ctx context.Context, s *models.EventSignup, max int64) error
	ListByEvent(ctx context.Context, eventID primitive.ObjectID) ([]models.EventSignup, error)
	CountByEvent(ctx context.Context, eventID primitive.ObjectID) (int64, error)
	// SetPaid flips the payment flag on a signup belonging to the event;
	// a signup under a different event yields apperrors.ErrNotFound.
	SetPaid(ctx context.Context, eventID, id primitive.ObjectID, paid bool) error
	DeleteByEvent(ctx context.Context, eventID primitive.ObjectID) (int64, error)
}

type UserStore interface {
	Upsert(ctx context.Context, u *models.WebsiteUser) error
	Get(ctx context.Context, uid string) (*models.WebsiteUser, error)
	List(ctx context.Context) ([]models.WebsiteUser, error)
	SetRestriction(ctx context.Context, uid, by, reason string, at int64) error
	ClearRestriction(ctx context.Context, uid string) error
	SetDisplayName(ctx context.Context, uid, name string) error
}

type AdminStore interface {
	IsAdmin(ctx context.Context, uid string) (bool, error)
}

type AuditStore interface {
	Append(ctx context.Context, e *models.AuditEntry) error
	List(ctx context.Context, limit int64) ([]models.AuditEntry, error)
}
