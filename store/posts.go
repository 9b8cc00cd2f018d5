package store

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"societyhub/apperrors"
	"societyhub/database"
	"societyhub/models"
)

type MongoPosts struct{}

func NewMongoPosts() *MongoPosts { return &MongoPosts{} }

func postColl(status models.ModerationStatus) *mongo.Collection {
	return database.DB.Collection(status.Collection())
}

func (MongoPosts) Insert(ctx context.Context, status models.ModerationStatus, p *models.Post) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	_, err := postColl(status).InsertOne(ctx, p)
	return err
}

func (MongoPosts) Get(ctx context.Context, status models.ModerationStatus, id primitive.ObjectID) (*models.Post, error) {
	var p models.Post
	err := postColl(status).FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s MongoPosts) Find(ctx context.Context, id primitive.ObjectID) (*models.Post, models.ModerationStatus, error) {
	for _, status := range []models.ModerationStatus{models.StatusSubmitted, models.StatusApproved, models.StatusRejected} {
		p, err := s.Get(ctx, status, id)
		if err == nil {
			return p, status, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", err
		}
	}
	return nil, "", apperrors.ErrNotFound
}

func (MongoPosts) List(ctx context.Context, status models.ModerationStatus) ([]models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "isPinned", Value: -1}, {Key: "createdAt", Value: -1}})
	cursor, err := postColl(status).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (MongoPosts) ListByAuthor(ctx context.Context, authorID string) ([]StatusPost, error) {
	var out []StatusPost
	for _, status := range []models.ModerationStatus{models.StatusSubmitted, models.StatusApproved, models.StatusRejected} {
		cursor, err := postColl(status).Find(ctx, bson.M{"authorId": authorID})
		if err != nil {
			return nil, err
		}
		var posts []models.Post
		if err := cursor.All(ctx, &posts); err != nil {
			return nil, err
		}
		for _, p := range posts {
			out = append(out, StatusPost{Post: p, Status: status})
		}
	}
	return out, nil
}

// Move relocates a post between moderation collections. The read-insert-delete
// runs inside a transaction when the deployment supports one (replica set);
// against a standalone mongod it falls back to the sequential steps the
// previous deployment used, which leaves the known crash window between
// insert and delete.
func (MongoPosts) Move(ctx context.Context, id primitive.ObjectID, from, to models.ModerationStatus, stamp func(*models.Post)) (*models.Post, error) {
	move := func(c context.Context) (*models.Post, error) {
		var p models.Post
		err := postColl(from).FindOne(c, bson.M{"_id": id}).Decode(&p)
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrNotFound
		}
		if err != nil {
			return nil, err
		}
		stamp(&p)
		if _, err := postColl(to).InsertOne(c, p); err != nil {
			return nil, err
		}
		if _, err := postColl(from).DeleteOne(c, bson.M{"_id": id}); err != nil {
			return nil, err
		}
		return &p, nil
	}

	session, err := database.Client.StartSession()
	if err == nil {
		defer session.EndSession(ctx)
		result, txErr := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
			return move(sc)
		})
		if txErr == nil {
			return result.(*models.Post), nil
		}
		if !txnUnsupported(txErr) {
			return nil, txErr
		}
		zap.L().Warn("transactions unsupported, moving post non-atomically", zap.Error(txErr))
	}

	return move(ctx)
}

func (MongoPosts) Update(ctx context.Context, status models.ModerationStatus, id primitive.ObjectID, set bson.M) error {
	result, err := postColl(status).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (MongoPosts) Delete(ctx context.Context, status models.ModerationStatus, id primitive.ObjectID) error {
	result, err := postColl(status).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (MongoPosts) IncViews(ctx context.Context, id primitive.ObjectID) error {
	_, err := database.ApprovedPosts.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"views": 1}})
	return err
}

func (MongoPosts) IncLikes(ctx context.Context, id primitive.ObjectID) error {
	result, err := database.ApprovedPosts.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"likes": 1}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (MongoPosts) LastSubmissionAt(ctx context.Context, authorID string) (int64, error) {
	var latest int64
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	for _, status := range []models.ModerationStatus{models.StatusSubmitted, models.StatusApproved, models.StatusRejected} {
		var p models.Post
		err := postColl(status).FindOne(ctx, bson.M{"authorId": authorID}, opts).Decode(&p)
		if err == mongo.ErrNoDocuments {
			continue
		}
		if err != nil {
			return 0, err
		}
		if p.CreatedAt > latest {
			latest = p.CreatedAt
		}
	}
	return latest, nil
}

// txnUnsupported reports whether the error means the server cannot do
// multi-document transactions (standalone mongod).
func txnUnsupported(err error) bool {
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 20 {
		return true
	}
	return strings.Contains(err.Error(), "Transaction numbers")
}
