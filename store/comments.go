package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"societyhub/apperrors"
	"societyhub/database"
	"societyhub/models"
)

type MongoComments struct{}

func NewMongoComments() *MongoComments { return &MongoComments{} }

func (MongoComments) Insert(ctx context.Context, c *models.Comment) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	_, err := database.Comments.InsertOne(ctx, c)
	return err
}

func (MongoComments) Get(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	var c models.Comment
	err := database.Comments.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (MongoComments) ListByPost(ctx context.Context, postID primitive.ObjectID) ([]models.Comment, error) {
	return listComments(ctx, bson.M{"postId": postID})
}

func (MongoComments) ListByAuthor(ctx context.Context, authorID string) ([]models.Comment, error) {
	return listComments(ctx, bson.M{"authorId": authorID})
}

func listComments(ctx context.Context, filter bson.M) ([]models.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := database.Comments.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var comments []models.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (MongoComments) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := database.Comments.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (MongoComments) DeleteByPost(ctx context.Context, postID primitive.ObjectID) (int64, error) {
	result, err := database.Comments.DeleteMany(ctx, bson.M{"postId": postID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func (MongoComments) IncLikes(ctx context.Context, id primitive.ObjectID) error {
	result, err := database.Comments.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"likes": 1}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
