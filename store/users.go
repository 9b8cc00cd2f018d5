package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"societyhub/apperrors"
	"societyhub/database"
	"societyhub/models"
)

type MongoUsers struct{}

func NewMongoUsers() *MongoUsers { return &MongoUsers{} }

func (MongoUsers) Upsert(ctx context.Context, u *models.WebsiteUser) error {
	opts := options.Replace().SetUpsert(true)
	_, err := database.Users.ReplaceOne(ctx, bson.M{"_id": u.UID}, u, opts)
	return err
}

func (MongoUsers) Get(ctx context.Context, uid string) (*models.WebsiteUser, error) {
	var u models.WebsiteUser
	err := database.Users.FindOne(ctx, bson.M{"_id": uid}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (MongoUsers) List(ctx context.Context) ([]models.WebsiteUser, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := database.Users.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.WebsiteUser
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SetRestriction upserts so accounts that predate the users mirror still get
// a document created; without one the restriction would never be enforced.
func (MongoUsers) SetRestriction(ctx context.Context, uid, by, reason string, at int64) error {
	update := bson.M{"$set": bson.M{
		"restricted":        true,
		"restrictedBy":      by,
		"restrictedAt":      at,
		"restrictionReason": reason,
	}}
	opts := options.Update().SetUpsert(true)
	_, err := database.Users.UpdateOne(ctx, bson.M{"_id": uid}, update, opts)
	return err
}

func (MongoUsers) ClearRestriction(ctx context.Context, uid string) error {
	update := bson.M{
		"$set":   bson.M{"restricted": false},
		"$unset": bson.M{"restrictedBy": "", "restrictedAt": "", "restrictionReason": ""},
	}
	opts := options.Update().SetUpsert(true)
	_, err := database.Users.UpdateOne(ctx, bson.M{"_id": uid}, update, opts)
	return err
}

func (MongoUsers) SetDisplayName(ctx context.Context, uid, name string) error {
	result, err := database.Users.UpdateOne(ctx, bson.M{"_id": uid}, bson.M{"$set": bson.M{"displayName": name}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

type MongoAdmins struct{}

func NewMongoAdmins() *MongoAdmins { return &MongoAdmins{} }

func (MongoAdmins) IsAdmin(ctx context.Context, uid string) (bool, error) {
	count, err := database.Admins.CountDocuments(ctx, bson.M{"_id": uid})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

type MongoAudit struct{}

func NewMongoAudit() *MongoAudit { return &MongoAudit{} }

func (MongoAudit) Append(ctx context.Context, e *models.AuditEntry) error {
	_, err := database.AuditLogs.InsertOne(ctx, e)
	return err
}

func (MongoAudit) List(ctx context.Context, limit int64) ([]models.AuditEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}).SetLimit(limit)
	cursor, err := database.AuditLogs.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []models.AuditEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
