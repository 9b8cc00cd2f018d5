package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"societyhub/apperrors"
	"societyhub/database"
	"societyhub/models"
)

type MongoEvents struct{}

func NewMongoEvents() *MongoEvents { return &MongoEvents{} }

func (MongoEvents) Insert(ctx context.Context, e *models.Event) error {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	_, err := database.Events.InsertOne(ctx, e)
	return err
}

func (MongoEvents) Get(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	var e models.Event
	err := database.Events.FindOne(ctx, bson.M{"_id": id}).Decode(&e)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (MongoEvents) List(ctx context.Context, publicOnly bool) ([]models.Event, error) {
	filter := bson.M{}
	if publicOnly {
		filter["isPublic"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "startTime", Value: 1}})
	cursor, err := database.Events.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []models.Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (MongoEvents) Update(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	result, err := database.Events.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (MongoEvents) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := database.Events.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

type MongoSignups struct{}

func NewMongoSignups() *MongoSignups { return &MongoSignups{} }

// Insert persists the signup. With max > 0 the count check and the insert run
// in one transaction so two racing signups cannot both squeeze past a stale
// count; on a standalone mongod it degrades to the unguarded check-then-insert
// of the previous deployment.
func (s MongoSignups) Insert(ctx context.Context, signup *models.EventSignup, max int64) error {
	if signup.ID.IsZero() {
		signup.ID = primitive.NewObjectID()
	}

	insert := func(c context.Context) error {
		if max > 0 {
			count, err := database.EventSignups.CountDocuments(c, bson.M{"eventId": signup.EventID})
			if err != nil {
				return err
			}
			if count >= max {
				return &apperrors.CapacityError{Max: max}
			}
		}
		_, err := database.EventSignups.InsertOne(c, signup)
		return err
	}

	if max <= 0 {
		return insert(ctx)
	}

	session, err := database.Client.StartSession()
	if err == nil {
		defer session.EndSession(ctx)
		_, txErr := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
			return nil, insert(sc)
		})
		if txErr == nil {
			return nil
		}
		if !txnUnsupported(txErr) {
			return txErr
		}
		zap.L().Warn("transactions unsupported, capacity check is racy", zap.Error(txErr))
	}

	return insert(ctx)
}

func (MongoSignups) ListByEvent(ctx context.Context, eventID primitive.ObjectID) ([]models.EventSignup, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: 1}})
	cursor, err := database.EventSignups.Find(ctx, bson.M{"eventId": eventID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var signups []models.EventSignup
	if err := cursor.All(ctx, &signups); err != nil {
		return nil, err
	}
	return signups, nil
}

func (MongoSignups) CountByEvent(ctx context.Context, eventID primitive.ObjectID) (int64, error) {
	return database.EventSignups.CountDocuments(ctx, bson.M{"eventId": eventID})
}

func (MongoSignups) SetPaid(ctx context.Context, eventID, id primitive.ObjectID, paid bool) error {
	filter := bson.M{"_id": id, "eventId": eventID}
	result, err := database.EventSignups.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"paid": paid}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (MongoSignups) DeleteByEvent(ctx context.Context, eventID primitive.ObjectID) (int64, error) {
	result, err := database.EventSignups.DeleteMany(ctx, bson.M{"eventId": eventID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
