// Package auth is the identity side of the system: account records, password
// checks, custom claims and the bearer tokens the API hands out.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"societyhub/apperrors"
	"societyhub/database"
	"societyhub/models"
)

// Provider is what the rest of the code sees of the identity service: account
// lookup, credential checks and the custom-claims store.
type Provider interface {
	Register(ctx context.Context, email, password, displayName string) (*models.Account, error)
	Authenticate(ctx context.Context, email, password string) (*models.Account, error)
	GetAccount(ctx context.Context, uid string) (*models.Account, error)
	// SetClaims merges the given keys into the account's custom claims.
	SetClaims(ctx context.Context, uid string, claims map[string]interface{}) error
	// UnsetClaims removes the given keys from the account's custom claims.
	UnsetClaims(ctx context.Context, uid string, keys ...string) error
	UpdateDisplayName(ctx context.Context, uid, name string) error
}

type MongoProvider struct{}

func NewMongoProvider() *MongoProvider { return &MongoProvider{} }

func (MongoProvider) Register(ctx context.Context, email, password, displayName string) (*models.Account, error) {
	var existing models.Account
	err := database.AuthAccounts.FindOne(ctx, bson.M{"email": email}).Decode(&existing)
	if err == nil {
		return nil, apperrors.ErrEmailInUse
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		UID:          uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  displayName,
		CreatedAt:    time.Now().Unix(),
	}
	if _, err := database.AuthAccounts.InsertOne(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (MongoProvider) Authenticate(ctx context.Context, email, password string) (*models.Account, error) {
	var account models.Account
	err := database.AuthAccounts.FindOne(ctx, bson.M{"email": email}).Decode(&account)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	if account.Disabled {
		return nil, apperrors.ErrRestricted
	}
	return &account, nil
}

func (MongoProvider) GetAccount(ctx context.Context, uid string) (*models.Account, error) {
	var account models.Account
	err := database.AuthAccounts.FindOne(ctx, bson.M{"_id": uid}).Decode(&account)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (MongoProvider) SetClaims(ctx context.Context, uid string, claims map[string]interface{}) error {
	set := bson.M{}
	for k, v := range claims {
		set["claims."+k] = v
	}
	result, err := database.AuthAccounts.UpdateOne(ctx, bson.M{"_id": uid}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (MongoProvider) UnsetClaims(ctx context.Context, uid string, keys ...string) error {
	unset := bson.M{}
	for _, k := range keys {
		unset["claims."+k] = ""
	}
	result, err := database.AuthAccounts.UpdateOne(ctx, bson.M{"_id": uid}, bson.M{"$unset": unset})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (MongoProvider) UpdateDisplayName(ctx context.Context, uid, name string) error {
	result, err := database.AuthAccounts.UpdateOne(ctx, bson.M{"_id": uid}, bson.M{"$set": bson.M{"displayName": name}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
