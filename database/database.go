package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

var Client *mongo.Client
var DB *mongo.Database

// Collection handles. Names are load-bearing: documents written by the
// previous deployment live under exactly these names.
var SubmittedPosts *mongo.Collection
var ApprovedPosts *mongo.Collection
var RejectedPosts *mongo.Collection
var Comments *mongo.Collection
var Users *mongo.Collection
var Admins *mongo.Collection
var AuditLogs *mongo.Collection
var Events *mongo.Collection
var EventSignups *mongo.Collection
var AuthAccounts *mongo.Collection

func Connect(uri, dbName string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var err error
	Client, err = mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return err
	}

	if err := Client.Ping(ctx, nil); err != nil {
		return err
	}

	DB = Client.Database(dbName)
	SubmittedPosts = DB.Collection("submitted_posts")
	ApprovedPosts = DB.Collection("approved_posts")
	RejectedPosts = DB.Collection("rejected_posts")
	Comments = DB.Collection("comments")
	Users = DB.Collection("users")
	Admins = DB.Collection("admins")
	AuditLogs = DB.Collection("admin_audit_logs")
	Events = DB.Collection("events")
	EventSignups = DB.Collection("event_signups")
	AuthAccounts = DB.Collection("auth_accounts")

	zap.L().Info("Connected to MongoDB", zap.String("database", dbName))
	return nil
}

func Disconnect() error {
	if Client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := Client.Disconnect(ctx); err != nil {
		return err
	}

	zap.L().Info("Disconnected from MongoDB")
	return nil
}
