package database

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"skillswap/internal/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	client   *mongo.Client
	database *mongo.Database
	once     sync.Once
)

// Collection names backing the SkillSwap record store.
const (
	CollectionMembers      = "members"
	CollectionProfiles     = "userprofiles"
	CollectionChatMessages = "chatmessages"
	CollectionSwapRequests = "swaprequests"
	CollectionSessions     = "sessions"
	CollectionReviews      = "reviews"
	CollectionTests        = "tests"
)

// InitMongoDB initializes the MongoDB connection
func InitMongoDB(cfg config.MongoConfig) error {
	var err error

	once.Do(func() {
		err = connect(cfg)
	})

	return err
}

func connect(cfg config.MongoConfig) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout).
		SetRetryWrites(true).
		SetRetryReads(true)

	var err error
	client, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	database = client.Database(cfg.Database)

	log.Printf("Connected to MongoDB database: %s", cfg.Database)

	go func() {
		if err := createIndexes(); err != nil {
			log.Printf("Warning: Failed to create indexes: %v", err)
		}
	}()

	return nil
}

// GetDB returns the database instance
func GetDB() *mongo.Database {
	if database == nil {
		log.Fatal("Database not initialized. Call InitMongoDB first.")
	}
	return database
}

// GetClient returns the MongoDB client
func GetClient() *mongo.Client {
	if client == nil {
		log.Fatal("MongoDB client not initialized. Call InitMongoDB first.")
	}
	return client
}

// Disconnect closes the MongoDB connection
func Disconnect() error {
	if client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return client.Disconnect(ctx)
	}
	return nil
}

// HealthCheck reports connection health for the /health endpoint
func HealthCheck() map[string]interface{} {
	if database == nil {
		return map[string]interface{}{
			"status": "disconnected",
			"error":  "database not initialized",
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		}
	}

	return map[string]interface{}{
		"status":   "connected",
		"database": database.Name(),
	}
}

// createIndexes creates the indexes each collection is queried by.
func createIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	indexes := []struct {
		collection string
		indexes    []mongo.IndexModel
	}{
		{
			collection: CollectionMembers,
			indexes: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "email", Value: 1}},
					Options: options.Index().SetUnique(true),
				},
				{
					Keys: bson.D{{Key: "created_at", Value: 1}},
				},
			},
		},
		{
			collection: CollectionProfiles,
			indexes: []mongo.IndexModel{
				{
					Keys: bson.D{{Key: "is_available", Value: 1}},
				},
				{
					Keys: bson.D{{Key: "full_name", Value: 1}},
				},
			},
		},
		{
			collection: CollectionChatMessages,
			indexes: []mongo.IndexModel{
				{
					Keys: bson.D{{Key: "sender_id", Value: 1}},
				},
				{
					Keys: bson.D{{Key: "recipient_id", Value: 1}},
				},
				{
					Keys: bson.D{{Key: "timestamp", Value: 1}},
				},
				{
					Keys: bson.D{
						{Key: "recipient_id", Value: 1},
						{Key: "is_read", Value: 1},
					},
				},
			},
		},
		{
			collection: CollectionSwapRequests,
			indexes: []mongo.IndexModel{
				{
					Keys: bson.D{{Key: "sender_profile_id", Value: 1}},
				},
				{
					Keys: bson.D{{Key: "recipient_profile_id", Value: 1}},
				},
				{
					Keys: bson.D{{Key: "status", Value: 1}},
				},
				{
					Keys: bson.D{{Key: "sent_at", Value: 1}},
				},
			},
		},
		{
			collection: CollectionSessions,
			indexes: []mongo.IndexModel{
				{
					Keys: bson.D{{Key: "host_id", Value: 1}},
				},
				{
					Keys: bson.D{{Key: "participant_id", Value: 1}},
				},
				{
					Keys: bson.D{{Key: "scheduled_date_time", Value: 1}},
				},
				{
					Keys: bson.D{{Key: "session_status", Value: 1}},
				},
			},
		},
		{
			collection: CollectionReviews,
			indexes: []mongo.IndexModel{
				{
					Keys: bson.D{{Key: "reviewer_id", Value: 1}},
				},
				{
					Keys: bson.D{{Key: "reviewee_id", Value: 1}},
				},
				{
					Keys: bson.D{{Key: "session_id", Value: 1}},
				},
			},
		},
		{
			collection: CollectionTests,
			indexes: []mongo.IndexModel{
				{
					Keys: bson.D{{Key: "tutor_id", Value: 1}},
				},
				{
					Keys: bson.D{{Key: "session_id", Value: 1}},
				},
			},
		},
	}

	for _, indexGroup := range indexes {
		collection := database.Collection(indexGroup.collection)

		if len(indexGroup.indexes) > 0 {
			_, err := collection.Indexes().CreateMany(ctx, indexGroup.indexes)
			if err != nil {
				log.Printf("Failed to create indexes for collection %s: %v", indexGroup.collection, err)
				continue
			}
			log.Printf("Created %d indexes for collection: %s", len(indexGroup.indexes), indexGroup.collection)
		}
	}

	return nil
}

// GetCollection returns a collection handle
func GetCollection(name string) *mongo.Collection {
	if database == nil {
		log.Fatal("Database not initialized")
	}
	return database.Collection(name)
}
