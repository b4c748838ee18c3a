package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	hotelerrors "bookd/internal/hotel/errors"
	"bookd/pkg/config"
)

const (
	GuardCollection = "room_guards"

	// Upper bound on how long a crashed holder can block a room. The TTL
	// index reaps orphans; normal callers release explicitly.
	guardTTL = 30 * time.Second
)

// RoomGuard serializes the hold critical section per room. One document
// per room id; the unique _id turns concurrent acquisitions into a
// duplicate-key error for all but one caller.
type RoomGuard interface {
	Acquire(ctx context.Context, roomID string) error
	Release(ctx context.Context, roomID string) error
	EnsureIndexes(ctx context.Context) error
}

type guardDocument struct {
	ID        string    `bson:"_id"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt time.Time `bson:"created_at"`
}

type mongoRoomGuard struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoRoomGuard(cfg *config.Config) RoomGuard {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoRoomGuard{
		cfg:        cfg,
		collection: db.Collection(GuardCollection),
	}
}

func (g *mongoRoomGuard) Acquire(ctx context.Context, roomID string) error {
	now := time.Now().UTC()
	_, err := g.collection.InsertOne(ctx, guardDocument{
		ID:        "room-" + roomID,
		ExpiresAt: now.Add(guardTTL),
		CreatedAt: now,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return hotelerrors.ErrGuardHeld
		}
		return fmt.Errorf("failed to acquire room guard: %w", err)
	}
	return nil
}

func (g *mongoRoomGuard) Release(ctx context.Context, roomID string) error {
	if _, err := g.collection.DeleteOne(ctx, bson.M{"_id": "room-" + roomID}); err != nil {
		return fmt.Errorf("failed to release room guard: %w", err)
	}
	return nil
}

func (g *mongoRoomGuard) EnsureIndexes(ctx context.Context) error {
	_, err := g.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0).SetName("ttl_guard_expiry"),
	})
	if err != nil {
		return fmt.Errorf("failed to create guard indexes: %w", err)
	}
	return nil
}
