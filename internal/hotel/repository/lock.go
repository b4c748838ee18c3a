package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	hotelerrors "bookd/internal/hotel/errors"
	"bookd/pkg/config"
	mongotx "bookd/pkg/db/mongo"
	"bookd/pkg/model"
)

const LockCollection = "room_locks"

type LockRepository interface {
	Insert(ctx context.Context, lock *model.RoomLock) error
	FindByRequestID(ctx context.Context, requestID string) (*model.RoomLock, error)
	ExistsConflicting(ctx context.Context, roomID string, startDate, endDate model.Date) (bool, error)
	ConfirmHeld(ctx context.Context, requestID string, now time.Time) (bool, error)
	ReleaseHeld(ctx context.Context, requestID string, now time.Time) (bool, error)
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
	PurgeTerminal(ctx context.Context, olderThan time.Time) (int64, error)
	EnsureIndexes(ctx context.Context) error
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoLockRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoLockRepository(cfg *config.Config) LockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoLockRepository{
		cfg:        cfg,
		collection: db.Collection(LockCollection),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout bounds single operations. SessionContexts pass through
// untouched so transaction semantics stay intact.
func (r *mongoLockRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoLockRepository) Insert(ctx context.Context, lock *model.RoomLock) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, lock); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return hotelerrors.ErrDuplicateRequest
		}
		return fmt.Errorf("failed to insert lock: %w", err)
	}
	return nil
}

func (r *mongoLockRepository) FindByRequestID(ctx context.Context, requestID string) (*model.RoomLock, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var lock model.RoomLock
	err := r.collection.FindOne(ctx, bson.M{"request_id": requestID}).Decode(&lock)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, hotelerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find lock: %w", err)
	}
	return &lock, nil
}

// ExistsConflicting probes for any blocking lock whose half-open interval
// intersects [startDate, endDate). Strict bounds keep adjacent intervals
// compatible.
func (r *mongoLockRepository) ExistsConflicting(ctx context.Context, roomID string, startDate, endDate model.Date) (bool, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"room_id":    roomID,
		"status":     bson.M{"$in": []model.LockStatus{model.LockHeld, model.LockConfirmed}},
		"start_date": bson.M{"$lt": endDate},
		"end_date":   bson.M{"$gt": startDate},
	}

	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to probe conflicting locks: %w", err)
	}
	return count > 0, nil
}

// ConfirmHeld promotes a live HELD lock to CONFIRMED. The filter carries
// the expiry bound so a stale hold can never be confirmed, no matter how
// the sweeper is scheduled.
func (r *mongoLockRepository) ConfirmHeld(ctx context.Context, requestID string, now time.Time) (bool, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.UpdateOne(ctx,
		bson.M{
			"request_id": requestID,
			"status":     model.LockHeld,
			"expires_at": bson.M{"$gt": now},
		},
		bson.M{"$set": bson.M{"status": model.LockConfirmed, "updated_at": now}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to confirm lock: %w", err)
	}
	return result.ModifiedCount > 0, nil
}

func (r *mongoLockRepository) ReleaseHeld(ctx context.Context, requestID string, now time.Time) (bool, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"request_id": requestID, "status": model.LockHeld},
		bson.M{"$set": bson.M{"status": model.LockReleased, "updated_at": now}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to release lock: %w", err)
	}
	return result.ModifiedCount > 0, nil
}

func (r *mongoLockRepository) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.UpdateMany(ctx,
		bson.M{"status": model.LockHeld, "expires_at": bson.M{"$lt": now}},
		bson.M{"$set": bson.M{"status": model.LockExpired, "updated_at": now}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to expire overdue locks: %w", err)
	}
	return result.ModifiedCount, nil
}

func (r *mongoLockRepository) PurgeTerminal(ctx context.Context, olderThan time.Time) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteMany(ctx, bson.M{
		"status":     bson.M{"$in": []model.LockStatus{model.LockReleased, model.LockExpired}},
		"updated_at": bson.M{"$lt": olderThan},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to purge terminal locks: %w", err)
	}
	return result.DeletedCount, nil
}

func (r *mongoLockRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "request_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uk_lock_request"),
		},
		{
			Keys: bson.D{
				{Key: "room_id", Value: 1},
				{Key: "status", Value: 1},
				{Key: "start_date", Value: 1},
				{Key: "end_date", Value: 1},
			},
			Options: options.Index().SetName("ix_lock_conflict_probe"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("ix_lock_sweep"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create lock indexes: %w", err)
	}
	return nil
}

func (r *mongoLockRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
