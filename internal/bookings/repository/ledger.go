package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	bookingerrors "shutterbook/internal/bookings/errors"
	"shutterbook/pkg/config"
	"shutterbook/pkg/model"
)

const CollectionName = "Bookings"

// BookingLedger is the single source of truth for slot occupancy.
type BookingLedger interface {
	// Reserve atomically claims a slot. It returns ErrSlotTaken when a
	// confirmed booking already covers the same (resource, start, end).
	Reserve(ctx context.Context, booking *model.Booking) error
	// Cancel transitions a confirmed booking to cancelled. The returned
	// flag reports whether this call performed the transition; cancelling
	// an already-cancelled booking is a no-op, not an error.
	Cancel(ctx context.Context, id string) (*model.Booking, bool, error)
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	ActiveBookingsInRange(ctx context.Context, resourceID string, start, end time.Time) ([]*model.Booking, error)
}

type mongoBookingLedger struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoBookingLedger(cfg *config.Config) BookingLedger {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingLedger{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoBookingLedger) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// Reserve relies on the partial unique index over
// (resource_id, slot_start, slot_end) filtered to status "confirmed":
// the insert either lands or collides, there is no read-then-write window.
func (r *mongoBookingLedger) Reserve(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	booking.Status = model.BookingConfirmed
	booking.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	booking.CancelledAt = nil

	result, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return bookingerrors.ErrSlotTaken
		}
		return fmt.Errorf("failed to reserve slot: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		booking.ID = oid.Hex()
	}
	return nil
}

func (r *mongoBookingLedger) Cancel(ctx context.Context, id string) (*model.Booking, bool, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %s", bookingerrors.ErrInvalidID, id)
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	filter := bson.M{"_id": objectID, "status": model.BookingConfirmed}
	update := bson.M{"$set": bson.M{
		"status":       model.BookingCancelled,
		"cancelled_at": now,
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var booking model.Booking
	err = r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&booking)
	if err == nil {
		return &booking, true, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, fmt.Errorf("failed to cancel booking: %w", err)
	}

	// No confirmed booking matched: either it does not exist, or it was
	// already cancelled. The latter is idempotent success.
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *mongoBookingLedger) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bookingerrors.ErrInvalidID, id)
	}

	var booking model.Booking
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	return &booking, nil
}

// ActiveBookingsInRange returns confirmed bookings overlapping [start, end).
func (r *mongoBookingLedger) ActiveBookingsInRange(ctx context.Context, resourceID string, start, end time.Time) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"resource_id": resourceID,
		"status":      model.BookingConfirmed,
		"slot_start":  bson.M{"$lt": end},
		"slot_end":    bson.M{"$gt": start},
	}
	opts := options.Find().SetSort(bson.D{{Key: "slot_start", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list active bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}
