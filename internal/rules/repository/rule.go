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

	ruleerrors "shutterbook/internal/rules/errors"
	"shutterbook/pkg/config"
	mongotx "shutterbook/pkg/db/mongo"
	"shutterbook/pkg/model"
)

const CollectionName = "Availability_rules"

type RuleRepository interface {
	Create(ctx context.Context, rule *model.AvailabilityRule) error
	FindByID(ctx context.Context, id string) (*model.AvailabilityRule, error)
	ListByResource(ctx context.Context, resourceID string) ([]model.AvailabilityRule, error)
	Update(ctx context.Context, id string, rule *model.AvailabilityRule) error
	Delete(ctx context.Context, id string) error
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoRuleRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoRuleRepository(cfg *config.Config) RuleRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoRuleRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout bounds a storage call unless we are already inside a
// transaction, whose session context must not be wrapped.
func (r *mongoRuleRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoRuleRepository) Create(ctx context.Context, rule *model.AvailabilityRule) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	rule.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, rule)
	if err != nil {
		return fmt.Errorf("failed to create availability rule: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		rule.ID = oid.Hex()
	}
	return nil
}

func (r *mongoRuleRepository) FindByID(ctx context.Context, id string) (*model.AvailabilityRule, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ruleerrors.ErrInvalidID, id)
	}

	var rule model.AvailabilityRule
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&rule)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ruleerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find availability rule: %w", err)
	}

	return &rule, nil
}

func (r *mongoRuleRepository) ListByResource(ctx context.Context, resourceID string) ([]model.AvailabilityRule, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{
		{Key: "day_of_week", Value: 1},
		{Key: "start_time", Value: 1},
	})

	cursor, err := r.collection.Find(ctx, bson.M{"resource_id": resourceID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability rules: %w", err)
	}
	defer cursor.Close(ctx)

	var rules []model.AvailabilityRule
	if err = cursor.All(ctx, &rules); err != nil {
		return nil, fmt.Errorf("failed to decode availability rules: %w", err)
	}

	return rules, nil
}

func (r *mongoRuleRepository) Update(ctx context.Context, id string, rule *model.AvailabilityRule) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", ruleerrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"day_of_week":       rule.DayOfWeek,
			"start_time":        rule.StartTime,
			"end_time":          rule.EndTime,
			"is_available":      rule.IsAvailable,
			"buffer_before_min": rule.BufferBeforeMin,
			"buffer_after_min":  rule.BufferAfterMin,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update availability rule: %w", err)
	}

	if result.MatchedCount == 0 {
		return ruleerrors.ErrNotFound
	}

	return nil
}

func (r *mongoRuleRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", ruleerrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete availability rule: %w", err)
	}

	if result.DeletedCount == 0 {
		return ruleerrors.ErrNotFound
	}

	return nil
}

func (r *mongoRuleRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
