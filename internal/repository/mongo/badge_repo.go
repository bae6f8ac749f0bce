package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"titanlift/backend/internal/domain"
	"titanlift/backend/internal/repository"
)

const badgeCollectionName = "user_badges"

// mongoBadgeRepository implements repository.BadgeRepository
type mongoBadgeRepository struct {
	collection *mongo.Collection
}

// NewMongoBadgeRepository creates a new UserBadge repository.
func NewMongoBadgeRepository(db *mongo.Database) repository.BadgeRepository {
	return &mongoBadgeRepository{
		collection: db.Collection(badgeCollectionName),
	}
}

// Award inserts a badge row. The unique (userId, badgeName, workoutId) index
// makes duplicate attempts collide; those are swallowed so that finishing a
// workout twice, or two concurrent finishes, never errors and never doubles
// the award. The same badge name stays earnable on later workouts.
func (r *mongoBadgeRepository) Award(ctx context.Context, badge *domain.UserBadge) error {
	if badge.UserID == primitive.NilObjectID || badge.BadgeName == "" {
		return errors.New("badge requires userId and badgeName")
	}
	badge.ID = primitive.NewObjectID()
	if badge.EarnedAt.IsZero() {
		badge.EarnedAt = time.Now().UTC()
	}

	_, err := r.collection.InsertOne(ctx, badge)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return err
	}
	return nil
}

// ListByUser returns the raw award history, newest first.
func (r *mongoBadgeRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.UserBadge, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "earnedAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var badges []domain.UserBadge
	if err = cursor.All(ctx, &badges); err != nil {
		return nil, err
	}
	return badges, nil
}

// GroupsByUser returns the trophy-case view: one row per badge name with
// count and most recent earn time, most recently earned first.
func (r *mongoBadgeRepository) GroupsByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.BadgeGroup, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userId": userID}}},
		{{Key: "$group", Value: bson.M{
			"_id":          "$badgeName",
			"count":        bson.M{"$sum": 1},
			"lastEarnedAt": bson.M{"$max": "$earnedAt"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "lastEarnedAt", Value: -1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var groups []domain.BadgeGroup
	if err = cursor.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// EnsureBadgeIndexes creates necessary indexes. The unique compound index is
// what backs Award's idempotency; call during startup.
func EnsureBadgeIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "userId", Value: 1},
				{Key: "badgeName", Value: 1},
				{Key: "workoutId", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "earnedAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
