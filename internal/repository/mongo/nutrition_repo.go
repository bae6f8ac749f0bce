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

const nutritionCollectionName = "nutrition_logs"

// mongoNutritionRepository implements repository.NutritionRepository
type mongoNutritionRepository struct {
	collection *mongo.Collection
}

// NewMongoNutritionRepository creates a new NutritionLog repository.
func NewMongoNutritionRepository(db *mongo.Database) repository.NutritionRepository {
	return &mongoNutritionRepository{
		collection: db.Collection(nutritionCollectionName),
	}
}

// normalizeDate truncates to a UTC calendar day, the granularity of the
// (userId, logDate) uniqueness.
func normalizeDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Accumulate upserts the user's log for the entry's date, adding the macros
// onto whatever is already stored, and returns the resulting totals.
func (r *mongoNutritionRepository) Accumulate(ctx context.Context, entry *domain.NutritionLog) (*domain.NutritionLog, error) {
	if entry.UserID == primitive.NilObjectID {
		return nil, errors.New("nutrition log requires userId")
	}
	logDate := normalizeDate(entry.LogDate)

	filter := bson.M{"userId": entry.UserID, "logDate": logDate}
	update := bson.M{
		"$inc": bson.M{
			"caloriesIn": entry.CaloriesIn,
			"proteinG":   entry.ProteinG,
			"carbsG":     entry.CarbsG,
			"fatsG":      entry.FatsG,
		},
		"$setOnInsert": bson.M{
			"userId":  entry.UserID,
			"logDate": logDate,
		},
	}
	findOptions := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var result domain.NutritionLog
	err := r.collection.FindOneAndUpdate(ctx, filter, update, findOptions).Decode(&result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetByUserAndDate returns the log for one calendar day, or ErrNotFound.
func (r *mongoNutritionRepository) GetByUserAndDate(ctx context.Context, userID primitive.ObjectID, date time.Time) (*domain.NutritionLog, error) {
	filter := bson.M{"userId": userID, "logDate": normalizeDate(date)}

	var log domain.NutritionLog
	err := r.collection.FindOne(ctx, filter).Decode(&log)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &log, nil
}

// EnsureNutritionIndexes creates necessary indexes. Call during startup.
func EnsureNutritionIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "logDate", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
