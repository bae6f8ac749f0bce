package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"titanlift/backend/internal/analytics"
	"titanlift/backend/internal/domain"
	"titanlift/backend/internal/repository"
)

const setCollectionName = "sets"

// mongoSetRepository implements repository.SetRepository
type mongoSetRepository struct {
	collection *mongo.Collection
}

// NewMongoSetRepository creates a new Set repository.
func NewMongoSetRepository(db *mongo.Database) repository.SetRepository {
	return &mongoSetRepository{
		collection: db.Collection(setCollectionName),
	}
}

// Create inserts a new set.
func (r *mongoSetRepository) Create(ctx context.Context, set *domain.Set) (primitive.ObjectID, error) {
	if set.WorkoutID == primitive.NilObjectID || set.UserID == primitive.NilObjectID || set.ExerciseID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("set requires workoutId, userId and exerciseId")
	}
	set.ID = primitive.NewObjectID()
	set.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, set)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted set ID")
	}
	return insertedID, nil
}

// ListByUserAndExercise returns the user's full set history for one exercise.
// This is the snapshot the personal-record evaluator consumes.
func (r *mongoSetRepository) ListByUserAndExercise(ctx context.Context, userID, exerciseID primitive.ObjectID) ([]domain.Set, error) {
	filter := bson.M{"userId": userID, "exerciseId": exerciseID}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sets []domain.Set
	if err = cursor.All(ctx, &sets); err != nil {
		return nil, err
	}
	return sets, nil
}

// ListRecent returns the newest sets across all workouts, bounded by limit.
func (r *mongoSetRepository) ListRecent(ctx context.Context, limit int64) ([]domain.Set, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sets []domain.Set
	if err = cursor.All(ctx, &sets); err != nil {
		return nil, err
	}
	return sets, nil
}

// Delete removes a set by ID.
func (r *mongoSetRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// WorkoutStats sums lifted volume and counts sets for a single workout.
// A workout without sets yields zero values, not an error.
func (r *mongoSetRepository) WorkoutStats(ctx context.Context, workoutID primitive.ObjectID) (domain.WorkoutStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"workoutId": workoutID}}},
		{{Key: "$group", Value: bson.M{
			"_id":           nil,
			"totalVolumeKg": bson.M{"$sum": bson.M{"$multiply": []interface{}{"$weightKg", "$reps"}}},
			"setCount":      bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return domain.WorkoutStats{}, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		TotalVolumeKG float64 `bson:"totalVolumeKg"`
		SetCount      int     `bson:"setCount"`
	}
	if err = cursor.All(ctx, &results); err != nil {
		return domain.WorkoutStats{}, err
	}
	if len(results) == 0 {
		return domain.WorkoutStats{}, nil
	}
	return domain.WorkoutStats{
		TotalVolumeKG: results[0].TotalVolumeKG,
		SetCount:      results[0].SetCount,
	}, nil
}

// ActiveDates returns the distinct UTC calendar dates on which the user
// logged at least one set since the cutoff, ascending.
func (r *mongoSetRepository) ActiveDates(ctx context.Context, userID primitive.ObjectID, since time.Time) ([]time.Time, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"userId":    userID,
			"createdAt": bson.M{"$gte": since},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$createdAt"}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Date string `bson:"_id"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	dates := make([]time.Time, 0, len(rows))
	for _, row := range rows {
		d, err := time.ParseInLocation("2006-01-02", row.Date, time.UTC)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, nil
}

// VolumeByUser aggregates lifted volume per user for the leaderboard.
// The pipeline starts from sets, so users without qualifying sets simply
// never appear. The sort (volume desc, then user ID asc) matches the
// ranker's deterministic tie-break.
func (r *mongoSetRepository) VolumeByUser(ctx context.Context, since *time.Time, muscleGroup string) ([]analytics.UserVolume, error) {
	match := bson.M{}
	if since != nil {
		match["createdAt"] = bson.M{"$gte": *since}
	}
	if muscleGroup != "" {
		match["$expr"] = bson.M{"$eq": []interface{}{
			bson.M{"$toLower": "$muscleGroup"},
			strings.ToLower(muscleGroup),
		}}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":           "$userId",
			"totalVolumeKg": bson.M{"$sum": bson.M{"$multiply": []interface{}{"$weightKg", "$reps"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "totalVolumeKg", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: int64(analytics.LeaderboardSize)}},
		{{Key: "$lookup", Value: bson.M{
			"from":         userCollectionName,
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "user",
		}}},
		{{Key: "$unwind", Value: "$user"}},
		{{Key: "$project", Value: bson.M{
			"totalVolumeKg": 1,
			"username":      "$user.username",
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID            primitive.ObjectID `bson:"_id"`
		Username      string             `bson:"username"`
		TotalVolumeKG float64            `bson:"totalVolumeKg"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	volumes := make([]analytics.UserVolume, len(rows))
	for i, row := range rows {
		volumes[i] = analytics.UserVolume{
			UserID:        row.ID.Hex(),
			Username:      row.Username,
			TotalVolumeKG: row.TotalVolumeKG,
		}
	}
	return volumes, nil
}

// EnsureSetIndexes creates necessary indexes. Call during startup.
func EnsureSetIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Personal-record history lookups
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "exerciseId", Value: 1}},
			Options: options.Index(),
		},
		{
			// Streak and leaderboard windows
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "workoutId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
