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

const workoutCollectionName = "workouts"

// mongoWorkoutRepository implements repository.WorkoutRepository
type mongoWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutRepository creates a new Workout repository.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
	}
}

// Create inserts a new workout session.
func (r *mongoWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	if workout.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("workout requires userId")
	}
	workout.ID = primitive.NewObjectID()
	workout.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, workout)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted workout ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single workout by its ID.
func (r *mongoWorkoutRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	var workout domain.Workout
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&workout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &workout, nil
}

// Finish sets end time and calorie total on an in-progress workout.
// The filter requires endTime to be unset, which makes the write a
// write-once: a second finish matches nothing and reports ErrNotFound.
func (r *mongoWorkoutRepository) Finish(ctx context.Context, id primitive.ObjectID, endTime time.Time, caloriesBurned int) error {
	filter := bson.M{
		"_id":     id,
		"endTime": bson.M{"$exists": false},
	}
	update := bson.M{"$set": bson.M{
		"endTime":        endTime,
		"caloriesBurned": caloriesBurned,
	}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// GetActiveByUser returns the user's most recently started workout that has
// not been finished yet.
func (r *mongoWorkoutRepository) GetActiveByUser(ctx context.Context, userID primitive.ObjectID) (*domain.Workout, error) {
	filter := bson.M{
		"userId":  userID,
		"endTime": bson.M{"$exists": false},
	}
	findOptions := options.FindOne().SetSort(bson.D{{Key: "startTime", Value: -1}})

	var workout domain.Workout
	err := r.collection.FindOne(ctx, filter, findOptions).Decode(&workout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &workout, nil
}

// HistoryByUser returns the user's finished workouts, newest first, enriched
// with set aggregates via a lookup into the sets collection.
func (r *mongoWorkoutRepository) HistoryByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.WorkoutSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"userId":  userID,
			"endTime": bson.M{"$exists": true},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "startTime", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$lookup", Value: bson.M{
			"from":         setCollectionName,
			"localField":   "_id",
			"foreignField": "workoutId",
			"as":           "sets",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"totalVolumeKg": bson.M{"$sum": bson.M{"$map": bson.M{
				"input": "$sets",
				"as":    "s",
				"in":    bson.M{"$multiply": []interface{}{"$$s.weightKg", "$$s.reps"}},
			}}},
			"setCount": bson.M{"$size": "$sets"},
		}}},
		{{Key: "$project", Value: bson.M{
			"name": 1, "startTime": 1, "endTime": 1, "totalVolumeKg": 1, "setCount": 1,
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var summaries []domain.WorkoutSummary
	if err = cursor.All(ctx, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

// EnsureWorkoutIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "startTime", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "endTime", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
