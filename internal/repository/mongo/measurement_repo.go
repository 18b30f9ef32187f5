package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ptstudio/trainer-hub/internal/domain"
	"ptstudio/trainer-hub/internal/repository"
)

const measurementCollectionName = "measurements"

// mongoMeasurementRepository implements repository.MeasurementRepository
type mongoMeasurementRepository struct {
	collection *mongo.Collection
}

// NewMongoMeasurementRepository creates a new Measurement repository backed by MongoDB.
func NewMongoMeasurementRepository(db *mongo.Database) repository.MeasurementRepository {
	return &mongoMeasurementRepository{
		collection: db.Collection(measurementCollectionName),
	}
}

// Create inserts a new measurement session.
func (r *mongoMeasurementRepository) Create(ctx context.Context, measurement *domain.Measurement) (primitive.ObjectID, error) {
	if measurement.ClientID == primitive.NilObjectID || measurement.TrainerID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("client ID and trainer ID are required")
	}
	if measurement.Date.IsZero() {
		measurement.Date = time.Now().UTC()
	}

	measurement.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	measurement.CreatedAt = now
	measurement.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, measurement)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves a measurement by its ID.
func (r *mongoMeasurementRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Measurement, error) {
	var measurement domain.Measurement
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&measurement)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &measurement, nil
}

// GetByClientID retrieves all measurement sessions for a client, sorted
// newest-first by session date. The analysis engine relies on this order.
func (r *mongoMeasurementRepository) GetByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.Measurement, error) {
	var measurements []domain.Measurement
	filter := bson.M{"clientId": clientID}

	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &measurements); err != nil {
		return nil, err
	}
	return measurements, cursor.Err()
}

// Update replaces the editable fields of a measurement session.
func (r *mongoMeasurementRepository) Update(ctx context.Context, measurement *domain.Measurement) error {
	if measurement.ID == primitive.NilObjectID {
		return errors.New("measurement ID is required for update")
	}

	filter := bson.M{"_id": measurement.ID}
	update := bson.M{
		"$set": bson.M{
			"date":             measurement.Date,
			"values":           measurement.Values,
			"note":             measurement.Note,
			"completedGoalIds": measurement.CompletedGoalIDs,
			"updatedAt":        time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a measurement, ensuring it belongs to the specified trainer.
func (r *mongoMeasurementRepository) Delete(ctx context.Context, id primitive.ObjectID, trainerID primitive.ObjectID) error {
	filter := bson.M{
		"_id":       id,
		"trainerId": trainerID,
	}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureMeasurementIndexes creates necessary indexes for the measurements collection.
func EnsureMeasurementIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// The hot path: all sessions for a client, newest first.
			Keys:    bson.D{{Key: "clientId", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
