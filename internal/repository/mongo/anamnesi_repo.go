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

const anamnesiCollectionName = "anamnesi"

// mongoAnamnesiRepository implements repository.AnamnesiRepository
type mongoAnamnesiRepository struct {
	collection *mongo.Collection
}

// NewMongoAnamnesiRepository creates a new Anamnesi repository backed by MongoDB.
func NewMongoAnamnesiRepository(db *mongo.Database) repository.AnamnesiRepository {
	return &mongoAnamnesiRepository{
		collection: db.Collection(anamnesiCollectionName),
	}
}

// Upsert saves the questionnaire for a client, replacing any previous one.
// There is at most one anamnesis document per client.
func (r *mongoAnamnesiRepository) Upsert(ctx context.Context, anamnesi *domain.AnamnesiData) error {
	if anamnesi.ClientID == primitive.NilObjectID || anamnesi.TrainerID == primitive.NilObjectID {
		return errors.New("client ID and trainer ID are required")
	}

	now := time.Now().UTC()
	anamnesi.UpdatedAt = now
	if anamnesi.ID == primitive.NilObjectID {
		anamnesi.ID = primitive.NewObjectID()
		anamnesi.CreatedAt = now
	}

	filter := bson.M{"clientId": anamnesi.ClientID}
	opts := options.Replace().SetUpsert(true)

	_, err := r.collection.ReplaceOne(ctx, filter, anamnesi, opts)
	return err
}

// GetByClientID retrieves the questionnaire for a client.
func (r *mongoAnamnesiRepository) GetByClientID(ctx context.Context, clientID primitive.ObjectID) (*domain.AnamnesiData, error) {
	var anamnesi domain.AnamnesiData
	err := r.collection.FindOne(ctx, bson.M{"clientId": clientID}).Decode(&anamnesi)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &anamnesi, nil
}

// EnsureAnamnesiIndexes creates necessary indexes for the anamnesi collection.
func EnsureAnamnesiIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "clientId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
