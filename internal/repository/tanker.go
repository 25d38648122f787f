package repository

import (
	"context"
	"fmt"
	"time"

	"iwfm-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TankerRepository struct {
	collection *mongo.Collection
}

func NewTankerRepository(db *mongo.Database) *TankerRepository {
	return &TankerRepository{
		collection: db.Collection("tankers"),
	}
}

func (r *TankerRepository) Create(tanker *models.Tanker) (*models.Tanker, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, tanker)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("vehicle number %q: %w", tanker.VehicleNo, models.ErrConflict)
		}
		return nil, err
	}

	tanker.ID = result.InsertedID.(primitive.ObjectID)
	return tanker, nil
}

func (r *TankerRepository) FindByID(id string) (*models.Tanker, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("tanker %q: %w", id, models.ErrNotFound)
	}

	var tanker models.Tanker
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&tanker)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("tanker %q: %w", id, models.ErrNotFound)
		}
		return nil, err
	}

	return &tanker, nil
}

func (r *TankerRepository) FindByVehicleNo(vehicleNo string) (*models.Tanker, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var tanker models.Tanker
	err := r.collection.FindOne(ctx, bson.M{"vehicle_no": vehicleNo}).Decode(&tanker)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("vehicle number %q: %w", vehicleNo, models.ErrNotFound)
		}
		return nil, err
	}

	return &tanker, nil
}

func (r *TankerRepository) FindAll() ([]*models.Tanker, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Sort by last_seen descending to get most recently seen tankers first
	opts := options.Find().SetSort(bson.D{{Key: "last_seen", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tankers []*models.Tanker
	for cursor.Next(ctx) {
		var tanker models.Tanker
		if err := cursor.Decode(&tanker); err != nil {
			return nil, err
		}
		tankers = append(tankers, &tanker)
	}

	return tankers, nil
}

func (r *TankerRepository) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("tanker %q: %w", id, models.ErrNotFound)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("tanker %q: %w", id, models.ErrNotFound)
	}

	return nil
}

// CreateIndexes creates necessary indexes for the tankers collection
func (r *TankerRepository) CreateIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "vehicle_no", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "last_seen", Value: -1}},
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	return err
}
