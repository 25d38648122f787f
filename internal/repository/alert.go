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

type AlertRepository struct {
	collection *mongo.Collection
}

func NewAlertRepository(db *mongo.Database) *AlertRepository {
	return &AlertRepository{
		collection: db.Collection("alerts"),
	}
}

func (r *AlertRepository) Create(alert *models.Alert) (*models.Alert, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, alert)
	if err != nil {
		return nil, err
	}

	alert.ID = result.InsertedID.(primitive.ObjectID)
	return alert, nil
}

func (r *AlertRepository) FindByID(id string) (*models.Alert, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("alert %q: %w", id, models.ErrNotFound)
	}

	var alert models.Alert
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&alert)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("alert %q: %w", id, models.ErrNotFound)
		}
		return nil, err
	}

	return &alert, nil
}

// FindFiltered returns alerts matching the optional severity and timestamp
// bounds, most recent first. An empty severity means no severity restriction.
func (r *AlertRepository) FindFiltered(severity string, start, end *time.Time) ([]*models.Alert, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if severity != "" {
		filter["severity"] = severity
	}
	if start != nil || end != nil {
		ts := bson.M{}
		if start != nil {
			ts["$gte"] = *start
		}
		if end != nil {
			ts["$lte"] = *end
		}
		filter["ts"] = ts
	}

	opts := options.Find().SetSort(bson.D{{Key: "ts", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var alerts []*models.Alert
	for cursor.Next(ctx) {
		var alert models.Alert
		if err := cursor.Decode(&alert); err != nil {
			return nil, err
		}
		alerts = append(alerts, &alert)
	}

	return alerts, nil
}

// CreateIndexes creates necessary indexes for the alerts collection
func (r *AlertRepository) CreateIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "ts", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "severity", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "tanker", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	return err
}
