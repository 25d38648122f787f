package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GeoPoint is a GeoJSON point, stored [lng, lat].
type GeoPoint struct {
	Type        string     `bson:"type" json:"type"`
	Coordinates [2]float64 `bson:"coordinates" json:"coordinates"`
}

type Alert struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type           string             `bson:"type" json:"type" validate:"required,oneof='Low Level' 'PH Out of Range' 'Battery Low' 'GPS Signal Lost' 'Over Speeding' 'Engine Overheating' 'Leakage Detected' 'Unauthorized Stop' 'Door Tampering' 'Communication Failure'"`
	Severity       string             `bson:"severity" json:"severity" validate:"required,oneof=low medium high"`
	Tanker         string             `bson:"tanker" json:"tanker" validate:"required"`
	Ts             time.Time          `bson:"ts" json:"ts"`
	Description    string             `bson:"description" json:"description" validate:"required"`
	Status         string             `bson:"status" json:"status" validate:"omitempty,oneof=active acknowledged resolved"`
	Location       *GeoPoint          `bson:"location,omitempty" json:"location,omitempty"`
	ResolvedAt     *time.Time         `bson:"resolved_at,omitempty" json:"resolvedAt,omitempty"`
	AcknowledgedBy string             `bson:"acknowledged_by,omitempty" json:"acknowledgedBy,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updatedAt"`
}
