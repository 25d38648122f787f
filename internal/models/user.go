package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an admin-panel operator, not a telemetry account.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name" validate:"required"`
	Role      string             `bson:"role" json:"role" validate:"required,oneof=Admin Driver"`
	Email     string             `bson:"email" json:"email" validate:"required,email"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}
