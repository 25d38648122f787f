package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Delivery is one completed water delivery embedded in a tanker's history.
// Date is kept as a YYYY-MM-DD string to match the delivery log format.
type Delivery struct {
	Date        string  `bson:"date" json:"date" validate:"required"`
	Time        string  `bson:"time" json:"time" validate:"required"`
	Quantity    float64 `bson:"quantity" json:"quantity" validate:"required"`
	Destination string  `bson:"destination" json:"destination" validate:"required"`
}

type Location struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

type Tanker struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Driver        string             `bson:"driver" json:"driver" validate:"required"`
	VehicleType   string             `bson:"vehicle_type" json:"vehicleType" validate:"required"`
	VehicleNo     string             `bson:"vehicle_no" json:"vehicleNo" validate:"required"`
	Capacity      float64            `bson:"capacity" json:"capacity" validate:"required"`
	TotalQuantity float64            `bson:"total_quantity" json:"totalQuantity"`
	Status        string             `bson:"status" json:"status" validate:"omitempty,oneof=online offline"`
	LastSeen      time.Time          `bson:"last_seen" json:"lastSeen"`
	Location      Location           `bson:"location" json:"location"`
	Maintenance   bool               `bson:"maintenance" json:"maintenance"`
	Deliveries    []Delivery         `bson:"deliveries" json:"deliveries"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updatedAt"`
}
