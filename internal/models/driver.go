package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Driver represents a driver, optionally assigned to a vehicle.
type Driver struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name               string             `bson:"name" json:"name"`
	VehicleID          string             `bson:"vehicle_id,omitempty" json:"vehicle_id,omitempty"`
	NumberOfExperience int                `bson:"number_of_experience" json:"number_of_experience"` // in years
	LicenseNumber      string             `bson:"license_number" json:"license_number"`
	ContactInfo        string             `bson:"contact_info" json:"contact_info"`
	CreatedAt          time.Time          `bson:"created_at" json:"created_at"`
}
