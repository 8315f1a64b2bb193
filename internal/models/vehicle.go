package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vehicle represents a fleet vehicle.
type Vehicle struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name               string             `bson:"name" json:"name"`
	Make               string             `bson:"make" json:"make"`
	Model              string             `bson:"model" json:"model"`
	Color              string             `bson:"color" json:"color"`
	RegistrationNumber string             `bson:"registration_number" json:"registration_number"`
	LicenseExpiryDate  string             `bson:"license_expiry_date" json:"license_expiry_date"` // YYYY-MM-DD
	YearOfCar          int                `bson:"year_of_car" json:"year_of_car"`
	Status             string             `bson:"status" json:"status"` // "active" or "inactive"
	CreatedAt          time.Time          `bson:"created_at" json:"created_at"`
}
