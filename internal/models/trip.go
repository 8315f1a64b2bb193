package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trip represents a vehicle trip from start to end location.
//
// StartTime and EndTime hold either an ISO-8601 string or a Timestamp,
// depending on which client wrote the document.
type Trip struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	DriverID      string             `json:"driver_id" bson:"driver_id"`
	VehicleID     string             `json:"vehicle_id" bson:"vehicle_id"`
	StartLocation string             `json:"start_location" bson:"start_location"`
	EndLocation   string             `json:"end_location" bson:"end_location"`
	StartTime     interface{}        `json:"start_time,omitempty" bson:"start_time,omitempty"`
	EndTime       interface{}        `json:"end_time,omitempty" bson:"end_time,omitempty"`
	Distance      float64            `json:"distance,omitempty" bson:"distance,omitempty"` // in kilometers
	Purpose       string             `json:"purpose,omitempty" bson:"purpose,omitempty"`   // "business", "delivery", "personal"
}
