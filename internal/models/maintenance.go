package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Maintenance represents a vehicle maintenance record.
type Maintenance struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	VehicleID   string             `json:"vehicle_id" bson:"vehicle_id"`
	ServiceType string             `json:"service_type" bson:"service_type"` // "oil_change", "tire_rotation", "brake_service", "inspection"
	Description string             `json:"description" bson:"description"`
	Date        interface{}        `json:"date,omitempty" bson:"date,omitempty"`
	Cost        float64            `json:"cost,omitempty" bson:"cost,omitempty"` // in USD
	Notes       string             `json:"notes,omitempty" bson:"notes,omitempty"`
}

// FuelExpense represents a fuel purchase or other running expense for a vehicle.
type FuelExpense struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	VehicleID       string             `json:"vehicle_id" bson:"vehicle_id"`
	DriverID        string             `json:"driver_id,omitempty" bson:"driver_id,omitempty"`
	ExpenseType     string             `json:"expense_type" bson:"expense_type"` // "fuel", "toll", "parking", "other"
	FuelType        string             `json:"fuel_type,omitempty" bson:"fuel_type,omitempty"`
	Quantity        float64            `json:"quantity,omitempty" bson:"quantity,omitempty"` // in liters
	Cost            float64            `json:"cost,omitempty" bson:"cost,omitempty"`
	OdometerReading float64            `json:"odometer_reading,omitempty" bson:"odometer_reading,omitempty"`
	Location        string             `json:"location,omitempty" bson:"location,omitempty"`
	ExpenseDate     interface{}        `json:"expense_date,omitempty" bson:"expense_date,omitempty"`
	IsRecurring     bool               `json:"is_recurring,omitempty" bson:"is_recurring,omitempty"`
	Notes           string             `json:"notes,omitempty" bson:"notes,omitempty"`
}
