// Package store defines the record store contract shared by every backend.
package store

import (
	"context"
	"errors"

	"github.com/ukydev/fleet-manager/internal/models"
)

// Collection names known to the fleet manager.
const (
	CollectionVehicles     = "vehicles"
	CollectionDrivers      = "drivers"
	CollectionTrips        = "trips"
	CollectionMaintenances = "maintenances"
	CollectionFuelExpenses = "fuel_expenses"
)

// Collections lists every known collection name.
var Collections = []string{
	CollectionVehicles,
	CollectionDrivers,
	CollectionTrips,
	CollectionMaintenances,
	CollectionFuelExpenses,
}

var (
	ErrNotFound          = errors.New("record not found")
	ErrUnknownCollection = errors.New("unknown collection")
)

// RecordStore provides read access to named collections.
type RecordStore interface {
	// ListAll returns every record in the collection.
	ListAll(ctx context.Context, collection string) ([]models.Record, error)
	// Get returns one record by id, or ErrNotFound.
	Get(ctx context.Context, collection, id string) (models.Record, error)
}

// ValidCollection reports whether name is one of the known collections.
func ValidCollection(name string) bool {
	for _, c := range Collections {
		if c == name {
			return true
		}
	}
	return false
}
