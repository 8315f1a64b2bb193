package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ukydev/fleet-manager/internal/backend"
	"github.com/ukydev/fleet-manager/internal/config"
	"github.com/ukydev/fleet-manager/internal/logging"
	"github.com/ukydev/fleet-manager/internal/models"
	"github.com/ukydev/fleet-manager/internal/store"
)

var (
	makes = map[string][]string{
		"Ford":       {"Transit", "F-150", "Ranger"},
		"Toyota":     {"Hilux", "Corolla", "Proace"},
		"Mercedes":   {"Sprinter", "Vito"},
		"Volkswagen": {"Crafter", "Caddy"},
		"Tesla":      {"Model 3", "Model Y"},
	}
	colors       = []string{"white", "silver", "black", "blue", "red"}
	cities       = []string{"London", "Madrid", "Paris", "Berlin", "Nicosia", "Cardiff", "Istanbul"}
	purposes     = []string{"business", "delivery", "personal"}
	serviceTypes = []string{"oil_change", "tire_rotation", "brake_service", "inspection"}
	expenseTypes = []string{"fuel", "fuel", "fuel", "toll", "parking"}
	firstNames   = []string{"Ana", "Ben", "Chidi", "Dana", "Elif", "Femi", "Goran", "Hana"}
	lastNames    = []string{"Silva", "Okafor", "Novak", "Yilmaz", "Jones", "Garcia"}
)

// document is one record bound for a collection.
type document struct {
	Collection string
	Doc        interface{}
}

type generator struct {
	rng    *rand.Rand
	now    time.Time
	months int
	style  int
}

func newGenerator(seed int64, now time.Time, months int) *generator {
	return &generator{rng: rand.New(rand.NewSource(seed)), now: now, months: months}
}

func (g *generator) pick(items []string) string {
	return items[g.rng.Intn(len(items))]
}

// randomTime returns an instant within the last g.months months.
func (g *generator) randomTime() time.Time {
	span := g.now.Sub(g.now.AddDate(0, -g.months, 0))
	return g.now.Add(-time.Duration(g.rng.Int63n(int64(span))))
}

// dateValue rotates through the date representations clients write:
// RFC 3339 strings, date-only strings, {seconds} structures and native dates.
func (g *generator) dateValue(t time.Time) interface{} {
	g.style++
	switch g.style % 4 {
	case 0:
		return t.UTC().Format(time.RFC3339)
	case 1:
		return t.Format("2006-01-02")
	case 2:
		return models.NewTimestamp(t)
	default:
		return t
	}
}

func (g *generator) cost(lo, hi float64) float64 {
	c := lo + g.rng.Float64()*(hi-lo)
	return float64(int(c*100)) / 100
}

func (g *generator) vehicles(n int) []models.Vehicle {
	brands := make([]string, 0, len(makes))
	for b := range makes {
		brands = append(brands, b)
	}
	// Map order is random; sort for a reproducible dataset.
	sort.Strings(brands)

	out := make([]models.Vehicle, 0, n)
	for i := 0; i < n; i++ {
		brand := g.pick(brands)
		status := "active"
		if g.rng.Intn(10) == 0 {
			status = "inactive"
		}
		out = append(out, models.Vehicle{
			ID:                 primitive.NewObjectID(),
			Name:               fmt.Sprintf("vehicle-%d", i+1),
			Make:               brand,
			Model:              g.pick(makes[brand]),
			Color:              g.pick(colors),
			RegistrationNumber: fmt.Sprintf("FL%02d-%03d", g.rng.Intn(100), i+1),
			LicenseExpiryDate:  g.now.AddDate(1+g.rng.Intn(3), 0, 0).Format("2006-01-02"),
			YearOfCar:          g.now.Year() - g.rng.Intn(8),
			Status:             status,
			CreatedAt:          g.now.AddDate(0, -g.months, 0),
		})
	}
	return out
}

func (g *generator) drivers(vehicles []models.Vehicle) []models.Driver {
	out := make([]models.Driver, 0, len(vehicles))
	for i, v := range vehicles {
		out = append(out, models.Driver{
			ID:                 primitive.NewObjectID(),
			Name:               g.pick(firstNames) + " " + g.pick(lastNames),
			VehicleID:          v.ID.Hex(),
			NumberOfExperience: 1 + g.rng.Intn(25),
			LicenseNumber:      fmt.Sprintf("DL-%06d", g.rng.Intn(1000000)),
			ContactInfo:        fmt.Sprintf("driver%d@fleet.example.com", i+1),
			CreatedAt:          g.now.AddDate(0, -g.months, 0),
		})
	}
	return out
}

func (g *generator) trips(vehicles []models.Vehicle, drivers []models.Driver, perVehicle int) []models.Trip {
	out := make([]models.Trip, 0, len(vehicles)*perVehicle)
	for i, v := range vehicles {
		for j := 0; j < perVehicle; j++ {
			start := g.randomTime()
			distance := 5 + g.rng.Float64()*400
			out = append(out, models.Trip{
				DriverID:      drivers[i].ID.Hex(),
				VehicleID:     v.ID.Hex(),
				StartLocation: g.pick(cities),
				EndLocation:   g.pick(cities),
				StartTime:     g.dateValue(start),
				EndTime:       g.dateValue(start.Add(time.Duration(distance/60*float64(time.Hour)))),
				Distance:      float64(int(distance*10)) / 10,
				Purpose:       g.pick(purposes),
			})
		}
	}
	return out
}

func (g *generator) maintenances(vehicles []models.Vehicle, perVehicle int) []models.Maintenance {
	out := make([]models.Maintenance, 0, len(vehicles)*perVehicle)
	for _, v := range vehicles {
		for j := 0; j < perVehicle; j++ {
			service := g.pick(serviceTypes)
			out = append(out, models.Maintenance{
				VehicleID:   v.ID.Hex(),
				ServiceType: service,
				Description: fmt.Sprintf("Scheduled %s", service),
				Date:        g.dateValue(g.randomTime()),
				Cost:        g.cost(40, 900),
			})
		}
	}
	return out
}

func (g *generator) fuelExpenses(vehicles []models.Vehicle, drivers []models.Driver, perVehicle int) []models.FuelExpense {
	out := make([]models.FuelExpense, 0, len(vehicles)*perVehicle)
	for i, v := range vehicles {
		for j := 0; j < perVehicle; j++ {
			expense := models.FuelExpense{
				VehicleID:       v.ID.Hex(),
				DriverID:        drivers[i].ID.Hex(),
				ExpenseType:     g.pick(expenseTypes),
				Location:        g.pick(cities),
				ExpenseDate:     g.dateValue(g.randomTime()),
				OdometerReading: float64(10000 + g.rng.Intn(150000)),
			}
			if expense.ExpenseType == "fuel" {
				expense.FuelType = "diesel"
				expense.Quantity = float64(20 + g.rng.Intn(60))
				expense.Cost = g.cost(30, 140)
			} else {
				expense.Cost = g.cost(2, 25)
			}
			out = append(out, expense)
		}
	}
	return out
}

// malformed returns records the dashboard must skip: unparseable or missing
// dates and non-numeric or zero costs.
func (g *generator) malformed(vehicles []models.Vehicle) []document {
	vehicleID := ""
	if len(vehicles) > 0 {
		vehicleID = vehicles[0].ID.Hex()
	}
	return []document{
		{store.CollectionTrips, bson.M{"vehicle_id": vehicleID, "start_time": "not-a-date"}},
		{store.CollectionTrips, bson.M{"vehicle_id": vehicleID}},
		{store.CollectionMaintenances, bson.M{"vehicle_id": vehicleID, "date": g.now.Format("2006-01-02"), "cost": "n/a"}},
		{store.CollectionMaintenances, bson.M{"vehicle_id": vehicleID, "date": "", "cost": 120.5}},
		{store.CollectionMaintenances, bson.M{"vehicle_id": vehicleID, "date": g.now.Format("2006-01-02"), "cost": 0}},
		{store.CollectionFuelExpenses, bson.M{"vehicle_id": vehicleID, "expense_date": bson.M{"seconds": 0}, "cost": 60}},
		{store.CollectionFuelExpenses, bson.M{"vehicle_id": vehicleID, "expense_date": "31/12/2024", "cost": 45}},
	}
}

// dataset builds the full fleet in insertion order.
func (g *generator) dataset(fleetSize int) []document {
	vehicles := g.vehicles(fleetSize)
	drivers := g.drivers(vehicles)

	var docs []document
	for _, v := range vehicles {
		docs = append(docs, document{store.CollectionVehicles, v})
	}
	for _, d := range drivers {
		docs = append(docs, document{store.CollectionDrivers, d})
	}
	for _, t := range g.trips(vehicles, drivers, 3*g.months) {
		docs = append(docs, document{store.CollectionTrips, t})
	}
	for _, m := range g.maintenances(vehicles, g.months/2+1) {
		docs = append(docs, document{store.CollectionMaintenances, m})
	}
	for _, f := range g.fuelExpenses(vehicles, drivers, 2*g.months) {
		docs = append(docs, document{store.CollectionFuelExpenses, f})
	}
	return append(docs, g.malformed(vehicles)...)
}

type inserter interface {
	Insert(ctx context.Context, collection string, document interface{}) (string, error)
}

// seed writes docs and returns per-collection counts.
func seed(ctx context.Context, w inserter, docs []document) (map[string]int, error) {
	counts := make(map[string]int)
	for _, d := range docs {
		if _, err := w.Insert(ctx, d.Collection, d.Doc); err != nil {
			return counts, err
		}
		counts[d.Collection]++
	}
	return counts, nil
}

func envInt(name string, def int) int {
	if val := os.Getenv(name); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
	}
	return def
}

// run seeds docs and logs what was written. A partial seed is an error.
func run(ctx context.Context, w inserter, docs []document) error {
	counts, err := seed(ctx, w, docs)

	fields := log.Fields{}
	written := 0
	for collection, n := range counts {
		fields[collection] = n
		written += n
	}
	if err != nil {
		log.WithFields(fields).Warn("Seeding stopped early")
		return fmt.Errorf("seeding stopped after %d of %d documents: %w", written, len(docs), err)
	}
	log.WithFields(fields).Info("Seeding completed")
	return nil
}

func seedFromConfig() error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}
	if err := logging.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Backend != config.BackendMongo {
		return fmt.Errorf("seeding requires the mongo backend, got %q", cfg.Backend)
	}

	fleetSize := envInt("FLEET_SIZE", 10)
	months := envInt("SEED_MONTHS", 14)
	randSeed := int64(envInt("SEED_RANDOM", int(time.Now().UnixNano()%1_000_000)))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	be, err := backend.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := be.Close(context.Background()); err != nil {
			log.WithError(err).Warn("Failed to close backend")
		}
	}()
	if be.Mongo == nil {
		return errors.New("seeding requires a writable mongo store")
	}

	log.WithFields(log.Fields{
		"fleet_size": fleetSize,
		"months":     months,
		"seed":       randSeed,
	}).Info("Seeding fleet data")

	return run(ctx, be.Mongo, newGenerator(randSeed, time.Now(), months).dataset(fleetSize))
}

func main() {
	if err := seedFromConfig(); err != nil {
		log.WithError(err).Error("Seeding failed")
		os.Exit(1)
	}
}
