// Package dashboard computes fleet dashboard analytics from raw record
// collections. Every call reads the collections afresh; nothing is cached.
package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ukydev/fleet-manager/internal/models"
	"github.com/ukydev/fleet-manager/internal/store"
)

const (
	fieldTripStart   = "start_time"
	fieldMaintDate   = "date"
	fieldExpenseDate = "expense_date"
)

// Options tune how the dashboard is computed.
type Options struct {
	// IncludeFuelInTotal adds fuel expenses to the scalar maintenance_costs total.
	IncludeFuelInTotal bool
	// Location is the time zone used to place dates into calendar months.
	Location *time.Location
	// Now returns the instant a computation is judged against.
	Now func() time.Time
}

// DefaultOptions returns options with fuel included in the total, the local
// time zone and the wall clock.
func DefaultOptions() Options {
	return Options{
		IncludeFuelInTotal: true,
		Location:           time.Local,
		Now:                time.Now,
	}
}

// Service computes dashboard stats and summaries.
type Service struct {
	store store.RecordStore
	opts  Options
}

// NewService creates a dashboard service reading from s.
func NewService(s store.RecordStore, opts Options) *Service {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{store: s, opts: opts}
}

// Stats returns the scalar dashboard totals.
func (s *Service) Stats(ctx context.Context) (*models.DashboardStats, error) {
	now := s.now()
	snap, err := s.load(ctx, s.statsCollections()...)
	if err != nil {
		return nil, err
	}
	stats := s.stats(snap, now)
	return &stats, nil
}

// Summary returns the stats together with the trailing 12-month trip and cost series.
func (s *Service) Summary(ctx context.Context) (*models.DashboardSummary, error) {
	now := s.now()
	snap, err := s.load(ctx, store.Collections...)
	if err != nil {
		return nil, err
	}

	months := trailingCalendarMonths(now, bucketMonths)
	return &models.DashboardSummary{
		Stats:            s.stats(snap, now),
		MonthlyTrips:     s.monthlyTrips(snap[store.CollectionTrips], months),
		MaintenanceCosts: s.monthlyCosts(snap[store.CollectionMaintenances], snap[store.CollectionFuelExpenses], months),
	}, nil
}

// MonthlyTrips returns trip counts for the trailing 12 calendar months, oldest first.
func (s *Service) MonthlyTrips(ctx context.Context) ([]models.MonthlyTripData, error) {
	now := s.now()
	snap, err := s.load(ctx, store.CollectionTrips)
	if err != nil {
		return nil, err
	}
	return s.monthlyTrips(snap[store.CollectionTrips], trailingCalendarMonths(now, bucketMonths)), nil
}

// MonthlyCosts returns combined maintenance and fuel costs for the trailing
// 12 calendar months, oldest first.
func (s *Service) MonthlyCosts(ctx context.Context) ([]models.MaintenanceCostData, error) {
	now := s.now()
	snap, err := s.load(ctx, store.CollectionMaintenances, store.CollectionFuelExpenses)
	if err != nil {
		return nil, err
	}
	months := trailingCalendarMonths(now, bucketMonths)
	return s.monthlyCosts(snap[store.CollectionMaintenances], snap[store.CollectionFuelExpenses], months), nil
}

func (s *Service) now() time.Time {
	return s.opts.Now().In(s.opts.Location)
}

func (s *Service) statsCollections() []string {
	collections := []string{
		store.CollectionVehicles,
		store.CollectionDrivers,
		store.CollectionTrips,
		store.CollectionMaintenances,
	}
	if s.opts.IncludeFuelInTotal {
		collections = append(collections, store.CollectionFuelExpenses)
	}
	return collections
}

type snapshot map[string][]models.Record

// load reads the collections concurrently. Any failed read fails the whole load.
func (s *Service) load(ctx context.Context, collections ...string) (snapshot, error) {
	var mu sync.Mutex
	snap := make(snapshot, len(collections))

	g, gctx := errgroup.WithContext(ctx)
	for _, name := range collections {
		g.Go(func() error {
			records, err := s.store.ListAll(gctx, name)
			if err != nil {
				return fmt.Errorf("list %s: %w", name, err)
			}
			mu.Lock()
			snap[name] = records
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	fields := log.Fields{}
	for name, records := range snap {
		fields[name] = len(records)
	}
	log.WithFields(fields).Debug("Dashboard collections loaded")
	return snap, nil
}

func (s *Service) stats(snap snapshot, now time.Time) models.DashboardStats {
	since := trailingDays(now, scalarWindowDays)
	total := s.costSince(snap[store.CollectionMaintenances], fieldMaintDate, since)
	if s.opts.IncludeFuelInTotal {
		total += s.costSince(snap[store.CollectionFuelExpenses], fieldExpenseDate, since)
	}

	return models.DashboardStats{
		TotalVehicles:    len(snap[store.CollectionVehicles]),
		TotalDrivers:     len(snap[store.CollectionDrivers]),
		TotalTrips:       len(snap[store.CollectionTrips]),
		TripsThisMonth:   s.tripsInMonth(snap[store.CollectionTrips], yearMonthOf(now)),
		MaintenanceCosts: total,
	}
}

func (s *Service) tripsInMonth(trips []models.Record, current YearMonth) int {
	count := 0
	for _, trip := range trips {
		if ym, ok := NormalizeDate(trip[fieldTripStart], s.opts.Location); ok && ym == current {
			count++
		}
	}
	return count
}

// costSince sums the cost of records dated at or after since.
func (s *Service) costSince(records []models.Record, dateField string, since time.Time) float64 {
	total := 0.0
	skipped := 0
	for _, r := range records {
		cost, ok := costOf(r)
		if !ok {
			skipped++
			continue
		}
		t, ok := parseDateValue(r[dateField], s.opts.Location)
		if !ok {
			skipped++
			continue
		}
		if !t.Before(since) {
			total += cost
		}
	}
	if skipped > 0 {
		log.WithFields(log.Fields{"field": dateField, "skipped": skipped}).Debug("Records without cost or date excluded from total")
	}
	return total
}

func (s *Service) monthlyTrips(trips []models.Record, months []YearMonth) []models.MonthlyTripData {
	counts := make(map[string]int, len(months))
	for _, ym := range months {
		counts[ym.Key()] = 0
	}
	for _, trip := range trips {
		ym, ok := NormalizeDate(trip[fieldTripStart], s.opts.Location)
		if !ok {
			continue
		}
		if _, inWindow := counts[ym.Key()]; inWindow {
			counts[ym.Key()]++
		}
	}

	out := make([]models.MonthlyTripData, 0, len(months))
	for _, ym := range months {
		out = append(out, models.MonthlyTripData{Month: ym.Key(), TripCount: counts[ym.Key()]})
	}
	return out
}

func (s *Service) monthlyCosts(maintenances, fuelExpenses []models.Record, months []YearMonth) []models.MaintenanceCostData {
	costs := make(map[string]float64, len(months))
	for _, ym := range months {
		costs[ym.Key()] = 0
	}
	s.addCosts(costs, maintenances, fieldMaintDate)
	s.addCosts(costs, fuelExpenses, fieldExpenseDate)

	out := make([]models.MaintenanceCostData, 0, len(months))
	for _, ym := range months {
		out = append(out, models.MaintenanceCostData{Month: ym.Key(), Cost: costs[ym.Key()]})
	}
	return out
}

func (s *Service) addCosts(costs map[string]float64, records []models.Record, dateField string) {
	for _, r := range records {
		cost, ok := costOf(r)
		if !ok {
			continue
		}
		ym, ok := NormalizeDate(r[dateField], s.opts.Location)
		if !ok {
			continue
		}
		if _, inWindow := costs[ym.Key()]; inWindow {
			costs[ym.Key()] += cost
		}
	}
}
