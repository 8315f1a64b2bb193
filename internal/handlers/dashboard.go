package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-manager/internal/middleware"
	"github.com/ukydev/fleet-manager/internal/models"
)

// DashboardProvider computes dashboard data. It is implemented by dashboard.Service.
type DashboardProvider interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
	Summary(ctx context.Context) (*models.DashboardSummary, error)
	MonthlyTrips(ctx context.Context) ([]models.MonthlyTripData, error)
	MonthlyCosts(ctx context.Context) ([]models.MaintenanceCostData, error)
}

// DashboardHandler serves dashboard analytics.
type DashboardHandler struct {
	provider DashboardProvider
	timeout  time.Duration
}

// NewDashboardHandler creates a dashboard handler. A positive timeout bounds
// each computation.
func NewDashboardHandler(provider DashboardProvider, timeout time.Duration) *DashboardHandler {
	return &DashboardHandler{provider: provider, timeout: timeout}
}

// GetStats returns the scalar dashboard totals.
func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "stats", func(ctx context.Context) (interface{}, error) {
		return h.provider.Stats(ctx)
	})
}

// GetSummary returns stats plus the trailing 12-month series.
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "summary", func(ctx context.Context) (interface{}, error) {
		return h.provider.Summary(ctx)
	})
}

// GetMonthlyTrips returns trip counts per month.
func (h *DashboardHandler) GetMonthlyTrips(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "monthly_trips", func(ctx context.Context) (interface{}, error) {
		return h.provider.MonthlyTrips(ctx)
	})
}

// GetMonthlyCosts returns maintenance and fuel costs per month.
func (h *DashboardHandler) GetMonthlyCosts(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "monthly_costs", func(ctx context.Context) (interface{}, error) {
		return h.provider.MonthlyCosts(ctx)
	})
}

func (h *DashboardHandler) serve(w http.ResponseWriter, r *http.Request, view string, compute func(context.Context) (interface{}, error)) {
	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	result, err := compute(ctx)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"view":       view,
			"request_id": middleware.GetRequestID(r.Context()),
		}).Error("Failed to compute dashboard")
		if errors.Is(err, context.DeadlineExceeded) {
			http.Error(w, "Dashboard computation timed out", http.StatusGatewayTimeout)
			return
		}
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("Failed to encode response")
	}
}
