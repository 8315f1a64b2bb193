package handlers

import (
	"net/http"
	"net/netip"
	"time"

	"github.com/ukydev/fleet-manager/internal/auth"
	"github.com/ukydev/fleet-manager/internal/db"
	"github.com/ukydev/fleet-manager/internal/middleware"
	"github.com/ukydev/fleet-manager/internal/models"
	"github.com/ukydev/fleet-manager/internal/store"
)

// RouterConfig wires the API handlers.
type RouterConfig struct {
	Auth      *auth.Service
	Users     db.UserCollection // nil disables login and registration
	Dashboard DashboardProvider
	Records   store.RecordStore

	RequestTimeout  time.Duration
	RateLimit       int
	RateLimitWindow time.Duration
	TrustedProxies  []netip.Prefix
}

// Health reports that the process is serving.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// NewRouter builds the API handler with authentication, rate limiting and request logging.
func NewRouter(cfg RouterConfig) http.Handler {
	authMW := middleware.NewAuthMiddleware(cfg.Auth)
	viewDashboard := authMW.RequirePermission(models.ActionViewDashboard)
	viewRecords := authMW.RequirePermission(models.ActionViewRecords)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", Health)

	if cfg.Users != nil {
		authHandler := NewAuthHandler(cfg.Auth, cfg.Users)
		mux.HandleFunc("POST /api/auth/login", authHandler.Login)
		mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	}

	dash := NewDashboardHandler(cfg.Dashboard, cfg.RequestTimeout)
	mux.Handle("GET /api/dashboard/stats", viewDashboard(http.HandlerFunc(dash.GetStats)))
	mux.Handle("GET /api/dashboard/summary", viewDashboard(http.HandlerFunc(dash.GetSummary)))
	mux.Handle("GET /api/dashboard/monthly-trips", viewDashboard(http.HandlerFunc(dash.GetMonthlyTrips)))
	mux.Handle("GET /api/dashboard/monthly-costs", viewDashboard(http.HandlerFunc(dash.GetMonthlyCosts)))

	if cfg.Records != nil {
		records := NewRecordHandler(cfg.Records)
		mux.Handle("GET /api/records/{collection}", viewRecords(http.HandlerFunc(records.ListRecords)))
		mux.Handle("GET /api/records/{collection}/{id}", viewRecords(http.HandlerFunc(records.GetRecord)))
	}

	var handler http.Handler = authMW.Authenticate(mux)
	handler = middleware.NewRateLimitMiddleware(cfg.TrustedProxies...).RateLimit(cfg.RateLimit, cfg.RateLimitWindow)(handler)
	return middleware.RequestLogger(handler)
}
