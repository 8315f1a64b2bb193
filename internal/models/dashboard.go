package models

// DashboardStats holds the scalar dashboard totals.
type DashboardStats struct {
	TotalVehicles    int     `json:"total_vehicles"`
	TotalDrivers     int     `json:"total_drivers"`
	TotalTrips       int     `json:"total_trips"`
	TripsThisMonth   int     `json:"trips_this_month"`
	MaintenanceCosts float64 `json:"maintenance_costs"`
}

// MonthlyTripData is the trip count for one calendar month.
type MonthlyTripData struct {
	Month     string `json:"month"` // YYYY-MM
	TripCount int    `json:"trip_count"`
}

// MaintenanceCostData is the combined maintenance and fuel cost for one calendar month.
type MaintenanceCostData struct {
	Month string  `json:"month"` // YYYY-MM
	Cost  float64 `json:"cost"`
}

// DashboardSummary is the full dashboard payload: stats plus two 12-month series.
type DashboardSummary struct {
	Stats            DashboardStats        `json:"stats"`
	MonthlyTrips     []MonthlyTripData     `json:"monthly_trips"`
	MaintenanceCosts []MaintenanceCostData `json:"maintenance_costs"`
}
