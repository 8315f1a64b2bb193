package models

import (
	"testing"
)

func TestIsValidRole(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		expected bool
	}{
		{"admin role", RoleAdmin, true},
		{"manager role", RoleManager, true},
		{"dispatcher role", RoleDispatcher, true},
		{"viewer role", RoleViewer, true},
		{"invalid role", "operator", false},
		{"empty role", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsValidRole(tt.role)
			if result != tt.expected {
				t.Errorf("IsValidRole(%s) = %v, want %v", tt.role, result, tt.expected)
			}
		})
	}
}

func TestUser_HasPermission(t *testing.T) {
	admin := &User{Role: RoleAdmin}
	manager := &User{Role: RoleManager}
	dispatcher := &User{Role: RoleDispatcher}
	viewer := &User{Role: RoleViewer}
	unknown := &User{Role: "contractor"}

	tests := []struct {
		name     string
		user     *User
		action   string
		expected bool
	}{
		// Admin can do everything
		{"admin can manage users", admin, ActionManageUsers, true},
		{"admin can view dashboard", admin, ActionViewDashboard, true},

		// Manager can do everything except user management
		{"manager cannot manage users", manager, ActionManageUsers, false},
		{"manager can manage vehicles", manager, ActionManageVehicles, true},
		{"manager can view dashboard", manager, ActionViewDashboard, true},

		// Dispatcher handles day-to-day trip and expense entry
		{"dispatcher can view dashboard", dispatcher, ActionViewDashboard, true},
		{"dispatcher can manage trips", dispatcher, ActionManageTrips, true},
		{"dispatcher can manage fuel expenses", dispatcher, ActionManageFuelExpenses, true},
		{"dispatcher cannot manage vehicles", dispatcher, ActionManageVehicles, false},
		{"dispatcher cannot manage maintenance", dispatcher, ActionManageMaintenance, false},

		// Viewer is read-only
		{"viewer can view dashboard", viewer, ActionViewDashboard, true},
		{"viewer can view records", viewer, ActionViewRecords, true},
		{"viewer cannot manage trips", viewer, ActionManageTrips, false},
		{"viewer cannot manage drivers", viewer, ActionManageDrivers, false},

		{"unknown role has no permissions", unknown, ActionViewDashboard, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.user.HasPermission(tt.action)
			if result != tt.expected {
				t.Errorf("User with role %s HasPermission(%s) = %v, want %v",
					tt.user.Role, tt.action, result, tt.expected)
			}
		})
	}
}

func TestRecord_ID(t *testing.T) {
	tests := []struct {
		name   string
		record Record
		want   string
	}{
		{"id field", Record{"id": "abc"}, "abc"},
		{"mongo _id field", Record{"_id": "64b7f0c2e4b0a1a2b3c4d5e6"}, "64b7f0c2e4b0a1a2b3c4d5e6"},
		{"non-string id", Record{"id": 42}, ""},
		{"no id", Record{"name": "van"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.record.ID(); got != tt.want {
				t.Errorf("ID() = %q, want %q", got, tt.want)
			}
		})
	}
}
