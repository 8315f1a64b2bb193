package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/fleet-manager/internal/auth"
	"github.com/ukydev/fleet-manager/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newAuthService(t *testing.T) *auth.Service {
	t.Helper()
	svc, err := auth.NewService("middleware-secret", time.Hour)
	require.NoError(t, err)
	return svc
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	authService := newAuthService(t)
	middleware := NewAuthMiddleware(authService)

	t.Run("valid token", func(t *testing.T) {
		user := &models.User{
			ID:       primitive.NewObjectID(),
			Username: "testuser",
			Role:     models.RoleViewer,
		}
		token, err := authService.GenerateToken(user)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/dashboard/stats", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		handlerCalled := false
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handlerCalled = true
			claims, ok := GetUserFromContext(r.Context())
			assert.True(t, ok)
			assert.Equal(t, user.Username, claims.Username)
			assert.Equal(t, user.Role, claims.Role)
		})

		middleware.Authenticate(handler).ServeHTTP(w, req)
		assert.True(t, handlerCalled)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing authorization header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/dashboard/stats", nil)
		w := httptest.NewRecorder()

		handlerCalled := false
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handlerCalled = true
		})

		middleware.Authenticate(handler).ServeHTTP(w, req)
		assert.False(t, handlerCalled)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/dashboard/summary", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		w := httptest.NewRecorder()

		middleware.Authenticate(http.NotFoundHandler()).ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid token")
	})

	t.Run("public paths skip auth", func(t *testing.T) {
		for _, path := range []string{"/health", "/api/auth/login"} {
			req := httptest.NewRequest("GET", path, nil)
			w := httptest.NewRecorder()

			handlerCalled := false
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
			})

			middleware.Authenticate(handler).ServeHTTP(w, req)
			assert.True(t, handlerCalled, path)
		}
	})

	t.Run("prefix of public path still requires auth", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/healthz", nil)
		w := httptest.NewRecorder()

		middleware.Authenticate(http.NotFoundHandler()).ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthMiddleware_RequirePermission(t *testing.T) {
	middleware := NewAuthMiddleware(newAuthService(t))

	tests := []struct {
		name       string
		role       models.Role
		action     string
		wantStatus int
	}{
		{"viewer can view dashboard", models.RoleViewer, models.ActionViewDashboard, http.StatusOK},
		{"dispatcher can view records", models.RoleDispatcher, models.ActionViewRecords, http.StatusOK},
		{"viewer cannot manage vehicles", models.RoleViewer, models.ActionManageVehicles, http.StatusForbidden},
		{"manager cannot manage users", models.RoleManager, models.ActionManageUsers, http.StatusForbidden},
		{"admin can manage users", models.RoleAdmin, models.ActionManageUsers, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := &models.Claims{UserID: "u1", Username: "u", Role: tt.role}
			req := httptest.NewRequest("GET", "/api/dashboard/stats", nil)
			req = req.WithContext(context.WithValue(req.Context(), UserContextKey, claims))
			w := httptest.NewRecorder()

			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			middleware.RequirePermission(tt.action)(handler).ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}

	t.Run("no user context", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/dashboard/stats", nil)
		w := httptest.NewRecorder()

		middleware.RequirePermission(models.ActionViewDashboard)(http.NotFoundHandler()).ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestGetUserFromContext(t *testing.T) {
	claims := &models.Claims{UserID: "u1", Username: "testuser", Role: models.RoleAdmin}

	got, ok := GetUserFromContext(context.WithValue(context.Background(), UserContextKey, claims))
	assert.True(t, ok)
	assert.Equal(t, claims, got)

	_, ok = GetUserFromContext(context.Background())
	assert.False(t, ok)
}
