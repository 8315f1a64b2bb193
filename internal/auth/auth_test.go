package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/fleet-manager/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

func newTestService(t *testing.T) *Service {
	t.Helper()
	service, err := NewService(testSecret, time.Hour)
	require.NoError(t, err)
	return service
}

func TestNewService(t *testing.T) {
	service, err := NewService(testSecret, 0)
	assert.NoError(t, err)
	assert.Equal(t, []byte(testSecret), service.jwtSecret)
	assert.Equal(t, 24*time.Hour, service.tokenExp)

	_, err = NewService("", time.Hour)
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestService_HashAndCheckPassword(t *testing.T) {
	service := newTestService(t)

	hash, err := service.HashPassword("testpassword123")
	require.NoError(t, err)
	assert.NotEqual(t, "testpassword123", hash)

	assert.True(t, service.CheckPassword("testpassword123", hash))
	assert.False(t, service.CheckPassword("wrongpassword", hash))
}

func TestService_ValidateToken(t *testing.T) {
	service := newTestService(t)
	user := &models.User{
		ID:       primitive.NewObjectID(),
		Username: "testuser",
		Role:     models.RoleManager,
	}

	token, err := service.GenerateToken(user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, user.Username, claims.Username)
	assert.Equal(t, models.RoleManager, claims.Role)
	assert.Greater(t, claims.Exp, time.Now().Unix())

	_, err = service.ValidateToken("Bearer " + token)
	assert.NoError(t, err)

	_, err = service.ValidateToken("invalid-token")
	assert.Equal(t, ErrInvalidToken, err)
}

func TestService_ValidateToken_Rejects(t *testing.T) {
	service := newTestService(t)
	user := &models.User{ID: primitive.NewObjectID(), Username: "u", Role: models.RoleViewer}

	t.Run("other secret", func(t *testing.T) {
		other, err := NewService("another-secret", time.Hour)
		require.NoError(t, err)
		token, err := other.GenerateToken(user)
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.Equal(t, ErrInvalidToken, err)
	})

	t.Run("expired", func(t *testing.T) {
		claims := tokenClaims{
			UserID: user.ID.Hex(),
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    issuer,
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.Equal(t, ErrExpiredToken, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		claims := tokenClaims{
			UserID: user.ID.Hex(),
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "someone-else",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.Equal(t, ErrInvalidToken, err)
	})

	t.Run("wrong algorithm", func(t *testing.T) {
		claims := tokenClaims{
			UserID: user.ID.Hex(),
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    issuer,
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.Equal(t, ErrInvalidToken, err)
	})
}

func TestService_GenerateRefreshToken(t *testing.T) {
	service := newTestService(t)

	a, err := service.GenerateRefreshToken()
	require.NoError(t, err)
	b, err := service.GenerateRefreshToken()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 44)
}

func TestService_ExtractTokenFromHeader(t *testing.T) {
	service := newTestService(t)

	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"valid header", "Bearer valid-token", "valid-token", false},
		{"empty header", "", "", true},
		{"no scheme", "InvalidFormat", "", true},
		{"missing token", "Bearer ", "", true},
		{"basic scheme", "Basic abc", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := service.ExtractTokenFromHeader(tt.header)
			if tt.wantErr {
				assert.Equal(t, ErrInvalidToken, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_ValidateRegistration(t *testing.T) {
	s := newTestService(t)

	assert.NoError(t, s.ValidateUsername("dispatcher1"))
	assert.Error(t, s.ValidateUsername("ab"))
	assert.Error(t, s.ValidateUsername(strings.Repeat("a", 51)))
	assert.Error(t, s.ValidateUsername("two words"))
	assert.Error(t, s.ValidateUsername("tab\tname"))

	assert.NoError(t, s.ValidatePassword("password123"))
	assert.Error(t, s.ValidatePassword("short"))
	assert.Error(t, s.ValidatePassword(strings.Repeat("p", 73)))

	assert.NoError(t, s.ValidateEmail(""))
	assert.NoError(t, s.ValidateEmail("ops@fleet.example.com"))
	assert.Error(t, s.ValidateEmail("ops"))
	assert.Error(t, s.ValidateEmail("@fleet.com"))
	assert.Error(t, s.ValidateEmail("ops@localhost"))
}
