package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_GenerateAndValidate(t *testing.T) {
	service := NewJWTService("test-secret", "docqa", 30*time.Minute)

	token, err := service.GenerateToken(7, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "docqa", claims.Issuer)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	service := NewJWTService("test-secret", "docqa", -time.Minute)

	token, err := service.GenerateToken(7, "alice")
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_WrongSecret(t *testing.T) {
	service := NewJWTService("test-secret", "docqa", 30*time.Minute)
	other := NewJWTService("other-secret", "docqa", 30*time.Minute)

	token, err := service.GenerateToken(7, "alice")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RefreshToken(t *testing.T) {
	service := NewJWTService("test-secret", "docqa", 30*time.Minute)

	token, err := service.GenerateToken(7, "alice")
	require.NoError(t, err)

	refreshed, err := service.RefreshToken(token)
	require.NoError(t, err)

	claims, err := service.ValidateToken(refreshed)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"valid", "Bearer abc123", "abc123", false},
		{"empty header", "", "", true},
		{"missing prefix", "abc123", "", true},
		{"empty token", "Bearer ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := ExtractTokenFromHeader(tt.header)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, token)
		})
	}
}
