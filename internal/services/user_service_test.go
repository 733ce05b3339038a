package services

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.True(t, CheckPassword(hash, "s3cret-password"))
	assert.False(t, CheckPassword(hash, "wrong-password"))
	assert.False(t, CheckPassword("not-a-hash", "s3cret-password"))
}

func TestRegisterRequest_Validation(t *testing.T) {
	validate := validator.New()

	tests := []struct {
		name    string
		req     RegisterRequest
		wantErr bool
	}{
		{"valid", RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "password123"}, false},
		{"short username", RegisterRequest{Username: "ab", Email: "alice@example.com", Password: "password123"}, true},
		{"bad email", RegisterRequest{Username: "alice", Email: "not-an-email", Password: "password123"}, true},
		{"short password", RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "short"}, true},
		{"missing fields", RegisterRequest{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
