package token

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/shopping/internal/config"
	inErrors "github.com/Alturino/shopping/internal/errors"
)

func TestSignAndVerify(t *testing.T) {
	c := context.Background()
	manager := NewManager(config.Application{SecretKey: "secret", AccessTokenExpMinutes: 5})
	userID := uuid.New()

	signed, err := manager.Sign(c, userID)
	require.NoError(t, err)

	parsed, err := manager.Verify(c, signed)
	require.NoError(t, err)

	got, err := UserIdFromJwtToken(AttachJwtToken(c, parsed))
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestVerifyRejects(t *testing.T) {
	c := context.Background()
	manager := NewManager(config.Application{SecretKey: "secret", AccessTokenExpMinutes: 5})
	signed, err := manager.Sign(c, uuid.New())
	require.NoError(t, err)

	tests := []struct {
		name    string
		manager func() *Manager
		raw     string
	}{
		{
			name:    "given token signed with another secret should fail",
			manager: func() *Manager { return NewManager(config.Application{SecretKey: "other"}) },
			raw:     signed,
		},
		{
			name: "given expired token should fail",
			manager: func() *Manager {
				m := NewManager(config.Application{SecretKey: "secret"})
				m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
				return m
			},
			raw: signed,
		},
		{
			name:    "given garbage should fail",
			manager: func() *Manager { return manager },
			raw:     "not-a-jwt",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := test.manager().Verify(c, test.raw)
			assert.True(t, errors.Is(err, inErrors.ErrTokenInvalid), "got %v", err)
		})
	}
}

func TestUserIdFromJwtTokenWithoutToken(t *testing.T) {
	_, err := UserIdFromJwtToken(context.Background())
	assert.ErrorIs(t, err, inErrors.ErrEmptyAuth)
}
