package service

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Alturino/shopping/internal/config"
	inErrors "github.com/Alturino/shopping/internal/errors"
	inHttp "github.com/Alturino/shopping/internal/http"
	"github.com/Alturino/shopping/internal/repository"
	"github.com/Alturino/shopping/internal/testutil"
	"github.com/Alturino/shopping/internal/token"
	"github.com/Alturino/shopping/user/pkg/request"
)

func TestUserService(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	c := context.Background()
	pool := testutil.StartPostgres(t)
	tokens := token.NewManager(config.Application{SecretKey: "secret", AccessTokenExpMinutes: 5})
	userService := NewUserService(repository.New(pool), tokens)

	registered, signed, err := userService.Register(c, request.Register{
		Email:    "  Buyer@Shop.Test ",
		Password: "password123",
		FullName: "Buyer",
	})
	require.NoError(t, err)
	assert.Equal(t, "buyer@shop.test", registered.Email)
	assert.True(t, registered.FullName.Valid)

	parsed, err := tokens.Verify(c, signed)
	require.NoError(t, err)
	subject, err := parsed.Claims.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, registered.ID.String(), subject)

	t.Run("given duplicate email should return conflict", func(t *testing.T) {
		_, _, err := userService.Register(c, request.Register{Email: "BUYER@shop.test", Password: "password123"})
		assert.ErrorIs(t, err, inErrors.ErrEmailRegistered)
		assert.ErrorIs(t, err, inErrors.ErrConflict)
	})

	t.Run("given correct credentials should login", func(t *testing.T) {
		user, signed, err := userService.Login(c, request.Login{Email: "buyer@SHOP.test", Password: "password123"})
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
		assert.NotEmpty(t, signed)
	})

	t.Run("given wrong password should return invalid credentials", func(t *testing.T) {
		_, _, err := userService.Login(c, request.Login{Email: "buyer@shop.test", Password: "wrong-password"})
		assert.ErrorIs(t, err, inErrors.ErrInvalidCredentials)
	})

	t.Run("given unknown email should return invalid credentials", func(t *testing.T) {
		_, _, err := userService.Login(c, request.Login{Email: "nobody@shop.test", Password: "password123"})
		assert.ErrorIs(t, err, inErrors.ErrInvalidCredentials)
	})
}

func TestHashPassword(t *testing.T) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	t.Run("given multibyte password over 72 bytes should return invalid request", func(t *testing.T) {
		password := strings.Repeat("é", 40)
		require.NoError(t, validate.Struct(request.Register{Email: "a@shop.test", Password: password}))

		_, err := hashPassword(password)
		assert.ErrorIs(t, err, inErrors.ErrInvalidRequest)
		assert.ErrorIs(t, err, bcrypt.ErrPasswordTooLong)
		assert.Equal(t, http.StatusBadRequest, inHttp.StatusFromError(err))
		assert.Equal(t, inErrors.ErrInvalidRequest.Error(), inHttp.MessageFromError(err))
	})

	t.Run("given 72 byte password should hash", func(t *testing.T) {
		password := strings.Repeat("p", 72)
		hashed, err := hashPassword(password)
		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword(hashed, []byte(password)))
	})

	t.Run("dummy hash should be usable for comparison", func(t *testing.T) {
		require.NotEmpty(t, dummyHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword(dummyHash, []byte("dummy-password")))
	})
}
