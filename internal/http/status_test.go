package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inErrors "github.com/Alturino/shopping/internal/errors"
)

func TestStatusFromError(t *testing.T) {
	type payload struct {
		Quantity int `validate:"required"`
	}
	validationErr := validator.New().Struct(payload{})

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "not found", err: fmt.Errorf("failed x with error=%w", inErrors.ErrNotFound), expected: http.StatusNotFound},
		{name: "invalid quantity", err: inErrors.ErrInvalidQuantity, expected: http.StatusUnprocessableEntity},
		{name: "empty cart", err: inErrors.ErrEmptyCart, expected: http.StatusBadRequest},
		{name: "conflict", err: inErrors.ErrConflict, expected: http.StatusConflict},
		{name: "storage conflict", err: inErrors.ErrStorageConflict, expected: http.StatusConflict},
		{name: "invalid credentials", err: inErrors.ErrInvalidCredentials, expected: http.StatusUnauthorized},
		{name: "token invalid", err: errors.Join(inErrors.ErrTokenInvalid, errors.New("expired")), expected: http.StatusUnauthorized},
		{name: "validation", err: validationErr, expected: http.StatusBadRequest},
		{name: "unknown", err: errors.New("boom"), expected: http.StatusInternalServerError},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, StatusFromError(test.err))
		})
	}
}

func TestWriteErrorResponse(t *testing.T) {
	t.Run("given internal error should hide message", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteErrorResponse(context.Background(), w, errors.New("pg: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, ValueHeaderApplicationJson, w.Header().Get(KeyHeaderContentType))
		body := map[string]interface{}{}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, StatusFailed, body["status"])
		assert.Equal(t, "Internal Server Error", body["message"])
	})

	t.Run("given not found should keep message", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteErrorResponse(context.Background(), w, inErrors.ErrNotFound)

		assert.Equal(t, http.StatusNotFound, w.Code)
		body := map[string]interface{}{}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, inErrors.ErrNotFound.Error(), body["message"])
	})
}

func TestMessageFromError(t *testing.T) {
	err := fmt.Errorf("failed finding product id=1 with error=%w", inErrors.ErrNotFound)
	assert.Equal(t, "not found", MessageFromError(err))
}
