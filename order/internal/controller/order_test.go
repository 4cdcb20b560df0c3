package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/shopping/internal/config"
	inHttp "github.com/Alturino/shopping/internal/http"
	"github.com/Alturino/shopping/internal/middleware"
	"github.com/Alturino/shopping/internal/token"
)

// The requests below are rejected before the service is reached, so no service is wired.
func TestOrderControllerRejectsBadRequests(t *testing.T) {
	manager := token.NewManager(config.Application{SecretKey: "secret", AccessTokenExpMinutes: 5})
	signed, err := manager.Sign(context.Background(), uuid.New())
	require.NoError(t, err)

	router := mux.NewRouter()
	AttachOrderController(router, nil, middleware.Auth(manager))

	tests := []struct {
		name          string
		method        string
		target        string
		body          string
		authorization string
		expected      int
		message       string
	}{
		{
			name:     "given no token when checking out should return unauthorized",
			method:   http.MethodPost,
			target:   "/checkout",
			expected: http.StatusUnauthorized,
			message:  "missing authorization",
		},
		{
			name:          "given malformed body when checking out should return bad request",
			method:        http.MethodPost,
			target:        "/checkout",
			body:          "{",
			authorization: "Bearer " + signed,
			expected:      http.StatusBadRequest,
			message:       "invalid request",
		},
		{
			name:          "given too long idempotency key should return bad request",
			method:        http.MethodPost,
			target:        "/checkout",
			body:          `{"idempotency_key":"` + strings.Repeat("k", 256) + `"}`,
			authorization: "Bearer " + signed,
			expected:      http.StatusBadRequest,
		},
		{
			name:          "given malformed order id should return bad request",
			method:        http.MethodGet,
			target:        "/orders/not-a-uuid",
			authorization: "Bearer " + signed,
			expected:      http.StatusBadRequest,
			message:       "invalid request",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := httptest.NewRequest(test.method, test.target, strings.NewReader(test.body))
			if test.authorization != "" {
				r.Header.Set(inHttp.KeyHeaderAuthorization, test.authorization)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, r)

			assert.Equal(t, test.expected, w.Code)
			body := map[string]interface{}{}
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
			assert.Equal(t, inHttp.StatusFailed, body["status"])
			if test.message != "" {
				assert.Equal(t, test.message, body["message"])
			}
		})
	}
}
