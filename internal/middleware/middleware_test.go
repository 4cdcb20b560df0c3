package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/shopping/internal/config"
	inHttp "github.com/Alturino/shopping/internal/http"
	"github.com/Alturino/shopping/internal/log"
	"github.com/Alturino/shopping/internal/token"
)

func TestAuth(t *testing.T) {
	manager := token.NewManager(config.Application{SecretKey: "secret", AccessTokenExpMinutes: 5})
	userID := uuid.New()
	signed, err := manager.Sign(context.Background(), userID)
	require.NoError(t, err)

	var gotUserID uuid.UUID
	handler := Auth(manager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, err = token.UserIdFromJwtToken(r.Context())
		require.NoError(t, err)
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name          string
		authorization string
		expected      int
		message       string
	}{
		{name: "given no header should return unauthorized", authorization: "", expected: http.StatusUnauthorized, message: "missing authorization"},
		{name: "given wrong scheme should return unauthorized", authorization: "Basic " + signed, expected: http.StatusUnauthorized, message: "missing authorization"},
		{name: "given invalid token should return unauthorized", authorization: "Bearer abc", expected: http.StatusUnauthorized, message: "invalid token"},
		{name: "given valid token should pass", authorization: "bearer " + signed, expected: http.StatusNoContent},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/cart", nil)
			if test.authorization != "" {
				r.Header.Set(inHttp.KeyHeaderAuthorization, test.authorization)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)

			assert.Equal(t, test.expected, w.Code)
			if test.message != "" {
				body := map[string]interface{}{}
				require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
				assert.Equal(t, test.message, body["message"])
				return
			}
			assert.Equal(t, userID, gotUserID)
		})
	}
}

func TestLoggingKeepsBodyAndRequestID(t *testing.T) {
	var gotBody []byte
	var gotRequestID string
	handler := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotRequestID = log.RequestIDFromContext(r.Context())
	}))

	body := []byte(`{"email":"a@b.test","password":"secret123"}`)
	r := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	r.Header.Set(inHttp.KeyHeaderRequestID, "req-1")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, body, gotBody)
	assert.Equal(t, "req-1", gotRequestID)
	assert.Equal(t, "req-1", w.Header().Get(inHttp.KeyHeaderRequestID))
}

func TestRecoverPanic(t *testing.T) {
	handler := RecoverPanic(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("not an error value")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCors(t *testing.T) {
	handler := Cors([]string{"http://shop.test"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	r := httptest.NewRequest(http.MethodOptions, "/cart", nil)
	r.Header.Set("Origin", "http://shop.test")
	r.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, "http://shop.test", w.Header().Get("Access-Control-Allow-Origin"))
}
