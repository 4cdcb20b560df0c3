package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Validation failures never reach the service, so none is wired.
func TestUserControllerValidation(t *testing.T) {
	router := mux.NewRouter()
	AttachUserController(router, nil)

	tests := []struct {
		name   string
		target string
		body   string
	}{
		{name: "given malformed json should return bad request", target: "/auth/login", body: "{"},
		{name: "given invalid email should return bad request", target: "/auth/register", body: `{"email":"nope","password":"password123"}`},
		{name: "given short password should return bad request", target: "/auth/register", body: `{"email":"a@shop.test","password":"short"}`},
		{name: "given missing password should return bad request", target: "/auth/login", body: `{"email":"a@shop.test"}`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, test.target, strings.NewReader(test.body)))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			body := map[string]interface{}{}
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
			assert.Equal(t, "failed", body["status"])
			assert.NotContains(t, w.Body.String(), "password123")
		})
	}
}
