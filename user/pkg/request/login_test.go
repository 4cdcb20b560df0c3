package request

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginRequest(t *testing.T) {
	expectedMap := map[string]string{"email": "email", "password": "***"}
	expected, _ := json.Marshal(expectedMap)
	loginReq := Login{Email: "email", Password: "password"}

	actual, _ := json.Marshal(loginReq)

	assert.EqualValues(t, expected, actual)
	assert.EqualValues(t, "password", loginReq.Password)
}

func TestRegisterRequestMasksPassword(t *testing.T) {
	registerReq := Register{Email: "a@shop.test", Password: "password123", FullName: "A"}

	actual, err := json.Marshal(registerReq)
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"a@shop.test","password":"***","full_name":"A"}`, string(actual))

	var buffer bytes.Buffer
	zerolog.New(&buffer).Info().Object("request", registerReq).Msg("")
	assert.NotContains(t, buffer.String(), "password123")
}

func TestRegisterRequestValidation(t *testing.T) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	tests := []struct {
		name    string
		input   Register
		wantErr bool
	}{
		{name: "given valid request should pass", input: Register{Email: "a@shop.test", Password: "password123"}},
		{name: "given short password should fail", input: Register{Email: "a@shop.test", Password: "short"}, wantErr: true},
		{name: "given invalid email should fail", input: Register{Email: "not-an-email", Password: "password123"}, wantErr: true},
		{name: "given 72 character password should pass", input: Register{Email: "a@shop.test", Password: strings.Repeat("p", 72)}},
		{name: "given password over 72 characters should fail", input: Register{Email: "a@shop.test", Password: strings.Repeat("p", 100)}, wantErr: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := validate.Struct(test.input)
			if test.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
