package request

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUpsertCartItemValidation(t *testing.T) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	tests := []struct {
		name    string
		input   UpsertCartItem
		wantErr bool
	}{
		{name: "given quantity at limit should pass", input: UpsertCartItem{ProductID: uuid.New(), Quantity: 1000}},
		{name: "given quantity over limit should fail", input: UpsertCartItem{ProductID: uuid.New(), Quantity: 1001}, wantErr: true},
		{name: "given non positive quantity should be left to the service", input: UpsertCartItem{ProductID: uuid.New(), Quantity: 0}},
		{name: "given missing product should fail", input: UpsertCartItem{Quantity: 1}, wantErr: true},
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
