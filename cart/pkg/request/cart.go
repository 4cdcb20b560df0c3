package request

import (
	"github.com/google/uuid"
)

// UpsertCartItem only bounds quantity from above so the service can reject non positive
// values with its own error.
type UpsertCartItem struct {
	ProductID uuid.UUID `validate:"required"  json:"product_id"`
	Quantity  int32     `validate:"max=1000" json:"quantity"`
}
