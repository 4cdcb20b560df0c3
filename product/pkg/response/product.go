package response

import (
	"time"

	"github.com/google/uuid"

	"github.com/Alturino/shopping/internal/money"
)

type Product struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Description *string      `json:"description"`
	Price       money.Amount `json:"price"`
	Currency    string       `json:"currency"`
	ImageUrl    *string      `json:"image_url"`
	IsActive    bool         `json:"is_active"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
