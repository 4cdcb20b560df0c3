package response

import (
	"time"

	"github.com/google/uuid"

	"github.com/Alturino/shopping/internal/money"
	productResponse "github.com/Alturino/shopping/product/pkg/response"
)

type Cart struct {
	ID        uuid.UUID    `json:"id"`
	UserID    uuid.UUID    `json:"user_id"`
	Status    string       `json:"status"`
	Items     []CartItem   `json:"items"`
	Subtotal  money.Amount `json:"subtotal"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type CartItem struct {
	ID        uuid.UUID               `json:"id"`
	CartID    uuid.UUID               `json:"cart_id"`
	Product   productResponse.Product `json:"product"`
	Quantity  int32                   `json:"quantity"`
	UnitPrice money.Amount            `json:"unit_price"`
}
