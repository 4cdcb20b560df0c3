package response

import (
	"time"

	"github.com/google/uuid"

	"github.com/Alturino/shopping/internal/money"
	productResponse "github.com/Alturino/shopping/product/pkg/response"
)

type Order struct {
	ID          uuid.UUID    `json:"id"`
	UserID      uuid.UUID    `json:"user_id"`
	Status      string       `json:"status"`
	TotalAmount money.Amount `json:"total_amount"`
	Currency    string       `json:"currency"`
	Items       []OrderItem  `json:"items"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

type OrderItem struct {
	ID        uuid.UUID               `json:"id"`
	OrderID   uuid.UUID               `json:"order_id"`
	Product   productResponse.Product `json:"product"`
	Quantity  int32                   `json:"quantity"`
	UnitPrice money.Amount            `json:"unit_price"`
	LineTotal money.Amount            `json:"line_total"`
}
