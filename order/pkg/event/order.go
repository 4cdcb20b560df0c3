package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/Alturino/shopping/internal/money"
)

// OrderCreated is published on the order.created channel after a checkout commits.
type OrderCreated struct {
	OrderID     uuid.UUID    `json:"order_id"`
	UserID      uuid.UUID    `json:"user_id"`
	TotalAmount money.Amount `json:"total_amount"`
	Currency    string       `json:"currency"`
	ItemsCount  int          `json:"items_count"`
	CreatedAt   time.Time    `json:"created_at"`
}
