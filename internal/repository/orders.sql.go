package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const orderColumns = `id, user_id, status, total_amount, currency, created_at, updated_at`

func scanOrder(row interface{ Scan(...interface{}) error }, o *Order) error {
	return row.Scan(
		&o.ID,
		&o.UserID,
		&o.Status,
		&o.TotalAmount,
		&o.Currency,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
}

const insertOrder = `
INSERT INTO orders (id, user_id, status, total_amount, currency)
VALUES ($1, $2, $3, 0, $4)
RETURNING ` + orderColumns

type InsertOrderParams struct {
	ID       uuid.UUID `json:"id"`
	UserID   uuid.UUID `json:"user_id"`
	Status   string    `json:"status"`
	Currency string    `json:"currency"`
}

func (q *Queries) InsertOrder(ctx context.Context, arg InsertOrderParams) (Order, error) {
	row := q.db.QueryRow(ctx, insertOrder, arg.ID, arg.UserID, arg.Status, arg.Currency)
	var i Order
	err := scanOrder(row, &i)
	return i, err
}

type InsertOrderItemsParams struct {
	ID        uuid.UUID      `json:"id"`
	OrderID   uuid.UUID      `json:"order_id"`
	ProductID uuid.UUID      `json:"product_id"`
	Quantity  int32          `json:"quantity"`
	UnitPrice pgtype.Numeric `json:"unit_price"`
	LineTotal pgtype.Numeric `json:"line_total"`
}

type iteratorForInsertOrderItems struct {
	rows                 []InsertOrderItemsParams
	skippedFirstNextCall bool
}

func (r *iteratorForInsertOrderItems) Next() bool {
	if len(r.rows) == 0 {
		return false
	}
	if !r.skippedFirstNextCall {
		r.skippedFirstNextCall = true
		return true
	}
	r.rows = r.rows[1:]
	return len(r.rows) > 0
}

func (r iteratorForInsertOrderItems) Values() ([]interface{}, error) {
	return []interface{}{
		r.rows[0].ID,
		r.rows[0].OrderID,
		r.rows[0].ProductID,
		r.rows[0].Quantity,
		r.rows[0].UnitPrice,
		r.rows[0].LineTotal,
	}, nil
}

func (r iteratorForInsertOrderItems) Err() error {
	return nil
}

// InsertOrderItems bulk inserts the items with the COPY protocol.
func (q *Queries) InsertOrderItems(ctx context.Context, arg []InsertOrderItemsParams) (int64, error) {
	return q.db.CopyFrom(
		ctx,
		pgx.Identifier{"order_items"},
		[]string{"id", "order_id", "product_id", "quantity", "unit_price", "line_total"},
		&iteratorForInsertOrderItems{rows: arg},
	)
}

const updateOrderTotalAmount = `
UPDATE orders
SET total_amount = $2, updated_at = now()
WHERE id = $1
RETURNING ` + orderColumns

type UpdateOrderTotalAmountParams struct {
	ID          uuid.UUID      `json:"id"`
	TotalAmount pgtype.Numeric `json:"total_amount"`
}

func (q *Queries) UpdateOrderTotalAmount(ctx context.Context, arg UpdateOrderTotalAmountParams) (Order, error) {
	row := q.db.QueryRow(ctx, updateOrderTotalAmount, arg.ID, arg.TotalAmount)
	var i Order
	err := scanOrder(row, &i)
	return i, err
}

const findOrdersByUserId = `
SELECT ` + orderColumns + `
FROM orders
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
`

func (q *Queries) FindOrdersByUserId(ctx context.Context, userID uuid.UUID) ([]Order, error) {
	rows, err := q.db.Query(ctx, findOrdersByUserId, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Order{}
	for rows.Next() {
		var i Order
		if err := scanOrder(rows, &i); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const findOrderByIdAndUserId = `
SELECT ` + orderColumns + `
FROM orders
WHERE id = $1 AND user_id = $2
`

type FindOrderByIdAndUserIdParams struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`
}

func (q *Queries) FindOrderByIdAndUserId(ctx context.Context, arg FindOrderByIdAndUserIdParams) (Order, error) {
	row := q.db.QueryRow(ctx, findOrderByIdAndUserId, arg.ID, arg.UserID)
	var i Order
	err := scanOrder(row, &i)
	return i, err
}

type FindOrderItemsByOrderIdsRow struct {
	OrderItem OrderItem `json:"order_item"`
	Product   Product   `json:"product"`
}

const findOrderItemsByOrderIds = `
SELECT
    oi.id, oi.order_id, oi.product_id, oi.quantity, oi.unit_price, oi.line_total, oi.created_at,
    p.id, p.name, p.description, p.price, p.currency, p.image_url, p.is_active, p.created_at, p.updated_at
FROM order_items oi
JOIN products p ON p.id = oi.product_id
WHERE oi.order_id = ANY($1::uuid[])
ORDER BY oi.created_at, oi.id
`

func (q *Queries) FindOrderItemsByOrderIds(ctx context.Context, orderIDs []uuid.UUID) ([]FindOrderItemsByOrderIdsRow, error) {
	rows, err := q.db.Query(ctx, findOrderItemsByOrderIds, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []FindOrderItemsByOrderIdsRow{}
	for rows.Next() {
		var i FindOrderItemsByOrderIdsRow
		if err := rows.Scan(
			&i.OrderItem.ID,
			&i.OrderItem.OrderID,
			&i.OrderItem.ProductID,
			&i.OrderItem.Quantity,
			&i.OrderItem.UnitPrice,
			&i.OrderItem.LineTotal,
			&i.OrderItem.CreatedAt,
			&i.Product.ID,
			&i.Product.Name,
			&i.Product.Description,
			&i.Product.Price,
			&i.Product.Currency,
			&i.Product.ImageUrl,
			&i.Product.IsActive,
			&i.Product.CreatedAt,
			&i.Product.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
