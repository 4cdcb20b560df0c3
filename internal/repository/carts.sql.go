package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const getOrCreateActiveCart = `
INSERT INTO carts (id, user_id, status)
VALUES ($1, $2, 'active')
ON CONFLICT (user_id) WHERE status = 'active'
DO UPDATE SET status = EXCLUDED.status
RETURNING id, user_id, status, created_at, updated_at
`

type GetOrCreateActiveCartParams struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`
}

// GetOrCreateActiveCart returns the active cart of the user, inserting one with arg.ID
// when none exists. The conflict branch takes a row lock on the existing cart, so
// concurrent callers for one user are serialized until the transaction ends.
func (q *Queries) GetOrCreateActiveCart(ctx context.Context, arg GetOrCreateActiveCartParams) (Cart, error) {
	row := q.db.QueryRow(ctx, getOrCreateActiveCart, arg.ID, arg.UserID)
	var i Cart
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const cartItemWithProductColumns = `
    ci.id, ci.cart_id, ci.product_id, ci.quantity, ci.unit_price, ci.created_at, ci.updated_at,
    p.id, p.name, p.description, p.price, p.currency, p.image_url, p.is_active, p.created_at, p.updated_at
`

type FindCartItemsByCartIdRow struct {
	CartItem CartItem `json:"cart_item"`
	Product  Product  `json:"product"`
}

const findCartItemsByCartId = `
SELECT` + cartItemWithProductColumns + `FROM cart_items ci
JOIN products p ON p.id = ci.product_id
WHERE ci.cart_id = $1
ORDER BY ci.created_at, ci.id
`

func (q *Queries) FindCartItemsByCartId(ctx context.Context, cartID uuid.UUID) ([]FindCartItemsByCartIdRow, error) {
	return q.findCartItems(ctx, findCartItemsByCartId, cartID)
}

const findCartItemsByCartIdForUpdate = `
SELECT` + cartItemWithProductColumns + `FROM cart_items ci
JOIN products p ON p.id = ci.product_id
WHERE ci.cart_id = $1
ORDER BY ci.created_at, ci.id
FOR UPDATE OF ci
`

// FindCartItemsByCartIdForUpdate row-locks every item of the cart.
func (q *Queries) FindCartItemsByCartIdForUpdate(ctx context.Context, cartID uuid.UUID) ([]FindCartItemsByCartIdRow, error) {
	return q.findCartItems(ctx, findCartItemsByCartIdForUpdate, cartID)
}

func (q *Queries) findCartItems(ctx context.Context, query string, cartID uuid.UUID) ([]FindCartItemsByCartIdRow, error) {
	rows, err := q.db.Query(ctx, query, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []FindCartItemsByCartIdRow{}
	for rows.Next() {
		var i FindCartItemsByCartIdRow
		if err := rows.Scan(
			&i.CartItem.ID,
			&i.CartItem.CartID,
			&i.CartItem.ProductID,
			&i.CartItem.Quantity,
			&i.CartItem.UnitPrice,
			&i.CartItem.CreatedAt,
			&i.CartItem.UpdatedAt,
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

const upsertCartItem = `
INSERT INTO cart_items (id, cart_id, product_id, quantity, unit_price)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (cart_id, product_id)
DO UPDATE SET quantity = EXCLUDED.quantity, unit_price = EXCLUDED.unit_price, updated_at = now()
RETURNING id, cart_id, product_id, quantity, unit_price, created_at, updated_at
`

type UpsertCartItemParams struct {
	ID        uuid.UUID      `json:"id"`
	CartID    uuid.UUID      `json:"cart_id"`
	ProductID uuid.UUID      `json:"product_id"`
	Quantity  int32          `json:"quantity"`
	UnitPrice pgtype.Numeric `json:"unit_price"`
}

func (q *Queries) UpsertCartItem(ctx context.Context, arg UpsertCartItemParams) (CartItem, error) {
	row := q.db.QueryRow(ctx, upsertCartItem,
		arg.ID,
		arg.CartID,
		arg.ProductID,
		arg.Quantity,
		arg.UnitPrice,
	)
	var i CartItem
	err := row.Scan(
		&i.ID,
		&i.CartID,
		&i.ProductID,
		&i.Quantity,
		&i.UnitPrice,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const deleteCartItem = `
DELETE FROM cart_items
WHERE id = $1 AND cart_id = $2
`

type DeleteCartItemParams struct {
	ID     uuid.UUID `json:"id"`
	CartID uuid.UUID `json:"cart_id"`
}

func (q *Queries) DeleteCartItem(ctx context.Context, arg DeleteCartItemParams) (int64, error) {
	result, err := q.db.Exec(ctx, deleteCartItem, arg.ID, arg.CartID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteCartItemsByCartId = `
DELETE FROM cart_items
WHERE cart_id = $1
`

func (q *Queries) DeleteCartItemsByCartId(ctx context.Context, cartID uuid.UUID) (int64, error) {
	result, err := q.db.Exec(ctx, deleteCartItemsByCartId, cartID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const touchCart = `
UPDATE carts
SET updated_at = now()
WHERE id = $1
RETURNING id, user_id, status, created_at, updated_at
`

func (q *Queries) TouchCart(ctx context.Context, id uuid.UUID) (Cart, error) {
	row := q.db.QueryRow(ctx, touchCart, id)
	var i Cart
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
