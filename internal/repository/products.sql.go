package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const productColumns = `id, name, description, price, currency, image_url, is_active, created_at, updated_at`

func scanProduct(row interface{ Scan(...interface{}) error }, p *Product) error {
	return row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Currency,
		&p.ImageUrl,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
}

const findActiveProducts = `
SELECT ` + productColumns + `
FROM products
WHERE is_active
ORDER BY created_at, id
`

func (q *Queries) FindActiveProducts(ctx context.Context) ([]Product, error) {
	rows, err := q.db.Query(ctx, findActiveProducts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Product{}
	for rows.Next() {
		var i Product
		if err := scanProduct(rows, &i); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const findActiveProductById = `
SELECT ` + productColumns + `
FROM products
WHERE id = $1 AND is_active
`

func (q *Queries) FindActiveProductById(ctx context.Context, id uuid.UUID) (Product, error) {
	row := q.db.QueryRow(ctx, findActiveProductById, id)
	var i Product
	err := scanProduct(row, &i)
	return i, err
}

const findActiveProductByIdForShare = `
SELECT ` + productColumns + `
FROM products
WHERE id = $1 AND is_active
FOR SHARE
`

// FindActiveProductByIdForShare locks the product row against concurrent price updates
// until the surrounding transaction ends.
func (q *Queries) FindActiveProductByIdForShare(ctx context.Context, id uuid.UUID) (Product, error) {
	row := q.db.QueryRow(ctx, findActiveProductByIdForShare, id)
	var i Product
	err := scanProduct(row, &i)
	return i, err
}

const insertProduct = `
INSERT INTO products (id, name, description, price, currency, image_url, is_active)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + productColumns

type InsertProductParams struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Description pgtype.Text    `json:"description"`
	Price       pgtype.Numeric `json:"price"`
	Currency    string         `json:"currency"`
	ImageUrl    pgtype.Text    `json:"image_url"`
	IsActive    bool           `json:"is_active"`
}

func (q *Queries) InsertProduct(ctx context.Context, arg InsertProductParams) (Product, error) {
	row := q.db.QueryRow(ctx, insertProduct,
		arg.ID,
		arg.Name,
		arg.Description,
		arg.Price,
		arg.Currency,
		arg.ImageUrl,
		arg.IsActive,
	)
	var i Product
	err := scanProduct(row, &i)
	return i, err
}

const updateProductPrice = `
UPDATE products
SET price = $2, updated_at = now()
WHERE id = $1
RETURNING ` + productColumns

type UpdateProductPriceParams struct {
	ID    uuid.UUID      `json:"id"`
	Price pgtype.Numeric `json:"price"`
}

func (q *Queries) UpdateProductPrice(ctx context.Context, arg UpdateProductPriceParams) (Product, error) {
	row := q.db.QueryRow(ctx, updateProductPrice, arg.ID, arg.Price)
	var i Product
	err := scanProduct(row, &i)
	return i, err
}

const updateProductActive = `
UPDATE products
SET is_active = $2, updated_at = now()
WHERE id = $1
RETURNING ` + productColumns

type UpdateProductActiveParams struct {
	ID       uuid.UUID `json:"id"`
	IsActive bool      `json:"is_active"`
}

func (q *Queries) UpdateProductActive(ctx context.Context, arg UpdateProductActiveParams) (Product, error) {
	row := q.db.QueryRow(ctx, updateProductActive, arg.ID, arg.IsActive)
	var i Product
	err := scanProduct(row, &i)
	return i, err
}
