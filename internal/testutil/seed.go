package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/Alturino/shopping/internal/repository"
)

func SeedUser(t *testing.T, queries *repository.Queries) repository.User {
	t.Helper()
	id := uuid.Must(uuid.NewV7())
	user, err := queries.InsertUser(context.Background(), repository.InsertUserParams{
		ID:             id,
		Email:          fmt.Sprintf("user-%s@shop.test", id),
		HashedPassword: "not-a-real-hash",
		FullName:       pgtype.Text{String: "Test User", Valid: true},
	})
	if err != nil {
		t.Fatalf("failed seeding user with error: %s", err)
	}
	return user
}

func SeedProduct(t *testing.T, queries *repository.Queries, name string, price string) repository.Product {
	t.Helper()
	product, err := queries.InsertProduct(context.Background(), repository.InsertProductParams{
		ID:       uuid.Must(uuid.NewV7()),
		Name:     name,
		Price:    repository.NumericFromDecimal(decimal.RequireFromString(price)),
		Currency: "USD",
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("failed seeding product with error: %s", err)
	}
	return product
}
