package service

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Alturino/shopping/internal/money"
	"github.com/Alturino/shopping/internal/repository"
)

// priceOrderItems copies every cart line into an order line at its snapshot unit price.
// Each line total is rounded on its own and the order total is their rounded sum.
func priceOrderItems(
	orderID uuid.UUID,
	rows []repository.FindCartItemsByCartIdRow,
) ([]repository.InsertOrderItemsParams, decimal.Decimal) {
	items := make([]repository.InsertOrderItemsParams, 0, len(rows))
	lineTotals := make([]decimal.Decimal, 0, len(rows))
	for _, row := range rows {
		unitPrice := repository.DecimalFromNumeric(row.CartItem.UnitPrice)
		lineTotal := money.LineTotal(row.CartItem.Quantity, unitPrice)
		items = append(items, repository.InsertOrderItemsParams{
			ID:        uuid.Must(uuid.NewV7()),
			OrderID:   orderID,
			ProductID: row.CartItem.ProductID,
			Quantity:  row.CartItem.Quantity,
			UnitPrice: row.CartItem.UnitPrice,
			LineTotal: repository.NumericFromDecimal(lineTotal),
		})
		lineTotals = append(lineTotals, lineTotal)
	}
	return items, money.Sum(lineTotals...)
}

// orderCurrency is the currency of the first line. Mixed currencies are not checked,
// the catalog is expected to hold a single currency.
func orderCurrency(rows []repository.FindCartItemsByCartIdRow) string {
	if len(rows) == 0 {
		return ""
	}
	return rows[0].Product.Currency
}
