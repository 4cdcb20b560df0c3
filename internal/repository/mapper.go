package repository

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	cartResponse "github.com/Alturino/shopping/cart/pkg/response"
	"github.com/Alturino/shopping/internal/money"
	orderResponse "github.com/Alturino/shopping/order/pkg/response"
	productResponse "github.com/Alturino/shopping/product/pkg/response"
	userResponse "github.com/Alturino/shopping/user/pkg/response"
)

func textPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}

func (u User) Response() userResponse.User {
	return userResponse.User{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  textPtr(u.FullName),
		CreatedAt: u.CreatedAt.Time,
	}
}

func (p Product) Response() productResponse.Product {
	return productResponse.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: textPtr(p.Description),
		Price:       money.NewAmount(DecimalFromNumeric(p.Price)),
		Currency:    p.Currency,
		ImageUrl:    textPtr(p.ImageUrl),
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt.Time,
		UpdatedAt:   p.UpdatedAt.Time,
	}
}

// CartResponse assembles the cart with its items and the subtotal of their snapshot
// prices.
func CartResponse(cart Cart, rows []FindCartItemsByCartIdRow) cartResponse.Cart {
	items := make([]cartResponse.CartItem, 0, len(rows))
	lineTotals := make([]decimal.Decimal, 0, len(rows))
	for _, row := range rows {
		unitPrice := DecimalFromNumeric(row.CartItem.UnitPrice)
		items = append(items, cartResponse.CartItem{
			ID:        row.CartItem.ID,
			CartID:    row.CartItem.CartID,
			Product:   row.Product.Response(),
			Quantity:  row.CartItem.Quantity,
			UnitPrice: money.NewAmount(unitPrice),
		})
		lineTotals = append(lineTotals, money.LineTotal(row.CartItem.Quantity, unitPrice))
	}
	return cartResponse.Cart{
		ID:        cart.ID,
		UserID:    cart.UserID,
		Status:    cart.Status,
		Items:     items,
		Subtotal:  money.NewAmount(money.Sum(lineTotals...)),
		CreatedAt: cart.CreatedAt.Time,
		UpdatedAt: cart.UpdatedAt.Time,
	}
}

func (r FindOrderItemsByOrderIdsRow) Response() orderResponse.OrderItem {
	return orderResponse.OrderItem{
		ID:        r.OrderItem.ID,
		OrderID:   r.OrderItem.OrderID,
		Product:   r.Product.Response(),
		Quantity:  r.OrderItem.Quantity,
		UnitPrice: money.NewAmount(DecimalFromNumeric(r.OrderItem.UnitPrice)),
		LineTotal: money.NewAmount(DecimalFromNumeric(r.OrderItem.LineTotal)),
	}
}

func OrderResponse(order Order, rows []FindOrderItemsByOrderIdsRow) orderResponse.Order {
	items := make([]orderResponse.OrderItem, 0, len(rows))
	for _, row := range rows {
		if row.OrderItem.OrderID == order.ID {
			items = append(items, row.Response())
		}
	}
	return orderResponse.Order{
		ID:          order.ID,
		UserID:      order.UserID,
		Status:      order.Status,
		TotalAmount: money.NewAmount(DecimalFromNumeric(order.TotalAmount)),
		Currency:    order.Currency,
		Items:       items,
		CreatedAt:   order.CreatedAt.Time,
		UpdatedAt:   order.UpdatedAt.Time,
	}
}

// OrdersResponse keeps the order of orders and groups rows under their order.
func OrdersResponse(orders []Order, rows []FindOrderItemsByOrderIdsRow) []orderResponse.Order {
	byOrder := make(map[uuid.UUID][]FindOrderItemsByOrderIdsRow, len(orders))
	for _, row := range rows {
		byOrder[row.OrderItem.OrderID] = append(byOrder[row.OrderItem.OrderID], row)
	}
	result := make([]orderResponse.Order, 0, len(orders))
	for _, order := range orders {
		result = append(result, OrderResponse(order, byOrder[order.ID]))
	}
	return result
}
