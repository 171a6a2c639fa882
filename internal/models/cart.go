package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShoppingCartLine is a pending (Purchased=false) or completed purchase.
// Name is snapshotted when the line is added.
type ShoppingCartLine struct {
	ID         string
	UserID     string
	FoodID     string
	Name       string
	Quantity   float64
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
	Purchased  bool

	// PurchasedOn is set when the line is marked purchased.
	PurchasedOn *time.Time

	CreatedAt int64
}

// LineTotal computes quantity × unit price.
func LineTotal(quantity float64, unitPrice decimal.Decimal) decimal.Decimal {
	return decimal.NewFromFloat(quantity).Mul(unitPrice)
}
