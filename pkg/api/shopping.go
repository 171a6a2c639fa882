package api

import "github.com/shopspring/decimal"

type CartLine struct {
	ID          string          `json:"id"`
	FoodID      string          `json:"foodId"`
	Name        string          `json:"name"`
	Quantity    float64         `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	Purchased   bool            `json:"purchased"`
	PurchasedOn string          `json:"purchasedOn,omitempty"`
}

type ListCartRequest struct{}

type ListCartResponse struct {
	Lines []*CartLine `json:"lines"`
}

type AddCartLineRequest struct {
	FoodID    string          `json:"foodId"`
	Quantity  float64         `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type AddCartLineResponse struct {
	Line *CartLine `json:"line"`
}

type UpdateCartLineRequest struct {
	LineID    string          `json:"lineId"`
	Quantity  float64         `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type UpdateCartLineResponse struct {
	Line *CartLine `json:"line"`
}

type DeleteCartLineRequest struct {
	LineID string `json:"lineId"`
}

type DeleteCartLineResponse struct{}

type MarkPurchasedRequest struct {
	LineID string `json:"lineId"`
	// Date is the purchase day; empty means today.
	Date string `json:"date,omitempty"`
}

type MarkPurchasedResponse struct {
	Line   *CartLine `json:"line"`
	Batch  *Batch    `json:"batch"`
	Merged bool      `json:"merged"`
}

type Suggestion struct {
	FoodID         string          `json:"foodId"`
	Name           string          `json:"name"`
	Needed         float64         `json:"needed"`
	ReferencePrice decimal.Decimal `json:"referencePrice"`
}

type SuggestPurchasesRequest struct{}

type SuggestPurchasesResponse struct {
	Suggestions []*Suggestion `json:"suggestions"`
}
