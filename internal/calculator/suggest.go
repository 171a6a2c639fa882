package calculator

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Demand is the uneaten planned quantity of one food.
type Demand struct {
	FoodID         string
	Name           string
	Planned        float64
	ReferencePrice decimal.Decimal
}

// Suggestion is a quantity still to buy.
type Suggestion struct {
	FoodID         string
	Name           string
	Needed         float64
	ReferencePrice decimal.Decimal
}

// SuggestPurchases computes needed = planned - onHand - inCart for every
// food with positive planned demand and keeps the positive results.
//
// onHand and inCart are keyed by food name, not ID: cart lines snapshot the
// name when they are added, so name is the only key all three sources
// share. Renaming a food detaches it from existing cart lines.
func SuggestPurchases(demand []Demand, onHand, inCart map[string]float64) []Suggestion {
	var out []Suggestion
	for _, d := range demand {
		if d.Planned <= 0 {
			continue
		}
		needed := d.Planned - onHand[d.Name] - inCart[d.Name]
		if needed <= Epsilon {
			continue
		}
		out = append(out, Suggestion{
			FoodID:         d.FoodID,
			Name:           d.Name,
			Needed:         needed,
			ReferencePrice: d.ReferencePrice,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
