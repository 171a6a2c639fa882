package calculator

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestSuggestPurchases(t *testing.T) {
	price := decimal.RequireFromString("1.25")

	tests := []struct {
		name   string
		demand []Demand
		onHand map[string]float64
		inCart map[string]float64
		want   map[string]float64
	}{
		{
			name:   "nothing on hand needs the whole plan",
			demand: []Demand{{FoodID: "rice", Name: "Rice", Planned: 2}},
			want:   map[string]float64{"Rice": 2},
		},
		{
			name:   "stock and cart both count against demand",
			demand: []Demand{{FoodID: "eggs", Name: "Eggs", Planned: 12}},
			onHand: map[string]float64{"Eggs": 4},
			inCart: map[string]float64{"Eggs": 6},
			want:   map[string]float64{"Eggs": 2},
		},
		{
			name: "covered foods are omitted",
			demand: []Demand{
				{FoodID: "eggs", Name: "Eggs", Planned: 6},
				{FoodID: "milk", Name: "Milk", Planned: 1},
			},
			onHand: map[string]float64{"Eggs": 6},
			inCart: map[string]float64{"Milk": 2},
			want:   map[string]float64{},
		},
		{
			name:   "matching is by name",
			demand: []Demand{{FoodID: "new-id", Name: "Bread", Planned: 3}},
			inCart: map[string]float64{"Loaf": 3},
			want:   map[string]float64{"Bread": 3},
		},
		{
			name:   "zero planned demand is ignored",
			demand: []Demand{{FoodID: "x", Name: "X", Planned: 0}},
			want:   map[string]float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := range tt.demand {
				tt.demand[i].ReferencePrice = price
			}
			got := SuggestPurchases(tt.demand, tt.onHand, tt.inCart)
			if len(got) != len(tt.want) {
				t.Fatalf("SuggestPurchases() = %+v, want %v", got, tt.want)
			}
			for _, s := range got {
				want, ok := tt.want[s.Name]
				if !ok {
					t.Errorf("unexpected suggestion for %s", s.Name)
					continue
				}
				if math.Abs(s.Needed-want) > Epsilon {
					t.Errorf("%s needed = %v, want %v", s.Name, s.Needed, want)
				}
				if !s.ReferencePrice.Equal(price) {
					t.Errorf("%s price = %s, want %s", s.Name, s.ReferencePrice, price)
				}
			}
		})
	}
}

func TestSuggestPurchases_SortedByName(t *testing.T) {
	got := SuggestPurchases([]Demand{
		{Name: "Tomato", Planned: 1},
		{Name: "Apple", Planned: 1},
		{Name: "Milk", Planned: 1},
	}, nil, nil)

	want := []string{"Apple", "Milk", "Tomato"}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("position %d = %s, want %s", i, got[i].Name, name)
		}
	}
}
