package calculator

import "sort"

// IngredientRef identifies one ingredient of a dish.
type IngredientRef struct {
	FoodID string
	Name   string
	// FromTemplate marks ingredients that point at the shared template
	// catalog rather than the user's own foods.
	FromTemplate bool
}

// Dish is the minimal view of a dish needed for matching.
type Dish struct {
	ID          string
	Name        string
	Description string
	Ingredients []IngredientRef
}

// DishMatch is the fraction of a dish's ingredients the user has in stock.
type DishMatch struct {
	DishID      string
	Name        string
	Description string
	Owned       int
	Total       int
	Ratio       float64
}

// MatchDishes ranks dishes by the share of their ingredients in stock.
//
// An ingredient is owned when the user has a positive batch of that food.
// Template ingredients cannot be held directly (users stock their own
// copies), so they are matched through the copied food's name.
//
// Dishes with no owned ingredient are left out. Ties keep input order.
func MatchDishes(dishes []Dish, stockedIDs, stockedNames map[string]bool) []DishMatch {
	var out []DishMatch
	for _, dish := range dishes {
		if len(dish.Ingredients) == 0 {
			continue
		}

		owned := 0
		for _, ing := range dish.Ingredients {
			if stockedIDs[ing.FoodID] || (ing.FromTemplate && stockedNames[ing.Name]) {
				owned++
			}
		}
		if owned == 0 {
			continue
		}

		out = append(out, DishMatch{
			DishID:      dish.ID,
			Name:        dish.Name,
			Description: dish.Description,
			Owned:       owned,
			Total:       len(dish.Ingredients),
			Ratio:       float64(owned) / float64(len(dish.Ingredients)),
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Ratio > out[j].Ratio })
	return out
}
