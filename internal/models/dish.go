package models

// Dish is a named set of ingredients. Templates have an empty OwnerID and
// are visible to every user.
type Dish struct {
	ID          string
	OwnerID     string
	Name        string
	Description string
	Ingredients []Ingredient
	CreatedAt   int64
}

// Ingredient is one (food, quantity) line of a dish.
type Ingredient struct {
	FoodID   string
	FoodName string
	Quantity float64

	// FromTemplate is set when the ingredient refers to a template food
	// rather than one of the user's own catalog entries.
	FromTemplate bool
}
