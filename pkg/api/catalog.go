package api

import "github.com/shopspring/decimal"

type Food struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Category        string           `json:"category,omitempty"`
	CaloriesPerUnit float64          `json:"caloriesPerUnit"`
	Unit            string           `json:"unit"`
	ReferencePrice  *decimal.Decimal `json:"referencePrice,omitempty"`
	ShelfLifeDays   int              `json:"shelfLifeDays"`
}

// FoodFields are the editable fields shared by create and update.
type FoodFields struct {
	Name            string           `json:"name"`
	Category        string           `json:"category,omitempty"`
	CaloriesPerUnit float64          `json:"caloriesPerUnit"`
	Unit            string           `json:"unit"`
	ReferencePrice  *decimal.Decimal `json:"referencePrice,omitempty"`
	ShelfLifeDays   int              `json:"shelfLifeDays"`
}

type ListFoodsRequest struct{}

type ListFoodsResponse struct {
	Foods []*Food `json:"foods"`
}

type CreateFoodRequest struct {
	Food FoodFields `json:"food"`
}

type CreateFoodResponse struct {
	Food *Food `json:"food"`
}

type UpdateFoodRequest struct {
	FoodID string     `json:"foodId"`
	Food   FoodFields `json:"food"`
}

type UpdateFoodResponse struct {
	Food *Food `json:"food"`
}

type DeleteFoodRequest struct {
	FoodID string `json:"foodId"`
}

type DeleteFoodResponse struct{}

type CheckFoodUsageRequest struct {
	FoodID string `json:"foodId"`
}

type CheckFoodUsageResponse struct {
	InUse    bool     `json:"inUse"`
	Dishes   []string `json:"dishes"`
	PlanDays []string `json:"planDays"`
}

type Ingredient struct {
	FoodID   string  `json:"foodId"`
	FoodName string  `json:"foodName,omitempty"`
	Quantity float64 `json:"quantity"`
}

type Dish struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Shared      bool          `json:"shared"`
	Ingredients []*Ingredient `json:"ingredients"`
}

type ListDishesRequest struct{}

type ListDishesResponse struct {
	Dishes []*Dish `json:"dishes"`
}

type CreateDishRequest struct {
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Ingredients []*Ingredient `json:"ingredients"`
}

type CreateDishResponse struct {
	Dish *Dish `json:"dish"`
}

type DishMatch struct {
	DishID      string  `json:"dishId"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Owned       int     `json:"owned"`
	Total       int     `json:"total"`
	Ratio       float64 `json:"ratio"`
}

type SuggestDishesRequest struct{}

type SuggestDishesResponse struct {
	Matches []*DishMatch `json:"matches"`
}
