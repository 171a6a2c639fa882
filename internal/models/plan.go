package models

import "time"

// MealPlanEntry is one planned (food, quantity) on a weekday.
//
// Eaten moves false -> true exactly once through the mark-eaten
// transaction; the reverse edge only clears the flag.
type MealPlanEntry struct {
	ID        string
	UserID    string
	FoodID    string
	Quantity  float64
	Weekday   time.Weekday
	Eaten     bool
	CreatedAt int64
}

// PlanEntryView joins a plan entry with the food it refers to.
type PlanEntryView struct {
	MealPlanEntry

	FoodName        string
	Unit            string
	CaloriesPerUnit float64
}
