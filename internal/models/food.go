package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Food is a catalog entry. Templates have an empty OwnerID and are copied
// into each new user's catalog at registration.
type Food struct {
	ID       string
	OwnerID  string
	Name     string
	Category string

	// CaloriesPerUnit is the energy of one Unit of this food.
	CaloriesPerUnit float64

	// Unit is the display label for quantities (e.g. "kg", "piece").
	Unit string

	// ReferencePrice is the last known unit price; nil when never set.
	ReferencePrice *decimal.Decimal

	// ShelfLifeDays is how long a batch keeps after acquisition.
	ShelfLifeDays int

	CreatedAt int64
}

// IsTemplate reports whether the food is a shared template.
func (f *Food) IsTemplate() bool {
	return f.OwnerID == ""
}

// ExpiresOn derives the expiration day of a batch acquired on acquired.
func (f *Food) ExpiresOn(acquired time.Time) time.Time {
	return Day(acquired).AddDate(0, 0, f.ShelfLifeDays)
}

// FoodUsage reports where a food is still referenced.
type FoodUsage struct {
	// Dishes are names of the user's dishes using the food as an ingredient.
	Dishes []string

	// PlanDays are the distinct weekdays of uneaten plan entries for the food.
	PlanDays []time.Weekday
}
