package models

import "time"

// ConsumptionLogEntry records one actual consumption event. Rows are
// written once by the mark-eaten transaction and never updated or
// deleted. Name and Calories are snapshots, so later catalog edits do not
// rewrite history.
type ConsumptionLogEntry struct {
	ID       string
	UserID   string
	FoodID   string
	Name     string
	Quantity float64

	// Calories is Quantity × the food's calories per unit at consumption time.
	Calories float64

	ConsumedOn time.Time
	CreatedAt  int64
}
