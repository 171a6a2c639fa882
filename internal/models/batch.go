package models

import "time"

// InventoryBatch is a quantity of one food acquired by one user on one day.
// Same-day additions for the same food merge into a single batch. A batch
// at quantity zero is logically empty and is skipped by listings and
// depletion, but the row may remain.
type InventoryBatch struct {
	ID         string
	UserID     string
	FoodID     string
	Quantity   float64
	AcquiredOn time.Time
	CreatedAt  int64
}

// BatchView is an active batch joined with its catalog entry for display.
type BatchView struct {
	InventoryBatch

	FoodName        string
	Unit            string
	CaloriesPerUnit float64
	ShelfLifeDays   int

	// ExpiresOn is AcquiredOn + ShelfLifeDays; derived, never stored.
	ExpiresOn time.Time
}
