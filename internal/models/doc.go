// Package models defines the core domain models for the pantry ledger.
//
// # Stock
//
//   - Food: catalog entry owned by a user, or an ownerless template copied
//     into every new account
//   - InventoryBatch: a dated quantity of one food held by one user
//
// # Planning and consumption
//
//   - MealPlanEntry: a planned (food, quantity, weekday) with an eaten flag
//   - ConsumptionLogEntry: append-only record of something actually eaten
//
// # Shopping
//
//   - ShoppingCartLine: pending or completed purchase
//
// # Relationships
//
// Relationships are ID strings, never pointers. Every row carries the
// owning user's ID; the only ownerless rows are catalog templates
// (foods and dishes with an empty OwnerID).
//
// Calendar days (acquisition, consumption, purchase) are time.Time values
// at UTC midnight. Use ParseDate and FormatDate at the edges.
package models
