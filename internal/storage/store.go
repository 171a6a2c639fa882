// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pantryledger/pantry/internal/models"
)

// ErrNotFound is wrapped by every lookup that finds no row.
var ErrNotFound = errors.New("not found")

// Store defines the interface for pantry storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the engine or service layer.
type Store interface {
	// WithTx runs fn inside a single write transaction. If fn returns an
	// error every write made through tx is rolled back.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Read runs fn inside one read-only transaction. Every query made
	// through tx sees the same committed snapshot.
	Read(ctx context.Context, fn func(tx Tx) error) error

	// CreateUser persists a new account.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail returns nil, nil when no account uses email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID returns nil, nil when the account does not exist.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Close releases any resources held by the store.
	Close() error
}

// Tx is the set of row operations available inside a unit of work.
type Tx interface {
	FoodStore
	BatchStore
	PlanStore
	LedgerStore
	CartStore
	DishStore
}

// FoodStore holds the food catalog.
type FoodStore interface {
	GetFood(ctx context.Context, id string) (*models.Food, error)
	ListFoods(ctx context.Context, ownerID string) ([]*models.Food, error)
	// FindFoodByName returns nil, nil when the owner has no food called name.
	FindFoodByName(ctx context.Context, ownerID, name string) (*models.Food, error)
	InsertFood(ctx context.Context, food *models.Food) error
	UpdateFood(ctx context.Context, food *models.Food) error
	DeleteFood(ctx context.Context, id string) error
	SetFoodPrice(ctx context.Context, id string, price decimal.Decimal) error
	// CopyTemplateFoods copies every ownerless food into userID's catalog.
	CopyTemplateFoods(ctx context.Context, userID string) (int, error)
	FoodUsage(ctx context.Context, userID, foodID string) (*models.FoodUsage, error)
}

// BatchStore holds dated inventory batches.
type BatchStore interface {
	// FindBatch returns nil, nil when there is no batch for (user, food, day).
	// Zero-quantity batches are returned.
	FindBatch(ctx context.Context, userID, foodID string, day time.Time) (*models.InventoryBatch, error)
	GetBatch(ctx context.Context, id string) (*models.InventoryBatch, error)
	InsertBatch(ctx context.Context, batch *models.InventoryBatch) error
	AddToBatch(ctx context.Context, id string, quantity float64) error
	// DecrementBatch subtracts amount; it fails if the batch holds less.
	DecrementBatch(ctx context.Context, id string, amount float64) error
	// EmptyBatch sets a batch to exactly zero.
	EmptyBatch(ctx context.Context, id string) error
	DeleteBatch(ctx context.Context, id string) error
	// ListActiveBatches returns quantity > 0 batches, newest first.
	ListActiveBatches(ctx context.Context, userID string) ([]*models.BatchView, error)
	// ActiveBatchesFIFO returns quantity > 0 batches of one food, oldest
	// acquisition day first, insertion order breaking ties.
	ActiveBatchesFIFO(ctx context.Context, userID, foodID string) ([]*models.InventoryBatch, error)
	// OnHandByName sums active quantity per current food name.
	OnHandByName(ctx context.Context, userID string) (map[string]float64, error)
	// StockedFoods returns the IDs and names of foods with active stock.
	StockedFoods(ctx context.Context, userID string) (ids map[string]bool, names map[string]bool, err error)
}

// PlannedDemand is the uneaten planned quantity of one food.
type PlannedDemand struct {
	FoodID         string
	Name           string
	Quantity       float64
	ReferencePrice *decimal.Decimal
}

// PlanStore holds meal plan entries.
type PlanStore interface {
	InsertPlanEntry(ctx context.Context, entry *models.MealPlanEntry) error
	GetPlanEntry(ctx context.Context, id string) (*models.MealPlanEntry, error)
	SetPlanEaten(ctx context.Context, id string, eaten bool) error
	DeletePlanEntry(ctx context.Context, id string) error
	// ListPlan orders entries Monday..Sunday, then by insertion.
	ListPlan(ctx context.Context, userID string) ([]*models.PlanEntryView, error)
	PlannedDemand(ctx context.Context, userID string) ([]PlannedDemand, error)
}

// LedgerStore is the append-only consumption log. There is deliberately
// no update or delete.
type LedgerStore interface {
	AppendConsumption(ctx context.Context, entry *models.ConsumptionLogEntry) error
	// ListConsumption returns entries consumed on or after since, oldest first.
	ListConsumption(ctx context.Context, userID string, since time.Time) ([]*models.ConsumptionLogEntry, error)
}

// CartStore holds shopping cart lines.
type CartStore interface {
	InsertCartLine(ctx context.Context, line *models.ShoppingCartLine) error
	GetCartLine(ctx context.Context, id string) (*models.ShoppingCartLine, error)
	UpdateCartLine(ctx context.Context, line *models.ShoppingCartLine) error
	DeleteCartLine(ctx context.Context, id string) error
	MarkCartLinePurchased(ctx context.Context, id string, day time.Time) error
	// ListPendingCart returns unpurchased lines, newest first.
	ListPendingCart(ctx context.Context, userID string) ([]*models.ShoppingCartLine, error)
	// PendingCartByName sums unpurchased quantity per snapshot name.
	PendingCartByName(ctx context.Context, userID string) (map[string]float64, error)
	// ListPurchasedSince returns lines purchased on or after since.
	ListPurchasedSince(ctx context.Context, userID string, since time.Time) ([]*models.ShoppingCartLine, error)
}

// DishStore holds dishes and their ingredients.
type DishStore interface {
	InsertDish(ctx context.Context, dish *models.Dish) error
	GetDish(ctx context.Context, id string) (*models.Dish, error)
	// ListVisibleDishes returns the user's dishes and the templates, in
	// insertion order, ingredients included.
	ListVisibleDishes(ctx context.Context, userID string) ([]*models.Dish, error)
}
