// Package reconcile implements the reconciliation engine: every operation
// that moves food between the shopping cart, the inventory batches, the
// meal plan and the consumption ledger runs here as one unit of work.
package reconcile

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/pantryledger/pantry/internal/metrics"
	"github.com/pantryledger/pantry/internal/models"
	"github.com/pantryledger/pantry/internal/storage"
)

// Engine coordinates the stores. It is safe for concurrent use.
type Engine struct {
	store   storage.Store
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time
	locks   userLocks
}

// Option configures an Engine.
type Option func(*Engine)

// WithMetrics records domain counters on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithLogger replaces the default slog logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithClock sets the source of "today" for statistics windows.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an engine over store.
func New(store storage.Store, opts ...Option) *Engine {
	e := &Engine{
		store:  store,
		logger: slog.Default(),
		now:    time.Now,
		locks:  userLocks{held: make(map[string]*userLock)},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// write runs fn as one transaction while holding the acting user's lock.
// Different users never wait on each other here; the store's write lock
// still orders their commits.
func (e *Engine) write(ctx context.Context, userID string, fn func(tx storage.Tx) error) error {
	unlock := e.locks.lock(userID)
	defer unlock()
	return classify(e.store.WithTx(ctx, fn))
}

func (e *Engine) read(ctx context.Context, fn func(tx storage.Tx) error) error {
	return classify(e.store.Read(ctx, fn))
}

// Today is the current calendar day by the engine's clock.
func (e *Engine) Today() time.Time {
	return models.Day(e.now())
}

// userLocks hands out one mutex per user, dropping it once nobody holds
// or waits on it.
type userLocks struct {
	mu   sync.Mutex
	held map[string]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

func (l *userLocks) lock(userID string) func() {
	l.mu.Lock()
	ul, ok := l.held[userID]
	if !ok {
		ul = &userLock{}
		l.held[userID] = ul
	}
	ul.refs++
	l.mu.Unlock()

	ul.mu.Lock()
	return func() {
		ul.mu.Unlock()
		l.mu.Lock()
		ul.refs--
		if ul.refs == 0 {
			delete(l.held, userID)
		}
		l.mu.Unlock()
	}
}

func requireUser(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return invalid("acting user is required")
	}
	return nil
}

func requireID(entity, id string) error {
	if strings.TrimSpace(id) == "" {
		return invalid("%s id is required", entity)
	}
	return nil
}

func requirePositive(field string, v float64) error {
	if !(v > 0) {
		return invalid("%s must be positive, got %g", field, v)
	}
	return nil
}

func requireDay(field string, t time.Time) (time.Time, error) {
	if t.IsZero() {
		return time.Time{}, invalid("%s is required", field)
	}
	return models.Day(t), nil
}

// The owned* helpers load a row and check it belongs to userID. A missing
// row is NotFound, somebody else's row is Forbidden.

func ownedFood(ctx context.Context, tx storage.FoodStore, userID, id string) (*models.Food, error) {
	food, err := tx.GetFood(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, notFound("food", id)
	}
	if err != nil {
		return nil, err
	}
	if food.OwnerID != userID {
		return nil, forbidden("food", id)
	}
	return food, nil
}

func ownedBatch(ctx context.Context, tx storage.BatchStore, userID, id string) (*models.InventoryBatch, error) {
	batch, err := tx.GetBatch(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, notFound("batch", id)
	}
	if err != nil {
		return nil, err
	}
	if batch.UserID != userID {
		return nil, forbidden("batch", id)
	}
	return batch, nil
}

func ownedPlanEntry(ctx context.Context, tx storage.PlanStore, userID, id string) (*models.MealPlanEntry, error) {
	entry, err := tx.GetPlanEntry(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, notFound("plan entry", id)
	}
	if err != nil {
		return nil, err
	}
	if entry.UserID != userID {
		return nil, forbidden("plan entry", id)
	}
	return entry, nil
}

func ownedCartLine(ctx context.Context, tx storage.CartStore, userID, id string) (*models.ShoppingCartLine, error) {
	line, err := tx.GetCartLine(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, notFound("cart line", id)
	}
	if err != nil {
		return nil, err
	}
	if line.UserID != userID {
		return nil, forbidden("cart line", id)
	}
	return line, nil
}

// visibleDish allows the user's own dishes and the shared templates.
func visibleDish(ctx context.Context, tx storage.DishStore, userID, id string) (*models.Dish, error) {
	dish, err := tx.GetDish(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, notFound("dish", id)
	}
	if err != nil {
		return nil, err
	}
	if dish.OwnerID != "" && dish.OwnerID != userID {
		return nil, forbidden("dish", id)
	}
	return dish, nil
}
