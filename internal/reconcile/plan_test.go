package reconcile

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantryledger/pantry/internal/models"
	"github.com/pantryledger/pantry/internal/storage"
)

// failingStore wraps a store so that one batch operation fails inside the
// transaction.
type failingStore struct {
	storage.Store
}

func (s failingStore) WithTx(ctx context.Context, fn func(tx storage.Tx) error) error {
	return s.Store.WithTx(ctx, func(tx storage.Tx) error {
		return fn(failingTx{tx})
	})
}

type failingTx struct {
	storage.Tx
}

var errInjected = errors.New("injected failure")

func (failingTx) DecrementBatch(context.Context, string, float64) error {
	return errInjected
}

func (failingTx) EmptyBatch(context.Context, string) error {
	return errInjected
}

func (failingTx) InsertBatch(context.Context, *models.InventoryBatch) error {
	return errInjected
}

func TestMarkEaten_DepletesOldestBatchFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	eggs := f.food(t, f.alice, "Eggs")

	_, err := f.engine.AddToInventory(ctx, f.alice, eggs, 5, date(t, "2024-01-01"))
	require.NoError(t, err)
	_, err = f.engine.AddToInventory(ctx, f.alice, eggs, 3, date(t, "2024-01-05"))
	require.NoError(t, err)

	entry, err := f.engine.AddPlanEntry(ctx, f.alice, eggs, 6, time.Tuesday)
	require.NoError(t, err)

	res, err := f.engine.MarkEaten(ctx, f.alice, entry.ID, true, date(t, "2024-01-06"))
	require.NoError(t, err)
	assert.False(t, res.InsufficientStock())
	require.Len(t, res.Depletion.Draws, 2)
	assert.True(t, res.Depletion.Draws[0].Emptied)

	assert.Equal(t, map[string]float64{"2024-01-05": 2}, stockOf(t, f, f.alice, eggs))
}

func TestMarkEaten_RiceWithNoStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rice := f.food(t, f.alice, "Rice")

	entry, err := f.engine.AddPlanEntry(ctx, f.alice, rice, 2, time.Monday)
	require.NoError(t, err)

	suggestions, err := f.engine.SuggestPurchases(ctx, f.alice)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Rice", suggestions[0].Name)
	assert.InDelta(t, 2, suggestions[0].Needed, 1e-9)

	res, err := f.engine.MarkEaten(ctx, f.alice, entry.ID, true, date(t, "2024-01-10"))
	require.NoError(t, err)
	assert.True(t, res.InsufficientStock())
	assert.InDelta(t, 2, res.Depletion.Shortfall, 1e-9)
	assert.True(t, res.Entry.Eaten)

	ledger := f.ledger(t, f.alice)
	require.Len(t, ledger, 1)
	assert.Equal(t, "Rice", ledger[0].Name)
	assert.InDelta(t, 2, ledger[0].Quantity, 1e-9)
	assert.InDelta(t, 2600, ledger[0].Calories, 1e-9)
	assert.Equal(t, "2024-01-10", models.FormatDate(ledger[0].ConsumedOn))

	// Eaten entries no longer count as demand.
	suggestions, err = f.engine.SuggestPurchases(ctx, f.alice)
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestMarkEaten_FractionalBatchesEmptyCompletely(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rice := f.food(t, f.alice, "Rice")

	_, err := f.engine.AddToInventory(ctx, f.alice, rice, 0.1, date(t, "2024-01-01"))
	require.NoError(t, err)
	_, err = f.engine.AddToInventory(ctx, f.alice, rice, 0.2, date(t, "2024-01-02"))
	require.NoError(t, err)

	entry, err := f.engine.AddPlanEntry(ctx, f.alice, rice, 0.3, time.Wednesday)
	require.NoError(t, err)

	res, err := f.engine.MarkEaten(ctx, f.alice, entry.ID, true, date(t, "2024-01-03"))
	require.NoError(t, err)
	assert.False(t, res.InsufficientStock())

	assert.Empty(t, stockOf(t, f, f.alice, rice), "no sliver of rice may stay listed")

	matches, err := f.engine.SuggestDishes(ctx, f.alice)
	require.NoError(t, err)
	for _, m := range matches {
		assert.NotEqual(t, "Chicken rice", m.Name, "emptied rice must not count as owned")
	}

	suggestions, err := f.engine.SuggestPurchases(ctx, f.alice)
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestMarkEaten_AgainIsConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	eggs := f.food(t, f.alice, "Eggs")

	_, err := f.engine.AddToInventory(ctx, f.alice, eggs, 10, date(t, "2024-01-01"))
	require.NoError(t, err)
	entry, err := f.engine.AddPlanEntry(ctx, f.alice, eggs, 2, time.Friday)
	require.NoError(t, err)

	_, err = f.engine.MarkEaten(ctx, f.alice, entry.ID, true, date(t, "2024-01-02"))
	require.NoError(t, err)

	_, err = f.engine.MarkEaten(ctx, f.alice, entry.ID, true, date(t, "2024-01-02"))
	assert.ErrorIs(t, err, ErrConflict)

	assert.Len(t, f.ledger(t, f.alice), 1)
	assert.Equal(t, map[string]float64{"2024-01-01": 8}, stockOf(t, f, f.alice, eggs))
}

func TestMarkEaten_UndoOnlyClearsFlag(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	eggs := f.food(t, f.alice, "Eggs")

	_, err := f.engine.AddToInventory(ctx, f.alice, eggs, 4, date(t, "2024-01-01"))
	require.NoError(t, err)
	entry, err := f.engine.AddPlanEntry(ctx, f.alice, eggs, 3, time.Sunday)
	require.NoError(t, err)

	_, err = f.engine.MarkEaten(ctx, f.alice, entry.ID, true, date(t, "2024-01-07"))
	require.NoError(t, err)

	res, err := f.engine.MarkEaten(ctx, f.alice, entry.ID, false, time.Time{})
	require.NoError(t, err)
	assert.False(t, res.Entry.Eaten)
	assert.Nil(t, res.Ledger)

	ledger := f.ledger(t, f.alice)
	require.Len(t, ledger, 1)
	assert.InDelta(t, 3, ledger[0].Quantity, 1e-9)
	assert.Equal(t, map[string]float64{"2024-01-01": 1}, stockOf(t, f, f.alice, eggs))

	// Undo of a planned entry is a no-op.
	res, err = f.engine.MarkEaten(ctx, f.alice, entry.ID, false, time.Time{})
	require.NoError(t, err)
	assert.False(t, res.Entry.Eaten)
}

func TestMarkEaten_Ownership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	entry, err := f.engine.AddPlanEntry(ctx, f.alice, f.food(t, f.alice, "Milk"), 1, time.Monday)
	require.NoError(t, err)

	_, err = f.engine.MarkEaten(ctx, f.bob, entry.ID, true, date(t, "2024-01-01"))
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.engine.MarkEaten(ctx, f.alice, "missing", true, date(t, "2024-01-01"))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.engine.MarkEaten(ctx, f.alice, entry.ID, true, time.Time{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Empty(t, f.ledger(t, f.alice))
}

func TestMarkEaten_FailureRollsBackEverything(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	eggs := f.food(t, f.alice, "Eggs")

	_, err := f.engine.AddToInventory(ctx, f.alice, eggs, 5, date(t, "2024-01-01"))
	require.NoError(t, err)
	entry, err := f.engine.AddPlanEntry(ctx, f.alice, eggs, 2, time.Monday)
	require.NoError(t, err)

	broken := New(failingStore{f.store})
	_, err = broken.MarkEaten(ctx, f.alice, entry.ID, true, date(t, "2024-01-02"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransaction)
	assert.True(t, Retryable(err))

	plan, err := f.engine.ListPlan(ctx, f.alice)
	require.NoError(t, err)
	require.Len(t, plan, 1)
	assert.False(t, plan[0].Eaten, "flag flip must be rolled back")
	assert.Empty(t, f.ledger(t, f.alice), "ledger append must be rolled back")
	assert.Equal(t, map[string]float64{"2024-01-01": 5}, stockOf(t, f, f.alice, eggs))
}

func TestMarkEaten_ConcurrentDepletionsSerialize(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	eggs := f.food(t, f.alice, "Eggs")

	_, err := f.engine.AddToInventory(ctx, f.alice, eggs, 6, date(t, "2024-01-01"))
	require.NoError(t, err)
	_, err = f.engine.AddToInventory(ctx, f.alice, eggs, 4, date(t, "2024-01-02"))
	require.NoError(t, err)

	const n = 10
	ids := make([]string, n)
	for i := range ids {
		entry, err := f.engine.AddPlanEntry(ctx, f.alice, eggs, 1, time.Monday)
		require.NoError(t, err)
		ids[i] = entry.ID
	}

	var wg sync.WaitGroup
	errs := make(chan error, n)
	short := make(chan bool, n)
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			res, err := f.engine.MarkEaten(ctx, f.alice, id, true, date(t, "2024-01-03"))
			if err != nil {
				errs <- err
				return
			}
			short <- res.InsufficientStock()
		}(id)
	}
	wg.Wait()
	close(errs)
	close(short)

	for err := range errs {
		t.Errorf("MarkEaten failed: %v", err)
	}
	for s := range short {
		assert.False(t, s, "stock covers every entry")
	}
	assert.Empty(t, stockOf(t, f, f.alice, eggs))
	assert.Len(t, f.ledger(t, f.alice), n)
}

func TestMarkEaten_DifferentUsersProceedConcurrently(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	users := []string{f.alice, f.bob}
	entries := make(map[string][]string)
	for _, user := range users {
		eggs := f.food(t, user, "Eggs")
		_, err := f.engine.AddToInventory(ctx, user, eggs, 5, date(t, "2024-01-01"))
		require.NoError(t, err)
		for i := 0; i < 5; i++ {
			entry, err := f.engine.AddPlanEntry(ctx, user, eggs, 1, time.Friday)
			require.NoError(t, err)
			entries[user] = append(entries[user], entry.ID)
		}
	}

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for _, user := range users {
		for _, id := range entries[user] {
			wg.Add(1)
			go func(user, id string) {
				defer wg.Done()
				if _, err := f.engine.MarkEaten(ctx, user, id, true, date(t, "2024-01-02")); err != nil {
					errs <- err
				}
			}(user, id)
		}
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("MarkEaten failed: %v", err)
	}
	for _, user := range users {
		assert.Empty(t, stockOf(t, f, user, f.food(t, user, "Eggs")))
		assert.Len(t, f.ledger(t, user), 5)
	}
}

func TestAddDishToPlan(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	entries, err := f.engine.AddDishToPlan(ctx, f.alice, "tmpl-dish-omelette", time.Thursday)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, f.food(t, f.alice, "Eggs"), entries[0].FoodID)
	assert.InDelta(t, 3, entries[0].Quantity, 1e-9)
	assert.Equal(t, f.food(t, f.alice, "Tomato"), entries[1].FoodID)

	empty, err := f.engine.CreateDish(ctx, f.alice, "Air", "", nil)
	require.NoError(t, err)
	_, err = f.engine.AddDishToPlan(ctx, f.alice, empty.ID, time.Monday)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.engine.AddDishToPlan(ctx, f.bob, empty.ID, time.Monday)
	assert.ErrorIs(t, err, ErrForbidden)

	// A renamed template food can no longer be resolved.
	tomato := f.food(t, f.bob, "Tomato")
	_, err = f.engine.UpdateFood(ctx, f.bob, tomato, FoodInput{Name: "Cherry tomato", Unit: "piece", CaloriesPerUnit: 4})
	require.NoError(t, err)
	_, err = f.engine.AddDishToPlan(ctx, f.bob, "tmpl-dish-omelette", time.Monday)
	assert.ErrorIs(t, err, ErrInvalidInput)
	plan, err := f.engine.ListPlan(ctx, f.bob)
	require.NoError(t, err)
	assert.Empty(t, plan, "partial expansion must roll back")
}

func TestListPlan_MondayFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	milk := f.food(t, f.alice, "Milk")

	for _, wd := range []time.Weekday{time.Sunday, time.Wednesday, time.Monday, time.Wednesday} {
		_, err := f.engine.AddPlanEntry(ctx, f.alice, milk, 1, wd)
		require.NoError(t, err)
	}

	plan, err := f.engine.ListPlan(ctx, f.alice)
	require.NoError(t, err)
	got := make([]time.Weekday, len(plan))
	for i, p := range plan {
		got[i] = p.Weekday
		assert.Equal(t, "Milk", p.FoodName)
	}
	assert.Equal(t, []time.Weekday{time.Monday, time.Wednesday, time.Wednesday, time.Sunday}, got)

	require.NoError(t, f.engine.DeletePlanEntry(ctx, f.alice, plan[0].ID))
	assert.ErrorIs(t, f.engine.DeletePlanEntry(ctx, f.bob, plan[1].ID), ErrForbidden)

	plan, err = f.engine.ListPlan(ctx, f.alice)
	require.NoError(t, err)
	assert.Len(t, plan, 3)
}
