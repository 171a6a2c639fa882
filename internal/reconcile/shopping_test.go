package reconcile

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantryledger/pantry/internal/models"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAddCartLine_SnapshotsNameAndPrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	bread := f.food(t, f.alice, "Bread")

	line, err := f.engine.AddCartLine(ctx, f.alice, bread, 3, price("1.20"))
	require.NoError(t, err)
	assert.Equal(t, "Bread", line.Name)
	assert.True(t, line.TotalPrice.Equal(price("3.6")), "total = %s", line.TotalPrice)
	assert.False(t, line.Purchased)

	foods, err := f.engine.ListFoods(ctx, f.alice)
	require.NoError(t, err)
	for _, food := range foods {
		if food.ID == bread {
			require.NotNil(t, food.ReferencePrice)
			assert.True(t, food.ReferencePrice.Equal(price("1.2")))
		}
	}

	_, err = f.engine.UpdateFood(ctx, f.alice, bread, FoodInput{Name: "Sourdough", Unit: "loaf", CaloriesPerUnit: 250})
	require.NoError(t, err)

	lines, err := f.engine.ListCart(ctx, f.alice)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "Bread", lines[0].Name)
}

func TestAddCartLine_Rejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	bread := f.food(t, f.alice, "Bread")

	_, err := f.engine.AddCartLine(ctx, f.alice, bread, 0, price("1"))
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.engine.AddCartLine(ctx, f.alice, bread, 1, price("-0.01"))
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.engine.AddCartLine(ctx, f.bob, bread, 1, price("1"))
	assert.ErrorIs(t, err, ErrForbidden)

	lines, err := f.engine.ListCart(ctx, f.alice)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestUpdateAndDeleteCartLine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	milk := f.food(t, f.alice, "Milk")

	line, err := f.engine.AddCartLine(ctx, f.alice, milk, 1, price("0.99"))
	require.NoError(t, err)

	updated, err := f.engine.UpdateCartLine(ctx, f.alice, line.ID, 4, price("0.90"))
	require.NoError(t, err)
	assert.True(t, updated.TotalPrice.Equal(price("3.6")))

	_, err = f.engine.UpdateCartLine(ctx, f.bob, line.ID, 1, price("1"))
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, f.engine.DeleteCartLine(ctx, f.bob, line.ID), ErrForbidden)

	require.NoError(t, f.engine.DeleteCartLine(ctx, f.alice, line.ID))
	assert.ErrorIs(t, f.engine.DeleteCartLine(ctx, f.alice, line.ID), ErrNotFound)
}

func TestMarkPurchased_FoldsIntoBatchOfPurchaseDay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rice := f.food(t, f.alice, "Rice")

	_, err := f.engine.AddToInventory(ctx, f.alice, rice, 1, date(t, "2024-01-09"))
	require.NoError(t, err)

	line, err := f.engine.AddCartLine(ctx, f.alice, rice, 2.5, price("2"))
	require.NoError(t, err)

	res, err := f.engine.MarkPurchased(ctx, f.alice, line.ID, date(t, "2024-01-09"))
	require.NoError(t, err)
	assert.True(t, res.Merged)
	assert.True(t, res.Line.Purchased)
	assert.Equal(t, map[string]float64{"2024-01-09": 3.5}, stockOf(t, f, f.alice, rice))

	_, err = f.engine.MarkPurchased(ctx, f.alice, line.ID, date(t, "2024-01-10"))
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, map[string]float64{"2024-01-09": 3.5}, stockOf(t, f, f.alice, rice))

	_, err = f.engine.UpdateCartLine(ctx, f.alice, line.ID, 1, price("1"))
	assert.ErrorIs(t, err, ErrConflict)
	assert.ErrorIs(t, f.engine.DeleteCartLine(ctx, f.alice, line.ID), ErrConflict)

	pending, err := f.engine.ListCart(ctx, f.alice)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestMarkPurchased_NewBatchAndOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	eggs := f.food(t, f.alice, "Eggs")

	line, err := f.engine.AddCartLine(ctx, f.alice, eggs, 12, price("0.25"))
	require.NoError(t, err)

	_, err = f.engine.MarkPurchased(ctx, f.bob, line.ID, date(t, "2024-01-04"))
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = f.engine.MarkPurchased(ctx, f.alice, line.ID, time.Time{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	res, err := f.engine.MarkPurchased(ctx, f.alice, line.ID, date(t, "2024-01-04"))
	require.NoError(t, err)
	assert.False(t, res.Merged)
	assert.Equal(t, "2024-01-04", models.FormatDate(res.Batch.AcquiredOn))
	assert.InDelta(t, 12, res.Batch.Quantity, 1e-9)
}

func TestMarkPurchased_FailureLeavesLinePending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	eggs := f.food(t, f.alice, "Eggs")

	line, err := f.engine.AddCartLine(ctx, f.alice, eggs, 6, price("0.30"))
	require.NoError(t, err)

	broken := New(failingStore{f.store})
	_, err = broken.MarkPurchased(ctx, f.alice, line.ID, date(t, "2024-01-04"))
	assert.ErrorIs(t, err, ErrTransaction)

	pending, err := f.engine.ListCart(ctx, f.alice)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.False(t, pending[0].Purchased)
	assert.Empty(t, stockOf(t, f, f.alice, eggs))
}

func TestSuggestPurchases(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	eggs := f.food(t, f.alice, "Eggs")
	milk := f.food(t, f.alice, "Milk")

	_, err := f.engine.AddPlanEntry(ctx, f.alice, eggs, 6, time.Monday)
	require.NoError(t, err)
	_, err = f.engine.AddPlanEntry(ctx, f.alice, eggs, 6, time.Tuesday)
	require.NoError(t, err)
	_, err = f.engine.AddPlanEntry(ctx, f.alice, milk, 1, time.Monday)
	require.NoError(t, err)

	_, err = f.engine.AddToInventory(ctx, f.alice, eggs, 4, date(t, "2024-01-01"))
	require.NoError(t, err)
	_, err = f.engine.AddCartLine(ctx, f.alice, eggs, 6, price("0.20"))
	require.NoError(t, err)

	got, err := f.engine.SuggestPurchases(ctx, f.alice)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Eggs", got[0].Name)
	assert.InDelta(t, 2, got[0].Needed, 1e-9)
	assert.True(t, got[0].ReferencePrice.Equal(price("0.2")))

	assert.Equal(t, "Milk", got[1].Name)
	assert.InDelta(t, 1, got[1].Needed, 1e-9)
	assert.True(t, got[1].ReferencePrice.IsZero())

	// Covering every food empties the list.
	_, err = f.engine.AddCartLine(ctx, f.alice, eggs, 2, price("0.20"))
	require.NoError(t, err)
	_, err = f.engine.AddToInventory(ctx, f.alice, milk, 1, date(t, "2024-01-01"))
	require.NoError(t, err)

	got, err = f.engine.SuggestPurchases(ctx, f.alice)
	require.NoError(t, err)
	assert.Empty(t, got)

	bobs, err := f.engine.SuggestPurchases(ctx, f.bob)
	require.NoError(t, err)
	assert.Empty(t, bobs)
}
