package reconcile

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantryledger/pantry/internal/models"
)

func TestAddToInventory_MergesSameDay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	eggs := f.food(t, f.alice, "Eggs")
	day := date(t, "2024-01-01")

	quantities := []float64{2, 3, 0.5}
	var batchID string
	for i, q := range quantities {
		res, err := f.engine.AddToInventory(ctx, f.alice, eggs, q, day)
		require.NoError(t, err)
		if i == 0 {
			assert.False(t, res.Merged)
			batchID = res.Batch.ID
		} else {
			assert.True(t, res.Merged)
			assert.Equal(t, batchID, res.Batch.ID)
		}
	}

	assert.Equal(t, map[string]float64{"2024-01-01": 5.5}, stockOf(t, f, f.alice, eggs))

	res, err := f.engine.AddToInventory(ctx, f.alice, eggs, 1, date(t, "2024-01-02"))
	require.NoError(t, err)
	assert.False(t, res.Merged)
	assert.Len(t, stockOf(t, f, f.alice, eggs), 2)
}

func TestAddToInventory_MergesIntoEmptiedBatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	milk := f.food(t, f.alice, "Milk")
	day := date(t, "2024-01-03")

	first, err := f.engine.AddToInventory(ctx, f.alice, milk, 1, day)
	require.NoError(t, err)
	entry, err := f.engine.AddPlanEntry(ctx, f.alice, milk, 1, day.Weekday())
	require.NoError(t, err)
	_, err = f.engine.MarkEaten(ctx, f.alice, entry.ID, true, day)
	require.NoError(t, err)
	assert.Empty(t, stockOf(t, f, f.alice, milk))

	again, err := f.engine.AddToInventory(ctx, f.alice, milk, 2, day)
	require.NoError(t, err)
	assert.True(t, again.Merged)
	assert.Equal(t, first.Batch.ID, again.Batch.ID)
	assert.InDelta(t, 2, again.Batch.Quantity, 1e-9)
}

func TestAddToInventory_Rejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	eggs := f.food(t, f.alice, "Eggs")
	day := date(t, "2024-01-01")

	tests := []struct {
		name    string
		userID  string
		foodID  string
		qty     float64
		wantErr error
	}{
		{"zero quantity", f.alice, eggs, 0, ErrInvalidInput},
		{"negative quantity", f.alice, eggs, -2, ErrInvalidInput},
		{"missing food id", f.alice, "", 1, ErrInvalidInput},
		{"missing user", "", eggs, 1, ErrInvalidInput},
		{"unknown food", f.alice, "no-such-food", 1, ErrNotFound},
		{"another user's food", f.bob, eggs, 1, ErrForbidden},
		{"template food", f.alice, "tmpl-food-eggs", 1, ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.engine.AddToInventory(ctx, tt.userID, tt.foodID, tt.qty, day)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Empty(t, stockOf(t, f, f.alice, eggs))
	writes, err := testutil.GatherAndCount(f.metrics.Registry(), "pantry_batch_writes_total")
	require.NoError(t, err)
	assert.Zero(t, writes, "rejected additions must not be counted")
}

func TestListInventory_NewestFirstWithExpiry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	milk := f.food(t, f.alice, "Milk")
	rice := f.food(t, f.alice, "Rice")

	_, err := f.engine.AddToInventory(ctx, f.alice, milk, 1, date(t, "2024-01-01"))
	require.NoError(t, err)
	_, err = f.engine.AddToInventory(ctx, f.alice, rice, 1, date(t, "2024-01-05"))
	require.NoError(t, err)
	_, err = f.engine.AddToInventory(ctx, f.bob, f.food(t, f.bob, "Milk"), 1, date(t, "2024-01-09"))
	require.NoError(t, err)

	batches, err := f.engine.ListInventory(ctx, f.alice)
	require.NoError(t, err)
	require.Len(t, batches, 2)
	assert.Equal(t, "Rice", batches[0].FoodName)
	assert.Equal(t, "Milk", batches[1].FoodName)
	assert.Equal(t, "2024-01-08", models.FormatDate(batches[1].ExpiresOn))
}

func TestDeleteBatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	bread := f.food(t, f.alice, "Bread")

	res, err := f.engine.AddToInventory(ctx, f.alice, bread, 1, date(t, "2024-01-01"))
	require.NoError(t, err)

	assert.ErrorIs(t, f.engine.DeleteBatch(ctx, f.bob, res.Batch.ID), ErrForbidden)
	assert.ErrorIs(t, f.engine.DeleteBatch(ctx, f.alice, "missing"), ErrNotFound)

	require.NoError(t, f.engine.DeleteBatch(ctx, f.alice, res.Batch.ID))
	assert.Empty(t, stockOf(t, f, f.alice, bread))
	assert.ErrorIs(t, f.engine.DeleteBatch(ctx, f.alice, res.Batch.ID), ErrNotFound)
}
