package reconcile

import (
	"context"
	"time"

	"github.com/pantryledger/pantry/internal/calculator"
	"github.com/pantryledger/pantry/internal/metrics"
	"github.com/pantryledger/pantry/internal/models"
	"github.com/pantryledger/pantry/internal/storage"
)

// AddResult reports where an inventory addition landed.
type AddResult struct {
	Batch  *models.InventoryBatch
	Merged bool
}

// AddToInventory adds quantity of a food acquired on day. An existing batch
// for the same (food, day) absorbs the quantity, even when it has been
// emptied; otherwise a new batch is created.
func (e *Engine) AddToInventory(ctx context.Context, userID, foodID string, quantity float64, day time.Time) (*AddResult, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if err := requireID("food", foodID); err != nil {
		return nil, err
	}
	if err := requirePositive("quantity", quantity); err != nil {
		return nil, err
	}
	acquired, err := requireDay("acquisition date", day)
	if err != nil {
		return nil, err
	}

	var res AddResult
	err = e.write(ctx, userID, func(tx storage.Tx) error {
		if _, err := ownedFood(ctx, tx, userID, foodID); err != nil {
			return err
		}
		res.Batch, res.Merged, err = addOrMerge(ctx, tx, userID, foodID, quantity, acquired)
		return err
	})
	if err != nil {
		return nil, err
	}

	e.recordBatch(res.Merged)
	e.logger.Debug("inventory added", "user_id", userID, "food_id", foodID,
		"quantity", quantity, "batch_id", res.Batch.ID, "merged", res.Merged)
	return &res, nil
}

// ListInventory returns the user's non-empty batches, most recent first,
// each with its derived expiration date.
func (e *Engine) ListInventory(ctx context.Context, userID string) ([]*models.BatchView, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	var views []*models.BatchView
	err := e.read(ctx, func(tx storage.Tx) error {
		var err error
		views, err = tx.ListActiveBatches(ctx, userID)
		return err
	})
	return views, err
}

// DeleteBatch removes one of the user's batches outright.
func (e *Engine) DeleteBatch(ctx context.Context, userID, batchID string) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	if err := requireID("batch", batchID); err != nil {
		return err
	}
	return e.write(ctx, userID, func(tx storage.Tx) error {
		if _, err := ownedBatch(ctx, tx, userID, batchID); err != nil {
			return err
		}
		return tx.DeleteBatch(ctx, batchID)
	})
}

func (e *Engine) recordBatch(merged bool) {
	if merged {
		e.metrics.BatchStored(metrics.BatchMerged)
	} else {
		e.metrics.BatchStored(metrics.BatchCreated)
	}
}

// addOrMerge is shared by AddToInventory and MarkPurchased. The caller has
// already checked that the food belongs to userID.
func addOrMerge(ctx context.Context, tx storage.BatchStore, userID, foodID string, quantity float64, day time.Time) (*models.InventoryBatch, bool, error) {
	existing, err := tx.FindBatch(ctx, userID, foodID, day)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		if err := tx.AddToBatch(ctx, existing.ID, quantity); err != nil {
			return nil, false, err
		}
		existing.Quantity += quantity
		return existing, true, nil
	}

	batch := &models.InventoryBatch{
		UserID:     userID,
		FoodID:     foodID,
		Quantity:   quantity,
		AcquiredOn: day,
	}
	if err := tx.InsertBatch(ctx, batch); err != nil {
		return nil, false, err
	}
	return batch, false, nil
}

// depleteFIFO draws amount of a food from the user's oldest batches first.
// Running out of stock is reported in the result, not as an error.
func depleteFIFO(ctx context.Context, tx storage.BatchStore, userID, foodID string, amount float64) (calculator.Depletion, error) {
	batches, err := tx.ActiveBatchesFIFO(ctx, userID, foodID)
	if err != nil {
		return calculator.Depletion{}, err
	}

	ordered := make([]calculator.Batch, len(batches))
	for i, b := range batches {
		ordered[i] = calculator.Batch{ID: b.ID, Quantity: b.Quantity}
	}

	plan, err := calculator.PlanDepletion(ordered, amount)
	if err != nil {
		return calculator.Depletion{}, invalid("%v", err)
	}
	for _, d := range plan.Draws {
		if d.Emptied {
			err = tx.EmptyBatch(ctx, d.BatchID)
		} else {
			err = tx.DecrementBatch(ctx, d.BatchID, d.Amount)
		}
		if err != nil {
			return calculator.Depletion{}, err
		}
	}
	return plan, nil
}
