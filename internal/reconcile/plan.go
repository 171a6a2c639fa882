package reconcile

import (
	"context"
	"time"

	"github.com/pantryledger/pantry/internal/calculator"
	"github.com/pantryledger/pantry/internal/models"
	"github.com/pantryledger/pantry/internal/storage"
)

// AddPlanEntry plans quantity of one of the user's foods on weekday.
func (e *Engine) AddPlanEntry(ctx context.Context, userID, foodID string, quantity float64, weekday time.Weekday) (*models.MealPlanEntry, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if err := requireID("food", foodID); err != nil {
		return nil, err
	}
	if err := requirePositive("quantity", quantity); err != nil {
		return nil, err
	}
	if weekday < time.Sunday || weekday > time.Saturday {
		return nil, invalid("weekday %d out of range", weekday)
	}

	entry := &models.MealPlanEntry{
		UserID:   userID,
		FoodID:   foodID,
		Quantity: quantity,
		Weekday:  weekday,
	}
	err := e.write(ctx, userID, func(tx storage.Tx) error {
		if _, err := ownedFood(ctx, tx, userID, foodID); err != nil {
			return err
		}
		return tx.InsertPlanEntry(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// AddDishToPlan expands a dish into one plan entry per ingredient.
// Ingredients of a template dish are resolved to the user's own food with
// the same name.
func (e *Engine) AddDishToPlan(ctx context.Context, userID, dishID string, weekday time.Weekday) ([]*models.MealPlanEntry, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if err := requireID("dish", dishID); err != nil {
		return nil, err
	}
	if weekday < time.Sunday || weekday > time.Saturday {
		return nil, invalid("weekday %d out of range", weekday)
	}

	var entries []*models.MealPlanEntry
	err := e.write(ctx, userID, func(tx storage.Tx) error {
		dish, err := visibleDish(ctx, tx, userID, dishID)
		if err != nil {
			return err
		}
		if len(dish.Ingredients) == 0 {
			return invalid("dish %s has no ingredients", dishID)
		}

		for _, ing := range dish.Ingredients {
			foodID := ing.FoodID
			if ing.FromTemplate {
				own, err := tx.FindFoodByName(ctx, userID, ing.FoodName)
				if err != nil {
					return err
				}
				if own == nil {
					return invalid("no food named %q in your catalog", ing.FoodName)
				}
				foodID = own.ID
			}

			entry := &models.MealPlanEntry{
				UserID:   userID,
				FoodID:   foodID,
				Quantity: ing.Quantity,
				Weekday:  weekday,
			}
			if err := tx.InsertPlanEntry(ctx, entry); err != nil {
				return err
			}
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ListPlan returns the user's plan Monday first, then in insertion order.
func (e *Engine) ListPlan(ctx context.Context, userID string) ([]*models.PlanEntryView, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	var views []*models.PlanEntryView
	err := e.read(ctx, func(tx storage.Tx) error {
		var err error
		views, err = tx.ListPlan(ctx, userID)
		return err
	})
	return views, err
}

// DeletePlanEntry removes a plan entry. Ledger rows written for it stay.
func (e *Engine) DeletePlanEntry(ctx context.Context, userID, entryID string) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	if err := requireID("plan entry", entryID); err != nil {
		return err
	}
	return e.write(ctx, userID, func(tx storage.Tx) error {
		if _, err := ownedPlanEntry(ctx, tx, userID, entryID); err != nil {
			return err
		}
		return tx.DeletePlanEntry(ctx, entryID)
	})
}

// MarkEatenResult is the outcome of MarkEaten.
type MarkEatenResult struct {
	Entry *models.MealPlanEntry

	// Ledger is the consumption record written, nil for an undo.
	Ledger *models.ConsumptionLogEntry

	// Depletion lists the batches drawn from and any shortfall.
	Depletion calculator.Depletion
}

// InsufficientStock reports whether inventory could not cover the entry.
func (r *MarkEatenResult) InsufficientStock() bool {
	return r.Depletion.Insufficient()
}

// MarkEaten moves a plan entry between planned and eaten.
//
// With eaten=true the flag flip, the ledger append and the FIFO depletion
// commit together or not at all. An entry that is already eaten is a
// Conflict. Missing stock does not fail the call; it is reported on the
// result.
//
// With eaten=false only the flag is cleared: the ledger entry and the
// depleted stock are left as they are.
func (e *Engine) MarkEaten(ctx context.Context, userID, entryID string, eaten bool, consumedOn time.Time) (*MarkEatenResult, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if err := requireID("plan entry", entryID); err != nil {
		return nil, err
	}
	var day time.Time
	if eaten {
		var err error
		if day, err = requireDay("consumption date", consumedOn); err != nil {
			return nil, err
		}
	}

	res := &MarkEatenResult{}
	err := e.write(ctx, userID, func(tx storage.Tx) error {
		entry, err := ownedPlanEntry(ctx, tx, userID, entryID)
		if err != nil {
			return err
		}
		res.Entry = entry

		if !eaten {
			if entry.Eaten {
				if err := tx.SetPlanEaten(ctx, entry.ID, false); err != nil {
					return err
				}
				entry.Eaten = false
			}
			return nil
		}

		if entry.Eaten {
			return conflict("plan entry", entry.ID, "already eaten")
		}
		if err := tx.SetPlanEaten(ctx, entry.ID, true); err != nil {
			return err
		}
		entry.Eaten = true

		food, err := tx.GetFood(ctx, entry.FoodID)
		if err != nil {
			return err
		}

		ledger := &models.ConsumptionLogEntry{
			UserID:     userID,
			FoodID:     food.ID,
			Name:       food.Name,
			Quantity:   entry.Quantity,
			Calories:   entry.Quantity * food.CaloriesPerUnit,
			ConsumedOn: day,
		}
		if err := tx.AppendConsumption(ctx, ledger); err != nil {
			return err
		}
		res.Ledger = ledger

		res.Depletion, err = depleteFIFO(ctx, tx, userID, food.ID, entry.Quantity)
		return err
	})
	if err != nil {
		return nil, err
	}

	if res.Ledger != nil {
		e.metrics.ConsumptionLogged()
		if res.InsufficientStock() {
			e.metrics.InsufficientStock()
			e.logger.Warn("insufficient stock for consumption",
				"user_id", userID,
				"plan_entry_id", entryID,
				"food", res.Ledger.Name,
				"quantity", res.Ledger.Quantity,
				"shortfall", res.Depletion.Shortfall,
			)
		}
	}
	return res, nil
}
