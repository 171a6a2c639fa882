package reconcile

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pantryledger/pantry/internal/calculator"
	"github.com/pantryledger/pantry/internal/models"
	"github.com/pantryledger/pantry/internal/storage"
)

func requirePrice(p decimal.Decimal) error {
	if p.IsNegative() {
		return invalid("unit price must not be negative, got %s", p)
	}
	return nil
}

// ListCart returns the user's unpurchased lines, newest first.
func (e *Engine) ListCart(ctx context.Context, userID string) ([]*models.ShoppingCartLine, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	var lines []*models.ShoppingCartLine
	err := e.read(ctx, func(tx storage.Tx) error {
		var err error
		lines, err = tx.ListPendingCart(ctx, userID)
		return err
	})
	return lines, err
}

// AddCartLine puts a food in the cart at unitPrice, snapshotting its name.
// The price also becomes the food's reference price.
func (e *Engine) AddCartLine(ctx context.Context, userID, foodID string, quantity float64, unitPrice decimal.Decimal) (*models.ShoppingCartLine, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if err := requireID("food", foodID); err != nil {
		return nil, err
	}
	if err := requirePositive("quantity", quantity); err != nil {
		return nil, err
	}
	if err := requirePrice(unitPrice); err != nil {
		return nil, err
	}

	var line *models.ShoppingCartLine
	err := e.write(ctx, userID, func(tx storage.Tx) error {
		food, err := ownedFood(ctx, tx, userID, foodID)
		if err != nil {
			return err
		}
		line = &models.ShoppingCartLine{
			UserID:     userID,
			FoodID:     food.ID,
			Name:       food.Name,
			Quantity:   quantity,
			UnitPrice:  unitPrice,
			TotalPrice: models.LineTotal(quantity, unitPrice),
		}
		if err := tx.InsertCartLine(ctx, line); err != nil {
			return err
		}
		return tx.SetFoodPrice(ctx, food.ID, unitPrice)
	})
	if err != nil {
		return nil, err
	}
	return line, nil
}

// UpdateCartLine changes quantity and unit price of a pending line and
// recomputes its total.
func (e *Engine) UpdateCartLine(ctx context.Context, userID, lineID string, quantity float64, unitPrice decimal.Decimal) (*models.ShoppingCartLine, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if err := requireID("cart line", lineID); err != nil {
		return nil, err
	}
	if err := requirePositive("quantity", quantity); err != nil {
		return nil, err
	}
	if err := requirePrice(unitPrice); err != nil {
		return nil, err
	}

	var line *models.ShoppingCartLine
	err := e.write(ctx, userID, func(tx storage.Tx) error {
		var err error
		line, err = ownedCartLine(ctx, tx, userID, lineID)
		if err != nil {
			return err
		}
		if line.Purchased {
			return conflict("cart line", lineID, "already purchased")
		}
		line.Quantity = quantity
		line.UnitPrice = unitPrice
		line.TotalPrice = models.LineTotal(quantity, unitPrice)
		return tx.UpdateCartLine(ctx, line)
	})
	if err != nil {
		return nil, err
	}
	return line, nil
}

// DeleteCartLine removes a pending line. Purchased lines are spend
// history and cannot be removed.
func (e *Engine) DeleteCartLine(ctx context.Context, userID, lineID string) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	if err := requireID("cart line", lineID); err != nil {
		return err
	}
	return e.write(ctx, userID, func(tx storage.Tx) error {
		line, err := ownedCartLine(ctx, tx, userID, lineID)
		if err != nil {
			return err
		}
		if line.Purchased {
			return conflict("cart line", lineID, "already purchased")
		}
		return tx.DeleteCartLine(ctx, lineID)
	})
}

// PurchaseResult is the outcome of MarkPurchased.
type PurchaseResult struct {
	Line   *models.ShoppingCartLine
	Batch  *models.InventoryBatch
	Merged bool
}

// MarkPurchased flags a cart line purchased on day and folds its quantity
// into the batch dated day. Both halves commit together.
func (e *Engine) MarkPurchased(ctx context.Context, userID, lineID string, day time.Time) (*PurchaseResult, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if err := requireID("cart line", lineID); err != nil {
		return nil, err
	}
	purchased, err := requireDay("purchase date", day)
	if err != nil {
		return nil, err
	}

	res := &PurchaseResult{}
	err = e.write(ctx, userID, func(tx storage.Tx) error {
		line, err := ownedCartLine(ctx, tx, userID, lineID)
		if err != nil {
			return err
		}
		if line.Purchased {
			return conflict("cart line", lineID, "already purchased")
		}

		if err := tx.MarkCartLinePurchased(ctx, line.ID, purchased); err != nil {
			return err
		}
		line.Purchased = true
		line.PurchasedOn = &purchased
		res.Line = line

		if _, err := tx.GetFood(ctx, line.FoodID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return &Error{Kind: ErrNotFound, Entity: "food", ID: line.FoodID,
					Reason: "food was removed from the catalog"}
			}
			return err
		}

		res.Batch, res.Merged, err = addOrMerge(ctx, tx, userID, line.FoodID, line.Quantity, purchased)
		return err
	})
	if err != nil {
		return nil, err
	}

	e.metrics.PurchaseFolded()
	e.recordBatch(res.Merged)
	e.logger.Debug("cart line purchased", "user_id", userID, "line_id", lineID,
		"batch_id", res.Batch.ID, "merged", res.Merged)
	return res, nil
}

// SuggestPurchases compares uneaten planned demand with stock on hand and
// pending cart lines, matched by food name, and returns what is missing.
// Foods with no reference price are suggested at zero.
func (e *Engine) SuggestPurchases(ctx context.Context, userID string) ([]calculator.Suggestion, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	var (
		planned []storage.PlannedDemand
		onHand  map[string]float64
		inCart  map[string]float64
	)
	err := e.read(ctx, func(tx storage.Tx) error {
		var err error
		if planned, err = tx.PlannedDemand(ctx, userID); err != nil {
			return err
		}
		if onHand, err = tx.OnHandByName(ctx, userID); err != nil {
			return err
		}
		inCart, err = tx.PendingCartByName(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	demand := make([]calculator.Demand, len(planned))
	for i, p := range planned {
		price := decimal.Zero
		if p.ReferencePrice != nil {
			price = *p.ReferencePrice
		}
		demand[i] = calculator.Demand{
			FoodID:         p.FoodID,
			Name:           p.Name,
			Planned:        p.Quantity,
			ReferencePrice: price,
		}
	}
	return calculator.SuggestPurchases(demand, onHand, inCart), nil
}
