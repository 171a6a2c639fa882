package reconcile

import (
	"context"
	"time"

	"github.com/pantryledger/pantry/internal/calculator"
	"github.com/pantryledger/pantry/internal/models"
	"github.com/pantryledger/pantry/internal/storage"
)

// Default and maximum statistics windows, in days.
const (
	DefaultDailyWindow = 7
	DefaultFoodWindow  = 30
	MaxWindow          = 366
)

// DailyStats returns spend, eaten quantity and calories for each of the
// last days days, ending today. days <= 0 selects DefaultDailyWindow.
func (e *Engine) DailyStats(ctx context.Context, userID string, days int) ([]calculator.DayTotals, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	days, err := window(days, DefaultDailyWindow)
	if err != nil {
		return nil, err
	}

	today := e.Today()
	purchases, consumption, err := e.history(ctx, userID, calculator.WindowStart(today, days))
	if err != nil {
		return nil, err
	}
	return calculator.DailySeries(today, days, purchases, consumption), nil
}

// FoodStats totals what was eaten per food over the last days days, with
// the spend on lines of the same name. days <= 0 selects DefaultFoodWindow.
func (e *Engine) FoodStats(ctx context.Context, userID string, days int) ([]calculator.FoodTotals, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	days, err := window(days, DefaultFoodWindow)
	if err != nil {
		return nil, err
	}

	purchases, consumption, err := e.history(ctx, userID, calculator.WindowStart(e.Today(), days))
	if err != nil {
		return nil, err
	}
	return calculator.FoodSummary(purchases, consumption), nil
}

func window(days, fallback int) (int, error) {
	if days <= 0 {
		return fallback, nil
	}
	if days > MaxWindow {
		return 0, invalid("window of %d days exceeds %d", days, MaxWindow)
	}
	return days, nil
}

// history loads purchased lines and ledger entries from since onwards.
func (e *Engine) history(ctx context.Context, userID string, since time.Time) ([]calculator.Purchase, []calculator.Consumption, error) {
	var (
		lines   []*models.ShoppingCartLine
		entries []*models.ConsumptionLogEntry
	)
	err := e.read(ctx, func(tx storage.Tx) error {
		var err error
		if lines, err = tx.ListPurchasedSince(ctx, userID, since); err != nil {
			return err
		}
		entries, err = tx.ListConsumption(ctx, userID, since)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	purchases := make([]calculator.Purchase, 0, len(lines))
	for _, l := range lines {
		if l.PurchasedOn == nil {
			continue
		}
		purchases = append(purchases, calculator.Purchase{Name: l.Name, Day: *l.PurchasedOn, Total: l.TotalPrice})
	}
	consumption := make([]calculator.Consumption, len(entries))
	for i, c := range entries {
		consumption[i] = calculator.Consumption{
			Name:     c.Name,
			Day:      c.ConsumedOn,
			Quantity: c.Quantity,
			Calories: c.Calories,
		}
	}
	return purchases, consumption, nil
}
