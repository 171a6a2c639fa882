package service

import (
	"fmt"
	"time"

	"connectrpc.com/connect"

	"github.com/pantryledger/pantry/internal/calculator"
	"github.com/pantryledger/pantry/internal/models"
	"github.com/pantryledger/pantry/pkg/api"
)

// parseDay reads an optional YYYY-MM-DD field; empty means today.
func parseDay(field, s string, today time.Time) (time.Time, error) {
	if s == "" {
		return today, nil
	}
	d, err := models.ParseDate(s)
	if err != nil {
		return time.Time{}, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("%s: %w", field, err))
	}
	return d, nil
}

func parseWeekday(s string) (time.Weekday, error) {
	wd, err := models.ParseWeekday(s)
	if err != nil {
		return 0, connect.NewError(connect.CodeInvalidArgument, err)
	}
	return wd, nil
}

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}

func toAPIBatch(b *models.InventoryBatch) *api.Batch {
	return &api.Batch{
		ID:         b.ID,
		FoodID:     b.FoodID,
		Quantity:   b.Quantity,
		AcquiredOn: models.FormatDate(b.AcquiredOn),
	}
}

func toAPIBatchView(v *models.BatchView) *api.Batch {
	b := toAPIBatch(&v.InventoryBatch)
	b.FoodName = v.FoodName
	b.Unit = v.Unit
	b.ExpiresOn = models.FormatDate(v.ExpiresOn)
	return b
}

func toAPIPlanEntry(e *models.MealPlanEntry) *api.PlanEntry {
	return &api.PlanEntry{
		ID:       e.ID,
		FoodID:   e.FoodID,
		Quantity: e.Quantity,
		Weekday:  e.Weekday.String(),
		Eaten:    e.Eaten,
	}
}

func toAPIPlanView(v *models.PlanEntryView) *api.PlanEntry {
	p := toAPIPlanEntry(&v.MealPlanEntry)
	p.FoodName = v.FoodName
	p.Unit = v.Unit
	p.Calories = v.Quantity * v.CaloriesPerUnit
	return p
}

func toAPIConsumption(c *models.ConsumptionLogEntry) *api.ConsumptionEntry {
	return &api.ConsumptionEntry{
		ID:         c.ID,
		FoodID:     c.FoodID,
		Name:       c.Name,
		Quantity:   c.Quantity,
		Calories:   c.Calories,
		ConsumedOn: models.FormatDate(c.ConsumedOn),
	}
}

func toAPICartLine(l *models.ShoppingCartLine) *api.CartLine {
	line := &api.CartLine{
		ID:         l.ID,
		FoodID:     l.FoodID,
		Name:       l.Name,
		Quantity:   l.Quantity,
		UnitPrice:  l.UnitPrice,
		TotalPrice: l.TotalPrice,
		Purchased:  l.Purchased,
	}
	if l.PurchasedOn != nil {
		line.PurchasedOn = models.FormatDate(*l.PurchasedOn)
	}
	return line
}

func toAPIFood(f *models.Food) *api.Food {
	return &api.Food{
		ID:              f.ID,
		Name:            f.Name,
		Category:        f.Category,
		CaloriesPerUnit: f.CaloriesPerUnit,
		Unit:            f.Unit,
		ReferencePrice:  f.ReferencePrice,
		ShelfLifeDays:   f.ShelfLifeDays,
	}
}

func toAPIDish(d *models.Dish) *api.Dish {
	dish := &api.Dish{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Shared:      d.OwnerID == "",
		Ingredients: make([]*api.Ingredient, len(d.Ingredients)),
	}
	for i, ing := range d.Ingredients {
		dish.Ingredients[i] = &api.Ingredient{
			FoodID:   ing.FoodID,
			FoodName: ing.FoodName,
			Quantity: ing.Quantity,
		}
	}
	return dish
}

func toAPIDishMatch(m calculator.DishMatch) *api.DishMatch {
	return &api.DishMatch{
		DishID:      m.DishID,
		Name:        m.Name,
		Description: m.Description,
		Owned:       m.Owned,
		Total:       m.Total,
		Ratio:       m.Ratio,
	}
}
