package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pantryledger/pantry/internal/models"
	"github.com/pantryledger/pantry/internal/storage"
)

const planColumns = `id, user_id, food_id, quantity, weekday, eaten, created_at`

func scanPlanEntry(row rowScanner, extra ...any) (*models.MealPlanEntry, error) {
	e := &models.MealPlanEntry{}
	var weekday string
	dest := append([]any{&e.ID, &e.UserID, &e.FoodID, &e.Quantity, &weekday, &e.Eaten, &e.CreatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	wd, err := models.ParseWeekday(weekday)
	if err != nil {
		return nil, fmt.Errorf("corrupt weekday column: %w", err)
	}
	e.Weekday = wd
	return e, nil
}

// InsertPlanEntry persists a new plan entry, generating its ID.
func (t *sqlTx) InsertPlanEntry(ctx context.Context, entry *models.MealPlanEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt == 0 {
		entry.CreatedAt = time.Now().Unix()
	}

	_, err := t.q.ExecContext(ctx,
		`INSERT INTO meal_plan (id, user_id, food_id, quantity, weekday, weekday_rank, eaten, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.UserID, entry.FoodID, entry.Quantity,
		entry.Weekday.String(), models.WeekdayRank(entry.Weekday), entry.Eaten, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert plan entry: %w", err)
	}
	return nil
}

// GetPlanEntry retrieves a plan entry by ID.
func (t *sqlTx) GetPlanEntry(ctx context.Context, id string) (*models.MealPlanEntry, error) {
	e, err := scanPlanEntry(t.q.QueryRowContext(ctx,
		`SELECT `+planColumns+` FROM meal_plan WHERE id = ?`, id))
	if isNoRows(err) {
		return nil, notFound("plan entry", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plan entry: %w", err)
	}
	return e, nil
}

// SetPlanEaten sets the eaten flag.
func (t *sqlTx) SetPlanEaten(ctx context.Context, id string, eaten bool) error {
	res, err := t.q.ExecContext(ctx, `UPDATE meal_plan SET eaten = ? WHERE id = ?`, eaten, id)
	if err != nil {
		return fmt.Errorf("failed to update plan entry: %w", err)
	}
	return affectOne(res, "plan entry", id)
}

// DeletePlanEntry removes a plan entry.
func (t *sqlTx) DeletePlanEntry(ctx context.Context, id string) error {
	res, err := t.q.ExecContext(ctx, `DELETE FROM meal_plan WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete plan entry: %w", err)
	}
	return affectOne(res, "plan entry", id)
}

// ListPlan returns the user's plan, Monday first, with food details.
func (t *sqlTx) ListPlan(ctx context.Context, userID string) ([]*models.PlanEntryView, error) {
	rows, err := t.q.QueryContext(ctx,
		`SELECT p.id, p.user_id, p.food_id, p.quantity, p.weekday, p.eaten, p.created_at,
		        f.name, f.unit, f.calories
		 FROM meal_plan p
		 JOIN foods f ON f.id = p.food_id
		 WHERE p.user_id = ?
		 ORDER BY p.weekday_rank, p.rowid`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list plan: %w", err)
	}
	defer rows.Close()

	var views []*models.PlanEntryView
	for rows.Next() {
		v := &models.PlanEntryView{}
		e, err := scanPlanEntry(rows, &v.FoodName, &v.Unit, &v.CaloriesPerUnit)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plan entry: %w", err)
		}
		v.MealPlanEntry = *e
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate plan: %w", err)
	}
	return views, nil
}

// PlannedDemand sums uneaten planned quantity per food.
func (t *sqlTx) PlannedDemand(ctx context.Context, userID string) ([]storage.PlannedDemand, error) {
	rows, err := t.q.QueryContext(ctx,
		`SELECT f.id, f.name, f.price, SUM(p.quantity)
		 FROM meal_plan p
		 JOIN foods f ON f.id = p.food_id
		 WHERE p.user_id = ? AND p.eaten = 0
		 GROUP BY f.id, f.name, f.price
		 ORDER BY f.name`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum planned demand: %w", err)
	}
	defer rows.Close()

	var demand []storage.PlannedDemand
	for rows.Next() {
		var d storage.PlannedDemand
		var price sql.NullString
		if err := rows.Scan(&d.FoodID, &d.Name, &price, &d.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan planned demand: %w", err)
		}
		if price.Valid {
			p, err := decimal.NewFromString(price.String)
			if err != nil {
				return nil, fmt.Errorf("corrupt price for food %s: %w", d.FoodID, err)
			}
			d.ReferencePrice = &p
		}
		demand = append(demand, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate planned demand: %w", err)
	}
	return demand, nil
}
