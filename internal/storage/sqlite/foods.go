package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pantryledger/pantry/internal/models"
)

const foodColumns = `id, owner_id, name, category, calories, unit, price, shelf_life_days, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFood(row rowScanner) (*models.Food, error) {
	food := &models.Food{}
	var owner, price sql.NullString
	if err := row.Scan(&food.ID, &owner, &food.Name, &food.Category, &food.CaloriesPerUnit,
		&food.Unit, &price, &food.ShelfLifeDays, &food.CreatedAt); err != nil {
		return nil, err
	}
	food.OwnerID = owner.String
	if price.Valid {
		p, err := decimal.NewFromString(price.String)
		if err != nil {
			return nil, fmt.Errorf("corrupt price for food %s: %w", food.ID, err)
		}
		food.ReferencePrice = &p
	}
	return food, nil
}

func priceArg(p *decimal.Decimal) any {
	if p == nil {
		return nil
	}
	return p.String()
}

// GetFood retrieves a food by ID.
func (t *sqlTx) GetFood(ctx context.Context, id string) (*models.Food, error) {
	food, err := scanFood(t.q.QueryRowContext(ctx,
		`SELECT `+foodColumns+` FROM foods WHERE id = ?`, id))
	if isNoRows(err) {
		return nil, notFound("food", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get food: %w", err)
	}
	return food, nil
}

// ListFoods returns the owner's catalog ordered by name.
func (t *sqlTx) ListFoods(ctx context.Context, ownerID string) ([]*models.Food, error) {
	rows, err := t.q.QueryContext(ctx,
		`SELECT `+foodColumns+` FROM foods WHERE owner_id = ? ORDER BY name`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list foods: %w", err)
	}
	defer rows.Close()

	var foods []*models.Food
	for rows.Next() {
		food, err := scanFood(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan food: %w", err)
		}
		foods = append(foods, food)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate foods: %w", err)
	}
	return foods, nil
}

// FindFoodByName looks up a food in the owner's catalog by exact name.
func (t *sqlTx) FindFoodByName(ctx context.Context, ownerID, name string) (*models.Food, error) {
	food, err := scanFood(t.q.QueryRowContext(ctx,
		`SELECT `+foodColumns+` FROM foods WHERE owner_id = ? AND name = ?`, ownerID, name))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find food by name: %w", err)
	}
	return food, nil
}

// InsertFood persists a new catalog entry, generating its ID.
func (t *sqlTx) InsertFood(ctx context.Context, food *models.Food) error {
	if food.ID == "" {
		food.ID = uuid.New().String()
	}
	if food.CreatedAt == 0 {
		food.CreatedAt = time.Now().Unix()
	}

	_, err := t.q.ExecContext(ctx,
		`INSERT INTO foods (`+foodColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		food.ID, nullable(food.OwnerID), food.Name, food.Category, food.CaloriesPerUnit,
		food.Unit, priceArg(food.ReferencePrice), food.ShelfLifeDays, food.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert food: %w", err)
	}
	return nil
}

// UpdateFood overwrites the editable fields of a food.
func (t *sqlTx) UpdateFood(ctx context.Context, food *models.Food) error {
	res, err := t.q.ExecContext(ctx,
		`UPDATE foods SET name = ?, category = ?, calories = ?, unit = ?, price = ?, shelf_life_days = ?
		 WHERE id = ?`,
		food.Name, food.Category, food.CaloriesPerUnit, food.Unit,
		priceArg(food.ReferencePrice), food.ShelfLifeDays, food.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update food: %w", err)
	}
	return affectOne(res, "food", food.ID)
}

// DeleteFood removes a food. Batches, plan entries and ingredients that
// reference it are removed by cascade; ledger and cart rows keep their
// snapshots.
func (t *sqlTx) DeleteFood(ctx context.Context, id string) error {
	res, err := t.q.ExecContext(ctx, `DELETE FROM foods WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete food: %w", err)
	}
	return affectOne(res, "food", id)
}

// SetFoodPrice records a new reference price.
func (t *sqlTx) SetFoodPrice(ctx context.Context, id string, price decimal.Decimal) error {
	res, err := t.q.ExecContext(ctx, `UPDATE foods SET price = ? WHERE id = ?`, price.String(), id)
	if err != nil {
		return fmt.Errorf("failed to set food price: %w", err)
	}
	return affectOne(res, "food", id)
}

// CopyTemplateFoods copies every ownerless food into the user's catalog.
func (t *sqlTx) CopyTemplateFoods(ctx context.Context, userID string) (int, error) {
	rows, err := t.q.QueryContext(ctx,
		`SELECT `+foodColumns+` FROM foods WHERE owner_id IS NULL ORDER BY rowid`)
	if err != nil {
		return 0, fmt.Errorf("failed to list template foods: %w", err)
	}

	var tmpl []*models.Food
	for rows.Next() {
		food, err := scanFood(rows)
		if err != nil {
			rows.Close()
			return 0, fmt.Errorf("failed to scan template food: %w", err)
		}
		tmpl = append(tmpl, food)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("failed to iterate template foods: %w", err)
	}

	now := time.Now().Unix()
	for _, f := range tmpl {
		copied := *f
		copied.ID = ""
		copied.OwnerID = userID
		copied.CreatedAt = now
		if err := t.InsertFood(ctx, &copied); err != nil {
			return 0, err
		}
	}
	return len(tmpl), nil
}

// FoodUsage lists the user's dishes and uneaten plan days that reference a food.
func (t *sqlTx) FoodUsage(ctx context.Context, userID, foodID string) (*models.FoodUsage, error) {
	usage := &models.FoodUsage{}

	dishRows, err := t.q.QueryContext(ctx,
		`SELECT DISTINCT d.name FROM dish_ingredients i
		 JOIN dishes d ON d.id = i.dish_id
		 WHERE i.food_id = ? AND d.owner_id = ?
		 ORDER BY d.name`, foodID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query dish usage: %w", err)
	}
	for dishRows.Next() {
		var name string
		if err := dishRows.Scan(&name); err != nil {
			dishRows.Close()
			return nil, fmt.Errorf("failed to scan dish usage: %w", err)
		}
		usage.Dishes = append(usage.Dishes, name)
	}
	dishRows.Close()
	if err := dishRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate dish usage: %w", err)
	}

	planRows, err := t.q.QueryContext(ctx,
		`SELECT DISTINCT weekday, weekday_rank FROM meal_plan
		 WHERE food_id = ? AND user_id = ? AND eaten = 0
		 ORDER BY weekday_rank`, foodID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query plan usage: %w", err)
	}
	defer planRows.Close()
	for planRows.Next() {
		var name string
		var rank int
		if err := planRows.Scan(&name, &rank); err != nil {
			return nil, fmt.Errorf("failed to scan plan usage: %w", err)
		}
		wd, err := models.ParseWeekday(name)
		if err != nil {
			return nil, fmt.Errorf("corrupt weekday column: %w", err)
		}
		usage.PlanDays = append(usage.PlanDays, wd)
	}
	if err := planRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate plan usage: %w", err)
	}

	return usage, nil
}
