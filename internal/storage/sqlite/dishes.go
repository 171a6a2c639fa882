package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pantryledger/pantry/internal/models"
)

// InsertDish persists a dish and its ingredients.
func (t *sqlTx) InsertDish(ctx context.Context, dish *models.Dish) error {
	if dish.ID == "" {
		dish.ID = uuid.New().String()
	}
	if dish.CreatedAt == 0 {
		dish.CreatedAt = time.Now().Unix()
	}

	_, err := t.q.ExecContext(ctx,
		`INSERT INTO dishes (id, owner_id, name, description, created_at) VALUES (?, ?, ?, ?, ?)`,
		dish.ID, nullable(dish.OwnerID), dish.Name, dish.Description, dish.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert dish: %w", err)
	}

	for i, ing := range dish.Ingredients {
		_, err = t.q.ExecContext(ctx,
			`INSERT INTO dish_ingredients (dish_id, position, food_id, quantity) VALUES (?, ?, ?, ?)`,
			dish.ID, i, ing.FoodID, ing.Quantity)
		if err != nil {
			return fmt.Errorf("failed to insert ingredient: %w", err)
		}
	}
	return nil
}

// GetDish retrieves a dish with its ingredients.
func (t *sqlTx) GetDish(ctx context.Context, id string) (*models.Dish, error) {
	dish := &models.Dish{}
	var owner sql.NullString
	err := t.q.QueryRowContext(ctx,
		`SELECT id, owner_id, name, description, created_at FROM dishes WHERE id = ?`, id,
	).Scan(&dish.ID, &owner, &dish.Name, &dish.Description, &dish.CreatedAt)
	if isNoRows(err) {
		return nil, notFound("dish", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get dish: %w", err)
	}
	dish.OwnerID = owner.String

	byDish, err := t.ingredients(ctx, `WHERE i.dish_id = ?`, id)
	if err != nil {
		return nil, err
	}
	dish.Ingredients = byDish[id]
	return dish, nil
}

// ListVisibleDishes returns the user's dishes and all templates.
func (t *sqlTx) ListVisibleDishes(ctx context.Context, userID string) ([]*models.Dish, error) {
	rows, err := t.q.QueryContext(ctx,
		`SELECT id, owner_id, name, description, created_at FROM dishes
		 WHERE owner_id = ? OR owner_id IS NULL
		 ORDER BY rowid`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list dishes: %w", err)
	}

	var dishes []*models.Dish
	for rows.Next() {
		dish := &models.Dish{}
		var owner sql.NullString
		if err := rows.Scan(&dish.ID, &owner, &dish.Name, &dish.Description, &dish.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan dish: %w", err)
		}
		dish.OwnerID = owner.String
		dishes = append(dishes, dish)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate dishes: %w", err)
	}

	byDish, err := t.ingredients(ctx,
		`JOIN dishes d ON d.id = i.dish_id WHERE d.owner_id = ? OR d.owner_id IS NULL`, userID)
	if err != nil {
		return nil, err
	}
	for _, dish := range dishes {
		dish.Ingredients = byDish[dish.ID]
	}
	return dishes, nil
}

// ingredients loads ingredient rows matching where, grouped by dish.
func (t *sqlTx) ingredients(ctx context.Context, where string, args ...any) (map[string][]models.Ingredient, error) {
	rows, err := t.q.QueryContext(ctx,
		`SELECT i.dish_id, i.food_id, f.name, f.owner_id IS NULL, i.quantity
		 FROM dish_ingredients i
		 JOIN foods f ON f.id = i.food_id `+where+`
		 ORDER BY i.dish_id, i.position`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	defer rows.Close()

	byDish := make(map[string][]models.Ingredient)
	for rows.Next() {
		var dishID string
		var ing models.Ingredient
		if err := rows.Scan(&dishID, &ing.FoodID, &ing.FoodName, &ing.FromTemplate, &ing.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan ingredient: %w", err)
		}
		byDish[dishID] = append(byDish[dishID], ing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ingredients: %w", err)
	}
	return byDish, nil
}
