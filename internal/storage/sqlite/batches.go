package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pantryledger/pantry/internal/models"
)

const batchColumns = `id, user_id, food_id, quantity, acquired_on, created_at`

func scanBatch(row rowScanner) (*models.InventoryBatch, error) {
	b := &models.InventoryBatch{}
	var acquired string
	if err := row.Scan(&b.ID, &b.UserID, &b.FoodID, &b.Quantity, &acquired, &b.CreatedAt); err != nil {
		return nil, err
	}
	day, err := parseDay(acquired)
	if err != nil {
		return nil, err
	}
	b.AcquiredOn = day
	return b, nil
}

// FindBatch looks up the batch for (user, food, day), including empty ones.
func (t *sqlTx) FindBatch(ctx context.Context, userID, foodID string, day time.Time) (*models.InventoryBatch, error) {
	b, err := scanBatch(t.q.QueryRowContext(ctx,
		`SELECT `+batchColumns+` FROM inventory_batches
		 WHERE user_id = ? AND food_id = ? AND acquired_on = ?`,
		userID, foodID, models.FormatDate(day)))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find batch: %w", err)
	}
	return b, nil
}

// GetBatch retrieves a batch by ID.
func (t *sqlTx) GetBatch(ctx context.Context, id string) (*models.InventoryBatch, error) {
	b, err := scanBatch(t.q.QueryRowContext(ctx,
		`SELECT `+batchColumns+` FROM inventory_batches WHERE id = ?`, id))
	if isNoRows(err) {
		return nil, notFound("batch", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get batch: %w", err)
	}
	return b, nil
}

// InsertBatch persists a new batch, generating its ID.
func (t *sqlTx) InsertBatch(ctx context.Context, batch *models.InventoryBatch) error {
	if batch.ID == "" {
		batch.ID = uuid.New().String()
	}
	if batch.CreatedAt == 0 {
		batch.CreatedAt = time.Now().Unix()
	}

	_, err := t.q.ExecContext(ctx,
		`INSERT INTO inventory_batches (`+batchColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		batch.ID, batch.UserID, batch.FoodID, batch.Quantity,
		models.FormatDate(batch.AcquiredOn), batch.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert batch: %w", err)
	}
	return nil
}

// AddToBatch increases a batch's quantity in place.
func (t *sqlTx) AddToBatch(ctx context.Context, id string, quantity float64) error {
	res, err := t.q.ExecContext(ctx,
		`UPDATE inventory_batches SET quantity = quantity + ? WHERE id = ?`, quantity, id)
	if err != nil {
		return fmt.Errorf("failed to add to batch: %w", err)
	}
	return affectOne(res, "batch", id)
}

// DecrementBatch subtracts amount, refusing to take a batch below zero.
func (t *sqlTx) DecrementBatch(ctx context.Context, id string, amount float64) error {
	res, err := t.q.ExecContext(ctx,
		`UPDATE inventory_batches SET quantity = quantity - ? WHERE id = ? AND quantity >= ?`,
		amount, id, amount)
	if err != nil {
		return fmt.Errorf("failed to decrement batch: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n != 1 {
		return fmt.Errorf("batch %s holds less than %g", id, amount)
	}
	return nil
}

// EmptyBatch zeroes a batch that a depletion has used up.
func (t *sqlTx) EmptyBatch(ctx context.Context, id string) error {
	res, err := t.q.ExecContext(ctx,
		`UPDATE inventory_batches SET quantity = 0 WHERE id = ? AND quantity > 0`, id)
	if err != nil {
		return fmt.Errorf("failed to empty batch: %w", err)
	}
	return affectOne(res, "non-empty batch", id)
}

// DeleteBatch removes a batch row.
func (t *sqlTx) DeleteBatch(ctx context.Context, id string) error {
	res, err := t.q.ExecContext(ctx, `DELETE FROM inventory_batches WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete batch: %w", err)
	}
	return affectOne(res, "batch", id)
}

// ListActiveBatches returns non-empty batches with their food details,
// most recently acquired first.
func (t *sqlTx) ListActiveBatches(ctx context.Context, userID string) ([]*models.BatchView, error) {
	rows, err := t.q.QueryContext(ctx,
		`SELECT b.id, b.user_id, b.food_id, b.quantity, b.acquired_on, b.created_at,
		        f.name, f.unit, f.calories, f.shelf_life_days
		 FROM inventory_batches b
		 JOIN foods f ON f.id = b.food_id
		 WHERE b.user_id = ? AND b.quantity > 0
		 ORDER BY b.acquired_on DESC, b.rowid DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	defer rows.Close()

	var views []*models.BatchView
	for rows.Next() {
		v := &models.BatchView{}
		var acquired string
		if err := rows.Scan(&v.ID, &v.UserID, &v.FoodID, &v.Quantity, &acquired, &v.CreatedAt,
			&v.FoodName, &v.Unit, &v.CaloriesPerUnit, &v.ShelfLifeDays); err != nil {
			return nil, fmt.Errorf("failed to scan batch: %w", err)
		}
		if v.AcquiredOn, err = parseDay(acquired); err != nil {
			return nil, err
		}
		v.ExpiresOn = v.AcquiredOn.AddDate(0, 0, v.ShelfLifeDays)
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate batches: %w", err)
	}
	return views, nil
}

// ActiveBatchesFIFO returns non-empty batches of one food in depletion order.
func (t *sqlTx) ActiveBatchesFIFO(ctx context.Context, userID, foodID string) ([]*models.InventoryBatch, error) {
	rows, err := t.q.QueryContext(ctx,
		`SELECT `+batchColumns+` FROM inventory_batches
		 WHERE user_id = ? AND food_id = ? AND quantity > 0
		 ORDER BY acquired_on ASC, rowid ASC`, userID, foodID)
	if err != nil {
		return nil, fmt.Errorf("failed to list batches for depletion: %w", err)
	}
	defer rows.Close()

	var batches []*models.InventoryBatch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan batch: %w", err)
		}
		batches = append(batches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate batches: %w", err)
	}
	return batches, nil
}

// OnHandByName sums active stock per current food name.
func (t *sqlTx) OnHandByName(ctx context.Context, userID string) (map[string]float64, error) {
	rows, err := t.q.QueryContext(ctx,
		`SELECT f.name, SUM(b.quantity)
		 FROM inventory_batches b
		 JOIN foods f ON f.id = b.food_id
		 WHERE b.user_id = ? AND b.quantity > 0
		 GROUP BY f.name`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum stock: %w", err)
	}
	defer rows.Close()

	onHand := make(map[string]float64)
	for rows.Next() {
		var name string
		var qty float64
		if err := rows.Scan(&name, &qty); err != nil {
			return nil, fmt.Errorf("failed to scan stock sum: %w", err)
		}
		onHand[name] = qty
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stock sums: %w", err)
	}
	return onHand, nil
}

// StockedFoods returns the IDs and names of foods the user has in stock.
func (t *sqlTx) StockedFoods(ctx context.Context, userID string) (map[string]bool, map[string]bool, error) {
	rows, err := t.q.QueryContext(ctx,
		`SELECT DISTINCT f.id, f.name
		 FROM inventory_batches b
		 JOIN foods f ON f.id = b.food_id
		 WHERE b.user_id = ? AND b.quantity > 0`, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list stocked foods: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]bool)
	names := make(map[string]bool)
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, nil, fmt.Errorf("failed to scan stocked food: %w", err)
		}
		ids[id] = true
		names[name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate stocked foods: %w", err)
	}
	return ids, names, nil
}
