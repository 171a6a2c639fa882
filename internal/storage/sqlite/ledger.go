package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pantryledger/pantry/internal/models"
)

// AppendConsumption writes one ledger row. The table rejects updates and
// deletes at the database level.
func (t *sqlTx) AppendConsumption(ctx context.Context, entry *models.ConsumptionLogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt == 0 {
		entry.CreatedAt = time.Now().Unix()
	}

	_, err := t.q.ExecContext(ctx,
		`INSERT INTO consumption_log (id, user_id, food_id, name, quantity, calories, consumed_on, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.UserID, entry.FoodID, entry.Name, entry.Quantity, entry.Calories,
		models.FormatDate(entry.ConsumedOn), entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append consumption: %w", err)
	}
	return nil
}

// ListConsumption returns the user's ledger from since onwards.
func (t *sqlTx) ListConsumption(ctx context.Context, userID string, since time.Time) ([]*models.ConsumptionLogEntry, error) {
	rows, err := t.q.QueryContext(ctx,
		`SELECT id, user_id, food_id, name, quantity, calories, consumed_on, created_at
		 FROM consumption_log
		 WHERE user_id = ? AND consumed_on >= ?
		 ORDER BY consumed_on, rowid`, userID, models.FormatDate(since))
	if err != nil {
		return nil, fmt.Errorf("failed to list consumption: %w", err)
	}
	defer rows.Close()

	var entries []*models.ConsumptionLogEntry
	for rows.Next() {
		e := &models.ConsumptionLogEntry{}
		var consumed string
		if err := rows.Scan(&e.ID, &e.UserID, &e.FoodID, &e.Name, &e.Quantity, &e.Calories,
			&consumed, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan consumption: %w", err)
		}
		if e.ConsumedOn, err = parseDay(consumed); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate consumption: %w", err)
	}
	return entries, nil
}
