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

const cartColumns = `id, user_id, food_id, name, quantity, unit_price, total_price, purchased, purchased_on, created_at`

func scanCartLine(row rowScanner) (*models.ShoppingCartLine, error) {
	l := &models.ShoppingCartLine{}
	var unit, total string
	var purchasedOn sql.NullString
	if err := row.Scan(&l.ID, &l.UserID, &l.FoodID, &l.Name, &l.Quantity,
		&unit, &total, &l.Purchased, &purchasedOn, &l.CreatedAt); err != nil {
		return nil, err
	}
	var err error
	if l.UnitPrice, err = decimal.NewFromString(unit); err != nil {
		return nil, fmt.Errorf("corrupt unit price for line %s: %w", l.ID, err)
	}
	if l.TotalPrice, err = decimal.NewFromString(total); err != nil {
		return nil, fmt.Errorf("corrupt total price for line %s: %w", l.ID, err)
	}
	if purchasedOn.Valid {
		day, err := parseDay(purchasedOn.String)
		if err != nil {
			return nil, err
		}
		l.PurchasedOn = &day
	}
	return l, nil
}

func (t *sqlTx) queryCartLines(ctx context.Context, query string, args ...any) ([]*models.ShoppingCartLine, error) {
	rows, err := t.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart lines: %w", err)
	}
	defer rows.Close()

	var lines []*models.ShoppingCartLine
	for rows.Next() {
		l, err := scanCartLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cart lines: %w", err)
	}
	return lines, nil
}

// InsertCartLine persists a new cart line, generating its ID.
func (t *sqlTx) InsertCartLine(ctx context.Context, line *models.ShoppingCartLine) error {
	if line.ID == "" {
		line.ID = uuid.New().String()
	}
	if line.CreatedAt == 0 {
		line.CreatedAt = time.Now().Unix()
	}

	_, err := t.q.ExecContext(ctx,
		`INSERT INTO shopping_cart (`+cartColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		line.ID, line.UserID, line.FoodID, line.Name, line.Quantity,
		line.UnitPrice.String(), line.TotalPrice.String(), line.Purchased, nil, line.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert cart line: %w", err)
	}
	return nil
}

// GetCartLine retrieves a cart line by ID.
func (t *sqlTx) GetCartLine(ctx context.Context, id string) (*models.ShoppingCartLine, error) {
	l, err := scanCartLine(t.q.QueryRowContext(ctx,
		`SELECT `+cartColumns+` FROM shopping_cart WHERE id = ?`, id))
	if isNoRows(err) {
		return nil, notFound("cart line", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart line: %w", err)
	}
	return l, nil
}

// UpdateCartLine overwrites quantity and prices.
func (t *sqlTx) UpdateCartLine(ctx context.Context, line *models.ShoppingCartLine) error {
	res, err := t.q.ExecContext(ctx,
		`UPDATE shopping_cart SET quantity = ?, unit_price = ?, total_price = ? WHERE id = ?`,
		line.Quantity, line.UnitPrice.String(), line.TotalPrice.String(), line.ID)
	if err != nil {
		return fmt.Errorf("failed to update cart line: %w", err)
	}
	return affectOne(res, "cart line", line.ID)
}

// DeleteCartLine removes a cart line.
func (t *sqlTx) DeleteCartLine(ctx context.Context, id string) error {
	res, err := t.q.ExecContext(ctx, `DELETE FROM shopping_cart WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete cart line: %w", err)
	}
	return affectOne(res, "cart line", id)
}

// MarkCartLinePurchased flags the line purchased and stamps the day.
func (t *sqlTx) MarkCartLinePurchased(ctx context.Context, id string, day time.Time) error {
	res, err := t.q.ExecContext(ctx,
		`UPDATE shopping_cart SET purchased = 1, purchased_on = ? WHERE id = ? AND purchased = 0`,
		models.FormatDate(day), id)
	if err != nil {
		return fmt.Errorf("failed to mark cart line purchased: %w", err)
	}
	return affectOne(res, "pending cart line", id)
}

// ListPendingCart returns unpurchased lines, newest first.
func (t *sqlTx) ListPendingCart(ctx context.Context, userID string) ([]*models.ShoppingCartLine, error) {
	return t.queryCartLines(ctx,
		`SELECT `+cartColumns+` FROM shopping_cart
		 WHERE user_id = ? AND purchased = 0
		 ORDER BY created_at DESC, rowid DESC`, userID)
}

// ListPurchasedSince returns lines purchased on or after since.
func (t *sqlTx) ListPurchasedSince(ctx context.Context, userID string, since time.Time) ([]*models.ShoppingCartLine, error) {
	return t.queryCartLines(ctx,
		`SELECT `+cartColumns+` FROM shopping_cart
		 WHERE user_id = ? AND purchased = 1 AND purchased_on >= ?
		 ORDER BY purchased_on, rowid`, userID, models.FormatDate(since))
}

// PendingCartByName sums unpurchased quantity per snapshot name.
func (t *sqlTx) PendingCartByName(ctx context.Context, userID string) (map[string]float64, error) {
	rows, err := t.q.QueryContext(ctx,
		`SELECT name, SUM(quantity) FROM shopping_cart
		 WHERE user_id = ? AND purchased = 0
		 GROUP BY name`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum cart: %w", err)
	}
	defer rows.Close()

	inCart := make(map[string]float64)
	for rows.Next() {
		var name string
		var qty float64
		if err := rows.Scan(&name, &qty); err != nil {
			return nil, fmt.Errorf("failed to scan cart sum: %w", err)
		}
		inCart[name] = qty
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cart sums: %w", err)
	}
	return inCart, nil
}
