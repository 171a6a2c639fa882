package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pantryledger/pantry/internal/models"
	"github.com/pantryledger/pantry/internal/storage"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := models.ParseDate(s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

func TestSQLiteStore(t *testing.T) {
	// Create temp directory for test database
	tempDir, err := os.MkdirTemp("", "pantry-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	user := models.NewUser("carol@example.com", "Carol", "hash")
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	var eggs *models.Food
	t.Run("CreateUser copies the template catalog", func(t *testing.T) {
		err := store.Read(ctx, func(tx storage.Tx) error {
			foods, err := tx.ListFoods(ctx, user.ID)
			if err != nil {
				return err
			}
			if len(foods) != 6 {
				t.Errorf("Expected 6 copied foods, got %d", len(foods))
			}
			for _, f := range foods {
				if f.OwnerID != user.ID {
					t.Errorf("Food %s: expected owner %s, got %q", f.Name, user.ID, f.OwnerID)
				}
			}
			eggs, err = tx.FindFoodByName(ctx, user.ID, "Eggs")
			return err
		})
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		if eggs == nil || eggs.ShelfLifeDays != 21 {
			t.Fatalf("Expected copied Eggs with 21 day shelf life, got %+v", eggs)
		}
	})

	t.Run("User lookups return nil for unknown accounts", func(t *testing.T) {
		got, err := store.GetUserByEmail(ctx, "carol@example.com")
		if err != nil || got == nil || got.ID != user.ID {
			t.Fatalf("GetUserByEmail: expected %s, got %+v (%v)", user.ID, got, err)
		}
		missing, err := store.GetUserByID(ctx, "nobody")
		if err != nil || missing != nil {
			t.Errorf("GetUserByID(nobody): expected nil, nil, got %+v, %v", missing, err)
		}
	})

	t.Run("GetFood wraps ErrNotFound", func(t *testing.T) {
		err := store.Read(ctx, func(tx storage.Tx) error {
			_, err := tx.GetFood(ctx, "missing")
			return err
		})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Batches deplete oldest first and never go negative", func(t *testing.T) {
		err := store.WithTx(ctx, func(tx storage.Tx) error {
			for _, b := range []*models.InventoryBatch{
				{UserID: user.ID, FoodID: eggs.ID, Quantity: 4, AcquiredOn: day(t, "2024-03-05")},
				{UserID: user.ID, FoodID: eggs.ID, Quantity: 6, AcquiredOn: day(t, "2024-03-01")},
			} {
				if err := tx.InsertBatch(ctx, b); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			t.Fatalf("InsertBatch failed: %v", err)
		}

		err = store.WithTx(ctx, func(tx storage.Tx) error {
			fifo, err := tx.ActiveBatchesFIFO(ctx, user.ID, eggs.ID)
			if err != nil {
				return err
			}
			if len(fifo) != 2 || models.FormatDate(fifo[0].AcquiredOn) != "2024-03-01" {
				t.Fatalf("Expected 2024-03-01 batch first, got %+v", fifo)
			}
			if err := tx.DecrementBatch(ctx, fifo[0].ID, 6); err != nil {
				return err
			}
			if err := tx.DecrementBatch(ctx, fifo[1].ID, 5); err == nil {
				t.Error("Expected decrement below zero to fail")
			}
			return nil
		})
		if err != nil {
			t.Fatalf("WithTx failed: %v", err)
		}

		err = store.Read(ctx, func(tx storage.Tx) error {
			views, err := tx.ListActiveBatches(ctx, user.ID)
			if err != nil {
				return err
			}
			if len(views) != 1 {
				t.Fatalf("Expected 1 active batch, got %d", len(views))
			}
			if got := models.FormatDate(views[0].ExpiresOn); got != "2024-03-26" {
				t.Errorf("Expected expiry 2024-03-26, got %s", got)
			}

			emptied, err := tx.FindBatch(ctx, user.ID, eggs.ID, day(t, "2024-03-01"))
			if err != nil {
				return err
			}
			if emptied == nil || emptied.Quantity != 0 {
				t.Errorf("Expected emptied batch to remain at zero, got %+v", emptied)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
	})

	t.Run("WithTx rolls back on error", func(t *testing.T) {
		boom := errors.New("boom")
		var id string
		err := store.WithTx(ctx, func(tx storage.Tx) error {
			b := &models.InventoryBatch{UserID: user.ID, FoodID: eggs.ID, Quantity: 1, AcquiredOn: day(t, "2024-04-01")}
			if err := tx.InsertBatch(ctx, b); err != nil {
				return err
			}
			id = b.ID
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("Expected boom, got %v", err)
		}

		err = store.Read(ctx, func(tx storage.Tx) error {
			_, err := tx.GetBatch(ctx, id)
			return err
		})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected rolled back batch to be gone, got %v", err)
		}
	})

	t.Run("Read sees one snapshot across queries", func(t *testing.T) {
		err := store.Read(ctx, func(tx storage.Tx) error {
			before, err := tx.OnHandByName(ctx, user.ID)
			if err != nil {
				return err
			}

			// A purchase commits between the two queries.
			if err := store.WithTx(ctx, func(w storage.Tx) error {
				return w.InsertBatch(ctx, &models.InventoryBatch{
					UserID: user.ID, FoodID: eggs.ID, Quantity: 12, AcquiredOn: day(t, "2024-03-20"),
				})
			}); err != nil {
				t.Fatalf("concurrent WithTx failed: %v", err)
			}

			after, err := tx.OnHandByName(ctx, user.ID)
			if err != nil {
				return err
			}
			if after["Eggs"] != before["Eggs"] {
				t.Errorf("Expected %v eggs inside the read, got %v", before["Eggs"], after["Eggs"])
			}
			return nil
		})
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}

		err = store.Read(ctx, func(tx storage.Tx) error {
			batch, err := tx.FindBatch(ctx, user.ID, eggs.ID, day(t, "2024-03-20"))
			if err != nil {
				return err
			}
			if batch == nil || batch.Quantity != 12 {
				t.Errorf("Expected the committed batch in a later read, got %+v", batch)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
	})

	t.Run("EmptyBatch zeroes exactly once", func(t *testing.T) {
		err := store.WithTx(ctx, func(tx storage.Tx) error {
			batch, err := tx.FindBatch(ctx, user.ID, eggs.ID, day(t, "2024-03-20"))
			if err != nil {
				return err
			}
			if err := tx.EmptyBatch(ctx, batch.ID); err != nil {
				return err
			}
			if err := tx.EmptyBatch(ctx, batch.ID); !errors.Is(err, storage.ErrNotFound) {
				t.Errorf("Expected emptying an empty batch to find nothing, got %v", err)
			}
			got, err := tx.GetBatch(ctx, batch.ID)
			if err != nil {
				return err
			}
			if got.Quantity != 0 {
				t.Errorf("Expected quantity 0, got %v", got.Quantity)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("WithTx failed: %v", err)
		}
	})

	t.Run("Consumption log is append-only", func(t *testing.T) {
		entry := &models.ConsumptionLogEntry{
			UserID: user.ID, FoodID: eggs.ID, Name: "Eggs",
			Quantity: 2, Calories: 140, ConsumedOn: day(t, "2024-03-06"),
		}
		if err := store.WithTx(ctx, func(tx storage.Tx) error {
			return tx.AppendConsumption(ctx, entry)
		}); err != nil {
			t.Fatalf("AppendConsumption failed: %v", err)
		}

		if _, err := store.db.ExecContext(ctx, `UPDATE consumption_log SET quantity = 0 WHERE id = ?`, entry.ID); err == nil {
			t.Error("Expected update of consumption log to be rejected")
		}
		if _, err := store.db.ExecContext(ctx, `DELETE FROM consumption_log WHERE id = ?`, entry.ID); err == nil {
			t.Error("Expected delete from consumption log to be rejected")
		}

		err := store.Read(ctx, func(tx storage.Tx) error {
			entries, err := tx.ListConsumption(ctx, user.ID, day(t, "2024-03-06"))
			if err != nil {
				return err
			}
			if len(entries) != 1 || entries[0].Calories != 140 {
				t.Errorf("Expected the one entry back, got %+v", entries)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
	})

	t.Run("Cart lines keep exact prices", func(t *testing.T) {
		unit := decimal.RequireFromString("0.10")
		line := &models.ShoppingCartLine{
			UserID: user.ID, FoodID: eggs.ID, Name: "Eggs", Quantity: 3,
			UnitPrice: unit, TotalPrice: models.LineTotal(3, unit),
		}
		err := store.WithTx(ctx, func(tx storage.Tx) error {
			if err := tx.InsertCartLine(ctx, line); err != nil {
				return err
			}
			if err := tx.MarkCartLinePurchased(ctx, line.ID, day(t, "2024-03-07")); err != nil {
				return err
			}
			if err := tx.MarkCartLinePurchased(ctx, line.ID, day(t, "2024-03-07")); !errors.Is(err, storage.ErrNotFound) {
				t.Errorf("Expected second purchase to find no pending line, got %v", err)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("WithTx failed: %v", err)
		}

		err = store.Read(ctx, func(tx storage.Tx) error {
			got, err := tx.GetCartLine(ctx, line.ID)
			if err != nil {
				return err
			}
			if !got.TotalPrice.Equal(decimal.RequireFromString("0.3")) {
				t.Errorf("Expected total 0.3, got %s", got.TotalPrice)
			}
			if !got.Purchased || got.PurchasedOn == nil || models.FormatDate(*got.PurchasedOn) != "2024-03-07" {
				t.Errorf("Expected purchase on 2024-03-07, got %+v", got)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
	})

	t.Run("Plan lists Monday first", func(t *testing.T) {
		err := store.WithTx(ctx, func(tx storage.Tx) error {
			for _, wd := range []time.Weekday{time.Sunday, time.Wednesday, time.Monday} {
				if err := tx.InsertPlanEntry(ctx, &models.MealPlanEntry{
					UserID: user.ID, FoodID: eggs.ID, Quantity: 1, Weekday: wd,
				}); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			t.Fatalf("InsertPlanEntry failed: %v", err)
		}

		err = store.Read(ctx, func(tx storage.Tx) error {
			views, err := tx.ListPlan(ctx, user.ID)
			if err != nil {
				return err
			}
			want := []time.Weekday{time.Monday, time.Wednesday, time.Sunday}
			if len(views) != len(want) {
				t.Fatalf("Expected %d entries, got %d", len(want), len(views))
			}
			for i, v := range views {
				if v.Weekday != want[i] {
					t.Errorf("Entry %d: expected %s, got %s", i, want[i], v.Weekday)
				}
			}

			demand, err := tx.PlannedDemand(ctx, user.ID)
			if err != nil {
				return err
			}
			if len(demand) != 1 || demand[0].Quantity != 3 {
				t.Errorf("Expected 3 eggs of demand, got %+v", demand)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
	})

	t.Run("Template dishes are visible with template ingredients", func(t *testing.T) {
		err := store.Read(ctx, func(tx storage.Tx) error {
			dishes, err := tx.ListVisibleDishes(ctx, user.ID)
			if err != nil {
				return err
			}
			if len(dishes) != 2 {
				t.Fatalf("Expected 2 template dishes, got %d", len(dishes))
			}
			for _, d := range dishes {
				if d.OwnerID != "" {
					t.Errorf("Dish %s: expected template", d.Name)
				}
				for _, ing := range d.Ingredients {
					if !ing.FromTemplate {
						t.Errorf("Dish %s: ingredient %s should come from the template catalog", d.Name, ing.FoodName)
					}
				}
			}
			return nil
		})
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
	})
}
