package reconcile

import (
	"context"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pantryledger/pantry/internal/calculator"
	"github.com/pantryledger/pantry/internal/models"
	"github.com/pantryledger/pantry/internal/storage"
)

// FoodInput holds the editable fields of a catalog food.
type FoodInput struct {
	Name            string
	Category        string
	CaloriesPerUnit float64
	Unit            string
	ReferencePrice  *decimal.Decimal
	ShelfLifeDays   int
}

func (in *FoodInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Unit = strings.TrimSpace(in.Unit)
	if in.Name == "" {
		return invalid("food name is required")
	}
	if in.Unit == "" {
		return invalid("unit is required")
	}
	if in.CaloriesPerUnit < 0 || math.IsNaN(in.CaloriesPerUnit) {
		return invalid("calories must not be negative")
	}
	if in.ShelfLifeDays < 0 {
		return invalid("shelf life must not be negative")
	}
	if in.ReferencePrice != nil && in.ReferencePrice.IsNegative() {
		return invalid("reference price must not be negative")
	}
	return nil
}

// ListFoods returns the user's catalog ordered by name.
func (e *Engine) ListFoods(ctx context.Context, userID string) ([]*models.Food, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	var foods []*models.Food
	err := e.read(ctx, func(tx storage.Tx) error {
		var err error
		foods, err = tx.ListFoods(ctx, userID)
		return err
	})
	return foods, err
}

// CreateFood adds a food to the user's catalog. Names are unique per user.
func (e *Engine) CreateFood(ctx context.Context, userID string, in FoodInput) (*models.Food, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	food := &models.Food{
		OwnerID:         userID,
		Name:            in.Name,
		Category:        in.Category,
		CaloriesPerUnit: in.CaloriesPerUnit,
		Unit:            in.Unit,
		ReferencePrice:  in.ReferencePrice,
		ShelfLifeDays:   in.ShelfLifeDays,
	}
	err := e.write(ctx, userID, func(tx storage.Tx) error {
		existing, err := tx.FindFoodByName(ctx, userID, in.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			return conflict("food", existing.ID, "name "+in.Name+" already in use")
		}
		return tx.InsertFood(ctx, food)
	})
	if err != nil {
		return nil, err
	}
	return food, nil
}

// UpdateFood overwrites a food's editable fields. Renaming onto another
// food's name is a Conflict. Cart lines and ledger entries keep the name
// they were written with.
func (e *Engine) UpdateFood(ctx context.Context, userID, foodID string, in FoodInput) (*models.Food, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if err := requireID("food", foodID); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	var food *models.Food
	err := e.write(ctx, userID, func(tx storage.Tx) error {
		var err error
		food, err = ownedFood(ctx, tx, userID, foodID)
		if err != nil {
			return err
		}
		if in.Name != food.Name {
			clash, err := tx.FindFoodByName(ctx, userID, in.Name)
			if err != nil {
				return err
			}
			if clash != nil {
				return conflict("food", foodID, "name "+in.Name+" already in use")
			}
		}

		food.Name = in.Name
		food.Category = in.Category
		food.CaloriesPerUnit = in.CaloriesPerUnit
		food.Unit = in.Unit
		food.ReferencePrice = in.ReferencePrice
		food.ShelfLifeDays = in.ShelfLifeDays
		return tx.UpdateFood(ctx, food)
	})
	if err != nil {
		return nil, err
	}
	return food, nil
}

// DeleteFood removes a food together with its batches, plan entries and
// dish ingredients. Ledger entries and cart lines survive with their
// snapshotted names.
func (e *Engine) DeleteFood(ctx context.Context, userID, foodID string) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	if err := requireID("food", foodID); err != nil {
		return err
	}
	return e.write(ctx, userID, func(tx storage.Tx) error {
		if _, err := ownedFood(ctx, tx, userID, foodID); err != nil {
			return err
		}
		return tx.DeleteFood(ctx, foodID)
	})
}

// CheckFoodUsage reports the dishes and uneaten plan days that would lose
// the food if it were deleted.
func (e *Engine) CheckFoodUsage(ctx context.Context, userID, foodID string) (*models.FoodUsage, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if err := requireID("food", foodID); err != nil {
		return nil, err
	}
	var usage *models.FoodUsage
	err := e.read(ctx, func(tx storage.Tx) error {
		if _, err := ownedFood(ctx, tx, userID, foodID); err != nil {
			return err
		}
		var err error
		usage, err = tx.FoodUsage(ctx, userID, foodID)
		return err
	})
	return usage, err
}

// IngredientInput is one line of a new dish.
type IngredientInput struct {
	FoodID   string
	Quantity float64
}

// CreateDish stores a dish built from the user's own foods.
func (e *Engine) CreateDish(ctx context.Context, userID, name, description string, ingredients []IngredientInput) (*models.Dish, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("dish name is required")
	}
	for i, ing := range ingredients {
		if err := requireID("food", ing.FoodID); err != nil {
			return nil, err
		}
		if err := requirePositive("ingredient quantity", ing.Quantity); err != nil {
			return nil, invalid("ingredient %d: quantity must be positive", i+1)
		}
	}

	dish := &models.Dish{
		OwnerID:     userID,
		Name:        name,
		Description: description,
	}
	err := e.write(ctx, userID, func(tx storage.Tx) error {
		for _, ing := range ingredients {
			food, err := ownedFood(ctx, tx, userID, ing.FoodID)
			if err != nil {
				return err
			}
			dish.Ingredients = append(dish.Ingredients, models.Ingredient{
				FoodID:   food.ID,
				FoodName: food.Name,
				Quantity: ing.Quantity,
			})
		}
		return tx.InsertDish(ctx, dish)
	})
	if err != nil {
		return nil, err
	}
	return dish, nil
}

// GetDish returns one of the user's dishes or a shared template.
func (e *Engine) GetDish(ctx context.Context, userID, dishID string) (*models.Dish, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if err := requireID("dish", dishID); err != nil {
		return nil, err
	}
	var dish *models.Dish
	err := e.read(ctx, func(tx storage.Tx) error {
		var err error
		dish, err = visibleDish(ctx, tx, userID, dishID)
		return err
	})
	return dish, err
}

// ListDishes returns the user's dishes and the shared templates.
func (e *Engine) ListDishes(ctx context.Context, userID string) ([]*models.Dish, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	var dishes []*models.Dish
	err := e.read(ctx, func(tx storage.Tx) error {
		var err error
		dishes, err = tx.ListVisibleDishes(ctx, userID)
		return err
	})
	return dishes, err
}

// SuggestDishes ranks visible dishes by the share of their ingredients the
// user has in stock. Dishes with nothing in stock are left out.
func (e *Engine) SuggestDishes(ctx context.Context, userID string) ([]calculator.DishMatch, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	var (
		dishes       []*models.Dish
		stockedIDs   map[string]bool
		stockedNames map[string]bool
	)
	err := e.read(ctx, func(tx storage.Tx) error {
		var err error
		if dishes, err = tx.ListVisibleDishes(ctx, userID); err != nil {
			return err
		}
		stockedIDs, stockedNames, err = tx.StockedFoods(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	candidates := make([]calculator.Dish, len(dishes))
	for i, d := range dishes {
		refs := make([]calculator.IngredientRef, len(d.Ingredients))
		for j, ing := range d.Ingredients {
			refs[j] = calculator.IngredientRef{
				FoodID:       ing.FoodID,
				Name:         ing.FoodName,
				FromTemplate: ing.FromTemplate,
			}
		}
		candidates[i] = calculator.Dish{
			ID:          d.ID,
			Name:        d.Name,
			Description: d.Description,
			Ingredients: refs,
		}
	}
	return calculator.MatchDishes(candidates, stockedIDs, stockedNames), nil
}
