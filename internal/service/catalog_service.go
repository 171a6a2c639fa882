package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/pantryledger/pantry/internal/reconcile"
	"github.com/pantryledger/pantry/pkg/api"
)

// CatalogService implements the CatalogService RPC interface.
type CatalogService struct {
	handler
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(engine *reconcile.Engine, logger *slog.Logger) *CatalogService {
	return &CatalogService{handler: newHandler(engine, logger)}
}

func foodInput(f api.FoodFields) reconcile.FoodInput {
	return reconcile.FoodInput{
		Name:            f.Name,
		Category:        f.Category,
		CaloriesPerUnit: f.CaloriesPerUnit,
		Unit:            f.Unit,
		ReferencePrice:  f.ReferencePrice,
		ShelfLifeDays:   f.ShelfLifeDays,
	}
}

func (s *CatalogService) ListFoods(ctx context.Context, req *connect.Request[api.ListFoodsRequest]) (*connect.Response[api.ListFoodsResponse], error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}

	foods, err := s.engine.ListFoods(ctx, userID)
	if err != nil {
		return nil, s.fail("ListFoods", userID, err)
	}

	resp := &api.ListFoodsResponse{Foods: make([]*api.Food, len(foods))}
	for i, f := range foods {
		resp.Foods[i] = toAPIFood(f)
	}
	return connect.NewResponse(resp), nil
}

func (s *CatalogService) CreateFood(ctx context.Context, req *connect.Request[api.CreateFoodRequest]) (*connect.Response[api.CreateFoodResponse], error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}

	food, err := s.engine.CreateFood(ctx, userID, foodInput(req.Msg.Food))
	if err != nil {
		return nil, s.fail("CreateFood", userID, err)
	}

	s.logger.Info("Food created", "user_id", userID, "food_id", food.ID, "name", food.Name)
	return connect.NewResponse(&api.CreateFoodResponse{Food: toAPIFood(food)}), nil
}

func (s *CatalogService) UpdateFood(ctx context.Context, req *connect.Request[api.UpdateFoodRequest]) (*connect.Response[api.UpdateFoodResponse], error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}

	food, err := s.engine.UpdateFood(ctx, userID, req.Msg.FoodID, foodInput(req.Msg.Food))
	if err != nil {
		return nil, s.fail("UpdateFood", userID, err)
	}
	return connect.NewResponse(&api.UpdateFoodResponse{Food: toAPIFood(food)}), nil
}

// DeleteFood removes a food along with its batches, plan entries and dish
// ingredients. Callers check usage first with CheckFoodUsage.
func (s *CatalogService) DeleteFood(ctx context.Context, req *connect.Request[api.DeleteFoodRequest]) (*connect.Response[api.DeleteFoodResponse], error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.engine.DeleteFood(ctx, userID, req.Msg.FoodID); err != nil {
		return nil, s.fail("DeleteFood", userID, err)
	}

	s.logger.Info("Food deleted", "user_id", userID, "food_id", req.Msg.FoodID)
	return connect.NewResponse(&api.DeleteFoodResponse{}), nil
}

func (s *CatalogService) CheckFoodUsage(ctx context.Context, req *connect.Request[api.CheckFoodUsageRequest]) (*connect.Response[api.CheckFoodUsageResponse], error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}

	usage, err := s.engine.CheckFoodUsage(ctx, userID, req.Msg.FoodID)
	if err != nil {
		return nil, s.fail("CheckFoodUsage", userID, err)
	}

	resp := &api.CheckFoodUsageResponse{
		InUse:    len(usage.Dishes) > 0 || len(usage.PlanDays) > 0,
		Dishes:   usage.Dishes,
		PlanDays: make([]string, len(usage.PlanDays)),
	}
	for i, wd := range usage.PlanDays {
		resp.PlanDays[i] = wd.String()
	}
	return connect.NewResponse(resp), nil
}

// ListDishes returns the user's dishes and the shared templates.
func (s *CatalogService) ListDishes(ctx context.Context, req *connect.Request[api.ListDishesRequest]) (*connect.Response[api.ListDishesResponse], error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}

	dishes, err := s.engine.ListDishes(ctx, userID)
	if err != nil {
		return nil, s.fail("ListDishes", userID, err)
	}

	resp := &api.ListDishesResponse{Dishes: make([]*api.Dish, len(dishes))}
	for i, d := range dishes {
		resp.Dishes[i] = toAPIDish(d)
	}
	return connect.NewResponse(resp), nil
}

func (s *CatalogService) CreateDish(ctx context.Context, req *connect.Request[api.CreateDishRequest]) (*connect.Response[api.CreateDishResponse], error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}

	ingredients := make([]reconcile.IngredientInput, 0, len(req.Msg.Ingredients))
	for _, ing := range req.Msg.Ingredients {
		if ing == nil {
			continue
		}
		ingredients = append(ingredients, reconcile.IngredientInput{FoodID: ing.FoodID, Quantity: ing.Quantity})
	}

	dish, err := s.engine.CreateDish(ctx, userID, req.Msg.Name, req.Msg.Description, ingredients)
	if err != nil {
		return nil, s.fail("CreateDish", userID, err)
	}
	return connect.NewResponse(&api.CreateDishResponse{Dish: toAPIDish(dish)}), nil
}

// SuggestDishes ranks visible dishes by the share of ingredients in stock.
func (s *CatalogService) SuggestDishes(ctx context.Context, req *connect.Request[api.SuggestDishesRequest]) (*connect.Response[api.SuggestDishesResponse], error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}

	matches, err := s.engine.SuggestDishes(ctx, userID)
	if err != nil {
		return nil, s.fail("SuggestDishes", userID, err)
	}

	resp := &api.SuggestDishesResponse{Matches: make([]*api.DishMatch, len(matches))}
	for i, m := range matches {
		resp.Matches[i] = toAPIDishMatch(m)
	}
	return connect.NewResponse(resp), nil
}
