package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/pantryledger/pantry/internal/models"
	"github.com/pantryledger/pantry/internal/reconcile"
	"github.com/pantryledger/pantry/pkg/api"
)

// MealPlanService implements the MealPlanService RPC interface.
type MealPlanService struct {
	handler
}

// NewMealPlanService creates a new meal plan service.
func NewMealPlanService(engine *reconcile.Engine, logger *slog.Logger) *MealPlanService {
	return &MealPlanService{handler: newHandler(engine, logger)}
}

// AddPlanEntry plans a single food, or every ingredient of a dish when
// DishID is set.
func (s *MealPlanService) AddPlanEntry(ctx context.Context, req *connect.Request[api.AddPlanEntryRequest]) (*connect.Response[api.AddPlanEntryResponse], error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.FoodID != "" && req.Msg.DishID != "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("set either foodId or dishId, not both"))
	}
	weekday, err := parseWeekday(req.Msg.Weekday)
	if err != nil {
		return nil, err
	}

	var entries []*models.MealPlanEntry
	if req.Msg.DishID != "" {
		entries, err = s.engine.AddDishToPlan(ctx, userID, req.Msg.DishID, weekday)
	} else {
		var entry *models.MealPlanEntry
		entry, err = s.engine.AddPlanEntry(ctx, userID, req.Msg.FoodID, req.Msg.Quantity, weekday)
		entries = []*models.MealPlanEntry{entry}
	}
	if err != nil {
		return nil, s.fail("AddPlanEntry", userID, err)
	}

	resp := &api.AddPlanEntryResponse{Entries: make([]*api.PlanEntry, len(entries))}
	for i, e := range entries {
		resp.Entries[i] = toAPIPlanEntry(e)
	}
	return connect.NewResponse(resp), nil
}

// ListPlan returns the week's plan, Monday first.
func (s *MealPlanService) ListPlan(ctx context.Context, req *connect.Request[api.ListPlanRequest]) (*connect.Response[api.ListPlanResponse], error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}

	views, err := s.engine.ListPlan(ctx, userID)
	if err != nil {
		return nil, s.fail("ListPlan", userID, err)
	}

	entries := make([]*api.PlanEntry, len(views))
	for i, v := range views {
		entries[i] = toAPIPlanView(v)
	}
	return connect.NewResponse(&api.ListPlanResponse{Entries: entries}), nil
}

// DeletePlanEntry removes one entry from the plan.
func (s *MealPlanService) DeletePlanEntry(ctx context.Context, req *connect.Request[api.DeletePlanEntryRequest]) (*connect.Response[api.DeletePlanEntryResponse], error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.engine.DeletePlanEntry(ctx, userID, req.Msg.EntryID); err != nil {
		return nil, s.fail("DeletePlanEntry", userID, err)
	}
	return connect.NewResponse(&api.DeletePlanEntryResponse{}), nil
}

// MarkEaten flips a plan entry to eaten (logging consumption and drawing
// stock oldest first) or clears the flag again.
func (s *MealPlanService) MarkEaten(ctx context.Context, req *connect.Request[api.MarkEatenRequest]) (*connect.Response[api.MarkEatenResponse], error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}

	day := s.engine.Today()
	if req.Msg.Eaten {
		if day, err = parseDay("date", req.Msg.Date, day); err != nil {
			return nil, err
		}
	}

	res, err := s.engine.MarkEaten(ctx, userID, req.Msg.EntryID, req.Msg.Eaten, day)
	if err != nil {
		return nil, s.fail("MarkEaten", userID, err)
	}

	resp := &api.MarkEatenResponse{
		Entry:             toAPIPlanEntry(res.Entry),
		InsufficientStock: res.InsufficientStock(),
		Shortfall:         res.Depletion.Shortfall,
	}
	if res.Ledger != nil {
		resp.Consumption = toAPIConsumption(res.Ledger)
	}
	return connect.NewResponse(resp), nil
}
