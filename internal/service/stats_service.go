package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/pantryledger/pantry/internal/models"
	"github.com/pantryledger/pantry/internal/reconcile"
	"github.com/pantryledger/pantry/pkg/api"
)

// StatsService implements the StatsService RPC interface.
type StatsService struct {
	handler
}

// NewStatsService creates a new statistics service.
func NewStatsService(engine *reconcile.Engine, logger *slog.Logger) *StatsService {
	return &StatsService{handler: newHandler(engine, logger)}
}

// DailyStats returns one row per day of the window, oldest first, with
// zero rows for days without activity.
func (s *StatsService) DailyStats(ctx context.Context, req *connect.Request[api.DailyStatsRequest]) (*connect.Response[api.DailyStatsResponse], error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}

	series, err := s.engine.DailyStats(ctx, userID, req.Msg.Days)
	if err != nil {
		return nil, s.fail("DailyStats", userID, err)
	}

	resp := &api.DailyStatsResponse{Days: make([]*api.DayStats, len(series))}
	for i, d := range series {
		resp.Days[i] = &api.DayStats{
			Date:     models.FormatDate(d.Day),
			Spending: d.Spending,
			Quantity: d.Quantity,
			Calories: d.Calories,
		}
	}
	return connect.NewResponse(resp), nil
}

// FoodStats returns per-food totals over the window.
func (s *StatsService) FoodStats(ctx context.Context, req *connect.Request[api.FoodStatsRequest]) (*connect.Response[api.FoodStatsResponse], error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}

	totals, err := s.engine.FoodStats(ctx, userID, req.Msg.Days)
	if err != nil {
		return nil, s.fail("FoodStats", userID, err)
	}

	resp := &api.FoodStatsResponse{Foods: make([]*api.FoodStats, len(totals))}
	for i, f := range totals {
		resp.Foods[i] = &api.FoodStats{
			Name:     f.Name,
			Quantity: f.Quantity,
			Calories: f.Calories,
			Spending: f.Spending,
		}
	}
	return connect.NewResponse(resp), nil
}
