package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/pantryledger/pantry/internal/reconcile"
	"github.com/pantryledger/pantry/pkg/api"
)

// InventoryService implements the InventoryService RPC interface.
type InventoryService struct {
	handler
}

// NewInventoryService creates a new inventory service.
func NewInventoryService(engine *reconcile.Engine, logger *slog.Logger) *InventoryService {
	return &InventoryService{handler: newHandler(engine, logger)}
}

// AddToInventory records stock acquired on a day, merging with the batch
// already dated that day.
func (s *InventoryService) AddToInventory(ctx context.Context, req *connect.Request[api.AddToInventoryRequest]) (*connect.Response[api.AddToInventoryResponse], error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}
	day, err := parseDay("date", req.Msg.Date, s.engine.Today())
	if err != nil {
		return nil, err
	}

	res, err := s.engine.AddToInventory(ctx, userID, req.Msg.FoodID, req.Msg.Quantity, day)
	if err != nil {
		return nil, s.fail("AddToInventory", userID, err)
	}

	return connect.NewResponse(&api.AddToInventoryResponse{
		Batch:  toAPIBatch(res.Batch),
		Merged: res.Merged,
	}), nil
}

// ListInventory returns the non-empty batches, most recent first.
func (s *InventoryService) ListInventory(ctx context.Context, req *connect.Request[api.ListInventoryRequest]) (*connect.Response[api.ListInventoryResponse], error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}

	views, err := s.engine.ListInventory(ctx, userID)
	if err != nil {
		return nil, s.fail("ListInventory", userID, err)
	}

	batches := make([]*api.Batch, len(views))
	for i, v := range views {
		batches[i] = toAPIBatchView(v)
	}
	return connect.NewResponse(&api.ListInventoryResponse{Batches: batches}), nil
}

func (s *InventoryService) DeleteBatch(ctx context.Context, req *connect.Request[api.DeleteBatchRequest]) (*connect.Response[api.DeleteBatchResponse], error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.engine.DeleteBatch(ctx, userID, req.Msg.BatchID); err != nil {
		return nil, s.fail("DeleteBatch", userID, err)
	}
	return connect.NewResponse(&api.DeleteBatchResponse{}), nil
}
