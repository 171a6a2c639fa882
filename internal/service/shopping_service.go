package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/pantryledger/pantry/internal/reconcile"
	"github.com/pantryledger/pantry/pkg/api"
)

// ShoppingService implements the ShoppingService RPC interface.
type ShoppingService struct {
	handler
}

// NewShoppingService creates a new shopping service.
func NewShoppingService(engine *reconcile.Engine, logger *slog.Logger) *ShoppingService {
	return &ShoppingService{handler: newHandler(engine, logger)}
}

// ListCart returns the pending cart lines, newest first.
func (s *ShoppingService) ListCart(ctx context.Context, req *connect.Request[api.ListCartRequest]) (*connect.Response[api.ListCartResponse], error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}

	lines, err := s.engine.ListCart(ctx, userID)
	if err != nil {
		return nil, s.fail("ListCart", userID, err)
	}

	resp := &api.ListCartResponse{Lines: make([]*api.CartLine, len(lines))}
	for i, l := range lines {
		resp.Lines[i] = toAPICartLine(l)
	}
	return connect.NewResponse(resp), nil
}

func (s *ShoppingService) AddCartLine(ctx context.Context, req *connect.Request[api.AddCartLineRequest]) (*connect.Response[api.AddCartLineResponse], error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}

	line, err := s.engine.AddCartLine(ctx, userID, req.Msg.FoodID, req.Msg.Quantity, req.Msg.UnitPrice)
	if err != nil {
		return nil, s.fail("AddCartLine", userID, err)
	}
	return connect.NewResponse(&api.AddCartLineResponse{Line: toAPICartLine(line)}), nil
}

func (s *ShoppingService) UpdateCartLine(ctx context.Context, req *connect.Request[api.UpdateCartLineRequest]) (*connect.Response[api.UpdateCartLineResponse], error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}

	line, err := s.engine.UpdateCartLine(ctx, userID, req.Msg.LineID, req.Msg.Quantity, req.Msg.UnitPrice)
	if err != nil {
		return nil, s.fail("UpdateCartLine", userID, err)
	}
	return connect.NewResponse(&api.UpdateCartLineResponse{Line: toAPICartLine(line)}), nil
}

func (s *ShoppingService) DeleteCartLine(ctx context.Context, req *connect.Request[api.DeleteCartLineRequest]) (*connect.Response[api.DeleteCartLineResponse], error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.engine.DeleteCartLine(ctx, userID, req.Msg.LineID); err != nil {
		return nil, s.fail("DeleteCartLine", userID, err)
	}
	return connect.NewResponse(&api.DeleteCartLineResponse{}), nil
}

// MarkPurchased completes a cart line and moves its quantity into stock.
func (s *ShoppingService) MarkPurchased(ctx context.Context, req *connect.Request[api.MarkPurchasedRequest]) (*connect.Response[api.MarkPurchasedResponse], error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}
	day, err := parseDay("date", req.Msg.Date, s.engine.Today())
	if err != nil {
		return nil, err
	}

	res, err := s.engine.MarkPurchased(ctx, userID, req.Msg.LineID, day)
	if err != nil {
		return nil, s.fail("MarkPurchased", userID, err)
	}

	return connect.NewResponse(&api.MarkPurchasedResponse{
		Line:   toAPICartLine(res.Line),
		Batch:  toAPIBatch(res.Batch),
		Merged: res.Merged,
	}), nil
}

// SuggestPurchases lists what the plan still needs beyond stock and cart.
func (s *ShoppingService) SuggestPurchases(ctx context.Context, req *connect.Request[api.SuggestPurchasesRequest]) (*connect.Response[api.SuggestPurchasesResponse], error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}

	suggestions, err := s.engine.SuggestPurchases(ctx, userID)
	if err != nil {
		return nil, s.fail("SuggestPurchases", userID, err)
	}

	resp := &api.SuggestPurchasesResponse{Suggestions: make([]*api.Suggestion, len(suggestions))}
	for i, sg := range suggestions {
		resp.Suggestions[i] = &api.Suggestion{
			FoodID:         sg.FoodID,
			Name:           sg.Name,
			Needed:         sg.Needed,
			ReferencePrice: sg.ReferencePrice,
		}
	}
	return connect.NewResponse(resp), nil
}
