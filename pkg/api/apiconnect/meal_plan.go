package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/pantryledger/pantry/pkg/api"
)

// MealPlanServiceName is the fully-qualified name of the MealPlanService.
const MealPlanServiceName = "pantry.v1.MealPlanService"

// Procedure paths, used for routing and in interceptors.
const (
	MealPlanServiceAddPlanEntryProcedure    = "/pantry.v1.MealPlanService/AddPlanEntry"
	MealPlanServiceListPlanProcedure        = "/pantry.v1.MealPlanService/ListPlan"
	MealPlanServiceDeletePlanEntryProcedure = "/pantry.v1.MealPlanService/DeletePlanEntry"
	MealPlanServiceMarkEatenProcedure       = "/pantry.v1.MealPlanService/MarkEaten"
)

// MealPlanServiceHandler is implemented by the server side of the service.
// MealPlanService manages the weekly plan and records what was eaten.
type MealPlanServiceHandler interface {
	AddPlanEntry(context.Context, *connect.Request[api.AddPlanEntryRequest]) (*connect.Response[api.AddPlanEntryResponse], error)
	ListPlan(context.Context, *connect.Request[api.ListPlanRequest]) (*connect.Response[api.ListPlanResponse], error)
	DeletePlanEntry(context.Context, *connect.Request[api.DeletePlanEntryRequest]) (*connect.Response[api.DeletePlanEntryResponse], error)
	MarkEaten(context.Context, *connect.Request[api.MarkEatenRequest]) (*connect.Response[api.MarkEatenResponse], error)
}

// NewMealPlanServiceHandler builds an HTTP handler for svc and returns the path
// to mount it on.
func NewMealPlanServiceHandler(svc MealPlanServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + MealPlanServiceName + "/", serviceMux(
		unary(MealPlanServiceAddPlanEntryProcedure, svc.AddPlanEntry, opts),
		unary(MealPlanServiceListPlanProcedure, svc.ListPlan, opts),
		unary(MealPlanServiceDeletePlanEntryProcedure, svc.DeletePlanEntry, opts),
		unary(MealPlanServiceMarkEatenProcedure, svc.MarkEaten, opts),
	)
}

// MealPlanServiceClient calls the service over HTTP.
type MealPlanServiceClient interface {
	AddPlanEntry(context.Context, *connect.Request[api.AddPlanEntryRequest]) (*connect.Response[api.AddPlanEntryResponse], error)
	ListPlan(context.Context, *connect.Request[api.ListPlanRequest]) (*connect.Response[api.ListPlanResponse], error)
	DeletePlanEntry(context.Context, *connect.Request[api.DeletePlanEntryRequest]) (*connect.Response[api.DeletePlanEntryResponse], error)
	MarkEaten(context.Context, *connect.Request[api.MarkEatenRequest]) (*connect.Response[api.MarkEatenResponse], error)
}

// NewMealPlanServiceClient returns a client for the service at baseURL
// (for example http://localhost:8080).
func NewMealPlanServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) MealPlanServiceClient {
	opts = clientOptions(opts)
	return &mealPlanServiceClient{
		addPlanEntry:    connect.NewClient[api.AddPlanEntryRequest, api.AddPlanEntryResponse](httpClient, baseURL+MealPlanServiceAddPlanEntryProcedure, opts...),
		listPlan:        connect.NewClient[api.ListPlanRequest, api.ListPlanResponse](httpClient, baseURL+MealPlanServiceListPlanProcedure, opts...),
		deletePlanEntry: connect.NewClient[api.DeletePlanEntryRequest, api.DeletePlanEntryResponse](httpClient, baseURL+MealPlanServiceDeletePlanEntryProcedure, opts...),
		markEaten:       connect.NewClient[api.MarkEatenRequest, api.MarkEatenResponse](httpClient, baseURL+MealPlanServiceMarkEatenProcedure, opts...),
	}
}

type mealPlanServiceClient struct {
	addPlanEntry    *connect.Client[api.AddPlanEntryRequest, api.AddPlanEntryResponse]
	listPlan        *connect.Client[api.ListPlanRequest, api.ListPlanResponse]
	deletePlanEntry *connect.Client[api.DeletePlanEntryRequest, api.DeletePlanEntryResponse]
	markEaten       *connect.Client[api.MarkEatenRequest, api.MarkEatenResponse]
}

func (c *mealPlanServiceClient) AddPlanEntry(ctx context.Context, req *connect.Request[api.AddPlanEntryRequest]) (*connect.Response[api.AddPlanEntryResponse], error) {
	return c.addPlanEntry.CallUnary(ctx, req)
}

func (c *mealPlanServiceClient) ListPlan(ctx context.Context, req *connect.Request[api.ListPlanRequest]) (*connect.Response[api.ListPlanResponse], error) {
	return c.listPlan.CallUnary(ctx, req)
}

func (c *mealPlanServiceClient) DeletePlanEntry(ctx context.Context, req *connect.Request[api.DeletePlanEntryRequest]) (*connect.Response[api.DeletePlanEntryResponse], error) {
	return c.deletePlanEntry.CallUnary(ctx, req)
}

func (c *mealPlanServiceClient) MarkEaten(ctx context.Context, req *connect.Request[api.MarkEatenRequest]) (*connect.Response[api.MarkEatenResponse], error) {
	return c.markEaten.CallUnary(ctx, req)
}
