package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/pantryledger/pantry/pkg/api"
)

// CatalogServiceName is the fully-qualified name of the CatalogService.
const CatalogServiceName = "pantry.v1.CatalogService"

// Procedure paths, used for routing and in interceptors.
const (
	CatalogServiceListFoodsProcedure      = "/pantry.v1.CatalogService/ListFoods"
	CatalogServiceCreateFoodProcedure     = "/pantry.v1.CatalogService/CreateFood"
	CatalogServiceUpdateFoodProcedure     = "/pantry.v1.CatalogService/UpdateFood"
	CatalogServiceDeleteFoodProcedure     = "/pantry.v1.CatalogService/DeleteFood"
	CatalogServiceCheckFoodUsageProcedure = "/pantry.v1.CatalogService/CheckFoodUsage"
	CatalogServiceListDishesProcedure     = "/pantry.v1.CatalogService/ListDishes"
	CatalogServiceCreateDishProcedure     = "/pantry.v1.CatalogService/CreateDish"
	CatalogServiceSuggestDishesProcedure  = "/pantry.v1.CatalogService/SuggestDishes"
)

// CatalogServiceHandler is implemented by the server side of the service.
// CatalogService manages foods and dishes.
type CatalogServiceHandler interface {
	ListFoods(context.Context, *connect.Request[api.ListFoodsRequest]) (*connect.Response[api.ListFoodsResponse], error)
	CreateFood(context.Context, *connect.Request[api.CreateFoodRequest]) (*connect.Response[api.CreateFoodResponse], error)
	UpdateFood(context.Context, *connect.Request[api.UpdateFoodRequest]) (*connect.Response[api.UpdateFoodResponse], error)
	DeleteFood(context.Context, *connect.Request[api.DeleteFoodRequest]) (*connect.Response[api.DeleteFoodResponse], error)
	CheckFoodUsage(context.Context, *connect.Request[api.CheckFoodUsageRequest]) (*connect.Response[api.CheckFoodUsageResponse], error)
	ListDishes(context.Context, *connect.Request[api.ListDishesRequest]) (*connect.Response[api.ListDishesResponse], error)
	CreateDish(context.Context, *connect.Request[api.CreateDishRequest]) (*connect.Response[api.CreateDishResponse], error)
	SuggestDishes(context.Context, *connect.Request[api.SuggestDishesRequest]) (*connect.Response[api.SuggestDishesResponse], error)
}

// NewCatalogServiceHandler builds an HTTP handler for svc and returns the path
// to mount it on.
func NewCatalogServiceHandler(svc CatalogServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + CatalogServiceName + "/", serviceMux(
		unary(CatalogServiceListFoodsProcedure, svc.ListFoods, opts),
		unary(CatalogServiceCreateFoodProcedure, svc.CreateFood, opts),
		unary(CatalogServiceUpdateFoodProcedure, svc.UpdateFood, opts),
		unary(CatalogServiceDeleteFoodProcedure, svc.DeleteFood, opts),
		unary(CatalogServiceCheckFoodUsageProcedure, svc.CheckFoodUsage, opts),
		unary(CatalogServiceListDishesProcedure, svc.ListDishes, opts),
		unary(CatalogServiceCreateDishProcedure, svc.CreateDish, opts),
		unary(CatalogServiceSuggestDishesProcedure, svc.SuggestDishes, opts),
	)
}

// CatalogServiceClient calls the service over HTTP.
type CatalogServiceClient interface {
	ListFoods(context.Context, *connect.Request[api.ListFoodsRequest]) (*connect.Response[api.ListFoodsResponse], error)
	CreateFood(context.Context, *connect.Request[api.CreateFoodRequest]) (*connect.Response[api.CreateFoodResponse], error)
	UpdateFood(context.Context, *connect.Request[api.UpdateFoodRequest]) (*connect.Response[api.UpdateFoodResponse], error)
	DeleteFood(context.Context, *connect.Request[api.DeleteFoodRequest]) (*connect.Response[api.DeleteFoodResponse], error)
	CheckFoodUsage(context.Context, *connect.Request[api.CheckFoodUsageRequest]) (*connect.Response[api.CheckFoodUsageResponse], error)
	ListDishes(context.Context, *connect.Request[api.ListDishesRequest]) (*connect.Response[api.ListDishesResponse], error)
	CreateDish(context.Context, *connect.Request[api.CreateDishRequest]) (*connect.Response[api.CreateDishResponse], error)
	SuggestDishes(context.Context, *connect.Request[api.SuggestDishesRequest]) (*connect.Response[api.SuggestDishesResponse], error)
}

// NewCatalogServiceClient returns a client for the service at baseURL
// (for example http://localhost:8080).
func NewCatalogServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) CatalogServiceClient {
	opts = clientOptions(opts)
	return &catalogServiceClient{
		listFoods:      connect.NewClient[api.ListFoodsRequest, api.ListFoodsResponse](httpClient, baseURL+CatalogServiceListFoodsProcedure, opts...),
		createFood:     connect.NewClient[api.CreateFoodRequest, api.CreateFoodResponse](httpClient, baseURL+CatalogServiceCreateFoodProcedure, opts...),
		updateFood:     connect.NewClient[api.UpdateFoodRequest, api.UpdateFoodResponse](httpClient, baseURL+CatalogServiceUpdateFoodProcedure, opts...),
		deleteFood:     connect.NewClient[api.DeleteFoodRequest, api.DeleteFoodResponse](httpClient, baseURL+CatalogServiceDeleteFoodProcedure, opts...),
		checkFoodUsage: connect.NewClient[api.CheckFoodUsageRequest, api.CheckFoodUsageResponse](httpClient, baseURL+CatalogServiceCheckFoodUsageProcedure, opts...),
		listDishes:     connect.NewClient[api.ListDishesRequest, api.ListDishesResponse](httpClient, baseURL+CatalogServiceListDishesProcedure, opts...),
		createDish:     connect.NewClient[api.CreateDishRequest, api.CreateDishResponse](httpClient, baseURL+CatalogServiceCreateDishProcedure, opts...),
		suggestDishes:  connect.NewClient[api.SuggestDishesRequest, api.SuggestDishesResponse](httpClient, baseURL+CatalogServiceSuggestDishesProcedure, opts...),
	}
}

type catalogServiceClient struct {
	listFoods      *connect.Client[api.ListFoodsRequest, api.ListFoodsResponse]
	createFood     *connect.Client[api.CreateFoodRequest, api.CreateFoodResponse]
	updateFood     *connect.Client[api.UpdateFoodRequest, api.UpdateFoodResponse]
	deleteFood     *connect.Client[api.DeleteFoodRequest, api.DeleteFoodResponse]
	checkFoodUsage *connect.Client[api.CheckFoodUsageRequest, api.CheckFoodUsageResponse]
	listDishes     *connect.Client[api.ListDishesRequest, api.ListDishesResponse]
	createDish     *connect.Client[api.CreateDishRequest, api.CreateDishResponse]
	suggestDishes  *connect.Client[api.SuggestDishesRequest, api.SuggestDishesResponse]
}

func (c *catalogServiceClient) ListFoods(ctx context.Context, req *connect.Request[api.ListFoodsRequest]) (*connect.Response[api.ListFoodsResponse], error) {
	return c.listFoods.CallUnary(ctx, req)
}

func (c *catalogServiceClient) CreateFood(ctx context.Context, req *connect.Request[api.CreateFoodRequest]) (*connect.Response[api.CreateFoodResponse], error) {
	return c.createFood.CallUnary(ctx, req)
}

func (c *catalogServiceClient) UpdateFood(ctx context.Context, req *connect.Request[api.UpdateFoodRequest]) (*connect.Response[api.UpdateFoodResponse], error) {
	return c.updateFood.CallUnary(ctx, req)
}

func (c *catalogServiceClient) DeleteFood(ctx context.Context, req *connect.Request[api.DeleteFoodRequest]) (*connect.Response[api.DeleteFoodResponse], error) {
	return c.deleteFood.CallUnary(ctx, req)
}

func (c *catalogServiceClient) CheckFoodUsage(ctx context.Context, req *connect.Request[api.CheckFoodUsageRequest]) (*connect.Response[api.CheckFoodUsageResponse], error) {
	return c.checkFoodUsage.CallUnary(ctx, req)
}

func (c *catalogServiceClient) ListDishes(ctx context.Context, req *connect.Request[api.ListDishesRequest]) (*connect.Response[api.ListDishesResponse], error) {
	return c.listDishes.CallUnary(ctx, req)
}

func (c *catalogServiceClient) CreateDish(ctx context.Context, req *connect.Request[api.CreateDishRequest]) (*connect.Response[api.CreateDishResponse], error) {
	return c.createDish.CallUnary(ctx, req)
}

func (c *catalogServiceClient) SuggestDishes(ctx context.Context, req *connect.Request[api.SuggestDishesRequest]) (*connect.Response[api.SuggestDishesResponse], error) {
	return c.suggestDishes.CallUnary(ctx, req)
}
