package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/pantryledger/pantry/pkg/api"
)

// StatsServiceName is the fully-qualified name of the StatsService.
const StatsServiceName = "pantry.v1.StatsService"

// Procedure paths, used for routing and in interceptors.
const (
	StatsServiceDailyStatsProcedure = "/pantry.v1.StatsService/DailyStats"
	StatsServiceFoodStatsProcedure  = "/pantry.v1.StatsService/FoodStats"
)

// StatsServiceHandler is implemented by the server side of the service.
// StatsService reports spend and consumption over recent days.
type StatsServiceHandler interface {
	DailyStats(context.Context, *connect.Request[api.DailyStatsRequest]) (*connect.Response[api.DailyStatsResponse], error)
	FoodStats(context.Context, *connect.Request[api.FoodStatsRequest]) (*connect.Response[api.FoodStatsResponse], error)
}

// NewStatsServiceHandler builds an HTTP handler for svc and returns the path
// to mount it on.
func NewStatsServiceHandler(svc StatsServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + StatsServiceName + "/", serviceMux(
		unary(StatsServiceDailyStatsProcedure, svc.DailyStats, opts),
		unary(StatsServiceFoodStatsProcedure, svc.FoodStats, opts),
	)
}

// StatsServiceClient calls the service over HTTP.
type StatsServiceClient interface {
	DailyStats(context.Context, *connect.Request[api.DailyStatsRequest]) (*connect.Response[api.DailyStatsResponse], error)
	FoodStats(context.Context, *connect.Request[api.FoodStatsRequest]) (*connect.Response[api.FoodStatsResponse], error)
}

// NewStatsServiceClient returns a client for the service at baseURL
// (for example http://localhost:8080).
func NewStatsServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) StatsServiceClient {
	opts = clientOptions(opts)
	return &statsServiceClient{
		dailyStats: connect.NewClient[api.DailyStatsRequest, api.DailyStatsResponse](httpClient, baseURL+StatsServiceDailyStatsProcedure, opts...),
		foodStats:  connect.NewClient[api.FoodStatsRequest, api.FoodStatsResponse](httpClient, baseURL+StatsServiceFoodStatsProcedure, opts...),
	}
}

type statsServiceClient struct {
	dailyStats *connect.Client[api.DailyStatsRequest, api.DailyStatsResponse]
	foodStats  *connect.Client[api.FoodStatsRequest, api.FoodStatsResponse]
}

func (c *statsServiceClient) DailyStats(ctx context.Context, req *connect.Request[api.DailyStatsRequest]) (*connect.Response[api.DailyStatsResponse], error) {
	return c.dailyStats.CallUnary(ctx, req)
}

func (c *statsServiceClient) FoodStats(ctx context.Context, req *connect.Request[api.FoodStatsRequest]) (*connect.Response[api.FoodStatsResponse], error) {
	return c.foodStats.CallUnary(ctx, req)
}
