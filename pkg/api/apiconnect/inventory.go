package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/pantryledger/pantry/pkg/api"
)

// InventoryServiceName is the fully-qualified name of the InventoryService.
const InventoryServiceName = "pantry.v1.InventoryService"

// Procedure paths, used for routing and in interceptors.
const (
	InventoryServiceAddToInventoryProcedure = "/pantry.v1.InventoryService/AddToInventory"
	InventoryServiceListInventoryProcedure  = "/pantry.v1.InventoryService/ListInventory"
	InventoryServiceDeleteBatchProcedure    = "/pantry.v1.InventoryService/DeleteBatch"
)

// InventoryServiceHandler is implemented by the server side of the service.
// InventoryService manages dated stock batches.
type InventoryServiceHandler interface {
	AddToInventory(context.Context, *connect.Request[api.AddToInventoryRequest]) (*connect.Response[api.AddToInventoryResponse], error)
	ListInventory(context.Context, *connect.Request[api.ListInventoryRequest]) (*connect.Response[api.ListInventoryResponse], error)
	DeleteBatch(context.Context, *connect.Request[api.DeleteBatchRequest]) (*connect.Response[api.DeleteBatchResponse], error)
}

// NewInventoryServiceHandler builds an HTTP handler for svc and returns the path
// to mount it on.
func NewInventoryServiceHandler(svc InventoryServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + InventoryServiceName + "/", serviceMux(
		unary(InventoryServiceAddToInventoryProcedure, svc.AddToInventory, opts),
		unary(InventoryServiceListInventoryProcedure, svc.ListInventory, opts),
		unary(InventoryServiceDeleteBatchProcedure, svc.DeleteBatch, opts),
	)
}

// InventoryServiceClient calls the service over HTTP.
type InventoryServiceClient interface {
	AddToInventory(context.Context, *connect.Request[api.AddToInventoryRequest]) (*connect.Response[api.AddToInventoryResponse], error)
	ListInventory(context.Context, *connect.Request[api.ListInventoryRequest]) (*connect.Response[api.ListInventoryResponse], error)
	DeleteBatch(context.Context, *connect.Request[api.DeleteBatchRequest]) (*connect.Response[api.DeleteBatchResponse], error)
}

// NewInventoryServiceClient returns a client for the service at baseURL
// (for example http://localhost:8080).
func NewInventoryServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) InventoryServiceClient {
	opts = clientOptions(opts)
	return &inventoryServiceClient{
		addToInventory: connect.NewClient[api.AddToInventoryRequest, api.AddToInventoryResponse](httpClient, baseURL+InventoryServiceAddToInventoryProcedure, opts...),
		listInventory:  connect.NewClient[api.ListInventoryRequest, api.ListInventoryResponse](httpClient, baseURL+InventoryServiceListInventoryProcedure, opts...),
		deleteBatch:    connect.NewClient[api.DeleteBatchRequest, api.DeleteBatchResponse](httpClient, baseURL+InventoryServiceDeleteBatchProcedure, opts...),
	}
}

type inventoryServiceClient struct {
	addToInventory *connect.Client[api.AddToInventoryRequest, api.AddToInventoryResponse]
	listInventory  *connect.Client[api.ListInventoryRequest, api.ListInventoryResponse]
	deleteBatch    *connect.Client[api.DeleteBatchRequest, api.DeleteBatchResponse]
}

func (c *inventoryServiceClient) AddToInventory(ctx context.Context, req *connect.Request[api.AddToInventoryRequest]) (*connect.Response[api.AddToInventoryResponse], error) {
	return c.addToInventory.CallUnary(ctx, req)
}

func (c *inventoryServiceClient) ListInventory(ctx context.Context, req *connect.Request[api.ListInventoryRequest]) (*connect.Response[api.ListInventoryResponse], error) {
	return c.listInventory.CallUnary(ctx, req)
}

func (c *inventoryServiceClient) DeleteBatch(ctx context.Context, req *connect.Request[api.DeleteBatchRequest]) (*connect.Response[api.DeleteBatchResponse], error) {
	return c.deleteBatch.CallUnary(ctx, req)
}
