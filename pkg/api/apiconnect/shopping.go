package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/pantryledger/pantry/pkg/api"
)

// ShoppingServiceName is the fully-qualified name of the ShoppingService.
const ShoppingServiceName = "pantry.v1.ShoppingService"

// Procedure paths, used for routing and in interceptors.
const (
	ShoppingServiceListCartProcedure         = "/pantry.v1.ShoppingService/ListCart"
	ShoppingServiceAddCartLineProcedure      = "/pantry.v1.ShoppingService/AddCartLine"
	ShoppingServiceUpdateCartLineProcedure   = "/pantry.v1.ShoppingService/UpdateCartLine"
	ShoppingServiceDeleteCartLineProcedure   = "/pantry.v1.ShoppingService/DeleteCartLine"
	ShoppingServiceMarkPurchasedProcedure    = "/pantry.v1.ShoppingService/MarkPurchased"
	ShoppingServiceSuggestPurchasesProcedure = "/pantry.v1.ShoppingService/SuggestPurchases"
)

// ShoppingServiceHandler is implemented by the server side of the service.
// ShoppingService manages the cart and folds purchases into stock.
type ShoppingServiceHandler interface {
	ListCart(context.Context, *connect.Request[api.ListCartRequest]) (*connect.Response[api.ListCartResponse], error)
	AddCartLine(context.Context, *connect.Request[api.AddCartLineRequest]) (*connect.Response[api.AddCartLineResponse], error)
	UpdateCartLine(context.Context, *connect.Request[api.UpdateCartLineRequest]) (*connect.Response[api.UpdateCartLineResponse], error)
	DeleteCartLine(context.Context, *connect.Request[api.DeleteCartLineRequest]) (*connect.Response[api.DeleteCartLineResponse], error)
	MarkPurchased(context.Context, *connect.Request[api.MarkPurchasedRequest]) (*connect.Response[api.MarkPurchasedResponse], error)
	SuggestPurchases(context.Context, *connect.Request[api.SuggestPurchasesRequest]) (*connect.Response[api.SuggestPurchasesResponse], error)
}

// NewShoppingServiceHandler builds an HTTP handler for svc and returns the path
// to mount it on.
func NewShoppingServiceHandler(svc ShoppingServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + ShoppingServiceName + "/", serviceMux(
		unary(ShoppingServiceListCartProcedure, svc.ListCart, opts),
		unary(ShoppingServiceAddCartLineProcedure, svc.AddCartLine, opts),
		unary(ShoppingServiceUpdateCartLineProcedure, svc.UpdateCartLine, opts),
		unary(ShoppingServiceDeleteCartLineProcedure, svc.DeleteCartLine, opts),
		unary(ShoppingServiceMarkPurchasedProcedure, svc.MarkPurchased, opts),
		unary(ShoppingServiceSuggestPurchasesProcedure, svc.SuggestPurchases, opts),
	)
}

// ShoppingServiceClient calls the service over HTTP.
type ShoppingServiceClient interface {
	ListCart(context.Context, *connect.Request[api.ListCartRequest]) (*connect.Response[api.ListCartResponse], error)
	AddCartLine(context.Context, *connect.Request[api.AddCartLineRequest]) (*connect.Response[api.AddCartLineResponse], error)
	UpdateCartLine(context.Context, *connect.Request[api.UpdateCartLineRequest]) (*connect.Response[api.UpdateCartLineResponse], error)
	DeleteCartLine(context.Context, *connect.Request[api.DeleteCartLineRequest]) (*connect.Response[api.DeleteCartLineResponse], error)
	MarkPurchased(context.Context, *connect.Request[api.MarkPurchasedRequest]) (*connect.Response[api.MarkPurchasedResponse], error)
	SuggestPurchases(context.Context, *connect.Request[api.SuggestPurchasesRequest]) (*connect.Response[api.SuggestPurchasesResponse], error)
}

// NewShoppingServiceClient returns a client for the service at baseURL
// (for example http://localhost:8080).
func NewShoppingServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ShoppingServiceClient {
	opts = clientOptions(opts)
	return &shoppingServiceClient{
		listCart:         connect.NewClient[api.ListCartRequest, api.ListCartResponse](httpClient, baseURL+ShoppingServiceListCartProcedure, opts...),
		addCartLine:      connect.NewClient[api.AddCartLineRequest, api.AddCartLineResponse](httpClient, baseURL+ShoppingServiceAddCartLineProcedure, opts...),
		updateCartLine:   connect.NewClient[api.UpdateCartLineRequest, api.UpdateCartLineResponse](httpClient, baseURL+ShoppingServiceUpdateCartLineProcedure, opts...),
		deleteCartLine:   connect.NewClient[api.DeleteCartLineRequest, api.DeleteCartLineResponse](httpClient, baseURL+ShoppingServiceDeleteCartLineProcedure, opts...),
		markPurchased:    connect.NewClient[api.MarkPurchasedRequest, api.MarkPurchasedResponse](httpClient, baseURL+ShoppingServiceMarkPurchasedProcedure, opts...),
		suggestPurchases: connect.NewClient[api.SuggestPurchasesRequest, api.SuggestPurchasesResponse](httpClient, baseURL+ShoppingServiceSuggestPurchasesProcedure, opts...),
	}
}

type shoppingServiceClient struct {
	listCart         *connect.Client[api.ListCartRequest, api.ListCartResponse]
	addCartLine      *connect.Client[api.AddCartLineRequest, api.AddCartLineResponse]
	updateCartLine   *connect.Client[api.UpdateCartLineRequest, api.UpdateCartLineResponse]
	deleteCartLine   *connect.Client[api.DeleteCartLineRequest, api.DeleteCartLineResponse]
	markPurchased    *connect.Client[api.MarkPurchasedRequest, api.MarkPurchasedResponse]
	suggestPurchases *connect.Client[api.SuggestPurchasesRequest, api.SuggestPurchasesResponse]
}

func (c *shoppingServiceClient) ListCart(ctx context.Context, req *connect.Request[api.ListCartRequest]) (*connect.Response[api.ListCartResponse], error) {
	return c.listCart.CallUnary(ctx, req)
}

func (c *shoppingServiceClient) AddCartLine(ctx context.Context, req *connect.Request[api.AddCartLineRequest]) (*connect.Response[api.AddCartLineResponse], error) {
	return c.addCartLine.CallUnary(ctx, req)
}

func (c *shoppingServiceClient) UpdateCartLine(ctx context.Context, req *connect.Request[api.UpdateCartLineRequest]) (*connect.Response[api.UpdateCartLineResponse], error) {
	return c.updateCartLine.CallUnary(ctx, req)
}

func (c *shoppingServiceClient) DeleteCartLine(ctx context.Context, req *connect.Request[api.DeleteCartLineRequest]) (*connect.Response[api.DeleteCartLineResponse], error) {
	return c.deleteCartLine.CallUnary(ctx, req)
}

func (c *shoppingServiceClient) MarkPurchased(ctx context.Context, req *connect.Request[api.MarkPurchasedRequest]) (*connect.Response[api.MarkPurchasedResponse], error) {
	return c.markPurchased.CallUnary(ctx, req)
}

func (c *shoppingServiceClient) SuggestPurchases(ctx context.Context, req *connect.Request[api.SuggestPurchasesRequest]) (*connect.Response[api.SuggestPurchasesResponse], error) {
	return c.suggestPurchases.CallUnary(ctx, req)
}
