package service

import (
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/pantryledger/pantry/internal/auth"
	"github.com/pantryledger/pantry/internal/metrics"
	"github.com/pantryledger/pantry/internal/middleware"
	"github.com/pantryledger/pantry/internal/reconcile"
	"github.com/pantryledger/pantry/pkg/api/apiconnect"
)

// Deps are the collaborators the RPC services are built from.
type Deps struct {
	Engine        *reconcile.Engine
	Authenticator auth.Authenticator
	Users         auth.UserStorage
	JWT           *auth.JWTManager
	Metrics       *metrics.Metrics
	Logger        *slog.Logger
}

// Mount registers every Connect service on mux. The auth service accepts
// anonymous calls; every other service requires a bearer token.
func Mount(mux *http.ServeMux, d Deps) {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	public := connect.WithInterceptors(
		middleware.MetricsInterceptor(d.Metrics),
		middleware.OptionalAuth(d.JWT),
		middleware.LoggingInterceptor(logger),
	)
	protected := connect.WithInterceptors(
		middleware.MetricsInterceptor(d.Metrics),
		middleware.RequireAuth(d.JWT),
		middleware.LoggingInterceptor(logger),
	)

	mux.Handle(apiconnect.NewAuthServiceHandler(
		NewAuthService(d.Authenticator, d.Users, d.JWT, logger), public))
	mux.Handle(apiconnect.NewInventoryServiceHandler(
		NewInventoryService(d.Engine, logger), protected))
	mux.Handle(apiconnect.NewMealPlanServiceHandler(
		NewMealPlanService(d.Engine, logger), protected))
	mux.Handle(apiconnect.NewShoppingServiceHandler(
		NewShoppingService(d.Engine, logger), protected))
	mux.Handle(apiconnect.NewCatalogServiceHandler(
		NewCatalogService(d.Engine, logger), protected))
	mux.Handle(apiconnect.NewStatsServiceHandler(
		NewStatsService(d.Engine, logger), protected))
}
