package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/pantryledger/pantry/internal/auth"
	"github.com/pantryledger/pantry/internal/middleware"
	"github.com/pantryledger/pantry/internal/reconcile"
)

// handler holds what every pantry service needs.
type handler struct {
	engine *reconcile.Engine
	logger *slog.Logger
}

func newHandler(engine *reconcile.Engine, logger *slog.Logger) handler {
	if logger == nil {
		logger = slog.Default()
	}
	return handler{engine: engine, logger: logger}
}

// userID returns the caller resolved by the auth interceptor.
func (h handler) userID(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return userID, nil
}

// fail logs a failed operation and converts err to a Connect error.
func (h handler) fail(op string, userID string, err error) error {
	cerr := toConnectError(err)
	if cerr.Code() == connect.CodeInternal || cerr.Code() == connect.CodeAborted {
		h.logger.Error(op+" failed", "user_id", userID, "error", err)
	} else {
		h.logger.Warn(op+" rejected", "user_id", userID, "code", cerr.Code(), "error", err)
	}
	return cerr
}

// toConnectError maps the engine's error kinds onto Connect codes.
// A conflict on a food is a duplicate name; any other conflict is a state
// the entity has already left (eaten, purchased).
func toConnectError(err error) *connect.Error {
	var cerr *connect.Error
	if errors.As(err, &cerr) {
		return cerr
	}

	switch {
	case errors.Is(err, reconcile.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, reconcile.ErrForbidden):
		return connect.NewError(connect.CodePermissionDenied, err)
	case errors.Is(err, reconcile.ErrInvalidInput):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, reconcile.ErrConflict):
		var rerr *reconcile.Error
		if errors.As(err, &rerr) && rerr.Entity == "food" {
			return connect.NewError(connect.CodeAlreadyExists, err)
		}
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, reconcile.ErrTransaction):
		return connect.NewError(connect.CodeAborted, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
