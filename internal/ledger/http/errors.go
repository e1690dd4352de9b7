package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pennywise-app/pennywise/internal/ledger/service"
	"github.com/pennywise-app/pennywise/internal/ledger/store"
	"github.com/pennywise-app/pennywise/pkg/httpx"
	"github.com/pennywise-app/pennywise/pkg/ledgersdk"
	"github.com/pennywise-app/pennywise/pkg/slogx"
)

// writeServiceError maps service and store errors onto the API error shape.
// Anything unmapped is logged and becomes a plain 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		ledgersdk.ErrValidation.WithMessage(validationDetail(err)).WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		ledgersdk.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrInvalidRefresh):
		ledgersdk.ErrUnauthorized.WithMessage("invalid or expired refresh token").WriteError(w)
	case errors.Is(err, service.ErrEmailInUse):
		ledgersdk.ErrConflict.WithMessage("email already registered").WriteError(w)
	case errors.Is(err, service.ErrNameTaken):
		ledgersdk.ErrConflict.WithMessage("category name already in use").WriteError(w)
	case errors.Is(err, service.ErrPlanSettled):
		ledgersdk.ErrConflict.WithMessage("installment plan is already settled").WriteError(w)
	case errors.Is(err, service.ErrGoalNotActive):
		ledgersdk.ErrConflict.WithMessage("goal is not active").WriteError(w)
	case errors.Is(err, service.ErrForbidden):
		ledgersdk.ErrForbidden.WriteError(w)
	case errors.Is(err, store.ErrNotFound):
		ledgersdk.ErrNotFound.WriteError(w)
	case errors.Is(err, store.ErrAlreadyExists):
		ledgersdk.ErrConflict.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("request failed", slog.Any("error", err))
		ledgersdk.ErrServer.WriteError(w)
	}
}

// validationDetail strips the sentinel prefix, leaving the human message.
func validationDetail(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx >= 0 {
		return msg[idx+2:]
	}
	return msg
}

// userID pulls the authenticated subject injected by AuthnMiddleware.
func userID(r *http.Request) string {
	return httpx.UserIDFromContext(r.Context())
}
