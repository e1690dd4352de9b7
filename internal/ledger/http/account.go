package http

import (
	"net/http"

	"github.com/pennywise-app/pennywise/internal/ledger/service"
	"github.com/pennywise-app/pennywise/pkg/httpx"
	"github.com/pennywise-app/pennywise/pkg/ledgersdk"
)

type AccountHandler struct {
	UserService *service.UserService
}

// HandleChangePassword swaps the account password.
//
//	@Summary	Change password
//	@Tags		Account
//	@Security	BearerAuth
//	@Accept		json
//	@Param		request	body	ledgersdk.ChangePasswordRequest	true	"Current and new password"
//	@Success	204
//	@Failure	400	{object}	ledgersdk.APIError	"Validation failed"
//	@Failure	401	{object}	ledgersdk.APIError	"Wrong current password"
//	@Router		/api/v1/account/password [put].
func (h *AccountHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ledgersdk.ChangePasswordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		ledgersdk.ErrValidation.WithMessage("invalid JSON body").WriteError(w)
		return
	}

	if err := h.UserService.ChangePassword(r.Context(), userID(r), req.CurrentPassword, req.NewPassword); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleDeleteAccount removes the account and everything it owns.
//
//	@Summary	Delete account
//	@Tags		Account
//	@Security	BearerAuth
//	@Accept		json
//	@Param		request	body	ledgersdk.DeleteAccountRequest	true	"Password confirmation"
//	@Success	204
//	@Failure	401	{object}	ledgersdk.APIError	"Wrong password"
//	@Router		/api/v1/account [delete].
func (h *AccountHandler) HandleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	var req ledgersdk.DeleteAccountRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		ledgersdk.ErrValidation.WithMessage("invalid JSON body").WriteError(w)
		return
	}

	if err := h.UserService.DeleteAccount(r.Context(), userID(r), req.Password); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleAdminDeleteUser removes another user's account. Admin only.
//
//	@Summary	Delete a user (admin)
//	@Tags		Account
//	@Security	BearerAuth
//	@Param		id	path	string	true	"User ID"
//	@Success	204
//	@Failure	403	{object}	ledgersdk.APIError	"Caller is not an admin"
//	@Failure	404	{object}	ledgersdk.APIError
//	@Router		/api/v1/users/{id} [delete].
func (h *AccountHandler) HandleAdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.UserService.AdminDeleteUser(r.Context(), userID(r), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
