package http

import (
	"net/http"

	"github.com/pennywise-app/pennywise/internal/ledger/service"
	"github.com/pennywise-app/pennywise/pkg/httpx"
	"github.com/pennywise-app/pennywise/pkg/ledgersdk"
)

type AuthHandler struct {
	AuthService *service.AuthService
}

// HandleRegister creates a new account.
//
//	@Summary		Register a new account
//	@Description	Creates an account. No tokens are issued; call /auth/login afterwards.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ledgersdk.RegisterRequest	true	"Account details"
//	@Success		201		{object}	ledgersdk.UserResponse
//	@Failure		400		{object}	ledgersdk.APIError	"Validation failed"
//	@Failure		409		{object}	ledgersdk.APIError	"Email already registered"
//	@Router			/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req ledgersdk.RegisterRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		ledgersdk.ErrValidation.WithMessage("invalid JSON body").WriteError(w)
		return
	}

	u, err := h.AuthService.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toUserResponse(u))
}

// HandleLogin exchanges credentials for a token pair.
//
//	@Summary		Log in
//	@Description	Verifies email and password, returning an access/refresh token pair.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ledgersdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	ledgersdk.TokenResponse
//	@Failure		401		{object}	ledgersdk.APIError	"Invalid credentials"
//	@Router			/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req ledgersdk.LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		ledgersdk.ErrValidation.WithMessage("invalid JSON body").WriteError(w)
		return
	}

	u, pair, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, toTokenResponse(u, pair))
}

// HandleRefresh exchanges a refresh token for a new pair.
//
//	@Summary		Refresh tokens
//	@Description	Exchanges a valid refresh token for a brand-new token pair.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ledgersdk.RefreshRequest	true	"Refresh token"
//	@Success		200		{object}	ledgersdk.TokenResponse
//	@Failure		400		{object}	ledgersdk.APIError	"Missing refresh token"
//	@Failure		401		{object}	ledgersdk.APIError	"Invalid or expired refresh token"
//	@Failure		404		{object}	ledgersdk.APIError	"User deleted since issuance"
//	@Router			/auth/refresh [post].
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req ledgersdk.RefreshRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		ledgersdk.ErrValidation.WithMessage("invalid JSON body").WriteError(w)
		return
	}

	u, pair, err := h.AuthService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, toTokenResponse(u, pair))
}

// HandleMe returns the authenticated account.
//
//	@Summary		Current account
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	ledgersdk.UserResponse
//	@Failure		401	{object}	ledgersdk.APIError	"Invalid or missing access token"
//	@Router			/auth/me [get].
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	u, err := h.AuthService.Me(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
}
