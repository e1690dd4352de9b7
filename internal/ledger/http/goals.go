package http

import (
	"net/http"

	"github.com/pennywise-app/pennywise/internal/ledger/service"
	"github.com/pennywise-app/pennywise/pkg/httpx"
	"github.com/pennywise-app/pennywise/pkg/ledgersdk"
)

type GoalsHandler struct {
	GoalService *service.GoalService
}

func goalInput(req ledgersdk.GoalRequest) service.GoalInput {
	return service.GoalInput{
		Name:                req.Name,
		TargetCents:         req.TargetCents,
		MonthlyReserveCents: req.MonthlyReserveCents,
	}
}

// HandleList returns the user's goals with saved totals.
//
//	@Summary	List goals
//	@Tags		Goals
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}	ledgersdk.GoalResponse
//	@Router		/api/v1/goals [get].
func (h *GoalsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	goals, err := h.GoalService.List(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]ledgersdk.GoalResponse, 0, len(goals))
	for _, g := range goals {
		out = append(out, toGoalResponse(g))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleCreate adds a goal.
//
//	@Summary	Create goal
//	@Tags		Goals
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		ledgersdk.GoalRequest	true	"Goal"
//	@Success	201		{object}	ledgersdk.GoalResponse
//	@Failure	400		{object}	ledgersdk.APIError	"Validation failed"
//	@Router		/api/v1/goals [post].
func (h *GoalsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req ledgersdk.GoalRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		ledgersdk.ErrValidation.WithMessage("invalid JSON body").WriteError(w)
		return
	}

	g, err := h.GoalService.Create(r.Context(), userID(r), goalInput(req))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toGoalResponse(service.GoalWithProgress{Goal: g}))
}

// HandleGet returns one goal with its progress.
//
//	@Summary	Get goal
//	@Tags		Goals
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"Goal ID"
//	@Success	200	{object}	ledgersdk.GoalResponse
//	@Failure	404	{object}	ledgersdk.APIError
//	@Router		/api/v1/goals/{id} [get].
func (h *GoalsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	g, err := h.GoalService.Get(r.Context(), userID(r), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toGoalResponse(g))
}

// HandleUpdate rewrites a goal's name and amounts.
//
//	@Summary	Update goal
//	@Tags		Goals
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Goal ID"
//	@Param		request	body		ledgersdk.GoalRequest	true	"Goal"
//	@Success	200		{object}	ledgersdk.GoalResponse
//	@Failure	404		{object}	ledgersdk.APIError
//	@Router		/api/v1/goals/{id} [put].
func (h *GoalsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req ledgersdk.GoalRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		ledgersdk.ErrValidation.WithMessage("invalid JSON body").WriteError(w)
		return
	}

	g, err := h.GoalService.Update(r.Context(), userID(r), r.PathValue("id"), goalInput(req))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toGoalResponse(service.GoalWithProgress{Goal: g}))
}

// HandleAbandon gives up on a goal, keeping its history.
//
//	@Summary	Abandon goal
//	@Tags		Goals
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"Goal ID"
//	@Success	200	{object}	ledgersdk.GoalResponse
//	@Failure	409	{object}	ledgersdk.APIError	"Goal is not active"
//	@Router		/api/v1/goals/{id}/abandon [post].
func (h *GoalsHandler) HandleAbandon(w http.ResponseWriter, r *http.Request) {
	g, err := h.GoalService.Abandon(r.Context(), userID(r), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toGoalResponse(service.GoalWithProgress{Goal: g}))
}

// HandleDelete removes a goal and its reserve history.
//
//	@Summary	Delete goal
//	@Tags		Goals
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Goal ID"
//	@Success	204
//	@Failure	404	{object}	ledgersdk.APIError
//	@Router		/api/v1/goals/{id} [delete].
func (h *GoalsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.GoalService.Delete(r.Context(), userID(r), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleListReserves returns the goal's monthly reserve rows.
//
//	@Summary	List reserves
//	@Tags		Goals
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path	string	true	"Goal ID"
//	@Success	200	{array}	ledgersdk.ReserveResponse
//	@Failure	404	{object}	ledgersdk.APIError
//	@Router		/api/v1/goals/{id}/reserves [get].
func (h *GoalsHandler) HandleListReserves(w http.ResponseWriter, r *http.Request) {
	reserves, err := h.GoalService.ListReserves(r.Context(), userID(r), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]ledgersdk.ReserveResponse, 0, len(reserves))
	for _, mr := range reserves {
		out = append(out, toReserveResponse(mr))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleRecordReserve sets the amount saved for a month. Re-posting the same
// month overwrites.
//
//	@Summary	Record reserve
//	@Tags		Goals
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Goal ID"
//	@Param		request	body		ledgersdk.ReserveRequest	true	"Month and saved amount"
//	@Success	200		{object}	ledgersdk.ReserveResponse
//	@Failure	409		{object}	ledgersdk.APIError	"Goal is not active"
//	@Router		/api/v1/goals/{id}/reserves [post].
func (h *GoalsHandler) HandleRecordReserve(w http.ResponseWriter, r *http.Request) {
	var req ledgersdk.ReserveRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		ledgersdk.ErrValidation.WithMessage("invalid JSON body").WriteError(w)
		return
	}

	mr, err := h.GoalService.RecordReserve(r.Context(), userID(r), r.PathValue("id"), req.Month, req.SavedCents)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toReserveResponse(mr))
}
