package http

import (
	"net/http"

	"github.com/pennywise-app/pennywise/internal/ledger/service"
	"github.com/pennywise-app/pennywise/pkg/httpx"
	"github.com/pennywise-app/pennywise/pkg/ledgersdk"
)

type InstallmentsHandler struct {
	InstallmentService *service.InstallmentService
}

// HandleList returns the user's installment plans.
//
//	@Summary	List installment plans
//	@Tags		Installments
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}	ledgersdk.InstallmentResponse
//	@Router		/api/v1/installments [get].
func (h *InstallmentsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	plans, err := h.InstallmentService.List(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]ledgersdk.InstallmentResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, toInstallmentResponse(p))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleCreate adds an installment plan.
//
//	@Summary	Create installment plan
//	@Tags		Installments
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		ledgersdk.InstallmentRequest	true	"Plan"
//	@Success	201		{object}	ledgersdk.InstallmentResponse
//	@Failure	400		{object}	ledgersdk.APIError	"Validation failed"
//	@Router		/api/v1/installments [post].
func (h *InstallmentsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req ledgersdk.InstallmentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		ledgersdk.ErrValidation.WithMessage("invalid JSON body").WriteError(w)
		return
	}

	p, err := h.InstallmentService.Create(r.Context(), userID(r), service.InstallmentInput{
		Description:   req.Description,
		TotalCents:    req.TotalCents,
		MonthsTotal:   req.MonthsTotal,
		FirstDueMonth: req.FirstDueMonth,
		CategoryID:    req.CategoryID,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toInstallmentResponse(p))
}

// HandleGet returns one plan.
//
//	@Summary	Get installment plan
//	@Tags		Installments
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"Plan ID"
//	@Success	200	{object}	ledgersdk.InstallmentResponse
//	@Failure	404	{object}	ledgersdk.APIError
//	@Router		/api/v1/installments/{id} [get].
func (h *InstallmentsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.InstallmentService.Get(r.Context(), userID(r), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toInstallmentResponse(p))
}

// HandlePay books the next monthly payment.
//
//	@Summary	Pay next installment
//	@Description	Books the month's expense transaction and advances the plan atomically.
//	@Tags		Installments
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"Plan ID"
//	@Success	200	{object}	ledgersdk.InstallmentResponse
//	@Failure	409	{object}	ledgersdk.APIError	"Plan already settled"
//	@Router		/api/v1/installments/{id}/pay [post].
func (h *InstallmentsHandler) HandlePay(w http.ResponseWriter, r *http.Request) {
	p, err := h.InstallmentService.Pay(r.Context(), userID(r), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toInstallmentResponse(p))
}

// HandleDelete removes a plan. Already-booked payments stay in the ledger.
//
//	@Summary	Delete installment plan
//	@Tags		Installments
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Plan ID"
//	@Success	204
//	@Failure	404	{object}	ledgersdk.APIError
//	@Router		/api/v1/installments/{id} [delete].
func (h *InstallmentsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.InstallmentService.Delete(r.Context(), userID(r), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
