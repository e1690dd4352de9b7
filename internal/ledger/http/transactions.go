package http

import (
	"net/http"
	"time"

	"github.com/pennywise-app/pennywise/internal/ledger/domain"
	"github.com/pennywise-app/pennywise/internal/ledger/service"
	"github.com/pennywise-app/pennywise/internal/ledger/store"
	"github.com/pennywise-app/pennywise/pkg/httpx"
	"github.com/pennywise-app/pennywise/pkg/ledgersdk"
)

type TransactionsHandler struct {
	TransactionService *service.TransactionService
}

func transactionInput(req ledgersdk.TransactionRequest) (service.TransactionInput, error) {
	occurred, err := time.Parse(dateLayout, req.OccurredOn)
	if err != nil {
		return service.TransactionInput{}, err
	}
	return service.TransactionInput{
		CategoryID:  req.CategoryID,
		Description: req.Description,
		AmountCents: req.AmountCents,
		Kind:        domain.EntryKind(req.Kind),
		OccurredOn:  occurred,
	}, nil
}

// HandleList returns transactions, newest first, with optional filters.
//
//	@Summary	List transactions
//	@Tags		Transactions
//	@Security	BearerAuth
//	@Produce	json
//	@Param		month		query	string	false	"Month filter (YYYY-MM)"
//	@Param		kind		query	string	false	"Kind filter (income|expense)"
//	@Param		category_id	query	string	false	"Category filter"
//	@Success	200			{array}	ledgersdk.TransactionResponse
//	@Failure	400			{object}	ledgersdk.APIError	"Bad filter"
//	@Router		/api/v1/transactions [get].
func (h *TransactionsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.TransactionFilter{
		Month:      q.Get("month"),
		Kind:       domain.EntryKind(q.Get("kind")),
		CategoryID: q.Get("category_id"),
	}

	txs, err := h.TransactionService.List(r.Context(), userID(r), filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTransactionResponses(txs))
}

// HandleCreate books a transaction.
//
//	@Summary	Create transaction
//	@Tags		Transactions
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		ledgersdk.TransactionRequest	true	"Transaction"
//	@Success	201		{object}	ledgersdk.TransactionResponse
//	@Failure	400		{object}	ledgersdk.APIError	"Validation failed"
//	@Router		/api/v1/transactions [post].
func (h *TransactionsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req ledgersdk.TransactionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		ledgersdk.ErrValidation.WithMessage("invalid JSON body").WriteError(w)
		return
	}

	in, err := transactionInput(req)
	if err != nil {
		ledgersdk.ErrValidation.WithMessage("occurred_on must be YYYY-MM-DD").WriteError(w)
		return
	}

	t, err := h.TransactionService.Create(r.Context(), userID(r), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toTransactionResponse(t))
}

// HandleGet returns one transaction.
//
//	@Summary	Get transaction
//	@Tags		Transactions
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"Transaction ID"
//	@Success	200	{object}	ledgersdk.TransactionResponse
//	@Failure	404	{object}	ledgersdk.APIError
//	@Router		/api/v1/transactions/{id} [get].
func (h *TransactionsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	t, err := h.TransactionService.Get(r.Context(), userID(r), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTransactionResponse(t))
}

// HandleUpdate rewrites a transaction.
//
//	@Summary	Update transaction
//	@Tags		Transactions
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string							true	"Transaction ID"
//	@Param		request	body		ledgersdk.TransactionRequest	true	"Transaction"
//	@Success	200		{object}	ledgersdk.TransactionResponse
//	@Failure	404		{object}	ledgersdk.APIError
//	@Router		/api/v1/transactions/{id} [put].
func (h *TransactionsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req ledgersdk.TransactionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		ledgersdk.ErrValidation.WithMessage("invalid JSON body").WriteError(w)
		return
	}

	in, err := transactionInput(req)
	if err != nil {
		ledgersdk.ErrValidation.WithMessage("occurred_on must be YYYY-MM-DD").WriteError(w)
		return
	}

	t, err := h.TransactionService.Update(r.Context(), userID(r), r.PathValue("id"), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTransactionResponse(t))
}

// HandleDelete removes a transaction.
//
//	@Summary	Delete transaction
//	@Tags		Transactions
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Transaction ID"
//	@Success	204
//	@Failure	404	{object}	ledgersdk.APIError
//	@Router		/api/v1/transactions/{id} [delete].
func (h *TransactionsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.TransactionService.Delete(r.Context(), userID(r), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleSummary totals a month's income and expenses.
//
//	@Summary	Monthly summary
//	@Tags		Transactions
//	@Security	BearerAuth
//	@Produce	json
//	@Param		month	query		string	true	"Month (YYYY-MM)"
//	@Success	200		{object}	ledgersdk.SummaryResponse
//	@Failure	400		{object}	ledgersdk.APIError	"Bad month"
//	@Router		/api/v1/transactions/summary [get].
func (h *TransactionsHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.TransactionService.Summary(r.Context(), userID(r), r.URL.Query().Get("month"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, ledgersdk.SummaryResponse{
		Month:        sum.Month,
		IncomeCents:  sum.IncomeCents,
		ExpenseCents: sum.ExpenseCents,
		NetCents:     sum.NetCents,
	})
}
