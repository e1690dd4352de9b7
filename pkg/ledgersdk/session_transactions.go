package ledgersdk

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

func (s *Session) ListTransactions(ctx context.Context, opts TransactionListOptions) ([]TransactionResponse, error) {
	q := url.Values{}
	if opts.Month != "" {
		q.Set("month", opts.Month)
	}
	if opts.Kind != "" {
		q.Set("kind", opts.Kind)
	}
	if opts.CategoryID != "" {
		q.Set("category_id", opts.CategoryID)
	}

	path := "/api/v1/transactions"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var out []TransactionResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) CreateTransaction(ctx context.Context, req TransactionRequest) (*TransactionResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/api/v1/transactions", bytes.NewReader(body), jsonHeaders)
	if err != nil {
		return nil, err
	}

	var out TransactionResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) GetTransaction(ctx context.Context, id string) (*TransactionResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/v1/transactions/"+id, nil, nil)
	if err != nil {
		return nil, err
	}

	var out TransactionResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateTransaction(ctx context.Context, id string, req TransactionRequest) (*TransactionResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPut, "/api/v1/transactions/"+id, bytes.NewReader(body), jsonHeaders)
	if err != nil {
		return nil, err
	}

	var out TransactionResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteTransaction(ctx context.Context, id string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/api/v1/transactions/"+id, nil, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// MonthlySummary totals one month's income and expenses.
func (s *Session) MonthlySummary(ctx context.Context, month string) (*SummaryResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/v1/transactions/summary?month="+url.QueryEscape(month), nil, nil)
	if err != nil {
		return nil, err
	}

	var out SummaryResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
