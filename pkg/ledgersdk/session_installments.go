package ledgersdk

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
)

func (s *Session) ListInstallments(ctx context.Context) ([]InstallmentResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/v1/installments", nil, nil)
	if err != nil {
		return nil, err
	}

	var out []InstallmentResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) CreateInstallment(ctx context.Context, req InstallmentRequest) (*InstallmentResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/api/v1/installments", bytes.NewReader(body), jsonHeaders)
	if err != nil {
		return nil, err
	}

	var out InstallmentResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) GetInstallment(ctx context.Context, id string) (*InstallmentResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/v1/installments/"+id, nil, nil)
	if err != nil {
		return nil, err
	}

	var out InstallmentResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// PayInstallment books the next monthly payment as an expense transaction
// and advances the plan. Paying a settled plan is a conflict.
func (s *Session) PayInstallment(ctx context.Context, id string) (*InstallmentResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/api/v1/installments/"+id+"/pay", nil, nil)
	if err != nil {
		return nil, err
	}

	var out InstallmentResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteInstallment(ctx context.Context, id string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/api/v1/installments/"+id, nil, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
