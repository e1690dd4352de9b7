package ledgersdk

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
)

func (s *Session) ListCategories(ctx context.Context) ([]CategoryResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/v1/categories", nil, nil)
	if err != nil {
		return nil, err
	}

	var out []CategoryResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) CreateCategory(ctx context.Context, req CategoryRequest) (*CategoryResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/api/v1/categories", bytes.NewReader(body), jsonHeaders)
	if err != nil {
		return nil, err
	}

	var out CategoryResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) GetCategory(ctx context.Context, id string) (*CategoryResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/v1/categories/"+id, nil, nil)
	if err != nil {
		return nil, err
	}

	var out CategoryResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateCategory(ctx context.Context, id string, req CategoryRequest) (*CategoryResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPut, "/api/v1/categories/"+id, bytes.NewReader(body), jsonHeaders)
	if err != nil {
		return nil, err
	}

	var out CategoryResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteCategory(ctx context.Context, id string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/api/v1/categories/"+id, nil, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
