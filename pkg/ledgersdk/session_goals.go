package ledgersdk

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
)

func (s *Session) ListGoals(ctx context.Context) ([]GoalResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/v1/goals", nil, nil)
	if err != nil {
		return nil, err
	}

	var out []GoalResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) CreateGoal(ctx context.Context, req GoalRequest) (*GoalResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/api/v1/goals", bytes.NewReader(body), jsonHeaders)
	if err != nil {
		return nil, err
	}

	var out GoalResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) GetGoal(ctx context.Context, id string) (*GoalResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/v1/goals/"+id, nil, nil)
	if err != nil {
		return nil, err
	}

	var out GoalResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateGoal(ctx context.Context, id string, req GoalRequest) (*GoalResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPut, "/api/v1/goals/"+id, bytes.NewReader(body), jsonHeaders)
	if err != nil {
		return nil, err
	}

	var out GoalResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// AbandonGoal gives up on the goal while keeping its reserve history.
func (s *Session) AbandonGoal(ctx context.Context, id string) (*GoalResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/api/v1/goals/"+id+"/abandon", nil, nil)
	if err != nil {
		return nil, err
	}

	var out GoalResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteGoal(ctx context.Context, id string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/api/v1/goals/"+id, nil, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// ListReserves returns the goal's monthly reserve rows in month order.
func (s *Session) ListReserves(ctx context.Context, goalID string) ([]ReserveResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/v1/goals/"+goalID+"/reserves", nil, nil)
	if err != nil {
		return nil, err
	}

	var out []ReserveResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// RecordReserve sets the amount saved toward the goal in a given month.
// Posting the same month again overwrites the previous amount.
func (s *Session) RecordReserve(ctx context.Context, goalID string, req ReserveRequest) (*ReserveResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/api/v1/goals/"+goalID+"/reserves", bytes.NewReader(body), jsonHeaders)
	if err != nil {
		return nil, err
	}

	var out ReserveResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
