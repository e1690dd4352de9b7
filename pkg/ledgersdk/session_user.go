package ledgersdk

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
)

// Me returns the authenticated account and updates the session's cached
// user snapshot.
func (s *Session) Me(ctx context.Context) (*UserResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/auth/me", nil, nil)
	if err != nil {
		return nil, err
	}

	var user UserResponse
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}

	s.mu.Lock()
	snapshot := user
	s.user = &snapshot
	s.mu.Unlock()

	return &user, nil
}

// AdminDeleteUser removes another user's account. Requires the admin role.
func (s *Session) AdminDeleteUser(ctx context.Context, id string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/api/v1/users/"+id, nil, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// ChangePassword swaps the password. Existing tokens, including this
// session's, stay valid until expiry.
func (s *Session) ChangePassword(ctx context.Context, current, next string) error {
	body, err := json.Marshal(ChangePasswordRequest{CurrentPassword: current, NewPassword: next})
	if err != nil {
		return err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPut, "/api/v1/account/password", bytes.NewReader(body), jsonHeaders)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// DeleteAccount removes the account and everything it owns. The password is
// required as confirmation. The session is logged out locally on success.
func (s *Session) DeleteAccount(ctx context.Context, password string) error {
	body, err := json.Marshal(DeleteAccountRequest{Password: password})
	if err != nil {
		return err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/api/v1/account", bytes.NewReader(body), jsonHeaders)
	if err != nil {
		return err
	}
	if err := checkStatusNoContent(resp); err != nil {
		return err
	}

	s.Logout()
	return nil
}
