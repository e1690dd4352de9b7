package ledgersdk

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
)

// Session is an authenticated view of the API. It never refreshes tokens
// behind the caller's back: the first 401 from the server marks the session
// expired, fires the OnSessionExpired callback exactly once, and every later
// call fails fast with ErrSessionExpired until Refresh succeeds. That keeps
// "you got logged out" a single, explicit event the application can react to
// (show the login screen, drop cached state) instead of a retry loop.
type Session struct {
	client *Client

	mu           sync.RWMutex
	user         *UserResponse
	accessToken  string
	refreshToken string
	expired      bool
	onExpired    func()
}

func newSession(client *Client, tokens *TokenResponse) *Session {
	user := tokens.User
	return &Session{
		client:       client,
		user:         &user,
		accessToken:  tokens.AccessToken,
		refreshToken: tokens.RefreshToken,
	}
}

// User returns the account snapshot from the last login or refresh. Nil on a
// resumed session until Refresh or Me has been called.
func (s *Session) User() *UserResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// OnSessionExpired registers the callback invoked when the server first
// rejects this session's access token. At most one invocation per expiry;
// a successful Refresh re-arms it.
func (s *Session) OnSessionExpired(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onExpired = fn
}

// Expired reports whether the session has been marked expired.
func (s *Session) Expired() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expired
}

// AccessToken returns the current access token, e.g. for persisting across
// restarts.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// RefreshToken returns the current refresh token.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// Refresh exchanges the stored refresh token for a new pair and revives the
// session. If the refresh token itself is rejected the session stays expired.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.RLock()
	refreshToken := s.refreshToken
	s.mu.RUnlock()

	if refreshToken == "" {
		return fmt.Errorf("no refresh token available")
	}

	tokens, err := s.client.RefreshTokens(ctx, refreshToken)
	if err != nil {
		return err
	}

	user := tokens.User
	s.mu.Lock()
	s.user = &user
	s.accessToken = tokens.AccessToken
	s.refreshToken = tokens.RefreshToken
	s.expired = false
	s.mu.Unlock()
	return nil
}

// Logout forgets the tokens locally. Nothing is revoked server-side; the
// tokens simply age out.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.accessToken = ""
	s.refreshToken = ""
	s.expired = true
}

// markExpired flips the expired flag and fires the callback on the first
// flip only. Safe under concurrent 401s.
func (s *Session) markExpired() {
	s.mu.Lock()
	first := !s.expired
	s.expired = true
	fn := s.onExpired
	s.mu.Unlock()

	if first && fn != nil {
		fn()
	}
}

// doAuthRequest performs an authenticated request. A 401 response is
// swallowed here: the session is marked expired and ErrSessionExpired comes
// back instead of the raw response.
func (s *Session) doAuthRequest(
	ctx context.Context,
	method, path string,
	body io.Reader,
	headers map[string]string,
) (*http.Response, error) {
	s.mu.RLock()
	token := s.accessToken
	expired := s.expired
	s.mu.RUnlock()

	if expired {
		return nil, ErrSessionExpired
	}

	req, err := http.NewRequestWithContext(ctx, method, s.client.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := s.client.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		s.markExpired()
		return nil, ErrSessionExpired
	}
	return resp, nil
}
