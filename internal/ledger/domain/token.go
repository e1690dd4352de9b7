package domain

import "time"

// TokenPair is the access/refresh pair handed out on login and refresh.
// Both tokens are stateless JWTs; nothing about them is persisted, so issuing
// a new pair never invalidates an old one before its natural expiry.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration // access token lifetime
}
