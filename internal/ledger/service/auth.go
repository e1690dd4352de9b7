// Package service holds the business rules between the HTTP handlers and the
// store. Every method takes the acting user's ID explicitly; nothing in here
// trusts the caller to have scoped its own queries.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/pennywise-app/pennywise/internal/ledger/domain"
	"github.com/pennywise-app/pennywise/internal/ledger/store"
	"github.com/pennywise-app/pennywise/pkg/cryptox"
	"github.com/pennywise-app/pennywise/pkg/idx"
	"github.com/pennywise-app/pennywise/pkg/jwtx"
	"github.com/pennywise-app/pennywise/pkg/slogx"
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrEmailInUse         = errors.New("email_in_use")
	ErrInvalidRefresh     = errors.New("invalid_refresh_token")

	// ErrValidation is the root of all input validation failures; wrap it
	// with the human-readable detail.
	ErrValidation = errors.New("validation_error")
)

func validationErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

const minPasswordLength = 6

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AuthService issues and renews token pairs. Access and refresh tokens are
// signed with separate secrets so one can never pass for the other.
type AuthService struct {
	Store           store.Store
	AccessSigner    *jwtx.HS256Signer
	RefreshSigner   *jwtx.HS256Signer
	RefreshVerifier jwtx.Verifier
}

// Register creates a new account. It never issues tokens; the client logs in
// as a separate step.
func (s *AuthService) Register(ctx context.Context, email, name, password string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)

	if !emailRe.MatchString(email) {
		return domain.User{}, validationErr("invalid email address")
	}
	if name == "" {
		return domain.User{}, validationErr("name is required")
	}
	if len(password) < minPasswordLength {
		return domain.User{}, validationErr("password must be at least %d characters", minPasswordLength)
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	u := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailInUse
		}
		return domain.User{}, err
	}

	l.Info("user registered", slog.String("user_id", u.ID))
	return u, nil
}

// Login verifies the credentials and returns a fresh token pair. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, *domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn a hash comparison anyway so response timing does not
			// reveal whether the email exists.
			_ = cryptox.VerifyPassword(password, cryptox.DummyHash)
			return domain.User{}, nil, ErrInvalidCredentials
		}
		return domain.User{}, nil, err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		l.Info("login failed", slog.String("user_id", u.ID))
		return domain.User{}, nil, ErrInvalidCredentials
	}

	if err := s.Store.Users().TouchLastLogin(ctx, u.ID); err != nil {
		l.Error("failed to stamp last login", slog.Any("error", err), slog.String("user_id", u.ID))
	}

	pair, err := s.issuePair(u.ID)
	if err != nil {
		return domain.User{}, nil, err
	}

	l.Info("user logged in", slog.String("user_id", u.ID))
	return u, pair, nil
}

// Refresh exchanges a valid refresh token for a brand-new pair. The old
// tokens stay valid until their natural expiry; there is no server-side
// revocation. A token whose subject no longer resolves to a live account
// fails with store.ErrNotFound even though its signature checks out.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (domain.User, *domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	if refreshToken == "" {
		return domain.User{}, nil, validationErr("refresh_token is required")
	}

	claims, err := s.RefreshVerifier.Verify(refreshToken)
	if err != nil {
		return domain.User{}, nil, ErrInvalidRefresh
	}

	u, err := s.Store.Users().GetUserByID(ctx, claims.UserID())
	if err != nil {
		return domain.User{}, nil, err
	}

	if err := s.Store.Users().TouchLastLogin(ctx, u.ID); err != nil {
		l.Error("failed to stamp last login", slog.Any("error", err), slog.String("user_id", u.ID))
	}

	pair, err := s.issuePair(u.ID)
	if err != nil {
		return domain.User{}, nil, err
	}
	return u, pair, nil
}

// Me returns the account behind the user ID.
func (s *AuthService) Me(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

func (s *AuthService) issuePair(userID string) (*domain.TokenPair, error) {
	access, err := s.AccessSigner.Sign(userID)
	if err != nil {
		return nil, err
	}
	refresh, err := s.RefreshSigner.Sign(userID)
	if err != nil {
		return nil, err
	}
	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    s.AccessSigner.TTL(),
	}, nil
}
