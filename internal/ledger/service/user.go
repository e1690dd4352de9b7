package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/pennywise-app/pennywise/internal/ledger/domain"
	"github.com/pennywise-app/pennywise/internal/ledger/store"
	"github.com/pennywise-app/pennywise/pkg/cryptox"
	"github.com/pennywise-app/pennywise/pkg/slogx"
)

// ErrForbidden means the acting user lacks the role for the operation.
var ErrForbidden = errors.New("forbidden")

// UserService covers self-service account management plus the admin-only
// user removal.
type UserService struct {
	Store store.Store
}

// ChangePassword swaps the password after verifying the current one. Tokens
// issued before the change remain valid until expiry.
func (s *UserService) ChangePassword(ctx context.Context, userID, current, next string) error {
	l := slogx.FromContext(ctx)

	if len(next) < minPasswordLength {
		return validationErr("password must be at least %d characters", minPasswordLength)
	}

	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := cryptox.VerifyPassword(current, u.PasswordHash); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := cryptox.HashPassword(next)
	if err != nil {
		return err
	}

	if err := s.Store.Users().UpdatePasswordHash(ctx, userID, hash); err != nil {
		return err
	}

	l.Info("password changed", slog.String("user_id", userID))
	return nil
}

// DeleteAccount removes the user and, via schema cascades, everything they
// own. The password is required as confirmation.
func (s *UserService) DeleteAccount(ctx context.Context, userID, password string) error {
	l := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		return ErrInvalidCredentials
	}

	if err := s.Store.Users().DeleteUser(ctx, userID); err != nil {
		return err
	}

	l.Info("account deleted", slog.String("user_id", userID))
	return nil
}

// AdminDeleteUser removes any account. Only admins may call it, and not on
// themselves (DeleteAccount covers that path with password confirmation).
func (s *UserService) AdminDeleteUser(ctx context.Context, actorID, targetID string) error {
	l := slogx.FromContext(ctx)

	actor, err := s.Store.Users().GetUserByID(ctx, actorID)
	if err != nil {
		return err
	}
	if actor.Role != domain.RoleAdmin {
		return ErrForbidden
	}
	if actorID == targetID {
		return validationErr("use the account deletion endpoint to remove your own account")
	}

	if err := s.Store.Users().DeleteUser(ctx, targetID); err != nil {
		return err
	}

	l.Info("user deleted by admin", slog.String("user_id", targetID), slog.String("admin_id", actorID))
	return nil
}
