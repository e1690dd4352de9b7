package service

import (
	"context"
	"testing"
	"time"

	"github.com/pennywise-app/pennywise/internal/ledger/domain"
	"github.com/pennywise-app/pennywise/internal/ledger/store"
	"github.com/pennywise-app/pennywise/internal/ledger/store/drivers/sqlite"
	"github.com/pennywise-app/pennywise/pkg/idx"
	"github.com/pennywise-app/pennywise/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newAuthService(st store.Store) *AuthService {
	access := []byte("access-secret-for-tests")
	refresh := []byte("refresh-secret-for-tests")

	return &AuthService{
		Store:           st,
		AccessSigner:    jwtx.NewSignerHS256(access, "pennywise-test", jwtx.DefaultAccessTTL),
		RefreshSigner:   jwtx.NewSignerHS256(refresh, "pennywise-test", jwtx.DefaultRefreshTTL),
		RefreshVerifier: jwtx.NewVerifierHS256(refresh, "pennywise-test"),
	}
}

func TestRegisterAndLogin(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	svc := newAuthService(st)

	u, err := svc.Register(ctx, "Alice@Example.com", "Alice", "hunter22")
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", u.Email, "email should be lowercased")
	require.NotEmpty(t, u.ID)
	require.Nil(t, u.LastLogin)

	t.Run("login returns a token pair", func(t *testing.T) {
		got, pair, err := svc.Login(ctx, "alice@example.com", "hunter22")
		require.NoError(t, err)
		require.Equal(t, u.ID, got.ID)
		require.NotEmpty(t, pair.AccessToken)
		require.NotEmpty(t, pair.RefreshToken)
		require.NotEqual(t, pair.AccessToken, pair.RefreshToken)
		require.Equal(t, jwtx.DefaultAccessTTL, pair.ExpiresIn)
	})

	t.Run("login stamps last_login", func(t *testing.T) {
		got, err := st.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.NotNil(t, got.LastLogin)
		require.WithinDuration(t, time.Now(), *got.LastLogin, time.Minute)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "alice@example.com", "wrong-password")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email is indistinguishable", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "nobody@example.com", "hunter22")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newAuthService(newTestStore(t))

	t.Run("rejects malformed email", func(t *testing.T) {
		_, err := svc.Register(ctx, "not-an-email", "Bob", "hunter22")
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := svc.Register(ctx, "bob@example.com", "Bob", "short")
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := svc.Register(ctx, "bob@example.com", "  ", "hunter22")
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, "bob@example.com", "Bob", "hunter22")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "BOB@example.com", "Other Bob", "hunter22")
		require.ErrorIs(t, err, ErrEmailInUse)
	})
}

func TestRefresh(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	svc := newAuthService(st)

	u, err := svc.Register(ctx, "carol@example.com", "Carol", "hunter22")
	require.NoError(t, err)

	_, pair, err := svc.Login(ctx, "carol@example.com", "hunter22")
	require.NoError(t, err)

	t.Run("valid refresh issues a new pair", func(t *testing.T) {
		got, next, err := svc.Refresh(ctx, pair.RefreshToken)
		require.NoError(t, err)
		require.Equal(t, u.ID, got.ID)
		require.NotEmpty(t, next.AccessToken)
		require.NotEmpty(t, next.RefreshToken)
	})

	t.Run("access token cannot be used as refresh", func(t *testing.T) {
		_, _, err := svc.Refresh(ctx, pair.AccessToken)
		require.ErrorIs(t, err, ErrInvalidRefresh)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, _, err := svc.Refresh(ctx, "not.a.token")
		require.ErrorIs(t, err, ErrInvalidRefresh)
	})

	t.Run("missing token is a validation error", func(t *testing.T) {
		_, _, err := svc.Refresh(ctx, "")
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("refresh for a deleted user is not found", func(t *testing.T) {
		require.NoError(t, st.Users().DeleteUser(ctx, u.ID))

		_, _, err := svc.Refresh(ctx, pair.RefreshToken)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestChangePassword(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	auth := newAuthService(st)
	users := &UserService{Store: st}

	u, err := auth.Register(ctx, "dave@example.com", "Dave", "original-pw")
	require.NoError(t, err)

	t.Run("requires the current password", func(t *testing.T) {
		err := users.ChangePassword(ctx, u.ID, "wrong-pw", "replacement-pw")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("rejects short replacements", func(t *testing.T) {
		err := users.ChangePassword(ctx, u.ID, "original-pw", "pw")
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("old password stops working after the change", func(t *testing.T) {
		require.NoError(t, users.ChangePassword(ctx, u.ID, "original-pw", "replacement-pw"))

		_, _, err := auth.Login(ctx, "dave@example.com", "original-pw")
		require.ErrorIs(t, err, ErrInvalidCredentials)

		_, _, err = auth.Login(ctx, "dave@example.com", "replacement-pw")
		require.NoError(t, err)
	})
}

func TestAdminDeleteUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	auth := newAuthService(st)
	users := &UserService{Store: st}

	admin := domain.User{
		ID:           idx.New().String(),
		Email:        "root@example.com",
		Name:         "Root",
		PasswordHash: "irrelevant",
		Role:         domain.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, st.Users().CreateUser(ctx, admin))

	target, err := auth.Register(ctx, "eve@example.com", "Eve", "hunter22")
	require.NoError(t, err)

	t.Run("regular users are forbidden", func(t *testing.T) {
		err := users.AdminDeleteUser(ctx, target.ID, admin.ID)
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("admins cannot delete themselves here", func(t *testing.T) {
		err := users.AdminDeleteUser(ctx, admin.ID, admin.ID)
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("admin removes the account", func(t *testing.T) {
		require.NoError(t, users.AdminDeleteUser(ctx, admin.ID, target.ID))

		_, err := st.Users().GetUserByID(ctx, target.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("missing target is not found", func(t *testing.T) {
		err := users.AdminDeleteUser(ctx, admin.ID, target.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}
