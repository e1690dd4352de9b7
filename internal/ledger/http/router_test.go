package http

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pennywise-app/pennywise/internal/ledger/service"
	"github.com/pennywise-app/pennywise/internal/ledger/store/drivers/sqlite"
	"github.com/pennywise-app/pennywise/pkg/jwtx"
	"github.com/pennywise-app/pennywise/pkg/ledgersdk"
	"github.com/stretchr/testify/require"
)

// newTestServer wires the full stack (sqlite store, services, router) behind
// an httptest server. accessTTL controls how fast access tokens die.
func newTestServer(t *testing.T, accessTTL time.Duration) *httptest.Server {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	const issuer = "pennywise-test"
	accessSecret := []byte("access-secret-for-tests")
	refreshSecret := []byte("refresh-secret-for-tests")

	verifier := jwtx.NewVerifierHS256(accessSecret, issuer)

	router := NewRouter(verifier, "test", st, slog.Default())
	router.AuthService = &service.AuthService{
		Store:           st,
		AccessSigner:    jwtx.NewSignerHS256(accessSecret, issuer, accessTTL),
		RefreshSigner:   jwtx.NewSignerHS256(refreshSecret, issuer, jwtx.DefaultRefreshTTL),
		RefreshVerifier: jwtx.NewVerifierHS256(refreshSecret, issuer),
	}
	router.UserService = &service.UserService{Store: st}
	router.CategoryService = &service.CategoryService{Store: st}
	router.TransactionService = &service.TransactionService{Store: st}
	router.GoalService = &service.GoalService{Store: st}
	router.InstallmentService = &service.InstallmentService{Store: st}
	router.NotificationService = &service.NotificationService{Store: st}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func TestAuthFlow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	srv := newTestServer(t, jwtx.DefaultAccessTTL)
	client := ledgersdk.NewClient(srv.URL)

	user, err := client.Register(ctx, ledgersdk.RegisterRequest{
		Email:    "alice@example.com",
		Name:     "Alice",
		Password: "hunter22",
	})
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", user.Email)
	require.Equal(t, "user", user.Role)

	t.Run("duplicate registration conflicts", func(t *testing.T) {
		_, err := client.Register(ctx, ledgersdk.RegisterRequest{
			Email:    "alice@example.com",
			Name:     "Alice Again",
			Password: "hunter22",
		})
		var apiErr *ledgersdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, 409, apiErr.StatusCode)
		require.Equal(t, ledgersdk.ErrorCodeConflict, apiErr.Code)
	})

	t.Run("bad credentials are a 401", func(t *testing.T) {
		_, err := client.Login(ctx, "alice@example.com", "wrong")
		var apiErr *ledgersdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, 401, apiErr.StatusCode)
		require.Equal(t, ledgersdk.ErrorCodeInvalidCredential, apiErr.Code)
	})

	session, err := client.Login(ctx, "alice@example.com", "hunter22")
	require.NoError(t, err)
	require.NotNil(t, session.User())
	require.Equal(t, user.ID, session.User().ID)

	t.Run("me returns the account", func(t *testing.T) {
		me, err := session.Me(ctx)
		require.NoError(t, err)
		require.Equal(t, user.ID, me.ID)
		require.NotNil(t, me.LastLogin)
	})

	t.Run("unauthenticated requests are rejected", func(t *testing.T) {
		stale := client.ResumeSession("garbage-token", "")
		_, err := stale.Me(ctx)
		require.ErrorIs(t, err, ledgersdk.ErrSessionExpired)
	})
}

func TestSessionExpiryAgainstServer(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	// Access tokens die instantly; refresh tokens stay good.
	srv := newTestServer(t, -time.Second)
	client := ledgersdk.NewClient(srv.URL)

	_, err := client.Register(ctx, ledgersdk.RegisterRequest{
		Email:    "bob@example.com",
		Name:     "Bob",
		Password: "hunter22",
	})
	require.NoError(t, err)

	session, err := client.Login(ctx, "bob@example.com", "hunter22")
	require.NoError(t, err)

	expiries := 0
	session.OnSessionExpired(func() { expiries++ })

	_, err = session.Me(ctx)
	require.ErrorIs(t, err, ledgersdk.ErrSessionExpired)
	require.Equal(t, 1, expiries)

	t.Run("refresh still works but the new access token is also dead", func(t *testing.T) {
		// The server signs access tokens already expired, so refresh
		// succeeds yet the next call expires the session again. This
		// pins down that refresh is explicit and nothing retries
		// silently.
		require.NoError(t, session.Refresh(ctx))
		require.False(t, session.Expired())

		_, err := session.Me(ctx)
		require.ErrorIs(t, err, ledgersdk.ErrSessionExpired)
		require.Equal(t, 2, expiries)
	})
}

func TestLedgerEndToEnd(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	srv := newTestServer(t, jwtx.DefaultAccessTTL)
	client := ledgersdk.NewClient(srv.URL)

	_, err := client.Register(ctx, ledgersdk.RegisterRequest{
		Email:    "carol@example.com",
		Name:     "Carol",
		Password: "hunter22",
	})
	require.NoError(t, err)

	session, err := client.Login(ctx, "carol@example.com", "hunter22")
	require.NoError(t, err)

	groceries, err := session.CreateCategory(ctx, ledgersdk.CategoryRequest{
		Name: "Groceries", Kind: "expense", Color: "#4caf50",
	})
	require.NoError(t, err)

	t.Run("transactions", func(t *testing.T) {
		_, err := session.CreateTransaction(ctx, ledgersdk.TransactionRequest{
			CategoryID:  &groceries.ID,
			Description: "Weekly shop",
			AmountCents: 8_750,
			Kind:        "expense",
			OccurredOn:  "2026-01-15",
		})
		require.NoError(t, err)

		_, err = session.CreateTransaction(ctx, ledgersdk.TransactionRequest{
			Description: "Salary",
			AmountCents: 500_000,
			Kind:        "income",
			OccurredOn:  "2026-01-25",
		})
		require.NoError(t, err)

		txs, err := session.ListTransactions(ctx, ledgersdk.TransactionListOptions{Month: "2026-01"})
		require.NoError(t, err)
		require.Len(t, txs, 2)

		sum, err := session.MonthlySummary(ctx, "2026-01")
		require.NoError(t, err)
		require.Equal(t, int64(500_000), sum.IncomeCents)
		require.Equal(t, int64(8_750), sum.ExpenseCents)
		require.Equal(t, int64(491_250), sum.NetCents)
	})

	t.Run("goals and reserves", func(t *testing.T) {
		goal, err := session.CreateGoal(ctx, ledgersdk.GoalRequest{
			Name:                "Holiday",
			TargetCents:         100_000,
			MonthlyReserveCents: 50_000,
		})
		require.NoError(t, err)
		require.Equal(t, "active", goal.Status)

		_, err = session.RecordReserve(ctx, goal.ID, ledgersdk.ReserveRequest{Month: "2026-01", SavedCents: 50_000})
		require.NoError(t, err)
		_, err = session.RecordReserve(ctx, goal.ID, ledgersdk.ReserveRequest{Month: "2026-02", SavedCents: 50_000})
		require.NoError(t, err)

		got, err := session.GetGoal(ctx, goal.ID)
		require.NoError(t, err)
		require.Equal(t, int64(100_000), got.SavedCents)
		require.Equal(t, "reached", got.Status)

		reserves, err := session.ListReserves(ctx, goal.ID)
		require.NoError(t, err)
		require.Len(t, reserves, 2)

		notifs, err := session.ListNotifications(ctx, true)
		require.NoError(t, err)
		require.Len(t, notifs, 1)
		require.Equal(t, "goal_reached", notifs[0].Kind)

		require.NoError(t, session.MarkNotificationRead(ctx, notifs[0].ID))
		unread, err := session.ListNotifications(ctx, true)
		require.NoError(t, err)
		require.Empty(t, unread)
	})

	t.Run("installments", func(t *testing.T) {
		plan, err := session.CreateInstallment(ctx, ledgersdk.InstallmentRequest{
			Description:   "Laptop",
			TotalCents:    300_000,
			MonthsTotal:   12,
			FirstDueMonth: "2026-02",
			CategoryID:    &groceries.ID,
		})
		require.NoError(t, err)
		require.False(t, plan.Settled)

		paid, err := session.PayInstallment(ctx, plan.ID)
		require.NoError(t, err)
		require.Equal(t, 1, paid.MonthsPaid)

		txs, err := session.ListTransactions(ctx, ledgersdk.TransactionListOptions{Kind: "expense"})
		require.NoError(t, err)

		var found bool
		for _, tx := range txs {
			if tx.AmountCents == 25_000 {
				found = true
			}
		}
		require.True(t, found, "installment payment should appear as an expense")
	})

	t.Run("cross-user isolation", func(t *testing.T) {
		_, err := client.Register(ctx, ledgersdk.RegisterRequest{
			Email:    "mallory@example.com",
			Name:     "Mallory",
			Password: "hunter22",
		})
		require.NoError(t, err)

		other, err := client.Login(ctx, "mallory@example.com", "hunter22")
		require.NoError(t, err)

		_, err = other.GetCategory(ctx, groceries.ID)
		var apiErr *ledgersdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, 404, apiErr.StatusCode)
	})
}
