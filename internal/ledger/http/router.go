// Package http wires the Pennywise API surface: authentication, the ledger
// resources under /api/v1, and the operational endpoints.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/pennywise-app/pennywise/internal/ledger/service"
	"github.com/pennywise-app/pennywise/internal/ledger/store"
	"github.com/pennywise-app/pennywise/pkg/httpx"
	"github.com/pennywise-app/pennywise/pkg/jwtx"
	"github.com/pennywise-app/pennywise/pkg/slogx"

	_ "github.com/pennywise-app/pennywise/api/ledger" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	AuthService         *service.AuthService
	UserService         *service.UserService
	CategoryService     *service.CategoryService
	TransactionService  *service.TransactionService
	GoalService         *service.GoalService
	InstallmentService  *service.InstallmentService
	NotificationService *service.NotificationService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.MetricsMiddleware(),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerAccount()
	r.registerCategories()
	r.registerTransactions()
	r.registerGoals()
	r.registerInstallments()
	r.registerNotifications()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
//
//	@title			Pennywise API
//	@version		0.1.0
//	@description	Personal finance tracker: transactions, categories, savings goals with monthly reserves, installment plans and notifications.
//	@description
//	@description	Authentication uses stateless JWT pairs: a short-lived access token and a longer-lived refresh token, both HS256-signed.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// secured wraps h with bearer authentication and a per-user rate limit.
func (r *Router) secured(h http.Handler, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(limit),
	)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	// Credential endpoints get the strict limit; they are the brute-force
	// surface.
	r.Mux.Handle("POST /auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /auth/refresh",
		httpx.Chain(http.HandlerFunc(h.HandleRefresh),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("GET /auth/me", r.secured(http.HandlerFunc(h.HandleMe), httpx.LenientLimit))
}

func (r *Router) registerAccount() {
	h := &AccountHandler{UserService: r.UserService}

	r.Mux.Handle("PUT /api/v1/account/password",
		r.secured(http.HandlerFunc(h.HandleChangePassword), httpx.StrictLimit))
	r.Mux.Handle("DELETE /api/v1/account",
		r.secured(http.HandlerFunc(h.HandleDeleteAccount), httpx.StrictLimit))
	r.Mux.Handle("DELETE /api/v1/users/{id}",
		r.secured(http.HandlerFunc(h.HandleAdminDeleteUser), httpx.ModerateLimit))
}

func (r *Router) registerCategories() {
	h := &CategoriesHandler{CategoryService: r.CategoryService}

	r.Mux.Handle("GET /api/v1/categories", r.secured(http.HandlerFunc(h.HandleList), httpx.LenientLimit))
	r.Mux.Handle("POST /api/v1/categories", r.secured(http.HandlerFunc(h.HandleCreate), httpx.ModerateLimit))
	r.Mux.Handle("GET /api/v1/categories/{id}", r.secured(http.HandlerFunc(h.HandleGet), httpx.LenientLimit))
	r.Mux.Handle("PUT /api/v1/categories/{id}", r.secured(http.HandlerFunc(h.HandleUpdate), httpx.ModerateLimit))
	r.Mux.Handle("DELETE /api/v1/categories/{id}", r.secured(http.HandlerFunc(h.HandleDelete), httpx.ModerateLimit))
}

func (r *Router) registerTransactions() {
	h := &TransactionsHandler{TransactionService: r.TransactionService}

	r.Mux.Handle("GET /api/v1/transactions", r.secured(http.HandlerFunc(h.HandleList), httpx.LenientLimit))
	r.Mux.Handle("POST /api/v1/transactions", r.secured(http.HandlerFunc(h.HandleCreate), httpx.ModerateLimit))
	r.Mux.Handle("GET /api/v1/transactions/summary", r.secured(http.HandlerFunc(h.HandleSummary), httpx.LenientLimit))
	r.Mux.Handle("GET /api/v1/transactions/{id}", r.secured(http.HandlerFunc(h.HandleGet), httpx.LenientLimit))
	r.Mux.Handle("PUT /api/v1/transactions/{id}", r.secured(http.HandlerFunc(h.HandleUpdate), httpx.ModerateLimit))
	r.Mux.Handle("DELETE /api/v1/transactions/{id}", r.secured(http.HandlerFunc(h.HandleDelete), httpx.ModerateLimit))
}

func (r *Router) registerGoals() {
	h := &GoalsHandler{GoalService: r.GoalService}

	r.Mux.Handle("GET /api/v1/goals", r.secured(http.HandlerFunc(h.HandleList), httpx.LenientLimit))
	r.Mux.Handle("POST /api/v1/goals", r.secured(http.HandlerFunc(h.HandleCreate), httpx.ModerateLimit))
	r.Mux.Handle("GET /api/v1/goals/{id}", r.secured(http.HandlerFunc(h.HandleGet), httpx.LenientLimit))
	r.Mux.Handle("PUT /api/v1/goals/{id}", r.secured(http.HandlerFunc(h.HandleUpdate), httpx.ModerateLimit))
	r.Mux.Handle("POST /api/v1/goals/{id}/abandon", r.secured(http.HandlerFunc(h.HandleAbandon), httpx.ModerateLimit))
	r.Mux.Handle("DELETE /api/v1/goals/{id}", r.secured(http.HandlerFunc(h.HandleDelete), httpx.ModerateLimit))
	r.Mux.Handle("GET /api/v1/goals/{id}/reserves", r.secured(http.HandlerFunc(h.HandleListReserves), httpx.LenientLimit))
	r.Mux.Handle("POST /api/v1/goals/{id}/reserves", r.secured(http.HandlerFunc(h.HandleRecordReserve), httpx.ModerateLimit))
}

func (r *Router) registerInstallments() {
	h := &InstallmentsHandler{InstallmentService: r.InstallmentService}

	r.Mux.Handle("GET /api/v1/installments", r.secured(http.HandlerFunc(h.HandleList), httpx.LenientLimit))
	r.Mux.Handle("POST /api/v1/installments", r.secured(http.HandlerFunc(h.HandleCreate), httpx.ModerateLimit))
	r.Mux.Handle("GET /api/v1/installments/{id}", r.secured(http.HandlerFunc(h.HandleGet), httpx.LenientLimit))
	r.Mux.Handle("POST /api/v1/installments/{id}/pay", r.secured(http.HandlerFunc(h.HandlePay), httpx.ModerateLimit))
	r.Mux.Handle("DELETE /api/v1/installments/{id}", r.secured(http.HandlerFunc(h.HandleDelete), httpx.ModerateLimit))
}

func (r *Router) registerNotifications() {
	h := &NotificationsHandler{NotificationService: r.NotificationService}

	r.Mux.Handle("GET /api/v1/notifications", r.secured(http.HandlerFunc(h.HandleList), httpx.LenientLimit))
	r.Mux.Handle("POST /api/v1/notifications/read-all", r.secured(http.HandlerFunc(h.HandleMarkAllRead), httpx.ModerateLimit))
	r.Mux.Handle("POST /api/v1/notifications/{id}/read", r.secured(http.HandlerFunc(h.HandleMarkRead), httpx.ModerateLimit))
	r.Mux.Handle("DELETE /api/v1/notifications/{id}", r.secured(http.HandlerFunc(h.HandleDelete), httpx.ModerateLimit))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
	r.Mux.Handle("GET /metrics", httpx.MetricsHandler())
}
