package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/pennywise-app/pennywise/internal/ledger/http"
	"github.com/pennywise-app/pennywise/internal/ledger/service"
	"github.com/pennywise-app/pennywise/internal/ledger/store"
	"github.com/pennywise-app/pennywise/internal/ledger/store/drivers/sqlite"
	"github.com/pennywise-app/pennywise/pkg/jwtx"
	"github.com/pennywise-app/pennywise/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the ledger service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db store.Store

	// Services
	authService         *service.AuthService
	userService         *service.UserService
	categoryService     *service.CategoryService
	transactionService  *service.TransactionService
	goalService         *service.GoalService
	installmentService  *service.InstallmentService
	notificationService *service.NotificationService
	reserveWorker       *service.ReserveWorker

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "pennywise",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if !SecretsFromEnv() {
		app.logger.Warn("token signing secrets not configured, using insecure dev defaults")
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.reserveWorker.Start()

	app.logger.Info("ledger service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down ledger service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.reserveWorker.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("ledger service stopped")
	return nil
}

// initDatabase opens the database and applies migrations.
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	app.authService = &service.AuthService{
		Store:           app.db,
		AccessSigner:    jwtx.NewSignerHS256([]byte(app.cfg.AccessSecret), app.cfg.Issuer, app.cfg.AccessTTL),
		RefreshSigner:   jwtx.NewSignerHS256([]byte(app.cfg.RefreshSecret), app.cfg.Issuer, app.cfg.RefreshTTL),
		RefreshVerifier: jwtx.NewVerifierHS256([]byte(app.cfg.RefreshSecret), app.cfg.Issuer),
	}

	app.userService = &service.UserService{Store: app.db}
	app.categoryService = &service.CategoryService{Store: app.db}
	app.transactionService = &service.TransactionService{Store: app.db}
	app.goalService = &service.GoalService{Store: app.db}
	app.installmentService = &service.InstallmentService{Store: app.db}
	app.notificationService = &service.NotificationService{Store: app.db}

	app.reserveWorker = service.NewReserveWorker(app.db, app.logger, app.cfg.ReserveInterval)
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		jwtx.NewVerifierHS256([]byte(app.cfg.AccessSecret), app.cfg.Issuer),
		BuildVersion,
		app.db,
		app.logger,
	)

	router.AuthService = app.authService
	router.UserService = app.userService
	router.CategoryService = app.categoryService
	router.TransactionService = app.transactionService
	router.GoalService = app.goalService
	router.InstallmentService = app.installmentService
	router.NotificationService = app.notificationService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
