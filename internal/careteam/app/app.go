package app

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/careteamhq/careteam/internal/careteam/email"
	httpapi "github.com/careteamhq/careteam/internal/careteam/http"
	"github.com/careteamhq/careteam/internal/careteam/rbac"
	"github.com/careteamhq/careteam/internal/careteam/service"
	"github.com/careteamhq/careteam/internal/careteam/store"
	"github.com/careteamhq/careteam/internal/careteam/store/drivers/sqlite"
	"github.com/careteamhq/careteam/pkg/jwtx"
	"github.com/careteamhq/careteam/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the careteam service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	signer   *jwtx.HS256
	catalog  *rbac.Catalog
	resolver *rbac.Resolver
	mailer   email.Mailer

	userService         *service.UserService
	invitationService   *service.InvitationService
	clientService       *service.ClientService
	relationshipService *service.RelationshipService
	accessService       *service.AccessService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "careteam",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initSigner(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	if err := app.initMailer(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.catalog = rbac.DefaultCatalog()
	app.resolver = rbac.NewResolver(app.catalog)

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("careteam service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
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
	app.logger.Info("shutting down careteam service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("careteam service stopped")
	return nil
}

func (app *Application) initDatabase() error {
	// Connection pragmas (busy_timeout, FKs, WAL) are appended by NewStore.
	db, err := sqlite.NewStore("file:" + app.cfg.DatabaseFile)
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

// initSigner loads the HS256 secret, generating one on first start so
// local development works out of the box. Tokens do not survive a
// regenerated secret.
func (app *Application) initSigner() error {
	secret, err := os.ReadFile(app.cfg.JWTSecretFile)
	if errors.Is(err, os.ErrNotExist) {
		secret = make([]byte, 64)
		if _, err := rand.Read(secret); err != nil {
			return fmt.Errorf("failed to generate jwt secret: %w", err)
		}
		if err := os.WriteFile(app.cfg.JWTSecretFile, secret, 0o600); err != nil {
			return fmt.Errorf("failed to write jwt secret file: %w", err)
		}
		app.logger.Warn("generated new jwt secret", "path", app.cfg.JWTSecretFile)
	} else if err != nil {
		return fmt.Errorf("failed to read jwt secret file: %w", err)
	}

	signer, err := jwtx.NewHS256(secret, app.cfg.Issuer)
	if err != nil {
		return fmt.Errorf("failed to initialize token signer: %w", err)
	}
	app.signer = signer
	return nil
}

func (app *Application) initMailer() error {
	if app.cfg.SESFromEmail == "" {
		app.logger.Info("email delivery disabled: SES_FROM_EMAIL not configured")
		app.mailer = email.DisabledMailer{}
		return nil
	}

	mailer, err := email.NewSESMailer(context.Background(),
		app.cfg.SESRegion, app.cfg.SESFromEmail, app.cfg.SESFromName)
	if err != nil {
		return fmt.Errorf("failed to initialize SES mailer: %w", err)
	}
	app.mailer = mailer
	app.logger.Info("email delivery enabled",
		"from", app.cfg.SESFromEmail, "region", app.cfg.SESRegion)
	return nil
}

func (app *Application) initServices() {
	app.userService = &service.UserService{
		Store:          app.db,
		Resolver:       app.resolver,
		Signer:         app.signer,
		Issuer:         app.cfg.Issuer,
		AccessTokenTTL: jwtx.DefaultAccessTokenTTL,
	}
	app.invitationService = &service.InvitationService{
		Store:     app.db,
		Mailer:    app.mailer,
		Resolver:  app.resolver,
		AppOrigin: app.cfg.AppOrigin,
		TTL:       app.cfg.InvitationTTL,
	}
	app.clientService = &service.ClientService{Store: app.db}
	app.relationshipService = &service.RelationshipService{Store: app.db}
	app.accessService = &service.AccessService{
		Store:    app.db,
		Resolver: app.resolver,
	}
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.signer,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.UserService = app.userService
	router.InvitationService = app.invitationService
	router.ClientService = app.clientService
	router.RelationshipService = app.relationshipService
	router.AccessService = app.accessService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
