package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpapi "github.com/projectalpha/alpha/internal/api/http"
	"github.com/projectalpha/alpha/internal/api/service"
	"github.com/projectalpha/alpha/internal/api/storage"
	"github.com/projectalpha/alpha/internal/api/store"
	"github.com/projectalpha/alpha/internal/api/store/drivers/sqlite"
	"github.com/projectalpha/alpha/pkg/jwtx"
	"github.com/projectalpha/alpha/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v2.0.0"
)

// Application encapsulates the API service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db      store.Store
	uploads storage.Store
	codec   *jwtx.HS256

	authService  *service.AuthService
	tokenService *service.TokenService
	userService  *service.UserService
	postService  *service.PostService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "alpha-api",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	codec, err := jwtx.NewHS256([]byte(cfg.TokenSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token codec: %w", err)
	}
	app.codec = codec

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initStorage(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("api starting", "port", app.cfg.Port, "version", BuildVersion)

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
	app.logger.Info("shutting down api...")

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

	app.logger.Info("api stopped")
	return nil
}

// Handler exposes the fully wired HTTP handler for in-process tests.
func (app *Application) Handler() http.Handler {
	return app.router
}

// initDatabase opens the database and applies migrations.
func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
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

// initStorage selects and initializes the attachment storage driver.
func (app *Application) initStorage() error {
	switch app.cfg.UploadDriver {
	case "", "local":
		uploads, err := storage.NewLocal(app.cfg.UploadDir, "/uploads")
		if err != nil {
			return fmt.Errorf("failed to initialize upload storage: %w", err)
		}
		app.uploads = uploads
	case "s3":
		uploads, err := storage.NewS3(context.Background(), storage.S3Config{
			Region:    app.cfg.S3Region,
			Bucket:    app.cfg.S3Bucket,
			AccessKey: app.cfg.S3AccessKey,
			SecretKey: app.cfg.S3SecretKey,
			Endpoint:  app.cfg.S3Endpoint,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize s3 storage: %w", err)
		}
		app.uploads = uploads
	default:
		return fmt.Errorf("unknown upload driver %q", app.cfg.UploadDriver)
	}

	app.logger.Info("upload storage initialized", "driver", app.cfg.UploadDriver)
	return nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	app.authService = &service.AuthService{Store: app.db}
	app.tokenService = &service.TokenService{
		Signer:     app.codec,
		SessionTTL: app.cfg.TokenTTL,
	}
	app.userService = &service.UserService{Store: app.db}
	app.postService = &service.PostService{
		Store:   app.db,
		Storage: app.uploads,
	}
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.codec,
		BuildVersion,
		app.logger,
		app.cfg.CORSAllowedOrigins,
	)

	router.AuthService = app.authService
	router.TokenService = app.tokenService
	router.UserService = app.userService
	router.PostService = app.postService
	router.MaxUploadSize = app.cfg.MaxUploadSize
	if app.cfg.UploadDriver == "" || app.cfg.UploadDriver == "local" {
		router.UploadDir = app.cfg.UploadDir
	}

	router.ApplyRoutes()
	app.router = router

	app.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", app.cfg.Port),
		Handler: router,
	}
}
