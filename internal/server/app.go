// Package server initializes and runs the CarVault application server. It
// wires configuration, logging, the storage backend for both collections,
// repositories and services, and handles graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"carvault/internal/docstore"
	"carvault/internal/logging"
	"carvault/internal/server/auth"
	"carvault/internal/server/cars"
	"carvault/internal/server/config"
	"carvault/internal/server/httpapi"
	"carvault/internal/server/users"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	tokens      *auth.TokenService
	userService *users.Service
	carService  *cars.Service
}

// newBackend builds the snapshot backend of one collection for the
// configured storage driver. db is only consulted by the postgres driver.
func newBackend(ctx context.Context, cfg *config.Config, db *sql.DB, name string) (docstore.Backend, error) {
	switch cfg.StorageDriver {
	case config.DriverFile:
		return docstore.NewFileBackend(cfg.DataDir, name)
	case config.DriverPostgres:
		return docstore.NewPostgresBackend(db, name), nil
	case config.DriverS3:
		return docstore.NewS3Backend(ctx, docstore.S3Options{
			RootUser:     cfg.S3RootUser,
			RootPassword: cfg.S3RootPassword,
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
		}, name)
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.StorageDriver)
	}
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout)

	var db *sql.DB
	if cfg.StorageDriver == config.DriverPostgres {
		var err error
		db, err = docstore.OpenPostgres(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
	}

	usersBackend, err := newBackend(ctx, cfg, db, "users")
	if err != nil {
		return nil, fmt.Errorf("users backend init error: %w", err)
	}

	carsBackend, err := newBackend(ctx, cfg, db, "cars")
	if err != nil {
		return nil, fmt.Errorf("cars backend init error: %w", err)
	}

	tokens := auth.NewTokenService(cfg.SecretKey, cfg.TokenValidityDuration)
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)

	userRepo := users.NewDocStoreRepository(docstore.New[users.User]("users", usersBackend))
	carRepo := cars.NewDocStoreRepository(docstore.New[cars.Car]("cars", carsBackend))

	us := users.NewService(userRepo, hasher, tokens)
	cs := cars.NewService(carRepo)

	return &App{config: cfg, logger: logger, tokens: tokens, userService: us, carService: cs}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewServer(app.config.EndpointAddrHTTP, app.logger, app.tokens, app.userService, app.carService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...", "driver", app.config.StorageDriver)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
