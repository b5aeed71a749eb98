// Package app initializes and runs the main application service.
// It configures logging, storage, authentication, and routing,
// and handles graceful shutdown.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/patric-chuzhbe/courseapi/internal/auth"
	"github.com/patric-chuzhbe/courseapi/internal/config"
	"github.com/patric-chuzhbe/courseapi/internal/db/memorystorage"
	"github.com/patric-chuzhbe/courseapi/internal/db/postgresdb"
	"github.com/patric-chuzhbe/courseapi/internal/logger"
	"github.com/patric-chuzhbe/courseapi/internal/models"
	"github.com/patric-chuzhbe/courseapi/internal/router"
	"github.com/patric-chuzhbe/courseapi/internal/service"
	"github.com/patric-chuzhbe/courseapi/internal/user"
	"github.com/patric-chuzhbe/courseapi/internal/validation"
)

type userKeeper interface {
	CreateUser(ctx context.Context, usr *user.User) (int, error)
	FindUserByEmail(ctx context.Context, emailAddress string) (*user.User, bool, error)
}

type courseKeeper interface {
	ListCourses(ctx context.Context) ([]models.CourseWithOwner, error)
	GetCourse(ctx context.Context, courseID int) (*models.CourseWithOwner, bool, error)
	CreateCourse(ctx context.Context, course *models.Course) (int, error)
	UpdateCourse(ctx context.Context, course *models.Course) (bool, error)
	DeleteCourse(ctx context.Context, courseID int) error
}

type pinger interface {
	Ping(ctx context.Context) error
}

type storage interface {
	userKeeper
	courseKeeper
	pinger
	Close() error
}

// App encapsulates the configuration, HTTP handler, and storage backend
// needed to run the course catalog service.
type App struct {
	cfg         *config.Config
	db          storage
	httpHandler http.Handler
}

// New initializes a new instance of App by:
// - loading configuration
// - initializing logger
// - selecting and setting up storage
// - setting up the router and middleware
func New() (*App, error) {
	var err error
	app := &App{}

	app.cfg, err = config.New()
	if err != nil {
		return nil, err
	}

	err = logger.Init(app.cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	app.db, err = getStorageByType(app.cfg)
	if err != nil {
		return nil, err
	}

	validator, err := validation.New()
	if err != nil {
		return nil, err
	}

	app.httpHandler = router.New(
		service.New(app.db),
		auth.New(app.db),
		validator,
		app.cfg.EnableVerboseErrorLogging,
	)

	return app, nil
}

// Run starts the HTTP server with graceful shutdown support.
// It listens for system signals and cleans up resources upon termination.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Log.Infoln("server running", "RunAddr", a.cfg.RunAddr)

	server := &http.Server{
		Addr:    a.cfg.RunAddr,
		Handler: a.httpHandler,
	}

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Log.Infoln("Received shutdown signal. Closing storage and exiting...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}

		return a.db.Close()

	case err := <-serverErrCh:
		return fmt.Errorf("server error: %w", err)
	}
}

// Close finalizes resources used by App such as logging.
func (a *App) Close() {
	if err := logger.Sync(); err != nil {
		fmt.Println("Logger sync error:", err)
	}
}

func getAvailableStorageType(cfg *config.Config) int {
	if cfg.DatabaseDSN != "" {
		return models.StorageTypePostgresql
	}

	return models.StorageTypeMemory
}

func getStorageByType(cfg *config.Config) (storage, error) {
	switch getAvailableStorageType(cfg) {
	case models.StorageTypeUnknown:
		return nil, errors.New("unknown storage type")

	case models.StorageTypePostgresql:
		return postgresdb.New(
			context.Background(),
			cfg.DatabaseDSN,
			cfg.DBConnectionTimeout,
			cfg.MigrationsDir,
		)
	}

	return memorystorage.New()
}
