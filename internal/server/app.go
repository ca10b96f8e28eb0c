// Package server wires the development backend together: configuration,
// storage backend, services and the HTTP server, with graceful shutdown on
// SIGINT/SIGTERM.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/tempero/internal/common"
	"github.com/dmitrijs2005/tempero/internal/logging"
	"github.com/dmitrijs2005/tempero/internal/server/config"
	"github.com/dmitrijs2005/tempero/internal/server/httpapi"
	"github.com/dmitrijs2005/tempero/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/tempero/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.HTTPServer
}

// openPostgres is a seam for tests.
var openPostgres = repomanager.OpenPostgres

// NewApp opens the configured storage, runs migrations and builds the
// services. Logs go to w as JSON.
func NewApp(ctx context.Context, c *config.Config, w io.Writer) (*App, error) {
	logger := logging.New(w, c.LogLevel, "json")

	if c.SecretKey == "" {
		key, err := common.MakeRandHexString(32)
		if err != nil {
			return nil, fmt.Errorf("generate secret key: %w", err)
		}
		c.SecretKey = key
		logger.Warn(ctx, "no secret key configured, tokens will not survive a restart")
	}

	var (
		db *sql.DB
		rm repomanager.RepositoryManager
	)
	switch c.Storage {
	case config.StorageMemory:
		rm = repomanager.NewMemoryRepositoryManager()
	case config.StoragePostgres:
		var err error
		db, err = openPostgres(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		rm = repomanager.NewPostgresRepositoryManager()
		if err := rm.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrations error: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown storage %q", c.Storage)
	}

	us := services.NewUserService(db, rm, c)
	ps := services.NewPostService(db, rm)

	return &App{
		config: c,
		logger: logger,
		db:     db,
		server: httpapi.NewHTTPServer(c.ListenAddr, logger, us, ps),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a signal arrives, then closes the
// database.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.Storage)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "close db", "error", err)
		}
	}
	app.logger.Info(ctx, "Stopped")
}
