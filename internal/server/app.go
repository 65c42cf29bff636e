// Package server wires configuration, storage, services and the HTTP
// transport into a runnable application.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/tasklist/internal/dbx"
	"github.com/dmitrijs2005/tasklist/internal/logging"
	"github.com/dmitrijs2005/tasklist/internal/server/auth"
	"github.com/dmitrijs2005/tasklist/internal/server/config"
	"github.com/dmitrijs2005/tasklist/internal/server/httpapi"
	"github.com/dmitrijs2005/tasklist/internal/server/repositories/memory"
	"github.com/dmitrijs2005/tasklist/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/tasklist/internal/server/services"
)

// MemoryDSN selects the process-local store instead of PostgreSQL.
const MemoryDSN = "memory"

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	userService *services.UserService
	taskService *services.TaskService
	tokens      *auth.TokenService
}

// openStorage returns the repository manager, the handle passed to it and
// the transactor for multi-statement operations.
func openStorage(ctx context.Context, dsn string) (repomanager.RepositoryManager, *sql.DB, dbx.Transactor, error) {
	if dsn == MemoryDSN {
		m := memory.NewManager()
		return m, nil, m, nil
	}

	db, err := repomanager.Open(ctx, dsn)
	if err != nil {
		return nil, nil, nil, err
	}
	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, nil, fmt.Errorf("migrations error: %w", err)
	}
	return m, db, dbx.SQLTransactor{DB: db}, nil
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSON(os.Stdout, c.LogLevel)

	if c.UsesDefaultSecret() {
		logger.Warn(ctx, "JWT_SECRET is not set, signing tokens with the built-in default secret")
	}

	m, db, tx, err := openStorage(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	// a nil *sql.DB must not become a non-nil DBTX
	var handle dbx.DBTX
	if db != nil {
		handle = db
	}

	tokens := auth.NewTokenService([]byte(c.SecretKey), c.TokenValidityDuration)
	us := services.NewUserService(handle, m, auth.NewBcryptHasher(c.PasswordHashCost), tokens)
	ts := services.NewTaskService(handle, tx, m)

	return &App{config: c, logger: logger, db: db, userService: us, taskService: ts, tokens: tokens}, nil
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
	s := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.userService, app.taskService, app.tokens, app.config.ShutdownTimeout)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until a termination signal arrives or the server fails.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

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
			app.logger.Error(ctx, "db close error", "error", err)
		}
	}
	app.logger.Info(ctx, "App stopped")
}
