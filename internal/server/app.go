// Package server wires configuration, storage, authentication and the HTTP
// API together and runs them until the process is told to stop.
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/jobboard/internal/logging"
	"github.com/dmitrijs2005/jobboard/internal/server/api"
	"github.com/dmitrijs2005/jobboard/internal/server/auth"
	"github.com/dmitrijs2005/jobboard/internal/server/config"
	"github.com/dmitrijs2005/jobboard/internal/server/objectstore"
	"github.com/dmitrijs2005/jobboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/jobboard/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repomanager repomanager.RepositoryManager
	handler     http.Handler
	server      *api.Server
}

// NewApp validates cfg, opens storage and runs its migrations, then builds
// the HTTP server. Log output goes to w (os.Stdout when nil).
func NewApp(ctx context.Context, cfg *config.Config, w io.Writer) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if w == nil {
		w = os.Stdout
	}
	level, _ := logging.ParseLevel(cfg.LogLevel)
	logger := logging.NewZerologLogger(w, level, cfg.LogFormat == "console")

	tokens, err := auth.NewTokenCodec(cfg.SecretKey, cfg.TokenValidity)
	if err != nil {
		return nil, err
	}

	rm, err := openRepositoryManager(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	if err := rm.RunMigrations(ctx); err != nil {
		_ = rm.Close(ctx)
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	handler, err := buildHandler(ctx, cfg, rm, tokens, logger)
	if err != nil {
		_ = rm.Close(ctx)
		return nil, err
	}

	srv := api.NewServer(cfg.ListenAddr, handler, logger, cfg.ShutdownTimeout)

	return &App{config: cfg, logger: logger, repomanager: rm, handler: handler, server: srv}, nil
}

func openRepositoryManager(ctx context.Context, cfg *config.Config) (repomanager.RepositoryManager, error) {
	switch cfg.StorageDriver {
	case config.DriverMongo:
		client, err := repomanager.OpenMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		return repomanager.NewMongoRepositoryManager(client, cfg.MongoDatabase), nil
	case config.DriverPostgres:
		db, err := repomanager.OpenPostgres(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		return repomanager.NewPostgresRepositoryManager(db), nil
	case config.DriverMemory:
		return repomanager.NewInMemoryRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func buildHandler(ctx context.Context, cfg *config.Config, rm repomanager.RepositoryManager, tokens *auth.TokenCodec, logger logging.Logger) (http.Handler, error) {
	userService := services.NewUserService(rm, auth.NewPasswordHasher(), tokens, logger)

	jobService, err := services.NewJobService(rm, logger)
	if err != nil {
		return nil, err
	}

	var presigner services.Presigner
	if oc := cfg.ObjectStore(); oc.Enabled() {
		p, err := objectstore.NewS3Presigner(ctx, oc)
		if err != nil {
			return nil, fmt.Errorf("object store init error: %w", err)
		}
		presigner = p
	} else {
		logger.Warn(ctx, "S3 bucket not configured, avatar uploads disabled")
	}
	avatarService := services.NewAvatarService(rm, presigner, logger)

	gate := auth.NewGate(tokens, rm.Users(), logger)
	h := api.NewHandler(userService, jobService, avatarService, logger)

	return api.NewRouter(h, gate, logger), nil
}

// Handler returns the routed HTTP API.
func (app *App) Handler() http.Handler {
	return app.handler
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes storage.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "addr", app.config.ListenAddr, "storage", app.config.StorageDriver)

	app.initSignalHandler(cancelFunc)

	var (
		wg     sync.WaitGroup
		runErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			runErr = err
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.repomanager.Close(context.Background()); err != nil {
		app.logger.Error(ctx, "storage close failed", "error", err)
	}

	app.logger.Info(ctx, "App stopped")
	return runErr
}
