package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/jobboard/internal/client/client"
	"github.com/dmitrijs2005/jobboard/internal/client/config"
	"github.com/dmitrijs2005/jobboard/internal/client/services"
	"github.com/dmitrijs2005/jobboard/internal/logging"
)

type App struct {
	config   *config.Config
	db       *sql.DB
	auth     services.AuthService
	jobs     services.JobService
	logger   logging.Logger
	reader   *bufio.Reader
	out      io.Writer
	userName string
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		level = logging.LevelWarn
	}
	logger := logging.NewTextLogger(os.Stderr, level)

	db, err := client.InitDatabase(ctx, c.DBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	api := client.NewHTTPClient(c.ServerURL, c.RequestTimeout, logger)
	sessions := services.NewSessionStore(db)

	return &App{
		config: c,
		db:     db,
		auth:   services.NewAuthService(api, sessions, logger),
		jobs:   services.NewJobService(api, sessions, logger),
		logger: logger,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf(" (%s)", a.userName)
}

// restoreSession picks up a session saved by an earlier run.
func (a *App) restoreSession(ctx context.Context) {
	s, err := a.auth.Current(ctx)
	if err != nil {
		a.userName = ""
		return
	}
	a.userName = s.Username
}

// Run starts the REPL on stdin and returns when the user exits.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if a.db != nil {
			_ = a.db.Close()
		}
	}()

	a.restoreSession(ctx)

	fmt.Fprintf(a.out, "Welcome to the job board CLI, server %s (type 'help' for commands)\n", a.config.ServerURL)
	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}
