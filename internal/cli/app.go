// Package cli implements the interactive terminal front end: a REPL that
// drives the account and event stores and renders their results. All field
// prompting happens here; the stores stay the final validation gate.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/campusevents/internal/common"
	"github.com/dmitrijs2005/campusevents/internal/config"
	"github.com/dmitrijs2005/campusevents/internal/logging"
	"github.com/dmitrijs2005/campusevents/internal/models"
	"github.com/dmitrijs2005/campusevents/internal/services"
	"github.com/dmitrijs2005/campusevents/internal/storage"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	accounts services.AccountService
	events   services.EventService
	db       *sql.DB
	reader   *bufio.Reader
	out      io.Writer
}

// NewApp opens the local database, constructs both stores, and loads their
// persisted state.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := storage.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("database init error: %w", err)
	}

	as := services.NewAccountService(db, logger)
	es := services.NewEventService(db, logger)

	if err := as.Load(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := es.Load(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{
		config:   c,
		logger:   logger,
		accounts: as,
		events:   es,
		db:       db,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer func() { _ = a.db.Close() }()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.accounts.Current() != nil
}

func (a *App) isAdmin() bool {
	cur := a.accounts.Current()
	return cur != nil && cur.Role == models.RoleAdmin
}

// getStatus renders the prompt decoration, e.g. "(ana@x.edu admin)".
func (a *App) getStatus() string {
	cur := a.accounts.Current()
	if cur == nil {
		return ""
	}
	return fmt.Sprintf("(%s %s)", cur.Email, cur.Role)
}

// resultMessage maps store sentinels to the user-facing messages of the
// original UI; unexpected errors pass through unchanged.
func resultMessage(err error) string {
	switch {
	case errors.Is(err, common.ErrorDuplicateAccount):
		return "User already exists with this email"
	case errors.Is(err, common.ErrorNotFound):
		return "User not found"
	case errors.Is(err, common.ErrorInvalidCredential):
		return "Please enter the correct password"
	default:
		return err.Error()
	}
}
