package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/angelmondragon/bikewish/internal/app"
	"github.com/angelmondragon/bikewish/pkg/config"
	pkgerrors "github.com/angelmondragon/bikewish/pkg/errors"
	"github.com/angelmondragon/bikewish/pkg/logger"
	"github.com/angelmondragon/bikewish/pkg/validators"
)

// OpenFunc opens a session for the given configuration. app.Open in
// production.
type OpenFunc func(ctx context.Context, cfg *config.Config, logg *logger.Logger) (*app.Session, error)

// Connector collects the database password when needed and opens the
// session, retrying connection failures a bounded number of times.
type Connector struct {
	Prompter Prompter
	Out      io.Writer
	Logger   *logger.Logger
	Open     OpenFunc
}

// Connect returns an open session. A CONNECTION_ERROR is returned once every
// connection attempt failed, VALIDATION_ERROR when every password prompt was
// left empty and CANCELLED when the user typed the cancel word.
func (c Connector) Connect(ctx context.Context, cfg config.Config) (*app.Session, error) {
	open := c.Open
	if open == nil {
		open = app.Open
	}
	attempts := max(cfg.Prompt.ConnectAttempts, 1)

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		current := cfg
		if cfg.DB.NeedsPassword() {
			password, err := c.readPassword(cfg.Prompt)
			if err != nil {
				return nil, err
			}
			current.DB = cfg.DB.WithPassword(password)
		}

		session, err := open(ctx, &current, c.Logger)
		if err == nil {
			return session, nil
		}
		if !pkgerrors.Is(err, pkgerrors.CodeConnection) {
			return nil, err
		}

		lastErr = err
		if c.Logger != nil {
			c.Logger.Warn(c.Logger.WithField(ctx, "attempt", attempt), "database connection failed")
		}
		fmt.Fprintf(c.Out, "Could not connect to the database (attempt %d of %d).\n", attempt, attempts)
	}
	return nil, lastErr
}

func (c Connector) readPassword(cfg config.PromptConfig) (string, error) {
	attempts := max(cfg.PasswordAttempts, 1)
	for attempt := 1; attempt <= attempts; attempt++ {
		password, err := c.Prompter.ReadPassword("Database password: ")
		if err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeCancelled, err, "password prompt closed")
		}
		if validators.IsCancel(password, cfg.CancelWord) {
			return "", pkgerrors.Cancelled()
		}
		if strings.TrimSpace(password) != "" {
			return password, nil
		}
		fmt.Fprintln(c.Out, "Password cannot be empty.")
	}
	return "", pkgerrors.New(pkgerrors.CodeValidation, "no password entered")
}
