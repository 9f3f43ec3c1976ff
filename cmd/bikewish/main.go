package main

import (
	"context"
	"os"

	"github.com/angelmondragon/bikewish/internal/app"
	"github.com/angelmondragon/bikewish/internal/cli"
	"github.com/angelmondragon/bikewish/pkg/config"
	pkgerrors "github.com/angelmondragon/bikewish/pkg/errors"
	"github.com/angelmondragon/bikewish/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "bikewish", Output: os.Stderr})

	if err := godotenv.Load(); err != nil {
		logg.Debug(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		return 1
	}

	logg = logger.New(logger.Options{
		ServiceName: "bikewish",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Output:      os.Stderr,
		Format:      cfg.App.LogFormat,
	})
	ctx = logg.WithFields(ctx, map[string]any{
		"env":    cfg.App.Env,
		"driver": cfg.DB.Driver,
	})

	prompter := cli.NewTerminalPrompter(os.Stdin, os.Stdout)
	connector := cli.Connector{
		Prompter: prompter,
		Out:      os.Stdout,
		Logger:   logg,
		Open:     app.Open,
	}

	session, err := connector.Connect(ctx, *cfg)
	if err != nil {
		if pkgerrors.Is(err, pkgerrors.CodeCancelled) {
			return 0
		}
		logg.Error(ctx, "failed to connect to database", err)
		return 1
	}
	defer func() {
		if err := session.Close(); err != nil {
			logg.Error(ctx, "error closing database", err)
		}
	}()

	menu, err := cli.New(cli.Params{
		Session:    session,
		Prompter:   prompter,
		Out:        os.Stdout,
		CancelWord: cfg.Prompt.CancelWord,
		Logger:     logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to build cli", err)
		return 1
	}

	if err := menu.Run(ctx); err != nil {
		logg.Error(ctx, "cli stopped unexpectedly", err)
		return 1
	}
	return 0
}
