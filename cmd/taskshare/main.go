package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"taskshare/internal/auth"
	"taskshare/internal/cli"
	"taskshare/internal/config"
	"taskshare/internal/db"
	"taskshare/internal/service"
	"taskshare/repository"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	cfg, err := config.LoadWithDefaults()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// No menu without a store: an open failure here is fatal to the process.
	d, err := db.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	users := repository.NewUserRepository(d)
	tasks := repository.NewTaskRepository(d)
	tokens := auth.NewTokenManager(cfg.Session.Secret, cfg.Session.TTL, cfg.Session.File)
	sess := auth.NewSession()
	accounts := service.NewAccountService(users, tasks, tokens, cfg.Auth.BcryptCost, logger)
	taskSvc := service.NewTaskService(users, tasks, logger)

	ctx := context.Background()
	if err := accounts.Resume(ctx, sess); err != nil {
		logger.Warn("resume session", slog.String("error", err.Error()))
	}

	menu := cli.NewMenu(os.Stdin, os.Stdout, sess, accounts, taskSvc)
	runErr := menu.Run(ctx)

	if err := d.Close(); err != nil {
		logger.Warn("close store", slog.String("error", err.Error()))
	}
	return runErr
}
