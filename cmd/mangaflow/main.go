package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Yotsura/mangaflow/internal/cli"
	"github.com/Yotsura/mangaflow/internal/db"
	"github.com/Yotsura/mangaflow/internal/repository"
	"github.com/Yotsura/mangaflow/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.mangaflow/mangaflow.db
	dbPath := os.Getenv("MANGAFLOW_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".mangaflow", "mangaflow.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	workRepo := repository.NewSQLiteWorkRepo(database)
	unitRepo := repository.NewSQLiteUnitRepo(database)
	stageRepo := repository.NewSQLiteStageRepo(database)
	granRepo := repository.NewSQLiteGranularityRepo(database)
	snapRepo := repository.NewSQLiteSnapshotRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Wire services
	workSvc := service.NewWorkService(workRepo, unitRepo, stageRepo, granRepo, uow)
	settingsSvc := service.NewSettingsService(stageRepo, granRepo)

	// Seed the built-in pipeline and registry on first run.
	if err := settingsSvc.EnsureDefaults(context.Background()); err != nil {
		return fmt.Errorf("installing default settings: %w", err)
	}

	app := &cli.App{
		Works:    workSvc,
		Settings: settingsSvc,
		Progress: service.NewProgressService(workSvc, snapRepo),
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
