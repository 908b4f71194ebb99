package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/lmsforge/packlint/internal/cli"
	"github.com/lmsforge/packlint/internal/db"
	"github.com/lmsforge/packlint/internal/detector"
	"github.com/lmsforge/packlint/internal/repository"
	"github.com/lmsforge/packlint/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.packlint/history.db
	dbPath := os.Getenv("PACKLINT_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".packlint", "history.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening scan history database: %w", err)
	}
	defer database.Close()

	var observer service.ScanObserver = service.NoopScanObserver{}
	if os.Getenv("PACKLINT_LOG") != "" {
		observer = service.NewLogScanObserver(os.Stderr)
	}

	app := &cli.App{
		Scans:   service.NewScanService(detector.Default(), observer),
		History: repository.NewSQLiteScanRepo(database),
	}

	// Detect interactive terminal for form/browser entrypoints.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
