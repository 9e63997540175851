package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/niyontwali/personal-job-at/internal/auth"
	"github.com/niyontwali/personal-job-at/internal/config"
	"github.com/niyontwali/personal-job-at/internal/netmon"
	"github.com/niyontwali/personal-job-at/internal/store"
	"github.com/niyontwali/personal-job-at/internal/tui"
	"github.com/niyontwali/personal-job-at/pkg/appwrite"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// snapshotPath returns ~/.jobtrack/session.json.
func snapshotPath() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "session.json"), nil
}

// setupLogging sends structured logs to ~/.jobtrack/debug.log. The
// terminal belongs to the TUI, so nothing may write to stdout/stderr
// while it runs.
func setupLogging() func() {
	dir, err := config.Dir()
	if err != nil {
		slog.SetDefault(slog.New(slog.NewJSONHandler(io.Discard, nil)))
		return func() {}
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		slog.SetDefault(slog.New(slog.NewJSONHandler(io.Discard, nil)))
		return func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "debug.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		slog.SetDefault(slog.New(slog.NewJSONHandler(io.Discard, nil)))
		return func() {}
	}
	level := slog.LevelInfo
	if os.Getenv("JOBTRACK_DEBUG") != "" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level})))
	return func() { f.Close() } //nolint:errcheck
}

func run() error {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "version", "-v":
			fmt.Println("jobtrack " + version)
			return nil
		case "help", "--help", "-h":
			printHelp()
			return nil
		case "logout":
			return runLogout()
		}
	}

	cfg, err := config.Load("")
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		fmt.Println("jobtrack is not configured yet.")
		fmt.Println()
		fmt.Println("Create ~/.jobtrack/config.yaml with your project settings:")
		fmt.Println()
		fmt.Println("  project_id:    <your project id>")
		fmt.Println("  database_id:   <your database id>")
		fmt.Println("  collection_id: applications")
		fmt.Println()
		fmt.Println("or set JOBTRACK_PROJECT_ID and JOBTRACK_DATABASE_ID.")
		return err
	}

	closeLog := setupLogging()
	defer closeLog()

	snapPath, err := snapshotPath()
	if err != nil {
		return err
	}

	client := appwrite.New(cfg.Endpoint, cfg.ProjectID, cfg.DatabaseID, cfg.CollectionID)
	svc := auth.NewService(client, snapPath, cfg.AdminUserID)
	st := store.New(client, svc.UserID)
	mon := netmon.New(cfg.Endpoint)

	slog.Info("starting", "version", version, "endpoint", cfg.Endpoint)

	app := tui.NewApp(svc, st, client, mon)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// runLogout clears the local session without starting the TUI. The
// remote session, if any, expires on its own.
func runLogout() error {
	path, err := snapshotPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Println("Already logged out.")
		return nil
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove session: %w", err)
	}
	fmt.Println("Logged out.")
	return nil
}

func printHelp() {
	fmt.Println("jobtrack — track your job applications from the terminal")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  jobtrack            open the application board")
	fmt.Println("  jobtrack logout     clear the local session")
	fmt.Println("  jobtrack version    show version")
	fmt.Println()
	fmt.Println("Configuration is read from ~/.jobtrack/config.yaml and")
	fmt.Println("JOBTRACK_* environment variables (env wins).")
}
