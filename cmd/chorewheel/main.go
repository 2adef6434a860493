package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dukerupert/chorewheel/internal/assignment"
	"github.com/dukerupert/chorewheel/internal/config"
	"github.com/dukerupert/chorewheel/internal/database"
	"github.com/dukerupert/chorewheel/internal/logging"
	"github.com/dukerupert/chorewheel/internal/roster"
	"github.com/dukerupert/chorewheel/internal/store"
)

func main() {
	rootCmd, a := newRootCmd(os.Getenv)
	err := rootCmd.Execute()
	if cerr := a.close(); cerr != nil && err == nil {
		err = cerr
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	if err != nil {
		os.Exit(1)
	}
}

// app carries state shared by every subcommand: resolved config, logger and
// the lazily opened database.
type app struct {
	getenv func(string) string

	configPath string
	dbPath     string
	logLevel   string

	cfg    config.Config
	logger *slog.Logger
	db     *sql.DB
}

func newRootCmd(getenv func(string) string) (*cobra.Command, *app) {
	a := &app{getenv: getenv}

	rootCmd := &cobra.Command{
		Use:          "chorewheel",
		Short:        "Fair daily chore rotation for a household",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ~/.chorewheel/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&a.dbPath, "db", "", "database path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")

	rootCmd.AddCommand(memberCmd(a))
	rootCmd.AddCommand(choreCmd(a))
	rootCmd.AddCommand(todayCmd(a))
	rootCmd.AddCommand(generateCmd(a))
	rootCmd.AddCommand(historyCmd(a))
	rootCmd.AddCommand(exportCmd(a))
	rootCmd.AddCommand(importCmd(a))
	rootCmd.AddCommand(backupCmd(a))
	rootCmd.AddCommand(serveCmd(a))

	return rootCmd, a
}

// init resolves configuration in order defaults, file, environment, flags
// and installs the logger.
func (a *app) init(cmd *cobra.Command) error {
	home, _ := os.UserHomeDir()

	path, required := a.configPath, true
	if path == "" {
		path, required = config.DefaultPath(home), false
	}
	cfg, err := config.Load(path, required, home, a.getenv)
	if err != nil {
		return err
	}
	if a.dbPath != "" {
		cfg.DBPath = a.dbPath
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	a.cfg = cfg
	a.logger = logging.Setup(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	return nil
}

func (a *app) openDB() (*sql.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	if err := os.MkdirAll(filepath.Dir(a.cfg.DBPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := database.Open(a.cfg.DBPath)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("database opened", "path", a.cfg.DBPath)
	a.db = db
	return db, nil
}

func (a *app) close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

// service opens the database and builds a roster service over it. gen may
// be nil for a randomly seeded generator.
func (a *app) service(gen *assignment.Generator) (*roster.Service, error) {
	db, err := a.openDB()
	if err != nil {
		return nil, err
	}
	return roster.New(
		store.NewFamilyMemberStore(db),
		store.NewChoreStore(db),
		store.NewAssignmentStore(db),
		gen,
		a.logger.With("component", "roster"),
	), nil
}
