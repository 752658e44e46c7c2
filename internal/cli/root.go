// Package cli is the chorechart command-line shell: cobra subcommands for
// scripted use and an interactive menu for day-to-day use. It turns raw
// input into service calls and renders the results.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmynk/chorechart/internal/config"
	"github.com/mmynk/chorechart/internal/metrics"
	"github.com/mmynk/chorechart/internal/service"
	"github.com/mmynk/chorechart/internal/storage/sqlite"
	"github.com/mmynk/chorechart/pkg/logging"
)

// app holds the per-invocation wiring built before a command runs.
type app struct {
	cfg     *config.Config
	store   *sqlite.SQLiteStore
	svc     *service.ChoreService
	metrics *metrics.Recorder
}

// flagKeys maps persistent flags onto config keys.
var flagKeys = map[string]string{
	"db":           "db_path",
	"log-level":    "log_level",
	"metrics-file": "metrics_file",
}

// Execute runs the chorechart command line.
func Execute() error {
	return execute(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

// execute runs one command and logs its outcome and duration.
func execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) error {
	root, a := newRootCommand()
	defer a.close()

	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	start := time.Now()
	cmd, err := root.ExecuteContextC(ctx)
	duration := time.Since(start).Milliseconds()

	if err != nil {
		if service.IsExpected(err) {
			slog.Warn("Command error", "command", cmd.CommandPath(), "error", err, "duration_ms", duration)
		} else {
			slog.Error("Command error", "command", cmd.CommandPath(), "error", err, "duration_ms", duration)
		}
		return err
	}
	slog.Info("Command ok", "command", cmd.CommandPath(), "duration_ms", duration)
	return nil
}

// newRootCommand builds the command tree. Running it without a subcommand
// starts the interactive menu. The caller closes the returned app.
func newRootCommand() (*cobra.Command, *app) {
	var configPath string
	a := &app{}

	root := &cobra.Command{
		Use:          "chorechart",
		Short:        "Keep track of household chores and who does them",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd, configPath)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			a.close()
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return newShell(a.svc, cmd.InOrStdin(), cmd.OutOrStdout()).Run(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default $HOME/.chorechart/config.yaml)")
	flags.String("db", "", "SQLite database path")
	flags.String("log-level", "", "debug, info, warn or error")
	flags.String("metrics-file", "", "write Prometheus counters to this file after each command")

	root.AddCommand(
		aboutCmd(),
		menuCmd(a),
		listCmd(a),
		createCmd(a),
		addCmd(a),
		removeCmd(a),
		viewCmd(a),
		logCmd(a),
		leaderboardCmd(a),
		wipeCmd(a),
	)
	return root, a
}

// open loads configuration, sets up logging and opens the store.
func (a *app) open(cmd *cobra.Command, configPath string) error {
	v := config.New()
	for flag, key := range flagKeys {
		if err := v.BindPFlag(key, cmd.Root().PersistentFlags().Lookup(flag)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", flag, err)
		}
	}

	cfg, err := config.Load(v, configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level, _ := logging.ParseLevel(cfg.LogLevel)
	logging.Setup(cmd.ErrOrStderr(), level)

	if cmd.Name() == "about" {
		return nil
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		return err
	}
	slog.Info("Storage initialized", "database", cfg.DBPath)

	a.store = store
	a.metrics = metrics.New()
	if err := a.metrics.LoadTextfile(cfg.MetricsFile); err != nil {
		slog.Warn("Previous metrics not loaded", "path", cfg.MetricsFile, "error", err)
	}
	a.svc = service.NewChoreService(store, cfg.Limits, a.metrics)
	return nil
}

// close flushes metrics and releases the store.
func (a *app) close() {
	if a.store == nil {
		return
	}
	if err := a.metrics.WriteTextfile(a.cfg.MetricsFile); err != nil {
		slog.Warn("Metrics not written", "path", a.cfg.MetricsFile, "error", err)
	}
	if err := a.store.Close(); err != nil {
		slog.Warn("Failed to close storage", "error", err)
	}
	a.store = nil
}
