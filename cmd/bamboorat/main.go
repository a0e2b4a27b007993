package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/erazemk/bamboorat/internal/config"
)

// levelRouter is a slog.Handler that routes INFO/WARN to stdout and ERROR+ to stderr.
type levelRouter struct {
	stdout slog.Handler
	stderr slog.Handler
}

func (lr *levelRouter) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelInfo
}

func (lr *levelRouter) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		return lr.stderr.Handle(ctx, r)
	}
	return lr.stdout.Handle(ctx, r)
}

func (lr *levelRouter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelRouter{
		stdout: lr.stdout.WithAttrs(attrs),
		stderr: lr.stderr.WithAttrs(attrs),
	}
}

func (lr *levelRouter) WithGroup(name string) slog.Handler {
	return &levelRouter{
		stdout: lr.stdout.WithGroup(name),
		stderr: lr.stderr.WithGroup(name),
	}
}

// setupLogger configures structured logging. INFO/WARN go to stdout, ERROR goes
// to stderr. If logPath is non-empty, all levels are also written to that file.
// Returns a cleanup function that closes the log file (if opened).
func setupLogger(logPath string) (func(), error) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var cleanup func()

	stdoutW := io.Writer(os.Stdout)
	stderrW := io.Writer(os.Stderr)

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		cleanup = func() { f.Close() }
		stdoutW = io.MultiWriter(os.Stdout, f)
		stderrW = io.MultiWriter(os.Stderr, f)
	}

	handler := &levelRouter{
		stdout: slog.NewTextHandler(stdoutW, opts),
		stderr: slog.NewTextHandler(stderrW, opts),
	}
	slog.SetDefault(slog.New(handler))
	return cleanup, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	if err := newRootCommand(cfg).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "bamboorat: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand(cfg *config.Config) *cobra.Command {
	var closeLog func()

	cmd := &cobra.Command{
		Use:   "bamboorat",
		Short: "Bamboo rat farm record tracker",
		Long: `bamboorat keeps breeding records for a bamboo rat farm. It serves a small
web UI and a JSON API, and can list or export records from the terminal.

Configuration is read from BAMBOORAT_* environment variables; flags override them.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cleanup, err := setupLogger(cfg.LogPath)
			if err != nil {
				return err
			}
			closeLog = cleanup
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if closeLog != nil {
				closeLog()
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&cfg.DBPath, "db", "d", cfg.DBPath, "SQLite database path")
	flags.StringVar(&cfg.DBDSN, "dsn", cfg.DBDSN, "Postgres DSN (overrides --db)")
	flags.StringVarP(&cfg.LogPath, "log", "l", cfg.LogPath, "log file path (default: stdout/stderr only)")

	cmd.AddCommand(
		newServeCmd(cfg),
		newRecordsCmd(cfg),
		newExportCmd(cfg),
		newConfigCmd(cfg),
	)
	return cmd
}
