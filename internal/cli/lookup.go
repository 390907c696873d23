package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/hashlookup/internal/lookup"
	"github.com/roach88/hashlookup/internal/schema"
	"github.com/roach88/hashlookup/internal/store"
)

// runLookup executes one lookup. The store is closed before any output is
// produced.
func runLookup(opts *RootOptions, cmd *cobra.Command, args []string) error {
	la, err := parseArgs(args)
	if err != nil {
		return WrapExitError(ExitFailure, "usage: "+Usage, err)
	}
	dbPath, table, query := la.DBPath, la.Table, la.Query

	configureLogging(cmd.ErrOrStderr(), opts.Verbose)

	mode, err := lookup.ParseMode(la.Mode)
	if err != nil {
		return usageError(la.Mode, err)
	}

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Debug("opening database", "path", dbPath)
	st, err := store.Open(dbPath)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to open database", lookup.NewStoreOpenError(dbPath, err))
	}

	eng := lookup.New(st, schema.Rules{ListColumn: opts.ListColumn})
	out := &OutputFormatter{
		JSON:   la.JSON,
		OutDir: opts.OutDir,
		Writer: cmd.OutOrStdout(),
	}

	if opts.Explain {
		stmts, err := eng.Statements(ctx, mode, table, query)
		closeStore(st)
		if err != nil {
			return WrapExitError(ExitFailure, "lookup failed", err)
		}
		return out.Explain(stmts)
	}

	set, err := eng.Lookup(ctx, mode, table, query)
	closeStore(st)
	if err != nil {
		return WrapExitError(ExitFailure, "lookup failed", err)
	}
	slog.Debug("lookup complete", "mode", mode, "table", table, "rows", len(set))

	if err := out.Results(query, set); err != nil {
		return WrapExitError(ExitFailure, "failed to write results", lookup.NewOutputError(err))
	}
	return nil
}

// configureLogging installs a text slog handler on w.
// Verbose enables debug records; otherwise only warnings and above.
func configureLogging(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		slog.Warn("error closing database", "error", err)
	}
}
