package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/roach88/hashlookup/internal/lookup"
	"github.com/roach88/hashlookup/internal/schema"
)

// Usage is the positional argument synopsis.
const Usage = "hashlookup <store-path> <table-name> <mode> [--json] <query>"

// jsonArg selects file output when it sits between mode and query.
const jsonArg = "--json"

// RootOptions holds the flags of the lookup command.
type RootOptions struct {
	Verbose    bool
	Explain    bool
	OutDir     string
	ListColumn string
}

// NewRootCommand creates the hashlookup command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "hashlookup [flags] <store-path> <table-name> <mode> [--json] <query>",
		Short: "Look up identity rows by phone, address or hash",
		Long: `Look up rows of an identity table by phone number, address substring,
or the plaintext of a stored SHA-256 digest.

Modes:
  phone    digits of the query, with and without a leading '+', are digested
           and matched against every *_sha / *_sha256 column
  address  case-insensitive substring match against every column whose name
           contains addr, street or city
  hash     the query is digested and matched against the row_hashes JSON list
           and every *_sha / *_sha256 column

The database is opened read-only. Results go to stdout, or with --json to
<out-dir>/<query>.json where every non-alphanumeric character of the query
becomes '_'. --json is positional: it must come right after the mode.
Flags must come before <store-path>; everything after it is positional,
so a query may start with '-'.

Environment:
  HASHLOOKUP_OUT_DIR       default for --out-dir
  HASHLOOKUP_LIST_COLUMN   default for --list-column
  HASHLOOKUP_VERBOSE       default for --verbose

Examples:
  hashlookup ids.db people phone "+1 (415) 555-0100"
  hashlookup ids.db people address --json "main street"
  hashlookup ids.db people hash jane@example.com
  hashlookup --out-dir results ids.db people hash --json -jane-`,
		Args:          checkArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(cmd, v, opts)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(opts, cmd, args)
		},
	}

	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log probing and statements to stderr")
	cmd.Flags().BoolVar(&opts.Explain, "explain", false, "print the statements a lookup would run, without running them")
	cmd.Flags().StringVar(&opts.OutDir, "out-dir", DefaultOutDir, "directory for --json output")
	cmd.Flags().StringVar(&opts.ListColumn, "list-column", schema.DefaultListColumn, "name of the JSON list-of-digests column")

	// Positional arguments are order-sensitive and may look like flags.
	cmd.Flags().SetInterspersed(false)

	return cmd
}

// lookupArgs are the positional arguments of one invocation.
type lookupArgs struct {
	DBPath string
	Table  string
	Mode   string
	JSON   bool
	Query  string
}

// parseArgs accepts <store-path> <table-name> <mode> [--json] <query>.
// A fourth argument of --json is only the flag when a query follows it.
func parseArgs(args []string) (lookupArgs, error) {
	switch {
	case len(args) == 4 && args[3] == jsonArg:
		return lookupArgs{}, lookup.NewUsageError("missing query after %s", jsonArg)
	case len(args) == 4:
		return lookupArgs{DBPath: args[0], Table: args[1], Mode: args[2], Query: args[3]}, nil
	case len(args) == 5 && args[3] == jsonArg:
		return lookupArgs{DBPath: args[0], Table: args[1], Mode: args[2], JSON: true, Query: args[4]}, nil
	case len(args) == 5:
		return lookupArgs{}, lookup.NewUsageError("unexpected argument %q: %s must directly follow the mode", args[3], jsonArg)
	default:
		return lookupArgs{}, lookup.NewUsageError("expected 4 or 5 arguments, got %d", len(args))
	}
}

// checkArgs validates positional arguments before anything is opened.
func checkArgs(cmd *cobra.Command, args []string) error {
	if _, err := parseArgs(args); err != nil {
		return WrapExitError(ExitFailure, "usage: "+Usage, err)
	}
	return nil
}

// modeNames lists valid modes for messages.
func modeNames() string {
	names := make([]string, len(lookup.Modes))
	for i, m := range lookup.Modes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

// usageError reports an invalid mode argument.
func usageError(mode string, err error) error {
	return WrapExitError(ExitFailure, fmt.Sprintf("invalid mode %q (valid: %s)", mode, modeNames()), err)
}
