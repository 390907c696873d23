package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "HASHLOOKUP"

// DefaultOutDir is where --json results are written.
const DefaultOutDir = "static"

// loadConfig resolves out-dir, list-column and verbose from, in order of
// precedence: explicit flags, HASHLOOKUP_* environment variables, flag
// defaults.
func loadConfig(cmd *cobra.Command, v *viper.Viper, opts *RootOptions) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, name := range []string{"out-dir", "list-column", "verbose"} {
		if err := v.BindPFlag(name, cmd.Flags().Lookup(name)); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	opts.OutDir = v.GetString("out-dir")
	opts.ListColumn = v.GetString("list-column")
	opts.Verbose = v.GetBool("verbose")

	if opts.OutDir == "" {
		return WrapExitError(ExitFailure, "invalid configuration", fmt.Errorf("out-dir must not be empty"))
	}
	return nil
}
