// Command hashlookup searches an identity table in a SQLite database by
// phone number, address substring, or digest plaintext.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/hashlookup/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
