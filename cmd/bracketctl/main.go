package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/bracketlab/core/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// Subcommands print their own diagnostics through the formatter;
		// only bare command errors (bad flags, unknown subcommands) need
		// printing here.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
