package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bracketlab/core/internal/bracket"
	"github.com/bracketlab/core/internal/ruleset"
)

// NewNewCommand creates the 'new' subcommand, which emits the starter
// ruleset as a file to begin editing from.
func NewNewCommand(opts *RootOptions) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Emit a starter ruleset",
		Long:  "Write the minimal valid ruleset (an opening round feeding a final) as JSON.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{
				Format:    opts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   opts.Verbose,
			}
			return runNew(formatter, outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default stdout)")

	return cmd
}

func runNew(formatter *OutputFormatter, outputPath string) error {
	g := bracket.NewStarterGraph()
	r := ruleset.ToRuleset(&g)

	data, err := ruleset.EncodeJSON(r)
	if err != nil {
		formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}

	if outputPath == "" {
		fmt.Fprint(formatter.Writer, string(data))
		return nil
	}

	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		formatter.Error(ErrCodeGeneric, fmt.Sprintf("write %s: %v", outputPath, err), nil)
		return NewExitError(ExitCommandError, err.Error())
	}
	formatter.VerboseLog("wrote starter ruleset to %s", outputPath)
	return formatter.Success(fmt.Sprintf("Wrote %s", outputPath))
}
