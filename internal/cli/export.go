package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bracketlab/core/internal/ruleset"
	"github.com/bracketlab/core/internal/validate"
)

// NewExportCommand creates the 'export' subcommand.
func NewExportCommand(opts *RootOptions) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export <ruleset-file>",
		Short: "Normalize a ruleset for the scheduler",
		Long: `Import a ruleset, validate it, and re-emit it as normalized JSON.
Export is refused while structural errors are present; warnings pass
through with a note on stderr.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{
				Format:    opts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   opts.Verbose,
			}
			return runExport(formatter, args[0], outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default stdout)")

	return cmd
}

func runExport(formatter *OutputFormatter, path, outputPath string) error {
	r, err := ruleset.Load(path)
	if err != nil {
		formatter.Error(ErrCodeLoad, fmt.Sprintf("load %s: %v", path, err), nil)
		return NewExitError(ExitCommandError, err.Error())
	}

	g := ruleset.FromRuleset(*r)
	diags := validate.Validate(&g)
	report := buildReport(path, diags)

	if report.Errors > 0 {
		formatter.Error(ErrCodeExport,
			fmt.Sprintf("export blocked: %d validation error(s)", report.Errors), diags)
		return NewExitError(ExitFailure, "export blocked by validation errors")
	}
	for _, d := range diags {
		formatter.VerboseLog("%s [%s] %s", d.Severity, d.Code, d.Message)
	}

	data, err := ruleset.EncodeJSON(ruleset.ToRuleset(&g))
	if err != nil {
		formatter.Error(ErrCodeExport, err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}

	if outputPath == "" {
		fmt.Fprint(formatter.Writer, string(data))
		return nil
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		formatter.Error(ErrCodeExport, fmt.Sprintf("write %s: %v", outputPath, err), nil)
		return NewExitError(ExitCommandError, err.Error())
	}
	return formatter.Success(fmt.Sprintf("Exported %s (%d warning(s))", outputPath, report.Warnings))
}
