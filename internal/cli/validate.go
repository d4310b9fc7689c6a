package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bracketlab/core/internal/ruleset"
	"github.com/bracketlab/core/internal/validate"
)

// NewValidateCommand creates the 'validate' subcommand.
func NewValidateCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <ruleset-file>",
		Short: "Validate a ruleset file",
		Long: `Import a ruleset (.cue, .yaml, or .json), rebuild the bracket graph,
and report every structural error and warning. Exits 1 when errors are
present; warnings alone exit 0.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{
				Format:    opts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   opts.Verbose,
			}
			return runValidate(formatter, args[0])
		},
	}
	return cmd
}

// diagnosticReport is the JSON payload for validate/export diagnostics.
type diagnosticReport struct {
	File        string                `json:"file"`
	Errors      int                   `json:"errors"`
	Warnings    int                   `json:"warnings"`
	Diagnostics []validate.Diagnostic `json:"diagnostics"`
}

func runValidate(formatter *OutputFormatter, path string) error {
	r, err := ruleset.Load(path)
	if err != nil {
		formatter.Error(ErrCodeLoad, fmt.Sprintf("load %s: %v", path, err), nil)
		return NewExitError(ExitCommandError, err.Error())
	}

	g := ruleset.FromRuleset(*r)
	diags := validate.Validate(&g)
	report := buildReport(path, diags)

	if formatter.Format == "json" {
		if err := formatter.Success(report); err != nil {
			return err
		}
	} else {
		printReport(formatter, report)
	}

	if report.Errors > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d validation error(s)", report.Errors))
	}
	return nil
}

func buildReport(path string, diags []validate.Diagnostic) diagnosticReport {
	// A clean file serializes an empty list, not null.
	report := diagnosticReport{File: path, Diagnostics: append([]validate.Diagnostic{}, diags...)}
	for _, d := range diags {
		switch d.Severity {
		case validate.SeverityError:
			report.Errors++
		case validate.SeverityWarning:
			report.Warnings++
		}
	}
	return report
}

func printReport(formatter *OutputFormatter, report diagnosticReport) {
	for _, d := range report.Diagnostics {
		if d.NodeID != "" {
			fmt.Fprintf(formatter.Writer, "%s [%s] %s: %s\n", d.Severity, d.Code, d.NodeID, d.Message)
		} else {
			fmt.Fprintf(formatter.Writer, "%s [%s] %s\n", d.Severity, d.Code, d.Message)
		}
	}
	if report.Errors == 0 && report.Warnings == 0 {
		fmt.Fprintf(formatter.Writer, "%s: OK\n", report.File)
		return
	}
	fmt.Fprintf(formatter.Writer, "%s: %d error(s), %d warning(s)\n", report.File, report.Errors, report.Warnings)
}
