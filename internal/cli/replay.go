package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bracketlab/core/internal/bracket"
	"github.com/bracketlab/core/internal/ruleset"
	"github.com/bracketlab/core/internal/store"
)

// NewReplayCommand creates the 'replay' subcommand.
func NewReplayCommand(opts *RootOptions) *cobra.Command {
	var sessionToken string
	var basePath string

	cmd := &cobra.Command{
		Use:   "replay <journal-db>",
		Short: "Verify an edit journal by replaying it",
		Long: `Re-apply every journaled edit of a session on its base graph and check
the recorded post-edit hash at each step. Without --session, lists the
sessions in the journal. The base graph is the starter graph unless
--base names the ruleset the session was started from.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{
				Format:    opts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   opts.Verbose,
			}
			return runReplay(cmd, formatter, args[0], sessionToken, basePath)
		},
	}

	cmd.Flags().StringVar(&sessionToken, "session", "", "session token to replay (default: list sessions)")
	cmd.Flags().StringVar(&basePath, "base", "", "ruleset file the session started from (default: starter graph)")

	return cmd
}

// replayInfo is the JSON payload for a verified replay.
type replayInfo struct {
	SessionToken string `json:"session_token"`
	Steps        int    `json:"steps"`
	FinalHash    string `json:"final_hash"`
}

func runReplay(cmd *cobra.Command, formatter *OutputFormatter, dbPath, sessionToken, basePath string) error {
	if _, err := os.Stat(dbPath); err != nil {
		formatter.Error(ErrCodeNotFound, fmt.Sprintf("journal not found: %s", dbPath), nil)
		return NewExitError(ExitCommandError, err.Error())
	}

	journal, err := store.Open(dbPath)
	if err != nil {
		formatter.Error(ErrCodeReplay, err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}
	defer journal.Close()

	ctx := cmd.Context()

	if sessionToken == "" {
		tokens, err := journal.Sessions(ctx)
		if err != nil {
			formatter.Error(ErrCodeReplay, err.Error(), nil)
			return NewExitError(ExitCommandError, err.Error())
		}
		if formatter.Format == "json" {
			return formatter.Success(map[string]any{"sessions": tokens})
		}
		if len(tokens) == 0 {
			fmt.Fprintln(formatter.Writer, "no sessions in journal")
			return nil
		}
		for _, token := range tokens {
			fmt.Fprintln(formatter.Writer, token)
		}
		return nil
	}

	base := bracket.NewStarterGraph()
	if basePath != "" {
		r, err := ruleset.Load(basePath)
		if err != nil {
			formatter.Error(ErrCodeLoad, fmt.Sprintf("load %s: %v", basePath, err), nil)
			return NewExitError(ExitCommandError, err.Error())
		}
		base = ruleset.FromRuleset(*r)
	}

	result, err := journal.Replay(ctx, sessionToken, base)
	if err != nil {
		var mismatch *store.MismatchError
		if errors.As(err, &mismatch) {
			formatter.Error(ErrCodeReplay, mismatch.Error(), nil)
			return NewExitError(ExitFailure, "replay mismatch")
		}
		formatter.Error(ErrCodeReplay, err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}

	info := replayInfo{
		SessionToken: result.SessionToken,
		Steps:        result.Steps,
		FinalHash:    result.FinalHash,
	}
	if formatter.Format == "json" {
		return formatter.Success(info)
	}
	fmt.Fprintf(formatter.Writer, "session %s: %d step(s) verified\n", info.SessionToken, info.Steps)
	fmt.Fprintf(formatter.Writer, "final hash: %s\n", info.FinalHash)
	return nil
}
