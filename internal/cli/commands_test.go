package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bracketlab/core/internal/editor"
	"github.com/bracketlab/core/internal/ruleset"
	"github.com/bracketlab/core/internal/session"
	"github.com/bracketlab/core/internal/store"
)

// execute runs the CLI with the given args and returns stdout, stderr, and
// the command error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestNewCommandEmitsStarterRuleset(t *testing.T) {
	out, _, err := execute(t, "new")
	require.NoError(t, err)

	var r ruleset.Ruleset
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, 4, r.SeedCount)
	require.Len(t, r.Layers, 2)
	assert.Equal(t, "final", r.Layers[1].Matches[0].Category)
}

func TestNewCommandWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "starter.json")
	_, _, err := execute(t, "new", "-o", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var r ruleset.Ruleset
	require.NoError(t, json.Unmarshal(data, &r))
	assert.Equal(t, 4, r.SeedCount)
}

func TestValidateCommandCleanFile(t *testing.T) {
	out, _, err := execute(t, "validate", filepath.Join("testdata", "valid.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "OK")
}

func TestValidateCommandBrokenFile(t *testing.T) {
	out, _, err := execute(t, "validate", filepath.Join("testdata", "broken.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	assert.Contains(t, out, "E202") // no final match declared
	assert.Contains(t, out, "E205") // unbound away slot
	assert.Contains(t, out, "2 error(s)")
}

func TestValidateCommandJSONReport(t *testing.T) {
	out, _, err := execute(t, "validate", "--format", "json", filepath.Join("testdata", "broken.yaml"))
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status) // the report itself rendered fine

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var report diagnosticReport
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, 2, report.Errors)
	assert.Len(t, report.Diagnostics, 2)
}

func TestValidateCommandJSONCleanReport(t *testing.T) {
	out, _, err := execute(t, "validate", "--format", "json", filepath.Join("testdata", "valid.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, `"diagnostics":[]`)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var report diagnosticReport
	require.NoError(t, json.Unmarshal(data, &report))
	assert.NotNil(t, report.Diagnostics)
	assert.Empty(t, report.Diagnostics)
}

func TestValidateCommandMissingFile(t *testing.T) {
	_, _, err := execute(t, "validate", filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestInspectCommand(t *testing.T) {
	out, _, err := execute(t, "inspect", filepath.Join("testdata", "valid.yaml"))
	require.NoError(t, err)

	assert.Contains(t, out, "seeds: 4")
	assert.Contains(t, out, "m1-0")
	assert.Contains(t, out, "home=m0-0:winner")
	assert.Contains(t, out, "away=seed:3")
}

func TestInspectCommandJSON(t *testing.T) {
	out, _, err := execute(t, "inspect", "--format", "json", filepath.Join("testdata", "valid.yaml"))
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Equal(t, "ok", resp.Status)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var info inspectInfo
	require.NoError(t, json.Unmarshal(data, &info))
	assert.Equal(t, 2, info.Nodes)
	assert.Equal(t, 1, info.Edges)
	assert.Len(t, info.GraphHash, 64)
}

func TestExportCommandNormalizes(t *testing.T) {
	out, _, err := execute(t, "export", filepath.Join("testdata", "valid.yaml"))
	require.NoError(t, err)

	var r ruleset.Ruleset
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, 4, r.SeedCount)
	assert.Equal(t, ruleset.Result(1, 0, ruleset.OutcomeWinner), r.Layers[1].Matches[0].Home)
}

func TestExportCommandBlockedOnErrors(t *testing.T) {
	out, _, err := execute(t, "export", filepath.Join("testdata", "broken.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "export blocked")
}

func TestExportCommandToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	_, _, err := execute(t, "export", "-o", path, filepath.Join("testdata", "valid.yaml"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var r ruleset.Ruleset
	require.NoError(t, json.Unmarshal(data, &r))
	assert.Len(t, r.Layers, 2)
}

func TestReplayCommandListsSessions(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "journal.db")
	token := recordSampleSession(t, dbPath)

	out, _, err := execute(t, "replay", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, token)
}

func TestReplayCommandVerifiesSession(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "journal.db")
	token := recordSampleSession(t, dbPath)

	out, _, err := execute(t, "replay", "--session", token, dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "2 step(s) verified")
}

func TestReplayCommandMissingJournal(t *testing.T) {
	_, _, err := execute(t, "replay", filepath.Join(t.TempDir(), "absent.db"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

// recordSampleSession journals two edits into a fresh database and returns
// the session token.
func recordSampleSession(t *testing.T, dbPath string) string {
	t.Helper()

	journal, err := store.Open(dbPath)
	require.NoError(t, err)
	defer journal.Close()

	sess := session.New()
	sess.AttachRecorder(journal)

	ctx := context.Background()
	require.NoError(t, sess.Dispatch(ctx, editor.SetQualifyingSeedCount{Count: 8}))
	require.NoError(t, sess.Dispatch(ctx, editor.AddLayer{}))

	return sess.Token()
}
